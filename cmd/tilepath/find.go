package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tilepath/service"
)

type findOptions struct {
	from, to      string
	heuristic     string
	policy        string
	maxIterations int
	jsonOut       bool
}

func newFindCmd(a *app) *cobra.Command {
	o := &findOptions{}
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find one path and draw it on the map",
		Long: `Find the cheapest path between two cells of the scenario map.

The map is printed with the path drawn on it: S start, G goal, * path.
"no path" means the goal is unreachable or the iteration budget ran out.`,
		Example: `  tilepath find --from 0,0 --to 9,4
  tilepath find --from 0,0 --to 9,4 --heuristic zero --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFind(cmd, a, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.from, "from", "", "start cell x,y")
	f.StringVar(&o.to, "to", "", "goal cell x,y")
	f.StringVar(&o.heuristic, "heuristic", "", "override the scenario heuristic")
	f.StringVar(&o.policy, "policy", "", "reinsert or keep-first")
	f.IntVar(&o.maxIterations, "max-iterations", -1, "override the iteration budget (-1 keeps the scenario value)")
	f.BoolVar(&o.jsonOut, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runFind(cmd *cobra.Command, a *app, o *findOptions) error {
	from, err := parsePoint(o.from)
	if err != nil {
		return err
	}
	to, err := parsePoint(o.to)
	if err != nil {
		return err
	}
	svc, err := service.New(a.scenario, service.WithLogger(a.logger))
	if err != nil {
		return err
	}

	req := service.Request{From: from, To: to, Heuristic: o.heuristic, Policy: o.policy}
	if o.maxIterations >= 0 {
		req.MaxIterations = &o.maxIterations
	}
	resp, err := svc.FindPath(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if o.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(findResult{
			Found:      resp.Found,
			Cost:       resp.Cost,
			Path:       pointStrings(resp.Path),
			Reason:     resp.Stats.Reason.String(),
			Iterations: resp.Stats.Iterations,
			Expanded:   resp.Stats.Expanded,
		})
	}

	title := fmt.Sprintf("%v → %v", from, to)
	fmt.Fprintln(out, renderMap(out, title, resp.Overlay))
	if resp.Found {
		fmt.Fprintf(out, "cost=%g steps=%d iterations=%d expanded=%d\n",
			resp.Cost, len(resp.Path)-1, resp.Stats.Iterations, resp.Stats.Expanded)
	} else {
		fmt.Fprintf(out, "no path (%s) iterations=%d\n", resp.Stats.Reason, resp.Stats.Iterations)
	}

	return nil
}

type findResult struct {
	Found      bool     `json:"found"`
	Cost       float64  `json:"cost"`
	Path       []string `json:"path"`
	Reason     string   `json:"reason"`
	Iterations int      `json:"iterations"`
	Expanded   int      `json:"expanded"`
}
