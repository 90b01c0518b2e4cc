package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/k0kubun/go-ansi"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/dijkstra"
	"github.com/katalvlaran/tilepath/heuristic"
	"github.com/katalvlaran/tilepath/tilemap"
)

type benchOptions struct {
	width, height int
	density       float64
	seed          int64
	queries       int
	conn          string
	policy        string
	noProgress    bool
}

func newBenchCmd(_ *app) *cobra.Command {
	o := &benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare A* against exhaustive Dijkstra on random maps",
		Long: `Generate a random map and answer random queries with both A* and an
exhaustive Dijkstra run from the same start. Costs must agree; the table
shows how much work the heuristic saves.`,
		Example: `  tilepath bench --width 128 --height 128 --queries 500 --conn 8`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd, o)
		},
	}

	f := cmd.Flags()
	f.IntVar(&o.width, "width", 64, "map width")
	f.IntVar(&o.height, "height", 64, "map height")
	f.Float64Var(&o.density, "density", 0.3, "wall density of the random walks")
	f.Int64Var(&o.seed, "seed", 1, "map and query seed")
	f.IntVar(&o.queries, "queries", 200, "number of queries")
	f.StringVar(&o.conn, "conn", "4", "connectivity, 4 or 8")
	f.StringVar(&o.policy, "policy", "reinsert", "A* open-set policy")
	f.BoolVar(&o.noProgress, "no-progress", false, "hide the progress bar")

	return cmd
}

type benchTotals struct {
	expanded int
	elapsed  time.Duration
}

func runBench(cmd *cobra.Command, o *benchOptions) error {
	conn, err := tilemap.ParseConnectivity(o.conn)
	if err != nil {
		return err
	}
	policy, err := astar.ParsePolicy(o.policy)
	if err != nil {
		return err
	}
	if o.queries < 1 {
		return fmt.Errorf("queries must be positive (%d)", o.queries)
	}

	g := tilemap.Random(o.width, o.height, o.density, o.seed, tilemap.Options{Conn: conn})
	comps := g.Components()
	largest := comps.Largest()
	if largest < 0 {
		return fmt.Errorf("random map has no passable cells")
	}
	size := comps.Size(largest)

	var h astar.Heuristic[tilemap.Point] = heuristic.Manhattan[tilemap.Point]
	if conn == tilemap.Conn8 {
		h = heuristic.Octile[tilemap.Point]
	}
	h = heuristic.Scaled(h, g.MinCost())

	r := rand.New(rand.NewSource(o.seed))
	cell := func() tilemap.Point {
		p, _ := comps.Cell(largest, r.Intn(size))
		return p
	}

	var bar interface {
		Add(int) error
		Finish() error
	}
	if !o.noProgress {
		bar = newProgressBar(ansi.NewAnsiStderr(), o.queries, "[cyan]benchmarking[reset]")
	}

	var as, dj benchTotals
	mismatches := 0
	for range o.queries {
		from, to := cell(), cell()

		t0 := time.Now()
		res, err := astar.Search[tilemap.Point](g, from, to, h,
			astar.WithMaxIterations[tilemap.Point](astar.NoIterationLimit),
			astar.WithPolicy[tilemap.Point](policy))
		if err != nil {
			return err
		}
		as.elapsed += time.Since(t0)
		as.expanded += res.Expanded

		t0 = time.Now()
		dist, _, err := dijkstra.Distances[tilemap.Point](g, from)
		if err != nil {
			return err
		}
		dj.elapsed += time.Since(t0)
		dj.expanded += len(dist)

		if want, ok := dist[to]; !ok || !res.Found || math.Abs(want-res.Cost) > 1e-9 {
			mismatches++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(cmd.ErrOrStderr())
	}

	out := cmd.OutOrStdout()
	n := float64(o.queries)
	row := func(name string, t benchTotals) []string {
		return []string{
			name,
			fmt.Sprintf("%.1f", float64(t.expanded)/n),
			(t.elapsed / time.Duration(o.queries)).String(),
		}
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("algorithm", "mean expanded", "mean time").
		Row(row("A* ("+policy.String()+")", as)...).
		Row(row("Dijkstra", dj)...)

	fmt.Fprintf(out, "map %dx%d conn=%s cells=%d largest region=%d queries=%d\n",
		g.Width(), g.Height(), conn, g.Width()*g.Height(), size, o.queries)
	fmt.Fprintln(out, tbl.Render())
	fmt.Fprintf(out, "cost mismatches: %d\n", mismatches)
	if mismatches > 0 {
		return fmt.Errorf("%d of %d queries disagree with Dijkstra", mismatches, o.queries)
	}

	return nil
}
