package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/tilepath/mover"
	"github.com/katalvlaran/tilepath/service"
	"github.com/katalvlaran/tilepath/tilemap"
)

type simulateOptions struct {
	agents     int
	seed       int64
	tickRate   float64
	maxTicks   int
	workers    int
	noProgress bool
}

func newSimulateCmd(a *app) *cobra.Command {
	o := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Walk the scenario agents to their targets",
		Long: `Run the scenario fleet: every tick each agent re-plans from where it
stands and moves one cell. The run ends when every agent has arrived or has
been blocked for max_blocked consecutive ticks.

--agents N adds N agents with random start and target cells drawn from the
largest connected region of the map.`,
		Example: `  tilepath simulate --agents 25 --tick-rate 0
  tilepath simulate --config scenario.yaml --workers 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, a, o)
		},
	}

	f := cmd.Flags()
	f.IntVar(&o.agents, "agents", 0, "random agents to add")
	f.Int64Var(&o.seed, "seed", 1, "seed for random agents")
	f.Float64Var(&o.tickRate, "tick-rate", -1, "ticks per second, 0 unpaced (-1 keeps the scenario value)")
	f.IntVar(&o.maxTicks, "max-ticks", -1, "tick cap, 0 none (-1 keeps the scenario value)")
	f.IntVar(&o.workers, "workers", 0, "concurrent searches per tick (0 keeps the scenario value)")
	f.BoolVar(&o.noProgress, "no-progress", false, "hide the progress bar")

	return cmd
}

func runSimulate(cmd *cobra.Command, a *app, o *simulateOptions) error {
	s := a.scenario
	if o.tickRate >= 0 {
		s.Fleet.TickRate = o.tickRate
	}
	if o.maxTicks >= 0 {
		s.Fleet.MaxTicks = o.maxTicks
	}
	if o.workers > 0 {
		s.Fleet.Workers = o.workers
	}

	svc, err := service.New(s, service.WithLogger(a.logger))
	if err != nil {
		return err
	}
	fleet, err := newFleet(svc, a.logger)
	if err != nil {
		return err
	}
	if o.agents > 0 {
		if err = addRandomAgents(fleet, svc, o.agents, o.seed, a.logger); err != nil {
			return err
		}
	}
	movers := fleet.Movers()
	if len(movers) == 0 {
		return fmt.Errorf("no agents: add fleet.agents to the scenario or pass --agents")
	}

	var bar *progressbar.ProgressBar
	if !o.noProgress {
		bar = newProgressBar(ansi.NewAnsiStderr(), len(movers), "[cyan]simulating[reset]")
	}
	onTick := func(mover.TickReport) {
		if bar == nil {
			return
		}
		settled := 0
		for _, m := range movers {
			if m.Arrived() {
				settled++
			}
		}
		_ = bar.Set(settled)
	}

	rep, err := fleet.Run(cmd.Context(), limiter(s.Fleet.TickRate), s.Fleet.MaxTicks, onTick)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ticks=%d arrived=%d stuck=%d cost=%g\n", rep.Ticks, rep.Arrived, rep.Stuck, rep.Cost)
	for _, m := range movers {
		state := "moving"
		switch {
		case m.Arrived():
			state = "arrived"
		case m.Blocked() > 0:
			state = fmt.Sprintf("blocked(%d)", m.Blocked())
		}
		fmt.Fprintf(out, "%s %v → %v %s\n", m.ID(), m.Position(), m.Target(), state)
	}

	return nil
}

// newFleet builds the scenario fleet reading the world from svc, so map
// reloads reach the agents on their next tick.
func newFleet(svc *service.PathService, logger *slog.Logger) (*mover.Fleet[tilemap.Point], error) {
	s := svc.Scenario()
	fleet, err := mover.NewFleet(svc.World,
		mover.WithWorkers(s.Fleet.Workers),
		mover.WithMaxBlocked(s.Fleet.MaxBlocked),
		mover.WithFleetLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	for _, ag := range s.Fleet.Agents {
		fleet.Add(newAgent(ag.From(), ag.To(), logger, mover.WithID[tilemap.Point](ag.UUID())))
	}

	return fleet, nil
}

// newAgent builds an agent with no heuristic or budget of its own; both come
// with every service world, so a reload re-scales them.
func newAgent(from, to tilemap.Point, logger *slog.Logger, extra ...mover.Option[tilemap.Point]) *mover.Mover[tilemap.Point] {
	opts := append([]mover.Option[tilemap.Point]{mover.WithLogger[tilemap.Point](logger)}, extra...)
	m := mover.New[tilemap.Point](from, nil, opts...)
	m.SetTarget(to)

	return m
}

// addRandomAgents draws start and target cells from the largest region.
func addRandomAgents(fleet *mover.Fleet[tilemap.Point], svc *service.PathService, n int, seed int64, logger *slog.Logger) error {
	comps := svc.Grid().Components()
	largest := comps.Largest()
	if largest < 0 {
		return fmt.Errorf("map has no passable cells")
	}
	size := comps.Size(largest)
	r := rand.New(rand.NewSource(seed))
	cell := func() tilemap.Point {
		p, _ := comps.Cell(largest, r.Intn(size))
		return p
	}
	for range n {
		fleet.Add(newAgent(cell(), cell(), logger))
	}

	return nil
}

func limiter(ticksPerSecond float64) *rate.Limiter {
	if ticksPerSecond <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(ticksPerSecond), 1)
}

func newProgressBar(w io.Writer, max int, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
