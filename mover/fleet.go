package mover

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Fleet steps a set of agents against a shared world source. The source is
// called once per tick, so swapping the underlying map between ticks is safe.
type Fleet[N comparable] struct {
	source func() World[N]
	cfg    fleetConfig

	mu     sync.RWMutex
	movers []*Mover[N]
	ticks  int
}

// NewFleet returns an empty fleet reading the world from source.
func NewFleet[N comparable](source func() World[N], opts ...FleetOption) (*Fleet[N], error) {
	if source == nil {
		return nil, ErrNilSource
	}
	cfg := defaultFleetConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Fleet[N]{source: source, cfg: cfg}, nil
}

// Add appends agents to the fleet.
func (f *Fleet[N]) Add(ms ...*Mover[N]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movers = append(f.movers, ms...)
}

// Movers returns a copy of the agent list in insertion order.
func (f *Fleet[N]) Movers() []*Mover[N] {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return append([]*Mover[N](nil), f.movers...)
}

// Tick steps every agent once against a single world snapshot.
// Searches run concurrently, at most WithWorkers at a time. The first step
// error cancels the remaining steps and is returned; the report still counts
// the steps that completed.
func (f *Fleet[N]) Tick(ctx context.Context) (TickReport, error) {
	movers := f.Movers()
	w := f.source()

	results := make([]StepResult[N], len(movers))
	done := make([]bool, len(movers))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(f.cfg.workers)
	for i, m := range movers {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := m.Step(w)
			if err != nil {
				return err
			}
			results[i], done[i] = res, true

			return nil
		})
	}
	err := eg.Wait()

	f.mu.Lock()
	f.ticks++
	rep := TickReport{Tick: f.ticks}
	f.mu.Unlock()

	for i, res := range results {
		if !done[i] {
			continue
		}
		switch res.Status {
		case StatusMoved:
			rep.Moved++
		case StatusArrived:
			rep.Arrived++
		case StatusBlocked:
			rep.Blocked++
		}
		rep.Cost += res.Cost
		rep.Iterations += res.Stats.Iterations
	}

	f.cfg.logger.Debug("mover: tick",
		slog.Int("tick", rep.Tick),
		slog.Int("moved", rep.Moved),
		slog.Int("arrived", rep.Arrived),
		slog.Int("blocked", rep.Blocked),
		slog.Float64("cost", rep.Cost),
	)

	return rep, err
}

// Run ticks until every agent is settled (arrived, or blocked for at least
// WithMaxBlocked consecutive steps), maxTicks ticks have run (maxTicks ≤ 0
// means no cap), a step fails, or ctx ends. A nil limiter ticks as fast as
// possible. onTick, if non-nil, sees every TickReport.
func (f *Fleet[N]) Run(ctx context.Context, limiter *rate.Limiter, maxTicks int, onTick func(TickReport)) (RunReport, error) {
	var rep RunReport
	for maxTicks <= 0 || rep.Ticks < maxTicks {
		if f.settled() {
			break
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return f.summary(rep), err
			}
		}
		tr, err := f.Tick(ctx)
		rep.Ticks++
		rep.Cost += tr.Cost
		if onTick != nil {
			onTick(tr)
		}
		if err != nil {
			return f.summary(rep), err
		}
		if err = ctx.Err(); err != nil {
			return f.summary(rep), err
		}
	}

	return f.summary(rep), nil
}

func (f *Fleet[N]) settled() bool {
	for _, m := range f.Movers() {
		if !m.Arrived() && m.Blocked() < f.cfg.maxBlocked {
			return false
		}
	}

	return true
}

func (f *Fleet[N]) summary(rep RunReport) RunReport {
	rep.Arrived, rep.Stuck = 0, 0
	for _, m := range f.Movers() {
		switch {
		case m.Arrived():
			rep.Arrived++
		case m.Blocked() >= f.cfg.maxBlocked:
			rep.Stuck++
		}
	}

	return rep
}
