package mover

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/katalvlaran/tilepath/astar"
)

// ErrNilSource indicates a Fleet was built without a world source.
var ErrNilSource = errors.New("mover: world source is nil")

// Status is the outcome of one Step.
type Status int

const (
	// StatusMoved: the agent advanced one node along a fresh path.
	StatusMoved Status = iota
	// StatusArrived: the agent stands on its target; nothing to do.
	StatusArrived
	// StatusBlocked: no path within budget; the agent stays put and retries next step.
	StatusBlocked
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusMoved:
		return "moved"
	case StatusArrived:
		return "arrived"
	case StatusBlocked:
		return "blocked"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Reachability answers whether any path can exist between two nodes.
// tilemap.Components implements it for tilemap.Point.
type Reachability[N comparable] interface {
	Connected(a, b N) bool
}

// World is what one step is planned against: a graph and, optionally, a
// reachability oracle, a heuristic and search options built from the same
// snapshot. A non-nil Heuristic replaces the agent's own; Options apply after
// the agent's default budget and before its WithMaxIterations and
// WithSearchOptions, which win.
type World[N comparable] struct {
	Graph     astar.Graph[N]
	Reach     Reachability[N]
	Heuristic astar.Heuristic[N]
	Options   []astar.Option[N]
}

// StepResult describes one Step.
type StepResult[N comparable] struct {
	Status Status
	From   N
	To     N           // equals From unless Status == StatusMoved
	Cost   float64     // cost of the move taken, 0 otherwise
	Stats  astar.Stats // statistics of the search that planned the step
}

// Option configures a Mover.
type Option[N comparable] func(*Mover[N])

// WithID overrides the random agent ID.
func WithID[N comparable](id uuid.UUID) Option[N] {
	return func(m *Mover[N]) { m.id = id }
}

// WithMaxIterations sets the per-step search budget (default astar.DefaultMaxIterations).
func WithMaxIterations[N comparable](n int) Option[N] {
	return func(m *Mover[N]) {
		m.maxIterations = n
		m.budgetSet = true
	}
}

// WithLogger routes "no path found" warnings to l.
func WithLogger[N comparable](l *slog.Logger) Option[N] {
	return func(m *Mover[N]) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSearchOptions appends options to every search (policy, hooks, thresholds).
func WithSearchOptions[N comparable](opts ...astar.Option[N]) Option[N] {
	return func(m *Mover[N]) { m.searchOpts = append(m.searchOpts, opts...) }
}

// FleetOption configures a Fleet.
type FleetOption func(*fleetConfig)

type fleetConfig struct {
	workers    int
	maxBlocked int
	logger     *slog.Logger
}

func defaultFleetConfig() fleetConfig {
	return fleetConfig{
		workers:    4,
		maxBlocked: 3,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithWorkers bounds how many agents plan concurrently within a tick (default 4).
// Values below 1 are ignored.
func WithWorkers(n int) FleetOption {
	return func(c *fleetConfig) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// WithMaxBlocked sets after how many consecutive blocked steps an agent is
// considered stuck for the purpose of ending Run (default 3).
// Values below 1 are ignored.
func WithMaxBlocked(n int) FleetOption {
	return func(c *fleetConfig) {
		if n >= 1 {
			c.maxBlocked = n
		}
	}
}

// WithFleetLogger routes per-tick debug records to l.
func WithFleetLogger(l *slog.Logger) FleetOption {
	return func(c *fleetConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// TickReport aggregates one Tick.
type TickReport struct {
	Tick       int
	Moved      int
	Arrived    int
	Blocked    int
	Cost       float64 // sum of move costs
	Iterations int     // sum of search iterations
}

// RunReport summarises a Run.
type RunReport struct {
	Ticks   int
	Arrived int // agents on their target at the end
	Stuck   int // agents blocked for at least the max-blocked streak at the end
	Cost    float64
}
