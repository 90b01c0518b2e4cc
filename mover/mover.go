package mover

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/tilepath/astar"
)

// Mover is one agent walking towards a target. It is safe for concurrent use;
// Step serialises with the accessors.
type Mover[N comparable] struct {
	mu sync.Mutex

	id            uuid.UUID
	h             astar.Heuristic[N]
	maxIterations int
	budgetSet     bool
	searchOpts    []astar.Option[N]
	logger        *slog.Logger

	pos     N
	target  N
	arrived bool
	blocked int // consecutive blocked steps
}

// New places an agent at start with target == start (already arrived).
// h may be nil when every World the agent steps in carries a Heuristic.
func New[N comparable](start N, h astar.Heuristic[N], opts ...Option[N]) *Mover[N] {
	m := &Mover[N]{
		id:            uuid.New(),
		h:             h,
		maxIterations: astar.DefaultMaxIterations,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		pos:           start,
		target:        start,
		arrived:       true,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// ID returns the agent's identifier.
func (m *Mover[N]) ID() uuid.UUID { return m.id }

// SetTarget points the agent at t. Setting the current target again is a no-op;
// a new target clears the arrived flag and the blocked streak.
func (m *Mover[N]) SetTarget(t N) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t == m.target {
		return
	}
	m.target = t
	m.arrived = m.pos == t
	m.blocked = 0
}

// Position returns the node the agent stands on.
func (m *Mover[N]) Position() N {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.pos
}

// Target returns the current target.
func (m *Mover[N]) Target() N {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.target
}

// Arrived reports whether the agent stands on its target.
func (m *Mover[N]) Arrived() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.arrived
}

// Blocked returns the number of consecutive steps that found no path.
func (m *Mover[N]) Blocked() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.blocked
}

// Step plans a fresh path from the current node and moves to its second node.
//
//   - Already on target: StatusArrived, no search.
//   - w.Reach says the target is unreachable: StatusBlocked, no search.
//   - Path of two or more nodes: move one node, StatusMoved.
//   - Empty path (unreachable or over budget): stay, log a warning, StatusBlocked.
//
// The error is the search's configuration error, if any; the agent does not move.
func (m *Mover[N]) Step(w World[N]) (StepResult[N], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := StepResult[N]{Status: StatusArrived, From: m.pos, To: m.pos}
	if m.arrived || m.pos == m.target {
		m.arrived = true
		return res, nil
	}

	if w.Reach != nil && !w.Reach.Connected(m.pos, m.target) {
		m.block(astar.Stats{}, "unreachable")
		res.Status = StatusBlocked
		return res, nil
	}

	h := m.h
	if w.Heuristic != nil {
		h = w.Heuristic
	}
	opts := make([]astar.Option[N], 0, len(w.Options)+len(m.searchOpts)+2)
	opts = append(opts, astar.WithMaxIterations[N](m.maxIterations))
	opts = append(opts, w.Options...)
	if m.budgetSet {
		opts = append(opts, astar.WithMaxIterations[N](m.maxIterations))
	}
	opts = append(opts, m.searchOpts...)
	sr, err := astar.Search(w.Graph, m.pos, m.target, h, opts...)
	if err != nil {
		return res, err
	}
	res.Stats = sr.Stats

	if len(sr.Path) < 2 {
		m.block(sr.Stats, sr.Reason.String())
		res.Status = StatusBlocked
		return res, nil
	}

	next := sr.Path[1]
	res.Status = StatusMoved
	res.To = next
	res.Cost = w.Graph.Cost(m.pos, next)
	m.pos = next
	m.blocked = 0
	m.arrived = next == m.target

	return res, nil
}

// block records a failed step. Caller holds mu.
func (m *Mover[N]) block(s astar.Stats, reason string) {
	m.blocked++
	m.logger.Warn("no path found",
		slog.String("agent", m.id.String()),
		slog.Any("from", m.pos),
		slog.Any("to", m.target),
		slog.String("reason", reason),
		slog.Int("iterations", s.Iterations),
		slog.Int("streak", m.blocked),
	)
}
