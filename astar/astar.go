// Package astar implements the A* best-first search over any Graph.
//
// Notes on implementation choices:
//
//   - All search state (open set, closed set, g/f scores, predecessors, queue)
//     lives in a runner created per call; nothing survives the call.
//   - The open set is tracked in a map independently of the queue, so membership
//     checks are O(1) whatever duplicates the queue holds.
//   - The queue has no decrease-key. Under PolicyReinsert an improved open node
//     is enqueued again and the stale entry is dropped when popped (it is already
//     closed by then). Under PolicyKeepFirst the queue keeps the first priority.
//   - The iteration counter counts dequeues, stale ones included, so the budget
//     bounds the work done regardless of policy.
package astar

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/katalvlaran/tilepath/pqueue"
)

// FindPath returns the cheapest path from start to goal, both inclusive, found
// within maxIterations iterations.
//
// An empty, non-nil slice means "no path within budget": the goal is
// unreachable or the budget ran out first. Callers in a dynamic world should
// simply try again later. The error is reserved for configuration faults:
// ErrNilGraph, ErrNilHeuristic, ErrOptionViolation (negative budget) and
// ErrNegativeCost.
//
// FindPath(g, n, n, h, k) returns [n] for any g and any k ≥ 0.
func FindPath[N comparable](g Graph[N], start, goal N, h Heuristic[N], maxIterations int) ([]N, error) {
	res, err := Search(g, start, goal, h, WithMaxIterations[N](maxIterations))
	if err != nil {
		return nil, err
	}

	return res.Path, nil
}

// AppendPath is FindPath writing into a caller-supplied slice: the path is
// appended to dst and the extended slice returned. On "no path" dst comes back
// unchanged; on error dst is returned as is together with the error.
func AppendPath[N comparable](dst []N, g Graph[N], start, goal N, h Heuristic[N], maxIterations int) ([]N, error) {
	path, err := FindPath(g, start, goal, h, maxIterations)
	if err != nil {
		return dst, err
	}

	return append(dst, path...), nil
}

// Search runs A* from start to goal and returns the path plus statistics.
//
// Preconditions and validation (in order):
//  1. every Option must be valid (ErrOptionViolation).
//  2. g must be non-nil (ErrNilGraph).
//  3. h must be non-nil (ErrNilHeuristic).
//
// Algorithm:
//  1. start == goal → [start], no search.
//  2. open = {start}, g[start] = 0, f[start] = h(start, goal), queue = {(start, f)}.
//  3. While the queue is non-empty and iterations < MaxIterations:
//     dequeue the cheapest node, leave the open set, return the path if it is
//     the goal, close it, then relax every non-closed neighbor.
//  4. Loop exit without the goal → empty path.
//
// Complexity:
//
//   - Time:  O((V + E) log V) in the worst case, usually far less with a good heuristic.
//   - Space: O(V + E) (E bounds queue duplicates under PolicyReinsert).
func Search[N comparable](g Graph[N], start, goal N, h Heuristic[N], opts ...Option[N]) (Result[N], error) {
	cfg := DefaultOptions[N]()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return Result[N]{Path: []N{}}, cfg.err
	}
	if g == nil {
		return Result[N]{Path: []N{}}, ErrNilGraph
	}
	if h == nil {
		return Result[N]{Path: []N{}}, ErrNilHeuristic
	}

	var res Result[N]
	if start == goal {
		res = Result[N]{
			Path:  []N{start},
			Found: true,
			Stats: Stats{Reason: ReasonTrivial, PathLen: 1},
		}
	} else {
		r := newRunner(g, goal, h, cfg)
		var err error
		if res, err = r.run(start); err != nil {
			return Result[N]{Path: []N{}}, err
		}
	}

	cfg.Logger.Debug("astar: search finished",
		slog.String("reason", res.Reason.String()),
		slog.Int("iterations", res.Iterations),
		slog.Int("expanded", res.Expanded),
		slog.Int("enqueued", res.Enqueued),
		slog.Int("path_len", res.PathLen),
		slog.Float64("cost", res.Cost),
	)
	cfg.OnFinish(res.Stats)

	return res, nil
}

// runner holds the mutable state of a single search.
type runner[N comparable] struct {
	g    Graph[N]
	h    Heuristic[N]
	goal N
	cfg  Options[N]

	open   map[N]struct{} // membership of the frontier, independent of queue layout
	closed map[N]struct{} // expanded nodes; never re-opened
	gScore map[N]float64  // best known cost from start; absent means +∞
	fScore map[N]float64  // gScore + heuristic; the queue key
	prev   map[N]N        // cheapest known predecessor
	pq     *pqueue.PriorityQueue[N, float64]

	stats Stats
}

func newRunner[N comparable](g Graph[N], goal N, h Heuristic[N], cfg Options[N]) *runner[N] {
	return &runner[N]{
		g:      g,
		h:      h,
		goal:   goal,
		cfg:    cfg,
		open:   make(map[N]struct{}),
		closed: make(map[N]struct{}),
		gScore: make(map[N]float64),
		fScore: make(map[N]float64),
		prev:   make(map[N]N),
		pq:     pqueue.New[N, float64](),
	}
}

func (r *runner[N]) run(start N) (Result[N], error) {
	f := r.h(start, r.goal)
	r.gScore[start] = 0
	r.fScore[start] = f
	r.push(start, f)

	for r.pq.Count() > 0 && r.stats.Iterations < r.cfg.MaxIterations {
		r.stats.Iterations++
		it, err := r.pq.DequeueItem()
		if err != nil {
			// unreachable: Count was checked above
			return Result[N]{}, err
		}
		cur := it.Element

		// Stale duplicate left behind by PolicyReinsert.
		if _, done := r.closed[cur]; done {
			continue
		}
		delete(r.open, cur)

		if cur == r.goal {
			return r.found(cur), nil
		}

		r.closed[cur] = struct{}{}
		r.stats.Expanded++
		r.cfg.OnExpand(cur)

		if err = r.relax(cur); err != nil {
			return Result[N]{}, err
		}
	}

	// Entries left for closed nodes are stale; only open nodes are live work.
	r.stats.Reason = ReasonExhausted
	if len(r.open) > 0 {
		r.stats.Reason = ReasonBudget
	}

	return Result[N]{Path: []N{}, Stats: r.stats}, nil
}

// relax examines every neighbor of cur that is not closed and records any
// strictly cheaper route through cur. g, f and predecessor are written together.
func (r *runner[N]) relax(cur N) error {
	gCur := r.gScore[cur]
	for nb := range r.g.Neighbors(cur) {
		if _, done := r.closed[nb]; done {
			continue
		}

		w := r.g.Cost(cur, nb)
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: %v→%v cost=%v", ErrNegativeCost, cur, nb, w)
		}
		if w >= r.cfg.ImpassableThreshold {
			continue
		}

		tentative := gCur + w
		if old, seen := r.gScore[nb]; seen && tentative >= old {
			continue
		}

		f := tentative + r.h(nb, r.goal)
		r.gScore[nb] = tentative
		r.fScore[nb] = f
		r.prev[nb] = cur

		if _, isOpen := r.open[nb]; isOpen && r.cfg.Policy == PolicyKeepFirst {
			continue
		}
		r.open[nb] = struct{}{}
		r.push(nb, f)
	}

	return nil
}

func (r *runner[N]) push(n N, f float64) {
	r.pq.Enqueue(n, f)
	r.stats.Enqueued++
	r.cfg.OnEnqueue(n, f)
}

// found reconstructs the path ending at goal by walking predecessor links
// back to the start, then reversing.
func (r *runner[N]) found(goal N) Result[N] {
	path := []N{goal}
	for cur := goal; ; {
		p, ok := r.prev[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}
	slices.Reverse(path)

	r.stats.Reason = ReasonFound
	r.stats.PathLen = len(path)
	r.stats.Cost = r.gScore[goal]

	return Result[N]{Path: path, Cost: r.stats.Cost, Found: true, Stats: r.stats}
}
