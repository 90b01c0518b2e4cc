// Package astar defines the graph contract, options, results and sentinel
// errors for the A* search engine.
package astar

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"math"
)

// Sentinel errors returned by Search, FindPath and AppendPath.
// None of them means "no path": an unreachable goal or an exhausted budget is
// reported as an empty path with a nil error.
var (
	// ErrNilGraph indicates that a nil Graph was passed.
	ErrNilGraph = errors.New("astar: graph is nil")

	// ErrNilHeuristic indicates that a nil Heuristic was passed.
	ErrNilHeuristic = errors.New("astar: heuristic is nil")

	// ErrOptionViolation indicates an invalid Option (negative budget, bad threshold…).
	ErrOptionViolation = errors.New("astar: invalid option supplied")

	// ErrNegativeCost indicates that the graph returned a negative or NaN edge cost,
	// which breaks the Graph contract.
	ErrNegativeCost = errors.New("astar: graph returned a negative or NaN edge cost")
)

// Impassable is the cost a Graph returns for a nominally blocked or unknown
// destination. It is finite, so it flows through g-score arithmetic without
// special-casing, and any real alternative is always cheaper.
const Impassable = math.MaxFloat64

const (
	// DefaultMaxIterations is the iteration budget used when none is supplied.
	DefaultMaxIterations = 1000

	// NoIterationLimit disables the iteration budget.
	NoIterationLimit = math.MaxInt
)

// Graph is the capability a data source must offer to be searched.
// N is the node type; nodes are compared and hashed by value.
type Graph[N comparable] interface {
	// Neighbors yields the nodes directly reachable from n. It must be finite
	// and must not yield n itself. Order only affects exploration among ties.
	Neighbors(n N) iter.Seq[N]

	// Cost returns the non-negative cost of moving from `from` to the adjacent
	// `to`. Blocked or unknown destinations return Impassable, never an error
	// and never a negative value.
	Cost(from, to N) float64
}

// Heuristic estimates the remaining cost between two nodes. It must never
// overestimate (admissible) for the returned path to be optimal; consistency
// additionally guarantees no closed node would ever need re-opening.
type Heuristic[N comparable] func(from, to N) float64

// Policy selects what happens when an already-open node is reached more cheaply.
type Policy int

const (
	// PolicyReinsert enqueues the node again with its improved f-score and
	// skips the stale entry when it surfaces later (lazy decrease-key).
	PolicyReinsert Policy = iota

	// PolicyKeepFirst records the improvement in the score maps and the
	// predecessor map but leaves the queue untouched, so the node keeps the
	// priority it was first enqueued with.
	PolicyKeepFirst
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case PolicyReinsert:
		return "reinsert"
	case PolicyKeepFirst:
		return "keep-first"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps "reinsert" / "keep-first" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "reinsert":
		return PolicyReinsert, nil
	case "keep-first":
		return PolicyKeepFirst, nil
	default:
		return 0, fmt.Errorf("%w: unknown policy %q", ErrOptionViolation, s)
	}
}

// Reason tells why a search stopped.
type Reason int

const (
	// ReasonTrivial: start equals goal, no search was run.
	ReasonTrivial Reason = iota
	// ReasonFound: the goal was dequeued and the path reconstructed.
	ReasonFound
	// ReasonExhausted: no open node is left, the goal is unreachable from start.
	// Stale queue entries of closed nodes do not count as open.
	ReasonExhausted
	// ReasonBudget: the iteration budget ran out with open nodes still pending.
	ReasonBudget
)

// String implements fmt.Stringer; the values double as metric labels.
func (r Reason) String() string {
	switch r {
	case ReasonTrivial:
		return "trivial"
	case ReasonFound:
		return "found"
	case ReasonExhausted:
		return "exhausted"
	case ReasonBudget:
		return "budget"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Stats summarises one search. It is what WithOnFinish hooks receive.
type Stats struct {
	Reason     Reason
	Iterations int     // loop iterations (dequeues), stale ones included
	Expanded   int     // nodes moved to the closed set
	Enqueued   int     // queue insertions, start included
	PathLen    int     // len(Result.Path)
	Cost       float64 // g-score of the goal when found, 0 otherwise
}

// Result holds the outcome of Search.
type Result[N comparable] struct {
	// Path runs start → goal inclusive; empty (never nil) when nothing was found.
	Path []N
	// Cost is the accumulated edge cost along Path.
	Cost float64
	// Found reports whether Path reaches the goal.
	Found bool
	Stats
}

// Options configures Search.
type Options[N comparable] struct {
	// MaxIterations caps the number of main-loop iterations. 0 runs no iteration
	// at all (only the start == goal shortcut can succeed).
	MaxIterations int

	// Policy chooses how improved open nodes are handled.
	Policy Policy

	// ImpassableThreshold skips edges whose cost is ≥ the threshold.
	// The default is Impassable, so only edges a Graph marks as blocked are skipped.
	ImpassableThreshold float64

	// Logger receives a debug record per search. Defaults to a discard logger.
	Logger *slog.Logger

	// OnExpand is called when a node is moved to the closed set.
	OnExpand func(n N)

	// OnEnqueue is called for every queue insertion with the node's f-score.
	OnEnqueue func(n N, f float64)

	// OnFinish is called once per search, after the result is known.
	OnFinish func(s Stats)

	// internal error recorded during option parsing
	err error
}

// Option configures Search via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation when Search runs.
type Option[N comparable] func(*Options[N])

// DefaultOptions returns:
//   - MaxIterations: DefaultMaxIterations (1000)
//   - Policy: PolicyReinsert
//   - ImpassableThreshold: Impassable
//   - Logger: discard
//   - no-op hooks
func DefaultOptions[N comparable]() Options[N] {
	return Options[N]{
		MaxIterations:       DefaultMaxIterations,
		Policy:              PolicyReinsert,
		ImpassableThreshold: Impassable,
		Logger:              slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnExpand:            func(N) {},
		OnEnqueue:           func(N, float64) {},
		OnFinish:            func(Stats) {},
	}
}

// WithMaxIterations sets the iteration budget.
//
//	n > 0: at most n iterations
//	n == 0: no iteration runs; start ≠ goal yields an empty path
//	n < 0: invalid → ErrOptionViolation
func WithMaxIterations[N comparable](n int) Option[N] {
	return func(o *Options[N]) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxIterations cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithPolicy selects the open-set policy.
func WithPolicy[N comparable](p Policy) Option[N] {
	return func(o *Options[N]) {
		if p != PolicyReinsert && p != PolicyKeepFirst {
			o.err = fmt.Errorf("%w: unknown policy %d", ErrOptionViolation, int(p))
			return
		}
		o.Policy = p
	}
}

// WithImpassableThreshold treats edges with cost ≥ t as walls. Must be > 0.
// Pass math.Inf(1) to let Impassable edges through as ordinary, very expensive ones.
func WithImpassableThreshold[N comparable](t float64) Option[N] {
	return func(o *Options[N]) {
		if !(t > 0) {
			o.err = fmt.Errorf("%w: ImpassableThreshold must be positive (%v)", ErrOptionViolation, t)
			return
		}
		o.ImpassableThreshold = t
	}
}

// WithLogger routes the per-search debug record to l. A nil logger is ignored.
func WithLogger[N comparable](l *slog.Logger) Option[N] {
	return func(o *Options[N]) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnExpand registers a callback run when a node is closed.
func WithOnExpand[N comparable](fn func(n N)) Option[N] {
	return func(o *Options[N]) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithOnEnqueue registers a callback run on every queue insertion.
func WithOnEnqueue[N comparable](fn func(n N, f float64)) Option[N] {
	return func(o *Options[N]) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnFinish registers a callback run once the search has stopped.
func WithOnFinish[N comparable](fn func(s Stats)) Option[N] {
	return func(o *Options[N]) {
		if fn != nil {
			o.OnFinish = fn
		}
	}
}
