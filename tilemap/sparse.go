package tilemap

import (
	"fmt"
	"iter"
	"maps"
	"math"
	"sync"

	"github.com/katalvlaran/tilepath/astar"
)

// Sparse is an unbounded tile set: only tiles that were Set exist. It moves in
// four directions along X and Y; Z is carried through unchanged.
//
// Sparse is safe for concurrent use. A search iterates Neighbors lazily, so a
// caller that mutates tiles while searching should search a Snapshot instead.
type Sparse struct {
	mu         sync.RWMutex // guards costs and impassable
	costs      map[Point]float64
	impassable map[Point]struct{}
}

var _ astar.Graph[Point] = (*Sparse)(nil)

// NewSparse returns an empty tile set.
func NewSparse() *Sparse {
	return &Sparse{
		costs:      make(map[Point]float64),
		impassable: make(map[Point]struct{}),
	}
}

// Set stores p with the given entry cost and makes it passable.
// Returns ErrNegativeCost for a negative or NaN cost.
func (s *Sparse) Set(p Point, cost float64) error {
	if cost < 0 || math.IsNaN(cost) {
		return fmt.Errorf("%w: %v at %v", ErrNegativeCost, cost, p)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.costs[p] = cost
	delete(s.impassable, p)

	return nil
}

// SetImpassable marks p as blocked. A blocked tile keeps no cost.
func (s *Sparse) SetImpassable(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.costs, p)
	s.impassable[p] = struct{}{}
}

// Clear forgets p entirely.
func (s *Sparse) Clear(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.costs, p)
	delete(s.impassable, p)
}

// Len returns the number of passable tiles.
func (s *Sparse) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.costs)
}

// Passable reports whether p is a known, unblocked tile.
func (s *Sparse) Passable(p Point) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.costs[p]

	return ok
}

// Neighbors yields the known passable tiles at ±1 on X or Y.
func (s *Sparse) Neighbors(p Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, d := range offsets4 {
			q := p.Add(d)
			if !s.Passable(q) {
				continue
			}
			if !yield(q) {
				return
			}
		}
	}
}

// Cost returns the entry cost of to, or astar.Impassable if to is unknown or blocked.
func (s *Sparse) Cost(_, to Point) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.costs[to]; ok {
		return c
	}

	return astar.Impassable
}

// Snapshot returns an independent copy of the current tiles.
// Complexity: O(n).
func (s *Sparse) Snapshot() *Sparse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &Sparse{
		costs:      maps.Clone(s.costs),
		impassable: maps.Clone(s.impassable),
	}
}
