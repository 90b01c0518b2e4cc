package tilemap_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/tilemap"
)

// TestSparse_Basics covers Set, SetImpassable, Clear and the graph contract.
func TestSparse_Basics(t *testing.T) {
	s := tilemap.NewSparse()
	require.NoError(t, s.Set(tilemap.Pt(0, 0), 1))
	require.NoError(t, s.Set(tilemap.Pt(1, 0), 2))
	require.NoError(t, s.Set(tilemap.Pt(0, 1), 4))
	s.SetImpassable(tilemap.Pt(-1, 0))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []tilemap.Point{tilemap.Pt(1, 0), tilemap.Pt(0, 1)}, collect(s, tilemap.Pt(0, 0)))
	assert.Equal(t, 2.0, s.Cost(tilemap.Pt(0, 0), tilemap.Pt(1, 0)))
	assert.Equal(t, astar.Impassable, s.Cost(tilemap.Pt(0, 0), tilemap.Pt(-1, 0)))
	assert.Equal(t, astar.Impassable, s.Cost(tilemap.Pt(0, 0), tilemap.Pt(5, 5)))

	s.SetImpassable(tilemap.Pt(1, 0))
	assert.False(t, s.Passable(tilemap.Pt(1, 0)))
	assert.Equal(t, astar.Impassable, s.Cost(tilemap.Pt(0, 0), tilemap.Pt(1, 0)))

	require.NoError(t, s.Set(tilemap.Pt(1, 0), 3))
	assert.True(t, s.Passable(tilemap.Pt(1, 0)), "Set lifts the block")

	s.Clear(tilemap.Pt(1, 0))
	assert.False(t, s.Passable(tilemap.Pt(1, 0)))
	assert.Equal(t, 2, s.Len())
}

// TestSparse_RejectsNegativeCost keeps the graph contract intact.
func TestSparse_RejectsNegativeCost(t *testing.T) {
	s := tilemap.NewSparse()
	assert.ErrorIs(t, s.Set(tilemap.Pt(0, 0), -1), tilemap.ErrNegativeCost)
	assert.ErrorIs(t, s.Set(tilemap.Pt(0, 0), math.NaN()), tilemap.ErrNegativeCost)
	assert.Equal(t, 0, s.Len())
}

// TestSparse_KeepsLayer moves along X and Y only.
func TestSparse_KeepsLayer(t *testing.T) {
	s := tilemap.NewSparse()
	up := tilemap.Point{X: 0, Y: 0, Z: 1}
	require.NoError(t, s.Set(tilemap.Point{}, 1))
	require.NoError(t, s.Set(up, 1))

	assert.Empty(t, collect(s, tilemap.Point{}))
}

// TestSparse_Snapshot isolates a copy from later edits.
func TestSparse_Snapshot(t *testing.T) {
	s := tilemap.NewSparse()
	require.NoError(t, s.Set(tilemap.Pt(0, 0), 1))
	snap := s.Snapshot()

	require.NoError(t, s.Set(tilemap.Pt(1, 0), 1))
	s.SetImpassable(tilemap.Pt(0, 0))

	assert.True(t, snap.Passable(tilemap.Pt(0, 0)))
	assert.False(t, snap.Passable(tilemap.Pt(1, 0)))
	assert.Equal(t, 1, snap.Len())
}

// TestSparse_Concurrent hammers the lock with writers and readers.
func TestSparse_Concurrent(t *testing.T) {
	s := tilemap.NewSparse()
	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				p := tilemap.Pt(i, w)
				_ = s.Set(p, 1)
				for range s.Neighbors(p) {
				}
				_ = s.Cost(p, p.Add(tilemap.Pt(1, 0)))
				if i%3 == 0 {
					s.SetImpassable(p)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4*200-4*67, s.Len())
}
