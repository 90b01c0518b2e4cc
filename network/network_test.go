package network_test

import (
	"math"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/heuristic"
	"github.com/katalvlaran/tilepath/network"
)

// TestAddEdge_Undirected stores both directions and counts the edge once.
func TestAddEdge_Undirected(t *testing.T) {
	n := network.New[string]()
	require.NoError(t, n.AddEdge("A", "B", 3))

	assert.True(t, n.HasEdge("A", "B"))
	assert.True(t, n.HasEdge("B", "A"))
	assert.Equal(t, 3.0, n.Cost("B", "A"))
	assert.Equal(t, 1, n.EdgeCount())
	assert.Equal(t, []string{"A", "B"}, n.Nodes())
	assert.False(t, n.Directed())
}

// TestAddEdge_Directed stores one direction only.
func TestAddEdge_Directed(t *testing.T) {
	n := network.New[string](network.WithDirected())
	require.NoError(t, n.AddEdge("A", "B", 3))

	assert.True(t, n.HasEdge("A", "B"))
	assert.False(t, n.HasEdge("B", "A"))
	assert.Equal(t, astar.Impassable, n.Cost("B", "A"))
	assert.Empty(t, slices.Collect(n.Neighbors("B")))
}

// TestAddEdge_Overwrite replaces the cost without duplicating adjacency.
func TestAddEdge_Overwrite(t *testing.T) {
	n := network.New[int]()
	require.NoError(t, n.AddEdge(1, 2, 5))
	require.NoError(t, n.AddEdge(1, 2, 7))

	assert.Equal(t, 7.0, n.Cost(2, 1))
	assert.Equal(t, []int{2}, slices.Collect(n.Neighbors(1)))
	assert.Equal(t, 1, n.EdgeCount())
}

// TestAddEdge_Errors rejects bad costs and loops.
func TestAddEdge_Errors(t *testing.T) {
	n := network.New[string]()
	assert.ErrorIs(t, n.AddEdge("A", "B", -1), network.ErrNegativeCost)
	assert.ErrorIs(t, n.AddEdge("A", "B", math.NaN()), network.ErrNegativeCost)
	assert.ErrorIs(t, n.AddEdge("A", "A", 1), network.ErrLoopNotAllowed)
	assert.Zero(t, n.NodeCount())

	loops := network.New[string](network.WithLoops())
	require.NoError(t, loops.AddEdge("A", "A", 1))
	assert.True(t, loops.HasEdge("A", "A"))
	assert.Empty(t, slices.Collect(loops.Neighbors("A")), "a node is never its own neighbor")
}

// TestRemoveEdge deletes both directions of an undirected edge.
func TestRemoveEdge(t *testing.T) {
	n := network.New[string]()
	require.NoError(t, n.AddEdge("A", "B", 1))
	require.NoError(t, n.AddEdge("A", "C", 1))

	require.NoError(t, n.RemoveEdge("B", "A"))
	assert.False(t, n.HasEdge("A", "B"))
	assert.False(t, n.HasEdge("B", "A"))
	assert.Equal(t, []string{"C"}, slices.Collect(n.Neighbors("A")))
	assert.Equal(t, 1, n.EdgeCount())

	assert.ErrorIs(t, n.RemoveEdge("A", "B"), network.ErrEdgeNotFound)
}

// TestRemoveNode drops the node and every incident edge.
func TestRemoveNode(t *testing.T) {
	d := network.New[string](network.WithDirected())
	require.NoError(t, d.AddEdge("A", "B", 1))
	require.NoError(t, d.AddEdge("B", "C", 1))
	require.NoError(t, d.AddEdge("C", "B", 1))

	require.NoError(t, d.RemoveNode("B"))
	assert.Equal(t, []string{"A", "C"}, d.Nodes())
	assert.Zero(t, d.EdgeCount())
	assert.False(t, d.HasNode("B"))
	assert.Empty(t, slices.Collect(d.Neighbors("A")))
	assert.ErrorIs(t, d.RemoveNode("B"), network.ErrNodeNotFound)

	u := network.New[string]()
	require.NoError(t, u.AddEdge("A", "B", 1))
	require.NoError(t, u.AddEdge("B", "C", 1))
	require.NoError(t, u.AddEdge("A", "C", 1))
	require.NoError(t, u.RemoveNode("B"))
	assert.Equal(t, 1, u.EdgeCount())
	assert.Equal(t, []string{"C"}, slices.Collect(u.Neighbors("A")))
}

// TestSearch_OverNetwork runs A* on a network and reacts to a closed road.
func TestSearch_OverNetwork(t *testing.T) {
	n := network.New[string]()
	require.NoError(t, n.AddEdge("home", "bridge", 2))
	require.NoError(t, n.AddEdge("bridge", "work", 2))
	require.NoError(t, n.AddEdge("home", "ford", 3))
	require.NoError(t, n.AddEdge("ford", "work", 4))

	path, err := astar.FindPath[string](n, "home", "work", heuristic.Zero[string], 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "bridge", "work"}, path)

	require.NoError(t, n.RemoveNode("bridge"))
	path, err = astar.FindPath[string](n, "home", "work", heuristic.Zero[string], 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "ford", "work"}, path)
}

// TestConcurrentAccess mixes writers and searches.
func TestConcurrentAccess(t *testing.T) {
	n := network.New[int]()
	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				_ = n.AddEdge(w*1000+i, w*1000+i+1, 1)
				_, _ = astar.FindPath[int](n, w*1000, w*1000+i, heuristic.Zero[int], 1000)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 400, n.EdgeCount())
	assert.Equal(t, 404, n.NodeCount())
}
