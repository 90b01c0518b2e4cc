package mover_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/mover"
	"github.com/katalvlaran/tilepath/tilemap"
)

// fleetMap has two unique 4-move corridors and a wall in the middle.
var fleetMap = []string{
	".....",
	".###.",
	".....",
}

func newFleet(t *testing.T, opts ...mover.FleetOption) (*mover.Fleet[P], *tilemap.Grid) {
	t.Helper()
	g := grid(t, fleetMap...)
	f, err := mover.NewFleet(func() mover.World[P] { return world(g) }, opts...)
	require.NoError(t, err)

	return f, g
}

func agent(start, target P) *mover.Mover[P] {
	m := mover.New(start, manhattan)
	m.SetTarget(target)

	return m
}

func TestNewFleet_NilSource(t *testing.T) {
	_, err := mover.NewFleet[P](nil)
	assert.ErrorIs(t, err, mover.ErrNilSource)
}

func TestFleet_Tick(t *testing.T) {
	f, _ := newFleet(t, mover.WithWorkers(2))
	f.Add(
		agent(tilemap.Pt(0, 0), tilemap.Pt(4, 0)),
		agent(tilemap.Pt(0, 2), tilemap.Pt(4, 2)),
		agent(tilemap.Pt(0, 0), tilemap.Pt(2, 1)), // wall
		agent(tilemap.Pt(3, 2), tilemap.Pt(3, 2)), // already there
	)

	rep, err := f.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mover.TickReport{Tick: 1, Moved: 2, Arrived: 1, Blocked: 1, Cost: 2, Iterations: rep.Iterations}, rep)
	assert.Positive(t, rep.Iterations)

	ms := f.Movers()
	require.Len(t, ms, 4)
	assert.Equal(t, tilemap.Pt(1, 0), ms[0].Position())
	assert.Equal(t, tilemap.Pt(1, 2), ms[1].Position())
	assert.Equal(t, tilemap.Pt(0, 0), ms[2].Position())

	rep, err = f.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Tick)
}

// TestFleet_RunSettles: two agents arrive after four ticks, the third is stuck
// after three blocked steps, so the run ends after tick four.
func TestFleet_RunSettles(t *testing.T) {
	f, _ := newFleet(t, mover.WithMaxBlocked(3))
	f.Add(
		agent(tilemap.Pt(0, 0), tilemap.Pt(4, 0)),
		agent(tilemap.Pt(0, 2), tilemap.Pt(4, 2)),
		agent(tilemap.Pt(0, 0), tilemap.Pt(2, 1)),
	)

	var seen []mover.TickReport
	rep, err := f.Run(context.Background(), nil, 50, func(tr mover.TickReport) { seen = append(seen, tr) })
	require.NoError(t, err)
	assert.Equal(t, mover.RunReport{Ticks: 4, Arrived: 2, Stuck: 1, Cost: 8}, rep)
	require.Len(t, seen, 4)
	for i, tr := range seen {
		assert.Equal(t, i+1, tr.Tick)
		assert.Equal(t, 2, tr.Moved)
		assert.Equal(t, 1, tr.Blocked)
	}
}

func TestFleet_RunMaxTicks(t *testing.T) {
	f, _ := newFleet(t)
	f.Add(agent(tilemap.Pt(0, 0), tilemap.Pt(4, 2)))

	rep, err := f.Run(context.Background(), nil, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Ticks)
	assert.Zero(t, rep.Arrived)
	assert.Zero(t, rep.Stuck)
}

func TestFleet_RunEmptyIsSettled(t *testing.T) {
	f, _ := newFleet(t)
	rep, err := f.Run(context.Background(), nil, 0, nil)
	require.NoError(t, err)
	assert.Zero(t, rep.Ticks)
}

func TestFleet_RunRateLimited(t *testing.T) {
	f, _ := newFleet(t)
	f.Add(agent(tilemap.Pt(0, 0), tilemap.Pt(2, 0)))

	lim := rate.NewLimiter(rate.Every(5*time.Millisecond), 1)
	rep, err := f.Run(context.Background(), lim, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, mover.RunReport{Ticks: 2, Arrived: 1, Cost: 2}, rep)
}

func TestFleet_RunCancelled(t *testing.T) {
	f, _ := newFleet(t)
	f.Add(agent(tilemap.Pt(0, 0), tilemap.Pt(4, 2)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := f.Run(ctx, rate.NewLimiter(rate.Limit(1), 1), 0, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rep.Ticks)
}

func TestFleet_TickPropagatesErrors(t *testing.T) {
	f, _ := newFleet(t)
	bad := mover.New(tilemap.Pt(0, 0), manhattan, mover.WithMaxIterations[P](-1))
	bad.SetTarget(tilemap.Pt(4, 0))
	f.Add(agent(tilemap.Pt(0, 2), tilemap.Pt(4, 2)), bad)

	_, err := f.Tick(context.Background())
	assert.ErrorIs(t, err, astar.ErrOptionViolation)

	_, err = f.Run(context.Background(), nil, 10, nil)
	assert.ErrorIs(t, err, astar.ErrOptionViolation)
}

// TestFleet_Concurrent steps many agents on a random map with several workers
// and a source that counts how often the world is read.
func TestFleet_Concurrent(t *testing.T) {
	g := tilemap.Random(30, 30, 0.2, 7, tilemap.DefaultOptions())
	var reads atomic.Int32
	f, err := mover.NewFleet(func() mover.World[P] {
		reads.Add(1)
		return mover.World[P]{Graph: g, Reach: g.Components()}
	}, mover.WithWorkers(8), mover.WithMaxBlocked(1))
	require.NoError(t, err)

	for i := 0; i < 40; i++ {
		f.Add(agent(tilemap.Pt(i%30, 0), tilemap.Pt(29-i%30, 29)))
	}

	rep, err := f.Run(context.Background(), nil, 200, nil)
	require.NoError(t, err)
	assert.Equal(t, 40, rep.Arrived+rep.Stuck)
	assert.Equal(t, int32(rep.Ticks), reads.Load(), "one snapshot per tick")
}
