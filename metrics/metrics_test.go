package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/heuristic"
	"github.com/katalvlaran/tilepath/metrics"
	"github.com/katalvlaran/tilepath/mover"
	"github.com/katalvlaran/tilepath/tilemap"
)

type P = tilemap.Point

func TestCollector_Hook(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	c := metrics.New(reg)

	g := tilemap.MustParse([]string{
		"....",
		".##.",
		"#...",
	}, tilemap.DefaultLegend(), tilemap.DefaultOptions())
	h := heuristic.Manhattan[P]
	hook := astar.WithOnFinish[P](c.Hook())

	_, err := astar.Search[P](g, tilemap.Pt(0, 0), tilemap.Pt(3, 2), h, hook)
	require.NoError(t, err)
	_, err = astar.Search[P](g, tilemap.Pt(0, 0), tilemap.Pt(0, 0), h, hook)
	require.NoError(t, err)
	_, err = astar.Search[P](g, tilemap.Pt(0, 0), tilemap.Pt(0, 2), h, hook)
	require.NoError(t, err)

	expected := `
# HELP tilepath_searches_total Searches by stop reason (trivial, found, exhausted, budget).
# TYPE tilepath_searches_total counter
tilepath_searches_total{reason="exhausted"} 1
tilepath_searches_total{reason="found"} 1
tilepath_searches_total{reason="trivial"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "tilepath_searches_total"))

	// Path length skips the empty result of the exhausted search.
	n, err := testutil.GatherAndCount(reg, "tilepath_path_length", "tilepath_search_iterations")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		switch mf.GetName() {
		case "tilepath_path_length":
			assert.Equal(t, uint64(2), mf.GetMetric()[0].GetHistogram().GetSampleCount())
		case "tilepath_search_iterations":
			assert.Equal(t, uint64(3), mf.GetMetric()[0].GetHistogram().GetSampleCount())
		}
	}
}

func TestCollector_Duration(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	c.ObserveDuration(astar.ReasonFound, 3*time.Millisecond)
	c.ObserveDuration(astar.ReasonFound, time.Millisecond)
	c.ObserveDuration(astar.ReasonBudget, time.Millisecond)

	n, err := testutil.GatherAndCount(reg, "tilepath_search_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per reason")
}

func TestCollector_Tick(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	c.ObserveTick(mover.TickReport{Tick: 1, Moved: 3, Arrived: 1, Blocked: 2})
	c.ObserveTick(mover.TickReport{Tick: 2, Moved: 1, Arrived: 4, Blocked: 1})

	expected := `
# HELP tilepath_fleet_agents Agents per step status in the last tick.
# TYPE tilepath_fleet_agents gauge
tilepath_fleet_agents{status="arrived"} 4
tilepath_fleet_agents{status="blocked"} 1
tilepath_fleet_agents{status="moved"} 1
# HELP tilepath_fleet_ticks_total Fleet ticks run.
# TYPE tilepath_fleet_ticks_total counter
tilepath_fleet_ticks_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"tilepath_fleet_agents", "tilepath_fleet_ticks_total"))
}

func TestNew_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	assert.Panics(t, func() { metrics.New(reg) })
}

func TestCollector_HTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	c.ObserveHTTP("POST", "/api/paths", 200, time.Millisecond)
	c.ObserveHTTP("POST", "/api/paths", 400, time.Millisecond)
	c.ObserveHTTP("POST", "/api/paths", 200, 2*time.Millisecond)

	n, err := testutil.GatherAndCount(reg, "tilepath_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
