// Package metrics exports search and fleet statistics to Prometheus.
//
// A Collector registers its series on the registry it is given, so tests and
// embedders can use a private prometheus.Registry instead of the global one.
// Plug it into the engine with astar.WithOnFinish[tilemap.Point](c.Hook()).
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/mover"
)

const namespace = "tilepath"

// Collector holds the tilepath series.
type Collector struct {
	searches   *prometheus.CounterVec
	iterations prometheus.Histogram
	expanded   prometheus.Histogram
	pathLength prometheus.Histogram
	duration   *prometheus.HistogramVec
	ticks      prometheus.Counter
	agents     *prometheus.GaugeVec
	http       *prometheus.HistogramVec
}

// New registers the tilepath series on reg. A nil reg falls back to
// prometheus.DefaultRegisterer. Registering twice on the same registry panics,
// as promauto does.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Searches by stop reason (trivial, found, exhausted, budget).",
		}, []string{"reason"}),
		iterations: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_iterations",
			Help:      "Main-loop iterations per search, stale dequeues included.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		expanded: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_expanded_nodes",
			Help:      "Nodes closed per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		pathLength: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_length",
			Help:      "Nodes in returned paths, empty paths excluded.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall time per search by stop reason.",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}, []string{"reason"}),
		ticks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fleet",
			Name:      "ticks_total",
			Help:      "Fleet ticks run.",
		}),
		agents: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "fleet",
			Name:      "agents",
			Help:      "Agents per step status in the last tick.",
		}, []string{"status"}),
		http: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method, route pattern and status code.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route", "status"}),
	}
}

// ObserveSearch records one finished search.
func (c *Collector) ObserveSearch(s astar.Stats) {
	c.searches.WithLabelValues(s.Reason.String()).Inc()
	c.iterations.Observe(float64(s.Iterations))
	c.expanded.Observe(float64(s.Expanded))
	if s.PathLen > 0 {
		c.pathLength.Observe(float64(s.PathLen))
	}
}

// ObserveDuration records the wall time of a search that stopped for reason.
func (c *Collector) ObserveDuration(reason astar.Reason, d time.Duration) {
	c.duration.WithLabelValues(reason.String()).Observe(d.Seconds())
}

// ObserveTick records one fleet tick.
func (c *Collector) ObserveTick(r mover.TickReport) {
	c.ticks.Inc()
	c.agents.WithLabelValues(mover.StatusMoved.String()).Set(float64(r.Moved))
	c.agents.WithLabelValues(mover.StatusArrived.String()).Set(float64(r.Arrived))
	c.agents.WithLabelValues(mover.StatusBlocked.String()).Set(float64(r.Blocked))
}

// ObserveHTTP records one served request. route is the router pattern, not
// the raw path, to keep label cardinality bounded.
func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.http.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Hook returns an OnFinish callback feeding ObserveSearch; it is node-type
// agnostic, so one Collector serves every graph:
//
//	astar.Search(g, s, t, h, astar.WithOnFinish[P](c.Hook()))
func (c *Collector) Hook() func(astar.Stats) { return c.ObserveSearch }
