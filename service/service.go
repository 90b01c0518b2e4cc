// Package service answers path queries against a hot-swappable tile map.
//
// A PathService owns one immutable snapshot at a time: the scenario, the grid
// built from it and the grid's connected components. Reload swaps the whole
// snapshot atomically, so a query in flight keeps the map it started with and
// the next query sees the new one. Every query runs in an OpenTelemetry span
// and, when a metrics.Collector is attached, feeds Prometheus.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/config"
	"github.com/katalvlaran/tilepath/metrics"
	"github.com/katalvlaran/tilepath/mover"
	"github.com/katalvlaran/tilepath/tilemap"
)

// ErrNilScenario indicates New or Reload was given no scenario.
var ErrNilScenario = errors.New("service: scenario is nil")

const tracerName = "github.com/katalvlaran/tilepath/service"

// Request is one path query. Zero-valued overrides keep the scenario's setting.
type Request struct {
	From          tilemap.Point
	To            tilemap.Point
	Heuristic     string
	Policy        string
	MaxIterations *int
}

// Response is the answer to a Request.
type Response struct {
	Path    []tilemap.Point
	Cost    float64
	Found   bool
	Stats   astar.Stats
	Overlay []string // map rows with the path drawn on them
	Version uint64   // map version the query ran against
}

// MapInfo describes the current snapshot.
type MapInfo struct {
	Rows         []string
	Width        int
	Height       int
	Connectivity tilemap.Connectivity
	Components   int
	Version      uint64
}

type snapshot struct {
	scenario *config.Scenario
	grid     *tilemap.Grid
	comps    *tilemap.Components
	h        astar.Heuristic[tilemap.Point]
	opts     []astar.Option[tilemap.Point]
	version  uint64
}

// PathService is safe for concurrent use.
type PathService struct {
	snap    atomic.Pointer[snapshot]
	version atomic.Uint64

	metrics *metrics.Collector
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures a PathService.
type Option func(*PathService)

// WithMetrics feeds every search into c.
func WithMetrics(c *metrics.Collector) Option {
	return func(p *PathService) { p.metrics = c }
}

// WithLogger sets the service logger; searches log through it at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(p *PathService) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTracerProvider overrides the global otel tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *PathService) {
		if tp != nil {
			p.tracer = tp.Tracer(tracerName)
		}
	}
}

// New builds a service serving s.
func New(s *config.Scenario, opts ...Option) (*PathService, error) {
	p := &PathService{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.Reload(s); err != nil {
		return nil, err
	}

	return p, nil
}

// Reload validates s, builds its grid and swaps it in. On error the current
// snapshot stays.
func (p *PathService) Reload(s *config.Scenario) error {
	if s == nil {
		return ErrNilScenario
	}
	if err := s.Validate(); err != nil {
		return err
	}
	g, err := s.Grid()
	if err != nil {
		return err
	}
	h, err := s.Heuristic(g)
	if err != nil {
		return err
	}
	opts, err := s.SearchOptions()
	if err != nil {
		return err
	}
	snap := &snapshot{scenario: s, grid: g, comps: g.Components(), h: h, opts: opts, version: p.version.Add(1)}
	p.snap.Store(snap)
	p.logger.Info("map loaded",
		slog.Uint64("version", snap.version),
		slog.Int("width", g.Width()),
		slog.Int("height", g.Height()),
		slog.Int("components", snap.comps.Len()),
	)

	return nil
}

// Scenario returns the scenario currently served.
func (p *PathService) Scenario() *config.Scenario { return p.snap.Load().scenario }

// Grid returns the grid currently served.
func (p *PathService) Grid() *tilemap.Grid { return p.snap.Load().grid }

// World returns the current snapshot as a mover world: reachability, the
// heuristic scaled for this grid and the scenario's search options included.
// Pass p.World as a Fleet source to have agents follow reloads.
func (p *PathService) World() mover.World[tilemap.Point] {
	s := p.snap.Load()

	return mover.World[tilemap.Point]{Graph: s.grid, Reach: s.comps, Heuristic: s.h, Options: s.opts}
}

// Map describes the current snapshot.
func (p *PathService) Map() MapInfo {
	s := p.snap.Load()

	return MapInfo{
		Rows:         s.grid.Rows(),
		Width:        s.grid.Width(),
		Height:       s.grid.Height(),
		Connectivity: s.grid.Connectivity(),
		Components:   s.comps.Len(),
		Version:      s.version,
	}
}

// FindPath answers req against the current snapshot.
//
// Endpoints off the map yield tilemap.ErrOutOfBounds; bad overrides yield
// heuristic.ErrUnknownHeuristic or astar.ErrOptionViolation. When the
// endpoints lie in different components the search is skipped and an empty
// path with ReasonExhausted is returned.
func (p *PathService) FindPath(ctx context.Context, req Request) (Response, error) {
	ctx, span := p.tracer.Start(ctx, "service.FindPath",
		trace.WithAttributes(
			attribute.String("from", req.From.String()),
			attribute.String("to", req.To.String()),
		),
	)
	defer span.End()

	resp, err := p.findPath(ctx, req, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Response{}, err
	}
	span.SetAttributes(
		attribute.Bool("found", resp.Found),
		attribute.String("reason", resp.Stats.Reason.String()),
		attribute.Int("iterations", resp.Stats.Iterations),
		attribute.Int("expanded", resp.Stats.Expanded),
		attribute.Int("path_len", len(resp.Path)),
		attribute.Float64("cost", resp.Cost),
		attribute.Int64("map_version", int64(resp.Version)),
	)
	span.SetStatus(codes.Ok, "")

	return resp, nil
}

func (p *PathService) findPath(ctx context.Context, req Request, span trace.Span) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	s := p.snap.Load()
	g := s.grid
	for _, pt := range []tilemap.Point{req.From, req.To} {
		if !g.InBounds(pt) {
			return Response{}, fmt.Errorf("%w: %v on %dx%d map", tilemap.ErrOutOfBounds, pt, g.Width(), g.Height())
		}
	}

	sc := *s.scenario
	if req.Heuristic != "" {
		sc.Search.Heuristic = req.Heuristic
	}
	if req.Policy != "" {
		sc.Search.Policy = req.Policy
	}
	if req.MaxIterations != nil {
		sc.Search.MaxIterations = *req.MaxIterations
	}
	h, err := sc.Heuristic(g)
	if err != nil {
		return Response{}, err
	}
	opts, err := sc.SearchOptions()
	if err != nil {
		return Response{}, err
	}
	span.SetAttributes(
		attribute.String("heuristic", sc.HeuristicName()),
		attribute.String("policy", sc.Search.Policy),
		attribute.Int("max_iterations", sc.Search.MaxIterations),
	)

	resp := Response{Version: s.version}
	if req.From != req.To && !s.comps.Connected(req.From, req.To) {
		span.SetAttributes(attribute.Bool("unreachable", true))
		resp.Path = []tilemap.Point{}
		resp.Stats = astar.Stats{Reason: astar.ReasonExhausted}
		if p.metrics != nil {
			p.metrics.ObserveSearch(resp.Stats)
		}
		resp.Overlay = g.Rows()

		return resp, nil
	}

	opts = append(opts, astar.WithLogger[tilemap.Point](p.logger))
	if p.metrics != nil {
		opts = append(opts, astar.WithOnFinish[tilemap.Point](p.metrics.Hook()))
	}
	start := time.Now()
	res, err := astar.Search[tilemap.Point](g, req.From, req.To, h, opts...)
	if err != nil {
		return Response{}, err
	}
	if p.metrics != nil {
		p.metrics.ObserveDuration(res.Reason, time.Since(start))
	}

	resp.Path = res.Path
	resp.Cost = res.Cost
	resp.Found = res.Found
	resp.Stats = res.Stats
	resp.Overlay = g.Overlay(res.Path)

	return resp, nil
}
