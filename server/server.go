// Package server exposes a PathService over HTTP with chi and go-chi/render.
//
//	POST /api/paths   find a path          (PathRequest → PathResponse)
//	GET  /api/map     current map          (MapResponse)
//	GET  /api/agents  fleet positions      (when a fleet is attached)
//	GET  /healthz     liveness
//	GET  /metrics     Prometheus exposition (when metrics are attached)
package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/tilepath/metrics"
	"github.com/katalvlaran/tilepath/mover"
	"github.com/katalvlaran/tilepath/service"
	"github.com/katalvlaran/tilepath/tilemap"
)

// Server holds the HTTP handlers.
type Server struct {
	svc      *service.PathService
	fleet    *mover.Fleet[tilemap.Point]
	metrics  *metrics.Collector
	gatherer prometheus.Gatherer
	logger   *slog.Logger

	validate *validator.Validate
	trans    ut.Translator
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records request latencies in c and serves g on /metrics.
func WithMetrics(c *metrics.Collector, g prometheus.Gatherer) Option {
	return func(s *Server) { s.metrics, s.gatherer = c, g }
}

// WithFleet serves the agents of f on /api/agents.
func WithFleet(f *mover.Fleet[tilemap.Point]) Option {
	return func(s *Server) { s.fleet = f }
}

// WithLogger logs one record per request through l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// ErrNoTranslator indicates the validation message translator is unavailable.
var ErrNoTranslator = errors.New("server: no translator for locale")

// New returns a Server for svc. It fails only if the English validation
// messages cannot be registered.
func New(svc *service.PathService, opts ...Option) (*Server, error) {
	s := &Server{
		svc:      svc,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}

	trans, err := newTranslator(s.validate)
	if err != nil {
		return nil, err
	}
	s.trans = trans

	return s, nil
}

// newTranslator registers the English validation messages on v.
func newTranslator(v *validator.Validate) (ut.Translator, error) {
	english := en.New()
	uni := ut.New(english, english)
	trans, found := uni.GetTranslator(english.Locale())
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNoTranslator, english.Locale())
	}
	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("server: register translations: %w", err)
	}

	return trans, nil
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.healthz)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Post("/paths", s.findPath)
		r.Get("/map", s.getMap)
		if s.fleet != nil {
			r.Get("/agents", s.listAgents)
		}
	})

	return r
}

// observe logs every request and feeds the latency histogram.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		d := time.Since(start)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if s.metrics != nil {
			s.metrics.ObserveHTTP(r.Method, route, status, d)
		}
		s.logger.Info("http request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", d),
		)
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, "ok")
}
