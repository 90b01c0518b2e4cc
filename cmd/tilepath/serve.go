package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tilepath/config"
	"github.com/katalvlaran/tilepath/metrics"
	"github.com/katalvlaran/tilepath/mover"
	"github.com/katalvlaran/tilepath/server"
	"github.com/katalvlaran/tilepath/service"
	"github.com/katalvlaran/tilepath/tilemap"
)

type serveOptions struct {
	addr        string
	watch       bool
	traceStdout bool
	simulate    bool
	traceOut    io.Writer

	// ready, when set, receives the bound address once the listener is up.
	ready func(addr string)
}

func newServeCmd(a *app) *cobra.Command {
	o := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve path queries over HTTP",
		Long: `Serve the scenario map over HTTP:

  POST /api/paths   {"from":{"x":0,"y":0},"to":{"x":9,"y":4}}
  GET  /api/map
  GET  /api/agents  (with --simulate)
  GET  /healthz
  GET  /metrics

With --config the scenario file is watched and the map hot-reloaded on
every save; queries in flight finish on the map they started with.`,
		Example: `  tilepath serve --config scenario.yaml --addr :8080 --simulate`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o.traceOut = cmd.OutOrStdout()
			return runServe(cmd.Context(), a, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.addr, "addr", "", "listen address (default from scenario)")
	f.BoolVar(&o.watch, "watch", true, "hot-reload the --config file")
	f.BoolVar(&o.traceStdout, "trace-stdout", false, "export OpenTelemetry spans to stdout")
	f.BoolVar(&o.simulate, "simulate", false, "run the scenario fleet in the background")

	return cmd
}

func runServe(ctx context.Context, a *app, o *serveOptions) error {
	s := a.scenario
	logger := a.logger

	svcOpts := []service.Option{service.WithLogger(logger)}
	if o.traceStdout {
		tp, shutdown, err := setupStdoutTracing(o.traceOut)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(sctx)
		}()
		svcOpts = append(svcOpts, service.WithTracerProvider(tp))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	col := metrics.New(reg)
	svcOpts = append(svcOpts, service.WithMetrics(col))

	svc, err := service.New(s, svcOpts...)
	if err != nil {
		return err
	}

	srvOpts := []server.Option{server.WithMetrics(col, reg), server.WithLogger(logger)}
	var fleet *mover.Fleet[tilemap.Point]
	if o.simulate {
		if fleet, err = newFleet(svc, logger); err != nil {
			return err
		}
		srvOpts = append(srvOpts, server.WithFleet(fleet))
	}

	addr := s.Server.Addr
	if o.addr != "" {
		addr = o.addr
	}
	srv, err := server.New(svc, srvOpts...)
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	httpSrv := &http.Server{
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", slog.String("addr", ln.Addr().String()))
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), s.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return httpSrv.Shutdown(sctx)
	})

	if o.watch && a.configPath != "" {
		g.Go(func() error {
			return config.Watch(gctx, a.configPath, config.DefaultDebounce, func(next *config.Scenario, err error) {
				if err != nil {
					logger.Warn("scenario reload failed", slog.String("error", err.Error()))
					return
				}
				if err = svc.Reload(next); err != nil {
					logger.Warn("scenario rejected", slog.String("error", err.Error()))
				}
			})
		})
	}

	if fleet != nil {
		g.Go(func() error {
			_, err := fleet.Run(gctx, limiter(s.Fleet.TickRate), s.Fleet.MaxTicks, col.ObserveTick)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if o.ready != nil {
		o.ready(ln.Addr().String())
	}

	return g.Wait()
}
