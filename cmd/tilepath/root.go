package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tilepath/config"
	"github.com/katalvlaran/tilepath/tilemap"
)

// app is the state shared by all subcommands, filled in by the root's
// PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	scenario *config.Scenario
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tilepath",
		Short: "A* pathfinding over weighted tile maps",
		Long: `tilepath finds least-cost paths over tile maps with A*.

Maps, search settings and agents come from a YAML scenario (--config);
without one a small built-in map is used.

Examples:
  tilepath find --from 0,0 --to 9,4
  tilepath simulate --config scenario.yaml --agents 20
  tilepath serve --config scenario.yaml --trace-stdout
  tilepath bench --width 128 --height 128 --queries 500`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "scenario YAML file")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (default from scenario)")
	pf.StringVar(&a.logFormat, "log-format", "", "text or json (default from scenario)")

	root.AddCommand(
		newFindCmd(a),
		newSimulateCmd(a),
		newServeCmd(a),
		newBenchCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	s := config.Default()
	if a.configPath != "" {
		var err error
		if s, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	a.scenario = s

	level, format := s.Log.Level, s.Log.Format
	if a.logLevel != "" {
		level = a.logLevel
	}
	if a.logFormat != "" {
		format = a.logFormat
	}
	logger, err := newLogger(cmd.ErrOrStderr(), level, format)
	if err != nil {
		return err
	}
	a.logger = logger

	return nil
}

// parsePoint reads "x,y".
func parsePoint(s string) (tilemap.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return tilemap.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return tilemap.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return tilemap.Point{}, fmt.Errorf("point %q: %w", s, err)
	}

	return tilemap.Pt(x, y), nil
}

func pointStrings(ps []tilemap.Point) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}

	return out
}
