// Package config loads tilepath scenarios: a tile map, search settings, a set
// of agents and the ambient settings of the CLI and HTTP server.
//
// Scenarios are YAML documents decoded with gopkg.in/yaml.v3 over Default()
// and checked with go-playground/validator struct tags, so a file only needs
// the keys it changes:
//
//	map:
//	  rows:
//	    - "....."
//	    - ".##.."
//	  connectivity: "8"
//	search:
//	  heuristic: octile
//	  max_iterations: 5000
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/heuristic"
	"github.com/katalvlaran/tilepath/tilemap"
)

var (
	// ErrInvalidScenario wraps decoding and validation failures.
	ErrInvalidScenario = errors.New("config: invalid scenario")

	// ErrAgentOutOfBounds indicates an agent start or target off the map.
	ErrAgentOutOfBounds = errors.New("config: agent outside the map")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Scenario is the root document.
type Scenario struct {
	Map    Map    `yaml:"map" validate:"required"`
	Search Search `yaml:"search"`
	Fleet  Fleet  `yaml:"fleet"`
	Server Server `yaml:"server"`
	Log    Log    `yaml:"log"`
}

// Map describes the tile grid.
type Map struct {
	Rows         []string `yaml:"rows" validate:"required,min=1,dive,required"`
	Connectivity string   `yaml:"connectivity" validate:"omitempty,oneof=4 8"`
	Legend       []Tile   `yaml:"legend" validate:"dive"`
}

// Tile adds or overrides one legend glyph.
type Tile struct {
	Glyph    string  `yaml:"glyph" validate:"required,len=1"`
	Name     string  `yaml:"name"`
	Cost     float64 `yaml:"cost" validate:"gte=0"`
	Passable bool    `yaml:"passable"`
}

// Search holds engine settings.
type Search struct {
	// Heuristic is a heuristic.ByName name; empty picks manhattan for 4- and
	// octile for 8-connected maps.
	Heuristic     string  `yaml:"heuristic" validate:"omitempty,oneof=manhattan euclidean chebyshev octile zero dijkstra"`
	MaxIterations int     `yaml:"max_iterations" validate:"gte=0"`
	Policy        string  `yaml:"policy" validate:"omitempty,oneof=reinsert keep-first"`
	Weight        float64 `yaml:"weight" validate:"omitempty,gte=1"`
}

// Fleet configures the simulation.
type Fleet struct {
	Agents     []Agent `yaml:"agents" validate:"dive"`
	TickRate   float64 `yaml:"tick_rate" validate:"gte=0"` // ticks per second, 0 = unpaced
	Workers    int     `yaml:"workers" validate:"gte=0"`
	MaxTicks   int     `yaml:"max_ticks" validate:"gte=0"`
	MaxBlocked int     `yaml:"max_blocked" validate:"gte=0"`
}

// Agent is one mover: start and target are [x, y].
type Agent struct {
	ID     string `yaml:"id" validate:"omitempty,uuid"`
	Start  []int  `yaml:"start" validate:"len=2"`
	Target []int  `yaml:"target" validate:"len=2"`
}

// Server configures `tilepath serve`.
type Server struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Default returns a ready-to-run scenario with a small built-in map and no
// agents.
func Default() *Scenario {
	return &Scenario{
		Map: Map{
			Rows: []string{
				"..........",
				"..hh..###.",
				".~~h....#.",
				".~~...f.#.",
				"......f...",
			},
			Connectivity: "4",
		},
		Search: Search{
			MaxIterations: astar.DefaultMaxIterations,
			Policy:        astar.PolicyReinsert.String(),
			Weight:        1,
		},
		Fleet: Fleet{
			TickRate:   10,
			Workers:    4,
			MaxTicks:   500,
			MaxBlocked: 3,
		},
		Server: Server{Addr: ":8080", ShutdownTimeout: 5 * time.Second},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Parse decodes data over Default() and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	s := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Load reads and parses the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Validate checks the struct tags, then that the map parses and every agent
// lies on it.
func (s *Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	g, err := s.Grid()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	for i, a := range s.Fleet.Agents {
		if !g.InBounds(a.From()) || !g.InBounds(a.To()) {
			return fmt.Errorf("%w: agent %d %v→%v on %dx%d map",
				ErrAgentOutOfBounds, i, a.From(), a.To(), g.Width(), g.Height())
		}
	}

	return nil
}

// Legend returns tilemap.DefaultLegend with the scenario's overrides applied.
func (s *Scenario) Legend() tilemap.Legend {
	legend := tilemap.DefaultLegend()
	for _, t := range s.Map.Legend {
		r := []rune(t.Glyph)[0]
		legend[r] = tilemap.TileSpec{Name: t.Name, Cost: t.Cost, Passable: t.Passable}
	}

	return legend
}

// Grid builds the tile map.
func (s *Scenario) Grid() (*tilemap.Grid, error) {
	conn, err := tilemap.ParseConnectivity(s.Map.Connectivity)
	if err != nil {
		return nil, err
	}

	return tilemap.Parse(s.Map.Rows, s.Legend(), tilemap.Options{Conn: conn})
}

// HeuristicName returns the configured heuristic, or the default for the
// map's connectivity.
func (s *Scenario) HeuristicName() string {
	if s.Search.Heuristic != "" {
		return s.Search.Heuristic
	}
	if s.Map.Connectivity == "8" {
		return "octile"
	}

	return "manhattan"
}

// Heuristic resolves the heuristic for g. Distance heuristics are scaled by
// the cheapest tile cost of g, which keeps them admissible on maps whose
// cheapest tile costs less than 1, and by Search.Weight (weighted A*).
func (s *Scenario) Heuristic(g *tilemap.Grid) (astar.Heuristic[tilemap.Point], error) {
	h, err := heuristic.ByName[tilemap.Point](s.HeuristicName())
	if err != nil {
		return nil, err
	}
	k := g.MinCost()
	if s.Search.Weight > 0 {
		k *= s.Search.Weight
	}
	if k == 1 {
		return h, nil
	}

	return heuristic.Scaled(h, k), nil
}

// SearchOptions returns the engine options the scenario sets.
func (s *Scenario) SearchOptions() ([]astar.Option[tilemap.Point], error) {
	p, err := astar.ParsePolicy(s.Search.Policy)
	if err != nil {
		return nil, err
	}

	return []astar.Option[tilemap.Point]{
		astar.WithMaxIterations[tilemap.Point](s.Search.MaxIterations),
		astar.WithPolicy[tilemap.Point](p),
	}, nil
}

// From returns the start point.
func (a Agent) From() tilemap.Point { return tilemap.Pt(a.Start[0], a.Start[1]) }

// To returns the target point.
func (a Agent) To() tilemap.Point { return tilemap.Pt(a.Target[0], a.Target[1]) }

// UUID returns the configured ID, or a fresh random one.
func (a Agent) UUID() uuid.UUID {
	if id, err := uuid.Parse(a.ID); err == nil {
		return id
	}

	return uuid.New()
}
