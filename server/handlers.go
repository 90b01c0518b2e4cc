package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/heuristic"
	"github.com/katalvlaran/tilepath/service"
	"github.com/katalvlaran/tilepath/tilemap"
)

// Coord is a map cell on the wire.
type Coord struct {
	X int `json:"x" validate:"gte=0"`
	Y int `json:"y" validate:"gte=0"`
}

func coord(p tilemap.Point) Coord { return Coord{X: p.X, Y: p.Y} }

func (c Coord) point() tilemap.Point { return tilemap.Pt(c.X, c.Y) }

// PathRequest is the body of POST /api/paths.
type PathRequest struct {
	From          *Coord `json:"from" validate:"required"`
	To            *Coord `json:"to" validate:"required"`
	Heuristic     string `json:"heuristic,omitempty" validate:"omitempty,oneof=manhattan euclidean chebyshev octile zero dijkstra"`
	Policy        string `json:"policy,omitempty" validate:"omitempty,oneof=reinsert keep-first"`
	MaxIterations *int   `json:"max_iterations,omitempty" validate:"omitempty,gte=0,lte=10000000"`
}

// Bind implements render.Binder.
func (p *PathRequest) Bind(r *http.Request) error {
	if p.From == nil || p.To == nil {
		return errors.New("from and to are required")
	}

	return nil
}

// PathResponse is the answer to a PathRequest. An empty path with found=false
// means no path within the iteration budget.
type PathResponse struct {
	Found      bool     `json:"found"`
	Cost       float64  `json:"cost"`
	Path       []Coord  `json:"path"`
	Reason     string   `json:"reason"`
	Iterations int      `json:"iterations"`
	Expanded   int      `json:"expanded"`
	Enqueued   int      `json:"enqueued"`
	Overlay    []string `json:"overlay"`
	MapVersion uint64   `json:"map_version"`
}

func newPathResponse(resp service.Response) *PathResponse {
	path := make([]Coord, len(resp.Path))
	for i, p := range resp.Path {
		path[i] = coord(p)
	}

	return &PathResponse{
		Found:      resp.Found,
		Cost:       resp.Cost,
		Path:       path,
		Reason:     resp.Stats.Reason.String(),
		Iterations: resp.Stats.Iterations,
		Expanded:   resp.Stats.Expanded,
		Enqueued:   resp.Stats.Enqueued,
		Overlay:    resp.Overlay,
		MapVersion: resp.Version,
	}
}

// MapResponse is the body of GET /api/map.
type MapResponse struct {
	Rows         []string `json:"rows"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Connectivity string   `json:"connectivity"`
	Components   int      `json:"components"`
	Version      uint64   `json:"version"`
}

// AgentResponse is one element of GET /api/agents.
type AgentResponse struct {
	ID       string `json:"id"`
	Position Coord  `json:"position"`
	Target   Coord  `json:"target"`
	Arrived  bool   `json:"arrived"`
	Blocked  int    `json:"blocked"`
}

func (s *Server) findPath(w http.ResponseWriter, r *http.Request) {
	data := &PathRequest{}
	if err := render.Bind(r, data); err != nil {
		_ = render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := s.validate.Struct(data); err != nil {
		_ = render.Render(w, r, ErrValidation(err, translateError(err, s.trans)))
		return
	}

	req := service.Request{
		From:          data.From.point(),
		To:            data.To.point(),
		Heuristic:     data.Heuristic,
		Policy:        data.Policy,
		MaxIterations: data.MaxIterations,
	}
	resp, err := s.svc.FindPath(r.Context(), req)
	if err != nil {
		_ = render.Render(w, r, errFromService(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, newPathResponse(resp))
}

func (s *Server) getMap(w http.ResponseWriter, r *http.Request) {
	info := s.svc.Map()
	render.JSON(w, r, &MapResponse{
		Rows:         info.Rows,
		Width:        info.Width,
		Height:       info.Height,
		Connectivity: info.Connectivity.String(),
		Components:   info.Components,
		Version:      info.Version,
	})
}

func (s *Server) listAgents(w http.ResponseWriter, r *http.Request) {
	movers := s.fleet.Movers()
	out := make([]AgentResponse, len(movers))
	for i, m := range movers {
		out[i] = AgentResponse{
			ID:       m.ID().String(),
			Position: coord(m.Position()),
			Target:   coord(m.Target()),
			Arrived:  m.Arrived(),
			Blocked:  m.Blocked(),
		}
	}
	render.JSON(w, r, out)
}

// errFromService maps service errors to HTTP statuses: caller faults are 4xx,
// a vanished client is 503, anything else 500.
func errFromService(err error) render.Renderer {
	switch {
	case errors.Is(err, tilemap.ErrOutOfBounds):
		return ErrUnprocessable(err)
	case errors.Is(err, heuristic.ErrUnknownHeuristic),
		errors.Is(err, heuristic.ErrTypeMismatch),
		errors.Is(err, astar.ErrOptionViolation):
		return ErrInvalidRequest(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrUnavailable(err)
	default:
		return ErrInternalServerError(err)
	}
}

func translateError(err error, trans ut.Translator) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, fmt.Sprint(e.Translate(trans)))
	}

	return out
}
