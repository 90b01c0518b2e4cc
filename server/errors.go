package server

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrResponse is the JSON body of every error reply.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText    string   `json:"status"`
	ErrorText     string   `json:"error,omitempty"`
	ErrValidation []string `json:"validation,omitempty"`
}

// Render implements render.Renderer.
func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func errResponse(err error, code int, text string) *ErrResponse {
	return &ErrResponse{Err: err, HTTPStatusCode: code, StatusText: text, ErrorText: err.Error()}
}

// ErrInvalidRequest is a 400 for malformed bodies and bad overrides.
func ErrInvalidRequest(err error) render.Renderer {
	return errResponse(err, http.StatusBadRequest, "Invalid request.")
}

// ErrValidation is a 400 listing the failed field rules.
func ErrValidation(err error, fields []string) render.Renderer {
	e := errResponse(err, http.StatusBadRequest, "Invalid request.")
	e.ErrValidation = fields

	return e
}

// ErrUnprocessable is a 422 for well-formed requests the map cannot serve.
func ErrUnprocessable(err error) render.Renderer {
	return errResponse(err, http.StatusUnprocessableEntity, "Request outside the map.")
}

// ErrUnavailable is a 503 for requests abandoned before they finished.
func ErrUnavailable(err error) render.Renderer {
	return errResponse(err, http.StatusServiceUnavailable, "Request cancelled.")
}

// ErrInternalServerError is a 500.
func ErrInternalServerError(err error) render.Renderer {
	return errResponse(err, http.StatusInternalServerError, "Internal server error.")
}
