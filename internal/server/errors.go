package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"videogw/internal/api"
)

// Error is an HTTP error carrying the status the client should see. It is
// the generic error stage every proxy handler feeds into: handlers return
// an error and a single adapter decides the response.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func badRequest(err error) *Error {
	return &Error{Status: http.StatusBadRequest, Message: "Bad Request", Err: err}
}

func unauthorized() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "Unauthorized"}
}

// badImplementation is the response to a backend reply the gateway cannot
// make sense of.
func badImplementation(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "An internal server error occurred", Err: err}
}

// fromUpstream maps a backend failure to the client response: the backend's
// own status when it answered, 502 when it did not answer at all.
func fromUpstream(err error) *Error {
	var ue *api.UpstreamError
	if errors.As(err, &ue) {
		return &Error{Status: ue.Status, Message: http.StatusText(ue.Status), Err: err}
	}
	return &Error{Status: http.StatusBadGateway, Message: "Bad Gateway", Err: err}
}

// handlerFunc is a request handler that reports failures instead of writing
// them. Returning a non-nil error always halts the handler.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts a handlerFunc into an http.HandlerFunc, writing any returned
// error as a boom-style JSON payload: {statusCode, error, message}.
func handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		httpErr := &Error{}
		if !errors.As(err, &httpErr) {
			httpErr = badImplementation(err)
		}

		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Int("status", httpErr.Status).
			Str("path", r.URL.Path).
			Msg("request failed")

		writeJSON(w, httpErr.Status, map[string]any{
			"statusCode": httpErr.Status,
			"error":      http.StatusText(httpErr.Status),
			"message":    httpErr.Message,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
