package server

import (
	"fmt"
	"io"
	"net/http"

	"videogw/internal/telemetry"
)

const maxMutationBytes = 1 << 20 // 1MiB

// userMovies proxies a my-list mutation to the backend. The backend payload
// is passed back byte-for-byte; only the status is decided here: 200 when
// the movie was already on the list, 201 when it was newly added. A backend
// reply outside 2xx/3xx halts the handler through the error stage instead of
// sending a success-shaped response.
func (s *Server) userMovies(w http.ResponseWriter, r *http.Request) error {
	var token string
	if cookie, err := r.Cookie("token"); err == nil {
		token = cookie.Value
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxMutationBytes))
	if err != nil {
		return badRequest(err)
	}

	result, err := s.backend.AddUserMovie(r.Context(), token, body)
	if err != nil {
		telemetry.GetMetrics().ProxyErrorsTotal.Add(r.Context(), 1)
		return fromUpstream(err)
	}

	if result.Status < 200 || result.Status > 399 {
		telemetry.GetMetrics().ProxyErrorsTotal.Add(r.Context(), 1)
		return badImplementation(fmt.Errorf("backend returned HTTP %d", result.Status))
	}

	status := http.StatusCreated
	if result.MovieExist {
		status = http.StatusOK
	}

	telemetry.GetMetrics().ListMutationsTotal.Add(r.Context(), 1)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(result.Payload)

	return nil
}
