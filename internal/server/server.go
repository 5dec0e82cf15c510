package server

import (
	"net/http"
	"strings"
	"time"

	"filippo.io/csrf"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"

	"videogw/internal/api"
	"videogw/internal/render"
)

// Config holds the server's behavioural knobs.
type Config struct {
	// Dev relaxes cookie security flags so the site works over plain HTTP
	// during development.
	Dev bool
	// SessionTTL bounds the token cookie lifetime when the token itself
	// carries no usable expiry.
	SessionTTL time.Duration
	// CORSOrigins allowed on the API routes.
	CORSOrigins []string
	// StaticDir is served under /assets/.
	StaticDir string
}

// Server wires the dynamic handlers, the renderer and static assets into one
// HTTP surface.
type Server struct {
	backend  *api.Client
	renderer *render.Renderer
	cfg      Config
}

func New(backend *api.Client, renderer *render.Renderer, cfg Config) *Server {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 168 * time.Hour
	}
	return &Server{backend: backend, renderer: renderer, cfg: cfg}
}

// Routes builds the handler tree. API routes get CORS, HTML routes get CSRF
// protection, everything is gzip-compressed.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /auth/sign-in", handle(s.signIn))
	mux.Handle("POST /auth/sign-up", handle(s.signUp))
	mux.Handle("POST /user-movies", handle(s.userMovies))

	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(s.cfg.StaticDir))))

	mux.Handle("GET /", s.renderer.Handler())

	protection := csrf.New()
	withCORS := corsMiddleware(s.cfg.CORSOrigins, mux)
	protected := protection.Handler(mux)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isAPIRoute(r.URL.Path) {
			withCORS.ServeHTTP(w, r)
		} else {
			protected.ServeHTTP(w, r)
		}
	})

	return gzhttp.GzipHandler(handler)
}

// isAPIRoute returns true if the path is a proxy route that needs CORS
// instead of CSRF.
func isAPIRoute(path string) bool {
	return strings.HasPrefix(path, "/auth/") || path == "/user-movies"
}

// corsMiddleware adds CORS support to the API routes.
func corsMiddleware(allowedOrigins []string, h http.Handler) http.Handler {
	middleware := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true, // Required for cookie-based authentication
	})
	return middleware.Handler(h)
}
