package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"videogw/internal/api"
	"videogw/internal/telemetry"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signIn validates credentials against the backend and, on success, issues
// the stateless session: the backend token in an HTTP-only cookie plus the
// user object in the response body. Failure responds 401 and nothing else
// happens; no cookie, no side effects.
func (s *Server) signIn(w http.ResponseWriter, r *http.Request) error {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		return badRequest(err)
	}

	result, err := s.backend.SignIn(r.Context(), creds.Email, creds.Password)
	if err != nil {
		telemetry.GetMetrics().SignInFailedTotal.Add(r.Context(), 1)
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("sign-in rejected")
		return unauthorized()
	}

	http.SetCookie(w, s.tokenCookie(result.Token))

	telemetry.GetMetrics().SignInsTotal.Add(r.Context(), 1)
	zerolog.Ctx(r.Context()).Info().Str("user", result.User.Email).Msg("user signed in")

	writeJSON(w, http.StatusOK, struct {
		api.User
		Token string `json:"token"`
	}{User: result.User, Token: result.Token})

	return nil
}

// tokenCookie builds the session cookie. Security flags are relaxed only in
// development mode; the lifetime follows the token's own exp claim when it
// decodes as a JWT, otherwise the configured session TTL.
func (s *Server) tokenCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: !s.cfg.Dev,
		Secure:   !s.cfg.Dev,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.cookieTTL(token).Seconds()),
	}
}

func (s *Server) cookieTTL(token string) time.Duration {
	claims := &jwt.RegisteredClaims{}
	// Unverified decode: the backend signed the token and is the only party
	// that checks it, the gateway just wants the expiry.
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s.cfg.SessionTTL
	}

	if claims.ExpiresAt == nil {
		return s.cfg.SessionTTL
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 || ttl > s.cfg.SessionTTL {
		return s.cfg.SessionTTL
	}
	return ttl
}

type signUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// signUp proxies account creation to the backend and answers 201 with the
// new account's identity. Backend errors pass through the error stage.
func (s *Server) signUp(w http.ResponseWriter, r *http.Request) error {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest(err)
	}

	id, err := s.backend.SignUp(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		telemetry.GetMetrics().ProxyErrorsTotal.Add(r.Context(), 1)
		return fromUpstream(err)
	}

	telemetry.GetMetrics().SignUpsTotal.Add(r.Context(), 1)
	zerolog.Ctx(r.Context()).Info().Str("user", req.Email).Msg("user signed up")

	writeJSON(w, http.StatusCreated, map[string]string{
		"name":  req.Name,
		"email": req.Email,
		"id":    id,
	})

	return nil
}
