package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"videogw/internal/api"
	"videogw/internal/assets"
	httpmiddleware "videogw/internal/http"
	"videogw/internal/logger"
	"videogw/internal/render"
	"videogw/internal/server"
	"videogw/internal/telemetry"
)

type ServerCmd struct {
	// Server configuration
	Listen string `help:"HTTP server listen address" default:"0.0.0.0:3000" env:"VIDEOGW_LISTEN"`
	Mode   string `help:"runtime mode" default:"development" env:"VIDEOGW_MODE" enum:"development,production"`

	// Backend API configuration
	APIURL     string        `help:"backend API base URL" env:"API_URL" required:""`
	APITimeout time.Duration `help:"timeout for backend API calls" default:"10s" env:"VIDEOGW_API_TIMEOUT"`

	// Session configuration
	SessionTTL time.Duration `help:"token cookie lifetime when the token carries no expiry" default:"168h" env:"VIDEOGW_SESSION_TTL"`

	// CORS configuration
	CORSOrigins []string `help:"allowed CORS origins for API requests" default:"http://localhost:3000" env:"VIDEOGW_CORS_ORIGINS"`

	// Rendering configuration
	TemplateDir string `help:"directory holding page templates" default:"templates" env:"VIDEOGW_TEMPLATE_DIR"`
	RoutesFile  string `help:"YAML route table for server-rendered pages" default:"routes.yaml" env:"VIDEOGW_ROUTES_FILE"`

	// Asset configuration
	StaticDir    string `help:"directory of bundled assets served under /assets/" default:"public" env:"VIDEOGW_STATIC_DIR"`
	ManifestPath string `help:"path to the asset manifest" default:"public/manifest.json" env:"VIDEOGW_MANIFEST_PATH"`
	EntryPoints  string `help:"entry point glob built in development mode" default:"ui/*.ts" env:"VIDEOGW_ENTRY_POINTS"`

	// Operational modes
	Tracing bool `help:"enable tracing" default:"false" env:"VIDEOGW_TRACING"`
}

func (c *ServerCmd) Validate() error {
	if c.APIURL == "" {
		return errors.New("backend API base URL is required (--api-url or API_URL)")
	}
	return nil
}

func (c *ServerCmd) Run(globals *Globals) error {
	dev := c.Mode == "development"
	log := logger.Setup(globals.Debug || dev)
	ctx := context.Background()

	log.Info().
		Str("version", globals.Version).
		Str("mode", c.Mode).
		Bool("debug", globals.Debug).
		Msg("Starting server")

	// Setup telemetry if enabled
	if c.Tracing {
		log.Info().Msg("Tracing is enabled")
		shutdown, err := telemetry.InitTelemetry(ctx, "videogw", globals.Version)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize telemetry, continuing without metrics")
			shutdown = func(ctx context.Context) error { return nil }
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to shutdown telemetry")
			}
		}()
	}

	// The manifest strategy is picked once at startup: development builds
	// the bundles in-process and re-reads the manifest on every request,
	// production loads the manifest exactly once.
	var resolver assets.Resolver
	if dev {
		cfg := assets.DefaultConfig()
		cfg.EntryPointGlob = c.EntryPoints
		cfg.OutputDir = c.StaticDir
		cfg.ManifestPath = c.ManifestPath

		pipeline := assets.NewPipeline(cfg)
		if err := pipeline.Build(); err != nil {
			return fmt.Errorf("failed to build assets: %w", err)
		}
		resolver = assets.NewReloadResolver(c.ManifestPath)
	} else {
		resolver = assets.NewFileResolver(c.ManifestPath)
	}

	backend := api.New(api.Config{
		BaseURL: c.APIURL,
		Timeout: c.APITimeout,
	})

	routes, err := render.LoadRoutes(c.RoutesFile)
	if err != nil {
		return fmt.Errorf("failed to load route table: %w", err)
	}

	renderer, err := render.New(backend, routes, resolver, c.TemplateDir)
	if err != nil {
		return fmt.Errorf("failed to load page templates: %w", err)
	}

	srv := server.New(backend, renderer, server.Config{
		Dev:         dev,
		SessionTTL:  c.SessionTTL,
		CORSOrigins: c.CORSOrigins,
		StaticDir:   c.StaticDir,
	})

	handler := httpmiddleware.Chain(srv.Routes(),
		httpmiddleware.RequestIDMiddleware(),
		httpmiddleware.ClientIPMiddleware(),
		httpmiddleware.SecurityHeaders(),
		logger.HTTPRequests(log),
		httpmiddleware.Recover(),
	)

	log.Info().Str("addr", c.Listen).Str("api", c.APIURL).Msg("Starting HTTP server")
	return configureHTTPServer(c.Listen, handler).ListenAndServe()
}
