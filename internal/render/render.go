package render

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"videogw/internal/api"
	"videogw/internal/assets"
	"videogw/internal/telemetry"
)

// CatalogFetcher is the slice of the backend API the renderer needs.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context, token string) ([]api.CatalogItem, error)
}

// Renderer produces the full HTML document for any GET request: identity
// from cookies, catalog from the backend, state partitioned into view
// slices, page markup from the route's template, all wrapped in the shell.
type Renderer struct {
	catalog  CatalogFetcher
	routes   *RouteTable
	resolver assets.Resolver
	tmpl     *template.Template
}

// New creates a renderer, loading every page template from templateDir.
func New(catalog CatalogFetcher, routes *RouteTable, resolver assets.Resolver, templateDir string) (*Renderer, error) {
	tmpl, err := template.New("pages").ParseGlob(templateDir + "/*.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{
		catalog:  catalog,
		routes:   routes,
		resolver: resolver,
		tmpl:     tmpl,
	}, nil
}

type pageData struct {
	Title  string
	Logged bool
	State  *InitialState
}

// Handler returns the catch-all page handler. A failing catalog fetch
// degrades to the empty state; the page always renders with status 200.
// Only a template or serialization failure produces a 500.
func (rn *Renderer) Handler() http.HandlerFunc {
	metrics := telemetry.GetMetrics()

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := zerolog.Ctx(ctx)
		start := time.Now()
		metrics.RendersTotal.Add(ctx, 1)
		defer func() {
			metrics.RenderDuration.Record(ctx, float64(time.Since(start).Milliseconds()))
		}()

		ident := IdentityFromRequest(r)

		state := EmptyState()
		items, err := rn.catalog.FetchCatalog(ctx, ident.Token)
		if err != nil {
			// Availability over correctness: render the signed-out,
			// empty-catalog page rather than an error.
			metrics.UpstreamErrorsTotal.Add(ctx, 1)
			log.Warn().Err(err).Msg("catalog fetch failed, rendering empty state")
		} else {
			state = NewInitialState(ident, items)
		}

		route := rn.routes.Match(r.URL.Path, state.Logged())

		markup, err := rn.renderPage(route, state)
		if err != nil {
			log.Error().Err(err).Str("template", route.Template).Msg("failed to render page")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		manifest, err := rn.resolver.Resolve()
		if err != nil {
			// Defaults keep the page serviceable when the manifest is
			// missing or unreadable.
			log.Warn().Err(err).Msg("manifest unavailable, using default asset paths")
			manifest = nil
		}

		doc, err := Document(markup, route.Title, state, manifest)
		if err != nil {
			log.Error().Err(err).Msg("failed to build document")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(doc))
	}
}

func (rn *Renderer) renderPage(route Route, state *InitialState) (string, error) {
	var buf bytes.Buffer
	data := pageData{
		Title:  route.Title,
		Logged: state.Logged(),
		State:  state,
	}

	if err := rn.tmpl.ExecuteTemplate(&buf, route.Template, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
