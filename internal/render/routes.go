package render

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Route describes one server-rendered page. Anonymous routes (login,
// register) are only shown to signed-out visitors; a signed-in visitor
// asking for one gets the home page instead.
type Route struct {
	Path      string `yaml:"path"`
	Template  string `yaml:"template"`
	Title     string `yaml:"title"`
	Anonymous bool   `yaml:"anonymous"`
	Prefix    bool   `yaml:"prefix"`
}

type routesFile struct {
	Routes   []Route `yaml:"routes"`
	NotFound Route   `yaml:"notFound"`
}

// RouteTable matches request paths to pages. Unknown paths resolve to the
// not-found page, which still renders with status 200 so the client app can
// take over routing.
type RouteTable struct {
	routes   []Route
	home     Route
	notFound Route
}

// LoadRoutes reads the route table from a YAML file.
func LoadRoutes(path string) (*RouteTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file: %w", err)
	}

	var file routesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse routes file: %w", err)
	}

	return NewRouteTable(file.Routes, file.NotFound)
}

// NewRouteTable builds a route table. The route for "/" doubles as the
// page served to signed-in visitors hitting anonymous-only routes.
func NewRouteTable(routes []Route, notFound Route) (*RouteTable, error) {
	if len(routes) == 0 {
		return nil, fmt.Errorf("route table is empty")
	}
	if notFound.Template == "" {
		return nil, fmt.Errorf("not-found route requires a template")
	}

	table := &RouteTable{routes: routes, notFound: notFound}
	for _, r := range routes {
		if r.Template == "" {
			return nil, fmt.Errorf("route %q requires a template", r.Path)
		}
		if r.Path == "/" {
			table.home = r
		}
	}
	if table.home.Template == "" {
		return nil, fmt.Errorf("route table requires a route for /")
	}

	return table, nil
}

// Match resolves a request path to a route for the given login state.
func (t *RouteTable) Match(path string, logged bool) Route {
	for _, r := range t.routes {
		if r.Prefix {
			if strings.HasPrefix(path, r.Path) {
				return t.resolve(r, logged)
			}
			continue
		}
		if r.Path == path {
			return t.resolve(r, logged)
		}
	}
	return t.notFound
}

func (t *RouteTable) resolve(r Route, logged bool) Route {
	if r.Anonymous && logged {
		return t.home
	}
	return r
}
