package console

import (
	"net/url"
	"strings"
)

// Route is a console path, mirroring the URL paths of the web console.
type Route string

const (
	RouteMirror   Route = "/"
	RouteConfig   Route = "/config"
	RouteExplorer Route = "/ecr"
)

type navEntry struct {
	route Route
	label string
	key   string
}

var navEntries = []navEntry{
	{RouteMirror, "Request Mirror", "1"},
	{RouteConfig, "Configuration", "2"},
	{RouteExplorer, "ECR Explorer", "3"},
}

// ResolveRoute maps a path to a known route. Unknown paths redirect to the
// mirror request page.
func ResolveRoute(path string) Route {
	p := strings.TrimSpace(path)
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	p = "/" + strings.Trim(p, "/")
	for _, e := range navEntries {
		if Route(p) == e.route {
			return e.route
		}
	}
	return RouteMirror
}

// Name is the short route name used in logs.
func (r Route) Name() string {
	switch r {
	case RouteConfig:
		return "config"
	case RouteExplorer:
		return "explorer"
	default:
		return "mirror"
	}
}

func routeForKey(key string) (Route, bool) {
	for _, e := range navEntries {
		if e.key == key {
			return e.route, true
		}
	}
	return "", false
}

func newPage(r Route, sc scope) Page {
	switch r {
	case RouteConfig:
		return NewConfigPage(sc)
	case RouteExplorer:
		return NewExplorerPage(sc)
	default:
		return NewMirrorPage(sc)
	}
}
