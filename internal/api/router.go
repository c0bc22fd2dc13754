package api

import (
	"net/http"
	"strings"
)

// MatchMode controls how a route pattern is compared against a request path.
type MatchMode int

const (
	// MatchExact requires the request path to equal the pattern.
	MatchExact MatchMode = iota
	// MatchPrefix requires the request path to start with the pattern,
	// leaving the remainder for the handler to interpret.
	MatchPrefix
)

// Route is a single entry in the ordered dispatch table.
type Route struct {
	Method  string
	Pattern string
	Mode    MatchMode
	Handler http.HandlerFunc
}

// Router dispatches requests against an ordered route table: the first
// entry whose method and pattern both match wins. Registration order is
// therefore part of the contract; an exact collection route must be
// registered before any prefix route that would otherwise shadow it.
type Router struct {
	routes   []Route
	notFound http.HandlerFunc
}

// NewRouter creates an empty router whose fallback writes the standard
// 404 error envelope.
func NewRouter() *Router {
	return &Router{
		notFound: func(w http.ResponseWriter, r *http.Request) {
			NotFound(w, "The requested resource or endpoint was not found on this server.")
		},
	}
}

// Handle appends a route to the dispatch table.
func (rt *Router) Handle(method, pattern string, mode MatchMode, handler http.HandlerFunc) {
	rt.routes = append(rt.routes, Route{
		Method:  method,
		Pattern: pattern,
		Mode:    mode,
		Handler: handler,
	})
}

// ServeHTTP implements http.Handler
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for _, route := range rt.routes {
		if route.matches(r.Method, r.URL.Path) {
			route.Handler(w, r)
			return
		}
	}
	rt.notFound(w, r)
}

// Routes returns a copy of the dispatch table in registration order.
func (rt *Router) Routes() []Route {
	out := make([]Route, len(rt.routes))
	copy(out, rt.routes)
	return out
}

func (route Route) matches(method, path string) bool {
	if route.Method != method {
		return false
	}
	switch route.Mode {
	case MatchExact:
		return path == route.Pattern
	case MatchPrefix:
		return strings.HasPrefix(path, route.Pattern)
	default:
		return false
	}
}
