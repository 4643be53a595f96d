// Package route maps navigation paths to demos.
package route

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRoute is returned when a path names no registered demo.
var ErrUnknownRoute = errors.New("route: unknown route")

// Route is one navigation entry.
type Route struct {
	ID    int
	Title string
	Path  string
}

// URL is the hash URL the route is reachable at.
func (r Route) URL() string {
	return "/#/" + r.Path
}

// Table is an ordered set of routes with a current selection.
type Table struct {
	routes  []Route
	byPath  map[string]int
	current int
}

// NewTable builds a table. Paths are normalized and must be unique.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{byPath: make(map[string]int, len(routes))}
	for _, r := range routes {
		r.Path = Normalize(r.Path)
		if r.Path == "" {
			return nil, fmt.Errorf("route %q: empty path", r.Title)
		}
		if _, dup := t.byPath[r.Path]; dup {
			return nil, fmt.Errorf("route %q: duplicate path %q", r.Title, r.Path)
		}
		t.byPath[r.Path] = len(t.routes)
		t.routes = append(t.routes, r)
	}
	return t, nil
}

// Normalize strips the hash-router decoration: "/#/triangle", "#/triangle",
// "/triangle" and "triangle" all become "triangle".
func Normalize(path string) string {
	p := strings.TrimSpace(path)
	p = strings.TrimPrefix(p, "/")
	p = strings.TrimPrefix(p, "#")
	p = strings.Trim(p, "/")
	return strings.ToLower(p)
}

// Resolve finds the route for a path.
func (t *Table) Resolve(path string) (Route, error) {
	i, ok := t.byPath[Normalize(path)]
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
	}
	return t.routes[i], nil
}

// Navigate makes the route for path current.
func (t *Table) Navigate(path string) (Route, error) {
	r, err := t.Resolve(path)
	if err != nil {
		return Route{}, err
	}
	t.current = t.byPath[r.Path]
	return r, nil
}

// ByIndex returns the i-th route, counting from zero, without selecting it.
func (t *Table) ByIndex(i int) (Route, bool) {
	if i < 0 || i >= len(t.routes) {
		return Route{}, false
	}
	return t.routes[i], true
}

// Select makes the i-th route current, counting from zero.
func (t *Table) Select(i int) (Route, bool) {
	r, ok := t.ByIndex(i)
	if ok {
		t.current = i
	}
	return r, ok
}

// Next advances to the following route, wrapping at the end.
func (t *Table) Next() Route {
	if len(t.routes) == 0 {
		return Route{}
	}
	t.current = (t.current + 1) % len(t.routes)
	return t.routes[t.current]
}

// Prev steps back, wrapping at the start.
func (t *Table) Prev() Route {
	if len(t.routes) == 0 {
		return Route{}
	}
	t.current = (t.current - 1 + len(t.routes)) % len(t.routes)
	return t.routes[t.current]
}

// Current is the selected route.
func (t *Table) Current() Route {
	if len(t.routes) == 0 {
		return Route{}
	}
	return t.routes[t.current]
}

// Routes returns the routes in order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

func (t *Table) Len() int {
	return len(t.routes)
}
