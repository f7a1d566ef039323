package framecad

import (
	"maps"
	"slices"
	"strings"
)

// Route addresses a segment inside a Model tree: the keys of the nested
// child models followed by the path key.
type Route []string

// String joins the route keys with '/'.
func (r Route) String() string {
	return strings.Join(r, "/")
}

// Key returns the last element of the route.
func (r Route) Key() string {
	if len(r) == 0 {
		return ""
	}
	return r[len(r)-1]
}

// Child returns a new route extended by key.
func (r Route) Child(key string) Route {
	out := make(Route, len(r), len(r)+1)
	copy(out, r)
	return append(out, key)
}

// Sibling returns a route with the last key replaced.
func (r Route) Sibling(key string) Route {
	if len(r) == 0 {
		return Route{key}
	}
	return r[:len(r)-1].Child(key)
}

// Equal reports whether both routes hold the same keys.
func (r Route) Equal(other Route) bool {
	return slices.Equal(r, other)
}

// Model is a recursive composite of named segments and named child models.
// Origin offsets the model's content relative to its parent; Originate
// folds all offsets into absolute segment coordinates.
type Model struct {
	Origin Point
	Paths  map[string]Segment
	Models map[string]*Model
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{}
}

// AddPath stores s under key and returns m.
func (m *Model) AddPath(key string, s Segment) *Model {
	if m.Paths == nil {
		m.Paths = make(map[string]Segment)
	}
	m.Paths[key] = s
	return m
}

// AddModel stores child under key and returns m.
func (m *Model) AddModel(key string, child *Model) *Model {
	if m.Models == nil {
		m.Models = make(map[string]*Model)
	}
	m.Models[key] = child
	return m
}

// PathCount returns the number of segments in the whole tree.
func (m *Model) PathCount() int {
	if m == nil {
		return 0
	}
	n := len(m.Paths)
	for _, child := range m.Models {
		n += child.PathCount()
	}
	return n
}

// IsEmpty reports whether the tree holds no segments.
func (m *Model) IsEmpty() bool {
	return m.PathCount() == 0
}

// Clone returns a deep copy of the model tree.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	out := &Model{Origin: m.Origin}
	if m.Paths != nil {
		out.Paths = maps.Clone(m.Paths)
	}
	if m.Models != nil {
		out.Models = make(map[string]*Model, len(m.Models))
		for k, child := range m.Models {
			out.Models[k] = child.Clone()
		}
	}
	return out
}

// Originate folds every nested origin into absolute segment coordinates and
// zeroes the origins. Calling it again is a no-op.
func (m *Model) Originate() *Model {
	m.originate(Point{})
	return m
}

func (m *Model) originate(offset Point) {
	offset = offset.Add(m.Origin)
	m.Origin = Point{}
	if offset != (Point{}) {
		shift := Translate(offset.X, offset.Y)
		for k, s := range m.Paths {
			m.Paths[k] = s.Transform(shift)
		}
	}
	for _, child := range m.Models {
		child.originate(offset)
	}
}

// Segment returns the segment stored at route, in the coordinates of its
// owning model.
func (m *Model) Segment(route Route) (Segment, bool) {
	owner := m.owner(route)
	if owner == nil {
		return nil, false
	}
	s, ok := owner.Paths[route.Key()]
	return s, ok
}

// SetSegment stores s at route, creating the path key if the owning model
// exists. It reports false when the owning model does not exist.
func (m *Model) SetSegment(route Route, s Segment) bool {
	owner := m.owner(route)
	if owner == nil {
		return false
	}
	owner.AddPath(route.Key(), s)
	return true
}

func (m *Model) owner(route Route) *Model {
	if len(route) == 0 {
		return nil
	}
	cur := m
	for _, key := range route[:len(route)-1] {
		next, ok := cur.Models[key]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// Visitor receives the nodes of a Model tree during Walk.
type Visitor interface {
	// EnterModel is called for every model, the root included (with an
	// empty route). Returning false skips the model's content.
	EnterModel(route Route, m *Model) bool
	// VisitPath is called for every segment. offset is the accumulated
	// origin of the owning model.
	VisitPath(route Route, offset Point, s Segment)
}

// PathVisitorFunc adapts a function to a Visitor that enters every model.
type PathVisitorFunc func(route Route, offset Point, s Segment)

// EnterModel always descends.
func (PathVisitorFunc) EnterModel(Route, *Model) bool { return true }

// VisitPath calls f.
func (f PathVisitorFunc) VisitPath(route Route, offset Point, s Segment) {
	f(route, offset, s)
}

// Walk visits the tree depth first. Paths are visited before child models
// and keys in sorted order, so walks are deterministic.
func (m *Model) Walk(v Visitor) {
	m.walk(v, nil, Point{})
}

func (m *Model) walk(v Visitor, route Route, offset Point) {
	if !v.EnterModel(route, m) {
		return
	}
	offset = offset.Add(m.Origin)
	for _, k := range sortedKeys(m.Paths) {
		v.VisitPath(route.Child(k), offset, m.Paths[k])
	}
	for _, k := range sortedKeys(m.Models) {
		m.Models[k].walk(v, route.Child(k), offset)
	}
}

// RoutedSegment is a segment in absolute coordinates with its route.
type RoutedSegment struct {
	Route   Route
	Segment Segment
}

// Segments returns every segment of the tree in absolute coordinates.
func (m *Model) Segments() []RoutedSegment {
	var out []RoutedSegment
	m.Walk(PathVisitorFunc(func(route Route, offset Point, s Segment) {
		if offset != (Point{}) {
			s = s.Transform(Translate(offset.X, offset.Y))
		}
		out = append(out, RoutedSegment{Route: route, Segment: s})
	}))
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
