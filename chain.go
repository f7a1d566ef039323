package framecad

import (
	"fmt"
	"strconv"
)

// Chains shorter than MinChainLength or with fewer than MinChainLinks
// links are drafting artifacts.
const (
	MinChainLength = 1.0
	MinChainLinks  = 3
)

// ChainLink is one segment of a chain, in absolute coordinates.
// Reversed is set when the chain walks the segment from its end point back
// to its start point.
type ChainLink struct {
	Route    Route
	Segment  Segment
	Reversed bool
}

// Endpoints returns the link's endpoints in chain walking order.
func (l ChainLink) Endpoints() (Point, Point) {
	p0, p1 := l.Segment.Endpoints()
	if l.Reversed {
		return p1, p0
	}
	return p0, p1
}

// Chain is a maximal sequence of segments connected end to end.
type Chain struct {
	Links      []ChainLink
	Endless    bool
	PathLength float64
}

// Index returns the position of the link stored at route, or -1.
func (c Chain) Index(route Route) int {
	for i, l := range c.Links {
		if l.Route.Equal(route) {
			return i
		}
	}
	return -1
}

// Model returns the chain as a flat model keyed by link position.
func (c Chain) Model() *Model {
	m := NewModel()
	for i, l := range c.Links {
		m.AddPath(strconv.Itoa(i), l.Segment)
	}
	return m
}

// IsArtifact reports whether the chain is too short or has too few links
// to be real geometry.
func (c Chain) IsArtifact() bool {
	return len(c.Links) < MinChainLinks || c.PathLength < MinChainLength
}

// FindChains groups the model's segments into chains. Endpoints closer than
// tol are treated as the same vertex; segments shorter than tol are
// ignored. At vertices joining more than two segments the walk continues
// with the first unvisited segment in route order.
func FindChains(m *Model, tol float64) []Chain {
	var segs []RoutedSegment
	for _, rs := range m.Segments() {
		if rs.Segment.Length() >= tol {
			segs = append(segs, rs)
		}
	}

	var nodes []Point
	nodeOf := func(p Point) int {
		for i, n := range nodes {
			if n.Near(p, tol) {
				return i
			}
		}
		nodes = append(nodes, p)
		return len(nodes) - 1
	}

	ends := make([][2]int, len(segs))
	adjacent := make(map[int][]int)
	for i, rs := range segs {
		p0, p1 := rs.Segment.Endpoints()
		ends[i] = [2]int{nodeOf(p0), nodeOf(p1)}
		if ends[i][0] == ends[i][1] {
			continue
		}
		adjacent[ends[i][0]] = append(adjacent[ends[i][0]], i)
		adjacent[ends[i][1]] = append(adjacent[ends[i][1]], i)
	}

	visited := make([]bool, len(segs))
	nextAt := func(node int) int {
		for _, j := range adjacent[node] {
			if !visited[j] {
				return j
			}
		}
		return -1
	}

	var chains []Chain
	for i := range segs {
		if visited[i] || ends[i][0] == ends[i][1] {
			continue
		}
		visited[i] = true
		links := []ChainLink{{Route: segs[i].Route, Segment: segs[i].Segment}}
		start, cur := ends[i][0], ends[i][1]

		for cur != start {
			j := nextAt(cur)
			if j < 0 {
				break
			}
			visited[j] = true
			reversed := ends[j][0] != cur
			links = append(links, ChainLink{Route: segs[j].Route, Segment: segs[j].Segment, Reversed: reversed})
			cur = ends[j][0]
			if !reversed {
				cur = ends[j][1]
			}
		}

		endless := cur == start
		if !endless {
			cur = start
			for {
				j := nextAt(cur)
				if j < 0 {
					break
				}
				visited[j] = true
				reversed := ends[j][1] != cur
				link := ChainLink{Route: segs[j].Route, Segment: segs[j].Segment, Reversed: reversed}
				links = append([]ChainLink{link}, links...)
				cur = ends[j][1]
				if !reversed {
					cur = ends[j][0]
				}
			}
		}

		c := Chain{Links: links, Endless: endless}
		for _, l := range links {
			c.PathLength += l.Segment.Length()
		}
		chains = append(chains, c)
	}
	return chains
}

// CleanupViaChains rebuilds m from its chains, dropping artifacts. Every
// surviving chain becomes a child model named chain_<index>.
func CleanupViaChains(m *Model, tol float64) *Model {
	out := NewModel()
	chains := FindChains(m, tol)
	for _, c := range chains {
		if c.IsArtifact() {
			Logger().Debug("framecad: dropping chain artifact",
				"links", len(c.Links), "length", c.PathLength)
			continue
		}
		out.AddModel(fmt.Sprintf("chain_%d", len(out.Models)), c.Model())
	}
	Logger().Debug("framecad: chains cleaned", "found", len(chains), "kept", len(out.Models))
	return out
}
