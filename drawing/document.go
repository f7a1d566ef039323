// Package drawing decodes the SVG documents produced by the DXF conversion
// service into a tree of groups, paths and circles with resolved stroke
// colours.
//
// Two document shapes are in use. Older conversions put every element into
// one group and colour each element; newer ones emit one group per layer
// colour and leave the elements uncoloured. Decode resolves both to the
// same form: every Path and Circle carries its effective stroke.
package drawing

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoGroups is returned by Decode when the root element has no groups.
var ErrNoGroups = errors.New("drawing: document has no groups")

// Document is a decoded drawing.
type Document struct {
	Width, Height string
	ViewBox       string
	Groups        []*Group
}

// Group is a <g> element. Stroke is the effective stroke, inherited from
// the enclosing group when the element sets none.
type Group struct {
	ID      string
	Stroke  string
	Paths   []*Path
	Circles []*Circle
	Groups  []*Group
}

// Path is a <path> element. Lines, polylines and polygons are decoded as
// paths with synthesized path data.
type Path struct {
	ID     string
	D      string
	Stroke string
}

// Circle is a <circle> element.
type Circle struct {
	ID     string
	CX, CY float64
	R      float64
	Stroke string
}

// Paths returns every path of the document in document order.
func (d *Document) Paths() []*Path {
	var out []*Path
	d.walk(func(g *Group) { out = append(out, g.Paths...) })
	return out
}

// Circles returns every circle of the document in document order.
func (d *Document) Circles() []*Circle {
	var out []*Circle
	d.walk(func(g *Group) { out = append(out, g.Circles...) })
	return out
}

func (d *Document) walk(fn func(*Group)) {
	var visit func([]*Group)
	visit = func(groups []*Group) {
		for _, g := range groups {
			fn(g)
			visit(g.Groups)
		}
	}
	visit(d.Groups)
}

// XML shapes. Attributes that only affect rendering are ignored.

type xmlStyled struct {
	ID     string `xml:"id,attr"`
	Stroke string `xml:"stroke,attr"`
	Style  string `xml:"style,attr"`
}

type xmlGroup struct {
	xmlStyled
	Paths     []xmlPath     `xml:"path"`
	Circles   []xmlCircle   `xml:"circle"`
	Lines     []xmlLine     `xml:"line"`
	Polylines []xmlPolyline `xml:"polyline"`
	Polygons  []xmlPolyline `xml:"polygon"`
	Groups    []xmlGroup    `xml:"g"`
}

type xmlSVG struct {
	XMLName xml.Name   `xml:"svg"`
	Width   string     `xml:"width,attr"`
	Height  string     `xml:"height,attr"`
	ViewBox string     `xml:"viewBox,attr"`
	Groups  []xmlGroup `xml:"g"`
}

type xmlPath struct {
	xmlStyled
	D string `xml:"d,attr"`
}

type xmlCircle struct {
	xmlStyled
	CX string `xml:"cx,attr"`
	CY string `xml:"cy,attr"`
	R  string `xml:"r,attr"`
}

type xmlLine struct {
	xmlStyled
	X1 string `xml:"x1,attr"`
	Y1 string `xml:"y1,attr"`
	X2 string `xml:"x2,attr"`
	Y2 string `xml:"y2,attr"`
}

type xmlPolyline struct {
	xmlStyled
	Points string `xml:"points,attr"`
}

// Decode reads an SVG document. Elements with unreadable numeric
// attributes are skipped; structural XML errors are returned.
func Decode(r io.Reader) (*Document, error) {
	var root xmlSVG
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("drawing: decode svg: %w", err)
	}
	if len(root.Groups) == 0 {
		return nil, ErrNoGroups
	}
	doc := &Document{Width: root.Width, Height: root.Height, ViewBox: root.ViewBox}
	for i := range root.Groups {
		doc.Groups = append(doc.Groups, convertGroup(&root.Groups[i], ""))
	}
	return doc, nil
}

func convertGroup(x *xmlGroup, inherited string) *Group {
	g := &Group{ID: x.ID, Stroke: x.stroke(inherited)}
	for _, p := range x.Paths {
		g.Paths = append(g.Paths, &Path{ID: p.ID, D: p.D, Stroke: p.stroke(g.Stroke)})
	}
	for _, l := range x.Lines {
		d := "M" + l.X1 + " " + l.Y1 + " L" + l.X2 + " " + l.Y2
		g.Paths = append(g.Paths, &Path{ID: l.ID, D: d, Stroke: l.stroke(g.Stroke)})
	}
	for _, p := range x.Polylines {
		if d, ok := pointsPath(p.Points, false); ok {
			g.Paths = append(g.Paths, &Path{ID: p.ID, D: d, Stroke: p.stroke(g.Stroke)})
		}
	}
	for _, p := range x.Polygons {
		if d, ok := pointsPath(p.Points, true); ok {
			g.Paths = append(g.Paths, &Path{ID: p.ID, D: d, Stroke: p.stroke(g.Stroke)})
		}
	}
	for _, c := range x.Circles {
		cx, err1 := parseLength(c.CX)
		cy, err2 := parseLength(c.CY)
		r, err3 := parseLength(c.R)
		if err := errors.Join(err1, err2, err3); err != nil || r <= 0 {
			continue
		}
		g.Circles = append(g.Circles, &Circle{ID: c.ID, CX: cx, CY: cy, R: r, Stroke: c.stroke(g.Stroke)})
	}
	for i := range x.Groups {
		g.Groups = append(g.Groups, convertGroup(&x.Groups[i], g.Stroke))
	}
	return g
}

// stroke returns the element's own stroke from its style or stroke
// attribute, or inherited. The style property wins, as in CSS.
func (s xmlStyled) stroke(inherited string) string {
	for decl := range strings.SplitSeq(s.Style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(name) == "stroke" {
			if v := strings.TrimSpace(value); v != "" && v != "inherit" {
				return v
			}
		}
	}
	if v := strings.TrimSpace(s.Stroke); v != "" && v != "inherit" {
		return v
	}
	return inherited
}

// pointsPath converts a points attribute to path data.
func pointsPath(points string, closed bool) (string, bool) {
	fields := strings.FieldsFunc(points, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) < 4 || len(fields)%2 != 0 {
		return "", false
	}
	var b strings.Builder
	for i := 0; i < len(fields); i += 2 {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(fields[i])
		b.WriteString(" ")
		b.WriteString(fields[i+1])
	}
	if closed {
		b.WriteString(" Z")
	}
	return b.String(), true
}

// parseLength parses a coordinate attribute, accepting an optional px
// suffix.
func parseLength(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
}
