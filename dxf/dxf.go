// Package dxf writes frame models as DXF drawings for CNC and laser
// tooling. Every chain becomes one LWPOLYLINE; arcs are encoded as vertex
// bulges.
package dxf

import (
	"bufio"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/Bersaelor/framecad"
)

// DefaultLayer holds segments stored directly on the written model.
const DefaultLayer = "0"

// Write encodes m as a DXF entities section. Each top-level child is put
// on a layer named after its key. Endpoints closer than tol are joined.
func Write(w io.Writer, m *framecad.Model, tol float64) error {
	bw := bufio.NewWriter(w)
	e := &encoder{w: bw}

	root := m.Clone().Originate()
	e.pair(0, "SECTION")
	e.pair(2, "ENTITIES")
	polylines := 0
	if len(root.Paths) > 0 {
		polylines += e.layer(DefaultLayer, &framecad.Model{Paths: root.Paths}, tol)
	}
	for _, key := range slices.Sorted(maps.Keys(root.Models)) {
		polylines += e.layer(key, root.Models[key], tol)
	}
	e.pair(0, "ENDSEC")
	e.pair(0, "EOF")

	if e.err != nil {
		return e.err
	}
	framecad.Logger().Debug("dxf: written", "polylines", polylines)
	return bw.Flush()
}

type encoder struct {
	w   *bufio.Writer
	err error
}

func (e *encoder) pair(code int, value string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(strconv.Itoa(code) + "\n" + value + "\n")
}

func (e *encoder) float(code int, v float64) {
	e.pair(code, strconv.FormatFloat(v, 'f', -1, 64))
}

func (e *encoder) layer(name string, m *framecad.Model, tol float64) int {
	chains := framecad.FindChains(m, tol)
	for _, c := range chains {
		e.polyline(name, c)
	}
	return len(chains)
}

func (e *encoder) polyline(layer string, c framecad.Chain) {
	n := len(c.Links)
	if !c.Endless {
		n++
	}
	flags := "0"
	if c.Endless {
		flags = "1"
	}
	e.pair(0, "LWPOLYLINE")
	e.pair(8, layer)
	e.pair(90, strconv.Itoa(n))
	e.pair(70, flags)
	for _, l := range c.Links {
		start, _ := l.Endpoints()
		e.vertex(start, bulge(l))
	}
	if !c.Endless {
		_, end := c.Links[len(c.Links)-1].Endpoints()
		e.vertex(end, 0)
	}
}

func (e *encoder) vertex(p framecad.Point, b float64) {
	e.float(10, p.X)
	e.float(20, p.Y)
	if b != 0 {
		e.float(42, b)
	}
}

// bulge is the tangent of a quarter of the arc's sweep, negative when the
// chain walks the arc clockwise.
func bulge(l framecad.ChainLink) float64 {
	a, ok := l.Segment.(framecad.Arc)
	if !ok {
		return 0
	}
	b := math.Tan(a.Sweep() * math.Pi / 180 / 4)
	if l.Reversed {
		return -b
	}
	return b
}
