// Package preview rasterises frame models into images for visual checks
// of the pipeline steps.
package preview

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"maps"
	"math"
	"slices"
	"sync"

	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/Bersaelor/framecad"
)

// ErrEmpty is returned for models without geometry.
var ErrEmpty = errors.New("preview: model is empty")

// Palette colours the top-level children of a model in key order.
var Palette = []color.RGBA{
	colornames.Crimson,
	colornames.Royalblue,
	colornames.Forestgreen,
	colornames.Darkmagenta,
	colornames.Darkcyan,
	colornames.Darkorange,
}

// Options control the rendering.
type Options struct {
	// Scale is the number of pixels per drawing unit.
	Scale float64
	// Margin is the empty border in pixels.
	Margin int
	// StrokeWidth is the line width in pixels.
	StrokeWidth float64
	Background  color.Color
	// Labels draws the name of each child next to its geometry.
	Labels bool
}

// DefaultOptions returns 8 px per unit, a 16 px margin and 1.5 px lines on
// white.
func DefaultOptions() Options {
	return Options{Scale: 8, Margin: 16, StrokeWidth: 1.5, Background: color.White}
}

// labelSize is the label font size in pixels.
const labelSize = 11

var labelFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// maxArcStep is the largest angle in degrees covered by one polyline step
// when arcs are flattened.
const maxArcStep = 5.0

// Render draws the outline of every segment of m. Segments of each
// top-level child get their own Palette colour; segments stored directly
// on m use the first one.
func Render(m *framecad.Model, opts Options) (*image.RGBA, error) {
	b, ok := m.Bounds()
	if !ok {
		return nil, ErrEmpty
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = DefaultOptions().StrokeWidth
	}
	if opts.Background == nil {
		opts.Background = color.White
	}

	w := int(math.Ceil(b.Width()*opts.Scale)) + 2*opts.Margin + 1
	h := int(math.Ceil(b.Height()*opts.Scale)) + 2*opts.Margin + 1
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	c := &canvas{img: img, bounds: b, opts: opts}
	if opts.Labels {
		f, err := labelFont()
		if err != nil {
			return nil, err
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    labelSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = face.Close()
		}()
		c.face = face
	}
	root := m.Clone().Originate()
	if len(root.Paths) > 0 {
		c.stroke(&framecad.Model{Paths: root.Paths}, Palette[0])
	}
	for i, key := range slices.Sorted(maps.Keys(root.Models)) {
		child := root.Models[key]
		col := Palette[i%len(Palette)]
		c.stroke(child, col)
		if c.face != nil {
			c.label(child, key, col)
		}
	}
	framecad.Logger().Debug("preview: rendered", "width", w, "height", h)
	return img, nil
}

// Encode renders m and writes it as PNG.
func Encode(w io.Writer, m *framecad.Model, opts Options) error {
	img, err := Render(m, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

type canvas struct {
	img    *image.RGBA
	bounds framecad.Rect
	opts   Options
	face   font.Face
}

// pixel maps a drawing point to image coordinates, flipping y.
func (c *canvas) pixel(p framecad.Point) (float32, float32) {
	x := (p.X-c.bounds.Min.X)*c.opts.Scale + float64(c.opts.Margin)
	y := (c.bounds.Max.Y-p.Y)*c.opts.Scale + float64(c.opts.Margin)
	return float32(x), float32(y)
}

func (c *canvas) stroke(m *framecad.Model, col color.RGBA) {
	size := c.img.Bounds().Size()
	r := vector.NewRasterizer(size.X, size.Y)
	half := c.opts.StrokeWidth / 2
	for _, rs := range m.Segments() {
		pts := flatten(rs.Segment)
		for i := 1; i < len(pts); i++ {
			c.quad(r, pts[i-1], pts[i], half)
		}
	}
	r.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// quad adds the pixel rectangle covering the line p-q.
func (c *canvas) quad(r *vector.Rasterizer, p, q framecad.Point, half float64) {
	px, py := c.pixel(p)
	qx, qy := c.pixel(q)
	dx, dy := float64(qx-px), float64(qy-py)
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := float32(-dy/l*half), float32(dx/l*half)
	r.MoveTo(px+nx, py+ny)
	r.LineTo(qx+nx, qy+ny)
	r.LineTo(qx-nx, qy-ny)
	r.LineTo(px-nx, py-ny)
	r.ClosePath()
}

func (c *canvas) label(m *framecad.Model, name string, col color.RGBA) {
	b, ok := m.Bounds()
	if !ok {
		return
	}
	x, y := c.pixel(framecad.Pt(b.Min.X, b.Max.Y))
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(int(x), int(y)-2),
	}
	d.DrawString(name)
}

// flatten returns the polyline of s.
func flatten(s framecad.Segment) []framecad.Point {
	switch v := s.(type) {
	case framecad.Line:
		return []framecad.Point{v.Origin, v.End}
	case framecad.Arc:
		sweep := v.Sweep()
		n := max(1, int(math.Ceil(sweep/maxArcStep)))
		pts := make([]framecad.Point, n+1)
		for i := range pts {
			pts[i] = v.PointAt(v.StartAngle + sweep*float64(i)/float64(n))
		}
		return pts
	}
	return nil
}
