package frame

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/Bersaelor/framecad"
)

// Part names.
const (
	Bridge     = "bridge"
	Shape      = "shape"
	Hinge      = "hinge"
	Pad        = "pad"
	ShapeHoles = "shape_holes"
	HingeHoles = "hinge_holes"
	Lens       = "lens"
)

// holesOf returns the name of the holes part belonging to name.
func holesOf(name string) string {
	return name + "_holes"
}

// DefaultColorMap returns the stroke colours the drafting template uses
// for each part.
func DefaultColorMap() map[string]string {
	return map[string]string{
		Bridge: "#ff0000",
		Shape:  "#0000ff",
		Hinge:  "#00ff00",
		Pad:    "#ff00ff",
		Lens:   "#00ffff",
	}
}

// PartSet maps part names to their geometry.
type PartSet map[string]*framecad.Model

// Clone deep-copies every part.
func (ps PartSet) Clone() PartSet {
	out := make(PartSet, len(ps))
	for name, m := range ps {
		out[name] = m.Clone()
	}
	return out
}

// Originate originates every part and returns ps.
func (ps PartSet) Originate() PartSet {
	for _, m := range ps {
		if m != nil {
			m.Originate()
		}
	}
	return ps
}

// Translate moves every part and returns ps.
func (ps PartSet) Translate(dx, dy float64) PartSet {
	for _, m := range ps {
		if m != nil {
			m.Translate(dx, dy)
		}
	}
	return ps
}

// Bounds returns the extent of all parts together.
func (ps PartSet) Bounds() (framecad.Rect, bool) {
	var (
		r     framecad.Rect
		found bool
	)
	for _, name := range ps.Names() {
		b, ok := ps[name].Bounds()
		switch {
		case !ok:
		case !found:
			r, found = b, true
		default:
			r = r.Union(b)
		}
	}
	return r, found
}

// Names returns the part names in sorted order.
func (ps PartSet) Names() []string {
	return slices.Sorted(maps.Keys(ps))
}

// Missing returns the names among required that have no geometry.
func (ps PartSet) Missing(required ...string) []string {
	var out []string
	for _, name := range required {
		if ps[name].IsEmpty() {
			out = append(out, name)
		}
	}
	return out
}

// Model returns a model holding each part as a child named after it.
func (ps PartSet) Model() *framecad.Model {
	m := framecad.NewModel()
	for _, name := range ps.Names() {
		if ps[name] != nil {
			m.AddModel(name, ps[name])
		}
	}
	return m
}

// SizeParameters are the dimensions a frame is ordered or drafted at.
type SizeParameters struct {
	BridgeSize   float64 `json:"bridgeSize" yaml:"bridgeSize"`
	GlasWidth    float64 `json:"glasWidth" yaml:"glasWidth"`
	GlasHeight   float64 `json:"glasHeight" yaml:"glasHeight"`
	TempleLength float64 `json:"templeLength,omitempty" yaml:"templeLength,omitempty"`
}

// ErrInvalidSize is wrapped by SizeParameters.Validate.
var ErrInvalidSize = errors.New("frame: invalid size parameters")

// Validate checks that bridge and glass dimensions are positive.
func (s SizeParameters) Validate() error {
	var errs []error
	if s.BridgeSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: bridgeSize %v", ErrInvalidSize, s.BridgeSize))
	}
	if s.GlasWidth <= 0 {
		errs = append(errs, fmt.Errorf("%w: glasWidth %v", ErrInvalidSize, s.GlasWidth))
	}
	if s.GlasHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: glasHeight %v", ErrInvalidSize, s.GlasHeight))
	}
	return errors.Join(errs...)
}
