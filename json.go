package framecad

import (
	"encoding/json"
	"fmt"
)

// JSON layout of a Model:
//
//	{"origin":[x,y],
//	 "paths":{"k":{"type":"line","origin":[x,y],"end":[x,y]},
//	          "a":{"type":"arc","origin":[cx,cy],"radius":r,"startAngle":s,"endAngle":e}},
//	 "models":{"child":{...}}}

type pathJSON struct {
	Type       string      `json:"type"`
	Origin     [2]float64  `json:"origin"`
	End        *[2]float64 `json:"end,omitempty"`
	Radius     float64     `json:"radius,omitempty"`
	StartAngle float64     `json:"startAngle,omitempty"`
	EndAngle   float64     `json:"endAngle,omitempty"`
}

type modelJSON struct {
	Origin *[2]float64         `json:"origin,omitempty"`
	Paths  map[string]pathJSON `json:"paths,omitempty"`
	Models map[string]*Model   `json:"models,omitempty"`
}

// MarshalJSON encodes the model tree.
func (m *Model) MarshalJSON() ([]byte, error) {
	out := modelJSON{Models: m.Models}
	if m.Origin != (Point{}) {
		out.Origin = &[2]float64{m.Origin.X, m.Origin.Y}
	}
	if len(m.Paths) > 0 {
		out.Paths = make(map[string]pathJSON, len(m.Paths))
	}
	for k, s := range m.Paths {
		switch v := s.(type) {
		case Line:
			out.Paths[k] = pathJSON{
				Type:   "line",
				Origin: [2]float64{v.Origin.X, v.Origin.Y},
				End:    &[2]float64{v.End.X, v.End.Y},
			}
		case Arc:
			out.Paths[k] = pathJSON{
				Type:       "arc",
				Origin:     [2]float64{v.Center.X, v.Center.Y},
				Radius:     v.Radius,
				StartAngle: v.StartAngle,
				EndAngle:   v.EndAngle,
			}
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a model tree written by MarshalJSON.
func (m *Model) UnmarshalJSON(data []byte) error {
	var in modelJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*m = Model{Models: in.Models}
	if in.Origin != nil {
		m.Origin = Pt(in.Origin[0], in.Origin[1])
	}
	for k, p := range in.Paths {
		switch p.Type {
		case "line":
			if p.End == nil {
				return fmt.Errorf("framecad: line %q without end", k)
			}
			m.AddPath(k, Line{Origin: Pt(p.Origin[0], p.Origin[1]), End: Pt(p.End[0], p.End[1])})
		case "arc":
			m.AddPath(k, Arc{
				Center:     Pt(p.Origin[0], p.Origin[1]),
				Radius:     p.Radius,
				StartAngle: p.StartAngle,
				EndAngle:   p.EndAngle,
			})
		default:
			return fmt.Errorf("framecad: path %q has unknown type %q", k, p.Type)
		}
	}
	return nil
}
