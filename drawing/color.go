package drawing

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// aci holds the first seven AutoCAD colour indices, which the DXF
// conversion emits for layer colours.
var aci = [...]color.RGBA{
	1: {R: 0xff, A: 0xff},
	2: {R: 0xff, G: 0xff, A: 0xff},
	3: {G: 0xff, A: 0xff},
	4: {G: 0xff, B: 0xff, A: 0xff},
	5: {B: 0xff, A: 0xff},
	6: {R: 0xff, B: 0xff, A: 0xff},
	7: {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// ParseColor resolves a colour identifier: "#rgb", "#rrggbb",
// "rgb(r, g, b)", a CSS colour name or an AutoCAD colour index 1-7.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGBFunc(s[4 : len(s)-1])
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n < len(aci) {
		return aci[n], nil
	}
	return color.RGBA{}, fmt.Errorf("drawing: unknown colour %q", s)
}

func parseHex(h string) (color.RGBA, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("drawing: bad hex colour %q", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("drawing: bad hex colour %q: %w", h, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func parseRGBFunc(args string) (color.RGBA, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("drawing: bad rgb() colour %q", args)
	}
	var ch [3]uint8
	for i, p := range parts {
		p = strings.TrimSpace(p)
		var (
			v   float64
			err error
		)
		if pct, ok := strings.CutSuffix(p, "%"); ok {
			v, err = strconv.ParseFloat(pct, 64)
			v = v * 255 / 100
		} else {
			v, err = strconv.ParseFloat(p, 64)
		}
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("drawing: bad rgb() channel %q", p)
		}
		ch[i] = uint8(v + 0.5)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, nil
}
