package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	// DefaultBackground is the fill used for fresh and cleared surfaces.
	DefaultBackground = color.RGBA{0x1a, 0x1a, 0x1a, 0xff}
	// DefaultColor is the initial stroke color.
	DefaultColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// DefaultWidth is the initial stroke width in pixels.
const DefaultWidth = 2

// StrokeStyle is the color and width applied by drawing tools.
type StrokeStyle struct {
	Color color.RGBA
	Width int
}

// Effective returns the style tool actually paints with. The eraser paints
// with the background color at twice the width.
func (s StrokeStyle) Effective(tool Tool, background color.RGBA) StrokeStyle {
	out := s
	if out.Width < 1 {
		out.Width = 1
	}
	if tool == Eraser {
		out.Color = background
		out.Width *= 2
	}
	return out
}

// ParseColor accepts #RRGGBB, #RRGGBBAA, #RGB or an SVG color name.
func ParseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if !strings.HasPrefix(spec, "#") {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	hex := spec[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 0xff}, nil
	}
	return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
}

// FormatColor renders c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func FormatColor(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
