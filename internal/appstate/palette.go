package appstate

import (
	"image/color"
	"sync"

	"github.com/example/promraw/internal/canvas"
)

// PaletteColor is a named toolbar swatch.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

const (
	defaultColorIndex = 0
	defaultWidthIndex = 0
)

var (
	paletteMu sync.RWMutex
	palette   = []PaletteColor{
		{"White", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"Red", color.RGBA{0xff, 0x00, 0x00, 0xff}},
		{"Green", color.RGBA{0x00, 0xff, 0x00, 0xff}},
		{"Blue", color.RGBA{0x00, 0x00, 0xff, 0xff}},
		{"Yellow", color.RGBA{0xff, 0xff, 0x00, 0xff}},
		{"Magenta", color.RGBA{0xff, 0x00, 0xff, 0xff}},
		{"Cyan", color.RGBA{0x00, 0xff, 0xff, 0xff}},
		{"Orange", color.RGBA{0xff, 0xa5, 0x00, 0xff}},
		{"Purple", color.RGBA{0x80, 0x00, 0x80, 0xff}},
		{"Pink", color.RGBA{0xff, 0xc0, 0xcb, 0xff}},
	}
	widths = []int{2, 4, 6, 8, 10}
)

// DefaultColorIndex returns the palette index selected at start up.
func DefaultColorIndex() int { return defaultColorIndex }

// DefaultWidthIndex returns the width index selected at start up.
func DefaultWidthIndex() int { return defaultWidthIndex }

// PaletteColors returns a copy of the toolbar swatches.
func PaletteColors() []PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// WidthOptions returns the selectable stroke widths.
func WidthOptions() []int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]int, len(widths))
	copy(out, widths)
	return out
}

// EnsurePaletteColor returns the index of col, appending it under name when
// the palette does not already hold it.
func EnsurePaletteColor(col color.RGBA, name string) int {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	for i, p := range palette {
		if p.Color == col {
			return i
		}
	}
	if name == "" {
		name = canvas.FormatColor(col)
	}
	palette = append(palette, PaletteColor{Name: name, Color: col})
	return len(palette) - 1
}

// EnsureWidth returns the index of width, inserting it in order when missing.
func EnsureWidth(width int) int {
	if width < 1 {
		width = 1
	}
	paletteMu.Lock()
	defer paletteMu.Unlock()
	for i, w := range widths {
		if w == width {
			return i
		}
		if w > width {
			widths = append(widths[:i], append([]int{width}, widths[i:]...)...)
			return i
		}
	}
	widths = append(widths, width)
	return len(widths) - 1
}

func paletteLen() int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return len(palette)
}

func paletteColorAt(idx int) PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return palette[clampIndex(idx, len(palette))]
}

func widthsLen() int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return len(widths)
}

func widthAt(idx int) int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return widths[clampIndex(idx, len(widths))]
}

func clampIndex(idx, n int) int {
	if idx < 0 || n == 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
