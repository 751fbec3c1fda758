package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{0xff, 0, 0, 0xff}
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e := New(opts...)
	e.Initialize(500, 500)
	require.True(t, e.Initialized())
	return e
}

func drag(e *Engine, from image.Point, path ...image.Point) {
	e.PointerDown(from)
	last := from
	for _, p := range path {
		e.PointerMove(p)
		last = p
	}
	e.PointerUp(last)
}

func isFilled(img *image.RGBA, c color.RGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != c {
				return false
			}
		}
	}
	return true
}

func requireSamePixels(t *testing.T, want, got *image.RGBA) {
	t.Helper()
	require.Equal(t, want.Bounds(), got.Bounds())
	require.True(t, samePixels(want, got), "pixel content differs")
}

func samePixels(a, b *image.RGBA) bool {
	if a.Bounds() != b.Bounds() || len(a.Pix) != len(b.Pix) {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}
