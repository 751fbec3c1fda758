package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func blank(w, h int) *image.RGBA {
	return NewSurface(w, h, DefaultBackground).RGBA()
}

func countColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

// near allows for antialiasing coverage that rounds just short of full.
func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return x-y < 3 || y-x < 3 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B)
}

func TestPixelDotSizes(t *testing.T) {
	cases := map[int]int{1: 1, 2: 5, 4: 13}
	for width, want := range cases {
		img := blank(20, 20)
		PixelRasterizer{}.Dot(img, image.Pt(10, 10), red, width)
		assert.Equal(t, want, countColor(img, red), "width %d", width)
	}
}

func TestPixelSegmentEndpoints(t *testing.T) {
	img := blank(100, 100)
	PixelRasterizer{}.Segment(img, image.Pt(5, 90), image.Pt(90, 5), red, 1)
	assert.Equal(t, red, img.RGBAAt(5, 90))
	assert.Equal(t, red, img.RGBAAt(90, 5))
	assert.Equal(t, 86, countColor(img, red))
}

func TestPixelPrimitivesClip(t *testing.T) {
	img := blank(50, 50)
	r := PixelRasterizer{}
	r.Segment(img, image.Pt(-100, -100), image.Pt(200, 200), red, 10)
	r.Circle(img, image.Pt(-5, 25), 30, red, 4)
	r.Rect(img, image.Rect(-10, -10, 70, 70), red, 3)
	r.Dot(img, image.Pt(1000, 1000), red, 8)
	assert.Equal(t, red, img.RGBAAt(25, 25))
	assert.Equal(t, red, img.RGBAAt(0, 0))
}

func TestPixelRectWidths(t *testing.T) {
	img := blank(60, 60)
	PixelRasterizer{}.Rect(img, image.Rect(10, 10, 40, 30), red, 4)
	assert.Equal(t, red, img.RGBAAt(8, 8))
	assert.Equal(t, red, img.RGBAAt(41, 31))
	assert.Equal(t, DefaultBackground, img.RGBAAt(7, 7))
	assert.Equal(t, DefaultBackground, img.RGBAAt(42, 20))
	assert.Equal(t, DefaultBackground, img.RGBAAt(25, 20))
}

func TestVectorPrimitivesCover(t *testing.T) {
	v := NewVectorRasterizer()
	img := blank(300, 300)
	v.Circle(img, image.Pt(100, 100), 50, white, 2)
	assert.NotEqual(t, DefaultBackground, img.RGBAAt(150, 100))
	assert.Equal(t, DefaultBackground, img.RGBAAt(100, 100))
	assert.Equal(t, DefaultBackground, img.RGBAAt(125, 100))

	v.Segment(img, image.Pt(10, 250), image.Pt(290, 250), red, 6)
	assert.True(t, near(red, img.RGBAAt(150, 250)))
	assert.Equal(t, DefaultBackground, img.RGBAAt(150, 240))

	v.Rect(img, image.Rect(200, 20, 280, 80), white, 4)
	assert.True(t, near(white, img.RGBAAt(200, 50)))
	assert.Equal(t, DefaultBackground, img.RGBAAt(240, 50))

	v.Dot(img, image.Pt(-50, -50), red, 4)
	v.Segment(img, image.Pt(20, 20), image.Pt(20, 20), red, 4)
	assert.True(t, near(red, img.RGBAAt(20, 20)))
}
