package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Rasterizer draws stroke primitives into an RGBA image. Primitives are
// clipped to dst; coordinates address pixel centres.
type Rasterizer interface {
	// Dot stamps a filled disc of diameter width centred on p.
	Dot(dst *image.RGBA, p image.Point, col color.RGBA, width int)
	// Segment strokes a round-capped line from a to b.
	Segment(dst *image.RGBA, a, b image.Point, col color.RGBA, width int)
	// Circle strokes the outline of a circle.
	Circle(dst *image.RGBA, center image.Point, radius float64, col color.RGBA, width int)
	// Rect strokes the outline of r. r.Max is the far corner pixel and is
	// included in the outline.
	Rect(dst *image.RGBA, r image.Rectangle, col color.RGBA, width int)
}

// PixelRasterizer is an aliased, fully deterministic rasterizer. Its output
// depends only on integer geometry which makes it suited to tests and
// previews that must match commits exactly.
type PixelRasterizer struct{}

var _ Rasterizer = PixelRasterizer{}

// discOffsets lists the pixel offsets covered by a brush of the given width.
func discOffsets(width int) []image.Point {
	if width < 1 {
		width = 1
	}
	r := width / 2
	limit := width * width
	var pts []image.Point
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			// (2dx)^2 + (2dy)^2 <= width^2 keeps the disc diameter at width.
			if 4*(dx*dx+dy*dy) <= limit {
				pts = append(pts, image.Pt(dx, dy))
			}
		}
	}
	return pts
}

func stamp(dst *image.RGBA, p image.Point, col color.RGBA, disc []image.Point) {
	b := dst.Bounds()
	for _, o := range disc {
		q := p.Add(o)
		if q.In(b) {
			dst.SetRGBA(q.X, q.Y, col)
		}
	}
}

func (PixelRasterizer) Dot(dst *image.RGBA, p image.Point, col color.RGBA, width int) {
	stamp(dst, p, col, discOffsets(width))
}

// Segment walks the line with Bresenham's algorithm, stamping the brush disc
// at every step.
func (PixelRasterizer) Segment(dst *image.RGBA, a, b image.Point, col color.RGBA, width int) {
	disc := discOffsets(width)
	if a == b {
		stamp(dst, a, col, disc)
		return
	}
	clip := dst.Bounds().Inset(-width - 1)
	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if image.Pt(x0, y0).In(clip) {
			stamp(dst, image.Pt(x0, y0), col, disc)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Circle fills the annulus of pixels whose centre lies within width/2 of
// the circle.
func (PixelRasterizer) Circle(dst *image.RGBA, center image.Point, radius float64, col color.RGBA, width int) {
	if width < 1 {
		width = 1
	}
	if radius < 0 {
		radius = -radius
	}
	half := float64(width) / 2
	inner := radius - half
	outer := radius + half
	innerSq := 0.0
	if inner > 0 {
		innerSq = inner * inner
	}
	outerSq := outer * outer
	ext := int(math.Ceil(outer))
	area := image.Rect(center.X-ext, center.Y-ext, center.X+ext+1, center.Y+ext+1).Intersect(dst.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		fy := float64(y - center.Y)
		for x := area.Min.X; x < area.Max.X; x++ {
			fx := float64(x - center.X)
			d := fx*fx + fy*fy
			if d >= innerSq && d <= outerSq {
				dst.SetRGBA(x, y, col)
			}
		}
	}
}

// Rect paints four bands of the given width centred on the outline, which
// gives mitred corners.
func (PixelRasterizer) Rect(dst *image.RGBA, r image.Rectangle, col color.RGBA, width int) {
	if width < 1 {
		width = 1
	}
	r = r.Canon()
	lo := width / 2
	hi := width - lo
	src := image.NewUniform(col)
	bands := []image.Rectangle{
		image.Rect(r.Min.X-lo, r.Min.Y-lo, r.Max.X+hi, r.Min.Y+hi),
		image.Rect(r.Min.X-lo, r.Max.Y-lo, r.Max.X+hi, r.Max.Y+hi),
		image.Rect(r.Min.X-lo, r.Min.Y-lo, r.Min.X+hi, r.Max.Y+hi),
		image.Rect(r.Max.X-lo, r.Min.Y-lo, r.Max.X+hi, r.Max.Y+hi),
	}
	for _, band := range bands {
		draw.Draw(dst, band.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
