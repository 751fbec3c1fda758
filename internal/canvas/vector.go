package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so a quarter arc matches a circle.
const kappa = 0.5522847498

// VectorRasterizer renders antialiased strokes with x/image/vector. Each
// primitive is rasterised into a mask sized to its bounding box and then
// composited over dst.
type VectorRasterizer struct {
	z *vector.Rasterizer
}

var _ Rasterizer = (*VectorRasterizer)(nil)

// NewVectorRasterizer returns a ready VectorRasterizer.
func NewVectorRasterizer() *VectorRasterizer {
	return &VectorRasterizer{}
}

type pathBuilder struct {
	z      *vector.Rasterizer
	origin image.Point
}

func (p pathBuilder) pt(x, y float64) (float32, float32) {
	return float32(x - float64(p.origin.X)), float32(y - float64(p.origin.Y))
}

func (p pathBuilder) moveTo(x, y float64) { p.z.MoveTo(p.pt(x, y)) }
func (p pathBuilder) lineTo(x, y float64) { p.z.LineTo(p.pt(x, y)) }

// quarter adds an arc around (cx, cy) from offset (ux, uy) to offset
// (vx, vy). Both offsets must be perpendicular with equal length.
func (p pathBuilder) quarter(cx, cy, ux, uy, vx, vy float64) {
	bx, by := p.pt(cx+ux+kappa*vx, cy+uy+kappa*vy)
	ccx, ccy := p.pt(cx+vx+kappa*ux, cy+vy+kappa*uy)
	dx, dy := p.pt(cx+vx, cy+vy)
	p.z.CubeTo(bx, by, ccx, ccy, dx, dy)
}

// circle adds a closed circle, clockwise when cw is set.
func (p pathBuilder) circle(cx, cy, r float64, cw bool) {
	s := 1.0
	if !cw {
		s = -1
	}
	p.moveTo(cx+r, cy)
	p.quarter(cx, cy, r, 0, 0, s*r)
	p.quarter(cx, cy, 0, s*r, -r, 0)
	p.quarter(cx, cy, -r, 0, 0, -s*r)
	p.quarter(cx, cy, 0, -s*r, r, 0)
	p.z.ClosePath()
}

// rect adds a closed rectangle, clockwise when cw is set.
func (p pathBuilder) rect(x0, y0, x1, y1 float64, cw bool) {
	p.moveTo(x0, y0)
	if cw {
		p.lineTo(x1, y0)
		p.lineTo(x1, y1)
		p.lineTo(x0, y1)
	} else {
		p.lineTo(x0, y1)
		p.lineTo(x1, y1)
		p.lineTo(x1, y0)
	}
	p.z.ClosePath()
}

func (v *VectorRasterizer) begin(dst *image.RGBA, box image.Rectangle) (pathBuilder, image.Rectangle, bool) {
	area := box.Intersect(dst.Bounds())
	if area.Empty() {
		return pathBuilder{}, area, false
	}
	if v.z == nil {
		v.z = vector.NewRasterizer(area.Dx(), area.Dy())
	} else {
		v.z.Reset(area.Dx(), area.Dy())
	}
	v.z.DrawOp = draw.Over
	return pathBuilder{z: v.z, origin: area.Min}, area, true
}

func (v *VectorRasterizer) finish(dst *image.RGBA, area image.Rectangle, col color.RGBA) {
	v.z.Draw(dst, area, image.NewUniform(col), image.Point{})
}

func centre(p image.Point) (float64, float64) {
	return float64(p.X) + 0.5, float64(p.Y) + 0.5
}

func (v *VectorRasterizer) Dot(dst *image.RGBA, p image.Point, col color.RGBA, width int) {
	if width < 1 {
		width = 1
	}
	r := float64(width) / 2
	ext := int(math.Ceil(r)) + 1
	pb, area, ok := v.begin(dst, image.Rect(p.X-ext, p.Y-ext, p.X+ext+1, p.Y+ext+1))
	if !ok {
		return
	}
	cx, cy := centre(p)
	pb.circle(cx, cy, r, true)
	v.finish(dst, area, col)
}

// Segment fills the capsule swept by a disc of diameter width moving from a
// to b.
func (v *VectorRasterizer) Segment(dst *image.RGBA, a, b image.Point, col color.RGBA, width int) {
	if a == b {
		v.Dot(dst, a, col, width)
		return
	}
	if width < 1 {
		width = 1
	}
	r := float64(width) / 2
	ext := int(math.Ceil(r)) + 1
	box := image.Rect(a.X, a.Y, b.X, b.Y).Canon()
	box = image.Rect(box.Min.X-ext, box.Min.Y-ext, box.Max.X+ext+1, box.Max.Y+ext+1)
	pb, area, ok := v.begin(dst, box)
	if !ok {
		return
	}
	ax, ay := centre(a)
	bx, by := centre(b)
	length := math.Hypot(bx-ax, by-ay)
	// d is the unit direction scaled to r, n its normal.
	dx, dy := (bx-ax)/length*r, (by-ay)/length*r
	nx, ny := -dy, dx
	pb.moveTo(ax+nx, ay+ny)
	pb.lineTo(bx+nx, by+ny)
	pb.quarter(bx, by, nx, ny, dx, dy)
	pb.quarter(bx, by, dx, dy, -nx, -ny)
	pb.lineTo(ax-nx, ay-ny)
	pb.quarter(ax, ay, -nx, -ny, -dx, -dy)
	pb.quarter(ax, ay, -dx, -dy, nx, ny)
	pb.z.ClosePath()
	v.finish(dst, area, col)
}

// Circle fills the ring between radius-width/2 and radius+width/2.
func (v *VectorRasterizer) Circle(dst *image.RGBA, center image.Point, radius float64, col color.RGBA, width int) {
	if width < 1 {
		width = 1
	}
	if radius < 0 {
		radius = -radius
	}
	half := float64(width) / 2
	outer := radius + half
	ext := int(math.Ceil(outer)) + 1
	pb, area, ok := v.begin(dst, image.Rect(center.X-ext, center.Y-ext, center.X+ext+1, center.Y+ext+1))
	if !ok {
		return
	}
	cx, cy := centre(center)
	pb.circle(cx, cy, outer, true)
	if inner := radius - half; inner > 0 {
		pb.circle(cx, cy, inner, false)
	}
	v.finish(dst, area, col)
}

// Rect fills the frame between the outline inset and outset by width/2.
func (v *VectorRasterizer) Rect(dst *image.RGBA, r image.Rectangle, col color.RGBA, width int) {
	if width < 1 {
		width = 1
	}
	r = r.Canon()
	half := float64(width) / 2
	ext := int(math.Ceil(half)) + 1
	pb, area, ok := v.begin(dst, image.Rect(r.Min.X-ext, r.Min.Y-ext, r.Max.X+ext+1, r.Max.Y+ext+1))
	if !ok {
		return
	}
	x0, y0 := centre(r.Min)
	x1, y1 := centre(r.Max)
	pb.rect(x0-half, y0-half, x1+half, y1+half, true)
	if x1-x0 > 2*half && y1-y0 > 2*half {
		pb.rect(x0+half, y0+half, x1-half, y1-half, false)
	}
	v.finish(dst, area, col)
}
