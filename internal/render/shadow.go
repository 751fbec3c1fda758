package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow placed under a card.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
	Color   color.RGBA
}

// ShadowResult captures the output of ApplyShadow.
type ShadowResult struct {
	// Image holds the subject composited over its shadow, rebased to a zero
	// origin.
	Image *image.RGBA
	// Offset is where the subject's top-left corner landed in Image.
	Offset image.Point
}

// CardShadow is the soft shadow used for submission cards.
func CardShadow() ShadowOptions {
	return ShadowOptions{
		Radius:  12,
		Offset:  image.Pt(0, 10),
		Opacity: 0.6,
		Color:   color.RGBA{A: 0xff},
	}
}

// ApplyShadow composites img over a blurred copy of its alpha channel. The
// canvas grows to fit the blur and offset.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	src := img.Bounds()
	if src.Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: img}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	padded := src.Inset(-radius)
	shadow := padded.Add(opts.Offset)
	total := src.Union(shadow)

	mask := alphaMask(img, padded)
	boxBlur(mask, radius)

	dst := image.NewRGBA(total.Sub(total.Min))
	tint := opts.Color
	tint.A = uint8(opacity*255 + 0.5)
	if tint.A > 0 {
		draw.DrawMask(dst, shadow.Sub(total.Min), image.NewUniform(tint), image.Point{}, mask, image.Point{}, draw.Over)
	}
	offset := src.Min.Sub(total.Min)
	draw.Draw(dst, src.Sub(total.Min), img, src.Min, draw.Over)
	return ShadowResult{Image: dst, Offset: offset}
}

// alphaMask copies the alpha of img into a zero-based mask covering area.
func alphaMask(img *image.RGBA, area image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(area.Sub(area.Min))
	src := img.Bounds()
	for y := src.Min.Y; y < src.Max.Y; y++ {
		row := img.Pix[img.PixOffset(src.Min.X, y):]
		out := mask.Pix[(y-area.Min.Y)*mask.Stride+src.Min.X-area.Min.X:]
		for i := 0; i < src.Dx(); i++ {
			out[i] = row[i*4+3]
		}
	}
	return mask
}

// boxBlur blurs m in place with a horizontal then vertical running mean.
func boxBlur(m *image.Alpha, radius int) {
	if radius <= 0 {
		return
	}
	w, h := m.Rect.Dx(), m.Rect.Dy()
	line := make([]uint8, max(w, h))
	for y := 0; y < h; y++ {
		blurLine(m.Pix[y*m.Stride:], 1, w, radius, line)
	}
	for x := 0; x < w; x++ {
		blurLine(m.Pix[x:], m.Stride, h, radius, line)
	}
}

// blurLine averages n samples spaced step apart in pix over a window of
// radius on either side, clamped at the ends.
func blurLine(pix []uint8, step, n, radius int, scratch []uint8) {
	sum := 0
	for i := 0; i <= min(radius, n-1); i++ {
		sum += int(pix[i*step])
	}
	lo, hi := 0, min(radius, n-1)
	for i := 0; i < n; i++ {
		scratch[i] = uint8(sum / (hi - lo + 1))
		if next := i + radius + 1; next < n {
			sum += int(pix[next*step])
			hi = next
		}
		if i-radius >= 0 {
			sum -= int(pix[(i-radius)*step])
			lo = i - radius + 1
		}
	}
	for i := 0; i < n; i++ {
		pix[i*step] = scratch[i]
	}
}
