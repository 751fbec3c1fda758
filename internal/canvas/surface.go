package canvas

import (
	"image"
	"image/color"
	"image/draw"
)

// Surface is a fixed-size RGBA raster.
type Surface struct {
	img        *image.RGBA
	background color.RGBA
}

// NewSurface allocates a width x height surface filled with background.
func NewSurface(width, height int, background color.RGBA) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s := &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height)), background: background}
	s.Fill(background)
	return s
}

// Bounds returns the surface rectangle, always anchored at the origin.
func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// RGBA exposes the backing image. Callers must treat it as read-only.
func (s *Surface) RGBA() *image.RGBA { return s.img }

// Background returns the color used by Fill(Background) and Restore(nil).
func (s *Surface) Background() color.RGBA { return s.background }

// Fill paints every pixel with c.
func (s *Surface) Fill(c color.RGBA) {
	pix := s.img.Pix
	if len(pix) == 0 {
		return
	}
	row := s.img.Bounds().Dx() * 4
	for i := 0; i < row; i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
	for off := s.img.Stride; off < len(pix); off += s.img.Stride {
		copy(pix[off:off+row], pix[:row])
	}
}

// CopyFrom replaces every pixel with the pixels of src.
func (s *Surface) CopyFrom(src *Surface) {
	if src == nil {
		return
	}
	s.copyImage(src.img)
}

// Restore replaces every pixel with snap's pixels, or the background when
// snap is nil.
func (s *Surface) Restore(snap *Snapshot) {
	if snap == nil || snap.pix == nil {
		s.Fill(s.background)
		return
	}
	s.copyImage(snap.pix)
}

func (s *Surface) copyImage(src *image.RGBA) {
	if src.Bounds() == s.img.Bounds() && src.Stride == s.img.Stride {
		copy(s.img.Pix, src.Pix)
		return
	}
	s.Fill(s.background)
	draw.Draw(s.img, s.img.Bounds(), src, src.Bounds().Min, draw.Src)
}

// Clone returns a deep copy of the backing image.
func (s *Surface) Clone() *image.RGBA {
	return cloneRGBA(s.img)
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := &image.RGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}
