package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/example/promraw/internal/canvas"
	"github.com/example/promraw/internal/submission"
	"github.com/example/promraw/internal/theme"
)

const (
	CardWidth   = 512
	cardBorder  = 4
	cardPadding = 24
	cardGap     = 16
	panelHeight = 192
	boxPadding  = 16

	titleSize   = 24
	headingSize = 16
	bodySize    = 14
	labelSize   = 12
	valueSize   = 24
	lineSpacing = 6

	CardTitle     = "Promraw ERC7007"
	LabelOriginal = "Original"
	LabelEnhanced = "AI Enhanced"
)

// CardInput is everything shown on a submission card.
type CardInput struct {
	Drawing  image.Image
	Enhanced image.Image // may be nil
	Prompt   string
	Score    int
	Theme    *theme.Theme
	Shadow   bool
}

// painter draws text onto dst and keeps the first error.
type painter struct {
	dst *image.RGBA
	err error
}

func (p *painter) measure(s string, size float64) (width, ascent, descent int) {
	if p.err != nil {
		return 0, 0, 0
	}
	width, ascent, descent, p.err = canvas.MeasureText(s, size)
	return
}

func (p *painter) text(at image.Point, s string, col color.RGBA, size float64) {
	if p.err != nil {
		return
	}
	p.err = canvas.DrawText(p.dst, at, s, col, size)
}

// wrap breaks s into lines no wider than width.
func (p *painter) wrap(s string, size float64, width int) []string {
	var lines []string
	cur := ""
	for _, word := range strings.Fields(s) {
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		if w, _, _ := p.measure(next, size); w > width && cur != "" {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur = next
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func lineHeight(size float64) int { return int(size) + lineSpacing }

// Card renders the submission card.
func Card(in CardInput) (*image.RGBA, error) {
	if in.Drawing == nil {
		return nil, fmt.Errorf("card: drawing is required")
	}
	th := in.Theme
	if th == nil {
		th = theme.Default()
	}
	content := CardWidth - 2*cardBorder - 2*cardPadding
	panelWidth := (content - cardGap) / 2

	measure := &painter{dst: image.NewRGBA(image.Rect(0, 0, 1, 1))}
	promptLines := measure.wrap(in.Prompt, bodySize, content-2*boxPadding)
	if len(promptLines) == 0 {
		promptLines = []string{" "}
	}
	if measure.err != nil {
		return nil, fmt.Errorf("card: %w", measure.err)
	}
	promptBox := 2*boxPadding + lineHeight(headingSize) + len(promptLines)*lineHeight(bodySize)
	statBox := 2*boxPadding + lineHeight(headingSize) + lineHeight(valueSize)
	height := 2*cardBorder + 2*cardPadding + lineHeight(titleSize) + cardGap +
		panelHeight + cardGap + promptBox + cardGap + statBox

	bounds := image.Rect(0, 0, CardWidth, height)
	dst := image.NewRGBA(bounds)
	fillRoundRect(dst, bounds, 16, diagonalGradient(bounds, th.CardBorderStart, th.CardBorderMid, th.CardBorderEnd))
	inner := bounds.Inset(cardBorder)
	fillRoundRect(dst, inner, 12, verticalGradient(inner, th.CardBackground, color.RGBA{A: 0xff}))

	p := &painter{dst: dst}
	x := inner.Min.X + cardPadding
	y := inner.Min.Y + cardPadding

	tw, asc, _ := p.measure(CardTitle, titleSize)
	p.text(image.Pt(bounds.Dx()/2-tw/2, y+asc), CardTitle, th.CardAccent, titleSize)
	y += lineHeight(titleSize) + cardGap

	left := image.Rect(x, y, x+panelWidth, y+panelHeight)
	right := image.Rect(x+panelWidth+cardGap, y, x+content, y+panelHeight)
	drawPanel(dst, left, in.Drawing, th)
	if in.Enhanced != nil {
		drawPanel(dst, right, in.Enhanced, th)
	} else {
		fillRoundRect(dst, right, 8, image.NewUniform(th.CardPanel))
		msg := "No AI image"
		mw, masc, _ := p.measure(msg, bodySize)
		p.text(image.Pt(right.Min.X+(right.Dx()-mw)/2, right.Min.Y+(right.Dy()+masc)/2), msg, th.CardMuted, bodySize)
	}
	p.label(left, LabelOriginal, th)
	p.label(right, LabelEnhanced, th)
	y += panelHeight + cardGap

	box := image.Rect(x, y, x+content, y+promptBox)
	fillRoundRect(dst, box, 8, image.NewUniform(th.CardPanel))
	ty := p.heading(box, "Prompt", th)
	for _, line := range promptLines {
		_, a, _ := p.measure(line, bodySize)
		p.text(image.Pt(box.Min.X+boxPadding, ty+a), line, th.CardMuted, bodySize)
		ty += lineHeight(bodySize)
	}
	y += promptBox + cardGap

	stats := [][2]string{
		{"AI Score", fmt.Sprintf("%d/100", in.Score)},
		{"Rarity", submission.Rarity(in.Score)},
	}
	for i, st := range stats {
		bx := x + i*(panelWidth+cardGap)
		box := image.Rect(bx, y, bx+panelWidth, y+statBox)
		fillRoundRect(dst, box, 8, image.NewUniform(th.CardPanel))
		vy := p.heading(box, st[0], th)
		_, a, _ := p.measure(st[1], valueSize)
		p.text(image.Pt(box.Min.X+boxPadding, vy+a), st[1], th.CardAccent, valueSize)
	}
	if p.err != nil {
		return nil, fmt.Errorf("card: %w", p.err)
	}
	if in.Shadow {
		return ApplyShadow(dst, CardShadow()).Image, nil
	}
	return dst, nil
}

// heading draws a box title and returns the y where the body starts.
func (p *painter) heading(box image.Rectangle, title string, th *theme.Theme) int {
	y := box.Min.Y + boxPadding
	_, a, _ := p.measure(title, headingSize)
	p.text(image.Pt(box.Min.X+boxPadding, y+a), title, th.CardText, headingSize)
	return y + lineHeight(headingSize)
}

// label draws a chip in the bottom-left corner of panel.
func (p *painter) label(panel image.Rectangle, text string, th *theme.Theme) {
	w, a, d := p.measure(text, labelSize)
	chip := image.Rect(panel.Min.X+8, panel.Max.Y-8-(a+d+8), panel.Min.X+8+w+16, panel.Max.Y-8)
	fillRoundRect(p.dst, chip, 4, image.NewUniform(th.CardLabel))
	p.text(image.Pt(chip.Min.X+8, chip.Min.Y+4+a), text, th.CardText, labelSize)
}

// drawPanel scales src to cover r, cropping the centre like CSS
// object-fit: cover.
func drawPanel(dst *image.RGBA, r image.Rectangle, src image.Image, th *theme.Theme) {
	tile := image.NewRGBA(r)
	draw.Draw(tile, r, image.NewUniform(th.CardPanel), image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(tile, r, src, CoverRect(src.Bounds(), r.Size()), draw.Over, nil)
	fillRoundRect(dst, r, 8, tile)
}

// CoverRect returns the centred part of src with the aspect ratio of size.
func CoverRect(src image.Rectangle, size image.Point) image.Rectangle {
	if src.Empty() || size.X <= 0 || size.Y <= 0 {
		return src
	}
	sw, sh := src.Dx(), src.Dy()
	// Compare sw/sh with size.X/size.Y without floats.
	if sw*size.Y > sh*size.X {
		w := sh * size.X / size.Y
		x0 := src.Min.X + (sw-w)/2
		return image.Rect(x0, src.Min.Y, x0+w, src.Max.Y)
	}
	h := sw * size.Y / size.X
	y0 := src.Min.Y + (sh-h)/2
	return image.Rect(src.Min.X, y0, src.Max.X, y0+h)
}

const kappa = 0.5522847498

// fillRoundRect fills r with src through a rounded-rectangle mask. src is
// sampled at the same coordinates as dst.
func fillRoundRect(dst *image.RGBA, r image.Rectangle, radius float64, src image.Image) {
	if r.Empty() {
		return
	}
	w, h := float32(r.Dx()), float32(r.Dy())
	rad := float32(min(radius, float64(min(r.Dx(), r.Dy()))/2))
	k := rad * (1 - kappa)
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(rad, 0)
	z.LineTo(w-rad, 0)
	z.CubeTo(w-k, 0, w, k, w, rad)
	z.LineTo(w, h-rad)
	z.CubeTo(w, h-k, w-k, h, w-rad, h)
	z.LineTo(rad, h)
	z.CubeTo(k, h, 0, h-k, 0, h-rad)
	z.LineTo(0, rad)
	z.CubeTo(0, k, k, 0, rad, 0)
	z.ClosePath()
	sp := r.Min
	if _, ok := src.(*image.Uniform); ok {
		sp = image.Point{}
	}
	z.Draw(dst, r, src, sp)
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// diagonalGradient runs from the top-left corner through mid to the
// bottom-right corner.
func diagonalGradient(r image.Rectangle, start, mid, end color.RGBA) *image.RGBA {
	img := image.NewRGBA(r)
	span := float64(r.Dx() + r.Dy() - 2)
	if span <= 0 {
		span = 1
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			t := float64(x-r.Min.X+y-r.Min.Y) / span
			var c color.RGBA
			if t < 0.5 {
				c = lerp(start, mid, t*2)
			} else {
				c = lerp(mid, end, t*2-1)
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func verticalGradient(r image.Rectangle, top, bottom color.RGBA) *image.RGBA {
	img := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		t := 0.0
		if r.Dy() > 1 {
			t = float64(y-r.Min.Y) / float64(r.Dy()-1)
		}
		c := lerp(top, bottom, t)
		row := img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X-1, y)+4]
		for i := 0; i < len(row); i += 4 {
			row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return img
}
