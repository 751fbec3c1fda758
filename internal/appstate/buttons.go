package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/promraw/internal/canvas"
	"github.com/example/promraw/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states until
// the rect changes or Invalidate is called.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.Invalidate()
	}
}

// Invalidate drops the cached renderings, for example after a theme change.
func (cb *CacheButton) Invalidate() { cb.cache = [3]*image.RGBA{} }

func buttonColors(th *theme.Theme, state ButtonState) (bg, fg color.RGBA) {
	switch state {
	case StateHover:
		return th.ButtonHover, th.ButtonText
	case StatePressed:
		return th.ButtonActive, th.ButtonTextActive
	}
	return th.ButtonBackground, th.ButtonText
}

func drawLabel(dst *image.RGBA, at image.Point, label string, col color.RGBA) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(at.X, at.Y)}
	d.DrawString(label)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.RGBA) {
	if col.A == 0 || r.Empty() {
		return
	}
	src := &image.Uniform{col}
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1),
		image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1),
	} {
		draw.Draw(dst, edge, src, image.Point{}, draw.Over)
	}
}

// ToolButton is a toolbar button that selects a drawing tool.
type ToolButton struct {
	tool     canvas.Tool
	rect     image.Rectangle
	theme    *theme.Theme
	onSelect func(canvas.Tool)
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := buttonColors(tb.theme, state)
	draw.Draw(dst, tb.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	strokeRect(dst, tb.rect, tb.theme.ButtonBorder)
	drawLabel(dst, image.Pt(tb.rect.Min.X+4, tb.rect.Min.Y+16), ToolLabel(tb.tool), fg)
}

func (tb *ToolButton) Rect() image.Rectangle     { return tb.rect }
func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect(tb.tool)
	}
}

// Shortcut is a clickable entry in the bottom bar.
type Shortcut struct {
	label  string
	action Action
	rect   image.Rectangle
	theme  *theme.Theme
	run    func(Action)
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	bg := s.theme.ShortcutBackground
	fg := s.theme.ShortcutText
	if state != StateDefault {
		bg, fg = buttonColors(s.theme, state)
	}
	draw.Draw(dst, s.rect, &image.Uniform{bg}, image.Point{}, draw.Over)
	strokeRect(dst, s.rect, s.theme.ButtonBorder)
	drawLabel(dst, image.Pt(s.rect.Min.X+2, s.rect.Min.Y+14), s.label, fg)
}

func (s *Shortcut) Rect() image.Rectangle     { return s.rect }
func (s *Shortcut) SetRect(r image.Rectangle) { s.rect = r }

func (s *Shortcut) Activate() {
	if s.run != nil {
		s.run(s.action)
	}
}
