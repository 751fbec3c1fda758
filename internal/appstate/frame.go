package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/promraw/internal/canvas"
	"github.com/example/promraw/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

const messageSize = 24

type paintState struct {
	layout       Layout
	frame        *image.RGBA
	theme        *theme.Theme
	tool         canvas.Tool
	colorIdx     int
	widthIdx     int
	prompt       string
	capturing    bool
	textAt       image.Point
	text         string
	textStyle    canvas.StrokeStyle
	shortcuts    []*Shortcut
	tools        []*CacheButton
	hover        Hit
	message      string
	messageUntil time.Time
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	size := st.layout.Window.Size()
	b, err := s.NewBuffer(size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	render(ctx, b.RGBA(), st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// render paints a whole window frame into dst. It stops early when ctx is
// canceled.
func render(ctx context.Context, dst *image.RGBA, st paintState) {
	th := st.theme
	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)
	if st.frame != nil {
		draw.Draw(dst, st.layout.Canvas, st.frame, st.frame.Bounds().Min, draw.Src)
	}
	if ctx.Err() != nil {
		return
	}
	if st.capturing {
		drawPendingText(dst, st)
	}
	drawHeader(dst, st)
	drawToolbar(dst, st)
	drawShortcuts(dst, st)
	if ctx.Err() != nil {
		return
	}
	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawMessage(dst, st.layout.Window, st.message, th)
	}
}

func drawHeader(dst *image.RGBA, st paintState) {
	r := st.layout.Header
	draw.Draw(dst, r, &image.Uniform{st.theme.PromptBackground}, image.Point{}, draw.Src)
	title := "Promraw"
	if st.prompt != "" {
		title = "Draw: " + st.prompt
	}
	drawLabel(dst, image.Pt(r.Min.X+8, r.Min.Y+20), title, st.theme.Foreground)
}

func drawToolbar(dst *image.RGBA, st paintState) {
	th := st.theme
	draw.Draw(dst, st.layout.Toolbar, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for i, cb := range st.tools {
		state := StateDefault
		if tb, ok := cb.Button.(*ToolButton); ok && tb.tool == st.tool {
			state = StatePressed
		} else if st.hover == (Hit{RegionTool, i}) {
			state = StateHover
		}
		cb.Draw(dst, state)
	}

	for i, r := range st.layout.Swatches {
		p := paletteColorAt(i)
		draw.Draw(dst, r, &image.Uniform{p.Color}, image.Point{}, draw.Src)
		border := th.SwatchBorder
		if i == st.colorIdx {
			border = th.SwatchSelected
		} else if st.hover == (Hit{RegionSwatch, i}) {
			border = th.ButtonHover
		}
		strokeRect(dst, r, border)
	}

	col := paletteColorAt(st.colorIdx).Color
	for i, r := range st.layout.Widths {
		state := StateDefault
		if i == st.widthIdx {
			state = StatePressed
		} else if st.hover == (Hit{RegionWidth, i}) {
			state = StateHover
		}
		bg, fg := buttonColors(th, state)
		draw.Draw(dst, r, &image.Uniform{bg}, image.Point{}, draw.Src)
		w := widthAt(i)
		drawLabel(dst, image.Pt(r.Min.X+4, r.Min.Y+12), fmt.Sprintf("%d", w), fg)
		y := r.Min.Y + r.Dy()/2
		canvas.PixelRasterizer{}.Segment(dst, image.Pt(r.Min.X+28, y), image.Pt(r.Max.X-6, y), col, w)
	}
}

func drawShortcuts(dst *image.RGBA, st paintState) {
	draw.Draw(dst, st.layout.Bottom, &image.Uniform{st.theme.ToolbarBackground}, image.Point{}, draw.Src)
	for i, sc := range st.shortcuts {
		state := StateDefault
		if st.hover == (Hit{RegionShortcut, i}) {
			state = StateHover
		}
		sc.Draw(dst, state)
	}
}

// drawPendingText previews the text being typed with a caret, clipped to
// the canvas. The engine only paints it once submitted.
func drawPendingText(dst *image.RGBA, st paintState) {
	area, ok := dst.SubImage(st.layout.Canvas).(*image.RGBA)
	if !ok {
		return
	}
	size := canvas.FontSize(st.textStyle.Width)
	at := st.layout.Canvas.Min.Add(st.textAt)
	width, ascent, descent, err := canvas.MeasureText(st.text, size)
	if err != nil {
		log.Printf("measure text: %v", err)
		return
	}
	if st.text != "" {
		if err := canvas.DrawText(area, at, st.text, st.textStyle.Color, size); err != nil {
			log.Printf("draw text: %v", err)
			return
		}
	}
	if ascent == 0 {
		ascent = int(size)
	}
	caret := image.Rect(at.X+width+1, at.Y-ascent, at.X+width+3, at.Y+descent)
	draw.Draw(area, caret, &image.Uniform{st.theme.TextCaret}, image.Point{}, draw.Over)
}

func drawMessage(dst *image.RGBA, window image.Rectangle, msg string, th *theme.Theme) {
	width, ascent, descent, err := canvas.MeasureText(msg, messageSize)
	if err != nil {
		log.Printf("measure message: %v", err)
		return
	}
	px := window.Min.X + (window.Dx()-width)/2
	py := window.Min.Y + (window.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-12, py-ascent-10, px+width+12, py+descent+10)
	bg := th.PromptBackground
	bg.A = 0xe6
	draw.Draw(dst, rect, &image.Uniform{premultiply(bg)}, image.Point{}, draw.Over)
	strokeRect(dst, rect, th.ButtonActive)
	if err := canvas.DrawText(dst, image.Pt(px, py), msg, th.Foreground, messageSize); err != nil {
		log.Printf("draw message: %v", err)
	}
}

func premultiply(c color.RGBA) color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 0xff),
		G: uint8(uint32(c.G) * a / 0xff),
		B: uint8(uint32(c.B) * a / 0xff),
		A: c.A,
	}
}
