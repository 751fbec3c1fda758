package appstate

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/example/promraw/internal/canvas"
)

const (
	headerHeight = 32
	bottomHeight = 24
	buttonHeight = 24
	swatchSize   = 16
	swatchGap    = 2
	widthRow     = 16
)

var toolbarWidth = 64

var toolLabels = map[canvas.Tool]string{
	canvas.Brush:  "B:Brush",
	canvas.Eraser: "E:Eraser",
	canvas.Circle: "O:Circle",
	canvas.Square: "S:Square",
	canvas.Line:   "L:Line",
	canvas.Text:   "T:Text",
}

// ToolLabel is the toolbar caption of t, prefixed with its shortcut key.
func ToolLabel(t canvas.Tool) string {
	if l, ok := toolLabels[t]; ok {
		return l
	}
	return t.String()
}

// fitToolbar widens the toolbar until every tool label fits.
func fitToolbar() int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := toolbarWidth
	for _, t := range canvas.Tools() {
		if lw := d.MeasureString(ToolLabel(t)).Ceil() + 8; lw > w {
			w = lw
		}
	}
	return w
}

// Region names an area of the window.
type Region int

const (
	RegionNone Region = iota
	RegionHeader
	RegionToolbar
	RegionTool
	RegionSwatch
	RegionWidth
	RegionCanvas
	RegionShortcut
)

// Hit is the result of a hit test. Index selects the tool, swatch, width
// or shortcut within its region.
type Hit struct {
	Region Region
	Index  int
}

var noHit = Hit{Region: RegionNone, Index: -1}

// Layout holds the window geometry for one frame.
type Layout struct {
	Window    image.Rectangle
	Header    image.Rectangle
	Toolbar   image.Rectangle
	Bottom    image.Rectangle
	Canvas    image.Rectangle
	Tools     []image.Rectangle
	Swatches  []image.Rectangle
	Widths    []image.Rectangle
	Shortcuts []image.Rectangle
}

// WindowSize returns the window size that shows a canvas of the given size
// along with the header, toolbar and shortcut bar.
func WindowSize(canvasSize image.Point) image.Point {
	w := canvasSize.X + toolbarWidth
	if need := shortcutBarWidth(); w < need {
		w = need
	}
	h := canvasSize.Y + headerHeight + bottomHeight
	if need := toolbarContentHeight() + headerHeight + bottomHeight; h < need {
		h = need
	}
	return image.Pt(w, h)
}

func shortcutBarWidth() int {
	l := NewLayout(image.Pt(1<<16, bottomHeight), image.Point{}, shortcutLabels(drawingShortcuts))
	if len(l.Shortcuts) == 0 {
		return 0
	}
	return l.Shortcuts[len(l.Shortcuts)-1].Max.X + 4
}

func toolbarContentHeight() int {
	l := NewLayout(image.Pt(toolbarWidth, 1<<16), image.Point{}, nil)
	if len(l.Widths) == 0 {
		return 0
	}
	return l.Widths[len(l.Widths)-1].Max.Y - headerHeight
}

// NewLayout arranges a window of the given size around a canvas. The
// canvas is centred in the space left by the bars. Shortcut labels are laid
// out left to right in the bottom bar.
func NewLayout(window, canvasSize image.Point, shortcuts []string) Layout {
	l := Layout{Window: image.Rectangle{Max: window}}
	l.Header = image.Rect(0, 0, window.X, headerHeight)
	l.Bottom = image.Rect(0, window.Y-bottomHeight, window.X, window.Y)
	l.Toolbar = image.Rect(0, headerHeight, toolbarWidth, l.Bottom.Min.Y)

	area := image.Rect(toolbarWidth, headerHeight, window.X, l.Bottom.Min.Y)
	origin := area.Min
	if dx := area.Dx() - canvasSize.X; dx > 0 {
		origin.X += dx / 2
	}
	if dy := area.Dy() - canvasSize.Y; dy > 0 {
		origin.Y += dy / 2
	}
	l.Canvas = image.Rectangle{Min: origin, Max: origin.Add(canvasSize)}

	y := headerHeight
	for range canvas.Tools() {
		l.Tools = append(l.Tools, image.Rect(0, y, toolbarWidth, y+buttonHeight))
		y += buttonHeight
	}

	y += 4
	x := 4
	n := paletteLen()
	for i := 0; i < n; i++ {
		l.Swatches = append(l.Swatches, image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchSize + swatchGap
		if x+swatchSize > toolbarWidth && i < n-1 {
			x = 4
			y += swatchSize + swatchGap
		}
	}
	y += swatchSize + 4

	for i := 0; i < widthsLen(); i++ {
		l.Widths = append(l.Widths, image.Rect(0, y, toolbarWidth, y+widthRow))
		y += widthRow
	}

	meas := &font.Drawer{Face: basicfont.Face7x13}
	x = toolbarWidth + 4
	base := window.Y - bottomHeight + 16
	for _, label := range shortcuts {
		w := meas.MeasureString(label).Ceil()
		r := image.Rect(x-2, base-14, x+w+2, base+4)
		l.Shortcuts = append(l.Shortcuts, r)
		x = r.Max.X + 8
	}
	return l
}

// HitTest reports what lies under p.
func (l Layout) HitTest(p image.Point) Hit {
	if !p.In(l.Window) {
		return noHit
	}
	if p.In(l.Bottom) {
		if i := indexOf(l.Shortcuts, p); i >= 0 {
			return Hit{RegionShortcut, i}
		}
		return noHit
	}
	if p.In(l.Header) {
		return Hit{RegionHeader, -1}
	}
	if p.In(l.Toolbar) {
		if i := indexOf(l.Tools, p); i >= 0 {
			return Hit{RegionTool, i}
		}
		if i := indexOf(l.Swatches, p); i >= 0 {
			return Hit{RegionSwatch, i}
		}
		if i := indexOf(l.Widths, p); i >= 0 {
			return Hit{RegionWidth, i}
		}
		return Hit{RegionToolbar, -1}
	}
	if p.In(l.Canvas) {
		return Hit{RegionCanvas, -1}
	}
	return noHit
}

// CanvasPoint converts a window point into canvas coordinates. The second
// result is false outside the canvas.
func (l Layout) CanvasPoint(p image.Point) (image.Point, bool) {
	return p.Sub(l.Canvas.Min), p.In(l.Canvas)
}

func indexOf(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}
