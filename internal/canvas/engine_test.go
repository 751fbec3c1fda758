package canvas

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreehandStrokeUndoRedo(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.SetColorHex("#FF0000"))
	e.SetWidth(4)

	drag(e, image.Pt(10, 10), image.Pt(50, 50))

	assert.Equal(t, 1, e.HistoryLen())
	assert.Equal(t, 0, e.Cursor())
	assert.Equal(t, red, e.Image().RGBAAt(30, 30))
	stroke := e.Frame()

	e.Undo()
	assert.True(t, isFilled(e.Image(), DefaultBackground), "undo should restore the background")
	assert.Equal(t, -1, e.Cursor())
	assert.False(t, e.CanUndo())
	assert.True(t, e.CanRedo())

	e.Redo()
	requireSamePixels(t, stroke, e.Image())
	assert.Equal(t, 0, e.Cursor())
}

func TestCircleExport(t *testing.T) {
	e := newEngine(t)
	e.SetTool(Circle)
	drag(e, image.Pt(100, 100), image.Pt(150, 100))

	enc, err := e.ExportImage()
	require.NoError(t, err)
	assert.Equal(t, 500, enc.Width)
	assert.Equal(t, 500, enc.Height)
	img, err := enc.Decode()
	require.NoError(t, err)

	at := func(x, y int) color.RGBA {
		return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	}
	for _, p := range []image.Point{{150, 100}, {50, 100}, {100, 50}, {100, 150}} {
		assert.Equal(t, DefaultColor, at(p.X, p.Y), "expected outline at %v", p)
	}
	for _, p := range []image.Point{{100, 100}, {125, 100}, {160, 100}} {
		assert.Equal(t, DefaultBackground, at(p.X, p.Y), "expected background at %v", p)
	}
}

func TestClearAfterThreeActions(t *testing.T) {
	e := newEngine(t)
	drag(e, image.Pt(10, 10), image.Pt(60, 20))
	e.SetTool(Square)
	drag(e, image.Pt(100, 100), image.Pt(200, 180))
	e.SetTool(Line)
	drag(e, image.Pt(300, 10), image.Pt(400, 300))
	third := e.Frame()

	e.Clear()
	require.Equal(t, 4, e.HistoryLen())
	last := e.SnapshotAt(3)
	require.NotNil(t, last)
	assert.Equal(t, KindClear, last.Kind)
	assert.True(t, isFilled(last.Image(), DefaultBackground))

	e.Undo()
	requireSamePixels(t, third, e.Image())
}

func TestUndoRedoInverse(t *testing.T) {
	e := newEngine(t)
	var frames []*image.RGBA
	actions := []func(){
		func() { drag(e, image.Pt(5, 5), image.Pt(40, 90), image.Pt(120, 60)) },
		func() { e.SetTool(Circle); drag(e, image.Pt(250, 250), image.Pt(300, 300)) },
		func() { e.SetTool(Eraser); drag(e, image.Pt(0, 0), image.Pt(499, 499)) },
		func() { e.SetTool(Square); e.SetWidth(6); drag(e, image.Pt(400, 20), image.Pt(320, 90)) },
		func() { e.Clear() },
		func() { e.SetTool(Line); drag(e, image.Pt(10, 490), image.Pt(490, 10)) },
	}
	for _, act := range actions {
		act()
		frames = append(frames, e.Frame())
	}
	require.Equal(t, len(actions), e.HistoryLen())

	for range actions {
		e.Undo()
	}
	assert.True(t, isFilled(e.Image(), DefaultBackground))
	assert.False(t, e.CanUndo())
	e.Undo()
	assert.Equal(t, -1, e.Cursor())

	for i := range actions {
		e.Redo()
		requireSamePixels(t, frames[i], e.Image())
	}
	assert.False(t, e.CanRedo())
}

func TestCommitDiscardsRedoBranch(t *testing.T) {
	e := newEngine(t)
	for i := 0; i < 3; i++ {
		drag(e, image.Pt(10, 10+20*i), image.Pt(200, 10+20*i))
	}
	e.Undo()
	e.Undo()
	require.True(t, e.CanRedo())

	e.SetTool(Circle)
	drag(e, image.Pt(250, 250), image.Pt(260, 250))

	assert.False(t, e.CanRedo())
	assert.Equal(t, 2, e.HistoryLen())
	assert.Equal(t, KindShape, e.SnapshotAt(1).Kind)
	e.Redo()
	assert.Equal(t, 1, e.Cursor())
}

func TestPreviewDoesNotTouchHistory(t *testing.T) {
	e := newEngine(t)
	e.SetTool(Square)
	e.PointerDown(image.Pt(50, 50))
	e.PointerMove(image.Pt(200, 200))
	e.PointerMove(image.Pt(300, 120))
	e.PointerMove(image.Pt(80, 90))

	assert.Equal(t, 0, e.HistoryLen())
	assert.False(t, e.CanUndo())
	// The earlier, larger previews must not linger.
	assert.Equal(t, DefaultBackground, e.Image().RGBAAt(200, 130))
	assert.Equal(t, DefaultBackground, e.Image().RGBAAt(300, 100))
	assert.Equal(t, DefaultColor, e.Image().RGBAAt(80, 70))

	before := e.Frame()
	e.Undo()
	requireSamePixels(t, before, e.Image())
	assert.Equal(t, Gesturing, e.State())
}

func TestCommitMatchesLastPreview(t *testing.T) {
	backends := map[string]func() Rasterizer{
		"pixel":  func() Rasterizer { return PixelRasterizer{} },
		"vector": func() Rasterizer { return NewVectorRasterizer() },
	}
	for name, mk := range backends {
		for _, tool := range []Tool{Circle, Square, Line} {
			t.Run(name+"/"+tool.String(), func(t *testing.T) {
				e := newEngine(t, WithRasterizer(mk()))
				drag(e, image.Pt(30, 30), image.Pt(60, 400))
				e.SetTool(tool)
				e.SetWidth(5)
				e.PointerDown(image.Pt(200, 200))
				e.PointerMove(image.Pt(330, 90))
				e.PointerMove(image.Pt(120, 260))
				preview := e.Frame()
				e.PointerUp(image.Pt(120, 260))
				requireSamePixels(t, preview, e.Image())
				assert.Equal(t, 2, e.HistoryLen())
			})
		}
	}
}

func TestRectSignInvariance(t *testing.T) {
	render := func(a, b image.Point) *image.RGBA {
		e := newEngine(t)
		e.SetTool(Square)
		e.SetWidth(3)
		drag(e, a, b)
		return e.Frame()
	}
	want := render(image.Pt(40, 50), image.Pt(120, 130))
	requireSamePixels(t, want, render(image.Pt(120, 130), image.Pt(40, 50)))
	requireSamePixels(t, want, render(image.Pt(40, 130), image.Pt(120, 50)))
	assert.Equal(t, DefaultColor, want.RGBAAt(120, 130))
	assert.Equal(t, DefaultColor, want.RGBAAt(40, 50))
}

func TestEraserPaintsBackground(t *testing.T) {
	e := newEngine(t)
	e.SetWidth(4)
	drag(e, image.Pt(10, 100), image.Pt(300, 100))
	require.Equal(t, DefaultColor, e.Image().RGBAAt(150, 100))

	e.SetTool(Eraser)
	assert.Equal(t, StrokeStyle{Color: DefaultBackground, Width: 8}, e.EffectiveStyle())
	assert.Equal(t, 4, e.Style().Width)
	drag(e, image.Pt(150, 60), image.Pt(150, 140))
	assert.Equal(t, DefaultBackground, e.Image().RGBAAt(150, 100))
	assert.Equal(t, DefaultBackground, e.Image().RGBAAt(153, 101))
	assert.Equal(t, DefaultColor, e.Image().RGBAAt(200, 100))
}

func TestToolLockedForGesture(t *testing.T) {
	e := newEngine(t)
	e.SetTool(Circle)
	e.PointerDown(image.Pt(100, 100))
	e.SetTool(Line)
	e.PointerMove(image.Pt(140, 100))
	e.PointerUp(image.Pt(140, 100))

	assert.Equal(t, DefaultColor, e.Image().RGBAAt(60, 100), "circle outline expected")
	assert.Equal(t, DefaultBackground, e.Image().RGBAAt(120, 100), "no line expected")
	assert.Equal(t, Line, e.Tool())
}

func TestStyleChangeAppliesToNextSegment(t *testing.T) {
	e := newEngine(t)
	e.PointerDown(image.Pt(10, 10))
	e.PointerMove(image.Pt(100, 10))
	e.SetColor(red)
	e.PointerMove(image.Pt(200, 10))
	e.PointerUp(image.Pt(200, 10))

	assert.Equal(t, DefaultColor, e.Image().RGBAAt(50, 10))
	assert.Equal(t, red, e.Image().RGBAAt(150, 10))
}

func TestPointerLeaveCommits(t *testing.T) {
	e := newEngine(t)
	e.SetTool(Line)
	e.PointerDown(image.Pt(10, 10))
	e.PointerMove(image.Pt(90, 10))
	e.PointerLeave()

	assert.Equal(t, Idle, e.State())
	assert.Equal(t, 1, e.HistoryLen())
	assert.Equal(t, DefaultColor, e.Image().RGBAAt(50, 10))

	e.PointerMove(image.Pt(400, 400))
	e.PointerUp(image.Pt(400, 400))
	e.PointerLeave()
	assert.Equal(t, 1, e.HistoryLen())
}

func TestZeroExtentShapes(t *testing.T) {
	for _, tool := range []Tool{Circle, Square, Line} {
		e := newEngine(t)
		e.SetTool(tool)
		e.SetWidth(4)
		drag(e, image.Pt(70, 70))
		assert.Equal(t, 1, e.HistoryLen(), tool.String())
		assert.Equal(t, DefaultColor, e.Image().RGBAAt(70, 70), tool.String())
	}
}

func TestTextCapture(t *testing.T) {
	e := newEngine(t)
	e.SetTool(Text)
	e.SetWidth(4)
	e.PointerDown(image.Pt(20, 100))
	require.Equal(t, TextCapture, e.State())
	assert.Equal(t, 0, e.HistoryLen())

	e.TypeText("Hé")
	e.TypeText("llo!")
	e.Backspace()
	pos, text, ok := e.PendingText()
	require.True(t, ok)
	assert.Equal(t, image.Pt(20, 100), pos)
	assert.Equal(t, "Héllo", text)

	e.SubmitText("")
	assert.Equal(t, Idle, e.State())
	require.Equal(t, 1, e.HistoryLen())
	assert.Equal(t, KindText, e.SnapshotAt(0).Kind)
	assert.False(t, isFilled(e.Image(), DefaultBackground))

	// Glyphs sit above the baseline.
	above := e.Image().SubImage(image.Rect(20, 70, 200, 100)).(*image.RGBA)
	assert.False(t, isFilled(above, DefaultBackground))
}

func TestTextCancelAndBlank(t *testing.T) {
	e := newEngine(t)
	e.SetTool(Text)
	e.PointerDown(image.Pt(20, 100))
	e.TypeText("draft")
	e.CancelText()
	assert.Equal(t, Idle, e.State())
	_, _, ok := e.PendingText()
	assert.False(t, ok)

	e.PointerDown(image.Pt(20, 100))
	e.SubmitText("   ")
	assert.Equal(t, 0, e.HistoryLen())
	assert.True(t, isFilled(e.Image(), DefaultBackground))

	e.PointerDown(image.Pt(20, 100))
	e.TypeText("first")
	e.PointerDown(image.Pt(200, 200))
	_, text, ok := e.PendingText()
	require.True(t, ok)
	assert.Equal(t, "", text)
}

func TestExportDuringGestureUsesCommittedState(t *testing.T) {
	e := newEngine(t)
	e.SetTool(Square)
	drag(e, image.Pt(10, 10), image.Pt(40, 40))
	committed, err := e.ExportImage()
	require.NoError(t, err)

	e.SetTool(Brush)
	e.PointerDown(image.Pt(100, 100))
	e.PointerMove(image.Pt(300, 300))
	during, err := e.ExportImage()
	require.NoError(t, err)
	assert.Equal(t, committed.Data, during.Data)

	fresh := newEngine(t)
	fresh.PointerDown(image.Pt(1, 1))
	fresh.PointerMove(image.Pt(90, 90))
	enc, err := fresh.ExportImage()
	require.NoError(t, err)
	img, err := enc.Decode()
	require.NoError(t, err)
	assert.Equal(t, DefaultBackground, color.RGBAModel.Convert(img.At(45, 45)))
}

func TestUninitializedEngineIsInert(t *testing.T) {
	var nilEngine *Engine
	nilEngine.PointerDown(image.Pt(1, 1))
	nilEngine.PointerMove(image.Pt(2, 2))
	nilEngine.PointerUp(image.Pt(2, 2))
	nilEngine.Undo()
	nilEngine.Clear()
	assert.False(t, nilEngine.CanUndo())
	assert.Equal(t, -1, nilEngine.Cursor())

	e := New()
	e.PointerDown(image.Pt(1, 1))
	e.PointerMove(image.Pt(2, 2))
	e.PointerUp(image.Pt(2, 2))
	e.Clear()
	e.SubmitText("x")
	assert.Equal(t, 0, e.HistoryLen())
	assert.Nil(t, e.Image())
	_, err := e.ExportImage()
	assert.True(t, errors.Is(err, ErrNotInitialized))

	e.Initialize(0, 10)
	assert.False(t, e.Initialized())
}

func TestMoveWithoutPressIsIgnored(t *testing.T) {
	e := newEngine(t)
	e.PointerMove(image.Pt(10, 10))
	e.PointerMove(image.Pt(90, 90))
	e.PointerUp(image.Pt(90, 90))
	assert.Equal(t, 0, e.HistoryLen())
	assert.True(t, isFilled(e.Image(), DefaultBackground))
}

func TestHistoryLimitRaisesFloor(t *testing.T) {
	e := newEngine(t, WithHistoryLimit(2))
	var frames []*image.RGBA
	for i := 0; i < 3; i++ {
		drag(e, image.Pt(10, 10+30*i), image.Pt(200, 10+30*i))
		frames = append(frames, e.Frame())
	}
	require.Equal(t, 2, e.HistoryLen())

	e.Undo()
	requireSamePixels(t, frames[1], e.Image())
	e.Undo()
	requireSamePixels(t, frames[0], e.Image())
	assert.False(t, e.CanUndo())
	e.Undo()
	requireSamePixels(t, frames[0], e.Image())
}

func TestListenerEvents(t *testing.T) {
	var kinds []EventKind
	e := New(WithListener(func(ev Event) { kinds = append(kinds, ev.Kind) }))
	e.Initialize(100, 100)
	drag(e, image.Pt(1, 1), image.Pt(20, 20))
	e.Undo()

	assert.Equal(t, []EventKind{EventReset, EventPaint, EventCommit, EventRestore}, kinds)
}

func TestCustomBackground(t *testing.T) {
	bg := color.RGBA{0x10, 0x20, 0x30, 0xff}
	e := newEngine(t, WithBackground(bg))
	assert.True(t, isFilled(e.Image(), bg))
	drag(e, image.Pt(1, 1), image.Pt(20, 20))
	e.Clear()
	assert.True(t, isFilled(e.Image(), bg))
	e.SetTool(Eraser)
	assert.Equal(t, bg, e.EffectiveStyle().Color)
}
