package canvas

import (
	"image"
	"image/color"
	"io"
	"log"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// State is the pointer interaction state.
type State int

const (
	Idle State = iota
	Gesturing
	TextCapture
)

func (s State) String() string {
	switch s {
	case Gesturing:
		return "gesturing"
	case TextCapture:
		return "text"
	}
	return "idle"
}

// GestureState describes the press currently in progress.
type GestureState struct {
	Active bool
	Anchor image.Point
	Last   image.Point
	// Tool is locked at pointer-down for the whole gesture.
	Tool Tool
}

type textCapture struct {
	pos  image.Point
	text string
}

// EventKind identifies what changed on the engine.
type EventKind int

const (
	// EventPaint reports uncommitted pixels such as a stroke or preview.
	EventPaint EventKind = iota
	// EventCommit reports a new snapshot in the history.
	EventCommit
	// EventRestore reports an undo or redo.
	EventRestore
	// EventText reports a change to the pending text capture.
	EventText
	// EventReset reports a fresh Initialize.
	EventReset
)

// Event is delivered to the engine listener after each visible change.
type Event struct {
	Kind     EventKind
	Snapshot *Snapshot
}

// Engine is the drawing surface state machine. It is not safe for
// concurrent use; hosts drive it from a single event loop.
type Engine struct {
	visible    *Surface
	scratch    *Surface
	background color.RGBA
	style      StrokeStyle
	tool       Tool
	raster     Rasterizer
	history    *History
	state      State
	gesture    GestureState
	pending    textCapture
	listener   func(Event)
	logger     *log.Logger
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithBackground sets the color fresh and cleared surfaces are filled with.
func WithBackground(c color.RGBA) Option { return func(e *Engine) { e.background = c } }

// WithRasterizer sets the backend used for strokes and shapes.
func WithRasterizer(r Rasterizer) Option {
	return func(e *Engine) {
		if r != nil {
			e.raster = r
		}
	}
}

// WithHistoryLimit caps the number of snapshots kept. Zero keeps all.
func WithHistoryLimit(n int) Option { return func(e *Engine) { e.history = NewHistory(n) } }

// WithStyle sets the initial stroke style.
func WithStyle(s StrokeStyle) Option { return func(e *Engine) { e.style = s } }

// WithListener registers a callback invoked after every visible change.
func WithListener(fn func(Event)) Option { return func(e *Engine) { e.listener = fn } }

// WithLogger routes engine diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// New returns an engine. It must be initialized before it draws.
func New(opts ...Option) *Engine {
	e := &Engine{
		background: DefaultBackground,
		style:      StrokeStyle{Color: DefaultColor, Width: DefaultWidth},
		tool:       Brush,
		raster:     PixelRasterizer{},
		history:    NewHistory(0),
		logger:     log.New(io.Discard, "", 0),
		now:        time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	if e.style.Width < 1 {
		e.style.Width = 1
	}
	return e
}

// Initialize allocates the visible and scratch surfaces filled with the
// background and discards all history. Non-positive sizes are ignored.
func (e *Engine) Initialize(width, height int) {
	if e == nil {
		return
	}
	if width <= 0 || height <= 0 {
		e.logger.Printf("canvas: ignoring initialize %dx%d", width, height)
		return
	}
	e.visible = NewSurface(width, height, e.background)
	e.scratch = NewSurface(width, height, e.background)
	e.history.Reset()
	e.state = Idle
	e.gesture = GestureState{}
	e.pending = textCapture{}
	e.emit(EventReset, nil)
}

func (e *Engine) ready() bool {
	return e != nil && e.visible != nil && e.scratch != nil
}

// Initialized reports whether Initialize has succeeded.
func (e *Engine) Initialized() bool { return e.ready() }

// Size returns the surface dimensions.
func (e *Engine) Size() image.Point {
	if !e.ready() {
		return image.Point{}
	}
	return e.visible.Bounds().Size()
}

// Image returns the visible surface for display. It must not be modified
// and is only valid until the next engine call.
func (e *Engine) Image() *image.RGBA {
	if !e.ready() {
		return nil
	}
	return e.visible.RGBA()
}

// Frame returns a private copy of the visible surface.
func (e *Engine) Frame() *image.RGBA {
	if !e.ready() {
		return nil
	}
	return e.visible.Clone()
}

func (e *Engine) Background() color.RGBA {
	if e == nil {
		return DefaultBackground
	}
	return e.background
}

func (e *Engine) Tool() Tool {
	if e == nil {
		return Brush
	}
	return e.tool
}

func (e *Engine) Style() StrokeStyle {
	if e == nil {
		return StrokeStyle{Color: DefaultColor, Width: DefaultWidth}
	}
	return e.style
}

// EffectiveStyle is the style the current tool paints with.
func (e *Engine) EffectiveStyle() StrokeStyle {
	return e.Style().Effective(e.Tool(), e.Background())
}

func (e *Engine) State() State {
	if e == nil {
		return Idle
	}
	return e.state
}

func (e *Engine) Gesture() GestureState {
	if e == nil {
		return GestureState{}
	}
	return e.gesture
}

// SetTool selects the tool for the next gesture. A gesture in progress keeps
// the tool it started with.
func (e *Engine) SetTool(t Tool) {
	if e == nil {
		return
	}
	e.tool = t
}

// SetColor sets the stroke color for subsequent painting.
func (e *Engine) SetColor(c color.RGBA) {
	if e == nil {
		return
	}
	e.style.Color = c
}

// SetColorHex parses s with ParseColor and applies it.
func (e *Engine) SetColorHex(s string) error {
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	e.SetColor(c)
	return nil
}

// SetWidth sets the stroke width. Values below one are clamped.
func (e *Engine) SetWidth(px int) {
	if e == nil {
		return
	}
	if px < 1 {
		px = 1
	}
	e.style.Width = px
}

// PointerDown opens a text capture for the text tool and otherwise starts
// a gesture anchored at p.
func (e *Engine) PointerDown(p image.Point) {
	if !e.ready() || e.state == Gesturing {
		return
	}
	if e.state == TextCapture {
		e.CancelText()
	}
	if e.tool == Text {
		e.state = TextCapture
		e.pending = textCapture{pos: p}
		e.emit(EventText, nil)
		return
	}
	e.state = Gesturing
	e.gesture = GestureState{Active: true, Anchor: p, Last: p, Tool: e.tool}
}

// PointerMove extends the active gesture. Freehand tools paint a segment;
// shape tools redraw the preview. It is a no-op while idle.
func (e *Engine) PointerMove(p image.Point) {
	if !e.ready() || e.state != Gesturing {
		return
	}
	g := &e.gesture
	switch {
	case g.Tool.IsFreehand():
		e.paintFreehand(g.Last, p, e.style.Effective(g.Tool, e.background))
	case g.Tool.IsShape():
		e.previewShape(g.Anchor, p, g.Tool, e.style, e.history.Current())
	}
	g.Last = p
	e.emit(EventPaint, nil)
}

// PointerUp finishes the gesture, committing a shape when one was being
// dragged, and records a snapshot.
func (e *Engine) PointerUp(p image.Point) {
	if !e.ready() || e.state != Gesturing {
		return
	}
	g := e.gesture
	kind := KindPath
	switch {
	case g.Tool.IsShape():
		e.commitShape(g.Anchor, p, g.Tool, e.style)
		kind = KindShape
	case g.Tool.IsFreehand() && p != g.Last:
		e.paintFreehand(g.Last, p, e.style.Effective(g.Tool, e.background))
	}
	e.state = Idle
	e.gesture = GestureState{}
	e.push(kind)
}

// PointerLeave ends the gesture as if released at the last known position.
func (e *Engine) PointerLeave() {
	if !e.ready() || e.state != Gesturing {
		return
	}
	e.PointerUp(e.gesture.Last)
}

func (e *Engine) paintFreehand(from, to image.Point, style StrokeStyle) {
	e.raster.Segment(e.visible.RGBA(), from, to, style.Color, style.Width)
}

// previewShape rebuilds scratch from baseline plus one shape and shows it.
func (e *Engine) previewShape(anchor, cursor image.Point, tool Tool, style StrokeStyle, baseline *Snapshot) {
	e.scratch.Restore(baseline)
	e.drawShape(e.scratch.RGBA(), anchor, cursor, tool, style)
	e.visible.CopyFrom(e.scratch)
}

// commitShape draws the shape once onto the committed baseline using the
// same geometry as previewShape.
func (e *Engine) commitShape(anchor, cursor image.Point, tool Tool, style StrokeStyle) {
	e.visible.Restore(e.history.Current())
	e.drawShape(e.visible.RGBA(), anchor, cursor, tool, style)
}

func (e *Engine) drawShape(dst *image.RGBA, anchor, cursor image.Point, tool Tool, style StrokeStyle) {
	width := style.Width
	if width < 1 {
		width = 1
	}
	switch tool {
	case Circle:
		e.raster.Circle(dst, anchor, Radius(anchor, cursor), style.Color, width)
	case Square:
		e.raster.Rect(dst, RectBounds(anchor, cursor), style.Color, width)
	case Line:
		e.raster.Segment(dst, anchor, cursor, style.Color, width)
	}
}

// Radius is the Euclidean distance between the anchor and cursor.
func Radius(anchor, cursor image.Point) float64 {
	return math.Hypot(float64(cursor.X-anchor.X), float64(cursor.Y-anchor.Y))
}

// RectBounds spans anchor and cursor regardless of drag direction. Max is
// the far corner pixel.
func RectBounds(anchor, cursor image.Point) image.Rectangle {
	return image.Rect(anchor.X, anchor.Y, cursor.X, cursor.Y)
}

// Clear fills the surface with the background as a committed action. A
// gesture or text capture in progress is dropped first.
func (e *Engine) Clear() {
	if !e.ready() {
		return
	}
	e.state = Idle
	e.gesture = GestureState{}
	e.pending = textCapture{}
	e.visible.Fill(e.background)
	e.push(KindClear)
}

// PendingText returns the open text capture.
func (e *Engine) PendingText() (image.Point, string, bool) {
	if !e.ready() || e.state != TextCapture {
		return image.Point{}, "", false
	}
	return e.pending.pos, e.pending.text, true
}

// TypeText appends s to the pending text.
func (e *Engine) TypeText(s string) {
	if !e.ready() || e.state != TextCapture || s == "" {
		return
	}
	e.pending.text += s
	e.emit(EventText, nil)
}

// Backspace removes the last rune of the pending text.
func (e *Engine) Backspace() {
	if !e.ready() || e.state != TextCapture || e.pending.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(e.pending.text)
	e.pending.text = e.pending.text[:len(e.pending.text)-size]
	e.emit(EventText, nil)
}

// SubmitText renders text at the capture position and commits it. An empty
// argument submits the pending text; blank text closes the capture without
// drawing.
func (e *Engine) SubmitText(text string) {
	if !e.ready() || e.state != TextCapture {
		return
	}
	if text == "" {
		text = e.pending.text
	}
	pos := e.pending.pos
	e.state = Idle
	e.pending = textCapture{}
	if strings.TrimSpace(text) == "" {
		e.emit(EventText, nil)
		return
	}
	if err := e.renderText(text, pos, e.style); err != nil {
		e.logger.Printf("canvas: render text: %v", err)
		e.emit(EventText, nil)
		return
	}
	e.push(KindText)
}

// CancelText discards the text capture.
func (e *Engine) CancelText() {
	if !e.ready() || e.state != TextCapture {
		return
	}
	e.state = Idle
	e.pending = textCapture{}
	e.emit(EventText, nil)
}

func (e *Engine) renderText(text string, at image.Point, style StrokeStyle) error {
	return DrawText(e.visible.RGBA(), at, text, style.Color, FontSize(style.Width))
}

func (e *Engine) push(kind SnapshotKind) {
	snap := newSnapshot(kind, e.visible.RGBA(), e.now())
	if evicted := e.history.Push(snap); evicted > 0 {
		e.logger.Printf("canvas: evicted %d snapshot(s)", evicted)
	}
	e.logger.Printf("canvas: commit %s #%d (%d/%d)", kind, snap.Seq, e.history.Cursor()+1, e.history.Len())
	e.emit(EventCommit, snap)
}

// Undo restores the previous committed state. It is ignored at the start
// of the history and while a gesture is in progress.
func (e *Engine) Undo() {
	if !e.ready() || e.state == Gesturing {
		return
	}
	e.CancelText()
	snap, ok := e.history.Undo()
	if !ok {
		return
	}
	e.visible.Restore(snap)
	e.emit(EventRestore, snap)
}

// Redo reapplies the next snapshot. It is ignored at the end of the history
// and while a gesture is in progress.
func (e *Engine) Redo() {
	if !e.ready() || e.state == Gesturing {
		return
	}
	e.CancelText()
	snap, ok := e.history.Redo()
	if !ok {
		return
	}
	e.visible.Restore(snap)
	e.emit(EventRestore, snap)
}

func (e *Engine) CanUndo() bool { return e.ready() && e.history.CanUndo() }
func (e *Engine) CanRedo() bool { return e.ready() && e.history.CanRedo() }

// HistoryLen returns the number of snapshots kept.
func (e *Engine) HistoryLen() int {
	if e == nil {
		return 0
	}
	return e.history.Len()
}

// Cursor returns the history cursor; -1 is the blank state.
func (e *Engine) Cursor() int {
	if e == nil {
		return -1
	}
	return e.history.Cursor()
}

// SnapshotAt returns the i-th snapshot in the history.
func (e *Engine) SnapshotAt(i int) *Snapshot {
	if e == nil {
		return nil
	}
	return e.history.At(i)
}

// committed returns the pixels of the last committed state. During a
// gesture the visible surface holds uncommitted pixels, so the history is
// consulted instead.
func (e *Engine) committed() *image.RGBA {
	if e.state != Gesturing {
		return e.visible.RGBA()
	}
	if snap := e.history.Current(); snap != nil {
		return snap.Image()
	}
	return NewSurface(e.visible.Bounds().Dx(), e.visible.Bounds().Dy(), e.background).RGBA()
}

// ExportImage encodes the committed surface as PNG. It never includes an
// in-flight stroke or preview.
func (e *Engine) ExportImage() (EncodedImage, error) {
	if !e.ready() {
		return EncodedImage{}, ErrNotInitialized
	}
	return Encode(e.committed())
}

func (e *Engine) emit(kind EventKind, snap *Snapshot) {
	if e.listener != nil {
		e.listener(Event{Kind: kind, Snapshot: snap})
	}
}
