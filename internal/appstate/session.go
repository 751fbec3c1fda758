package appstate

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"time"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/promraw/internal/canvas"
	"github.com/example/promraw/internal/clipboard"
	"github.com/example/promraw/internal/export"
	renderpkg "github.com/example/promraw/internal/render"
	"github.com/example/promraw/internal/submission"
	"github.com/example/promraw/internal/theme"
)

// Seams replaced in tests.
var (
	writeClipboard = clipboard.WritePNG
	writeFile      = export.WriteFile
	writeBundle    = func(b *submission.Bundle, dir string, card canvas.EncodedImage) (string, error) {
		return b.WriteDir(dir, card)
	}
)

const (
	messageDuration = 2 * time.Second
	promptTimeout   = 10 * time.Second
)

// session is the window state driven by input events. It is independent of
// the shiny driver so it can be exercised directly.
type session struct {
	app    *AppState
	engine *canvas.Engine
	keymap *Keymap
	theme  *theme.Theme

	window   image.Point
	layout   Layout
	tools    []*CacheButton
	shortcut []*Shortcut

	colorIdx int
	widthIdx int
	prompt   string

	pressed bool
	hover   Hit

	message      string
	messageUntil time.Time
	quit         bool
}

func newSession(a *AppState) *session {
	s := &session{
		app:      a,
		engine:   a.Engine,
		keymap:   NewKeymap(),
		theme:    a.Theme,
		colorIdx: a.ColorIdx,
		widthIdx: a.WidthIdx,
		prompt:   a.Prompt,
		hover:    noHit,
	}
	s.engine.SetColor(paletteColorAt(s.colorIdx).Color)
	s.engine.SetWidth(widthAt(s.widthIdx))
	s.resize(WindowSize(s.engine.Size()))
	return s
}

func (s *session) capturing() bool { return s.engine.State() == canvas.TextCapture }

// resize recomputes the layout for a new window size or bar contents. The
// buttons are rebuilt rather than mutated since the paint goroutine may
// still hold the previous ones.
func (s *session) resize(window image.Point) {
	s.window = window
	entries := shortcutsFor(s.capturing())
	s.layout = NewLayout(window, s.engine.Size(), shortcutLabels(entries))
	s.tools = make([]*CacheButton, 0, len(s.layout.Tools))
	for i, t := range canvas.Tools() {
		s.tools = append(s.tools, &CacheButton{Button: &ToolButton{
			tool: t, rect: s.layout.Tools[i], theme: s.theme, onSelect: s.selectTool,
		}})
	}
	s.shortcut = make([]*Shortcut, 0, len(entries))
	for i, e := range entries {
		s.shortcut = append(s.shortcut, &Shortcut{
			label: e.label, action: e.action, rect: s.layout.Shortcuts[i], theme: s.theme, run: s.run,
		})
	}
}

func (s *session) setTheme(th *theme.Theme) {
	if th == nil {
		return
	}
	s.theme = th
	s.resize(s.window)
}

func (s *session) selectTool(t canvas.Tool) {
	s.engine.SetTool(t)
}

func (s *session) selectColor(idx int) {
	s.colorIdx = clampIndex(idx, paletteLen())
	s.engine.SetColor(paletteColorAt(s.colorIdx).Color)
	s.app.settingsChanged(s.colorIdx, s.widthIdx)
}

func (s *session) selectWidth(idx int) {
	s.widthIdx = clampIndex(idx, widthsLen())
	s.engine.SetWidth(widthAt(s.widthIdx))
	s.app.settingsChanged(s.colorIdx, s.widthIdx)
}

func (s *session) flash(msg string) {
	s.message = msg
	s.messageUntil = s.app.now().Add(messageDuration)
	log.Print(msg)
}

func (s *session) messageVisible() bool {
	return s.message != "" && s.app.now().Before(s.messageUntil)
}

// run performs an action.
func (s *session) run(a Action) {
	before := s.capturing()
	defer func() {
		if s.capturing() != before {
			s.resize(s.window)
		}
	}()
	if t, ok := a.Tool(); ok {
		s.selectTool(t)
		return
	}
	switch a {
	case ActionUndo:
		s.engine.Undo()
	case ActionRedo:
		s.engine.Redo()
	case ActionClear:
		s.engine.Clear()
	case ActionSave:
		s.save()
	case ActionCopy:
		s.copy()
	case ActionPrompt:
		s.newPrompt()
	case ActionSubmit:
		s.submit()
	case ActionQuit:
		s.quit = true
	case ActionTextDone:
		s.engine.SubmitText("")
	case ActionTextCancel:
		s.engine.CancelText()
	case ActionTextDelete:
		s.engine.Backspace()
	}
}

func (s *session) typeText(text string) {
	s.engine.TypeText(text)
}

func (s *session) savePath() string {
	if s.app.Output != "" {
		return s.app.Output
	}
	dir := s.app.SaveDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, fmt.Sprintf("promraw-%s.png", s.app.now().Format("20060102-150405")))
}

func (s *session) save() {
	enc, err := s.engine.ExportImage()
	if err != nil {
		log.Printf("save: %v", err)
		return
	}
	path := s.savePath()
	if err := writeFile(path, enc, s.prompt); err != nil {
		log.Printf("save: %v", err)
		return
	}
	s.flash(fmt.Sprintf("saved %s", path))
	s.app.notifier.Save(path)
}

func (s *session) copy() {
	enc, err := s.engine.ExportImage()
	if err != nil {
		log.Printf("copy: %v", err)
		return
	}
	if err := writeClipboard(enc.Data); err != nil {
		log.Printf("copy: %v", err)
		return
	}
	s.flash("drawing copied to clipboard")
	s.app.notifier.Copy("drawing")
}

func (s *session) newPrompt() {
	if s.app.prompts == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), promptTimeout)
	defer cancel()
	p, err := s.app.prompts.Prompt(ctx)
	if err != nil {
		log.Printf("prompt: %v", err)
		return
	}
	s.prompt = p
	s.flash("new prompt")
}

func (s *session) submit() {
	if s.app.scorer == nil {
		return
	}
	enc, err := s.engine.ExportImage()
	if err != nil {
		log.Printf("submit: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), promptTimeout)
	defer cancel()
	score, err := s.app.scorer.Score(ctx, s.prompt, enc)
	if err != nil {
		log.Printf("submit: score: %v", err)
		return
	}
	bundle, err := submission.New(s.prompt, score, enc, s.app.now())
	if err != nil {
		log.Printf("submit: %v", err)
		return
	}
	drawing, err := enc.Decode()
	if err != nil {
		log.Printf("submit: %v", err)
		return
	}
	card, err := renderpkg.Card(renderpkg.CardInput{Drawing: drawing, Prompt: s.prompt, Score: score, Theme: s.theme, Shadow: true})
	if err != nil {
		log.Printf("submit: card: %v", err)
		return
	}
	cardEnc, err := canvas.Encode(card)
	if err != nil {
		log.Printf("submit: card: %v", err)
		return
	}
	dir := s.app.SaveDir
	if dir == "" {
		dir = "."
	}
	out, err := writeBundle(bundle, dir, cardEnc)
	if err != nil {
		log.Printf("submit: %v", err)
		return
	}
	s.flash(fmt.Sprintf("score %d/100 %s: %s", score, submission.Rarity(score), out))
	s.app.notifier.Submit(bundle.Summary(), card)
}

// key handles a key press and reports whether a repaint is needed.
func (s *session) key(action Action, text string) bool {
	switch {
	case action != ActionNone:
		s.run(action)
	case text != "":
		s.typeText(text)
	default:
		return false
	}
	return true
}

// pointer handles a mouse event in window coordinates and reports whether a
// repaint is needed.
func (s *session) pointer(p image.Point, button mouse.Button, dir mouse.Direction) bool {
	if dir == mouse.DirPress && s.messageVisible() {
		s.messageUntil = time.Time{}
		return true
	}
	hit := s.layout.HitTest(p)
	cp, inside := s.layout.CanvasPoint(p)
	repaint := hit != s.hover
	s.hover = hit

	switch dir {
	case mouse.DirPress:
		if button != mouse.ButtonLeft {
			return repaint
		}
		repaint = true
		switch hit.Region {
		case RegionTool:
			s.tools[hit.Index].Activate()
		case RegionSwatch:
			s.selectColor(hit.Index)
		case RegionWidth:
			s.selectWidth(hit.Index)
		case RegionShortcut:
			s.shortcut[hit.Index].Activate()
		case RegionCanvas:
			before := s.capturing()
			s.pressed = true
			s.engine.PointerDown(cp)
			if s.capturing() != before {
				s.resize(s.window)
			}
		}
	case mouse.DirNone:
		if s.pressed {
			if inside {
				s.engine.PointerMove(cp)
			} else {
				s.pressed = false
				s.engine.PointerLeave()
			}
			repaint = true
		}
	case mouse.DirRelease:
		if button == mouse.ButtonLeft && s.pressed {
			s.pressed = false
			if inside {
				s.engine.PointerUp(cp)
			} else {
				s.engine.PointerLeave()
			}
			repaint = true
		}
	}
	return repaint
}

// leave ends any gesture when the pointer leaves the window.
func (s *session) leave() {
	if s.pressed {
		s.pressed = false
		s.engine.PointerLeave()
	}
	s.hover = noHit
}

func (s *session) paintState() paintState {
	at, text, capturing := s.engine.PendingText()
	return paintState{
		layout:       s.layout,
		frame:        s.engine.Frame(),
		theme:        s.theme,
		tool:         s.engine.Tool(),
		colorIdx:     s.colorIdx,
		widthIdx:     s.widthIdx,
		prompt:       s.prompt,
		capturing:    capturing,
		textAt:       at,
		text:         text,
		textStyle:    s.engine.Style(),
		shortcuts:    s.shortcut,
		tools:        s.tools,
		hover:        s.hover,
		message:      s.message,
		messageUntil: s.messageUntil,
	}
}
