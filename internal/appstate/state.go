// Package appstate hosts the drawing engine in a desktop window.
package appstate

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/promraw/internal/canvas"
	"github.com/example/promraw/internal/config"
	"github.com/example/promraw/internal/notify"
	"github.com/example/promraw/internal/prompt"
	"github.com/example/promraw/internal/submission"
	"github.com/example/promraw/internal/theme"
)

// AppState holds application configuration for the UI.
type AppState struct {
	Engine   *canvas.Engine
	Theme    *theme.Theme
	Prompt   string
	Output   string
	SaveDir  string
	ColorIdx int
	WidthIdx int

	// ConfigPath is watched for changes while the window is open. Theme
	// and notification settings are reapplied on reload.
	ConfigPath    string
	ThemeOverride string

	prompts  prompt.Generator
	scorer   submission.Scorer
	notifier *notify.Notifier
	now      func() time.Time

	updateCh chan struct{}

	settingsMu sync.Mutex
	settingsFn func(colorIdx, widthIdx int)

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithEngine sets the engine drawn in the window. It is initialized with
// the default size when it is not already.
func WithEngine(e *canvas.Engine) Option { return func(a *AppState) { a.Engine = e } }

// WithTheme sets the window theme.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithPrompt sets the prompt shown in the header.
func WithPrompt(p string) Option { return func(a *AppState) { a.Prompt = p } }

// WithPrompts sets the generator used by the new prompt action.
func WithPrompts(g prompt.Generator) Option { return func(a *AppState) { a.prompts = g } }

// WithScorer enables the submit action.
func WithScorer(s submission.Scorer) Option { return func(a *AppState) { a.scorer = s } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithOutput sets the file written by save. Without it drawings are saved
// to timestamped files in the save directory.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithSaveDir sets where saves and submissions are written.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.SaveDir = dir } }

// WithColorIndex sets the initial palette index.
func WithColorIndex(idx int) Option { return func(a *AppState) { a.ColorIdx = idx } }

// WithWidthIndex sets the initial stroke width index.
func WithWidthIndex(idx int) Option { return func(a *AppState) { a.WidthIdx = idx } }

// WithConfigWatch reloads theme and notification settings from path.
// themeOverride, when set, keeps winning over the file's theme.
func WithConfigWatch(path, themeOverride string) Option {
	return func(a *AppState) {
		a.ConfigPath = path
		a.ThemeOverride = themeOverride
	}
}

// WithSettingsListener registers a callback for when drawing settings change.
func WithSettingsListener(fn func(colorIdx, widthIdx int)) Option {
	return func(a *AppState) { a.settingsFn = fn }
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// WithClock overrides the time source for messages and file names.
func WithClock(now func() time.Time) Option { return func(a *AppState) { a.now = now } }

const (
	defaultCanvasWidth  = 800
	defaultCanvasHeight = 600
)

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		ColorIdx: defaultColorIndex,
		WidthIdx: defaultWidthIndex,
		updateCh: make(chan struct{}, 1),
		now:      time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	if a.Engine == nil {
		a.Engine = canvas.New()
	}
	if !a.Engine.Initialized() {
		a.Engine.Initialize(defaultCanvasWidth, defaultCanvasHeight)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	a.ColorIdx = clampIndex(a.ColorIdx, paletteLen())
	a.WidthIdx = clampIndex(a.WidthIdx, widthsLen())
	return a
}

type controlEvent struct {
	theme  *theme.Theme
	notify *config.Notify
}

// NotifyImageChanged requests a repaint when the engine is changed from
// outside the window.
func (a *AppState) NotifyImageChanged() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) settingsChanged(colorIdx, widthIdx int) {
	a.settingsMu.Lock()
	a.ColorIdx = colorIdx
	a.WidthIdx = widthIdx
	fn := a.settingsFn
	a.settingsMu.Unlock()
	if fn != nil {
		fn(colorIdx, widthIdx)
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main opens the window on s and runs the event loop until it closes.
func (a *AppState) Main(s screen.Screen) {
	toolbarWidth = fitToolbar()
	sess := newSession(a)

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: sess.window.X, Height: sess.window.Y, Title: "Promraw"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-ctx.Done():
				return
			}
		}
	}()

	if a.ConfigPath != "" {
		err := config.Watch(ctx, a.ConfigPath, func(cfg *config.Config, err error) {
			if err != nil {
				log.Printf("reload config: %v", err)
				return
			}
			th, err := cfg.ResolveTheme(a.ThemeOverride)
			if err != nil {
				log.Printf("reload theme: %v", err)
			}
			n := cfg.Notify
			w.Send(controlEvent{theme: th, notify: &n})
		})
		if err != nil {
			log.Printf("watch config: %v", err)
		}
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			pctx, cancel := context.WithCancel(ctx)
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(pctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if pctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	repaint := func() { w.Send(paint.Event{}) }

	for {
		switch e := w.NextEvent().(type) {
		case controlEvent:
			sess.setTheme(e.theme)
			if e.notify != nil && a.notifier != nil {
				e.notify.Configure(a.notifier)
			}
			repaint()
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				sess.leave()
				repaint()
			}
		case size.Event:
			sess.resize(image.Pt(e.WidthPx, e.HeightPx))
			repaint()
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := sess.paintState()
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if sess.pointer(image.Pt(int(e.X), int(e.Y)), e.Button, e.Direction) {
				repaint()
			}
		case key.Event:
			action, text := sess.keymap.Resolve(e, sess.capturing())
			if sess.key(action, text) {
				repaint()
			}
		}
		if sess.quit {
			return
		}
	}
}
