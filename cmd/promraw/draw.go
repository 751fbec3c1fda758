package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/example/promraw/internal/appstate"
	"github.com/example/promraw/internal/script"
	"github.com/example/promraw/internal/submission"
)

// runUI opens the window. Replaced in tests.
var runUI = func(a *appstate.AppState) { a.Run() }

// drawCmd opens the drawing window.
type drawCmd struct {
	*root
	fs          *flag.FlagSet
	canvas      canvasFlags
	output      string
	saveDir     string
	prompt      string
	scriptPath  string
	watchConfig bool
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	d.canvas.register(fs, r.config.Canvas)
	fs.StringVar(&d.output, "output", "", "file written by save (.png or .pdf); defaults to timestamped files in -save-dir")
	fs.StringVar(&d.saveDir, "save-dir", r.config.SaveDir, "directory for saved drawings and submissions")
	fs.StringVar(&d.prompt, "prompt", "", "drawing prompt shown in the header (default a random prompt)")
	fs.StringVar(&d.scriptPath, "script", "", "replay a gesture script before opening the window")
	fs.BoolVar(&d.watchConfig, "watch-config", true, "reload theme and notification settings when the config file changes")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: d}
	}
	return d, nil
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

// newState builds the window state without opening it.
func (d *drawCmd) newState() (*appstate.AppState, error) {
	var s *script.Script
	if d.scriptPath != "" {
		var err error
		if s, err = loadScript(d.scriptPath); err != nil {
			return nil, err
		}
	}
	e, err := d.canvas.engine(s)
	if err != nil {
		return nil, err
	}
	if s != nil {
		if err := s.Apply(e); err != nil {
			return nil, fmt.Errorf("%s: %w", d.scriptPath, err)
		}
	}
	style := e.Style()
	opts := []appstate.Option{
		appstate.WithEngine(e),
		appstate.WithTheme(d.activeTheme),
		appstate.WithPrompt(d.initialPrompt()),
		appstate.WithPrompts(d.prompts),
		appstate.WithScorer(submission.NewMockScorer(nil)),
		appstate.WithNotifier(d.notifier),
		appstate.WithOutput(d.output),
		appstate.WithSaveDir(d.saveDir),
		appstate.WithColorIndex(appstate.EnsurePaletteColor(style.Color, "")),
		appstate.WithWidthIndex(appstate.EnsureWidth(style.Width)),
	}
	if d.watchConfig && d.configPath != "" {
		opts = append(opts, appstate.WithConfigWatch(d.configPath, d.themeName))
	}
	return appstate.New(opts...), nil
}

func (d *drawCmd) Run() error {
	state, err := d.newState()
	if err != nil {
		return err
	}
	runUI(state)
	return nil
}

func (d *drawCmd) initialPrompt() string {
	if d.prompt != "" || d.prompts == nil {
		return d.prompt
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p, err := d.prompts.Prompt(ctx)
	if err != nil {
		fmt.Fprintf(d.stderr, "warning: %v\n", err)
		return ""
	}
	return p
}
