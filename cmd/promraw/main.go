package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/promraw/internal/config"
	"github.com/example/promraw/internal/notify"
	"github.com/example/promraw/internal/prompt"
	"github.com/example/promraw/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	config       *config.Config
	configPath   string
	notifier     *notify.Notifier
	prompts      prompt.Generator
	promptsFile  string
	saveAlerts   bool
	copyAlerts   bool
	submitAlerts bool
	themeName    string
	activeTheme  *theme.Theme
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:         flag.NewFlagSet("promraw", flag.ExitOnError),
		program:    "promraw",
		config:     cfg,
		configPath: loader.GetConfigPath(),
		notifier:   notify.New(notify.LoadPreferences()),
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a drawing")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.submitAlerts, "notify-submit", cfg.Notify.Submit, "show a desktop notification after submitting a drawing")

	// Precedence: CLI > Env > Config > Default. An empty flag defers to the
	// environment and then the config file.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (dark, light, a theme file or a [theme.x] config section)")
	r.fs.StringVar(&r.promptsFile, "prompts", "", "file with one drawing prompt per line")
	r.fs.Usage = usageFunc(r)
	return r
}

// setup applies the global flags once they are parsed.
func (r *root) setup() {
	if r.notifier != nil {
		config.Notify{Save: r.saveAlerts, Copy: r.copyAlerts, Submit: r.submitAlerts}.Configure(r.notifier)
	}

	t, err := r.config.ResolveTheme(r.themeName)
	if err != nil {
		name := r.config.ThemeName(r.themeName)
		if name != "" && !strings.EqualFold(name, "default") {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
	}
	r.activeTheme = t

	fallback := prompt.NewFallback(nil)
	if r.promptsFile != "" {
		r.prompts = prompt.WithFallback(prompt.File{Path: r.promptsFile}, fallback, nil)
	} else {
		r.prompts = fallback
	}
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.setup()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "prompt":
		cmd, err = parsePromptCmd(subArgs, r)
	case "card":
		cmd, err = parseCardCmd(subArgs, r)
	case "submit":
		cmd, err = parseSubmitCmd(subArgs, r)
	case "tools":
		cmd, err = parseToolsCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "widths":
		cmd, err = parseWidthsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}
