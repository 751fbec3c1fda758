package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/example/promraw/internal/clipboard"
	"github.com/example/promraw/internal/export"
)

var copyDrawingFn = clipboard.WriteDrawing

// replayCmd renders a gesture script without a window.
type replayCmd struct {
	*root
	fs          *flag.FlagSet
	canvas      canvasFlags
	scriptPath  string
	output      string
	title       string
	dataURI     bool
	toClipboard bool
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	c.canvas.register(fs, r.config.Canvas)
	fs.StringVar(&c.scriptPath, "script", "", "gesture script to replay (YAML)")
	fs.StringVar(&c.output, "output", "", "write the drawing to this file (.png or .pdf)")
	fs.StringVar(&c.title, "title", "", "PDF document title")
	fs.BoolVar(&c.dataURI, "data-uri", false, "print the drawing as a PNG data URI")
	fs.BoolVar(&c.toClipboard, "clipboard", false, "copy the drawing to the clipboard (as text with -data-uri)")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the drawing to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.scriptPath == "" && fs.NArg() == 1 {
		c.scriptPath = fs.Arg(0)
	} else if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.scriptPath == "" {
		return nil, &UsageError{of: c}
	}
	if c.output != "" {
		if _, err := export.FormatFor(c.output); err != nil {
			return nil, err
		}
	}
	if c.output == "" && !c.dataURI && !c.toClipboard {
		return nil, errors.New("nothing to do: set -output, -data-uri or -clipboard")
	}
	return c, nil
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *replayCmd) Run() error {
	s, err := loadScript(c.scriptPath)
	if err != nil {
		return err
	}
	e, err := c.canvas.engine(s)
	if err != nil {
		return err
	}
	if err := s.Apply(e); err != nil {
		return fmt.Errorf("%s: %w", c.scriptPath, err)
	}
	img, err := e.ExportImage()
	if err != nil {
		return fmt.Errorf("export drawing: %w", err)
	}
	fmt.Fprintf(c.stderr, "replayed %d steps on a %dx%d canvas\n", len(s.Steps), img.Width, img.Height)

	if c.output != "" {
		if err := export.WriteFile(c.output, img, c.title); err != nil {
			return err
		}
		fmt.Fprintf(c.stderr, "saved %s\n", c.output)
		c.notifySave(c.output)
	}
	if c.dataURI {
		fmt.Fprintln(c.stdout, img.DataURI())
	}
	if c.toClipboard {
		if err := copyDrawingFn(img, c.dataURI); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		detail := "drawing"
		if c.dataURI {
			detail = "data URI"
		}
		fmt.Fprintf(c.stderr, "copied %s to clipboard\n", detail)
		c.notifyCopy(detail)
	}
	return nil
}
