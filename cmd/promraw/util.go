package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/promraw/internal/canvas"
	"github.com/example/promraw/internal/config"
	"github.com/example/promraw/internal/script"
)

// commandList collects repeated string flags.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, "; ") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

func clampIndex(idx, n int) int {
	if idx < 0 || n == 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// canvasFlags registers the surface flags shared by draw, replay and
// interactive, defaulting to the config file values.
type canvasFlags struct {
	cfg config.Canvas
}

func (c *canvasFlags) register(fs *flag.FlagSet, base config.Canvas) {
	c.cfg = base
	fs.IntVar(&c.cfg.Width, "width", base.Width, "canvas width in pixels")
	fs.IntVar(&c.cfg.Height, "height", base.Height, "canvas height in pixels")
	fs.StringVar(&c.cfg.Background, "background", base.Background, "canvas background color (default #1A1A1A)")
	fs.StringVar(&c.cfg.Color, "color", base.Color, "initial stroke color name or hex value (default white)")
	fs.IntVar(&c.cfg.StrokeWidth, "stroke-width", base.StrokeWidth, "initial stroke width in pixels")
	fs.BoolVar(&c.cfg.Antialias, "antialias", base.Antialias, "draw with antialiased edges")
	fs.IntVar(&c.cfg.HistoryLimit, "history-limit", base.HistoryLimit, "maximum undo snapshots kept (0 keeps all)")
}

// engine builds an initialized engine. A script's header settings and size
// win over the flags.
func (c *canvasFlags) engine(s *script.Script) (*canvas.Engine, error) {
	opts, err := c.cfg.EngineOptions()
	if err != nil {
		return nil, err
	}
	if s != nil {
		e := canvas.New(append(opts, s.Options()...)...)
		e.Initialize(s.Width, s.Height)
		return e, nil
	}
	if c.cfg.Width < 1 || c.cfg.Height < 1 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", c.cfg.Width, c.cfg.Height)
	}
	e := canvas.New(opts...)
	e.Initialize(c.cfg.Width, c.cfg.Height)
	return e, nil
}

func loadScript(path string) (*script.Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	s, err := script.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// loadDrawing reads a PNG file, or decodes path itself when it is a PNG
// data URI.
func loadDrawing(path string) (canvas.EncodedImage, error) {
	if strings.HasPrefix(path, "data:") {
		return canvas.ParseDataURI(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return canvas.EncodedImage{}, fmt.Errorf("open drawing: %w", err)
	}
	defer f.Close()
	img, err := canvas.ReadEncoded(f)
	if err != nil {
		return canvas.EncodedImage{}, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
