package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/example/promraw/internal/canvas"
	"github.com/example/promraw/internal/theme"
)

// Canvas holds the drawing surface defaults.
type Canvas struct {
	Width        int
	Height       int
	Background   string
	Color        string
	StrokeWidth  int
	Antialias    bool
	HistoryLimit int
}

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Copy   bool
	Submit bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Canvas  Canvas
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // empty falls back to the environment, then the default theme
		Canvas: Canvas{
			Width:       800,
			Height:      600,
			StrokeWidth: canvas.DefaultWidth,
		},
		Notify: Notify{Save: true},
		Themes: make(map[string]*theme.Theme),
	}
}

// EngineOptions converts the canvas section to engine options.
func (c Canvas) EngineOptions() ([]canvas.Option, error) {
	var opts []canvas.Option
	style := canvas.StrokeStyle{Color: canvas.DefaultColor, Width: c.StrokeWidth}
	if c.Background != "" {
		bg, err := canvas.ParseColor(c.Background)
		if err != nil {
			return nil, fmt.Errorf("canvas background: %w", err)
		}
		opts = append(opts, canvas.WithBackground(bg))
	}
	if c.Color != "" {
		col, err := canvas.ParseColor(c.Color)
		if err != nil {
			return nil, fmt.Errorf("canvas color: %w", err)
		}
		style.Color = col
	}
	if style.Width < 1 {
		style.Width = canvas.DefaultWidth
	}
	opts = append(opts, canvas.WithStyle(style))
	if c.Antialias {
		opts = append(opts, canvas.WithRasterizer(canvas.NewVectorRasterizer()))
	}
	if c.HistoryLimit > 0 {
		opts = append(opts, canvas.WithHistoryLimit(c.HistoryLimit))
	}
	return opts, nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	if c.Canvas.Background != "" {
		fmt.Fprintf(&sb, "background = %s\n", c.Canvas.Background)
	}
	if c.Canvas.Color != "" {
		fmt.Fprintf(&sb, "color = %s\n", c.Canvas.Color)
	}
	fmt.Fprintf(&sb, "stroke_width = %d\n", c.Canvas.StrokeWidth)
	fmt.Fprintf(&sb, "antialias = %v\n", c.Canvas.Antialias)
	fmt.Fprintf(&sb, "history_limit = %d\n", c.Canvas.HistoryLimit)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "submit = %v\n", c.Notify.Submit)
	sb.WriteString("\n")

	// Sorted for deterministic output.
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		var buf bytes.Buffer
		_ = theme.Write(&buf, c.Themes[name])
		sb.Write(buf.Bytes())
		sb.WriteString("\n")
	}
	return sb.String()
}
