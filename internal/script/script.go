// Package script replays drawing gestures against a canvas engine without a
// window. Scripts are YAML documents; the REPL uses the line commands in
// command.go.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/example/promraw/internal/canvas"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Point is a canvas coordinate written as [x, y].
type Point struct {
	X, Y int
}

// Image converts p to an image.Point.
func (p Point) Image() image.Point { return image.Pt(p.X, p.Y) }

func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	var xy []int
	if err := value.Decode(&xy); err != nil {
		return fmt.Errorf("line %d: point must be [x, y]: %w", value.Line, err)
	}
	if len(xy) != 2 {
		return fmt.Errorf("line %d: point must be [x, y], got %d values", value.Line, len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

func (p Point) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []int{p.X, p.Y} {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)})
	}
	return n, nil
}

// Step is one entry of a script. Fields apply in this order: style changes,
// clear, undo, redo, then the gesture (down, move, text, up, leave).
type Step struct {
	Tool  string  `yaml:"tool,omitempty"`
	Color string  `yaml:"color,omitempty"`
	Width int     `yaml:"width,omitempty"`
	Clear bool    `yaml:"clear,omitempty"`
	Undo  int     `yaml:"undo,omitempty"`
	Redo  int     `yaml:"redo,omitempty"`
	Down  *Point  `yaml:"down,omitempty"`
	Move  []Point `yaml:"move,omitempty"`
	Text  string  `yaml:"text,omitempty"`
	Up    *Point  `yaml:"up,omitempty"`
	Leave bool    `yaml:"leave,omitempty"`
}

func (s Step) empty() bool {
	return s.Tool == "" && s.Color == "" && s.Width == 0 && !s.Clear && s.Undo == 0 &&
		s.Redo == 0 && s.Down == nil && len(s.Move) == 0 && s.Text == "" && s.Up == nil && !s.Leave
}

// Script describes a canvas and the gestures drawn on it.
type Script struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Background   string `yaml:"background,omitempty"`
	Antialias    bool   `yaml:"antialias,omitempty"`
	HistoryLimit int    `yaml:"history_limit,omitempty"`
	Steps        []Step `yaml:"steps"`
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	s := &Script{}
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("script is empty")
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the canvas size, colors and tool names.
func (s *Script) Validate() error {
	if s.Width < 1 || s.Height < 1 {
		return fmt.Errorf("invalid canvas size %dx%d", s.Width, s.Height)
	}
	if s.Background != "" {
		if _, err := canvas.ParseColor(s.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	for i, st := range s.Steps {
		if st.empty() {
			return fmt.Errorf("step %d: nothing to do", i+1)
		}
		if st.Tool != "" {
			if _, err := canvas.ParseTool(st.Tool); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if st.Color != "" {
			if _, err := canvas.ParseColor(st.Color); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if st.Width < 0 || st.Undo < 0 || st.Redo < 0 {
			return fmt.Errorf("step %d: counts must not be negative", i+1)
		}
		if st.Down == nil && (len(st.Move) > 0 || st.Up != nil || st.Text != "" || st.Leave) {
			return fmt.Errorf("step %d: move, up, leave and text need a down point", i+1)
		}
	}
	return nil
}

// Options returns the engine options the script header asks for.
func (s *Script) Options() []canvas.Option {
	var opts []canvas.Option
	if s.Background != "" {
		if bg, err := canvas.ParseColor(s.Background); err == nil {
			opts = append(opts, canvas.WithBackground(bg))
		}
	}
	if s.Antialias {
		opts = append(opts, canvas.WithRasterizer(canvas.NewVectorRasterizer()))
	}
	if s.HistoryLimit > 0 {
		opts = append(opts, canvas.WithHistoryLimit(s.HistoryLimit))
	}
	return opts
}

// Engine builds an initialized engine for the script. opts are applied after
// the script's own options.
func (s *Script) Engine(opts ...canvas.Option) *canvas.Engine {
	e := canvas.New(append(s.Options(), opts...)...)
	e.Initialize(s.Width, s.Height)
	return e
}

// Run builds an engine and applies every step.
func (s *Script) Run(opts ...canvas.Option) (*canvas.Engine, error) {
	e := s.Engine(opts...)
	if err := s.Apply(e); err != nil {
		return e, err
	}
	return e, nil
}

// Apply replays the steps on e.
func (s *Script) Apply(e *canvas.Engine) error {
	for i, st := range s.Steps {
		if err := st.Apply(e); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Apply performs the step on e.
func (st Step) Apply(e *canvas.Engine) error {
	if st.Tool != "" {
		t, err := canvas.ParseTool(st.Tool)
		if err != nil {
			return err
		}
		e.SetTool(t)
	}
	if st.Color != "" {
		if err := e.SetColorHex(st.Color); err != nil {
			return err
		}
	}
	if st.Width > 0 {
		e.SetWidth(st.Width)
	}
	if st.Clear {
		e.Clear()
	}
	for i := 0; i < st.Undo; i++ {
		e.Undo()
	}
	for i := 0; i < st.Redo; i++ {
		e.Redo()
	}
	if st.Down == nil {
		return nil
	}
	e.PointerDown(st.Down.Image())
	last := st.Down.Image()
	for _, p := range st.Move {
		e.PointerMove(p.Image())
		last = p.Image()
	}
	if e.State() == canvas.TextCapture {
		// Text steps submit directly; an empty text closes the capture.
		if st.Text == "" {
			e.CancelText()
		} else {
			e.SubmitText(st.Text)
		}
		return nil
	}
	switch {
	case st.Up != nil:
		e.PointerUp(st.Up.Image())
	case st.Leave:
		e.PointerLeave()
	default:
		e.PointerUp(last)
	}
	return nil
}

// Marshal encodes s as YAML.
func Marshal(s *Script) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode script: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
