package script

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/example/promraw/internal/canvas"
)

// ErrUnknownCommand is returned by ParseCommand for names it does not know.
var ErrUnknownCommand = errors.New("unknown command")

// argSpec is the accepted argument count for a command. max < 0 means any
// number of trailing words.
type argSpec struct {
	min, max int
	usage    string
}

var commands = map[string]argSpec{
	"tool":      {1, 1, "tool <name>"},
	"color":     {1, 1, "color <hex|name>"},
	"width":     {1, 1, "width <px>"},
	"down":      {2, 2, "down <x> <y>"},
	"move":      {2, 2, "move <x> <y>"},
	"up":        {2, 2, "up <x> <y>"},
	"leave":     {0, 0, "leave"},
	"text":      {3, -1, "text <x> <y> <words...>"},
	"type":      {1, -1, "type <words...>"},
	"backspace": {0, 0, "backspace"},
	"submit":    {0, 0, "submit"},
	"cancel":    {0, 0, "cancel"},
	"undo":      {0, 0, "undo"},
	"redo":      {0, 0, "redo"},
	"clear":     {0, 0, "clear"},
	"status":    {0, 0, "status"},
}

// CommandNames lists the line commands in alphabetical order.
func CommandNames() []string {
	return []string{"backspace", "cancel", "clear", "color", "down", "leave", "move", "redo",
		"status", "submit", "text", "tool", "type", "undo", "up", "width"}
}

// Usage returns the one-line usage of a command, or "" if unknown.
func Usage(name string) string {
	return commands[name].usage
}

// Command is a parsed REPL line.
type Command struct {
	Name string
	Args []string
	pt   image.Point
	n    int
}

// ParseCommand splits line into a command and checks its arguments.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}
	c := Command{Name: strings.ToLower(fields[0]), Args: fields[1:]}
	spec, ok := commands[c.Name]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}
	if len(c.Args) < spec.min || (spec.max >= 0 && len(c.Args) > spec.max) {
		return Command{}, fmt.Errorf("usage: %s", spec.usage)
	}
	var err error
	switch c.Name {
	case "down", "move", "up", "text":
		c.pt, err = parsePoint(c.Args[0], c.Args[1])
	case "width":
		c.n, err = strconv.Atoi(c.Args[0])
		if err == nil && c.n < 1 {
			err = fmt.Errorf("width must be positive")
		}
	case "tool":
		_, err = canvas.ParseTool(c.Args[0])
	case "color":
		_, err = canvas.ParseColor(c.Args[0])
	}
	if err != nil {
		return Command{}, fmt.Errorf("%s: %w", c.Name, err)
	}
	return c, nil
}

func parsePoint(xs, ys string) (image.Point, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid x %q", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid y %q", ys)
	}
	return image.Pt(x, y), nil
}

// Apply runs the command on e and returns a status line for the REPL.
func (c Command) Apply(e *canvas.Engine) (string, error) {
	switch c.Name {
	case "tool":
		t, err := canvas.ParseTool(c.Args[0])
		if err != nil {
			return "", err
		}
		e.SetTool(t)
		return "tool " + t.String(), nil
	case "color":
		if err := e.SetColorHex(c.Args[0]); err != nil {
			return "", err
		}
		return "color " + canvas.FormatColor(e.Style().Color), nil
	case "width":
		e.SetWidth(c.n)
		return fmt.Sprintf("width %d", e.Style().Width), nil
	case "down":
		e.PointerDown(c.pt)
	case "move":
		e.PointerMove(c.pt)
	case "up":
		e.PointerUp(c.pt)
	case "leave":
		e.PointerLeave()
	case "text":
		e.SetTool(canvas.Text)
		e.PointerDown(c.pt)
		e.SubmitText(strings.Join(c.Args[2:], " "))
	case "type":
		if e.State() != canvas.TextCapture {
			return "", fmt.Errorf("no text capture open")
		}
		e.TypeText(strings.Join(c.Args, " "))
		_, text, _ := e.PendingText()
		return fmt.Sprintf("text %q", text), nil
	case "backspace":
		e.Backspace()
	case "submit":
		e.SubmitText("")
	case "cancel":
		e.CancelText()
	case "undo":
		e.Undo()
	case "redo":
		e.Redo()
	case "clear":
		e.Clear()
	case "status":
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, c.Name)
	}
	return Status(e), nil
}

// Status summarises the engine for the REPL prompt.
func Status(e *canvas.Engine) string {
	style := e.Style()
	return fmt.Sprintf("tool=%s color=%s width=%d state=%s history=%d cursor=%d",
		e.Tool(), canvas.FormatColor(style.Color), style.Width, e.State(), e.HistoryLen(), e.Cursor())
}
