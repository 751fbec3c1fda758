package canvas

import (
	"fmt"
	"strings"
)

// Tool selects how pointer gestures are interpreted.
type Tool int

const (
	Brush Tool = iota
	Eraser
	Circle
	Square
	Line
	Text
)

var toolNames = [...]string{"brush", "eraser", "circle", "square", "line", "text"}

// Tools returns every tool in toolbar order.
func Tools() []Tool {
	return []Tool{Brush, Eraser, Circle, Square, Line, Text}
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("tool(%d)", int(t))
	}
	return toolNames[t]
}

// ParseTool resolves a tool by name. "rect" and "rectangle" select Square.
func ParseTool(s string) (Tool, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "rect", "rectangle":
		return Square, nil
	case "pen", "pencil":
		return Brush, nil
	}
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	return Brush, fmt.Errorf("unknown tool %q", s)
}

// IsFreehand reports whether the tool paints incrementally while dragging.
func (t Tool) IsFreehand() bool { return t == Brush || t == Eraser }

// IsShape reports whether the tool previews a shape while dragging.
func (t Tool) IsShape() bool { return t == Circle || t == Square || t == Line }
