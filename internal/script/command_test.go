package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/promraw/internal/canvas"
)

func run(t *testing.T, e *canvas.Engine, lines ...string) string {
	t.Helper()
	var out string
	for _, line := range lines {
		c, err := ParseCommand(line)
		require.NoError(t, err, line)
		out, err = c.Apply(e)
		require.NoError(t, err, line)
	}
	return out
}

func TestCommandSession(t *testing.T) {
	e := canvas.New()
	e.Initialize(100, 100)

	assert.Equal(t, "tool square", run(t, e, "TOOL rect"))
	assert.Equal(t, "color #FF0000", run(t, e, "color red"))
	assert.Equal(t, "width 4", run(t, e, "width 4"))

	out := run(t, e, "down 10 10", "move 50 50")
	assert.Contains(t, out, "state=gesturing")
	out = run(t, e, "up 60 60")
	assert.Equal(t, "tool=square color=#FF0000 width=4 state=idle history=1 cursor=0", out)

	run(t, e, "tool text", "down 5 80")
	assert.Equal(t, `text "hello world"`, run(t, e, "type hello world"))
	run(t, e, "backspace", "submit")
	assert.Equal(t, 2, e.HistoryLen())

	run(t, e, "undo", "undo")
	assert.Equal(t, -1, e.Cursor())
	run(t, e, "redo", "clear")
	assert.Equal(t, 2, e.HistoryLen())

	run(t, e, "text 10 40 a b c")
	assert.Equal(t, 3, e.HistoryLen())
	assert.Equal(t, canvas.Text, e.Tool())
}

func TestParseCommandErrors(t *testing.T) {
	_, err := ParseCommand("spray 1 2")
	assert.True(t, errors.Is(err, ErrUnknownCommand))

	for _, line := range []string{"", "down 1", "down x 2", "width 0", "tool spray", "color #12", "undo 3", "text 1 2"} {
		_, err := ParseCommand(line)
		assert.Error(t, err, line)
	}
	_, err = ParseCommand("move 1 y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid y "y"`)
}

func TestTypeNeedsCapture(t *testing.T) {
	e := canvas.New()
	e.Initialize(10, 10)
	c, err := ParseCommand("type hi")
	require.NoError(t, err)
	_, err = c.Apply(e)
	assert.Error(t, err)
}

func TestCommandNamesHaveUsage(t *testing.T) {
	names := CommandNames()
	assert.Len(t, names, len(commands))
	for _, n := range names {
		assert.True(t, strings.HasPrefix(Usage(n), n), n)
	}
}
