package prompt

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.txt")
	require.NoError(t, os.WriteFile(path, []byte("# ideas\n\n  a cat on a bike  \n"), 0o644))

	p, err := File{Path: path, Rand: rand.New(rand.NewSource(3))}.Prompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a cat on a bike", p)

	require.NoError(t, os.WriteFile(path, []byte("# nothing yet\n"), 0o644))
	_, err = File{Path: path}.Prompt(context.Background())
	assert.True(t, errors.Is(err, ErrNoPrompts), "got %v", err)
}

func TestFileFallsBack(t *testing.T) {
	var logged string
	gen := WithFallback(File{Path: filepath.Join(t.TempDir(), "missing.txt")}, NewFallback(nil, "backup"),
		func(format string, args ...any) { logged = format })
	p, err := gen.Prompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "backup", p)
	assert.Contains(t, logged, "using a random prompt instead")
}
