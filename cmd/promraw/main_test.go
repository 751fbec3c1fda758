package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/promraw/internal/appstate"
	"github.com/example/promraw/internal/canvas"
	"github.com/example/promraw/internal/config"
	"github.com/example/promraw/internal/submission"
)

const lineScript = `
width: 64
height: 48
background: "#000000"
steps:
  - tool: line
    color: "#FF0000"
    width: 3
    down: [4, 10]
    move: [[60, 10]]
`

func testRoot(t *testing.T, stdin string) (*root, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv(config.ThemeEnv, "")
	var stdout, stderr bytes.Buffer
	r := &root{
		fs:      flag.NewFlagSet("promraw", flag.ContinueOnError),
		program: "promraw",
		config:  config.New(),
		stdin:   strings.NewReader(stdin),
		stdout:  &stdout,
		stderr:  &stderr,
	}
	return r, &stdout, &stderr
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeDrawing(t *testing.T) string {
	t.Helper()
	e := canvas.New()
	e.Initialize(40, 30)
	img, err := e.ExportImage()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "drawing.png")
	require.NoError(t, os.WriteFile(path, img.Data, 0o644))
	return path
}

func TestReplayWritesPNG(t *testing.T) {
	r, _, stderr := testRoot(t, "")
	script := writeFile(t, "line.yaml", lineScript)
	out := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, r.Run([]string{"replay", "-output", out, script}))
	assert.Contains(t, stderr.String(), "replayed 1 steps on a 64x48 canvas")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	enc, err := canvas.ReadEncoded(f)
	require.NoError(t, err)
	img, err := enc.Decode()
	require.NoError(t, err)
	r8, g8, b8, _ := img.At(30, 10).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r8, g8, b8})
}

func TestReplayDataURIAndClipboard(t *testing.T) {
	r, stdout, stderr := testRoot(t, "")
	script := writeFile(t, "line.yaml", lineScript)

	var copied canvas.EncodedImage
	var asText bool
	orig := copyDrawingFn
	copyDrawingFn = func(img canvas.EncodedImage, text bool) error {
		copied, asText = img, text
		return nil
	}
	t.Cleanup(func() { copyDrawingFn = orig })

	require.NoError(t, r.Run([]string{"replay", "-script", script, "-data-uri", "-to-clip"}))
	assert.True(t, strings.HasPrefix(stdout.String(), "data:image/png;base64,"))
	assert.False(t, copied.Empty())
	assert.True(t, asText)
	assert.Contains(t, stderr.String(), "copied data URI to clipboard")
}

func TestReplayNeedsAnOutput(t *testing.T) {
	r, _, _ := testRoot(t, "")
	script := writeFile(t, "line.yaml", lineScript)
	err := r.Run([]string{"replay", script})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to do")

	var uerr *UsageError
	assert.True(t, errors.As(r.Run([]string{"replay"}), &uerr))
}

func TestInteractiveExecMode(t *testing.T) {
	r, stdout, _ := testRoot(t, "")
	out := filepath.Join(t.TempDir(), "repl.png")
	err := r.Run([]string{"interactive", "-width", "50", "-height", "40",
		"-e", "tool square", "-e", "down 5 5", "-e", "up 20 20", "-e", "export " + out, "-e", "exit", "-e", "clear"})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "tool square")
	assert.Contains(t, stdout.String(), "history=1 cursor=0")
	assert.NotContains(t, stdout.String(), "history=2")
	assert.FileExists(t, out)
}

func TestInteractiveExecModeStopsOnError(t *testing.T) {
	r, _, _ := testRoot(t, "")
	err := r.Run([]string{"interactive", "-e", "paint 1 2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestInteractiveREPL(t *testing.T) {
	r, stdout, stderr := testRoot(t, "color red\nbogus\ntext 2 20 hi\nundo\nredo\nquit\nclear\n")
	require.NoError(t, r.Run([]string{"interactive", "-width", "80", "-height", "40"}))
	out := stdout.String()
	assert.Contains(t, out, "color #FF0000")
	assert.Contains(t, out, "history=1 cursor=0")
	assert.Contains(t, out, "history=1 cursor=-1")
	assert.Contains(t, stderr.String(), "unknown command")
	assert.Equal(t, 3, strings.Count(out, "state="), "clear after quit is not run")
}

func TestPromptFromFile(t *testing.T) {
	r, stdout, _ := testRoot(t, "")
	path := writeFile(t, "prompts.txt", "# comment\n\na cat on a bicycle\n")
	r.promptsFile = path
	require.NoError(t, r.Run([]string{"prompt", "-n", "3"}))
	assert.Equal(t, "a cat on a bicycle\na cat on a bicycle\na cat on a bicycle\n", stdout.String())
}

func TestCardWritesFile(t *testing.T) {
	r, _, stderr := testRoot(t, "")
	drawing := writeDrawing(t)
	out := filepath.Join(t.TempDir(), "card.png")
	require.NoError(t, r.Run([]string{"card", "-drawing", drawing, "-prompt", "a moon", "-score", "91", "-output", out}))
	assert.FileExists(t, out)
	assert.Contains(t, stderr.String(), "saved "+out)
}

func TestCardRejectsScore(t *testing.T) {
	r, _, _ := testRoot(t, "")
	assert.Error(t, r.Run([]string{"card", "-drawing", "x.png", "-score", "101"}))
}

func TestSubmitWritesBundle(t *testing.T) {
	r, stdout, _ := testRoot(t, "")
	orig := now
	now = func() time.Time { return time.UnixMilli(1700000000000) }
	t.Cleanup(func() { now = orig })

	drawing := writeDrawing(t)
	dir := t.TempDir()
	require.NoError(t, r.Run([]string{"submit", "-drawing", drawing, "-prompt", "a moon", "-score", "75", "-dir", dir}))
	assert.Contains(t, stdout.String(), "AI Score: 75")
	assert.Contains(t, stdout.String(), "+7 ERC7007 Tokens Earned")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	bundle := filepath.Join(dir, entries[0].Name())
	assert.FileExists(t, filepath.Join(bundle, submission.DrawingFile))
	assert.FileExists(t, filepath.Join(bundle, submission.CardFile))

	data, err := os.ReadFile(filepath.Join(bundle, submission.MetadataFile))
	require.NoError(t, err)
	var meta submission.Metadata
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, "Promraw #1700000000000", meta.Name)
	assert.Equal(t, "a moon", meta.Description)
}

func TestSubmitMockScore(t *testing.T) {
	r, stdout, _ := testRoot(t, "")
	drawing := writeDrawing(t)
	require.NoError(t, r.Run([]string{"submit", "-drawing", drawing, "-dir", t.TempDir(), "-card=false"}))
	assert.Regexp(t, `AI Score: (7|8|9)\d`, stdout.String())
}

func TestListings(t *testing.T) {
	r, stdout, _ := testRoot(t, "")
	require.NoError(t, r.Run([]string{"tools"}))
	assert.Contains(t, stdout.String(), "* brush")
	assert.Contains(t, stdout.String(), "T:Text")

	stdout.Reset()
	require.NoError(t, r.Run([]string{"colors"}))
	assert.Contains(t, stdout.String(), "*  0: White")

	stdout.Reset()
	require.NoError(t, r.Run([]string{"widths"}))
	assert.Contains(t, stdout.String(), "*   2px")
}

func TestConfigPrintAndSave(t *testing.T) {
	r, stdout, _ := testRoot(t, "")
	r.config.SaveDir = "/tmp/drawings"
	require.NoError(t, r.Run([]string{"config", "print"}))
	assert.Contains(t, stdout.String(), "save_dir = /tmp/drawings")

	path := filepath.Join(t.TempDir(), "nested", "config.rc")
	r.configPath = path
	require.NoError(t, r.Run([]string{"config", "save"}))
	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/drawings", cfg.SaveDir)

	assert.Error(t, r.Run([]string{"config", "bogus"}))
}

func TestDrawBuildsState(t *testing.T) {
	r, _, _ := testRoot(t, "")
	var got *appstate.AppState
	orig := runUI
	runUI = func(a *appstate.AppState) { got = a }
	t.Cleanup(func() { runUI = orig })

	script := writeFile(t, "line.yaml", lineScript)
	require.NoError(t, r.Run([]string{"draw", "-prompt", "a moon", "-script", script, "-watch-config=false"}))
	require.NotNil(t, got)
	assert.Equal(t, "a moon", got.Prompt)
	assert.Equal(t, image.Pt(64, 48), got.Engine.Size())
	assert.Equal(t, 1, got.Engine.HistoryLen())
}

func TestVersionAndUsage(t *testing.T) {
	r, stdout, _ := testRoot(t, "")
	require.NoError(t, r.Run([]string{"version"}))
	assert.Equal(t, "promraw version dev\n", stdout.String())

	err := r.Run([]string{"bogus"})
	var uerr *UsageError
	require.True(t, errors.As(err, &uerr))
	help := uerr.Error()
	assert.Contains(t, help, "Usage: promraw")
	assert.Contains(t, help, "replay")
}
