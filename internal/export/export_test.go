package export

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/promraw/internal/canvas"
)

func sample(t *testing.T) canvas.EncodedImage {
	t.Helper()
	e := canvas.New()
	e.Initialize(120, 80)
	e.SetTool(canvas.Circle)
	e.PointerDown(image.Pt(60, 40))
	e.PointerUp(image.Pt(90, 40))
	enc, err := e.ExportImage()
	require.NoError(t, err)
	return enc
}

func TestFormatFor(t *testing.T) {
	for path, want := range map[string]Format{"a.png": PNG, "b.PDF": PDF, "noext": PNG} {
		got, err := FormatFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatFor("x.gif")
	assert.Error(t, err)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sample(t), "Promraw #1"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "/Subtype /Image")

	assert.Error(t, WritePDF(&buf, canvas.EncodedImage{}, ""))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	img := sample(t)

	pngPath := filepath.Join(dir, "nested", "out.png")
	require.NoError(t, WriteFile(pngPath, img, ""))
	data, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.Equal(t, img.Data, data)

	pdfPath := filepath.Join(dir, "out.pdf")
	require.NoError(t, WriteFile(pdfPath, img, "t"))
	assert.FileExists(t, pdfPath)

	bad := filepath.Join(dir, "out.bmp")
	assert.Error(t, WriteFile(bad, img, ""))
	assert.NoFileExists(t, bad)
}
