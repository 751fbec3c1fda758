// Package clipboard publishes drawings to the system clipboard as PNG
// images or data URI text.
package clipboard

import (
	"bytes"
	"errors"
	"os"
	"runtime"
	"sync"

	"github.com/example/promraw/internal/canvas"
)

var (
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	errNotPNG    = errors.New("clipboard: data is not a PNG image")
	pngMagic     = []byte("\x89PNG\r\n\x1a\n")
)

// backend is the platform clipboard. newBackend is provided per platform.
type backend interface {
	writePNG(data []byte) error
	writeText(data []byte) error
}

var (
	initOnce sync.Once
	initErr  error
	active   backend
)

func needsDisplay() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return false
	}
	return true
}

func ensureInit() error {
	initOnce.Do(func() {
		if needsDisplay() && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		active, initErr = newBackend()
	})
	return initErr
}

// WritePNG publishes already encoded PNG bytes as an image.
func WritePNG(data []byte) error {
	if !bytes.HasPrefix(data, pngMagic) {
		return errNotPNG
	}
	if err := ensureInit(); err != nil {
		return err
	}
	return active.writePNG(data)
}

// WriteText writes text data to the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return active.writeText([]byte(text))
}

// WriteDrawing copies an exported drawing, as a data URI when asText is set.
func WriteDrawing(img canvas.EncodedImage, asText bool) error {
	if asText {
		if img.Empty() {
			return errNotPNG
		}
		return WriteText(img.DataURI())
	}
	return WritePNG(img.Data)
}
