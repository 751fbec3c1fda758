// Package export writes drawings to files in the formats the CLI and window
// offer.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/promraw/internal/canvas"
)

// Format is an output file format.
type Format int

const (
	PNG Format = iota
	PDF
)

func (f Format) String() string {
	if f == PDF {
		return "pdf"
	}
	return "png"
}

// FormatFor picks the format from the path extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", "":
		return PNG, nil
	case ".pdf":
		return PDF, nil
	}
	return PNG, fmt.Errorf("unsupported output extension %q", filepath.Ext(path))
}

// WritePNG writes the encoded image as-is.
func WritePNG(w io.Writer, img canvas.EncodedImage) error {
	if img.Empty() {
		return fmt.Errorf("export: empty image")
	}
	_, err := img.WriteTo(w)
	return err
}

// pixelsToPoints renders one canvas pixel as 3/4pt, i.e. 96 dpi.
const pixelsToPoints = 0.75

// WritePDF writes a single page PDF sized to the drawing with the PNG
// embedded losslessly.
func WritePDF(w io.Writer, img canvas.EncodedImage, title string) error {
	if img.Empty() {
		return fmt.Errorf("export: empty image")
	}
	pw := float64(img.Width) * pixelsToPoints
	ph := float64(img.Height) * pixelsToPoints
	// Portrait keeps Wd and Ht as given; landscape would swap them.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.SetCreator("promraw", true)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("drawing", opts, bytes.NewReader(img.Data))
	pdf.ImageOptions("drawing", 0, 0, pw, ph, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}

// Write encodes img in format f.
func Write(w io.Writer, f Format, img canvas.EncodedImage, title string) error {
	if f == PDF {
		return WritePDF(w, img, title)
	}
	return WritePNG(w, img)
}

// WriteFile writes img to path in the format implied by its extension. The
// file is replaced only once the encoding succeeded.
func WriteFile(path string, img canvas.EncodedImage, title string) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(&buf, f, img, title); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
