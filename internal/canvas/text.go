package canvas

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontOnce  sync.Once
	fontErr   error
	textFont  *opentype.Font
	textFaces sync.Map // map[float64]font.Face
)

// FontSize returns the pixel size text is drawn at for a stroke width.
func FontSize(width int) float64 {
	if width < 1 {
		width = 1
	}
	return float64(width * 8)
}

func faceForSize(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		textFont, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse font: %w", fontErr)
	}
	if size <= 0 {
		size = FontSize(DefaultWidth)
	}
	if face, ok := textFaces.Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(textFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	actual, _ := textFaces.LoadOrStore(size, face)
	return actual.(font.Face), nil
}

// MeasureText reports the advance width and vertical metrics of text at the
// given pixel size.
func MeasureText(text string, size float64) (width, ascent, descent int, err error) {
	face, err := faceForSize(size)
	if err != nil {
		return 0, 0, 0, err
	}
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	return d.MeasureString(text).Ceil(), m.Ascent.Ceil(), m.Descent.Ceil(), nil
}

// DrawText renders text with its baseline starting at at.
func DrawText(dst *image.RGBA, at image.Point, text string, col color.RGBA, size float64) error {
	face, err := faceForSize(size)
	if err != nil {
		return err
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(at.X, at.Y),
	}
	d.DrawString(text)
	return nil
}
