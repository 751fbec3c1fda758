package canvas

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
)

const dataURIPrefix = "data:image/png;base64,"

// ErrNotInitialized is returned by exports requested before Initialize.
var ErrNotInitialized = errors.New("canvas: surface not initialized")

// EncodedImage is a PNG encoding of a surface.
type EncodedImage struct {
	Data   []byte
	Width  int
	Height int
}

// Encode losslessly encodes img as PNG.
func Encode(img image.Image) (EncodedImage, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return EncodedImage{}, fmt.Errorf("encode png: %w", err)
	}
	b := img.Bounds()
	return EncodedImage{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// MIMEType returns the media type of Data.
func (e EncodedImage) MIMEType() string { return "image/png" }

// Empty reports whether the image holds no data.
func (e EncodedImage) Empty() bool { return len(e.Data) == 0 }

// Base64 returns Data in standard base64.
func (e EncodedImage) Base64() string {
	return base64.StdEncoding.EncodeToString(e.Data)
}

// DataURI returns the image as a data: URI.
func (e EncodedImage) DataURI() string {
	return dataURIPrefix + e.Base64()
}

// Decode parses Data back into an image.
func (e EncodedImage) Decode() (image.Image, error) {
	if e.Empty() {
		return nil, errors.New("canvas: empty image")
	}
	return png.Decode(bytes.NewReader(e.Data))
}

// WriteTo writes the PNG bytes to w.
func (e EncodedImage) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(e.Data)
	return int64(n), err
}

// ParseDataURI decodes a PNG data URI produced by DataURI.
func ParseDataURI(uri string) (EncodedImage, error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return EncodedImage{}, fmt.Errorf("not a png data uri")
	}
	data, err := base64.StdEncoding.DecodeString(uri[len(dataURIPrefix):])
	if err != nil {
		return EncodedImage{}, fmt.Errorf("decode data uri: %w", err)
	}
	return ReadEncoded(bytes.NewReader(data))
}

// ReadEncoded reads PNG bytes from r, validating the header to fill in the
// dimensions.
func ReadEncoded(r io.Reader) (EncodedImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return EncodedImage{}, err
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return EncodedImage{}, fmt.Errorf("decode png: %w", err)
	}
	return EncodedImage{Data: data, Width: cfg.Width, Height: cfg.Height}, nil
}
