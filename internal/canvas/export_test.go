package canvas

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURI(t *testing.T) {
	e := New()
	e.Initialize(32, 16)
	drag(e, image.Pt(2, 2), image.Pt(20, 10))
	enc, err := e.ExportImage()
	require.NoError(t, err)
	assert.Equal(t, "image/png", enc.MIMEType())

	uri := enc.DataURI()
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	back, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, enc.Data, back.Data)
	assert.Equal(t, 32, back.Width)
	assert.Equal(t, 16, back.Height)

	_, err = ParseDataURI("data:text/plain;base64,aGk=")
	assert.Error(t, err)
}

func TestWriteToAndRead(t *testing.T) {
	enc, err := Encode(blank(8, 8))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := enc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(enc.Data)), n)

	got, err := ReadEncoded(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Width)

	_, err = ReadEncoded(strings.NewReader("not png"))
	assert.Error(t, err)
	_, err = EncodedImage{}.Decode()
	assert.Error(t, err)
}
