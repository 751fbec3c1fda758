package canvas

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(kind SnapshotKind) *Snapshot {
	return newSnapshot(kind, image.NewRGBA(image.Rect(0, 0, 2, 2)), time.Unix(0, 0))
}

func TestHistoryCursor(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, -1, h.Cursor())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	_, ok := h.Undo()
	assert.False(t, ok)

	a, b, c := snap(KindPath), snap(KindShape), snap(KindText)
	h.Push(a)
	h.Push(b)
	h.Push(c)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{a.Seq, b.Seq, c.Seq})

	got, ok := h.Undo()
	require.True(t, ok)
	assert.Same(t, b, got)
	got, _ = h.Undo()
	assert.Same(t, a, got)
	got, ok = h.Undo()
	require.True(t, ok)
	assert.Nil(t, got)
	assert.Equal(t, -1, h.Cursor())

	got, ok = h.Redo()
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestHistoryPushTruncates(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < 4; i++ {
		h.Push(snap(KindPath))
	}
	h.Undo()
	h.Undo()
	d := snap(KindClear)
	h.Push(d)

	assert.Equal(t, 3, h.Len())
	assert.Same(t, d, h.Current())
	assert.False(t, h.CanRedo())
	_, ok := h.Redo()
	assert.False(t, ok)
}

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(2)
	a, b, c := snap(KindPath), snap(KindPath), snap(KindPath)
	h.Push(a)
	assert.Equal(t, 0, h.Push(b))
	assert.Equal(t, 1, h.Push(c))

	assert.Equal(t, 2, h.Len())
	assert.Same(t, a, h.Floor())
	assert.Same(t, b, h.At(0))
	h.Undo()
	got, ok := h.Undo()
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.False(t, h.CanUndo())

	h.Reset()
	assert.Nil(t, h.Floor())
	assert.Equal(t, 0, h.Len())
	assert.Nil(t, h.At(0))
}

func TestSnapshotIsACopy(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	s := newSnapshot(KindPath, src, time.Now())
	src.Pix[0] = 0xaa
	assert.Equal(t, uint8(0), s.Image().Pix[0])
	assert.Equal(t, "path", s.Kind.String())
}
