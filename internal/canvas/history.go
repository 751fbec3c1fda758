package canvas

import (
	"fmt"
	"image"
	"time"
)

// SnapshotKind tags what produced a snapshot. It is informational only.
type SnapshotKind int

const (
	KindPath SnapshotKind = iota
	KindShape
	KindText
	KindClear
)

func (k SnapshotKind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindShape:
		return "shape"
	case KindText:
		return "text"
	case KindClear:
		return "clear"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Snapshot is an immutable full copy of the visible pixels at a committed
// action.
type Snapshot struct {
	Kind  SnapshotKind
	Seq   uint64
	Taken time.Time
	pix   *image.RGBA
}

func newSnapshot(kind SnapshotKind, src *image.RGBA, now time.Time) *Snapshot {
	return &Snapshot{Kind: kind, Taken: now, pix: cloneRGBA(src)}
}

// Image returns the stored pixels. The image is shared and must not be
// modified.
func (s *Snapshot) Image() *image.RGBA {
	if s == nil {
		return nil
	}
	return s.pix
}

// History is a linear undo log of snapshots with a cursor. A cursor of -1
// selects the floor: the blank surface, or the oldest snapshot evicted once
// the log exceeds its limit.
type History struct {
	log    []*Snapshot
	cursor int
	limit  int
	floor  *Snapshot
	seq    uint64
}

// NewHistory returns an empty history. A limit of zero or less keeps every
// snapshot.
func NewHistory(limit int) *History {
	return &History{cursor: -1, limit: limit}
}

// Reset drops every snapshot and the floor.
func (h *History) Reset() {
	h.log = nil
	h.cursor = -1
	h.floor = nil
}

// Push discards any redo branch past the cursor and appends s. It returns
// the number of snapshots evicted to respect the limit.
func (h *History) Push(s *Snapshot) int {
	h.seq++
	s.Seq = h.seq
	for i := h.cursor + 1; i < len(h.log); i++ {
		h.log[i] = nil
	}
	h.log = append(h.log[:h.cursor+1], s)
	evicted := 0
	if h.limit > 0 {
		for len(h.log) > h.limit {
			h.floor = h.log[0]
			h.log[0] = nil
			h.log = h.log[1:]
			evicted++
		}
	}
	h.cursor = len(h.log) - 1
	return evicted
}

// Undo steps the cursor back. It returns the snapshot now current (nil
// meaning the floor is blank) and false when already at the floor.
func (h *History) Undo() (*Snapshot, bool) {
	if h.cursor < 0 {
		return nil, false
	}
	h.cursor--
	return h.Current(), true
}

// Redo steps the cursor forward, returning false at the end of the log.
func (h *History) Redo() (*Snapshot, bool) {
	if h.cursor >= len(h.log)-1 {
		return nil, false
	}
	h.cursor++
	return h.log[h.cursor], true
}

// Current returns the snapshot at the cursor, or the floor at -1.
func (h *History) Current() *Snapshot {
	if h.cursor < 0 {
		return h.floor
	}
	return h.log[h.cursor]
}

// At returns the i-th snapshot in the log.
func (h *History) At(i int) *Snapshot {
	if i < 0 || i >= len(h.log) {
		return nil
	}
	return h.log[i]
}

// Floor returns the state restored at cursor -1; nil means blank.
func (h *History) Floor() *Snapshot { return h.floor }

func (h *History) CanUndo() bool { return h.cursor >= 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.log)-1 }
func (h *History) Len() int      { return len(h.log) }
func (h *History) Cursor() int   { return h.cursor }
