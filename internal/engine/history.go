package engine

import "github.com/inkboard/inkboard/internal/document"

type snapshot struct {
	shapes []document.Shape
	key    string
	keyed  bool // false when the shapes could not be encoded
}

func newSnapshot(shapes []document.Shape) snapshot {
	shapes = document.CloneShapes(shapes)
	data, err := document.MarshalShapes(shapes)
	if err != nil {
		return snapshot{shapes: shapes}
	}
	return snapshot{shapes: shapes, key: string(data), keyed: true}
}

// same reports whether two snapshots encode the same canvas. Unkeyed
// snapshots never match anything.
func (s snapshot) same(other snapshot) bool {
	return s.keyed && other.keyed && s.key == other.key
}

// History is a linear undo/redo stack of whole-canvas snapshots. Every
// snapshot is a deep copy; callers never share slices with it.
type History struct {
	past    []snapshot
	present snapshot
	future  []snapshot // last element is the next redo
	limit   int
}

// NewHistory roots a history at initial. limit caps the number of undo
// steps kept; 0 means unbounded.
func NewHistory(initial []document.Shape, limit int) *History {
	return &History{present: newSnapshot(initial), limit: max(limit, 0)}
}

// Push records shapes as the new present and discards the redo branch. A
// snapshot that serialises identically to the present is ignored; Push
// reports whether anything was recorded.
func (h *History) Push(shapes []document.Shape) bool {
	next := newSnapshot(shapes)
	if next.same(h.present) {
		return false
	}
	h.past = append(h.past, h.present)
	if h.limit > 0 && len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.present = next
	h.future = nil
	return true
}

// Undo steps back one snapshot and returns the new present. With nothing
// to undo it returns the current present.
func (h *History) Undo() []document.Shape {
	if len(h.past) == 0 {
		return h.Present()
	}
	h.future = append(h.future, h.present)
	h.present = h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	return h.Present()
}

// Redo is the inverse of Undo.
func (h *History) Redo() []document.Shape {
	if len(h.future) == 0 {
		return h.Present()
	}
	h.past = append(h.past, h.present)
	h.present = h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	return h.Present()
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// UndoDepth is the number of snapshots behind the present.
func (h *History) UndoDepth() int { return len(h.past) }

// RedoDepth is the number of snapshots ahead of the present.
func (h *History) RedoDepth() int { return len(h.future) }

// Present returns a copy of the current snapshot.
func (h *History) Present() []document.Shape {
	return document.CloneShapes(h.present.shapes)
}

// Reset makes shapes the sole present with empty past and future.
func (h *History) Reset(shapes []document.Shape) {
	h.past = nil
	h.future = nil
	h.present = newSnapshot(shapes)
}
