package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/inkboard/inkboard/internal/document"
)

// DuplicateOffset is how far a duplicate is shifted from its source.
const DuplicateOffset = 15.0

// HandleKey applies a key press. It reports whether the key was consumed,
// so the host can suppress the browser default.
//
// Priority: undo, redo, delete selection, duplicate selection, then text
// editing keys when a caret is active.
func (e *Editor) HandleKey(ev KeyEvent, st ToolSettings) bool {
	mod := ev.Ctrl || ev.Meta

	switch {
	case mod && strings.EqualFold(ev.Key, "z") && !ev.Shift:
		e.Undo()
		return true

	case mod && ((strings.EqualFold(ev.Key, "z") && ev.Shift) || strings.EqualFold(ev.Key, "y")):
		e.Redo()
		return true

	case ev.Key == "Delete" && e.hasSel && !e.editingText():
		e.deleteSelected()
		return true

	case mod && strings.EqualFold(ev.Key, "d"):
		if e.hasSel && !e.editingText() {
			e.duplicateSelected()
		}
		return true
	}

	if t, ok := e.state.(TextEditing); ok {
		return e.editText(t, ev)
	}
	return false
}

// Undo restores the previous snapshot, ending any text session and
// clearing the selection. It reports whether anything changed.
func (e *Editor) Undo() bool {
	if !e.history.CanUndo() {
		return false
	}
	e.shapes = e.history.Undo()
	e.state = Idle{}
	e.clearSelection()
	return true
}

// Redo is the inverse of Undo.
func (e *Editor) Redo() bool {
	if !e.history.CanRedo() {
		return false
	}
	e.shapes = e.history.Redo()
	e.state = Idle{}
	e.clearSelection()
	return true
}

func (e *Editor) deleteSelected() {
	i := document.IndexOf(e.shapes, e.selected)
	if i >= 0 {
		next := make([]document.Shape, 0, len(e.shapes)-1)
		next = append(next, e.shapes[:i]...)
		next = append(next, e.shapes[i+1:]...)
		e.shapes = next
		e.commit()
	}
	e.clearSelection()
}

func (e *Editor) duplicateSelected() {
	i := document.IndexOf(e.shapes, e.selected)
	if i < 0 {
		return
	}
	clone := Translate(e.shapes[i].WithID(e.allocID()), DuplicateOffset, DuplicateOffset)
	e.shapes = append(e.shapes, clone)
	e.commit()
	e.selectShape(clone.ShapeID())
}

// editText handles keys while a caret is active. Each mutation is its own
// history entry.
func (e *Editor) editText(t TextEditing, ev KeyEvent) bool {
	i := document.IndexOf(e.shapes, t.ShapeID)
	if i < 0 {
		return false
	}
	shape, ok := e.shapes[i].(document.TextShape)
	if !ok {
		return false
	}
	length := utf8.RuneCountInString(shape.Text)
	caret := max(0, min(t.Caret, length))

	setText := func(s string) {
		e.update(t.ShapeID, func(sh document.Shape) document.Shape {
			ts := sh.(document.TextShape)
			ts.Text = s
			return ts
		})
		e.commit()
	}

	switch {
	case utf8.RuneCountInString(ev.Key) == 1 && !ev.Ctrl && !ev.Meta && !ev.Alt:
		before, after := splitAtRune(shape.Text, caret)
		setText(before + ev.Key + after)
		caret++

	case ev.Key == "Backspace":
		if caret == 0 {
			return true
		}
		before, after := splitAtRune(shape.Text, caret)
		_, size := utf8.DecodeLastRuneInString(before)
		setText(before[:len(before)-size] + after)
		caret--

	case ev.Key == "Delete":
		if caret >= length {
			return true
		}
		before, after := splitAtRune(shape.Text, caret)
		_, size := utf8.DecodeRuneInString(after)
		setText(before + after[size:])

	case ev.Key == "ArrowLeft":
		caret = max(0, caret-1)

	case ev.Key == "ArrowRight":
		caret = min(length, caret+1)

	case ev.Key == "Enter":
		e.state = Idle{}
		e.clearSelection()
		return true

	default:
		return false
	}

	e.state = TextEditing{ShapeID: t.ShapeID, Caret: caret}
	return true
}
