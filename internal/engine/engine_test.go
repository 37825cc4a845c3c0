package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/inkboard/inkboard/internal/document"
)

func newTestEngine() *Engine {
	return NewEngine(WithMeasurer(FixedAdvance(10)))
}

func decodeState(t *testing.T, e *Engine) engineState {
	t.Helper()
	var st engineState
	if err := json.Unmarshal([]byte(e.GetState()), &st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return st
}

func decodeFrame(t *testing.T, e *Engine) []DrawCommand {
	t.Helper()
	var cmds []DrawCommand
	if err := json.Unmarshal([]byte(e.Render()), &cmds); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	return cmds
}

func TestEngineLoadShapes(t *testing.T) {
	e := newTestEngine()
	err := e.LoadShapes(`[
		{"id": 1, "type": "rect", "start": {"x": 0, "y": 0}, "end": {"x": 10, "y": 10}},
		{"id": 2, "type": "blob"},
		{"id": 3, "type": "text", "x": 5, "y": 5, "text": "hi"}
	]`)
	if err != nil {
		t.Fatalf("LoadShapes: %v", err)
	}
	if got := decodeState(t, e).ShapeCount; got != 2 {
		t.Errorf("shape count = %d, want 2 (bad record skipped)", got)
	}

	if err := e.LoadShapes(`{"not": "a list"}`); err == nil {
		t.Fatal("expected an error for a non-list payload")
	}
	if got := decodeState(t, e).ShapeCount; got != 2 {
		t.Error("a rejected payload must leave the canvas alone")
	}
}

func TestEngineSettings(t *testing.T) {
	e := newTestEngine()
	if err := e.SetSettings(`{"tool": "ellipse", "snapToGrid": true}`); err != nil {
		t.Fatalf("SetSettings: %v", err)
	}
	st := e.Settings()
	if st.Tool != ToolEllipse || !st.SnapToGrid {
		t.Errorf("settings = %+v", st)
	}
	if st.GridSize != 20 || st.LineWidth != 2 {
		t.Errorf("missing fields should keep defaults, got %+v", st)
	}
	if err := e.SetSettings(`nope`); err == nil {
		t.Fatal("expected a decode error")
	}
	if e.Settings().Tool != ToolEllipse {
		t.Error("a bad payload must keep the previous settings")
	}
}

func TestEngineDrawAndQuery(t *testing.T) {
	e := newTestEngine()
	if err := e.SetSettings(`{"tool": "rect"}`); err != nil {
		t.Fatal(err)
	}
	e.PointerDown(10, 10, 1)
	e.PointerMove(60, 40)
	e.PointerUp(60, 40)

	shapes, err := document.DecodeShapes([]byte(e.GetShapes()))
	if err != nil {
		t.Fatalf("GetShapes returned invalid JSON: %v", err)
	}
	if len(shapes) != 1 || shapes[0].ShapeKind() != document.KindRect {
		t.Fatalf("shapes = %+v", shapes)
	}

	if id := e.HitTest(30, 20); id != shapes[0].ShapeID() {
		t.Errorf("HitTest = %d, want %d", id, shapes[0].ShapeID())
	}
	if id := e.HitTest(300, 300); id != -1 {
		t.Errorf("HitTest miss = %d, want -1", id)
	}

	var empty Rect
	if err := json.Unmarshal([]byte(e.GetSelectionBounds()), &empty); err != nil || empty != (Rect{}) {
		t.Errorf("bounds without selection = %+v (%v)", empty, err)
	}

	e.PointerDown(30, 20, 1)
	e.PointerUp(30, 20)
	var bounds Rect
	if err := json.Unmarshal([]byte(e.GetSelectionBounds()), &bounds); err != nil {
		t.Fatal(err)
	}
	if bounds != (Rect{X: 10, Y: 10, Width: 50, Height: 30}) {
		t.Errorf("bounds = %+v", bounds)
	}

	st := decodeState(t, e)
	if st.SelectedID == nil || *st.SelectedID != shapes[0].ShapeID() || !st.CanUndo || st.Interaction != "idle" {
		t.Errorf("state = %+v", st)
	}
}

func TestEngineUndoRedo(t *testing.T) {
	e := newTestEngine()
	e.LoadSampleDrawing()
	if e.Undo() {
		t.Fatal("freshly loaded drawing has nothing to undo")
	}
	if e.KeyDown(KeyEvent{Key: "Delete"}) {
		t.Fatal("Delete with nothing selected should not be consumed")
	}

	e.PointerDown(100, 100, 1) // inside the sample rectangle
	e.PointerUp(100, 100)
	e.KeyDown(KeyEvent{Key: "Delete"})
	before := decodeState(t, e).ShapeCount
	if !e.Undo() {
		t.Fatal("undo after delete should succeed")
	}
	if got := decodeState(t, e).ShapeCount; got != before+1 {
		t.Errorf("shape count after undo = %d, want %d", got, before+1)
	}
	if !e.Redo() {
		t.Fatal("redo should succeed")
	}
	if got := decodeState(t, e).ShapeCount; got != before {
		t.Errorf("shape count after redo = %d, want %d", got, before)
	}
}

func TestEngineCaretBlink(t *testing.T) {
	e := newTestEngine()
	clock := time.Unix(0, 0)
	e.now = func() time.Time { return clock }
	if err := e.SetSettings(`{"tool": "text"}`); err != nil {
		t.Fatal(err)
	}

	e.PointerDown(20, 40, 1)
	st := decodeState(t, e)
	if st.Interaction != "textEditing" || st.TextID == nil || st.Caret != 0 {
		t.Fatalf("state = %+v", st)
	}

	if got := len(decodeFrame(t, e)); got != 3 {
		t.Fatalf("frame has %d commands, want clear, text, caret", got)
	}
	clock = clock.Add(CaretBlinkInterval + time.Millisecond)
	if got := len(decodeFrame(t, e)); got != 2 {
		t.Fatalf("frame has %d commands, want the caret hidden", got)
	}
	clock = clock.Add(CaretBlinkInterval)
	if got := len(decodeFrame(t, e)); got != 3 {
		t.Fatalf("frame has %d commands, want the caret back", got)
	}

	e.KeyDown(KeyEvent{Key: "Enter"})
	if got := len(decodeFrame(t, e)); got != 2 {
		t.Fatalf("frame has %d commands after Enter, want no caret", got)
	}
}
