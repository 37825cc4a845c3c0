package engine

import (
	"math"

	"github.com/inkboard/inkboard/internal/document"
)

// Interaction is the editor's single in-progress gesture. Exactly one
// variant is active at a time; Idle means no gesture.
type Interaction interface {
	// Name is the variant name reported to hosts.
	Name() string
	sealedInteraction()
}

// Idle: no gesture in progress.
type Idle struct{}

// Drawing: a new box shape is being dragged out.
type Drawing struct {
	ShapeID int64
}

// PenDrawing: a freehand path is accumulating. The shape is only added to
// the canvas on pointer-up.
type PenDrawing struct {
	Path []document.Point
}

// Dragging: an existing shape follows the pointer.
type Dragging struct {
	ShapeID int64
	Last    document.Point
}

// Resizing: a selection handle is being dragged.
type Resizing struct {
	ShapeID int64
	Handle  HandleDir
	Last    document.Point
}

// Rotating: the rotate knob is being dragged.
type Rotating struct {
	ShapeID int64
	Last    document.Point
}

// TextEditing: a caret is active in a text shape. Caret counts runes.
type TextEditing struct {
	ShapeID int64
	Caret   int
}

func (Idle) Name() string        { return "idle" }
func (Drawing) Name() string     { return "drawing" }
func (PenDrawing) Name() string  { return "penDrawing" }
func (Dragging) Name() string    { return "dragging" }
func (Resizing) Name() string    { return "resizing" }
func (Rotating) Name() string    { return "rotating" }
func (TextEditing) Name() string { return "textEditing" }

func (Idle) sealedInteraction()        {}
func (Drawing) sealedInteraction()     {}
func (PenDrawing) sealedInteraction()  {}
func (Dragging) sealedInteraction()    {}
func (Resizing) sealedInteraction()    {}
func (Rotating) sealedInteraction()    {}
func (TextEditing) sealedInteraction() {}

// PointerEvent is a pointer press, move or release in canvas coordinates.
// Clicks is the browser's click count; 2 or more is a double-click.
type PointerEvent struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Clicks int     `json:"clicks"`
}

// Finite reports whether both coordinates are real numbers. Hosts can
// hand over NaN (JS undefined) or ±Inf; the editor ignores such events.
func (e PointerEvent) Finite() bool {
	return !math.IsNaN(e.X) && !math.IsInf(e.X, 0) && !math.IsNaN(e.Y) && !math.IsInf(e.Y, 0)
}

// Point returns the event position.
func (e PointerEvent) Point() document.Point {
	return document.Point{X: e.X, Y: e.Y}
}

// KeyEvent mirrors a DOM keydown: Key is the key value ("a", "Backspace",
// "ArrowLeft", ...).
type KeyEvent struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrlKey"`
	Meta  bool   `json:"metaKey"`
	Shift bool   `json:"shiftKey"`
	Alt   bool   `json:"altKey"`
}
