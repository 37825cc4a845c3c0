package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkboard/inkboard/internal/document"
)

// Engine wraps an Editor with a string-in, string-out API for hosts that
// exchange JSON (the wasm bridge). It also owns the tool settings and the
// caret blink clock so hosts only forward raw events.
type Engine struct {
	editor   *Editor
	settings ToolSettings
	viewport Viewport

	// Caret blink phase is measured from the start of the text session.
	now         func() time.Time
	caretSince  time.Time
	caretShape  int64
	caretActive bool
}

// NewEngine creates an engine with an empty canvas and default settings.
func NewEngine(opts ...Option) *Engine {
	return &Engine{
		editor:   NewEditor(nil, opts...),
		settings: DefaultToolSettings(),
		viewport: Viewport{Width: 1280, Height: 720, Background: "#ffffff"},
		now:      time.Now,
	}
}

// Editor exposes the underlying state machine.
func (e *Engine) Editor() *Editor {
	return e.editor
}

// --- Commands (host → engine) ---

// LoadShapes replaces the canvas with a JSON shape list. Malformed records
// are skipped and logged; only a payload that is not a list fails.
func (e *Engine) LoadShapes(jsonData string) error {
	shapes, err := document.DecodeShapes([]byte(jsonData))
	if shapes == nil && err != nil {
		return err
	}
	if err != nil {
		slog.Warn("skipped malformed shape records", "kept", len(shapes), "error", err)
	}
	e.editor.Load(shapes)
	e.trackCaret()
	return nil
}

// LoadSampleDrawing loads the built-in sample drawing.
func (e *Engine) LoadSampleDrawing() {
	e.editor.Load(document.NewSampleDrawing())
	e.trackCaret()
}

// SetSettings replaces the tool settings from JSON. Missing fields keep
// their defaults.
func (e *Engine) SetSettings(jsonData string) error {
	st := DefaultToolSettings()
	if err := json.Unmarshal([]byte(jsonData), &st); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	e.settings = st
	return nil
}

// Settings returns the active tool settings.
func (e *Engine) Settings() ToolSettings {
	return e.settings
}

// SetViewport sets the surface size used for the grid and guides.
func (e *Engine) SetViewport(width, height float64) {
	e.viewport.Width = width
	e.viewport.Height = height
}

func (e *Engine) PointerDown(x, y float64, clicks int) {
	e.editor.PointerDown(PointerEvent{X: x, Y: y, Clicks: clicks}, e.settings)
	e.trackCaret()
}

func (e *Engine) PointerMove(x, y float64) {
	e.editor.PointerMove(PointerEvent{X: x, Y: y}, e.settings)
}

func (e *Engine) PointerUp(x, y float64) {
	e.editor.PointerUp(PointerEvent{X: x, Y: y}, e.settings)
	e.trackCaret()
}

// KeyDown applies a key event and reports whether it was consumed.
func (e *Engine) KeyDown(ev KeyEvent) bool {
	handled := e.editor.HandleKey(ev, e.settings)
	e.trackCaret()
	return handled
}

func (e *Engine) Undo() bool {
	ok := e.editor.Undo()
	e.trackCaret()
	return ok
}

func (e *Engine) Redo() bool {
	ok := e.editor.Redo()
	e.trackCaret()
	return ok
}

// trackCaret restarts the blink clock whenever a new text session begins.
func (e *Engine) trackCaret() {
	t, ok := e.editor.Interaction().(TextEditing)
	if !ok {
		e.caretActive = false
		return
	}
	if !e.caretActive || t.ShapeID != e.caretShape {
		e.caretActive = true
		e.caretShape = t.ShapeID
		e.caretSince = e.now()
	}
}

// --- Queries (host ← engine) ---

// Render compiles the current frame to draw commands as JSON.
func (e *Engine) Render() string {
	visible := e.caretActive && CaretVisible(e.now().Sub(e.caretSince))
	commands := CompileDrawCommands(e.editor.Scene(visible), e.settings, e.viewport, e.editor.Measurer())
	result, _ := DrawCommandsToJSON(commands)
	return result
}

// GetShapes returns the shape list as JSON for the save collaborator.
func (e *Engine) GetShapes() string {
	data, _ := document.MarshalShapes(e.editor.Snapshot())
	return string(data)
}

// HitTest returns the id of the topmost shape at (x, y), or -1.
func (e *Engine) HitTest(x, y float64) int64 {
	shapes := e.editor.Snapshot()
	if i, ok := HitTestTopmost(shapes, document.Point{X: x, Y: y}, e.editor.Measurer()); ok {
		return shapes[i].ShapeID()
	}
	return -1
}

// GetSelectionBounds returns the bounding box of the selection as JSON.
func (e *Engine) GetSelectionBounds() string {
	var r Rect
	if id, ok := e.editor.SelectedID(); ok {
		shapes := e.editor.Snapshot()
		if i := document.IndexOf(shapes, id); i >= 0 {
			r = BoundingBox(shapes[i], e.editor.Measurer())
		}
	}
	data, _ := json.Marshal(r)
	return string(data)
}

type engineState struct {
	Interaction string `json:"interaction"`
	SelectedID  *int64 `json:"selectedId"`
	TextID      *int64 `json:"activeTextId"`
	Caret       int    `json:"caret"`
	CanUndo     bool   `json:"canUndo"`
	CanRedo     bool   `json:"canRedo"`
	ShapeCount  int    `json:"shapeCount"`
}

// GetState returns the interaction, selection and history flags as JSON.
func (e *Engine) GetState() string {
	st := engineState{
		Interaction: e.editor.Interaction().Name(),
		CanUndo:     e.editor.History().CanUndo(),
		CanRedo:     e.editor.History().CanRedo(),
		ShapeCount:  len(e.editor.shapes),
	}
	if id, ok := e.editor.SelectedID(); ok {
		st.SelectedID = &id
	}
	if t, ok := e.editor.Interaction().(TextEditing); ok {
		id := t.ShapeID
		st.TextID = &id
		st.Caret = t.Caret
	}
	data, _ := json.Marshal(st)
	return string(data)
}
