package engine

import (
	"github.com/inkboard/inkboard/internal/document"
)

// Editor owns the shape list, selection, interaction state and history of
// one canvas. It is driven synchronously by pointer and key events and is
// not safe for concurrent use.
type Editor struct {
	shapes   []document.Shape
	selected int64
	hasSel   bool
	state    Interaction
	history  *History
	nextID   int64
	measurer TextMeasurer

	// guide is the grid proximity of the last pointer move while snapping.
	guide *GridHit

	historyLimit int
}

type Option func(*Editor)

// WithMeasurer sets the text measurer used for text bounds and caret
// placement. The default is the embedded Go Regular face.
func WithMeasurer(m TextMeasurer) Option {
	return func(e *Editor) { e.measurer = m }
}

// WithHistoryLimit caps the number of undo steps kept.
func WithHistoryLimit(n int) Option {
	return func(e *Editor) { e.historyLimit = n }
}

// NewEditor creates an editor rooted at shapes. Nothing is selected and
// history holds shapes as its only snapshot.
func NewEditor(shapes []document.Shape, opts ...Option) *Editor {
	e := &Editor{state: Idle{}}
	for _, opt := range opts {
		opt(e)
	}
	if e.measurer == nil {
		e.measurer = DefaultMeasurer()
	}
	e.shapes = document.CloneShapes(shapes)
	e.history = NewHistory(e.shapes, e.historyLimit)
	e.nextID = document.MaxID(e.shapes) + 1
	return e
}

// Load replaces the canvas with shapes and resets history to them. Ids
// allocated afterwards stay above every id seen so far.
func (e *Editor) Load(shapes []document.Shape) {
	e.shapes = document.CloneShapes(shapes)
	e.history.Reset(e.shapes)
	e.clearSelection()
	e.state = Idle{}
	e.guide = nil
	e.nextID = max(e.nextID, document.MaxID(e.shapes)+1)
}

// Snapshot returns a copy of the current shape list for persistence.
func (e *Editor) Snapshot() []document.Shape {
	return document.CloneShapes(e.shapes)
}

// SelectedID returns the selected shape's id.
func (e *Editor) SelectedID() (int64, bool) {
	return e.selected, e.hasSel
}

// Interaction returns the active gesture.
func (e *Editor) Interaction() Interaction {
	return e.state
}

// History exposes the undo stack for inspection.
func (e *Editor) History() *History {
	return e.history
}

// Measurer returns the text measurer in use.
func (e *Editor) Measurer() TextMeasurer {
	return e.measurer
}

// Scene captures what the renderer needs to draw the current state.
func (e *Editor) Scene(caretVisible bool) Scene {
	var guide *GridHit
	if e.guide != nil {
		g := *e.guide
		guide = &g
	}
	return Scene{
		Shapes:       e.Snapshot(),
		SelectedID:   e.selected,
		HasSelection: e.hasSel,
		Interaction:  e.state,
		Guide:        guide,
		CaretVisible: caretVisible,
	}
}

// --- Pointer handling ---

// PointerDown starts a gesture. In priority order: a handle of the
// selection starts a resize or rotate; the text tool edits, drags or
// creates text; a hit on any shape selects and drags it; otherwise the
// active tool starts drawing.
func (e *Editor) PointerDown(ev PointerEvent, st ToolSettings) {
	if !ev.Finite() {
		return
	}
	p := ev.Point()
	e.guide = nil

	if e.hasSel && st.Tool != ToolText {
		if i := document.IndexOf(e.shapes, e.selected); i >= 0 {
			bbox := BoundingBox(e.shapes[i], e.measurer)
			if h, ok := HandleAt(p, bbox, HandleHitRadius); ok {
				if h.IsRotate() {
					e.state = Rotating{ShapeID: e.selected, Last: p}
				} else {
					e.state = Resizing{ShapeID: e.selected, Handle: h.Dir, Last: p}
				}
				return
			}
		}
	}

	if st.Tool == ToolText {
		e.textPointerDown(ev, st)
		return
	}

	if i, ok := HitTestTopmost(e.shapes, p, e.measurer); ok {
		id := e.shapes[i].ShapeID()
		e.selectShape(id)
		e.state = Dragging{ShapeID: id, Last: p}
		return
	}

	e.clearSelection()

	if st.Tool == ToolPen {
		e.state = PenDrawing{Path: []document.Point{p}}
		return
	}
	kind, ok := st.Tool.boxKind()
	if !ok {
		e.state = Idle{}
		return
	}
	s := document.BoxShape{
		ID:          e.allocID(),
		Kind:        kind,
		Start:       p,
		End:         p,
		Color:       st.color(),
		FillColor:   st.fillColor(),
		IsFilled:    st.IsFilled,
		LineWidth:   st.lineWidth(),
		LineStyle:   st.lineStyle(),
		IsRoughMode: st.IsRoughMode,
	}
	e.shapes = append(e.shapes, s)
	e.commit()
	e.state = Drawing{ShapeID: s.ID}
}

func (e *Editor) textPointerDown(ev PointerEvent, st ToolSettings) {
	p := ev.Point()
	if i, ok := TopmostTextAt(e.shapes, p, e.measurer); ok {
		t := e.shapes[i].(document.TextShape)
		if ev.Clicks >= 2 {
			e.state = TextEditing{ShapeID: t.ID, Caret: CaretIndexAt(e.measurer, t.Text, t.X, p.X)}
			return
		}
		e.clearSelection()
		e.state = Dragging{ShapeID: t.ID, Last: p}
		return
	}

	e.clearSelection()
	origin := SnapPoint(p, st.snapGrid())
	t := document.TextShape{
		ID:        e.allocID(),
		X:         origin.X,
		Y:         origin.Y,
		Color:     st.color(),
		LineWidth: st.lineWidth(),
	}
	e.shapes = append(e.shapes, t)
	e.commit()
	e.state = TextEditing{ShapeID: t.ID, Caret: 0}
}

// PointerMove advances the active gesture by the delta from the last
// pointer position.
func (e *Editor) PointerMove(ev PointerEvent, st ToolSettings) {
	if !ev.Finite() {
		return
	}
	p := ev.Point()
	e.guide = nil
	if g := st.snapGrid(); g > 0 {
		if hit, ok := GridProximity(p, g, SnapGuideTolerance); ok {
			e.guide = &hit
		}
	}

	switch s := e.state.(type) {
	case Resizing:
		e.update(s.ShapeID, func(sh document.Shape) document.Shape {
			return Resize(sh, s.Handle, s.Last, p)
		})
		s.Last = p
		e.state = s
	case Rotating:
		e.update(s.ShapeID, func(sh document.Shape) document.Shape {
			return Rotate(sh, s.Last, p)
		})
		s.Last = p
		e.state = s
	case Dragging:
		dx, dy := p.X-s.Last.X, p.Y-s.Last.Y
		e.update(s.ShapeID, func(sh document.Shape) document.Shape {
			return Translate(sh, dx, dy)
		})
		s.Last = p
		e.state = s
	case PenDrawing:
		s.Path = append(s.Path, p)
		e.state = s
	case Drawing:
		e.update(s.ShapeID, func(sh document.Shape) document.Shape {
			if b, ok := sh.(document.BoxShape); ok {
				b.End = p
				return b
			}
			return sh
		})
	}
}

// PointerUp commits the active gesture to history, snapping the affected
// shape when grid snapping is on. Rotation is never snapped. Text editing
// survives pointer-up.
func (e *Editor) PointerUp(ev PointerEvent, st ToolSettings) {
	if !ev.Finite() {
		return
	}
	e.guide = nil
	g := st.snapGrid()
	snap := func(sh document.Shape) document.Shape { return SnapShape(sh, g) }

	switch s := e.state.(type) {
	case Resizing:
		e.update(s.ShapeID, snap)
		e.commit()
		e.state = Idle{}
	case Dragging:
		e.update(s.ShapeID, snap)
		e.commit()
		e.state = Idle{}
	case Rotating:
		e.commit()
		e.state = Idle{}
	case PenDrawing:
		pen := document.PenShape{
			ID:          e.allocID(),
			Path:        s.Path,
			Color:       st.color(),
			LineWidth:   st.lineWidth(),
			LineStyle:   st.lineStyle(),
			IsRoughMode: st.IsRoughMode,
		}
		e.shapes = append(e.shapes, snap(pen))
		e.commit()
		e.state = Idle{}
	case Drawing:
		e.update(s.ShapeID, snap)
		e.commit()
		e.state = Idle{}
	}
}

// --- Internals ---

func (e *Editor) allocID() int64 {
	id := e.nextID
	e.nextID++
	return id
}

func (e *Editor) commit() {
	e.history.Push(e.shapes)
}

func (e *Editor) selectShape(id int64) {
	e.selected, e.hasSel = id, true
}

func (e *Editor) clearSelection() {
	e.selected, e.hasSel = 0, false
}

// update replaces the shape with the given id by fn's result. The list is
// copied so snapshots handed out earlier are never mutated.
func (e *Editor) update(id int64, fn func(document.Shape) document.Shape) {
	i := document.IndexOf(e.shapes, id)
	if i < 0 {
		return
	}
	next := make([]document.Shape, len(e.shapes))
	copy(next, e.shapes)
	next[i] = fn(next[i])
	e.shapes = next
}

func (e *Editor) editingText() bool {
	_, ok := e.state.(TextEditing)
	return ok
}
