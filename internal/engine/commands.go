package engine

import (
	"encoding/json"
	"math"
	"math/rand/v2"

	"github.com/inkboard/inkboard/internal/document"
)

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []interface{}

func moveTo(p document.Point) PathCommand { return PathCommand{"M", p.X, p.Y} }
func lineTo(p document.Point) PathCommand { return PathCommand{"L", p.X, p.Y} }
func closePath() PathCommand              { return PathCommand{"Z"} }

func cubicTo(c1, c2, p document.Point) PathCommand {
	return PathCommand{"C", c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y}
}

// Op values for DrawCommand.
const (
	OpClear = "clear"
	OpPath  = "path"
	OpText  = "text"
)

// DrawCommand represents a single drawing operation. A frame is a list of
// these in painter's order; raster, PDF and browser hosts all replay the
// same list.
type DrawCommand struct {
	Op          string        `json:"op"`
	ShapeID     int64         `json:"shapeId,omitempty"`
	Transform   []float64     `json:"transform,omitempty"` // [a, b, c, d, e, f] affine matrix
	Path        []PathCommand `json:"path,omitempty"`
	Fill        string        `json:"fill,omitempty"`
	Stroke      string        `json:"stroke,omitempty"`
	StrokeWidth float64       `json:"strokeWidth,omitempty"`
	Dash        []float64     `json:"dash,omitempty"`
	Opacity     float64       `json:"opacity"`
	RoundJoins  bool          `json:"roundJoins,omitempty"`
	Text        string        `json:"text,omitempty"`
	X           float64       `json:"x,omitempty"`
	Y           float64       `json:"y,omitempty"`
	FontSize    float64       `json:"fontSize,omitempty"`
}

// Scene is the editor state a frame is drawn from.
type Scene struct {
	Shapes       []document.Shape
	SelectedID   int64
	HasSelection bool
	Interaction  Interaction
	Guide        *GridHit
	CaretVisible bool
}

// Viewport is the drawing surface the frame covers.
type Viewport struct {
	Width      float64
	Height     float64
	Background string
}

// Overlay colours and dash patterns.
const (
	gridColor      = "#e0e0e0"
	guideColor     = "#FF6B6B"
	dragBoxColor   = "#4c9aff"
	selectionColor = "#ff9800"
	handleColor    = "#4c9aff"
	rotateColor    = "#FF6B6B"
	caretColor     = "#000000"
	selectionPad   = 4.0
	arrowHeadLen   = 10.0
	roughStep      = 5.0
)

// DashPattern returns the dash lengths for a line style, nil for solid.
func DashPattern(s document.LineStyle) []float64 {
	switch s {
	case document.LineDashed:
		return []float64{8, 4}
	case document.LineDotted:
		return []float64{2, 3}
	}
	return nil
}

// CompileDrawCommands generates the draw command buffer for one frame:
// background, grid, shapes with the text caret, the pen stroke in
// progress, snap guides, then the drag or selection overlay.
func CompileDrawCommands(scene Scene, st ToolSettings, vp Viewport, m TextMeasurer) []DrawCommand {
	if m == nil {
		m = DefaultMeasurer()
	}
	bg := vp.Background
	if bg == "" {
		bg = "#ffffff"
	}
	commands := []DrawCommand{{Op: OpClear, Fill: bg, Opacity: 1}}

	if st.ShowGrid && st.GridSize > 0 {
		commands = append(commands, gridCommand(vp, st.GridSize))
	}

	editing, isEditing := scene.Interaction.(TextEditing)
	for _, s := range scene.Shapes {
		commands = append(commands, shapeCommands(s)...)
		if t, ok := s.(document.TextShape); ok && isEditing && t.ID == editing.ShapeID && scene.CaretVisible {
			commands = append(commands, caretCommand(t, editing.Caret, m))
		}
	}

	if pen, ok := scene.Interaction.(PenDrawing); ok && len(pen.Path) > 0 {
		preview := document.PenShape{
			Path:        pen.Path,
			Color:       st.color(),
			LineWidth:   st.lineWidth(),
			LineStyle:   st.lineStyle(),
			IsRoughMode: st.IsRoughMode,
		}
		commands = append(commands, shapeCommands(preview)...)
	}

	if scene.Guide != nil && scene.Guide.Near() {
		commands = append(commands, guideCommands(vp, scene.Guide.Snapped)...)
	}

	dragID := int64(0)
	dragging := false
	if d, ok := scene.Interaction.(Dragging); ok {
		dragID, dragging = d.ShapeID, true
		if i := document.IndexOf(scene.Shapes, d.ShapeID); i >= 0 {
			box := BoundingBox(scene.Shapes[i], m).Inset(selectionPad)
			commands = append(commands, DrawCommand{
				Op:          OpPath,
				Path:        rectPath(box),
				Stroke:      dragBoxColor,
				StrokeWidth: 1.5,
				Dash:        []float64{6, 4},
				Opacity:     1,
			})
		}
	}

	if scene.HasSelection && !(dragging && dragID == scene.SelectedID) {
		if i := document.IndexOf(scene.Shapes, scene.SelectedID); i >= 0 {
			bbox := BoundingBox(scene.Shapes[i], m)
			commands = append(commands, DrawCommand{
				Op:          OpPath,
				Path:        rectPath(bbox.Inset(selectionPad)),
				Stroke:      selectionColor,
				StrokeWidth: 2,
				Dash:        []float64{3, 3},
				Opacity:     1,
			})
			commands = append(commands, handleCommands(bbox)...)
		}
	}

	return commands
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

func shapeCommands(s document.Shape) []DrawCommand {
	switch v := s.(type) {
	case document.BoxShape:
		cmd := DrawCommand{
			Op:          OpPath,
			ShapeID:     v.ID,
			Path:        ShapePath(v),
			Stroke:      v.Color,
			StrokeWidth: v.LineWidth,
			Dash:        DashPattern(v.LineStyle),
			Opacity:     1,
			RoundJoins:  v.IsRoughMode,
		}
		if v.Kind.IsArea() && v.IsFilled && v.FillColor != "" {
			cmd.Fill = v.FillColor
		}
		if v.IsRoughMode {
			cmd.Opacity = 0.95
		}
		if m := shapeTransform(v); !m.IsIdentity() {
			cmd.Transform = m.ToSlice()
		}
		return []DrawCommand{cmd}

	case document.PenShape:
		if len(v.Path) == 0 {
			return nil
		}
		cmd := DrawCommand{
			Op:          OpPath,
			ShapeID:     v.ID,
			Path:        ShapePath(v),
			Stroke:      v.Color,
			StrokeWidth: v.LineWidth,
			Dash:        DashPattern(v.LineStyle),
			Opacity:     1,
			RoundJoins:  v.IsRoughMode,
		}
		if v.IsRoughMode {
			cmd.Opacity = 0.95
		}
		return []DrawCommand{cmd}

	case document.TextShape:
		return []DrawCommand{{
			Op:       OpText,
			ShapeID:  v.ID,
			Text:     v.Text,
			X:        v.X,
			Y:        v.Y,
			Fill:     v.Color,
			FontSize: FontSize,
			Opacity:  1,
		}}
	}
	return nil
}

func caretCommand(t document.TextShape, caret int, m TextMeasurer) DrawCommand {
	before, _ := splitAtRune(t.Text, caret)
	x := t.X + measure(m, before) + 2
	return DrawCommand{
		Op: OpPath,
		Path: []PathCommand{
			moveTo(document.Point{X: x, Y: t.Y - 16}),
			lineTo(document.Point{X: x, Y: t.Y + 4}),
		},
		Stroke:      caretColor,
		StrokeWidth: 1,
		Opacity:     1,
	}
}

func gridCommand(vp Viewport, size float64) DrawCommand {
	var path []PathCommand
	for x := 0.0; x < vp.Width; x += size {
		path = append(path, moveTo(document.Point{X: x}), lineTo(document.Point{X: x, Y: vp.Height}))
	}
	for y := 0.0; y < vp.Height; y += size {
		path = append(path, moveTo(document.Point{Y: y}), lineTo(document.Point{X: vp.Width, Y: y}))
	}
	return DrawCommand{Op: OpPath, Path: path, Stroke: gridColor, StrokeWidth: 0.5, Opacity: 0.5}
}

func guideCommands(vp Viewport, p document.Point) []DrawCommand {
	return []DrawCommand{
		{
			Op: OpPath,
			Path: []PathCommand{
				moveTo(document.Point{X: p.X}), lineTo(document.Point{X: p.X, Y: vp.Height}),
				moveTo(document.Point{Y: p.Y}), lineTo(document.Point{X: vp.Width, Y: p.Y}),
			},
			Stroke:      guideColor,
			StrokeWidth: 1,
			Dash:        []float64{4, 4},
			Opacity:     0.6,
		},
		{Op: OpPath, Path: ellipsePath(p, 3, 3), Fill: guideColor, Opacity: 1},
	}
}

func handleCommands(bbox Rect) []DrawCommand {
	x, y, w, h := bbox.X, bbox.Y, bbox.Width, bbox.Height
	var squares []PathCommand
	for _, c := range []document.Point{
		{X: x, Y: y}, {X: x + w/2, Y: y}, {X: x + w, Y: y},
		{X: x, Y: y + h/2}, {X: x + w, Y: y + h/2},
		{X: x, Y: y + h}, {X: x + w/2, Y: y + h}, {X: x + w, Y: y + h},
	} {
		squares = append(squares, rectPath(Rect{X: c.X - HandleSize/2, Y: c.Y - HandleSize/2, Width: HandleSize, Height: HandleSize})...)
	}
	top := document.Point{X: x + w/2, Y: y}
	knob := document.Point{X: x + w/2, Y: y - RotateHandleOffset}
	return []DrawCommand{
		{Op: OpPath, Path: squares, Fill: handleColor, Opacity: 1},
		{Op: OpPath, Path: ellipsePath(knob, 6, 6), Fill: rotateColor, Opacity: 1},
		{
			Op:          OpPath,
			Path:        []PathCommand{moveTo(top), lineTo(knob)},
			Stroke:      rotateColor,
			StrokeWidth: 1,
			Dash:        []float64{3, 3},
			Opacity:     1,
		},
	}
}

// --- Path construction ---

// ShapePath builds the outline of a shape in its unrotated space. Rough
// shapes get a hand-drawn jitter seeded by the shape id, so the same shape
// always renders the same way.
func ShapePath(s document.Shape) []PathCommand {
	switch v := s.(type) {
	case document.BoxShape:
		var rng *rand.Rand
		if v.IsRoughMode {
			rng = rand.New(rand.NewPCG(uint64(v.ID), 0x9e3779b97f4a7c15))
		}
		switch v.Kind {
		case document.KindRect:
			return polygonPath(rng, 1,
				v.Start, document.Point{X: v.End.X, Y: v.Start.Y},
				v.End, document.Point{X: v.Start.X, Y: v.End.Y})
		case document.KindEllipse:
			r := RectFromPoints(v.Start, v.End)
			if rng != nil {
				return roughEllipsePath(rng, r.Center(), r.Width/2, r.Height/2)
			}
			return ellipsePath(r.Center(), r.Width/2, r.Height/2)
		case document.KindDiamond:
			c := v.Center()
			return polygonPath(rng, 1,
				document.Point{X: c.X, Y: v.Start.Y}, document.Point{X: v.End.X, Y: c.Y},
				document.Point{X: c.X, Y: v.End.Y}, document.Point{X: v.Start.X, Y: c.Y})
		case document.KindLine:
			return segmentPath(rng, v.Start, v.End)
		case document.KindArrow:
			path := segmentPath(rng, v.Start, v.End)
			angle := math.Atan2(v.End.Y-v.Start.Y, v.End.X-v.Start.X)
			for _, side := range []float64{-math.Pi / 6, math.Pi / 6} {
				head := document.Point{
					X: v.End.X - arrowHeadLen*math.Cos(angle+side),
					Y: v.End.Y - arrowHeadLen*math.Sin(angle+side),
				}
				path = append(path, moveTo(v.End), lineTo(head))
			}
			return path
		}

	case document.PenShape:
		if len(v.Path) == 0 {
			return nil
		}
		path := []PathCommand{moveTo(v.Path[0])}
		for _, p := range v.Path {
			path = append(path, lineTo(p))
		}
		return path
	}
	return nil
}

func rectPath(r Rect) []PathCommand {
	return []PathCommand{
		moveTo(document.Point{X: r.X, Y: r.Y}),
		lineTo(document.Point{X: r.X + r.Width, Y: r.Y}),
		lineTo(document.Point{X: r.X + r.Width, Y: r.Y + r.Height}),
		lineTo(document.Point{X: r.X, Y: r.Y + r.Height}),
		closePath(),
	}
}

// ellipsePath approximates an ellipse with four bezier curves.
func ellipsePath(c document.Point, rx, ry float64) []PathCommand {
	// k = 4 * (sqrt(2) - 1) / 3
	k := 0.5522847498
	kx, ky := rx*k, ry*k
	pt := func(x, y float64) document.Point { return document.Point{X: c.X + x, Y: c.Y + y} }

	return []PathCommand{
		moveTo(pt(rx, 0)),
		cubicTo(pt(rx, ky), pt(kx, ry), pt(0, ry)),
		cubicTo(pt(-kx, ry), pt(-rx, ky), pt(-rx, 0)),
		cubicTo(pt(-rx, -ky), pt(-kx, -ry), pt(0, -ry)),
		cubicTo(pt(kx, -ry), pt(rx, -ky), pt(rx, 0)),
		closePath(),
	}
}

func jitter(rng *rand.Rand, p document.Point, amount float64) document.Point {
	if rng == nil {
		return p
	}
	return p.Add((rng.Float64()-0.5)*amount, (rng.Float64()-0.5)*amount)
}

func polygonPath(rng *rand.Rand, amount float64, pts ...document.Point) []PathCommand {
	path := make([]PathCommand, 0, len(pts)+1)
	for i, p := range pts {
		p = jitter(rng, p, amount)
		if i == 0 {
			path = append(path, moveTo(p))
		} else {
			path = append(path, lineTo(p))
		}
	}
	return append(path, closePath())
}

// segmentPath is a straight segment, or a wobbly polyline stepping every
// roughStep units when rng is set.
func segmentPath(rng *rand.Rand, a, b document.Point) []PathCommand {
	path := []PathCommand{moveTo(a)}
	if rng == nil {
		return append(path, lineTo(b))
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(math.Ceil(math.Hypot(dx, dy) / roughStep))
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		path = append(path, lineTo(jitter(rng, document.Point{X: a.X + dx*t, Y: a.Y + dy*t}, 2)))
	}
	if steps == 0 {
		path = append(path, lineTo(b))
	}
	return path
}

func roughEllipsePath(rng *rand.Rand, c document.Point, rx, ry float64) []PathCommand {
	steps := max(8, int(math.Ceil((rx+ry)/2)))
	path := make([]PathCommand, 0, steps+1)
	for i := 0; i < steps; i++ {
		angle := float64(i) / float64(steps) * 2 * math.Pi
		p := jitter(rng, document.Point{X: c.X + rx*math.Cos(angle), Y: c.Y + ry*math.Sin(angle)}, 1)
		if i == 0 {
			path = append(path, moveTo(p))
		} else {
			path = append(path, lineTo(p))
		}
	}
	return append(path, closePath())
}

// PathSink receives path segments during replay. *gg.Context satisfies it.
type PathSink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
}

// TracePath feeds path to sink with every point mapped through m.
// Malformed segments are skipped.
func TracePath(sink PathSink, path []PathCommand, m Matrix2D) {
	at := func(seg PathCommand, i int) document.Point {
		return m.Apply(document.Point{X: pathFloat(seg[i]), Y: pathFloat(seg[i+1])})
	}
	for _, seg := range path {
		if len(seg) == 0 {
			continue
		}
		op, _ := seg[0].(string)
		switch {
		case op == "M" && len(seg) >= 3:
			p := at(seg, 1)
			sink.MoveTo(p.X, p.Y)
		case op == "L" && len(seg) >= 3:
			p := at(seg, 1)
			sink.LineTo(p.X, p.Y)
		case op == "C" && len(seg) >= 7:
			c1, c2, p := at(seg, 1), at(seg, 3), at(seg, 5)
			sink.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
		case op == "Z":
			sink.ClosePath()
		}
	}
}

// pathFloat reads a numeric path operand.
func pathFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
