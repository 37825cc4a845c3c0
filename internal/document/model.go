package document

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p shifted by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

type Kind string

const (
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindDiamond Kind = "diamond"
	KindLine    Kind = "line"
	KindArrow   Kind = "arrow"
	KindPen     Kind = "pen"
	KindText    Kind = "text"
)

// IsBox reports whether shapes of this kind are defined by a start/end pair.
func (k Kind) IsBox() bool {
	switch k {
	case KindRect, KindEllipse, KindDiamond, KindLine, KindArrow:
		return true
	}
	return false
}

// IsArea reports whether the kind encloses a region (as opposed to a stroke).
func (k Kind) IsArea() bool {
	return k == KindRect || k == KindEllipse || k == KindDiamond
}

type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
)

// Valid reports whether the line style is one the renderer understands.
func (s LineStyle) Valid() bool {
	return s == LineSolid || s == LineDashed || s == LineDotted
}

// Shape is one drawable primitive. The set of implementations is closed:
// BoxShape, PenShape and TextShape.
type Shape interface {
	ShapeID() int64
	ShapeKind() Kind
	// WithID returns a deep copy of the shape carrying the given id.
	WithID(id int64) Shape
	// Clone returns a deep copy of the shape.
	Clone() Shape
	sealed()
}

// BoxShape covers rect, ellipse, diamond, line and arrow. Start and End
// define the pre-rotation rectangle in any orientation.
type BoxShape struct {
	ID          int64
	Kind        Kind
	Start       Point
	End         Point
	Color       string
	FillColor   string
	IsFilled    bool
	LineWidth   float64
	LineStyle   LineStyle
	IsRoughMode bool
	Rotation    float64 // radians about the centre
}

func (s BoxShape) ShapeID() int64  { return s.ID }
func (s BoxShape) ShapeKind() Kind { return s.Kind }
func (s BoxShape) Clone() Shape    { return s }
func (BoxShape) sealed()           {}

func (s BoxShape) WithID(id int64) Shape {
	s.ID = id
	return s
}

// Center is the midpoint of Start and End, the pivot for rotation.
func (s BoxShape) Center() Point {
	return Point{X: (s.Start.X + s.End.X) / 2, Y: (s.Start.Y + s.End.Y) / 2}
}

// PenShape is a freehand stroke.
type PenShape struct {
	ID          int64
	Path        []Point
	Color       string
	LineWidth   float64
	LineStyle   LineStyle
	IsRoughMode bool
}

func (s PenShape) ShapeID() int64  { return s.ID }
func (s PenShape) ShapeKind() Kind { return KindPen }
func (PenShape) sealed()           {}

func (s PenShape) Clone() Shape {
	s.Path = append([]Point(nil), s.Path...)
	return s
}

func (s PenShape) WithID(id int64) Shape {
	c := s.Clone().(PenShape)
	c.ID = id
	return c
}

// TextShape is a single line of text. X, Y is the left end of the baseline.
type TextShape struct {
	ID        int64
	X         float64
	Y         float64
	Text      string
	Color     string
	LineWidth float64
}

func (s TextShape) ShapeID() int64  { return s.ID }
func (s TextShape) ShapeKind() Kind { return KindText }
func (s TextShape) Clone() Shape    { return s }
func (TextShape) sealed()           {}

func (s TextShape) WithID(id int64) Shape {
	s.ID = id
	return s
}

// Origin returns the baseline origin as a point.
func (s TextShape) Origin() Point {
	return Point{X: s.X, Y: s.Y}
}

// CloneShapes deep-copies a shape list.
func CloneShapes(shapes []Shape) []Shape {
	if shapes == nil {
		return nil
	}
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}

// IndexOf returns the index of the shape with the given id, or -1.
func IndexOf(shapes []Shape, id int64) int {
	for i, s := range shapes {
		if s.ShapeID() == id {
			return i
		}
	}
	return -1
}

// MaxID returns the largest id in the list, or 0 for an empty list.
func MaxID(shapes []Shape) int64 {
	var m int64
	for _, s := range shapes {
		if s.ShapeID() > m {
			m = s.ShapeID()
		}
	}
	return m
}
