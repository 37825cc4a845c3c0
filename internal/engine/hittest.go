package engine

import (
	"math"

	"github.com/inkboard/inkboard/internal/document"
)

// MinStrokeTolerance is the smallest distance from a stroke that still
// counts as a hit, so thin lines stay clickable.
const MinStrokeTolerance = 3.0

func strokeTolerance(lineWidth float64) float64 {
	return max(lineWidth/2, MinStrokeTolerance)
}

// HitTest reports whether p hits the shape. Area shapes hit anywhere inside
// their outline whether or not they are filled; lines, arrows and pen
// strokes hit near the stroke; text hits inside its bounding box.
func HitTest(s document.Shape, p document.Point, m TextMeasurer) bool {
	switch v := s.(type) {
	case document.BoxShape:
		local := shapeTransform(v).Invert().Apply(p)
		if v.Kind.IsArea() {
			return hitArea(v, local)
		}
		return distToSegment(local, v.Start, v.End) <= strokeTolerance(v.LineWidth)

	case document.PenShape:
		tol := strokeTolerance(v.LineWidth)
		if len(v.Path) == 1 {
			return dist(p, v.Path[0]) <= tol
		}
		for i := 1; i < len(v.Path); i++ {
			if distToSegment(p, v.Path[i-1], v.Path[i]) <= tol {
				return true
			}
		}
		return false

	case document.TextShape:
		r := BoundingBox(v, m)
		return r.Contains(p.X, p.Y)
	}
	return false
}

func hitArea(s document.BoxShape, p document.Point) bool {
	r := RectFromPoints(s.Start, s.End)
	switch s.Kind {
	case document.KindRect:
		return r.Contains(p.X, p.Y)
	case document.KindEllipse, document.KindDiamond:
		rx, ry := r.Width/2, r.Height/2
		if rx == 0 || ry == 0 {
			return false
		}
		c := r.Center()
		dx := (p.X - c.X) / rx
		dy := (p.Y - c.Y) / ry
		if s.Kind == document.KindEllipse {
			return dx*dx+dy*dy <= 1
		}
		return math.Abs(dx)+math.Abs(dy) <= 1
	}
	return false
}

// HitTestTopmost returns the index of the topmost (last) shape hit by p.
func HitTestTopmost(shapes []document.Shape, p document.Point, m TextMeasurer) (int, bool) {
	for i := len(shapes) - 1; i >= 0; i-- {
		if HitTest(shapes[i], p, m) {
			return i, true
		}
	}
	return -1, false
}

// TopmostTextAt is HitTestTopmost restricted to text shapes.
func TopmostTextAt(shapes []document.Shape, p document.Point, m TextMeasurer) (int, bool) {
	for i := len(shapes) - 1; i >= 0; i-- {
		if t, ok := shapes[i].(document.TextShape); ok && HitTest(t, p, m) {
			return i, true
		}
	}
	return -1, false
}

func dist(a, b document.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// distToSegment returns the distance from p to the segment ab.
func distToSegment(p, a, b document.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return dist(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = max(0, min(1, t))
	return dist(p, document.Point{X: a.X + t*dx, Y: a.Y + t*dy})
}
