package engine

import (
	"math"

	"github.com/inkboard/inkboard/internal/document"
)

// MinShapeSize is the smallest width or height a resize may produce.
const MinShapeSize = 20.0

// Translate shifts every positional field of the shape by (dx, dy).
func Translate(s document.Shape, dx, dy float64) document.Shape {
	switch v := s.(type) {
	case document.BoxShape:
		v.Start = v.Start.Add(dx, dy)
		v.End = v.End.Add(dx, dy)
		return v
	case document.PenShape:
		path := make([]document.Point, len(v.Path))
		for i, p := range v.Path {
			path[i] = p.Add(dx, dy)
		}
		v.Path = path
		return v
	case document.TextShape:
		v.X += dx
		v.Y += dy
		return v
	}
	return s
}

// Resize moves the start/end coordinates controlled by handle by the
// pointer delta from oldP to newP. Edits that would make either side
// shorter than MinShapeSize are rejected whole, returning s unchanged.
// Only box shapes resize.
func Resize(s document.Shape, handle HandleDir, oldP, newP document.Point) document.Shape {
	b, ok := s.(document.BoxShape)
	if !ok {
		return s
	}
	dx := newP.X - oldP.X
	dy := newP.Y - oldP.Y
	start, end := b.Start, b.End

	switch handle {
	case HandleTL:
		start.X += dx
		start.Y += dy
	case HandleTR:
		start.Y += dy
		end.X += dx
	case HandleBL:
		start.X += dx
		end.Y += dy
	case HandleBR:
		end.X += dx
		end.Y += dy
	case HandleT:
		start.Y += dy
	case HandleB:
		end.Y += dy
	case HandleL:
		start.X += dx
	case HandleR:
		end.X += dx
	default:
		return s
	}

	if math.Abs(end.X-start.X) < MinShapeSize || math.Abs(end.Y-start.Y) < MinShapeSize {
		return s
	}
	b.Start, b.End = start, end
	return b
}

// Rotate adds the angle swept by the pointer moving from oldP to newP
// around the shape centre. Pen and text shapes do not rotate.
func Rotate(s document.Shape, oldP, newP document.Point) document.Shape {
	b, ok := s.(document.BoxShape)
	if !ok {
		return s
	}
	c := b.Center()
	oldAngle := math.Atan2(oldP.Y-c.Y, oldP.X-c.X)
	newAngle := math.Atan2(newP.Y-c.Y, newP.X-c.X)
	b.Rotation += newAngle - oldAngle
	return b
}
