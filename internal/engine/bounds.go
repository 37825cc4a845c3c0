package engine

import (
	"math"

	"github.com/inkboard/inkboard/internal/document"
)

// Text layout constants for the 18-unit editor font.
const (
	TextAscent     = 18.0
	TextLineHeight = 20.0
)

// Rect represents an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromPoints returns the normalised rectangle spanned by a and b.
func RectFromPoints(a, b document.Point) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// Contains checks if a point is inside the rect (edges included).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Inset grows the rect by d on every side (shrinks for negative d).
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Center returns the center point of the rect.
func (r Rect) Center() document.Point {
	return document.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// BoundingBox returns the pre-rotation bounds of a shape. Text uses the
// measured width and a fixed line height.
func BoundingBox(s document.Shape, m TextMeasurer) Rect {
	switch v := s.(type) {
	case document.BoxShape:
		return RectFromPoints(v.Start, v.End)
	case document.PenShape:
		if len(v.Path) == 0 {
			return Rect{}
		}
		minX, minY := v.Path[0].X, v.Path[0].Y
		maxX, maxY := minX, minY
		for _, p := range v.Path[1:] {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
		return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	case document.TextShape:
		return Rect{
			X:      v.X,
			Y:      v.Y - TextAscent,
			Width:  measure(m, v.Text),
			Height: TextLineHeight,
		}
	}
	return Rect{}
}
