package engine

import (
	"math"

	"github.com/inkboard/inkboard/internal/document"
)

// Tolerances used when reporting grid proximity for snap guides.
const (
	SnapGuideTolerance = 8.0
	GridLineTolerance  = 5.0
)

// snapValue rounds v to the nearest multiple of g, with exact halves
// rounding up (towards +Inf), so 10 on a 20 grid becomes 20.
func snapValue(v, g float64) float64 {
	return math.Floor(v/g+0.5) * g
}

// SnapPoint rounds each coordinate to the nearest grid multiple.
// gridSize <= 0 leaves the point unchanged.
func SnapPoint(p document.Point, gridSize float64) document.Point {
	if gridSize <= 0 {
		return p
	}
	return document.Point{X: snapValue(p.X, gridSize), Y: snapValue(p.Y, gridSize)}
}

// SnapShape snaps every positional field of the shape.
func SnapShape(s document.Shape, gridSize float64) document.Shape {
	if gridSize <= 0 {
		return s
	}
	switch v := s.(type) {
	case document.BoxShape:
		v.Start = SnapPoint(v.Start, gridSize)
		v.End = SnapPoint(v.End, gridSize)
		return v
	case document.PenShape:
		path := make([]document.Point, len(v.Path))
		for i, p := range v.Path {
			path[i] = SnapPoint(p, gridSize)
		}
		v.Path = path
		return v
	case document.TextShape:
		o := SnapPoint(v.Origin(), gridSize)
		v.X, v.Y = o.X, o.Y
		return v
	}
	return s
}

// GridHit describes how close a point is to the nearest grid lines.
type GridHit struct {
	Snapped document.Point `json:"snappedPoint"`
	NearX   bool           `json:"isNearX"`
	NearY   bool           `json:"isNearY"`
	DistX   float64        `json:"distX"`
	DistY   float64        `json:"distY"`
}

// Near reports whether either axis is within tolerance of a grid line.
func (h GridHit) Near() bool {
	return h.NearX || h.NearY
}

// GridProximity snaps p and reports per-axis distance to the snapped
// intersection. ok is false when there is no grid.
func GridProximity(p document.Point, gridSize, tolerance float64) (hit GridHit, ok bool) {
	if gridSize <= 0 {
		return GridHit{}, false
	}
	snapped := SnapPoint(p, gridSize)
	dx := math.Abs(p.X - snapped.X)
	dy := math.Abs(p.Y - snapped.Y)
	return GridHit{
		Snapped: snapped,
		NearX:   dx <= tolerance,
		NearY:   dy <= tolerance,
		DistX:   dx,
		DistY:   dy,
	}, true
}

// NearGridLine reports whether p lies within tolerance of any grid line.
func NearGridLine(p document.Point, gridSize, tolerance float64) bool {
	hit, ok := GridProximity(p, gridSize, tolerance)
	return ok && hit.Near()
}
