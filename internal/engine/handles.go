package engine

import "github.com/inkboard/inkboard/internal/document"

// HandleDir tags a selection handle with the edit it performs.
type HandleDir string

const (
	HandleTL     HandleDir = "TL"
	HandleTR     HandleDir = "TR"
	HandleBL     HandleDir = "BL"
	HandleBR     HandleDir = "BR"
	HandleT      HandleDir = "T"
	HandleB      HandleDir = "B"
	HandleL      HandleDir = "L"
	HandleR      HandleDir = "R"
	HandleRotate HandleDir = "ROT"
)

const (
	// HandleSize is the drawn size of a resize handle. Hit positions sit
	// half a handle outside the box.
	HandleSize = 8.0
	// RotateHandleOffset is the distance of the rotate knob above the box.
	RotateHandleOffset = 30.0
	// HandleHitRadius is the default radius for HandleAt.
	HandleHitRadius = 10.0
)

// Handle is one control point of the selection box.
type Handle struct {
	Dir HandleDir      `json:"dir"`
	At  document.Point `json:"at"`
}

// IsRotate reports whether the handle is the rotate knob.
func (h Handle) IsRotate() bool {
	return h.Dir == HandleRotate
}

// ResizeHandles returns the nine handles for bbox, in hit-test order:
// corners, edge midpoints, then the rotate knob.
func ResizeHandles(bbox Rect) []Handle {
	x, y, w, h := bbox.X, bbox.Y, bbox.Width, bbox.Height
	o := HandleSize / 2
	return []Handle{
		{HandleTL, document.Point{X: x - o, Y: y - o}},
		{HandleTR, document.Point{X: x + w + o, Y: y - o}},
		{HandleBL, document.Point{X: x - o, Y: y + h + o}},
		{HandleBR, document.Point{X: x + w + o, Y: y + h + o}},
		{HandleT, document.Point{X: x + w/2, Y: y - o}},
		{HandleB, document.Point{X: x + w/2, Y: y + h + o}},
		{HandleL, document.Point{X: x - o, Y: y + h/2}},
		{HandleR, document.Point{X: x + w + o, Y: y + h/2}},
		{HandleRotate, document.Point{X: x + w/2, Y: y - RotateHandleOffset}},
	}
}

// HandleAt returns the first handle whose centre is within radius of p.
func HandleAt(p document.Point, bbox Rect, radius float64) (Handle, bool) {
	r2 := radius * radius
	for _, h := range ResizeHandles(bbox) {
		dx, dy := p.X-h.At.X, p.Y-h.At.Y
		if dx*dx+dy*dy <= r2 {
			return h, true
		}
	}
	return Handle{}, false
}
