package engine

import (
	"math"
	"reflect"
	"testing"

	"github.com/inkboard/inkboard/internal/document"
)

func TestResizeHandlesLayout(t *testing.T) {
	handles := ResizeHandles(Rect{X: 10, Y: 20, Width: 100, Height: 50})
	want := map[HandleDir]document.Point{
		HandleTL:     pt(6, 16),
		HandleTR:     pt(114, 16),
		HandleBL:     pt(6, 74),
		HandleBR:     pt(114, 74),
		HandleT:      pt(60, 16),
		HandleB:      pt(60, 74),
		HandleL:      pt(6, 45),
		HandleR:      pt(114, 45),
		HandleRotate: pt(60, -10),
	}
	if len(handles) != len(want) {
		t.Fatalf("got %d handles, want %d", len(handles), len(want))
	}
	for _, h := range handles {
		if h.At != want[h.Dir] {
			t.Errorf("%s at %v, want %v", h.Dir, h.At, want[h.Dir])
		}
	}
}

func TestHandleAt(t *testing.T) {
	bbox := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	tests := []struct {
		p    document.Point
		want HandleDir
		ok   bool
	}{
		{pt(-4, -4), HandleTL, true},
		{pt(103, 103), HandleBR, true},
		{pt(50, -30), HandleRotate, true},
		{pt(50, -38), HandleRotate, true},
		{pt(112, 50), HandleR, true},
		{pt(50, 50), "", false},
		{pt(50, -50), "", false},
	}
	for _, tt := range tests {
		h, ok := HandleAt(tt.p, bbox, HandleHitRadius)
		if ok != tt.ok || h.Dir != tt.want {
			t.Errorf("HandleAt(%v) = %s/%v, want %s/%v", tt.p, h.Dir, ok, tt.want, tt.ok)
		}
	}
}

func TestTranslate(t *testing.T) {
	b := Translate(box(1, document.KindLine, 0, 0, 10, 10), 5, -5).(document.BoxShape)
	if b.Start != pt(5, -5) || b.End != pt(15, 5) {
		t.Errorf("box moved to %v-%v", b.Start, b.End)
	}

	orig := document.PenShape{Path: []document.Point{pt(0, 0), pt(5, 5)}}
	p := Translate(orig, 15, 15).(document.PenShape)
	if !reflect.DeepEqual(p.Path, []document.Point{pt(15, 15), pt(20, 20)}) {
		t.Errorf("pen path = %v", p.Path)
	}
	if orig.Path[0] != pt(0, 0) {
		t.Error("Translate mutated the input path")
	}

	tx := Translate(document.TextShape{X: 1, Y: 2}, 3, 4).(document.TextShape)
	if tx.X != 4 || tx.Y != 6 {
		t.Errorf("text moved to %v,%v", tx.X, tx.Y)
	}
}

func TestResizePerHandle(t *testing.T) {
	base := box(1, document.KindRect, 0, 0, 100, 100)
	tests := []struct {
		dir        HandleDir
		start, end document.Point
	}{
		{HandleTL, pt(10, 20), pt(100, 100)},
		{HandleTR, pt(0, 20), pt(110, 100)},
		{HandleBL, pt(10, 0), pt(100, 120)},
		{HandleBR, pt(0, 0), pt(110, 120)},
		{HandleT, pt(0, 20), pt(100, 100)},
		{HandleB, pt(0, 0), pt(100, 120)},
		{HandleL, pt(10, 0), pt(100, 100)},
		{HandleR, pt(0, 0), pt(110, 100)},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			got := Resize(base, tt.dir, pt(0, 0), pt(10, 20)).(document.BoxShape)
			if got.Start != tt.start || got.End != tt.end {
				t.Errorf("got %v-%v, want %v-%v", got.Start, got.End, tt.start, tt.end)
			}
		})
	}
}

func TestResizeRejectsBelowMinimum(t *testing.T) {
	base := box(1, document.KindRect, 0, 0, 100, 100)

	// Width would be 15; the valid height change must be dropped too.
	got := Resize(base, HandleBR, pt(100, 100), pt(15, 150))
	if !reflect.DeepEqual(got, document.Shape(base)) {
		t.Errorf("expected unchanged shape, got %+v", got)
	}

	got = Resize(base, HandleT, pt(0, 0), pt(0, 85))
	if !reflect.DeepEqual(got, document.Shape(base)) {
		t.Errorf("expected unchanged shape, got %+v", got)
	}

	// Exactly the minimum is allowed.
	ok := Resize(base, HandleR, pt(0, 0), pt(-80, 0)).(document.BoxShape)
	if ok.End.X != 20 {
		t.Errorf("end.x = %v, want 20", ok.End.X)
	}
}

func TestResizeNeverProducesSmallShapes(t *testing.T) {
	base := box(1, document.KindRect, 0, 0, 60, 60)
	dirs := []HandleDir{HandleTL, HandleTR, HandleBL, HandleBR, HandleT, HandleB, HandleL, HandleR}
	for _, dir := range dirs {
		for d := -120.0; d <= 120; d += 7 {
			s := Resize(base, dir, pt(0, 0), pt(d, -d)).(document.BoxShape)
			w := math.Abs(s.End.X - s.Start.X)
			h := math.Abs(s.End.Y - s.Start.Y)
			if w < MinShapeSize || h < MinShapeSize {
				t.Fatalf("%s delta %v produced %vx%v", dir, d, w, h)
			}
		}
	}
}

func TestResizeIgnoresPenAndText(t *testing.T) {
	pen := document.PenShape{ID: 1, Path: []document.Point{pt(0, 0), pt(50, 50)}}
	if got := Resize(pen, HandleBR, pt(0, 0), pt(10, 10)); !reflect.DeepEqual(got, document.Shape(pen)) {
		t.Errorf("pen changed: %+v", got)
	}
	text := document.TextShape{ID: 2, X: 1, Y: 1, Text: "x"}
	if got := Resize(text, HandleBR, pt(0, 0), pt(10, 10)); got != document.Shape(text) {
		t.Errorf("text changed: %+v", got)
	}
}

func TestRotateAccumulates(t *testing.T) {
	base := box(1, document.KindRect, -50, -50, 50, 50) // centre at origin

	a := pt(100, 0)
	b := pt(100*math.Cos(0.3), 100*math.Sin(0.3))
	c := pt(100*math.Cos(0.75), 100*math.Sin(0.75))

	step := Rotate(Rotate(base, a, b), b, c).(document.BoxShape)
	if math.Abs(step.Rotation-0.75) > 1e-9 {
		t.Errorf("rotation = %v, want 0.75", step.Rotation)
	}

	// Same two deltas applied in the other order.
	d := pt(100*math.Cos(0.45), 100*math.Sin(0.45))
	other := Rotate(Rotate(base, a, d), d, c).(document.BoxShape)
	if math.Abs(other.Rotation-step.Rotation) > 1e-9 {
		t.Errorf("order dependent: %v vs %v", other.Rotation, step.Rotation)
	}

	if step.Start != base.Start || step.End != base.End {
		t.Error("rotation moved the endpoints")
	}
}

func TestRotateIgnoresPen(t *testing.T) {
	pen := document.PenShape{ID: 1, Path: []document.Point{pt(0, 0)}}
	if got := Rotate(pen, pt(1, 0), pt(0, 1)); !reflect.DeepEqual(got, document.Shape(pen)) {
		t.Errorf("pen changed: %+v", got)
	}
}
