package document

import "testing"

func TestPenCloneIsDeep(t *testing.T) {
	orig := PenShape{ID: 1, Path: []Point{{X: 0, Y: 0}, {X: 5, Y: 5}}}
	c := orig.Clone().(PenShape)
	c.Path[0].X = 99

	if orig.Path[0].X != 0 {
		t.Fatal("clone shares path storage with the original")
	}
}

func TestWithIDCopiesPath(t *testing.T) {
	orig := PenShape{ID: 1, Path: []Point{{X: 1, Y: 1}}}
	dup := orig.WithID(7).(PenShape)
	dup.Path[0].Y = 42

	if dup.ID != 7 {
		t.Errorf("id = %d, want 7", dup.ID)
	}
	if orig.Path[0].Y != 1 {
		t.Error("WithID shares path storage with the original")
	}
}

func TestMaxIDAndIndexOf(t *testing.T) {
	shapes := NewSampleDrawing()
	if got := MaxID(shapes); got != 7 {
		t.Errorf("MaxID = %d, want 7", got)
	}
	if got := IndexOf(shapes, 3); got != 2 {
		t.Errorf("IndexOf(3) = %d, want 2", got)
	}
	if got := IndexOf(shapes, 99); got != -1 {
		t.Errorf("IndexOf(99) = %d, want -1", got)
	}
	if got := MaxID(nil); got != 0 {
		t.Errorf("MaxID(nil) = %d, want 0", got)
	}
}

func TestKindClassification(t *testing.T) {
	tests := []struct {
		kind Kind
		box  bool
		area bool
	}{
		{KindRect, true, true},
		{KindEllipse, true, true},
		{KindDiamond, true, true},
		{KindLine, true, false},
		{KindArrow, true, false},
		{KindPen, false, false},
		{KindText, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if tt.kind.IsBox() != tt.box {
				t.Errorf("IsBox = %v, want %v", tt.kind.IsBox(), tt.box)
			}
			if tt.kind.IsArea() != tt.area {
				t.Errorf("IsArea = %v, want %v", tt.kind.IsArea(), tt.area)
			}
		})
	}
}
