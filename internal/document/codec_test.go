package document

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeShapesSkipsMalformedRecords(t *testing.T) {
	data := []byte(`[
		{"id":1,"type":"rect","start":{"x":0,"y":0},"end":{"x":40,"y":40},"color":"#ff0000","lineWidth":3},
		{"id":2,"type":"hexagon","start":{"x":0,"y":0},"end":{"x":1,"y":1}},
		{"id":3,"type":"rect","start":{"x":0,"y":0}},
		{"type":"text","x":1,"y":2,"text":"no id"},
		{"id":1,"type":"text","x":1,"y":2,"text":"dup"},
		{"id":4,"type":"pen","path":[{"x":1,"y":1},{"x":2,"y":3}]},
		{"id":5,"type":"text","x":10,"y":30,"text":"hi"}
	]`)

	shapes, err := DecodeShapes(data)
	if err == nil {
		t.Fatal("expected an error describing skipped records")
	}
	if !errors.Is(err, ErrUnknownKind) || !errors.Is(err, ErrMissingField) || !errors.Is(err, ErrDuplicateID) {
		t.Errorf("joined error missing a cause: %v", err)
	}

	if len(shapes) != 3 {
		t.Fatalf("got %d shapes, want 3", len(shapes))
	}
	wantIDs := []int64{1, 4, 5}
	for i, id := range wantIDs {
		if shapes[i].ShapeID() != id {
			t.Errorf("shape %d id = %d, want %d", i, shapes[i].ShapeID(), id)
		}
	}

	rect := shapes[0].(BoxShape)
	if rect.Color != "#ff0000" || rect.LineWidth != 3 || rect.LineStyle != LineSolid {
		t.Errorf("rect style not decoded: %+v", rect)
	}
	pen := shapes[1].(PenShape)
	if pen.LineWidth != DefaultLineWidth || pen.Color != DefaultColor {
		t.Errorf("pen defaults not applied: %+v", pen)
	}
}

func TestDecodeShapesRejectsNonArray(t *testing.T) {
	shapes, err := DecodeShapes([]byte(`{"id":1}`))
	if err == nil || shapes != nil {
		t.Fatalf("got %v, %v; want nil list and error", shapes, err)
	}
}

func TestDecodeShapesEmptyPath(t *testing.T) {
	_, err := DecodeShape([]byte(`{"id":9,"type":"pen","path":[]}`))
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("err = %v, want ErrMissingField", err)
	}
}

func TestMarshalShapesFieldNames(t *testing.T) {
	data, err := MarshalShapes([]Shape{
		BoxShape{ID: 1, Kind: KindArrow, Start: Point{X: 1, Y: 2}, End: Point{X: 3, Y: 4}, LineStyle: LineDashed, Rotation: 0.5},
		TextShape{ID: 2, X: 5, Y: 6, Text: "a"},
	})
	if err != nil {
		t.Fatal(err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatal(err)
	}
	box := records[0]
	for _, key := range []string{"id", "type", "start", "end", "color", "fillColor", "isFilled", "lineWidth", "lineStyle", "isRoughMode", "rotation"} {
		if _, ok := box[key]; !ok {
			t.Errorf("box record missing %q", key)
		}
	}
	if box["type"] != "arrow" {
		t.Errorf("type = %v, want arrow", box["type"])
	}
	text := records[1]
	if _, ok := text["start"]; ok {
		t.Error("text record should not carry start")
	}
	if text["text"] != "a" {
		t.Errorf("text = %v", text["text"])
	}
}

func TestShapesRoundTripPreservesOrderAndIDs(t *testing.T) {
	in := Shapes(NewSampleDrawing())
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	var out Shapes
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d shapes, want %d", len(out), len(in))
	}
	for i := range in {
		if in[i].ShapeID() != out[i].ShapeID() || in[i].ShapeKind() != out[i].ShapeKind() {
			t.Errorf("shape %d: got %d/%s, want %d/%s", i, out[i].ShapeID(), out[i].ShapeKind(), in[i].ShapeID(), in[i].ShapeKind())
		}
	}
}

func TestNilShapesMarshalAsEmptyArray(t *testing.T) {
	data, err := MarshalShapes(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("got %s, want []", data)
	}
}
