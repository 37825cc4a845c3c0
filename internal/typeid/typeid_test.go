package typeid

import (
	"strings"
	"testing"
)

func TestNewDrawingID(t *testing.T) {
	id := NewDrawingID()
	if !strings.HasPrefix(id, PrefixDrawing+"_") {
		t.Fatalf("id %q lacks the drawing prefix", id)
	}
	if err := Validate(id, PrefixDrawing); err != nil {
		t.Fatalf("Validate(%q): %v", id, err)
	}
	if NewDrawingID() == id {
		t.Fatal("ids should be unique")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"drawing", NewDrawingID(), true},
		{"wrong prefix", NewRequestID(), false},
		{"garbage", "drw_not-a-typeid", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id, PrefixDrawing)
			if (err == nil) != tt.ok {
				t.Errorf("Validate(%q) error = %v, want ok=%v", tt.id, err, tt.ok)
			}
		})
	}
}
