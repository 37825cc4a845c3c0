package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

const (
	DefaultColor     = "#000000"
	DefaultFillColor = "#ffffff"
	DefaultLineWidth = 2
)

var (
	ErrUnknownKind  = errors.New("unknown shape type")
	ErrMissingField = errors.New("missing required field")
	ErrDuplicateID  = errors.New("duplicate shape id")
)

// Shapes is an ordered shape list with a lenient JSON decoder: records that
// fail validation are dropped with a warning instead of failing the whole
// list.
type Shapes []Shape

func (s Shapes) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Shape(s))
}

func (s *Shapes) UnmarshalJSON(data []byte) error {
	shapes, err := DecodeShapes(data)
	if shapes == nil && err != nil {
		return err
	}
	if err != nil {
		slog.Warn("skipped malformed shape records", "error", err)
	}
	*s = shapes
	return nil
}

// wireShape is the union of every variant's fields. Pointer fields let the
// decoder tell a missing value from a zero one.
type wireShape struct {
	ID          *int64    `json:"id"`
	Type        Kind      `json:"type"`
	Start       *Point    `json:"start,omitempty"`
	End         *Point    `json:"end,omitempty"`
	Path        []Point   `json:"path,omitempty"`
	X           *float64  `json:"x,omitempty"`
	Y           *float64  `json:"y,omitempty"`
	Text        *string   `json:"text,omitempty"`
	Color       string    `json:"color,omitempty"`
	FillColor   string    `json:"fillColor,omitempty"`
	IsFilled    bool      `json:"isFilled,omitempty"`
	LineWidth   float64   `json:"lineWidth,omitempty"`
	LineStyle   LineStyle `json:"lineStyle,omitempty"`
	IsRoughMode bool      `json:"isRoughMode,omitempty"`
	Rotation    float64   `json:"rotation,omitempty"`
}

type boxRecord struct {
	ID          int64     `json:"id"`
	Type        Kind      `json:"type"`
	Start       Point     `json:"start"`
	End         Point     `json:"end"`
	Color       string    `json:"color"`
	FillColor   string    `json:"fillColor"`
	IsFilled    bool      `json:"isFilled"`
	LineWidth   float64   `json:"lineWidth"`
	LineStyle   LineStyle `json:"lineStyle"`
	IsRoughMode bool      `json:"isRoughMode"`
	Rotation    float64   `json:"rotation"`
}

type penRecord struct {
	ID          int64     `json:"id"`
	Type        Kind      `json:"type"`
	Path        []Point   `json:"path"`
	Color       string    `json:"color"`
	LineWidth   float64   `json:"lineWidth"`
	LineStyle   LineStyle `json:"lineStyle"`
	IsRoughMode bool      `json:"isRoughMode"`
}

type textRecord struct {
	ID        int64   `json:"id"`
	Type      Kind    `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Text      string  `json:"text"`
	Color     string  `json:"color"`
	LineWidth float64 `json:"lineWidth"`
}

func (s BoxShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(boxRecord{
		ID:          s.ID,
		Type:        s.Kind,
		Start:       s.Start,
		End:         s.End,
		Color:       s.Color,
		FillColor:   s.FillColor,
		IsFilled:    s.IsFilled,
		LineWidth:   s.LineWidth,
		LineStyle:   s.LineStyle,
		IsRoughMode: s.IsRoughMode,
		Rotation:    s.Rotation,
	})
}

func (s PenShape) MarshalJSON() ([]byte, error) {
	path := s.Path
	if path == nil {
		path = []Point{}
	}
	return json.Marshal(penRecord{
		ID:          s.ID,
		Type:        KindPen,
		Path:        path,
		Color:       s.Color,
		LineWidth:   s.LineWidth,
		LineStyle:   s.LineStyle,
		IsRoughMode: s.IsRoughMode,
	})
}

func (s TextShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(textRecord{
		ID:        s.ID,
		Type:      KindText,
		X:         s.X,
		Y:         s.Y,
		Text:      s.Text,
		Color:     s.Color,
		LineWidth: s.LineWidth,
	})
}

// MarshalShapes is the canonical serialisation of a shape list. History
// compares snapshots by these bytes.
func MarshalShapes(shapes []Shape) ([]byte, error) {
	return Shapes(shapes).MarshalJSON()
}

// DecodeShape validates and decodes a single shape record.
func DecodeShape(data []byte) (Shape, error) {
	var w wireShape
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode shape: %w", err)
	}
	if w.ID == nil {
		return nil, fmt.Errorf("%w: id", ErrMissingField)
	}

	color := w.Color
	if color == "" {
		color = DefaultColor
	}
	lineWidth := w.LineWidth
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	lineStyle := w.LineStyle
	if !lineStyle.Valid() {
		lineStyle = LineSolid
	}

	switch {
	case w.Type.IsBox():
		if w.Start == nil {
			return nil, fmt.Errorf("%w: %s %d start", ErrMissingField, w.Type, *w.ID)
		}
		if w.End == nil {
			return nil, fmt.Errorf("%w: %s %d end", ErrMissingField, w.Type, *w.ID)
		}
		fill := w.FillColor
		if fill == "" {
			fill = DefaultFillColor
		}
		return BoxShape{
			ID:          *w.ID,
			Kind:        w.Type,
			Start:       *w.Start,
			End:         *w.End,
			Color:       color,
			FillColor:   fill,
			IsFilled:    w.IsFilled,
			LineWidth:   lineWidth,
			LineStyle:   lineStyle,
			IsRoughMode: w.IsRoughMode,
			Rotation:    w.Rotation,
		}, nil

	case w.Type == KindPen:
		if len(w.Path) == 0 {
			return nil, fmt.Errorf("%w: pen %d path", ErrMissingField, *w.ID)
		}
		return PenShape{
			ID:          *w.ID,
			Path:        w.Path,
			Color:       color,
			LineWidth:   lineWidth,
			LineStyle:   lineStyle,
			IsRoughMode: w.IsRoughMode,
		}, nil

	case w.Type == KindText:
		if w.X == nil || w.Y == nil {
			return nil, fmt.Errorf("%w: text %d origin", ErrMissingField, *w.ID)
		}
		var text string
		if w.Text != nil {
			text = *w.Text
		}
		return TextShape{
			ID:        *w.ID,
			X:         *w.X,
			Y:         *w.Y,
			Text:      text,
			Color:     color,
			LineWidth: lineWidth,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, w.Type)
}

// DecodeShapes decodes a JSON array of shape records. Invalid records are
// skipped; the returned error joins one entry per skipped record and is nil
// when every record decoded. A non-array payload returns a nil list.
func DecodeShapes(data []byte) ([]Shape, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode shape list: %w", err)
	}

	shapes := make([]Shape, 0, len(raws))
	seen := make(map[int64]bool, len(raws))
	var errs []error
	for i, raw := range raws {
		s, err := DecodeShape(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if seen[s.ShapeID()] {
			errs = append(errs, fmt.Errorf("record %d: %w: %d", i, ErrDuplicateID, s.ShapeID()))
			continue
		}
		seen[s.ShapeID()] = true
		shapes = append(shapes, s)
	}

	return shapes, errors.Join(errs...)
}
