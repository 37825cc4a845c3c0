package engine

import "github.com/inkboard/inkboard/internal/document"

type Tool string

const (
	ToolPen     Tool = "pen"
	ToolLine    Tool = "line"
	ToolRect    Tool = "rect"
	ToolEllipse Tool = "ellipse"
	ToolDiamond Tool = "diamond"
	ToolArrow   Tool = "arrow"
	ToolText    Tool = "text"
	ToolNone    Tool = "none"
)

// boxKind maps a shape-creating tool to the kind it draws.
func (t Tool) boxKind() (document.Kind, bool) {
	k := document.Kind(t)
	return k, k.IsBox()
}

// ToolSettings is the per-event style and tool configuration supplied by
// the host. The editor only reads it.
type ToolSettings struct {
	Tool        Tool               `json:"tool"`
	Color       string             `json:"color"`
	FillColor   string             `json:"fillColor"`
	LineWidth   float64            `json:"lineWidth"`
	IsFilled    bool               `json:"isFilled"`
	LineStyle   document.LineStyle `json:"lineStyle"`
	IsRoughMode bool               `json:"isRoughMode"`
	SnapToGrid  bool               `json:"snapToGrid"`
	GridSize    float64            `json:"gridSize"`
	ShowGrid    bool               `json:"showGrid"`
}

// DefaultToolSettings returns the settings a fresh canvas starts with.
func DefaultToolSettings() ToolSettings {
	return ToolSettings{
		Tool:      ToolPen,
		Color:     document.DefaultColor,
		FillColor: document.DefaultFillColor,
		LineWidth: document.DefaultLineWidth,
		LineStyle: document.LineSolid,
		GridSize:  20,
	}
}

// snapGrid returns the grid size to snap to, or 0 when snapping is off.
func (s ToolSettings) snapGrid() float64 {
	if !s.SnapToGrid || s.GridSize <= 0 {
		return 0
	}
	return s.GridSize
}

func (s ToolSettings) lineWidth() float64 {
	if s.LineWidth <= 0 {
		return document.DefaultLineWidth
	}
	return s.LineWidth
}

func (s ToolSettings) lineStyle() document.LineStyle {
	if !s.LineStyle.Valid() {
		return document.LineSolid
	}
	return s.LineStyle
}

func (s ToolSettings) color() string {
	if s.Color == "" {
		return document.DefaultColor
	}
	return s.Color
}

func (s ToolSettings) fillColor() string {
	if s.FillColor == "" {
		return document.DefaultFillColor
	}
	return s.FillColor
}
