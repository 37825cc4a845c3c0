package document

// NewSampleDrawing returns the built-in playground drawing: one of each
// shape kind laid out on a 20-unit grid.
func NewSampleDrawing() []Shape {
	return []Shape{
		BoxShape{
			ID:        1,
			Kind:      KindRect,
			Start:     Point{X: 60, Y: 60},
			End:       Point{X: 260, Y: 180},
			Color:     "#1e1e1e",
			FillColor: "#a5d8ff",
			IsFilled:  true,
			LineWidth: 2,
			LineStyle: LineSolid,
		},
		BoxShape{
			ID:        2,
			Kind:      KindEllipse,
			Start:     Point{X: 320, Y: 60},
			End:       Point{X: 480, Y: 180},
			Color:     "#e03131",
			FillColor: "#ffffff",
			LineWidth: 3,
			LineStyle: LineDashed,
		},
		BoxShape{
			ID:          3,
			Kind:        KindDiamond,
			Start:       Point{X: 540, Y: 60},
			End:         Point{X: 680, Y: 200},
			Color:       "#2f9e44",
			FillColor:   "#b2f2bb",
			IsFilled:    true,
			LineWidth:   2,
			LineStyle:   LineSolid,
			IsRoughMode: true,
		},
		BoxShape{
			ID:        4,
			Kind:      KindArrow,
			Start:     Point{X: 260, Y: 120},
			End:       Point{X: 320, Y: 120},
			Color:     "#000000",
			FillColor: "#ffffff",
			LineWidth: 2,
			LineStyle: LineSolid,
		},
		BoxShape{
			ID:        5,
			Kind:      KindLine,
			Start:     Point{X: 60, Y: 260},
			End:       Point{X: 680, Y: 260},
			Color:     "#868e96",
			FillColor: "#ffffff",
			LineWidth: 1,
			LineStyle: LineDotted,
		},
		PenShape{
			ID: 6,
			Path: []Point{
				{X: 80, Y: 340}, {X: 100, Y: 320}, {X: 120, Y: 340},
				{X: 140, Y: 320}, {X: 160, Y: 340}, {X: 180, Y: 320},
			},
			Color:     "#1971c2",
			LineWidth: 4,
			LineStyle: LineSolid,
		},
		TextShape{
			ID:        7,
			X:         320,
			Y:         340,
			Text:      "Hello, whiteboard",
			Color:     "#000000",
			LineWidth: 2,
		},
	}
}
