package engine

import (
	"fmt"

	"github.com/gogpu/gg"
)

// Render draws one frame of scene onto dc. It is a pure function of its
// inputs; the host decides when to call it.
func Render(dc *gg.Context, scene Scene, st ToolSettings) error {
	vp := Viewport{
		Width:      float64(dc.Width()),
		Height:     float64(dc.Height()),
		Background: "#ffffff",
	}
	return RenderCommands(dc, CompileDrawCommands(scene, st, vp, DefaultMeasurer()))
}

// RenderCommands replays a display list onto dc.
func RenderCommands(dc *gg.Context, commands []DrawCommand) error {
	for i, cmd := range commands {
		if err := replay(dc, cmd); err != nil {
			return fmt.Errorf("draw command %d (%s): %w", i, cmd.Op, err)
		}
	}
	return nil
}

func replay(dc *gg.Context, cmd DrawCommand) error {
	switch cmd.Op {
	case OpClear:
		dc.ClearWithColor(gg.Hex(cmd.Fill))
		return nil

	case OpText:
		face := DefaultFace()
		if face == nil || cmd.Text == "" {
			return nil
		}
		dc.SetFont(face)
		setColor(dc, cmd.Fill, cmd.Opacity)
		dc.DrawString(cmd.Text, cmd.X, cmd.Y)
		return nil

	case OpPath:
		dc.Push()
		defer dc.Pop()

		if t := cmd.Transform; len(t) == 6 {
			dc.Transform(gg.Matrix{A: t[0], B: t[2], C: t[4], D: t[1], E: t[3], F: t[5]})
		}
		TracePath(dc, cmd.Path, Identity())

		if cmd.Fill != "" {
			setColor(dc, cmd.Fill, cmd.Opacity)
			if cmd.Stroke == "" {
				return dc.Fill()
			}
			if err := dc.FillPreserve(); err != nil {
				return err
			}
		}
		if cmd.Stroke != "" {
			stroke := gg.DefaultStroke().WithWidth(cmd.StrokeWidth)
			if cmd.RoundJoins {
				stroke = stroke.WithCap(gg.LineCapRound).WithJoin(gg.LineJoinRound)
			}
			if len(cmd.Dash) > 0 {
				stroke = stroke.WithDashPattern(cmd.Dash...)
			}
			dc.SetStroke(stroke)
			setColor(dc, cmd.Stroke, cmd.Opacity)
			return dc.Stroke()
		}
		dc.ClearPath()
		return nil
	}
	return fmt.Errorf("unknown op %q", cmd.Op)
}

func setColor(dc *gg.Context, hex string, opacity float64) {
	c := gg.Hex(hex)
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}
	dc.SetRGBA(c.R, c.G, c.B, c.A*opacity)
}
