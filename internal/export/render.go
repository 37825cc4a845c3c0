package export

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/inkboard/inkboard/internal/document"
	"github.com/inkboard/inkboard/internal/engine"
)

// Options sizes the export surface. Shapes outside it are cropped.
type Options struct {
	Width      int
	Height     int
	Background string
	ShowGrid   bool
	GridSize   float64
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1600
	}
	if o.Height <= 0 {
		o.Height = 1000
	}
	if o.Background == "" {
		o.Background = "#ffffff"
	}
	if o.GridSize <= 0 {
		o.GridSize = 20
	}
	return o
}

// commands compiles the shapes into the same display list the editor
// draws, without any selection or interaction overlay.
func (o Options) commands(shapes []document.Shape) []engine.DrawCommand {
	st := engine.DefaultToolSettings()
	st.Tool = engine.ToolNone
	st.ShowGrid = o.ShowGrid
	st.GridSize = o.GridSize

	scene := engine.Scene{Shapes: shapes, Interaction: engine.Idle{}}
	vp := engine.Viewport{Width: float64(o.Width), Height: float64(o.Height), Background: o.Background}
	return engine.CompileDrawCommands(scene, st, vp, engine.DefaultMeasurer())
}

// PNG rasterizes shapes and writes the image to w.
func PNG(w io.Writer, shapes []document.Shape, opts Options) error {
	opts = opts.withDefaults()
	dc := gg.NewContext(opts.Width, opts.Height)
	defer dc.Close()

	if err := engine.RenderCommands(dc, opts.commands(shapes)); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
