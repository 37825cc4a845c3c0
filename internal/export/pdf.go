package export

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"
	"github.com/jung-kurt/gofpdf"

	"github.com/inkboard/inkboard/internal/document"
	"github.com/inkboard/inkboard/internal/engine"
)

// PDF writes shapes as a single vector page, one point per canvas unit.
func PDF(w io.Writer, shapes []document.Shape, opts Options) error {
	opts = opts.withDefaults()
	width, height := float64(opts.Width), float64(opts.Height)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("inkboard", true)
	pdf.AddPage()

	r := &pdfReplayer{pdf: pdf, width: width, height: height, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	for _, cmd := range opts.commands(shapes) {
		r.replay(cmd)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type pdfReplayer struct {
	pdf           *gofpdf.Fpdf
	width, height float64
	tr            func(string) string
}

func (r *pdfReplayer) replay(cmd engine.DrawCommand) {
	switch cmd.Op {
	case engine.OpClear:
		r.pdf.SetAlpha(1, "Normal")
		r.setFill(cmd.Fill)
		r.pdf.Rect(0, 0, r.width, r.height, "F")

	case engine.OpText:
		if cmd.Text == "" {
			return
		}
		red, green, blue := rgb(cmd.Fill)
		r.pdf.SetAlpha(opacity(cmd.Opacity), "Normal")
		r.pdf.SetTextColor(red, green, blue)
		r.pdf.SetFont("Helvetica", "", cmd.FontSize)
		r.pdf.Text(cmd.X, cmd.Y, r.tr(cmd.Text))

	case engine.OpPath:
		style := ""
		if cmd.Fill != "" {
			r.setFill(cmd.Fill)
			style += "F"
		}
		if cmd.Stroke != "" {
			red, green, blue := rgb(cmd.Stroke)
			r.pdf.SetDrawColor(red, green, blue)
			r.pdf.SetLineWidth(cmd.StrokeWidth)
			if len(cmd.Dash) > 0 {
				r.pdf.SetDashPattern(cmd.Dash, 0)
			} else {
				r.pdf.SetDashPattern([]float64{}, 0)
			}
			if cmd.RoundJoins {
				r.pdf.SetLineCapStyle("round")
				r.pdf.SetLineJoinStyle("round")
			} else {
				r.pdf.SetLineCapStyle("butt")
				r.pdf.SetLineJoinStyle("miter")
			}
			style += "D"
		}
		if style == "" || len(cmd.Path) == 0 {
			return
		}
		r.pdf.SetAlpha(opacity(cmd.Opacity), "Normal")
		engine.TracePath(pdfSink{r.pdf}, cmd.Path, engine.MatrixFromSlice(cmd.Transform))
		r.pdf.DrawPath(style)
	}
}

func (r *pdfReplayer) setFill(hex string) {
	red, green, blue := rgb(hex)
	r.pdf.SetFillColor(red, green, blue)
}

// pdfSink adapts gofpdf's path API to engine.PathSink. Rotations are
// applied to the points before they reach the page.
type pdfSink struct {
	pdf *gofpdf.Fpdf
}

func (s pdfSink) MoveTo(x, y float64) { s.pdf.MoveTo(x, y) }
func (s pdfSink) LineTo(x, y float64) { s.pdf.LineTo(x, y) }
func (s pdfSink) ClosePath()          { s.pdf.ClosePath() }

func (s pdfSink) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.pdf.CurveBezierCubicTo(c1x, c1y, c2x, c2y, x, y)
}

func rgb(hex string) (int, int, int) {
	c := gg.Hex(hex)
	return int(c.R*255 + 0.5), int(c.G*255 + 0.5), int(c.B*255 + 0.5)
}

func opacity(o float64) float64 {
	if o <= 0 || o > 1 {
		return 1
	}
	return o
}
