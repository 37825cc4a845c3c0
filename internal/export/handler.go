package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/inkboard/inkboard/internal/document"
	"github.com/inkboard/inkboard/internal/drawing"
)

// DrawingSource loads a stored drawing. *drawing.Service implements it.
type DrawingSource interface {
	Get(ctx context.Context, id string) (*drawing.Drawing, error)
}

type Handler struct {
	drawings DrawingSource
	opts     Options
}

func NewHandler(drawings DrawingSource, opts Options) *Handler {
	return &Handler{drawings: drawings, opts: opts.withDefaults()}
}

// Register mounts the export routes next to the drawing routes.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/draw/{id}/export.png", h.ExportPNG).Methods("GET")
	r.HandleFunc("/api/draw/{id}/export.pdf", h.ExportPDF).Methods("GET")
}

func (h *Handler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "png", "image/png", PNG)
}

func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "pdf", "application/pdf", PDF)
}

type encoder func(io.Writer, []document.Shape, Options) error

func (h *Handler) export(w http.ResponseWriter, r *http.Request, format, contentType string, encode encoder) {
	id := mux.Vars(r)["id"]

	d, err := h.drawings.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, drawing.ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, drawing.ErrInvalidID):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			slog.Error("load drawing for export", "drawingId", id, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	opts := h.opts
	if grid, err := strconv.ParseBool(r.URL.Query().Get("grid")); err == nil {
		opts.ShowGrid = grid
	}

	slog.Info("export started", "drawingId", id, "format", format, "shapes", len(d.Shapes))

	// Encode fully before writing so a failure can still report a 500.
	var buf bytes.Buffer
	if err := encode(&buf, d.Shapes, opts); err != nil {
		slog.Error("export failed", "drawingId", id, "format", format, "error", err)
		http.Error(w, fmt.Sprintf("encoding failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, fileName(d.Title), format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	io.Copy(w, &buf)

	slog.Info("export complete", "drawingId", id, "format", format, "size", buf.Len())
}

// fileName reduces a drawing title to a safe attachment name.
func fileName(title string) string {
	name := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, title)
	name = strings.Trim(name, "-")
	if name == "" {
		return "drawing"
	}
	return name
}
