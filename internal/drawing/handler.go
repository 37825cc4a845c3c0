package drawing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

const maxBodySize = 10 << 20 // 10MB

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the drawing routes under /api/draw.
func (h *Handler) Register(r *mux.Router) {
	api := r.PathPrefix("/api/draw").Subrouter()
	api.HandleFunc("/save", h.Save).Methods("POST")
	api.HandleFunc("/user/{userId}", h.ListByUser).Methods("GET")
	api.HandleFunc("/{id}", h.Get).Methods("GET")
	api.HandleFunc("/{id}", h.Update).Methods("PUT")
	api.HandleFunc("/{id}", h.Delete).Methods("DELETE")
}

type saveRequest struct {
	UserID string          `json:"userId"`
	Title  string          `json:"title"`
	Shapes json.RawMessage `json:"shapes"`
}

type updateRequest struct {
	Title  *string         `json:"title"`
	Shapes json.RawMessage `json:"shapes"`
}

type drawingResponse struct {
	Success bool     `json:"success"`
	Drawing *Drawing `json:"drawing"`
}

type listResponse struct {
	Success  bool      `json:"success"`
	Drawings []Drawing `json:"drawings"`
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	drawing, err := h.service.Save(r.Context(), SaveParams(req))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	slog.Info("drawing saved", "drawingId", drawing.ID, "shapes", len(drawing.Shapes))
	writeJSON(w, http.StatusCreated, drawingResponse{Success: true, Drawing: drawing})
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	drawings, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Success: true, Drawings: drawings})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	drawing, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, drawingResponse{Success: true, Drawing: drawing})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	id := mux.Vars(r)["id"]

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	drawing, err := h.service.Update(r.Context(), id, UpdateParams(req))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, drawingResponse{Success: true, Drawing: drawing})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrInvalidUser),
		errors.Is(err, ErrEmptyDrawing), errors.Is(err, ErrInvalidShapes):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
