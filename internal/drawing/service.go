package drawing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/inkboard/inkboard/internal/db"
	"github.com/inkboard/inkboard/internal/document"
	"github.com/inkboard/inkboard/internal/typeid"
)

var (
	ErrNotFound      = errors.New("drawing not found")
	ErrInvalidID     = errors.New("invalid drawing id")
	ErrInvalidUser   = errors.New("invalid or missing userId (uuid required)")
	ErrEmptyDrawing  = errors.New("shapes array required")
	ErrInvalidShapes = errors.New("invalid shapes")
)

// Store is the persistence the service needs. *db.Queries implements it.
type Store interface {
	CreateDrawing(ctx context.Context, arg db.CreateDrawingParams) (db.Drawing, error)
	GetDrawing(ctx context.Context, id string) (db.Drawing, error)
	ListDrawingsForUser(ctx context.Context, userID pgtype.UUID) ([]db.Drawing, error)
	UpdateDrawing(ctx context.Context, arg db.UpdateDrawingParams) (db.Drawing, error)
	DeleteDrawing(ctx context.Context, id string) (int64, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

type Drawing struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Title     string          `json:"title"`
	Shapes    document.Shapes `json:"shapes"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

type SaveParams struct {
	UserID string
	Title  string
	Shapes json.RawMessage
}

// Save stores a new drawing. The shape list must be a non-empty array of
// valid records; the title defaults to one stamped with the save time.
func (s *Service) Save(ctx context.Context, p SaveParams) (*Drawing, error) {
	userID, err := parseUserID(p.UserID)
	if err != nil {
		return nil, err
	}
	shapesJSON, err := canonicalShapes(p.Shapes)
	if err != nil {
		return nil, err
	}

	title := p.Title
	if title == "" {
		title = "Drawing - " + s.now().UTC().Format("2006-01-02 15:04:05")
	}

	row, err := s.store.CreateDrawing(ctx, db.CreateDrawingParams{
		ID:     typeid.NewDrawingID(),
		UserID: userID,
		Title:  title,
		Shapes: shapesJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("create drawing: %w", err)
	}
	return toDrawing(row), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Drawing, error) {
	if err := typeid.Validate(id, typeid.PrefixDrawing); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}

	row, err := s.store.GetDrawing(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get drawing: %w", err)
	}
	return toDrawing(row), nil
}

// ListByUser returns a user's drawings, most recently updated first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Drawing, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListDrawingsForUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}

	drawings := make([]Drawing, len(rows))
	for i, row := range rows {
		drawings[i] = *toDrawing(row)
	}
	return drawings, nil
}

type UpdateParams struct {
	Title  *string
	Shapes json.RawMessage
}

// Update replaces the title and/or shapes of a drawing. Omitted fields keep
// their stored value.
func (s *Service) Update(ctx context.Context, id string, p UpdateParams) (*Drawing, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if p.Title != nil && *p.Title != "" {
		title = *p.Title
	}

	var shapesJSON []byte
	if len(p.Shapes) > 0 {
		if shapesJSON, err = canonicalShapes(p.Shapes); err != nil {
			return nil, err
		}
	} else if shapesJSON, err = document.MarshalShapes(current.Shapes); err != nil {
		return nil, fmt.Errorf("marshal shapes: %w", err)
	}

	row, err := s.store.UpdateDrawing(ctx, db.UpdateDrawingParams{
		ID:     id,
		Title:  title,
		Shapes: shapesJSON,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update drawing: %w", err)
	}
	return toDrawing(row), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := typeid.Validate(id, typeid.PrefixDrawing); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidID, err)
	}

	n, err := s.store.DeleteDrawing(ctx, id)
	if err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func parseUserID(s string) (pgtype.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{}, ErrInvalidUser
	}
	return pgtype.UUID{Bytes: u, Valid: true}, nil
}

// canonicalShapes validates a client shape list strictly and re-encodes it.
func canonicalShapes(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyDrawing
	}
	shapes, err := document.DecodeShapes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShapes, err)
	}
	if len(shapes) == 0 {
		return nil, ErrEmptyDrawing
	}
	out, err := document.MarshalShapes(shapes)
	if err != nil {
		return nil, fmt.Errorf("marshal shapes: %w", err)
	}
	return out, nil
}

func toDrawing(row db.Drawing) *Drawing {
	shapes, err := document.DecodeShapes(row.Shapes)
	if err != nil {
		slog.Warn("stored drawing has malformed shapes", "drawingId", row.ID, "kept", len(shapes), "error", err)
	}
	return &Drawing{
		ID:        row.ID,
		UserID:    uuid.UUID(row.UserID.Bytes).String(),
		Title:     row.Title,
		Shapes:    shapes,
		CreatedAt: row.CreatedAt.Time.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: row.UpdatedAt.Time.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
