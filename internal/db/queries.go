package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Drawing struct {
	ID        string
	UserID    pgtype.UUID
	Title     string
	Shapes    []byte
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

const drawingColumns = `id, user_id, title, shapes, created_at, updated_at`

func scanDrawing(row pgx.Row) (Drawing, error) {
	var d Drawing
	err := row.Scan(&d.ID, &d.UserID, &d.Title, &d.Shapes, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

type CreateDrawingParams struct {
	ID     string
	UserID pgtype.UUID
	Title  string
	Shapes []byte
}

const createDrawing = `INSERT INTO drawings (id, user_id, title, shapes)
VALUES ($1, $2, $3, $4)
RETURNING ` + drawingColumns

func (q *Queries) CreateDrawing(ctx context.Context, arg CreateDrawingParams) (Drawing, error) {
	return scanDrawing(q.db.QueryRow(ctx, createDrawing, arg.ID, arg.UserID, arg.Title, arg.Shapes))
}

const getDrawing = `SELECT ` + drawingColumns + ` FROM drawings WHERE id = $1`

func (q *Queries) GetDrawing(ctx context.Context, id string) (Drawing, error) {
	return scanDrawing(q.db.QueryRow(ctx, getDrawing, id))
}

const listDrawingsForUser = `SELECT ` + drawingColumns + ` FROM drawings
WHERE user_id = $1
ORDER BY updated_at DESC`

func (q *Queries) ListDrawingsForUser(ctx context.Context, userID pgtype.UUID) ([]Drawing, error) {
	rows, err := q.db.Query(ctx, listDrawingsForUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Drawing
	for rows.Next() {
		d, err := scanDrawing(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

type UpdateDrawingParams struct {
	ID     string
	Title  string
	Shapes []byte
}

const updateDrawing = `UPDATE drawings
SET title = $2, shapes = $3, updated_at = now()
WHERE id = $1
RETURNING ` + drawingColumns

func (q *Queries) UpdateDrawing(ctx context.Context, arg UpdateDrawingParams) (Drawing, error) {
	return scanDrawing(q.db.QueryRow(ctx, updateDrawing, arg.ID, arg.Title, arg.Shapes))
}

const deleteDrawing = `DELETE FROM drawings WHERE id = $1`

// DeleteDrawing reports the number of rows removed.
func (q *Queries) DeleteDrawing(ctx context.Context, id string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteDrawing, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
