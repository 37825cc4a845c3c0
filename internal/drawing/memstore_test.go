package drawing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/inkboard/inkboard/internal/db"
)

// memStore is an in-memory Store. Each write advances a fake clock by a
// second so ordering by updated_at is deterministic.
type memStore struct {
	mu    sync.Mutex
	rows  map[string]db.Drawing
	clock time.Time
}

func newMemStore() *memStore {
	return &memStore{
		rows:  make(map[string]db.Drawing),
		clock: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() pgtype.Timestamptz {
	m.clock = m.clock.Add(time.Second)
	return pgtype.Timestamptz{Time: m.clock, Valid: true}
}

func (m *memStore) CreateDrawing(_ context.Context, arg db.CreateDrawingParams) (db.Drawing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts := m.tick()
	d := db.Drawing{ID: arg.ID, UserID: arg.UserID, Title: arg.Title, Shapes: arg.Shapes, CreatedAt: ts, UpdatedAt: ts}
	m.rows[d.ID] = d
	return d, nil
}

func (m *memStore) GetDrawing(_ context.Context, id string) (db.Drawing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return db.Drawing{}, pgx.ErrNoRows
	}
	return d, nil
}

func (m *memStore) ListDrawingsForUser(_ context.Context, userID pgtype.UUID) ([]db.Drawing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.Drawing
	for _, d := range m.rows {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Time.After(out[j].UpdatedAt.Time) })
	return out, nil
}

func (m *memStore) UpdateDrawing(_ context.Context, arg db.UpdateDrawingParams) (db.Drawing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[arg.ID]
	if !ok {
		return db.Drawing{}, pgx.ErrNoRows
	}
	d.Title, d.Shapes, d.UpdatedAt = arg.Title, arg.Shapes, m.tick()
	m.rows[d.ID] = d
	return d, nil
}

func (m *memStore) DeleteDrawing(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}
