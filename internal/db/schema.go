package db

import (
	"context"
	"fmt"
)

// Schema creates the drawings table. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS drawings (
    id          TEXT PRIMARY KEY,
    user_id     UUID NOT NULL,
    title       TEXT NOT NULL,
    shapes      JSONB NOT NULL DEFAULT '[]'::jsonb,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS drawings_user_updated_idx
    ON drawings (user_id, updated_at DESC);
`

// Migrate applies Schema.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
