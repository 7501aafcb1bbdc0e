package database

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS leads (
	seq          BIGSERIAL,
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	category     TEXT NOT NULL DEFAULT '',
	city         TEXT NOT NULL DEFAULT '',
	phone        TEXT,
	address      TEXT,
	rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count INTEGER NOT NULL DEFAULT 0,
	maps_url     TEXT,
	stage        TEXT NOT NULL DEFAULT 'new',
	email        TEXT,
	notes        TEXT NOT NULL DEFAULT '',
	preview_url  TEXT,
	found_at     TIMESTAMPTZ,
	sent_at      TIMESTAMPTZ,
	follow_up_at TIMESTAMPTZ,
	converted_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS leads_preview_url_idx ON leads (preview_url);
`

// EnsureSchema creates the leads table on first boot. No migrations.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
