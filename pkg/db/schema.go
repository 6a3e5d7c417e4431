package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema creates the restaurant, deal and claim tables. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS restaurants (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	address    TEXT NOT NULL DEFAULT '',
	category   TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS deals (
	id                  UUID PRIMARY KEY,
	restaurant_id       UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
	title               TEXT NOT NULL,
	description         TEXT NOT NULL DEFAULT '',
	is_active           BOOLEAN NOT NULL DEFAULT TRUE,
	available_days      TEXT[] NOT NULL DEFAULT '{}',
	start_time          TEXT NOT NULL,
	end_time            TEXT NOT NULL,
	discount_percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
	claimed_count       INTEGER NOT NULL DEFAULT 0,
	total_limit         INTEGER,
	original_price      BIGINT,
	final_price         BIGINT,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS deals_restaurant_idx ON deals (restaurant_id);

CREATE TABLE IF NOT EXISTS deal_claims (
	id         UUID PRIMARY KEY,
	deal_id    UUID NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
	user_id    TEXT NOT NULL,
	quantity   INTEGER NOT NULL DEFAULT 1,
	savings    BIGINT NOT NULL DEFAULT 0,
	claimed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS deal_claims_user_idx ON deal_claims (deal_id, user_id, claimed_at);
`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
