package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS characters (
			id              BIGSERIAL PRIMARY KEY,
			name            TEXT NOT NULL,
			name_normalized TEXT NOT NULL UNIQUE,
			world           TEXT NOT NULL DEFAULT '',
			archetype       TEXT NOT NULL DEFAULT '',
			source_file     TEXT,
			source_hash     TEXT,
			record          JSONB NOT NULL DEFAULT '{}'::jsonb,
			last_converted  TIMESTAMPTZ DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_characters_world ON characters (world)`,
		`CREATE INDEX IF NOT EXISTS idx_characters_source_file ON characters (source_file)`,
	}

	for _, stmt := range statements {
		if _, err := c.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	return nil
}
