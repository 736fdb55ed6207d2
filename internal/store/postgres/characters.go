package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"cyphersheet/internal/sheet"
	"cyphersheet/internal/store"
)

func (c *Client) UpsertCharacter(ctx context.Context, in store.CharacterInput) error {
	recordJSON, err := json.Marshal(in.Record)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	query := `
INSERT INTO characters (name, name_normalized, world, archetype, source_file, source_hash, record, last_converted)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
ON CONFLICT (name_normalized) DO UPDATE SET
    name = EXCLUDED.name,
    world = EXCLUDED.world,
    archetype = EXCLUDED.archetype,
    source_file = EXCLUDED.source_file,
    source_hash = EXCLUDED.source_hash,
    record = EXCLUDED.record,
    last_converted = now()
`

	_, err = c.pool.Exec(ctx, query,
		in.Name,
		strings.ToLower(in.Name),
		in.World,
		in.Archetype,
		in.SourceFile,
		in.SourceHash,
		recordJSON,
	)
	if err != nil {
		return fmt.Errorf("upserting character: %w", err)
	}
	return nil
}

func (c *Client) GetCharacter(ctx context.Context, name string) (*store.Character, error) {
	query := `
SELECT name, world, archetype, source_file, source_hash, record
FROM characters
WHERE name_normalized = $1
`

	var ch store.Character
	var recordBytes []byte
	err := c.pool.QueryRow(ctx, query, strings.ToLower(name)).Scan(
		&ch.Name,
		&ch.World,
		&ch.Archetype,
		&ch.SourceFile,
		&ch.SourceHash,
		&recordBytes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting character: %w", err)
	}

	if len(recordBytes) > 0 {
		var record sheet.Character
		if err := json.Unmarshal(recordBytes, &record); err != nil {
			return nil, fmt.Errorf("unmarshaling record: %w", err)
		}
		ch.Record = &record
	}

	return &ch, nil
}

func (c *Client) ListCharacters(ctx context.Context, world string) ([]store.CharacterSummary, error) {
	query := `
SELECT name, world, archetype, source_file
FROM characters
WHERE ($1 = '' OR world = $1)
ORDER BY name
`

	rows, err := c.pool.Query(ctx, query, world)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	summaries := make([]store.CharacterSummary, 0)
	for rows.Next() {
		var s store.CharacterSummary
		if err := rows.Scan(&s.Name, &s.World, &s.Archetype, &s.SourceFile); err != nil {
			return nil, fmt.Errorf("scanning character: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating characters: %w", err)
	}

	return summaries, nil
}

func (c *Client) GetSourceHashes(ctx context.Context) (map[string]string, error) {
	query := `
SELECT source_file, source_hash FROM characters
WHERE source_file IS NOT NULL AND source_file <> ''
`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query source hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var sourceFile, sourceHash string
		if err := rows.Scan(&sourceFile, &sourceHash); err != nil {
			return nil, fmt.Errorf("scanning source hash: %w", err)
		}
		hashes[sourceFile] = sourceHash
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating source hashes: %w", err)
	}

	return hashes, nil
}

func (c *Client) RemoveStale(ctx context.Context, currentSourceFiles []string) (int64, error) {
	if len(currentSourceFiles) == 0 {
		return 0, nil
	}

	query := `
DELETE FROM characters
WHERE source_file IS NOT NULL
  AND source_file <> ''
  AND NOT (source_file = ANY($1))
`

	tag, err := c.pool.Exec(ctx, query, currentSourceFiles)
	if err != nil {
		return 0, fmt.Errorf("removing stale characters: %w", err)
	}

	return tag.RowsAffected(), nil
}
