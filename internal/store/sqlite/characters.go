package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

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
	VALUES (?, ?, ?, ?, ?, ?, ?, datetime('now'))
	ON CONFLICT (name_normalized) DO UPDATE SET
		name = excluded.name,
		world = excluded.world,
		archetype = excluded.archetype,
		source_file = excluded.source_file,
		source_hash = excluded.source_hash,
		record = excluded.record,
		last_converted = datetime('now')
	`

	_, err = c.db.ExecContext(ctx, query,
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
	WHERE name_normalized = ?
	`

	var ch store.Character
	var recordBytes []byte
	err := c.db.QueryRowContext(ctx, query, strings.ToLower(name)).Scan(
		&ch.Name,
		&ch.World,
		&ch.Archetype,
		&ch.SourceFile,
		&ch.SourceHash,
		&recordBytes,
	)
	if errors.Is(err, sql.ErrNoRows) {
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
	WHERE (? = '' OR world = ?)
	ORDER BY name
	`

	rows, err := c.db.QueryContext(ctx, query, world, world)
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

	rows, err := c.db.QueryContext(ctx, query)
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

	placeholders := make([]string, len(currentSourceFiles))
	args := make([]any, len(currentSourceFiles))
	for i, f := range currentSourceFiles {
		placeholders[i] = "?"
		args[i] = f
	}

	query := fmt.Sprintf(`
	DELETE FROM characters
	WHERE source_file IS NOT NULL
	  AND source_file <> ''
	  AND source_file NOT IN (%s)
	`, strings.Join(placeholders, ", "))

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("removing stale characters: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return affected, nil
}
