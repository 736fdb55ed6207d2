package store

import "context"

// Store is the optional character library behind the convert pipeline
// and the MCP server. Backends are selected by DSN scheme.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	UpsertCharacter(ctx context.Context, c CharacterInput) error
	GetCharacter(ctx context.Context, name string) (*Character, error)
	ListCharacters(ctx context.Context, world string) ([]CharacterSummary, error)

	GetSourceHashes(ctx context.Context) (map[string]string, error)
	RemoveStale(ctx context.Context, currentSourceFiles []string) (int64, error)
}
