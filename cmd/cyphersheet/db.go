package main

import (
	"context"
	"fmt"
	"strings"

	"cyphersheet/internal/config"
	"cyphersheet/internal/store"
	"cyphersheet/internal/store/postgres"
	"cyphersheet/internal/store/sqlite"
)

// openStore selects a backend by DSN scheme. An empty DSN means no
// store is configured; callers get (nil, nil) and run without one.
func openStore(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	dsn := cfg.Database.DSN
	switch {
	case dsn == "":
		return nil, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.New(ctx, dsn)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database dsn %q", dsn)
	}
}
