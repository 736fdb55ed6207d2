package sqlite

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

func parseDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "sqlite://") {
		return "", fmt.Errorf("invalid sqlite DSN scheme, expected sqlite://")
	}

	rest := strings.TrimPrefix(dsn, "sqlite://")

	if rest == ":memory:" {
		return ":memory:", nil
	}

	var query string
	if idx := strings.Index(rest, "?"); idx >= 0 {
		query = rest[idx+1:]
		rest = rest[:idx]
	}

	path, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("unescaping path: %w", err)
	}
	if path == "" {
		return "", fmt.Errorf("sqlite DSN has no path")
	}

	if !filepath.IsAbs(path) && !strings.HasPrefix(path, "./") {
		path = "./" + path
	}

	if query != "" {
		return path + "?" + query, nil
	}
	return path, nil
}
