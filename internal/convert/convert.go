// Package convert runs the batch pipeline: every sheet text file under
// the input directory is parsed and rendered to a PDF in the output
// directory, and optionally upserted into the character store.
package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cyphersheet/internal/config"
	"cyphersheet/internal/parser"
	"cyphersheet/internal/render"
	"cyphersheet/internal/sheet"
	"cyphersheet/internal/store"
)

// Result reports what a pipeline run did. Per-file failures accumulate
// in Errors without aborting the batch.
type Result struct {
	Converted        int
	FilesSkipped     int
	CharactersStored int
	Removed          int
	Errors           []error
}

type Options struct {
	// Full ignores stored source hashes and reprocesses every file.
	Full bool
}

// Store is the subset of the character store the pipeline touches.
type Store interface {
	EnsureSchema(ctx context.Context) error
	UpsertCharacter(ctx context.Context, c store.CharacterInput) error
	GetSourceHashes(ctx context.Context) (map[string]string, error)
	RemoveStale(ctx context.Context, currentSourceFiles []string) (int64, error)
}

// Run converts every .txt sheet under cfg.Input. A nil db runs the
// pipeline without persistence.
func Run(ctx context.Context, cfg *config.ProjectConfig, db Store, options Options) (*Result, error) {
	renderer, err := render.New(cfg.Render)
	if err != nil {
		return nil, err
	}

	if db != nil {
		if err := db.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}

	var existingHashes map[string]string
	if db != nil && !options.Full {
		existingHashes, err = db.GetSourceHashes(ctx)
		if err != nil {
			return nil, fmt.Errorf("get source hashes: %w", err)
		}
	}

	files, err := walkSheetFiles(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("walking sheet files: %w", err)
	}

	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{}
	for _, path := range files {
		hash, err := computeHash(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("hashing %s: %w", path, err))
			continue
		}
		if existingHashes != nil {
			if existing, ok := existingHashes[path]; ok && existing == hash {
				result.FilesSkipped++
				continue
			}
		}

		record, err := parser.ParseFile(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("reading %s: %w", path, err))
			continue
		}

		outPath := filepath.Join(cfg.Output, stem(path)+".pdf")
		if _, err := renderer.RenderFile(outPath, record); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("rendering %s: %w", path, err))
			continue
		}
		result.Converted++

		if db == nil {
			continue
		}
		input := store.CharacterInput{
			Name:       storedName(record, path),
			World:      record.Header.World,
			Archetype:  record.Header.Type,
			SourceFile: path,
			SourceHash: hash,
			Record:     record,
		}
		if err := db.UpsertCharacter(ctx, input); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("storing %s: %w", path, err))
			continue
		}
		result.CharactersStored++
	}

	if db != nil {
		removed, err := db.RemoveStale(ctx, files)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("removing stale characters: %w", err))
		} else {
			result.Removed = int(removed)
		}
	}

	return result, nil
}

// storedName keys the store row. Sheets with no recognizable header
// sentence fall back to the file stem so they stay addressable.
func storedName(record *sheet.Character, path string) string {
	if record.Header.Name != "" {
		return record.Header.Name
	}
	return stem(path)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func walkSheetFiles(root string) ([]string, error) {
	root = filepath.Clean(root)
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".txt") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func computeHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
