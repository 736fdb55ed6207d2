package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid config loads with defaults", func(t *testing.T) {
		path := writeTempConfig(t, "project: test-project\nversion: 1\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "test-project" {
			t.Fatalf("expected project name, got %q", cfg.Project)
		}
		if cfg.Input != "sheets" || cfg.Output != "output" {
			t.Fatalf("expected default directories, got %q %q", cfg.Input, cfg.Output)
		}
		if cfg.Render.PageSize != "Letter" {
			t.Fatalf("expected default page size, got %q", cfg.Render.PageSize)
		}
		if cfg.Render.Theme.Primary != "#2C3E50" {
			t.Fatalf("expected default primary color, got %q", cfg.Render.Theme.Primary)
		}
		if cfg.Preview.Threshold != 245 || cfg.Preview.Scale != 0.25 {
			t.Fatalf("expected default preview settings, got %#v", cfg.Preview)
		}
	})

	t.Run("explicit values survive defaults", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ninput: ./examples\noutput: ./pdfs\nrender:\n  page_size: A4\n  theme:\n    primary: \"#101010\"\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Input != "./examples" || cfg.Render.PageSize != "A4" {
			t.Fatalf("unexpected config: %#v", cfg)
		}
		if cfg.Render.Theme.Primary != "#101010" || cfg.Render.Theme.Secondary != "#3498DB" {
			t.Fatalf("unexpected theme: %#v", cfg.Render.Theme)
		}
	})

	t.Run("missing project name", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 2\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad page size", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nrender:\n  page_size: Tabloid\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad theme color", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nrender:\n  theme:\n    accent: red\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad database scheme", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ndatabase:\n  dsn: mysql://localhost/sheets\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("preview scale out of range", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\npreview:\n  scale: 2.0\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "project: [\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
