package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Input    string         `yaml:"input"`
	Output   string         `yaml:"output"`
	Database DatabaseConfig `yaml:"database"`
	Render   RenderConfig   `yaml:"render"`
	Preview  PreviewConfig  `yaml:"preview"`
}

// DatabaseConfig selects the optional character store. An empty DSN
// disables storage; the scheme (sqlite:// or postgres://) picks the
// backend.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RenderConfig struct {
	PageSize string      `yaml:"page_size"`
	Theme    ThemeConfig `yaml:"theme"`
}

// ThemeConfig holds the sheet colors as #RRGGBB strings.
type ThemeConfig struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Accent    string `yaml:"accent"`
	LightBG   string `yaml:"light_bg"`
}

type PreviewConfig struct {
	Threshold int     `yaml:"threshold"`
	Scale     float64 `yaml:"scale"`
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Input == "" {
		cfg.Input = "sheets"
	}
	if cfg.Output == "" {
		cfg.Output = "output"
	}
	if cfg.Render.PageSize == "" {
		cfg.Render.PageSize = "Letter"
	}
	if cfg.Render.Theme.Primary == "" {
		cfg.Render.Theme.Primary = "#2C3E50"
	}
	if cfg.Render.Theme.Secondary == "" {
		cfg.Render.Theme.Secondary = "#3498DB"
	}
	if cfg.Render.Theme.Accent == "" {
		cfg.Render.Theme.Accent = "#E74C3C"
	}
	if cfg.Render.Theme.LightBG == "" {
		cfg.Render.Theme.LightBG = "#ECF0F1"
	}
	if cfg.Preview.Threshold == 0 {
		cfg.Preview.Threshold = 245
	}
	if cfg.Preview.Scale == 0 {
		cfg.Preview.Scale = 0.25
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	switch cfg.Render.PageSize {
	case "Letter", "A4", "Legal":
	default:
		return fmt.Errorf("unsupported page size: %s", cfg.Render.PageSize)
	}
	for name, value := range map[string]string{
		"primary":   cfg.Render.Theme.Primary,
		"secondary": cfg.Render.Theme.Secondary,
		"accent":    cfg.Render.Theme.Accent,
		"light_bg":  cfg.Render.Theme.LightBG,
	} {
		if !hexColorRe.MatchString(value) {
			return fmt.Errorf("theme color %s must be #RRGGBB, got %q", name, value)
		}
	}
	if cfg.Preview.Threshold < 0 || cfg.Preview.Threshold > 255 {
		return fmt.Errorf("preview threshold must be 0-255, got %d", cfg.Preview.Threshold)
	}
	if cfg.Preview.Scale <= 0 || cfg.Preview.Scale > 1 {
		return fmt.Errorf("preview scale must be in (0, 1], got %g", cfg.Preview.Scale)
	}
	if dsn := cfg.Database.DSN; dsn != "" {
		if !strings.HasPrefix(dsn, "sqlite://") && !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
			return fmt.Errorf("unsupported database DSN scheme: %s", dsn)
		}
	}
	return nil
}
