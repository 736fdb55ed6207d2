package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new cyphersheet project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(projectName string) error {
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("%s already exists", configFile)
	}

	contents := fmt.Sprintf(`project: %s
version: 1

input: ./sheets
output: ./output

# Uncomment to keep parsed records in a character store.
# database:
#   dsn: sqlite://cyphersheet.db

render:
  page_size: Letter
  theme:
    primary: "#2C3E50"
    secondary: "#3498DB"
    accent: "#E74C3C"
    light_bg: "#ECF0F1"

preview:
  threshold: 245
  scale: 0.25
`, projectName)

	if err := os.WriteFile(configFile, []byte(contents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configFile, err)
	}
	if err := os.MkdirAll("sheets", 0o755); err != nil {
		return fmt.Errorf("creating sheets directory: %w", err)
	}
	return nil
}
