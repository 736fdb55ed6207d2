package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cyphersheet/internal/config"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored character record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configFile)
	if err != nil {
		return err
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if db == nil {
		return fmt.Errorf("no database configured in %s", configFile)
	}
	defer db.Close(ctx)

	character, err := db.GetCharacter(ctx, args[0])
	if err != nil {
		return err
	}
	if character == nil {
		return fmt.Errorf("character %q not found", args[0])
	}

	encoded, err := json.MarshalIndent(character.Record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}
