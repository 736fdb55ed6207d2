package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cyphersheet/internal/parser"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <sheet.txt>",
		Short: "Parse a single sheet and print the record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	record, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}
