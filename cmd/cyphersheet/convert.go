package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cyphersheet/internal/config"
	"cyphersheet/internal/convert"
)

var convertFull bool

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert every sheet in the input directory to a PDF",
		RunE:  runConvert,
	}
	cmd.Flags().BoolVar(&convertFull, "full", false, "Force full reconversion (ignore incremental hashes)")
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configFile)
	if err != nil {
		return err
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close(ctx)
	}

	result, err := convert.Run(ctx, cfg, db, convert.Options{Full: convertFull})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Conversion complete.")
	fmt.Fprintf(os.Stdout, "  Sheets converted:   %d\n", result.Converted)
	fmt.Fprintf(os.Stdout, "  Files skipped:      %d\n", result.FilesSkipped)
	if db != nil {
		fmt.Fprintf(os.Stdout, "  Characters stored:  %d\n", result.CharactersStored)
		fmt.Fprintf(os.Stdout, "  Stale rows removed: %d\n", result.Removed)
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("conversion completed with errors")
	}

	return nil
}
