package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cyphersheet/internal/config"
)

var listWorld string

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored characters",
		RunE:  runList,
	}
	cmd.Flags().StringVar(&listWorld, "world", "", "Restrict to a specific world")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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

	items, err := db.ListCharacters(ctx, listWorld)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(os.Stdout, "No characters stored.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tWORLD\tARCHETYPE\tSOURCE")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.Name, item.World, item.Archetype, item.SourceFile)
	}
	return w.Flush()
}
