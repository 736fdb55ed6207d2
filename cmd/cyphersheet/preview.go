package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cyphersheet/internal/config"
	"cyphersheet/internal/preview"
)

var previewThumbnails bool

func previewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <pages-dir>",
		Short: "Report whitespace metrics for rendered page images",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	cmd.Flags().BoolVar(&previewThumbnails, "thumbnails", false, "Also write downscaled thumbnails next to the pages")
	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProjectConfig(configFile)
	if err != nil {
		return err
	}

	dir := args[0]
	results, err := preview.AnalyzeDir(dir, cfg.Preview.Threshold)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no page images found in %s", dir)
	}

	for i, analysis := range results {
		b := analysis.Bounds
		fmt.Fprintf(os.Stdout, "  Page %d: whitespace ~ %.2f%%, content bbox=(%d, %d, %d, %d)\n",
			i+1, analysis.WhitespaceRatio*100, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)

		if previewThumbnails {
			thumb, err := preview.ThumbnailFile(analysis.Page, dir, cfg.Preview.Scale)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "    thumbnail: %s\n", thumb)
		}
	}
	return nil
}
