package main

import (
	"os"

	"github.com/spf13/cobra"
)

const configFile = "cyphersheet.yaml"

func main() {
	root := &cobra.Command{
		Use:   "cyphersheet",
		Short: "Convert plain-text character sheets into structured records and PDFs",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(convertCmd())
	root.AddCommand(parseCmd())
	root.AddCommand(previewCmd())
	root.AddCommand(listCmd())
	root.AddCommand(showCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
