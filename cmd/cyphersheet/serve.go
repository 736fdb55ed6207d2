package main

import (
	"context"

	"github.com/spf13/cobra"

	"cyphersheet/internal/config"
	"cyphersheet/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
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

	server, err := mcp.NewServer(db, cfg.Render, version)
	if err != nil {
		return err
	}
	return server.Run(ctx, &sdk.StdioTransport{})
}
