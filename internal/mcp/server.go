// Package mcp exposes the sheet parser, renderer, and character store
// as MCP tools over a stdio transport.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"cyphersheet/internal/config"
	"cyphersheet/internal/render"
	"cyphersheet/internal/store"
)

type Server struct {
	db       store.Store
	renderer *render.Renderer
	mcp      *sdk.Server
}

// NewServer builds the tool server. db may be nil when no database is
// configured; store-backed tools then report that instead of failing at
// startup.
func NewServer(db store.Store, renderCfg config.RenderConfig, version string) (*Server, error) {
	renderer, err := render.New(renderCfg)
	if err != nil {
		return nil, err
	}
	s := &Server{
		db:       db,
		renderer: renderer,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "cyphersheet",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s, nil
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
