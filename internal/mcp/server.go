// Package mcp exposes model building and match simulation as Model Context Protocol tools over stdio.
package mcp

import (
	"context"
	"sync"

	"cricket-mcs/internal/archive"
	"cricket-mcs/internal/config"
	"cricket-mcs/internal/ingest"
	"cricket-mcs/internal/stats"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// ServerName is the implementation name reported to MCP clients.
const ServerName = "cricket-mcs"

// Server holds the state shared by the tool handlers.
type Server struct {
	cfg     *config.AppConfig
	archive *archive.Store

	mu          sync.RWMutex
	model       stats.Model
	modelSource string
	matches     int
}

// NewServer creates a new MCP server. arch may be nil, in which case results are not archived.
func NewServer(cfg *config.AppConfig, arch *archive.Store) *Server {
	return &Server{cfg: cfg, archive: arch}
}

// Serve runs the MCP protocol over stdin/stdout until the client disconnects or ctx is done.
func (s *Server) Serve(ctx context.Context, version string) error {
	log.Info().Str("version", version).Msg("MCP server listening on stdio")
	return s.SDKServer(version).Run(ctx, &sdk.StdioTransport{})
}

// SDKServer builds the protocol server with every tool registered.
func (s *Server) SDKServer(version string) *sdk.Server {
	server := sdk.NewServer(&sdk.Implementation{Name: ServerName, Version: version}, nil)
	s.registerTools(server)
	return server
}

// currentModel returns the active model, loading the saved model (or the built-in one) on first use.
func (s *Server) currentModel() (stats.Model, string, error) {
	s.mu.RLock()
	if s.model != nil {
		defer s.mu.RUnlock()
		return s.model, s.modelSource, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model != nil {
		return s.model, s.modelSource, nil
	}

	m, source, err := ingest.LoadModel(s.cfg.ModelPath)
	if err != nil {
		return nil, "", err
	}
	s.model, s.modelSource = m, source
	log.Info().Str("source", source).Msg("Probability model activated")
	return m, source, nil
}

func (s *Server) setModel(m stats.Model, source string, matches int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model, s.modelSource, s.matches = m, source, matches
}

func (s *Server) matchCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matches
}
