package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/beyond-scaling/internal/content"
	"github.com/ziadkadry99/beyond-scaling/internal/viz"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the placeholder pipeline to
// agents editing the book.
type Server struct {
	registry *viz.Registry
	source   content.Source
	ids      []string // articles checked when check_content names none
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server. source may be nil, in which case
// only raw text can be scanned.
func NewServer(reg *viz.Registry, source content.Source, ids []string) *Server {
	s := &Server{
		registry: reg,
		source:   source,
		ids:      ids,
	}

	s.mcp = server.NewMCPServer(
		"beyondscaling",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listVisualizationsTool, s.handleListVisualizations)
	s.mcp.AddTool(scanPlaceholdersTool, s.handleScanPlaceholders)
	s.mcp.AddTool(checkContentTool, s.handleCheckContent)
	s.mcp.AddTool(getArticleTool, s.handleGetArticle)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
