package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/beyond-scaling/internal/lint"
	"github.com/ziadkadry99/beyond-scaling/internal/placeholder"
)

// handleListVisualizations lists the registry.
func (s *Server) handleListVisualizations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	descs := s.registry.Descriptors()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d visualization type(s):\n", len(descs)))
	for _, d := range descs {
		sb.WriteString(fmt.Sprintf("\n%s\n  Title: %s\n  Description: %s\n  Placeholder: %s\n",
			d.TypeKey, d.Title, d.Description, placeholder.Canonical(d.TypeKey)))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleScanPlaceholders splits an article or raw text into segments.
func (s *Server) handleScanPlaceholders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("text", "")
	id := request.GetString("article_id", "")
	switch {
	case text != "" && id != "":
		return mcp.NewToolResultError("pass either article_id or text, not both"), nil
	case id != "":
		if s.source == nil {
			return mcp.NewToolResultError("no content source configured"), nil
		}
		fetched, err := s.source.Fetch(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text = fetched
	case text == "":
		return mcp.NewToolResultError("missing required parameter: article_id or text"), nil
	}

	return mcp.NewToolResultText(formatSegments(placeholder.Split(text), s.registry.Has)), nil
}

// handleCheckContent runs the content check over the requested articles.
func (s *Server) handleCheckContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.source == nil {
		return mcp.NewToolResultError("no content source configured"), nil
	}
	ids := s.ids
	if raw := request.GetString("article_ids", ""); raw != "" {
		ids = nil
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return mcp.NewToolResultError("no articles to check"), nil
	}

	report, err := lint.Check(ctx, s.source, ids, s.registry)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
	}
	var sb strings.Builder
	if err := report.WriteText(&sb); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetArticle returns an article's markdown.
func (s *Server) handleGetArticle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("article_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: article_id"), nil
	}
	if s.source == nil {
		return mcp.NewToolResultError("no content source configured"), nil
	}
	text, err := s.source.Fetch(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// formatSegments renders segments as text for agent consumption.
func formatSegments(segs []placeholder.Segment, known func(string) bool) string {
	prose, visuals := placeholder.Counts(segs)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d segment(s): %d prose, %d visualization\n", len(segs), prose, visuals))

	for i, seg := range segs {
		sb.WriteString(fmt.Sprintf("\n--- Segment %d (%s) ---\n", i+1, seg.Kind))
		if !seg.IsVisualization() {
			sb.WriteString(seg.Text)
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(fmt.Sprintf("Type: %s\n", seg.TypeKey))
		sb.WriteString(fmt.Sprintf("Syntax: %s\n", seg.Syntax))
		if !known(seg.TypeKey) {
			sb.WriteString("Status: unknown visualization type\n")
		}
	}
	return sb.String()
}
