package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/beyond-scaling/internal/content"
	"github.com/ziadkadry99/beyond-scaling/internal/viz"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"intro.md":  "# Intro\n\n{visualization:brain}\n\nMore text.\n",
		"legacy.md": "visualization timeline\n\n<!-- visualization:warp-drive -->\n",
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewServer(viz.Default(), &content.DirSource{Dir: dir}, []string{"intro", "legacy"})
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_visualizations", listVisualizationsTool, "list_visualizations"},
		{"scan_placeholders", scanPlaceholdersTool, "scan_placeholders"},
		{"check_content", checkContentTool, "check_content"},
		{"get_article", getArticleTool, "get_article"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestServer(t)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if len(srv.ids) != 2 {
		t.Errorf("ids = %v, want 2 entries", srv.ids)
	}
}

func TestHandleListVisualizations(t *testing.T) {
	srv := newTestServer(t)
	result, err := srv.handleListVisualizations(context.Background(), call(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if !strings.HasPrefix(text, "10 visualization type(s):") {
		t.Errorf("unexpected header: %q", strings.SplitN(text, "\n", 2)[0])
	}
	if !strings.Contains(text, "Placeholder: {visualization:fep}") {
		t.Error("expected canonical placeholder for fep")
	}
}

func TestHandleScanPlaceholders(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	t.Run("raw text", func(t *testing.T) {
		result, err := srv.handleScanPlaceholders(ctx, call(map[string]any{
			"text": "Before {visualization:brain} after {visualization:nope}",
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := resultText(t, result)
		if !strings.HasPrefix(text, "4 segment(s): 2 prose, 2 visualization") {
			t.Errorf("unexpected summary: %q", strings.SplitN(text, "\n", 2)[0])
		}
		if strings.Count(text, "Status: unknown visualization type") != 1 {
			t.Error("expected exactly one unknown type")
		}
	})

	t.Run("article id", func(t *testing.T) {
		result, err := srv.handleScanPlaceholders(ctx, call(map[string]any{"article_id": "legacy"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := resultText(t, result)
		if !strings.Contains(text, "Syntax: bare-line") || !strings.Contains(text, "Syntax: comment") {
			t.Errorf("expected both legacy syntaxes, got:\n%s", text)
		}
	})

	t.Run("missing article", func(t *testing.T) {
		result, err := srv.handleScanPlaceholders(ctx, call(map[string]any{"article_id": "nope"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing article")
		}
		if !strings.Contains(resultText(t, result), "Failed to load content for nope.md") {
			t.Errorf("unexpected message: %q", resultText(t, result))
		}
	})

	t.Run("no input", func(t *testing.T) {
		result, _ := srv.handleScanPlaceholders(ctx, call(map[string]any{}))
		if !result.IsError {
			t.Error("expected error for missing input")
		}
	})

	t.Run("both inputs", func(t *testing.T) {
		result, _ := srv.handleScanPlaceholders(ctx, call(map[string]any{"text": "x", "article_id": "intro"}))
		if !result.IsError {
			t.Error("expected error when both inputs are given")
		}
	})
}

func TestHandleCheckContent(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	result, err := srv.handleCheckContent(ctx, call(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "2 articles checked: 1 errors, 2 warnings") {
		t.Errorf("unexpected report:\n%s", text)
	}
	if !strings.Contains(text, `unknown visualization type "warp-drive"`) {
		t.Errorf("expected unknown type finding:\n%s", text)
	}

	result, err = srv.handleCheckContent(ctx, call(map[string]any{"article_ids": " intro , "}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resultText(t, result), "1 articles checked: 0 errors, 0 warnings") {
		t.Errorf("unexpected report:\n%s", resultText(t, result))
	}
}

func TestHandleGetArticle(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	result, err := srv.handleGetArticle(ctx, call(map[string]any{"article_id": "intro"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultText(t, result); !strings.HasPrefix(got, "# Intro") {
		t.Errorf("content = %q", got)
	}

	result, _ = srv.handleGetArticle(ctx, call(map[string]any{}))
	if !result.IsError {
		t.Error("expected error for missing article_id")
	}
}

func TestNilSource(t *testing.T) {
	srv := NewServer(viz.Default(), nil, nil)
	result, _ := srv.handleCheckContent(context.Background(), call(nil))
	if !result.IsError {
		t.Error("expected error without a content source")
	}
}
