package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listVisualizationsTool defines the list_visualizations MCP tool.
var listVisualizationsTool = mcp.NewTool("list_visualizations",
	mcp.WithDescription("List the registered visualization types with their titles and descriptions. Use the type key in a {visualization:<key>} placeholder."),
)

// scanPlaceholdersTool defines the scan_placeholders MCP tool.
var scanPlaceholdersTool = mcp.NewTool("scan_placeholders",
	mcp.WithDescription("Split an article into prose and visualization segments. Pass either an article id or raw markdown text."),
	mcp.WithString("article_id",
		mcp.Description("Id of the article to fetch, without the .md extension"),
	),
	mcp.WithString("text",
		mcp.Description("Raw markdown to scan instead of a stored article"),
	),
)

// checkContentTool defines the check_content MCP tool.
var checkContentTool = mcp.NewTool("check_content",
	mcp.WithDescription("Check articles for unknown visualization types and legacy placeholder syntax."),
	mcp.WithString("article_ids",
		mcp.Description("Comma-separated article ids (default: every article of the book)"),
	),
)

// getArticleTool defines the get_article MCP tool.
var getArticleTool = mcp.NewTool("get_article",
	mcp.WithDescription("Get the raw markdown of an article."),
	mcp.WithString("article_id",
		mcp.Required(),
		mcp.Description("Id of the article, without the .md extension"),
	),
)
