package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/beyond-scaling/internal/book"
	mcpserver "github.com/ziadkadry99/beyond-scaling/internal/mcp"
	"github.com/ziadkadry99/beyond-scaling/internal/viz"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio exposing tools to list visualizations, scan articles for placeholders and check content.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		ids := book.FromConfig(cfg).ContentIDs()
		logger.WithField("articles", len(ids)).Info("MCP server started on stdio")

		srv := mcpserver.NewServer(viz.Default(), newSource(cfg), ids)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
