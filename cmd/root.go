package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/beyond-scaling/internal/config"
)

var (
	cfgFile  string
	verbose  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "beyondscaling",
	Short: "Serve and build the Beyond Scaling interactive book",
	Long: `Beyond Scaling renders markdown articles with embedded interactive
visualizations. Articles reference visualizations with {visualization:<key>}
placeholders; the renderer replaces each one with the registered widget and
its chrome, and the fullscreen overlay shows an enlarged copy on demand.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
}
