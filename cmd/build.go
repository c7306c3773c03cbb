package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/beyond-scaling/internal/book"
	"github.com/ziadkadry99/beyond-scaling/internal/progress"
	"github.com/ziadkadry99/beyond-scaling/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the book as a static website",
	Long: `Renders every chapter, article and visualization into a self-contained
static site with a search index. Missing articles produce an error page
instead of failing the build.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "output directory (overrides config)")
	buildCmd.Flags().Bool("serve", false, "preview the site over HTTP after building")
	buildCmd.Flags().Int("port", 0, "preview port (defaults to the configured port)")
	buildCmd.Flags().Bool("open", false, "open the browser when previewing")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := book.FromConfig(cfg)
	gen := &site.Generator{
		Book:      b,
		Source:    newSource(cfg),
		Renderer:  newRenderer(cfg, logger),
		Pages:     site.NewPages(cfg.SiteTitle, b),
		OutputDir: cfg.OutputDir,
		Reporter:  progress.NewReporter(),
		Log:       logger,
	}
	res, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", cfg.OutputDir, res.Pages)
	if len(res.Missing) > 0 {
		fmt.Printf("  Missing content: %s\n", strings.Join(res.Missing, ", "))
	}
	if res.Failures > 0 {
		fmt.Printf("  Visualization errors: %d (run `beyondscaling check` for details)\n", res.Failures)
	}

	if serve, _ := cmd.Flags().GetBool("serve"); serve {
		port, _ := cmd.Flags().GetInt("port")
		if port <= 0 {
			port = cfg.Port
		}
		open, _ := cmd.Flags().GetBool("open")
		return site.Preview(ctx, cfg.OutputDir, port, open, logger)
	}
	return nil
}
