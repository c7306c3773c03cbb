package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/beyond-scaling/internal/book"
	"github.com/ziadkadry99/beyond-scaling/internal/content"
	"github.com/ziadkadry99/beyond-scaling/internal/server"
	"github.com/ziadkadry99/beyond-scaling/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the book over HTTP",
	Long: `Starts the HTTP server: rendered chapters and articles, raw markdown,
the visualization API and the fullscreen overlay websocket. Articles are
cached; with --watch, edits in the content directory invalidate the cache.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("watch", false, "invalidate cached articles when content files change")
	serveCmd.Flags().Bool("open", false, "open the browser once the server is up")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}
	watch, _ := cmd.Flags().GetBool("watch")
	watch = watch || cfg.Watch
	open, _ := cmd.Flags().GetBool("open")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cached := content.NewCachedSource(newSource(cfg), cfg.CacheTTL())
	if watch {
		if cfg.ContentOrigin != "" {
			logger.Warn("--watch ignored: content is served from a remote origin")
		} else {
			go func() {
				if err := content.Watch(ctx, cfg.ContentDir, cached, logger); err != nil {
					logger.WithError(err).Error("Content watcher stopped")
				}
			}()
		}
	}

	srv := server.New(server.Config{
		Port:      cfg.Port,
		SiteTitle: cfg.SiteTitle,
		AllowAll:  cfg.AllowAllOrigins,
	}, book.FromConfig(cfg), cached, newRenderer(cfg, logger), logger)

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Shutdown")
		}
	}()

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	logger.WithFields(logrus.Fields{
		"url":     url,
		"content": contentLocation(cfg.ContentDir, cfg.ContentOrigin),
		"watch":   watch,
	}).Info("Serving book")
	if open {
		go site.OpenBrowser(url)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func contentLocation(dir, origin string) string {
	if origin != "" {
		return origin
	}
	return dir
}
