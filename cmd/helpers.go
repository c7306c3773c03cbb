package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/beyond-scaling/internal/config"
	"github.com/ziadkadry99/beyond-scaling/internal/content"
	"github.com/ziadkadry99/beyond-scaling/internal/logging"
	"github.com/ziadkadry99/beyond-scaling/internal/render"
	"github.com/ziadkadry99/beyond-scaling/internal/viz"
)

const fetchTimeout = 15 * time.Second

// loadConfig loads and validates the config, applying the global logging
// flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `beyondscaling init` to create a config file", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// setup loads the config and builds the logger every command uses.
func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newSource returns the article source: the remote origin when one is
// configured, the content directory otherwise.
func newSource(cfg *config.Config) content.Source {
	if cfg.ContentOrigin != "" {
		return content.NewHTTPSource(cfg.ContentOrigin, fetchTimeout)
	}
	return newDirSource(cfg)
}

func newDirSource(cfg *config.Config) *content.DirSource {
	return &content.DirSource{Dir: cfg.ContentDir, Include: cfg.Include, Exclude: cfg.Exclude}
}

func newRenderer(cfg *config.Config, logger logrus.FieldLogger) *render.Renderer {
	return render.New(viz.Default(),
		render.WithHighlightStyle(cfg.HighlightStyle),
		render.WithLogger(logger),
	)
}
