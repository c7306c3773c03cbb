package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (BEYOND_*). Unset fields get defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: BEYOND_PORT -> port, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// CacheTTL returns the content cache lifetime. Zero means entries live until
// the watcher invalidates them.
func (c *Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds < 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SiteTitle == "" {
		return fmt.Errorf("site_title is required")
	}
	if c.ContentDir == "" && c.ContentOrigin == "" {
		return fmt.Errorf("content_dir or content_origin is required")
	}
	if c.ContentOrigin != "" && !strings.HasPrefix(c.ContentOrigin, "http://") && !strings.HasPrefix(c.ContentOrigin, "https://") {
		return fmt.Errorf("invalid content_origin %q: must be an http(s) URL", c.ContentOrigin)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}

	articles := make(map[string]bool)
	for _, a := range c.Articles {
		if a.ID == "" {
			return fmt.Errorf("article id is required")
		}
		if articles[a.ID] {
			return fmt.Errorf("duplicate article id %q", a.ID)
		}
		articles[a.ID] = true
	}

	sections := make(map[string]bool)
	for _, s := range c.Sections {
		if s.ID == "" {
			return fmt.Errorf("section id is required")
		}
		if sections[s.ID] {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		sections[s.ID] = true
		if len(s.Chapters) == 0 {
			return fmt.Errorf("section %q has no chapters", s.ID)
		}
		chapters := make(map[string]bool)
		for _, ch := range s.Chapters {
			if ch.ID == "" {
				return fmt.Errorf("section %q: chapter id is required", s.ID)
			}
			if chapters[ch.ID] {
				return fmt.Errorf("section %q: duplicate chapter id %q", s.ID, ch.ID)
			}
			chapters[ch.ID] = true
			if !strings.HasSuffix(ch.File, ".md") || strings.ContainsAny(ch.File, `/\`) {
				return fmt.Errorf("section %q chapter %q: file %q must be a .md file name", s.ID, ch.ID, ch.File)
			}
		}
	}

	return nil
}
