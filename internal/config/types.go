package config

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = ".beyondscaling.yml"

// EnvPrefix prefixes environment overrides, e.g. BEYOND_PORT.
const EnvPrefix = "BEYOND_"

// Config is the top-level configuration, corresponding to .beyondscaling.yml.
type Config struct {
	SiteTitle       string    `yaml:"site_title" koanf:"site_title"`
	ContentDir      string    `yaml:"content_dir" koanf:"content_dir"`
	ContentOrigin   string    `yaml:"content_origin,omitempty" koanf:"content_origin"`
	OutputDir       string    `yaml:"output_dir" koanf:"output_dir"`
	Port            int       `yaml:"port" koanf:"port"`
	AllowAllOrigins bool      `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	HighlightStyle  string    `yaml:"highlight_style" koanf:"highlight_style"`
	CacheTTLSeconds int       `yaml:"cache_ttl_seconds" koanf:"cache_ttl_seconds"`
	Watch           bool      `yaml:"watch" koanf:"watch"`
	LogLevel        string    `yaml:"log_level" koanf:"log_level"`
	LogFormat       string    `yaml:"log_format" koanf:"log_format"`
	Include         []string  `yaml:"include,omitempty" koanf:"include"`
	Exclude         []string  `yaml:"exclude,omitempty" koanf:"exclude"`
	Articles        []Article `yaml:"articles" koanf:"articles"`
	Sections        []Section `yaml:"sections" koanf:"sections"`
}

// Article is a standalone article listed on the home page.
type Article struct {
	ID    string `yaml:"id" koanf:"id"`
	Title string `yaml:"title" koanf:"title"`
}

// Section is a part of the book.
type Section struct {
	ID          string    `yaml:"id" koanf:"id"`
	Title       string    `yaml:"title" koanf:"title"`
	Icon        string    `yaml:"icon,omitempty" koanf:"icon"`
	Description string    `yaml:"description,omitempty" koanf:"description"`
	Chapters    []Chapter `yaml:"chapters" koanf:"chapters"`
}

// Chapter is one page of a section, backed by a markdown file in the
// content directory.
type Chapter struct {
	ID    string `yaml:"id" koanf:"id"`
	Title string `yaml:"title" koanf:"title"`
	File  string `yaml:"file" koanf:"file"`
}
