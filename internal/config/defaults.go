package config

// DefaultExcludes are content file patterns skipped by default.
var DefaultExcludes = []string{
	".*",
	"*~",
	"*.swp",
}

// DefaultArticles are the standalone articles of the book.
var DefaultArticles = []Article{
	{ID: "1_scaling_limitations", Title: "Scaling Limitations in AI: A Deeper Analysis"},
	{ID: "2_neuroscience_principles", Title: "Neuroscience Principles for AI Development"},
	{ID: "3_consciousness_vs_intelligence", Title: "Consciousness vs. Intelligence: Critical Distinctions"},
	{ID: "4_prediction_mechanisms", Title: "Prediction Mechanisms: AI vs. Brain"},
	{ID: "5_practical_recommendations", Title: "Practical Recommendations for Neuroscience-Informed AI Research"},
	{ID: "6_references_and_resources", Title: "References and Resources"},
	{ID: "draft_doc", Title: "Beyond Scaling: Why AI Needs Neuroscience to Achieve True Intelligence"},
	{ID: "test-visualizations", Title: "Interactive Visualizations Test Page"},
}

// DefaultSections are the three parts of the book and their chapters.
var DefaultSections = []Section{
	{
		ID:          "scaling",
		Title:       "The Problem with Current AI",
		Icon:        "🔍",
		Description: "Understand the limitations of current AI scaling approaches and why they fall short.",
		Chapters: []Chapter{
			{ID: "scaling_intro", Title: "Introduction to Scaling Issues", File: "scaling_intro.md"},
			{ID: "scaling_limitations", Title: "Limitations of Current Approaches", File: "scaling_limitations.md"},
			{ID: "scaling_conclusion", Title: "Beyond Scaling", File: "scaling_conclusion.md"},
			{ID: "overview", Title: "Conceptual Overview", File: "overview.md"},
		},
	},
	{
		ID:          "neuroscience",
		Title:       "Neuroscience Principles",
		Icon:        "🧠",
		Description: "Explore key principles from neuroscience that can inform better AI systems.",
		Chapters: []Chapter{
			{ID: "neuroscience_intro", Title: "Introduction to Neuroscience Principles", File: "neuroscience_principles.md"},
			{ID: "consciousness_intelligence", Title: "Consciousness vs. Intelligence", File: "consciousness_intelligence.md"},
			{ID: "prediction_mechanisms", Title: "Prediction Mechanisms", File: "prediction_mechanisms.md"},
			{ID: "free_energy", Title: "Free Energy Principle", File: "free_energy.md"},
		},
	},
	{
		ID:          "practical",
		Title:       "Practical Applications",
		Icon:        "⚙️",
		Description: "Discover practical applications and recommendations for future AI development.",
		Chapters: []Chapter{
			{ID: "practical_intro", Title: "Practical Applications Overview", File: "practical_applications.md"},
			{ID: "practical_recommendations", Title: "Research Recommendations", File: "practical_recommendations.md"},
			{ID: "resources", Title: "References & Resources", File: "resources.md"},
		},
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// applyDefaults fills every unset field.
func (c *Config) applyDefaults() {
	if c.SiteTitle == "" {
		c.SiteTitle = "Beyond Scaling"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.HighlightStyle == "" {
		c.HighlightStyle = "github"
	}
	if c.CacheTTLSeconds == 0 {
		c.CacheTTLSeconds = 300
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.Exclude == nil {
		c.Exclude = append([]string(nil), DefaultExcludes...)
	}
	if len(c.Articles) == 0 {
		c.Articles = append([]Article(nil), DefaultArticles...)
	}
	if len(c.Sections) == 0 {
		c.Sections = cloneSections(DefaultSections)
	}
}

func cloneSections(in []Section) []Section {
	out := make([]Section, len(in))
	for i, s := range in {
		s.Chapters = append([]Chapter(nil), s.Chapters...)
		out[i] = s
	}
	return out
}
