package site

import (
	"encoding/json"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxSummary = 200
	maxContent = 2000
)

// SearchEntry represents a single searchable page of the site.
type SearchEntry struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// NewSearchEntry extracts the searchable text of a rendered article.
// Visualization chrome and scripts are left out.
func NewSearchEntry(path, title, renderedHTML string) (SearchEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(renderedHTML))
	if err != nil {
		return SearchEntry{}, err
	}
	doc.Find("script, style, .viz-card, .viz-error, pre.mermaid").Remove()

	entry := SearchEntry{Path: path, Title: title}
	if entry.Title == "" {
		entry.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if entry.Title == "" {
		entry.Title = path
	}

	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := collapse(s.Text())
		if text == "" {
			return true
		}
		entry.Summary = truncate(text, maxSummary)
		return false
	})
	entry.Content = truncate(collapse(doc.Text()), maxContent)
	return entry, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
