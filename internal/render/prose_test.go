package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderProse(t *testing.T, src string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, New(nil).RenderProse(&buf, src))
	return buf.String()
}

func TestFigureWithCaption(t *testing.T) {
	out := renderProse(t, "![A \"brain\"](img/brain.png)\n**Caption:** The cortex at rest\n")
	doc := parse(t, out)

	fig := doc.Find("figure")
	require.Equal(t, 1, fig.Length())
	src, _ := fig.Find("img").Attr("src")
	alt, _ := fig.Find("img").Attr("alt")
	assert.Equal(t, "img/brain.png", src)
	assert.Equal(t, `A "brain"`, alt)
	assert.Equal(t, "The cortex at rest", fig.Find("figcaption").Text())
}

func TestCallouts(t *testing.T) {
	tests := []struct {
		token string
		kind  string
		icon  string
	}{
		{"note", "note", "ℹ️"},
		{"WARNING", "warning", "⚠️"},
		{"Danger", "danger", "🚫"},
		{"tip", "tip", "💡"},
		{"aside", "default", "📝"},
		{"", "default", "📝"},
	}
	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.token, func(t *testing.T) {
			out := renderProse(t, ":::"+tt.token+"\nMind the **gap**.\n:::\n")
			doc := parse(t, out)
			box := doc.Find(".callout")
			require.Equal(t, 1, box.Length(), out)
			kind, _ := box.Attr("data-callout")
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.icon, box.Find(".callout-icon").Text())
			assert.Equal(t, "gap", box.Find(".callout-body strong").Text())
		})
	}
}

func TestFencedCodeIsWrappedAndEscaped(t *testing.T) {
	out := renderProse(t, "```go\nif a < b && c > d {}\n```\n\n```\n<script>alert(1)</script>\n```\n")
	doc := parse(t, out)

	wrappers := doc.Find(".code-block-wrapper")
	require.Equal(t, 2, wrappers.Length())
	lang, _ := wrappers.First().Attr("data-language")
	assert.Equal(t, "go", lang)
	assert.Contains(t, wrappers.First().Text(), "if a < b && c > d {}")

	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestMermaidFence(t *testing.T) {
	out := renderProse(t, "```mermaid\nflowchart TD\n  A --> B\n```\n")
	doc := parse(t, out)
	assert.Equal(t, 1, doc.Find("pre.mermaid").Length())
	assert.Contains(t, doc.Find("pre.mermaid").Text(), "A --> B")
}

func TestExternalLinks(t *testing.T) {
	out := renderProse(t, "[paper](https://example.org/fep) and [chapter](scaling_intro.md)\n")
	doc := parse(t, out)

	ext := doc.Find(`a[href="https://example.org/fep"]`)
	target, _ := ext.Attr("target")
	rel, _ := ext.Attr("rel")
	assert.Equal(t, "_blank", target)
	assert.Equal(t, "noopener noreferrer", rel)

	_, hasTarget := doc.Find(`a[href="scaling_intro.md"]`).Attr("target")
	assert.False(t, hasTarget)
}

func TestMalformedPlaceholderStaysProse(t *testing.T) {
	doc, err := New(nil).Render("Use {visualization:} or {visualization:Brain} in text.")
	require.NoError(t, err)
	assert.Empty(t, doc.Failures)
	assert.True(t, strings.Contains(doc.HTML, "{visualization:Brain}"))
}
