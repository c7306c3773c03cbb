package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	figurePattern  = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)\s*\*\*Caption:\*\*\s*([^\n]+)`)
	calloutPattern = regexp.MustCompile(`(?s):::([a-zA-Z]*)\s*(.*?):::`)
	mermaidPattern = regexp.MustCompile("(?ms)^```mermaid[ \t]*\n(.*?)\n```[ \t]*$")
)

// calloutStyle is the presentation of one callout kind.
type calloutStyle struct {
	Icon   string
	Colors string
}

var calloutStyles = map[string]calloutStyle{
	"note":    {Icon: "ℹ️", Colors: "bg-blue-50 text-blue-800 border-blue-200"},
	"warning": {Icon: "⚠️", Colors: "bg-yellow-50 text-yellow-800 border-yellow-200"},
	"danger":  {Icon: "🚫", Colors: "bg-red-50 text-red-800 border-red-200"},
	"tip":     {Icon: "💡", Colors: "bg-green-50 text-green-800 border-green-200"},
	"default": {Icon: "📝", Colors: "bg-gray-50 text-gray-800 border-gray-200"},
}

// CalloutKind maps a callout type token to the kind it renders as. Matching
// is case-insensitive and unknown tokens fall back to "default".
func CalloutKind(token string) string {
	k := strings.ToLower(token)
	if _, ok := calloutStyles[k]; ok {
		return k
	}
	return "default"
}

// preprocess rewrites the markdown shorthands the converter does not know
// about into HTML blocks. Mermaid fences become diagram containers; other
// fenced code is left to the highlighting extension.
func preprocess(src string) string {
	src = mermaidPattern.ReplaceAllStringFunc(src, func(m string) string {
		g := mermaidPattern.FindStringSubmatch(m)
		return `<pre class="mermaid">` + html.EscapeString(g[1]) + `</pre>`
	})

	src = figurePattern.ReplaceAllStringFunc(src, func(m string) string {
		g := figurePattern.FindStringSubmatch(m)
		return fmt.Sprintf(
			"\n\n<figure class=\"figure my-8\"><img src=\"%s\" alt=\"%s\" class=\"rounded-lg w-full\"/>"+
				"<figcaption class=\"text-center text-sm text-gray-600 mt-2\">%s</figcaption></figure>\n\n",
			html.EscapeString(g[2]), html.EscapeString(g[1]), strings.TrimSpace(g[3]))
	})

	return calloutPattern.ReplaceAllStringFunc(src, func(m string) string {
		g := calloutPattern.FindStringSubmatch(m)
		kind := CalloutKind(g[1])
		style := calloutStyles[kind]
		// The body sits between blank lines so it is parsed as markdown
		// rather than swallowed by the surrounding HTML block.
		return fmt.Sprintf(
			"\n\n<div class=\"callout callout-%s %s p-4 rounded-lg border my-6\" data-callout=\"%s\">\n"+
				"<div class=\"callout-icon mr-3 text-xl\">%s</div>\n<div class=\"callout-body\">\n\n%s\n\n</div>\n</div>\n\n",
			kind, style.Colors, kind, style.Icon, strings.TrimSpace(g[2]))
	})
}
