// Package placeholder finds visualization tags in article text and splits the
// text into prose and visualization segments.
package placeholder

import (
	"regexp"
	"sort"
	"strings"
)

// Syntax identifies which surface form a placeholder was written in.
type Syntax string

const (
	SyntaxCanonical   Syntax = "canonical"    // {visualization:key}
	SyntaxComment     Syntax = "comment"      // <!-- visualization:key -->
	SyntaxBareLine    Syntax = "bare-line"    // a line containing only "visualization key"
	SyntaxHTML        Syntax = "html"         // <div class="visualization-container" data-type="key"></div>
	SyntaxEscapedHTML Syntax = "escaped-html" // the same div, entity-encoded
)

// Match is one placeholder occurrence. Start and End are byte offsets into the
// scanned text, End exclusive.
type Match struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	TypeKey string `json:"type_key"`
	Syntax  Syntax `json:"syntax"`
}

// Text returns the original token the match covers.
func (m Match) Text(src string) string {
	return src[m.Start:m.End]
}

// rule pairs a surface syntax with the pattern recognizing it. The first
// capture group of every pattern is the type key.
type rule struct {
	syntax  Syntax
	pattern *regexp.Regexp
}

const (
	typeKeyPattern = `([a-z0-9_-]+)`
	escapedQuote   = `(?:&quot;|&#34;|&#x22;|&#39;|&#x27;|&apos;|"|')`
)

// rules is applied in order. A later rule never claims text an earlier rule
// already matched, so the escaped form is recognized before the plain HTML form.
var rules = []rule{
	{
		syntax: SyntaxEscapedHTML,
		pattern: regexp.MustCompile(`&lt;div class=` + escapedQuote + `visualization-container` + escapedQuote +
			` data-type=` + escapedQuote + typeKeyPattern + escapedQuote + `&gt;&lt;/div&gt;`),
	},
	{
		syntax:  SyntaxHTML,
		pattern: regexp.MustCompile(`<div class=['"]visualization-container['"] data-type=['"]` + typeKeyPattern + `['"]></div>`),
	},
	{
		syntax:  SyntaxComment,
		pattern: regexp.MustCompile(`<!--\s*visualization:` + typeKeyPattern + `\s*-->`),
	},
	{
		// A trailing \r belongs to the match so CRLF lines still qualify.
		syntax:  SyntaxBareLine,
		pattern: regexp.MustCompile(`(?m)^[ \t]*visualization[ \t]+` + typeKeyPattern + `[ \t\r]*$`),
	},
	{
		syntax:  SyntaxCanonical,
		pattern: regexp.MustCompile(`\{visualization:` + typeKeyPattern + `\}`),
	},
}

// Precedence returns the syntaxes in the order they are matched.
func Precedence() []Syntax {
	out := make([]Syntax, len(rules))
	for i, r := range rules {
		out[i] = r.syntax
	}
	return out
}

// Scan returns every placeholder in text, non-overlapping, ordered by Start.
// Unknown type keys are not an error here; text that only resembles a
// placeholder is left alone.
func Scan(text string) []Match {
	var matches []Match
	for _, r := range rules {
		for _, loc := range r.pattern.FindAllStringSubmatchIndex(text, -1) {
			m := Match{
				Start:   loc[0],
				End:     loc[1],
				TypeKey: text[loc[2]:loc[3]],
				Syntax:  r.syntax,
			}
			if overlapsAny(m, matches) {
				continue
			}
			matches = append(matches, m)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})
	return matches
}

func overlapsAny(m Match, claimed []Match) bool {
	for _, c := range claimed {
		if m.Start < c.End && c.Start < m.End {
			return true
		}
	}
	return false
}

// Canonical returns the canonical token for typeKey.
func Canonical(typeKey string) string {
	return "{visualization:" + typeKey + "}"
}

// References returns the type keys referenced by text, in source order.
// Duplicates are kept.
func References(text string) []string {
	matches := Scan(text)
	keys := make([]string, len(matches))
	for i, m := range matches {
		keys[i] = m.TypeKey
	}
	return keys
}

// Rewrite replaces every legacy placeholder with its canonical form. It
// returns the new text and the number of tokens rewritten.
func Rewrite(text string) (string, int) {
	matches := Scan(text)
	if len(matches) == 0 {
		return text, 0
	}
	out := make([]byte, 0, len(text))
	last, n := 0, 0
	for _, m := range matches {
		out = append(out, text[last:m.Start]...)
		if m.Syntax == SyntaxCanonical {
			out = append(out, text[m.Start:m.End]...)
		} else {
			out = append(out, Canonical(m.TypeKey)...)
			if strings.HasSuffix(m.Text(text), "\r") {
				out = append(out, '\r')
			}
			n++
		}
		last = m.End
	}
	out = append(out, text[last:]...)
	return string(out), n
}
