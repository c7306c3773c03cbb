// Package lint checks article content against the visualization registry:
// every placeholder must resolve, and legacy placeholder syntax is flagged
// for migration.
package lint

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ziadkadry99/beyond-scaling/internal/content"
	"github.com/ziadkadry99/beyond-scaling/internal/placeholder"
	"github.com/ziadkadry99/beyond-scaling/internal/viz"
)

// Severity of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one problem in one article.
type Finding struct {
	Article  string             `json:"article"`
	Line     int                `json:"line,omitempty"`
	TypeKey  string             `json:"type_key,omitempty"`
	Syntax   placeholder.Syntax `json:"syntax,omitempty"`
	Severity Severity           `json:"severity"`
	Message  string             `json:"message"`
}

func (f Finding) String() string {
	loc := f.Article
	if f.Line > 0 {
		loc = fmt.Sprintf("%s.md:%d", f.Article, f.Line)
	}
	return fmt.Sprintf("%s: %s: %s", loc, f.Severity, f.Message)
}

// Report is the outcome of a check.
type Report struct {
	Checked  int       `json:"checked"`
	Findings []Finding `json:"findings"`
}

// Errors returns the number of error findings.
func (r Report) Errors() int { return r.count(SeverityError) }

// Warnings returns the number of warning findings.
func (r Report) Warnings() int { return r.count(SeverityWarning) }

// HasErrors reports whether any finding is an error.
func (r Report) HasErrors() bool { return r.Errors() > 0 }

func (r Report) count(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

// WriteText writes one line per finding followed by a summary.
func (r Report) WriteText(w io.Writer) error {
	for _, f := range r.Findings {
		if _, err := fmt.Fprintln(w, f.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d articles checked: %d errors, %d warnings\n", r.Checked, r.Errors(), r.Warnings())
	return err
}

// Check fetches each article and inspects its placeholders. Fetch failures
// are reported as errors; the check stops early only if ctx is cancelled.
func Check(ctx context.Context, src content.Source, ids []string, reg *viz.Registry) (Report, error) {
	var r Report
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		text, err := src.Fetch(ctx, id)
		if err != nil {
			r.Findings = append(r.Findings, Finding{Article: id, Severity: SeverityError, Message: err.Error()})
			continue
		}
		r.Checked++
		r.Findings = append(r.Findings, CheckText(id, text, reg)...)
	}
	return r, nil
}

// CheckText inspects a single article's text.
func CheckText(id, text string, reg *viz.Registry) []Finding {
	var out []Finding
	lines := newLineIndex(text)
	for _, m := range placeholder.Scan(text) {
		line := lines.lineOf(m.Start)
		if !reg.Has(m.TypeKey) {
			out = append(out, Finding{
				Article:  id,
				Line:     line,
				TypeKey:  m.TypeKey,
				Syntax:   m.Syntax,
				Severity: SeverityError,
				Message:  fmt.Sprintf("unknown visualization type %q", m.TypeKey),
			})
		}
		if m.Syntax != placeholder.SyntaxCanonical {
			out = append(out, Finding{
				Article:  id,
				Line:     line,
				TypeKey:  m.TypeKey,
				Syntax:   m.Syntax,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("legacy %s placeholder, use %s", m.Syntax, placeholder.Canonical(m.TypeKey)),
			})
		}
	}
	return out
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(text string) lineIndex {
	idx := lineIndex{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func (l lineIndex) lineOf(offset int) int {
	return sort.Search(len(l), func(i int) bool { return l[i] > offset })
}

// Unused returns the registry keys no article references.
func Unused(texts map[string]string, reg *viz.Registry) []string {
	used := make(map[string]bool)
	for _, text := range texts {
		for _, key := range placeholder.References(text) {
			used[key] = true
		}
	}
	var out []string
	for _, key := range reg.Keys() {
		if !used[key] {
			out = append(out, key)
		}
	}
	return out
}

// Summary is a one-line description of a report.
func Summary(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d checked", r.Checked)
	if e := r.Errors(); e > 0 {
		fmt.Fprintf(&b, ", %d errors", e)
	}
	if w := r.Warnings(); w > 0 {
		fmt.Fprintf(&b, ", %d warnings", w)
	}
	return b.String()
}
