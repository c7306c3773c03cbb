package placeholder

import "strings"

// Kind distinguishes prose segments from visualization segments.
type Kind string

const (
	KindProse         Kind = "prose"
	KindVisualization Kind = "visualization"
)

// Segment is a contiguous span of article text. Prose segments carry Text;
// visualization segments carry TypeKey. Source is always the original span.
type Segment struct {
	Kind    Kind   `json:"kind"`
	Text    string `json:"text,omitempty"`
	TypeKey string `json:"type_key,omitempty"`
	Syntax  Syntax `json:"syntax,omitempty"`
	Source  string `json:"source"`
}

// IsVisualization reports whether s references a visualization.
func (s Segment) IsVisualization() bool { return s.Kind == KindVisualization }

// Split partitions text into prose and visualization segments in source
// order. Zero-length prose between adjacent tags is omitted.
func Split(text string) []Segment {
	return SplitMatches(text, Scan(text))
}

// SplitMatches is Split with a precomputed match list. matches must come from
// Scan(text).
func SplitMatches(text string, matches []Match) []Segment {
	segments := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m.Start > last {
			segments = append(segments, prose(text[last:m.Start]))
		}
		segments = append(segments, Segment{
			Kind:    KindVisualization,
			TypeKey: m.TypeKey,
			Syntax:  m.Syntax,
			Source:  text[m.Start:m.End],
		})
		last = m.End
	}
	if last < len(text) {
		segments = append(segments, prose(text[last:]))
	}
	return segments
}

func prose(s string) Segment {
	return Segment{Kind: KindProse, Text: s, Source: s}
}

// Join concatenates the original spans of segments. Join(Split(t)) == t.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Source)
	}
	return b.String()
}

// Counts returns the number of prose and visualization segments.
func Counts(segments []Segment) (proseCount, vizCount int) {
	for _, s := range segments {
		if s.IsVisualization() {
			vizCount++
		} else {
			proseCount++
		}
	}
	return proseCount, vizCount
}
