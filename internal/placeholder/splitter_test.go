package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitNoPlaceholders(t *testing.T) {
	input := "# Heading\n\nJust prose, nothing else."
	segments := Split(input)
	require.Len(t, segments, 1)
	assert.Equal(t, KindProse, segments[0].Kind)
	assert.Equal(t, input, segments[0].Text)
}

func TestSplitEmptyInput(t *testing.T) {
	assert.Empty(t, Split(""))
}

func TestSplitIntroExample(t *testing.T) {
	segments := Split("Intro text.\n\n{visualization:fep}\n\nMore text.")
	require.Len(t, segments, 3)

	assert.Equal(t, Segment{Kind: KindProse, Text: "Intro text.\n\n", Source: "Intro text.\n\n"}, segments[0])
	assert.Equal(t, KindVisualization, segments[1].Kind)
	assert.Equal(t, "fep", segments[1].TypeKey)
	assert.Equal(t, "{visualization:fep}", segments[1].Source)
	assert.Equal(t, "\n\nMore text.", segments[2].Text)
}

func TestSplitBackToBackTags(t *testing.T) {
	segments := Split("{visualization:brain}{visualization:timeline}")
	require.Len(t, segments, 2)
	assert.Equal(t, "brain", segments[0].TypeKey)
	assert.Equal(t, "timeline", segments[1].TypeKey)
}

func TestSplitUnknownTypeStillSegment(t *testing.T) {
	segments := Split("{visualization:not-a-real-type}")
	require.Len(t, segments, 1)
	assert.True(t, segments[0].IsVisualization())
	assert.Equal(t, "not-a-real-type", segments[0].TypeKey)
}

func TestSplitLegacyComment(t *testing.T) {
	segments := Split("<!-- visualization:scaling -->")
	require.Len(t, segments, 1)
	assert.Equal(t, "scaling", segments[0].TypeKey)
	assert.Equal(t, SyntaxComment, segments[0].Syntax)
}

func TestSplitCoverage(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"{visualization:a}",
		"x{visualization:a}y{visualization:b}z",
		"head\n<!-- visualization:a -->\ntail",
		"head\nvisualization a\ntail\n",
		"head\r\nvisualization a\r\ntail\r\n",
		"visualization a\r",
		"p\n<div class='visualization-container' data-type='a'></div>\nq",
		"p &lt;div class=\"visualization-container\" data-type=\"a\"&gt;&lt;/div&gt; q",
		"```\n{visualization:inside-code}\n```",
		"{visualization:a}{visualization:b}{visualization:c}",
	}
	for _, in := range inputs {
		segments := Split(in)
		assert.Equal(t, in, Join(segments), "round trip for %q", in)
		for _, s := range segments {
			if !s.IsVisualization() {
				assert.NotEmpty(t, s.Text, "empty prose segment for %q", in)
			}
		}
	}
}

func TestSplitOrdering(t *testing.T) {
	input := "a{visualization:one}b{visualization:two}{visualization:three}c"
	segments := Split(input)

	proseCount, vizCount := Counts(segments)
	assert.Equal(t, 3, vizCount)
	assert.LessOrEqual(t, proseCount, vizCount+1)

	var order []string
	for _, s := range segments {
		if s.IsVisualization() {
			order = append(order, s.TypeKey)
		} else {
			order = append(order, s.Text)
		}
	}
	assert.Equal(t, []string{"a", "one", "b", "two", "three", "c"}, order)
}

func TestSplitPlaceholderInsideCodeBlockIsMatched(t *testing.T) {
	segments := Split("```\n{visualization:fep}\n```")
	_, vizCount := Counts(segments)
	assert.Equal(t, 1, vizCount)
}
