package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/beyond-scaling/internal/config"
)

func defaultBook() *Book {
	return FromConfig(config.DefaultConfig())
}

func TestFromConfig(t *testing.T) {
	b := defaultBook()
	require.Len(t, b.Sections, 3)
	ch, ok := b.Chapter("neuroscience", 0)
	require.True(t, ok)
	assert.Equal(t, "neuroscience_intro", ch.ID)
	assert.Equal(t, "neuroscience_principles", ch.ContentID)

	_, ok = b.Chapter("neuroscience", 4)
	assert.False(t, ok)
	_, ok = b.Chapter("nope", 0)
	assert.False(t, ok)
	_, ok = b.Chapter("scaling", -1)
	assert.False(t, ok)
}

func TestNeighbours(t *testing.T) {
	b := defaultBook()
	tests := []struct {
		name     string
		section  string
		index    int
		wantPrev string
		wantNext string
	}{
		{"first chapter of book", "scaling", 0, "", "scaling_limitations"},
		{"middle", "scaling", 1, "scaling_intro", "scaling_conclusion"},
		{"end of section crosses forward", "scaling", 3, "scaling_conclusion", "neuroscience_intro"},
		{"start of section crosses back", "neuroscience", 0, "overview", "consciousness_intelligence"},
		{"last chapter of book", "practical", 2, "practical_recommendations", ""},
		{"out of range", "practical", 9, "", ""},
		{"unknown section", "nope", 0, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, next := b.Neighbours(tt.section, tt.index)
			if tt.wantPrev == "" {
				assert.Nil(t, prev)
			} else {
				require.NotNil(t, prev)
				assert.Equal(t, tt.wantPrev, prev.Chapter.ID)
			}
			if tt.wantNext == "" {
				assert.Nil(t, next)
			} else {
				require.NotNil(t, next)
				assert.Equal(t, tt.wantNext, next.Chapter.ID)
			}
		})
	}

	prev, _ := b.Neighbours("neuroscience", 0)
	assert.Equal(t, Location{SectionID: "scaling", Index: 3, Chapter: prev.Chapter}, *prev)
}

func TestProgressOf(t *testing.T) {
	p := ProgressOf(1, 4)
	assert.Equal(t, "Chapter 2 of 4", p.Label)
	assert.Equal(t, 50, p.Percent)

	assert.Equal(t, 100, ProgressOf(2, 3).Percent)
	assert.Equal(t, Progress{}, ProgressOf(0, 0))
}

func TestArticleTitle(t *testing.T) {
	b := defaultBook()
	assert.Equal(t, "Prediction Mechanisms: AI vs. Brain", b.ArticleTitle("4_prediction_mechanisms"))
	assert.Equal(t, NotFoundTitle, b.ArticleTitle("missing"))
}

func TestContentIDs(t *testing.T) {
	b := &Book{
		Sections: []Section{{ID: "s", Chapters: []Chapter{{ContentID: "a"}, {ContentID: "b"}}}},
		Articles: []Article{{ID: "b"}, {ID: "c"}},
	}
	assert.Equal(t, []string{"a", "b", "c"}, b.ContentIDs())
}
