// Package book is the table of contents: sections with ordered chapters and
// the standalone articles, plus chapter-to-chapter navigation.
package book

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/beyond-scaling/internal/config"
)

// NotFoundTitle is shown for article ids missing from the catalogue.
const NotFoundTitle = "Article Not Found"

// Chapter is one page of a section. ContentID is the content source id of
// its markdown file.
type Chapter struct {
	ID        string
	Title     string
	ContentID string
}

// Section is an ordered list of chapters.
type Section struct {
	ID          string
	Title       string
	Icon        string
	Description string
	Chapters    []Chapter
}

// Article is a standalone article.
type Article struct {
	ID    string
	Title string
}

// Book holds the catalogue.
type Book struct {
	Sections []Section
	Articles []Article
}

// Location addresses a chapter.
type Location struct {
	SectionID string
	Index     int
	Chapter   Chapter
}

// Progress is a reader's position within a section.
type Progress struct {
	Index   int // zero-based
	Total   int
	Label   string
	Percent int
}

// FromConfig builds the book from configuration.
func FromConfig(cfg *config.Config) *Book {
	b := &Book{}
	for _, s := range cfg.Sections {
		sec := Section{ID: s.ID, Title: s.Title, Icon: s.Icon, Description: s.Description}
		for _, ch := range s.Chapters {
			sec.Chapters = append(sec.Chapters, Chapter{
				ID:        ch.ID,
				Title:     ch.Title,
				ContentID: strings.TrimSuffix(ch.File, ".md"),
			})
		}
		b.Sections = append(b.Sections, sec)
	}
	for _, a := range cfg.Articles {
		b.Articles = append(b.Articles, Article{ID: a.ID, Title: a.Title})
	}
	return b
}

// Section returns the section with the given id.
func (b *Book) Section(id string) (Section, bool) {
	for _, s := range b.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Chapter returns the chapter at index within a section.
func (b *Book) Chapter(sectionID string, index int) (Chapter, bool) {
	s, ok := b.Section(sectionID)
	if !ok || index < 0 || index >= len(s.Chapters) {
		return Chapter{}, false
	}
	return s.Chapters[index], true
}

// Neighbours returns the chapters before and after the given one. Moving
// past either end of a section continues into the adjacent section.
func (b *Book) Neighbours(sectionID string, index int) (prev, next *Location) {
	si := -1
	for i, s := range b.Sections {
		if s.ID == sectionID {
			si = i
			break
		}
	}
	if si < 0 || index < 0 || index >= len(b.Sections[si].Chapters) {
		return nil, nil
	}
	sec := b.Sections[si]

	switch {
	case index > 0:
		prev = &Location{SectionID: sec.ID, Index: index - 1, Chapter: sec.Chapters[index-1]}
	case si > 0:
		p := b.Sections[si-1]
		if n := len(p.Chapters); n > 0 {
			prev = &Location{SectionID: p.ID, Index: n - 1, Chapter: p.Chapters[n-1]}
		}
	}

	switch {
	case index < len(sec.Chapters)-1:
		next = &Location{SectionID: sec.ID, Index: index + 1, Chapter: sec.Chapters[index+1]}
	case si < len(b.Sections)-1:
		n := b.Sections[si+1]
		if len(n.Chapters) > 0 {
			next = &Location{SectionID: n.ID, Index: 0, Chapter: n.Chapters[0]}
		}
	}
	return prev, next
}

// ProgressOf returns "Chapter i of n" and the percentage read.
func ProgressOf(index, total int) Progress {
	if total <= 0 {
		return Progress{}
	}
	return Progress{
		Index:   index,
		Total:   total,
		Label:   fmt.Sprintf("Chapter %d of %d", index+1, total),
		Percent: (index + 1) * 100 / total,
	}
}

// ArticleTitle returns the title of a standalone article, or NotFoundTitle.
func (b *Book) ArticleTitle(id string) string {
	for _, a := range b.Articles {
		if a.ID == id {
			return a.Title
		}
	}
	return NotFoundTitle
}

// ContentIDs returns every content id the book references, chapters first,
// without duplicates.
func (b *Book) ContentIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, s := range b.Sections {
		for _, ch := range s.Chapters {
			add(ch.ContentID)
		}
	}
	for _, a := range b.Articles {
		add(a.ID)
	}
	return ids
}
