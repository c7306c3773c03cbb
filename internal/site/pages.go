package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/ziadkadry99/beyond-scaling/internal/book"
	"github.com/ziadkadry99/beyond-scaling/internal/viz"
)

// Pages renders the site's HTML pages. Both the server and the static
// generator go through it.
type Pages struct {
	SiteTitle string
	Book      *book.Book

	layout *template.Template
	bodies *template.Template
}

// NewPages parses the page templates.
func NewPages(siteTitle string, b *book.Book) *Pages {
	return &Pages{
		SiteTitle: siteTitle,
		Book:      b,
		layout:    template.Must(template.New("layout").Parse(layoutTemplate)),
		bodies:    template.Must(template.New("bodies").Parse(bodyTemplates)),
	}
}

// layoutData holds the data passed to the layout template for each page.
type layoutData struct {
	Title     string
	SiteTitle string
	Links     Links
	Book      *book.Book
	Active    string // section id highlighted in the sidebar
	Content   template.HTML
}

// ArticleView is a standalone article page. Exactly one of HTML and Error
// is set.
type ArticleView struct {
	ID    string
	Title string
	HTML  template.HTML
	Error string
}

// ChapterView is a chapter page.
type ChapterView struct {
	Section  book.Section
	Index    int
	Chapter  book.Chapter
	Progress book.Progress
	Prev     *book.Location
	Next     *book.Location
	HTML     template.HTML
	Error    string
}

// VizView is the standalone page of one visualization.
type VizView struct {
	Descriptor viz.Descriptor
	HTML       template.HTML
}

type bodyData struct {
	SiteTitle string
	Links     Links
	Book      *book.Book
	View      any
}

func (p *Pages) render(w io.Writer, links Links, title, active, body string, view any) error {
	var content bytes.Buffer
	if err := p.bodies.ExecuteTemplate(&content, body, bodyData{SiteTitle: p.SiteTitle, Links: links, Book: p.Book, View: view}); err != nil {
		return fmt.Errorf("rendering %s: %w", body, err)
	}
	return p.layout.Execute(w, layoutData{
		Title:     title,
		SiteTitle: p.SiteTitle,
		Links:     links,
		Book:      p.Book,
		Active:    active,
		Content:   template.HTML(content.String()),
	})
}

// Home writes the landing page.
func (p *Pages) Home(w io.Writer, links Links) error {
	return p.render(w, links, p.SiteTitle, "", "home", nil)
}

// BookIndex writes the table of contents.
func (p *Pages) BookIndex(w io.Writer, links Links) error {
	return p.render(w, links, "Book", "", "book", nil)
}

// Article writes a standalone article page.
func (p *Pages) Article(w io.Writer, links Links, v ArticleView) error {
	return p.render(w, links, v.Title, "", "article", v)
}

// Chapter writes a chapter page.
func (p *Pages) Chapter(w io.Writer, links Links, v ChapterView) error {
	return p.render(w, links, v.Chapter.Title, v.Section.ID, "chapter", v)
}

// Viz writes the standalone page of a visualization.
func (p *Pages) Viz(w io.Writer, links Links, v VizView) error {
	return p.render(w, links, v.Descriptor.Title, "", "viz", v)
}

// Error writes an error page.
func (p *Pages) Error(w io.Writer, links Links, title, message string) error {
	return p.render(w, links, title, "", "error", message)
}

// Asset returns a bundled asset and its content type.
func Asset(name string) (data, contentType string, ok bool) {
	switch name {
	case "style.css":
		return cssContent, "text/css; charset=utf-8", true
	case "script.js":
		return jsContent, "application/javascript; charset=utf-8", true
	}
	return "", "", false
}
