package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/beyond-scaling/internal/book"
	"github.com/ziadkadry99/beyond-scaling/internal/content"
	"github.com/ziadkadry99/beyond-scaling/internal/logging"
	"github.com/ziadkadry99/beyond-scaling/internal/progress"
	"github.com/ziadkadry99/beyond-scaling/internal/render"
)

// Generator renders the whole book into a static site.
type Generator struct {
	Book      *book.Book
	Source    content.Source
	Renderer  *render.Renderer
	Pages     *Pages
	OutputDir string
	Reporter  progress.Reporter
	Log       logrus.FieldLogger
}

// Result summarises a build.
type Result struct {
	Pages int
	// Missing lists content ids that could not be fetched. Their pages
	// carry an error panel instead of failing the build.
	Missing []string
	// Failures counts visualization placeholders rendered as error blocks.
	Failures int
}

// rendered is one fetched and rendered article, shared by every page
// that shows it.
type rendered struct {
	html  string
	err   error
	entry SearchEntry
}

// Generate writes the site into OutputDir.
func (g *Generator) Generate(ctx context.Context) (Result, error) {
	var res Result
	if g.Book == nil || g.Source == nil || g.Renderer == nil || g.Pages == nil {
		return res, errors.New("generator is missing book, source, renderer or pages")
	}
	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}
	log := logging.OrDiscard(g.Log)

	if err := os.MkdirAll(filepath.Join(g.OutputDir, "assets"), 0o755); err != nil {
		return res, err
	}
	if err := g.writeFile("assets/style.css", []byte(cssContent)); err != nil {
		return res, err
	}
	if err := g.writeFile("assets/script.js", []byte(jsContent)); err != nil {
		return res, err
	}

	total := 2 + len(g.Book.Articles) + len(g.Renderer.Registry().Keys())
	for _, s := range g.Book.Sections {
		total += len(s.Chapters)
	}
	reporter.Start(total)
	defer reporter.Finish()

	step := func(msg string) {
		res.Pages++
		reporter.Update(res.Pages, msg)
	}

	root := StaticLinks{}
	if err := g.writePage("index.html", func(w io.Writer) error { return g.Pages.Home(w, root) }); err != nil {
		return res, err
	}
	step("index.html")
	if err := g.writePage("book.html", func(w io.Writer) error { return g.Pages.BookIndex(w, root) }); err != nil {
		return res, err
	}
	step("book.html")

	cache := make(map[string]*rendered)
	load := func(id string) (*rendered, error) {
		if r, ok := cache[id]; ok {
			return r, nil
		}
		r, err := g.renderContent(ctx, id, &res)
		if err != nil {
			return nil, err
		}
		if r.err != nil {
			res.Missing = append(res.Missing, id)
			log.WithError(r.err).WithField("article", id).Warn("Content unavailable")
		}
		cache[id] = r
		return r, nil
	}

	articleLinks, chapterLinks := StaticLinks{Depth: 1}, StaticLinks{Depth: 2}
	articleTargets, chapterTargets := LinkTargets(g.Book, articleLinks), LinkTargets(g.Book, chapterLinks)

	var index []SearchEntry
	for _, a := range g.Book.Articles {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		r, err := load(a.ID)
		if err != nil {
			return res, err
		}
		view := ArticleView{ID: a.ID, Title: a.Title, HTML: template.HTML(RewriteMDLinks(r.html, articleTargets))}
		if r.err != nil {
			view.HTML = ""
			view.Error = r.err.Error()
		}
		rel := "articles/" + a.ID + ".html"
		if err := g.writePage(rel, func(w io.Writer) error { return g.Pages.Article(w, articleLinks, view) }); err != nil {
			return res, err
		}
		if r.err == nil {
			entry := r.entry
			entry.Path, entry.Title = rel, a.Title
			index = append(index, entry)
		}
		step(rel)
	}

	for _, s := range g.Book.Sections {
		for i, ch := range s.Chapters {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			r, err := load(ch.ContentID)
			if err != nil {
				return res, err
			}
			prev, next := g.Book.Neighbours(s.ID, i)
			view := ChapterView{
				Section:  s,
				Index:    i,
				Chapter:  ch,
				Progress: book.ProgressOf(i, len(s.Chapters)),
				Prev:     prev,
				Next:     next,
				HTML:     template.HTML(RewriteMDLinks(r.html, chapterTargets)),
			}
			if r.err != nil {
				view.Error = r.err.Error()
			}
			rel := fmt.Sprintf("sections/%s/%d.html", s.ID, i)
			if err := g.writePage(rel, func(w io.Writer) error { return g.Pages.Chapter(w, chapterLinks, view) }); err != nil {
				return res, err
			}
			if r.err == nil {
				entry := r.entry
				entry.Path, entry.Title = rel, s.Title+": "+ch.Title
				index = append(index, entry)
			}
			step(rel)
		}
	}

	for _, d := range g.Renderer.Registry().Descriptors() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		var body bytes.Buffer
		if err := g.Renderer.RenderFullscreen(&body, d.TypeKey); err != nil {
			log.WithError(err).WithField("type_key", d.TypeKey).Warn("Fullscreen render failed")
			res.Failures++
		}
		rel := "viz/" + d.TypeKey + ".html"
		view := VizView{Descriptor: d, HTML: template.HTML(body.String())}
		if err := g.writePage(rel, func(w io.Writer) error { return g.Pages.Viz(w, StaticLinks{Depth: 1}, view) }); err != nil {
			return res, err
		}
		step(rel)
	}

	if err := WriteSearchIndex(index, filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return res, fmt.Errorf("writing search index: %w", err)
	}

	log.WithFields(logrus.Fields{
		"pages":    res.Pages,
		"missing":  len(res.Missing),
		"failures": res.Failures,
	}).Info("Site generated")
	return res, nil
}

// renderContent fetches and renders one article. A fetch failure is kept
// on the result; only local I/O and render errors are returned.
func (g *Generator) renderContent(ctx context.Context, id string, res *Result) (*rendered, error) {
	text, err := g.Source.Fetch(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return &rendered{err: err}, nil
	}
	if err := g.writeFile(id+".md", []byte(text)); err != nil {
		return nil, err
	}
	doc, err := g.Renderer.RenderArticle(id, text)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", id, err)
	}
	res.Failures += len(doc.Failures)
	entry, err := NewSearchEntry("", "", doc.HTML)
	if err != nil {
		return nil, fmt.Errorf("indexing %s: %w", id, err)
	}
	return &rendered{html: doc.HTML, entry: entry}, nil
}

func (g *Generator) writeFile(rel string, data []byte) error {
	path := filepath.Join(g.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (g *Generator) writePage(rel string, fn func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return fmt.Errorf("rendering %s: %w", rel, err)
	}
	return g.writeFile(rel, buf.Bytes())
}

// LinkTargets maps every content id of b to the page showing it, as seen
// from pages addressed by links. Articles win over chapters sharing the
// same file.
func LinkTargets(b *book.Book, links Links) map[string]string {
	targets := make(map[string]string)
	for _, s := range b.Sections {
		for i, ch := range s.Chapters {
			if _, ok := targets[ch.ContentID]; !ok {
				targets[ch.ContentID] = links.Chapter(s.ID, i)
			}
		}
	}
	for _, a := range b.Articles {
		targets[a.ID] = links.Article(a.ID)
	}
	return targets
}

var mdLink = regexp.MustCompile(`href="([A-Za-z0-9_-]+)\.md(#[^"]*)?"`)

// RewriteMDLinks points relative links at book content to the generated
// pages. Links to ids outside targets are left alone.
func RewriteMDLinks(content string, targets map[string]string) string {
	return mdLink.ReplaceAllStringFunc(content, func(m string) string {
		sub := mdLink.FindStringSubmatch(m)
		target, ok := targets[sub[1]]
		if !ok {
			return m
		}
		return `href="` + html.EscapeString(target) + sub[2] + `"`
	})
}
