package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/beyond-scaling/internal/book"
	"github.com/ziadkadry99/beyond-scaling/internal/content"
	"github.com/ziadkadry99/beyond-scaling/internal/placeholder"
	"github.com/ziadkadry99/beyond-scaling/internal/render"
	"github.com/ziadkadry99/beyond-scaling/internal/site"
)

var links = site.ServerLinks{}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusOK, func(buf *bytes.Buffer) error { return s.pages.Home(buf, links) })
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusOK, func(buf *bytes.Buffer) error { return s.pages.BookIndex(buf, links) })
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "articleID")
	view := site.ArticleView{ID: id, Title: s.book.ArticleTitle(id)}

	var status int
	view.HTML, status, view.Error = s.renderContent(r, id)
	s.writePage(w, status, func(buf *bytes.Buffer) error { return s.pages.Article(buf, links, view) })
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	sectionID := chi.URLParam(r, "sectionID")
	sec, ok := s.book.Section(sectionID)
	if !ok {
		s.writeErrorPage(w, http.StatusNotFound, "Section Not Found", "No section named "+sectionID+".")
		return
	}

	index := 0
	if raw := r.URL.Query().Get("chapter"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeErrorPage(w, http.StatusBadRequest, "Bad Request", "chapter must be a number")
			return
		}
		index = n
	}
	ch, ok := s.book.Chapter(sectionID, index)
	if !ok {
		s.writeErrorPage(w, http.StatusNotFound, "Chapter Not Found", "No such chapter in "+sec.Title+".")
		return
	}

	prev, next := s.book.Neighbours(sectionID, index)
	view := site.ChapterView{
		Section:  sec,
		Index:    index,
		Chapter:  ch,
		Progress: book.ProgressOf(index, len(sec.Chapters)),
		Prev:     prev,
		Next:     next,
	}
	var status int
	view.HTML, status, view.Error = s.renderContent(r, ch.ContentID)
	s.writePage(w, status, func(buf *bytes.Buffer) error { return s.pages.Chapter(buf, links, view) })
}

// renderContent fetches and renders one article. On failure it returns the
// message shown to the reader instead of HTML.
func (s *Server) renderContent(r *http.Request, id string) (template.HTML, int, string) {
	text, err := s.source.Fetch(r.Context(), id)
	if err != nil {
		return "", fetchStatus(err), err.Error()
	}
	doc, err := s.renderer.RenderArticle(id, text)
	if err != nil {
		s.log.WithError(err).WithField("article", id).Error("Render failed")
		return "", http.StatusInternalServerError, "Failed to render " + id + ".md"
	}
	return template.HTML(site.RewriteMDLinks(doc.HTML, s.targets)), http.StatusOK, ""
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "articleID")
	text, err := s.source.Fetch(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), fetchStatus(err))
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(text))
}

// handleViz serves one visualization as an HTML fragment: the inline card,
// or the enlarged widget with ?fullscreen=1.
func (s *Server) handleViz(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "typeKey")
	var buf bytes.Buffer
	status := http.StatusOK

	if r.URL.Query().Get("fullscreen") == "1" || !s.renderer.Registry().Has(key) {
		// Unknown keys get the same error block either way.
		var serr *render.SegmentError
		if err := s.renderer.RenderFullscreen(&buf, key); errors.As(err, &serr) {
			status = vizStatus(serr.Reason)
		} else if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	} else {
		doc, err := s.renderer.Render(placeholder.Canonical(key))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if len(doc.Failures) > 0 {
			status = vizStatus(doc.Failures[0].Reason)
		}
		buf.WriteString(doc.HTML)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func vizStatus(reason render.FailureReason) int {
	if reason == render.ReasonUnresolved {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func handleAsset(w http.ResponseWriter, r *http.Request) {
	data, contentType, ok := site.Asset(chi.URLParam(r, "name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write([]byte(data))
}

func (s *Server) handleListVisualizations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.renderer.Registry().Descriptors())
}

// segmentsResponse is the JSON body of the segments endpoint.
type segmentsResponse struct {
	ArticleID  string                `json:"article_id"`
	Prose      int                   `json:"prose"`
	Visuals    int                   `json:"visualizations"`
	Unresolved []string              `json:"unresolved"`
	Segments   []placeholder.Segment `json:"segments"`
}

func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "articleID")
	text, err := s.source.Fetch(r.Context(), id)
	if err != nil {
		writeJSON(w, fetchStatus(err), map[string]string{"error": err.Error()})
		return
	}

	segs := placeholder.Split(text)
	resp := segmentsResponse{ArticleID: id, Segments: segs, Unresolved: []string{}}
	resp.Prose, resp.Visuals = placeholder.Counts(segs)
	reg := s.renderer.Registry()
	for _, seg := range segs {
		if seg.IsVisualization() && !reg.Has(seg.TypeKey) {
			resp.Unresolved = append(resp.Unresolved, seg.TypeKey)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func fetchStatus(err error) int {
	var ferr *content.FetchError
	if errors.As(err, &ferr) {
		return ferr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// writePage renders into a buffer first so a template error can still
// produce a clean 500.
func (s *Server) writePage(w http.ResponseWriter, status int, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.log.WithError(err).Error("Page render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) writeErrorPage(w http.ResponseWriter, status int, title, message string) {
	s.writePage(w, status, func(buf *bytes.Buffer) error { return s.pages.Error(buf, links, title, message) })
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
