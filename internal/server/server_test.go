package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/beyond-scaling/internal/book"
	"github.com/ziadkadry99/beyond-scaling/internal/content"
	"github.com/ziadkadry99/beyond-scaling/internal/render"
	"github.com/ziadkadry99/beyond-scaling/internal/viz"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"scaling_intro.md": "# The Scaling Hypothesis\n\nBigger models. See [the brain](brain.md).\n\n{visualization:scaling}\n\n{visualization:warp-drive}\n",
		"brain.md":         "# Brains\n\n<!-- visualization:brain -->\n",
	}
	for name, text := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
	}
	b := &book.Book{
		Sections: []book.Section{{
			ID:    "scaling",
			Title: "The Limits of Scaling",
			Chapters: []book.Chapter{
				{ID: "intro", Title: "Introduction", ContentID: "scaling_intro"},
				{ID: "gone", Title: "Gone", ContentID: "gone"},
			},
		}},
		Articles: []book.Article{{ID: "brain", Title: "The Brain"}},
	}
	cfg.SiteTitle = "Beyond Scaling"
	return New(cfg, b, &content.DirSource{Dir: dir}, render.New(viz.Default()), nil)
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func page(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, Config{})
	w := get(t, srv, "/healthz")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, Config{AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestHomeAndBook(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := get(t, srv, "/")
	require.Equal(t, http.StatusOK, w.Code)
	doc := page(t, w)
	assert.Equal(t, "/ws/overlay", doc.Find("body").AttrOr("data-socket", ""))
	assert.Equal(t, "/assets/style.css", doc.Find(`link[rel="stylesheet"]`).AttrOr("href", ""))

	w = get(t, srv, "/book")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, page(t, w).Find(".toc-section li").Length())
}

func TestArticlePage(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := get(t, srv, "/articles/brain")
	require.Equal(t, http.StatusOK, w.Code)
	doc := page(t, w)
	assert.Equal(t, "The Brain", strings.TrimSpace(doc.Find(".article-header h1").Text()))
	assert.Equal(t, 1, doc.Find(`[data-viz-card="brain"]`).Length())

	w = get(t, srv, "/articles/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	doc = page(t, w)
	assert.Equal(t, book.NotFoundTitle, strings.TrimSpace(doc.Find(".article-header h1").Text()))
	assert.Contains(t, doc.Find(".error-panel").Text(), "Failed to load content for nope.md")
}

func TestSectionPage(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := get(t, srv, "/sections/scaling")
	require.Equal(t, http.StatusOK, w.Code)
	doc := page(t, w)
	assert.Equal(t, 1, doc.Find(`[data-viz-card="scaling"]`).Length())
	assert.Equal(t, 1, doc.Find(`[data-viz-error="unresolved"][data-viz-type="warp-drive"]`).Length())
	assert.Equal(t, "/sections/scaling?chapter=1", doc.Find(".chapter-nav .next").AttrOr("href", ""))
	assert.Equal(t, "/articles/brain", doc.Find(".enhanced-markdown a").AttrOr("href", ""))

	w = get(t, srv, "/sections/scaling?chapter=1")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, page(t, w).Find(".error-panel").Text(), "Failed to load content for gone.md")

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/sections/scaling?chapter=7").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/sections/scaling?chapter=x").Code)
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/sections/nope").Code)
}

func TestRawContent(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := get(t, srv, "/brain.md")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# Brains\n\n<!-- visualization:brain -->\n", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")

	w = get(t, srv, "/nope.md")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load content for nope.md")
}

func TestVizFragments(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := get(t, srv, "/viz/brain")
	require.Equal(t, http.StatusOK, w.Code)
	doc := page(t, w)
	assert.Equal(t, 1, doc.Find(`[data-viz-card="brain"]`).Length())
	assert.Equal(t, "false", doc.Find(".viz-mount").AttrOr("data-fullscreen", ""))

	w = get(t, srv, "/viz/brain?fullscreen=1")
	require.Equal(t, http.StatusOK, w.Code)
	doc = page(t, w)
	assert.Equal(t, 0, doc.Find(".viz-card").Length())
	assert.Equal(t, "true", doc.Find(".viz-mount").AttrOr("data-fullscreen", ""))

	w = get(t, srv, "/viz/warp-drive")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Visualization type not found: warp-drive")
}

func TestAPI(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := get(t, srv, "/api/visualizations")
	require.Equal(t, http.StatusOK, w.Code)
	var descs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &descs))
	assert.Len(t, descs, 10)
	assert.Equal(t, "brain", descs[0]["type_key"])

	w = get(t, srv, "/api/articles/scaling_intro/segments")
	require.Equal(t, http.StatusOK, w.Code)
	var resp segmentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Visuals)
	assert.Equal(t, []string{"warp-drive"}, resp.Unresolved)

	w = get(t, srv, "/api/articles/nope/segments")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestAssets(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := get(t, srv, "/assets/script.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "javascript")
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/assets/other.css").Code)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, Config{})
	w := get(t, srv, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, page(t, w).Find(".error-panel").Length())
}

func TestOverlaySocket(t *testing.T) {
	srv := newTestServer(t, Config{})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/overlay", nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() map[string]any {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg map[string]any
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	assert.Equal(t, false, read()["showing"])
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "expand", "type_key": "scaling"}))
	msg := read()
	assert.Equal(t, true, msg["showing"])
	assert.Contains(t, msg["html"], `data-fullscreen="true"`)
}
