package render

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/beyond-scaling/internal/viz"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func fakeRegistry(t *testing.T) *viz.Registry {
	t.Helper()
	reg, err := viz.NewRegistry(
		viz.Descriptor{
			TypeKey:     "fep",
			Title:       "Free Energy Principle",
			Description: "Prediction & error",
			Accent:      viz.Accent{Gradient: "from-green-600", Border: "border-green-100"},
			Widget: viz.WidgetFunc(func(w io.Writer, fullscreen bool) error {
				if fullscreen {
					_, err := io.WriteString(w, `<div class="fake big"></div>`)
					return err
				}
				_, err := io.WriteString(w, `<div class="fake"></div>`)
				return err
			}),
		},
		viz.Descriptor{
			TypeKey: "broken",
			Title:   "Broken",
			Widget: viz.WidgetFunc(func(io.Writer, bool) error {
				return errors.New("canvas unavailable")
			}),
		},
		viz.Descriptor{
			TypeKey: "panicky",
			Title:   "Panicky",
			Widget: viz.WidgetFunc(func(io.Writer, bool) error {
				panic("nil scene")
			}),
		},
	)
	require.NoError(t, err)
	return reg
}

func TestRenderIntroExample(t *testing.T) {
	r := New(fakeRegistry(t))
	doc, err := r.Render("Intro text.\n\n{visualization:fep}\n\nMore text.")
	require.NoError(t, err)
	require.Len(t, doc.Segments, 3)
	assert.True(t, doc.OK())

	html := parse(t, doc.HTML)
	assert.Equal(t, 2, html.Find(".prose-segment").Length())
	assert.Equal(t, "Intro text.", strings.TrimSpace(html.Find(".prose-segment").First().Text()))

	card := html.Find(`[data-viz-card="fep"]`)
	require.Equal(t, 1, card.Length())
	assert.Equal(t, "Free Energy Principle", card.Find(".viz-title").Text())
	assert.Equal(t, 1, card.Find(".viz-body .fake").Length())
	assert.Equal(t, 0, card.Find(".big").Length())

	btn := card.Find("button.viz-expand")
	typ, _ := btn.Attr("data-viz-type")
	title, _ := btn.Attr("data-viz-title")
	desc, _ := btn.Attr("data-viz-description")
	assert.Equal(t, "fep", typ)
	assert.Equal(t, "Free Energy Principle", title)
	assert.Equal(t, "Prediction & error", desc)
}

func TestRenderUnknownType(t *testing.T) {
	r := New(fakeRegistry(t))
	doc, err := r.Render("{visualization:not-a-real-type}")
	require.NoError(t, err)
	require.Len(t, doc.Segments, 1)
	require.Len(t, doc.Failures, 1)
	assert.Equal(t, ReasonUnresolved, doc.Failures[0].Reason)
	assert.Equal(t, "not-a-real-type", doc.Failures[0].TypeKey)

	block := parse(t, doc.HTML).Find(".viz-error")
	require.Equal(t, 1, block.Length())
	assert.Equal(t, "Visualization type not found: not-a-real-type", block.Text())
}

func TestRenderContainsWidgetFailures(t *testing.T) {
	r := New(fakeRegistry(t))
	src := "# Title\n\n{visualization:broken}\n\nmiddle\n\n{visualization:panicky}\n\n{visualization:fep}\n\nend"
	doc, err := r.Render(src)
	require.NoError(t, err)
	require.Len(t, doc.Failures, 2)

	assert.Equal(t, 1, doc.Failures[0].Index)
	assert.Equal(t, 3, doc.Failures[1].Index)
	assert.Equal(t, ReasonWidgetFailed, doc.Failures[0].Reason)
	assert.Equal(t, "canvas unavailable", doc.Failures[0].Message)
	assert.Equal(t, "nil scene", doc.Failures[1].Message)

	html := parse(t, doc.HTML)
	errs := html.Find(".viz-error")
	require.Equal(t, 2, errs.Length())
	assert.Equal(t, "Error rendering visualization: canvas unavailable", errs.First().Text())
	assert.Equal(t, "Error rendering visualization: nil scene", errs.Last().Text())

	assert.Equal(t, 1, html.Find(`[data-viz-card="fep"]`).Length())
	assert.Equal(t, 4, html.Find(".prose-segment").Length())
	assert.Equal(t, "Title", html.Find("h1").Text())
	assert.NotContains(t, doc.HTML, "data-viz-card=\"broken\"")
}

func TestRenderLegacyCommentBehavesLikeCanonical(t *testing.T) {
	r := New(fakeRegistry(t))
	legacy, err := r.Render("<!-- visualization:fep -->")
	require.NoError(t, err)
	canonical, err := r.Render("{visualization:fep}")
	require.NoError(t, err)
	assert.Equal(t, canonical.HTML, legacy.HTML)
}

func TestRenderFullscreen(t *testing.T) {
	r := New(fakeRegistry(t))

	var buf bytes.Buffer
	require.NoError(t, r.RenderFullscreen(&buf, "fep"))
	assert.Equal(t, `<div class="fake big"></div>`, buf.String())

	buf.Reset()
	err := r.RenderFullscreen(&buf, "nope")
	var serr *SegmentError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ReasonUnresolved, serr.Reason)
	assert.Contains(t, buf.String(), "Visualization type not found: nope")

	buf.Reset()
	err = r.RenderFullscreen(&buf, "panicky")
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ReasonWidgetFailed, serr.Reason)
}

func TestRenderDefaultRegistry(t *testing.T) {
	r := New(viz.Default())
	var src strings.Builder
	for _, key := range r.Registry().Keys() {
		src.WriteString("Some prose.\n\n{visualization:" + key + "}\n\n")
	}
	doc, err := r.Render(src.String())
	require.NoError(t, err)
	assert.True(t, doc.OK(), "failures: %v", doc.Failures)
	assert.Equal(t, r.Registry().Len(), parse(t, doc.HTML).Find(".viz-card").Length())
}

func TestHeadingIDsUniqueAcrossSegments(t *testing.T) {
	r := New(fakeRegistry(t))
	doc, err := r.Render("## Summary\n\n{visualization:fep}\n\n## Summary\n")
	require.NoError(t, err)
	var ids []string
	parse(t, doc.HTML).Find("h2").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
	})
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}
