// Package render turns article text into HTML: prose goes through goldmark,
// visualization placeholders resolve against a viz.Registry and are wrapped
// in their card chrome. Failures stay inside the segment that caused them.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"

	"github.com/ziadkadry99/beyond-scaling/internal/logging"
	"github.com/ziadkadry99/beyond-scaling/internal/placeholder"
	"github.com/ziadkadry99/beyond-scaling/internal/viz"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// FailureReason classifies a segment that rendered as an error block.
type FailureReason string

const (
	ReasonUnresolved   FailureReason = "unresolved"
	ReasonWidgetFailed FailureReason = "widget_failed"
)

// SegmentError records a visualization segment replaced by an error block.
type SegmentError struct {
	Index   int // position in Document.Segments
	TypeKey string
	Reason  FailureReason
	Message string
}

func (e *SegmentError) Error() string {
	switch e.Reason {
	case ReasonUnresolved:
		return "Visualization type not found: " + e.TypeKey
	default:
		return fmt.Sprintf("Error rendering visualization %s: %s", e.TypeKey, e.Message)
	}
}

// Document is the result of rendering one article.
type Document struct {
	HTML     string
	Segments []placeholder.Segment
	Failures []SegmentError
}

// OK reports whether every visualization rendered.
func (d Document) OK() bool { return len(d.Failures) == 0 }

// Option configures a Renderer.
type Option func(*Renderer)

// WithHighlightStyle sets the chroma style for fenced code.
func WithHighlightStyle(style string) Option {
	return func(r *Renderer) {
		if style != "" {
			r.style = style
		}
	}
}

// WithLogger sets the logger used for segment failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Renderer) { r.log = logging.OrDiscard(l) }
}

// Renderer renders articles against a fixed registry. It is safe for
// concurrent use.
type Renderer struct {
	registry *viz.Registry
	style    string
	log      logrus.FieldLogger
	md       goldmark.Markdown
}

// New returns a renderer resolving placeholders in reg.
func New(reg *viz.Registry, opts ...Option) *Renderer {
	r := &Renderer{
		registry: reg,
		style:    DefaultHighlightStyle,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.md = newMarkdown(r.style)
	return r
}

// Registry returns the registry placeholders resolve against.
func (r *Renderer) Registry() *viz.Registry { return r.registry }

// Render renders text. The error is non-nil only when the markdown
// converter itself fails; visualization problems are reported in
// Document.Failures.
func (r *Renderer) Render(text string) (Document, error) {
	return r.RenderArticle("", text)
}

// RenderArticle is Render with the article id attached to log entries.
func (r *Renderer) RenderArticle(articleID, text string) (Document, error) {
	log := r.log
	if articleID != "" {
		log = log.WithField("article", articleID)
	}

	doc := Document{Segments: placeholder.Split(text)}
	var buf bytes.Buffer
	// One parser context per document keeps heading ids unique across
	// prose segments.
	pc := parser.NewContext()

	for i, seg := range doc.Segments {
		if !seg.IsVisualization() {
			if err := r.renderProse(&buf, seg.Text, pc); err != nil {
				return Document{}, fmt.Errorf("rendering prose segment %d: %w", i, err)
			}
			continue
		}
		if serr := r.renderVisualization(&buf, seg.TypeKey); serr != nil {
			serr.Index = i
			doc.Failures = append(doc.Failures, *serr)
			log.WithFields(logrus.Fields{
				"type_key": seg.TypeKey,
				"reason":   serr.Reason,
			}).Warn(serr.Error())
		}
	}
	doc.HTML = buf.String()
	return doc, nil
}

// RenderProse converts a single prose fragment, applying the figure and
// callout shorthands.
func (r *Renderer) RenderProse(w io.Writer, text string) error {
	return r.renderProse(w, text, parser.NewContext())
}

func (r *Renderer) renderProse(w io.Writer, text string, pc parser.Context) error {
	var out bytes.Buffer
	if err := r.md.Convert([]byte(preprocess(text)), &out, parser.WithContext(pc)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "<div class=\"prose-segment\">\n%s</div>\n", out.Bytes())
	return err
}

// renderVisualization writes the card for key, or an error block in its
// place. The returned SegmentError is nil on success.
func (r *Renderer) renderVisualization(w io.Writer, key string) *SegmentError {
	d, ok := r.registry.Lookup(key)
	if !ok {
		serr := &SegmentError{TypeKey: key, Reason: ReasonUnresolved}
		writeErrorBlock(w, serr)
		return serr
	}
	body, err := renderWidget(d, false)
	if err != nil {
		serr := &SegmentError{TypeKey: key, Reason: ReasonWidgetFailed, Message: err.Error()}
		writeErrorBlock(w, serr)
		return serr
	}
	if err := writeCard(w, d, body); err != nil {
		serr := &SegmentError{TypeKey: key, Reason: ReasonWidgetFailed, Message: err.Error()}
		writeErrorBlock(w, serr)
		return serr
	}
	return nil
}

// RenderFullscreen writes the enlarged widget for key. When the key does not
// resolve or the widget fails, the matching error block is written and the
// returned error is a *SegmentError.
func (r *Renderer) RenderFullscreen(w io.Writer, key string) error {
	d, ok := r.registry.Lookup(key)
	if !ok {
		serr := &SegmentError{TypeKey: key, Reason: ReasonUnresolved}
		writeErrorBlock(w, serr)
		return serr
	}
	body, err := renderWidget(d, true)
	if err != nil {
		serr := &SegmentError{TypeKey: key, Reason: ReasonWidgetFailed, Message: err.Error()}
		writeErrorBlock(w, serr)
		return serr
	}
	_, err = w.Write(body)
	return err
}

// renderWidget renders into a buffer so a failing widget never leaves
// partial markup behind. Panics become errors.
func renderWidget(d viz.Descriptor, fullscreen bool) (out []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, fmt.Errorf("%v", p)
		}
	}()
	var buf bytes.Buffer
	if err := d.Widget.Render(&buf, fullscreen); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
