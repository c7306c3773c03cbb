package viz

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticWidget(s string) Widget {
	return WidgetFunc(func(w io.Writer, _ bool) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	assert.Equal(t, 10, r.Len())
	assert.Equal(t, []string{
		"brain", "conceptmap", "consciousness", "fep", "free-energy-viz",
		"mermaid", "neural-network", "prediction", "scaling", "timeline",
	}, r.Keys())

	for _, d := range r.Descriptors() {
		assert.NotEmpty(t, d.Title, d.TypeKey)
		assert.NotEmpty(t, d.Description, d.TypeKey)
		assert.NotEmpty(t, d.Accent.Gradient, d.TypeKey)
	}
}

func TestDefaultWidgetsRender(t *testing.T) {
	for _, d := range Default().Descriptors() {
		for _, fullscreen := range []bool{false, true} {
			var buf bytes.Buffer
			require.NoError(t, d.Widget.Render(&buf, fullscreen), d.TypeKey)
			out := buf.String()
			assert.Contains(t, out, `data-viz="`+d.TypeKey+`"`)
			if fullscreen {
				assert.Contains(t, out, `data-fullscreen="true"`)
			} else {
				assert.Contains(t, out, `data-fullscreen="false"`)
				assert.Contains(t, out, "height:400px")
			}
		}
	}
}

func TestLookupTotality(t *testing.T) {
	r := Default()
	for _, key := range []string{"", "BRAIN", "Brain", "brain ", "no such thing", "{visualization:brain}", "../etc"} {
		d, ok := r.Lookup(key)
		assert.False(t, ok, "key %q", key)
		assert.Empty(t, d.TypeKey)
	}
	d, ok := r.Lookup("fep")
	require.True(t, ok)
	assert.Equal(t, "Free Energy Principle", d.Title)

	var nilRegistry *Registry
	_, ok = nilRegistry.Lookup("fep")
	assert.False(t, ok)
	assert.Zero(t, nilRegistry.Len())
}

func TestNewRegistryRejectsBadTables(t *testing.T) {
	_, err := NewRegistry(
		Descriptor{TypeKey: "a", Widget: staticWidget("a")},
		Descriptor{TypeKey: "a", Widget: staticWidget("b")},
	)
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewRegistry(Descriptor{TypeKey: "Upper", Widget: staticWidget("x")})
	assert.ErrorContains(t, err, "invalid")

	_, err = NewRegistry(Descriptor{TypeKey: "nowidget"})
	assert.ErrorContains(t, err, "no widget")
}

func TestDescriptorsKeepRegistrationOrder(t *testing.T) {
	r, err := NewRegistry(
		Descriptor{TypeKey: "zeta", Widget: staticWidget("z")},
		Descriptor{TypeKey: "alpha", Widget: staticWidget("a")},
	)
	require.NoError(t, err)
	ds := r.Descriptors()
	require.Len(t, ds, 2)
	assert.Equal(t, "zeta", ds[0].TypeKey)
	assert.Equal(t, []string{"alpha", "zeta"}, r.Keys())
}

func TestChartWidgetValidation(t *testing.T) {
	w := ChartWidget{
		Key:  "bad",
		Tabs: []string{"main"},
		Charts: map[string]Chart{
			"main": {Labels: []string{"a", "b"}, Datasets: []Dataset{{Label: "d", Data: []float64{1}}}},
		},
	}
	var buf bytes.Buffer
	err := w.Render(&buf, false)
	assert.ErrorContains(t, err, "1 points for 2 labels")

	missing := ChartWidget{Key: "missing", Tabs: []string{"nope"}}
	assert.Error(t, missing.Render(&buf, false))
}

func TestMermaidWidgetEscapesSource(t *testing.T) {
	w := MermaidWidget{Key: "m", Source: func() string { return "flowchart TD\n    A --> B\n" }}
	var buf bytes.Buffer
	require.NoError(t, w.Render(&buf, false))
	assert.Contains(t, buf.String(), "A --&gt; B")
	assert.True(t, strings.HasPrefix(buf.String(), `<div class="viz-mount viz-mermaid"`))
}

func TestWidgetFunc(t *testing.T) {
	boom := errors.New("boom")
	w := WidgetFunc(func(io.Writer, bool) error { return boom })
	assert.ErrorIs(t, w.Render(io.Discard, true), boom)
}
