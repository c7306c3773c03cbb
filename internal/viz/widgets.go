package viz

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
)

const (
	inlineHeight     = "400px"
	fullscreenHeight = "100%"
)

// mount writes the container a client-side renderer attaches to, with the
// widget's static data embedded as JSON.
func mount(w io.Writer, kind, key string, fullscreen bool, data any, inner string) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding %s data: %w", key, err)
	}
	height := inlineHeight
	if fullscreen {
		height = fullscreenHeight
	}
	_, err = fmt.Fprintf(w,
		`<div class="viz-mount viz-%s" data-widget="%s" data-viz="%s" data-fullscreen="%t" style="height:%s">`+
			`<script type="application/json" class="viz-data">%s</script>%s</div>`,
		kind, kind, html.EscapeString(key), fullscreen, height, payload, inner)
	return err
}

// Dataset is one series of a chart.
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
	Color string    `json:"color,omitempty"`
}

// Chart is a chart.js-style chart definition.
type Chart struct {
	Type     string    `json:"type"` // line, bar, radar, ...
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	XLabel   string    `json:"x_label,omitempty"`
	YLabel   string    `json:"y_label,omitempty"`
	LogScale bool      `json:"log_scale,omitempty"`
}

// Validate checks that every dataset matches the label count.
func (c Chart) Validate() error {
	for _, ds := range c.Datasets {
		if len(ds.Data) != len(c.Labels) {
			return fmt.Errorf("dataset %q has %d points for %d labels", ds.Label, len(ds.Data), len(c.Labels))
		}
	}
	return nil
}

// ChartWidget renders one or more tabbed charts.
type ChartWidget struct {
	Key    string
	Charts map[string]Chart // tab name -> chart
	Tabs   []string         // tab order
}

func (c ChartWidget) Render(w io.Writer, fullscreen bool) error {
	for _, tab := range c.Tabs {
		chart, ok := c.Charts[tab]
		if !ok {
			return fmt.Errorf("chart tab %q not defined", tab)
		}
		if err := chart.Validate(); err != nil {
			return err
		}
	}
	return mount(w, "chart", c.Key, fullscreen, map[string]any{"tabs": c.Tabs, "charts": c.Charts}, "")
}

// MermaidWidget renders a mermaid diagram.
type MermaidWidget struct {
	Key    string
	Source func() string
}

func (m MermaidWidget) Render(w io.Writer, fullscreen bool) error {
	src := m.Source()
	inner := `<pre class="mermaid">` + html.EscapeString(src) + `</pre>`
	return mount(w, "mermaid", m.Key, fullscreen, map[string]any{"lines": countLines(src)}, inner)
}

func countLines(s string) int {
	n := 0
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}

// CanvasWidget renders a canvas animation. Parameters are read by the
// animation script; the fullscreen variant doubles the canvas scale.
type CanvasWidget struct {
	Key       string
	Animation string
	Params    map[string]any
}

func (c CanvasWidget) Render(w io.Writer, fullscreen bool) error {
	scale := 1
	if fullscreen {
		scale = 2
	}
	data := map[string]any{"animation": c.Animation, "params": c.Params, "scale": scale}
	return mount(w, "canvas", c.Key, fullscreen, data, `<canvas class="viz-canvas"></canvas>`)
}

// Region is a highlightable area of a 3D scene.
type Region struct {
	Name     string     `json:"name"`
	Function string     `json:"function"`
	Position [3]float64 `json:"position"`
	Color    string     `json:"color"`
}

// SceneWidget renders a 3D model with highlightable regions.
type SceneWidget struct {
	Key     string
	Model   string
	Noise   float64
	Regions []Region
}

func (s SceneWidget) Render(w io.Writer, fullscreen bool) error {
	data := map[string]any{"model": s.Model, "noise": s.Noise, "regions": s.Regions, "controls": !fullscreen}
	var buttons string
	for _, r := range s.Regions {
		buttons += fmt.Sprintf(`<button type="button" class="viz-region" data-region="%s">%s</button>`,
			html.EscapeString(r.Name), html.EscapeString(r.Name))
	}
	return mount(w, "scene", s.Key, fullscreen, data, `<div class="viz-regions">`+buttons+`</div>`)
}
