package render

import (
	"html/template"
	"io"

	"github.com/ziadkadry99/beyond-scaling/internal/viz"
)

const cardTemplate = `<div class="viz-card my-8 rounded-lg shadow-lg overflow-hidden border {{.Accent.Border}}" data-viz-card="{{.TypeKey}}">
<div class="viz-header {{.Accent.Gradient}} p-4 border-b flex justify-between items-center">
<div><h3 class="viz-title text-lg font-semibold text-white">{{.Title}}</h3><p class="viz-description text-white text-sm">{{.Description}}</p></div>
<button type="button" class="viz-expand" aria-label="Expand to fullscreen" data-viz-type="{{.TypeKey}}" data-viz-title="{{.Title}}" data-viz-description="{{.Description}}">` + expandIcon + `</button>
</div>
<div class="viz-body p-6 bg-white flex justify-center items-center" style="height:400px;position:relative">{{.Body}}</div>
</div>
`

const errorTemplate = `<div class="viz-error p-4 bg-red-50 text-red-600 rounded-lg border border-red-100 my-8" data-viz-error="{{.Reason}}" data-viz-type="{{.TypeKey}}"><p>{{.Text}}</p></div>
`

const expandIcon = `<svg xmlns="http://www.w3.org/2000/svg" class="h-5 w-5" viewBox="0 0 20 20" fill="currentColor"><path fill-rule="evenodd" d="M3 4a1 1 0 011-1h4a1 1 0 010 2H6.414l2.293 2.293a1 1 0 01-1.414 1.414L5 6.414V8a1 1 0 01-2 0V4zm9 1a1 1 0 010-2h4a1 1 0 011 1v4a1 1 0 01-2 0V6.414l-2.293 2.293a1 1 0 11-1.414-1.414L13.586 5H12zm-9 7a1 1 0 012 0v1.586l2.293-2.293a1 1 0 011.414 1.414L6.414 15H8a1 1 0 010 2H4a1 1 0 01-1-1v-4zm13-1a1 1 0 011 1v4a1 1 0 01-1 1h-4a1 1 0 010-2h1.586l-2.293-2.293a1 1 0 011.414-1.414L15 13.586V12a1 1 0 011-1z" clip-rule="evenodd"/></svg>`

var (
	cardTmpl  = template.Must(template.New("card").Parse(cardTemplate))
	errorTmpl = template.Must(template.New("error").Parse(errorTemplate))
)

type cardData struct {
	viz.Descriptor
	Body template.HTML
}

func writeCard(w io.Writer, d viz.Descriptor, body []byte) error {
	return cardTmpl.Execute(w, cardData{Descriptor: d, Body: template.HTML(body)})
}

type errorData struct {
	Reason  FailureReason
	TypeKey string
	Text    string
}

func writeErrorBlock(w io.Writer, e *SegmentError) {
	text := "Visualization type not found: " + e.TypeKey
	if e.Reason == ReasonWidgetFailed {
		text = "Error rendering visualization: " + e.Message
	}
	_ = errorTmpl.Execute(w, errorData{Reason: e.Reason, TypeKey: e.TypeKey, Text: text})
}
