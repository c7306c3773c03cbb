package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanAllSyntaxes(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		key    string
		syntax Syntax
	}{
		{"canonical", "{visualization:fep}", "fep", SyntaxCanonical},
		{"comment", "<!-- visualization:scaling -->", "scaling", SyntaxComment},
		{"comment no spaces", "<!--visualization:brain-->", "brain", SyntaxComment},
		{"bare line", "visualization timeline", "timeline", SyntaxBareLine},
		{"bare line indented", "   visualization neural-network  ", "neural-network", SyntaxBareLine},
		{"bare line crlf", "visualization brain\r", "brain", SyntaxBareLine},
		{"html double quotes", `<div class="visualization-container" data-type="conceptmap"></div>`, "conceptmap", SyntaxHTML},
		{"html single quotes", `<div class='visualization-container' data-type='free-energy-viz'></div>`, "free-energy-viz", SyntaxHTML},
		{"escaped html", `&lt;div class="visualization-container" data-type="prediction"&gt;&lt;/div&gt;`, "prediction", SyntaxEscapedHTML},
		{"escaped html quotes", `&lt;div class=&quot;visualization-container&quot; data-type=&quot;mermaid&quot;&gt;&lt;/div&gt;`, "mermaid", SyntaxEscapedHTML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := Scan(tt.input)
			require.Len(t, matches, 1)
			assert.Equal(t, tt.key, matches[0].TypeKey)
			assert.Equal(t, tt.syntax, matches[0].Syntax)
			assert.Equal(t, 0, matches[0].Start)
			assert.Equal(t, len(tt.input), matches[0].End)
		})
	}
}

func TestScanOrdersBySourcePosition(t *testing.T) {
	input := "<!-- visualization:a -->\n{visualization:b}\nvisualization c\n" +
		`<div class="visualization-container" data-type="d"></div>`

	matches := Scan(input)
	require.Len(t, matches, 4)
	var keys []string
	for i, m := range matches {
		keys = append(keys, m.TypeKey)
		if i > 0 {
			assert.GreaterOrEqual(t, m.Start, matches[i-1].End, "matches must not overlap")
		}
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, keys)
}

func TestScanBareLineCRLF(t *testing.T) {
	input := "Intro\r\nvisualization brain\r\nMore\r\n"
	matches := Scan(input)
	require.Len(t, matches, 1)
	assert.Equal(t, "brain", matches[0].TypeKey)
	assert.Equal(t, SyntaxBareLine, matches[0].Syntax)
	assert.Equal(t, "visualization brain\r", matches[0].Text(input))

	segments := Split(input)
	require.Len(t, segments, 3)
	assert.Equal(t, "Intro\r\n", segments[0].Text)
	assert.Equal(t, "\nMore\r\n", segments[2].Text)
}

func TestScanEscapedBeforePlain(t *testing.T) {
	assert.Equal(t, SyntaxEscapedHTML, Precedence()[0])
	assert.Equal(t, SyntaxCanonical, Precedence()[len(Precedence())-1])

	input := `before &lt;div class="visualization-container" data-type="fep"&gt;&lt;/div&gt; after`
	matches := Scan(input)
	require.Len(t, matches, 1)
	assert.Equal(t, SyntaxEscapedHTML, matches[0].Syntax)
	assert.Equal(t, `&lt;div class="visualization-container" data-type="fep"&gt;&lt;/div&gt;`, matches[0].Text(input))
}

func TestScanMalformedIsProse(t *testing.T) {
	inputs := []string{
		"{visualization:}",
		"{visualization:Brain}",
		"{visualization: fep}",
		"{visualization:fep",
		"function f() { return {visualization}; }",
		"<!-- visualization: -->",
		"the visualization fep shows",
		`<div class="visualization-container" data-type="fep">x</div>`,
		"{Visualization:fep}",
	}
	for _, in := range inputs {
		assert.Empty(t, Scan(in), "input %q", in)
	}
}

func TestScanNoPlaceholders(t *testing.T) {
	assert.Empty(t, Scan(""))
	assert.Empty(t, Scan("# Title\n\nPlain prose with {braces} and <div>html</div>."))
}

func TestReferences(t *testing.T) {
	input := "{visualization:brain} text {visualization:brain}\n<!-- visualization:fep -->"
	assert.Equal(t, []string{"brain", "brain", "fep"}, References(input))
}

func TestRewrite(t *testing.T) {
	input := "Intro\n\n<!-- visualization:scaling -->\n\nvisualization fep\n\n{visualization:brain}\n" +
		`&lt;div class="visualization-container" data-type="timeline"&gt;&lt;/div&gt;`

	out, n := Rewrite(input)
	assert.Equal(t, 3, n)
	assert.Equal(t, "Intro\n\n{visualization:scaling}\n\n{visualization:fep}\n\n{visualization:brain}\n{visualization:timeline}", out)

	for _, m := range Scan(out) {
		assert.Equal(t, SyntaxCanonical, m.Syntax)
	}

	same, n := Rewrite(out)
	assert.Zero(t, n)
	assert.Equal(t, out, same)
}

func TestRewriteKeepsCRLF(t *testing.T) {
	out, n := Rewrite("Intro\r\n  visualization brain \r\nMore\r\n")
	assert.Equal(t, 1, n)
	assert.Equal(t, "Intro\r\n{visualization:brain}\r\nMore\r\n", out)
}
