package diagrams

import (
	"fmt"
	"strings"
)

// Node is a concept in a flowchart.
type Node struct {
	ID    string
	Label string
	Group string // optional; nodes sharing a group are drawn in one subgraph
}

// Edge connects two node IDs.
type Edge struct {
	From  string
	To    string
	Label string
}

// Graph is a concept map rendered as a mermaid flowchart.
type Graph struct {
	Direction string // TD, LR, ...; TD when empty
	Nodes     []Node
	Edges     []Edge
}

// Flowchart renders g as mermaid flowchart source. Grouped nodes are emitted
// in subgraphs in first-seen group order.
func (g Graph) Flowchart() string {
	dir := g.Direction
	if dir == "" {
		dir = "TD"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "flowchart %s\n", dir)

	var groups []string
	byGroup := make(map[string][]Node)
	for _, n := range g.Nodes {
		if n.Group == "" {
			writeNode(&b, n, "    ")
			continue
		}
		if _, ok := byGroup[n.Group]; !ok {
			groups = append(groups, n.Group)
		}
		byGroup[n.Group] = append(byGroup[n.Group], n)
	}
	for _, group := range groups {
		fmt.Fprintf(&b, "    subgraph %s[\"%s\"]\n", sanitizeID(group), escapeMermaid(group))
		for _, n := range byGroup[group] {
			writeNode(&b, n, "        ")
		}
		b.WriteString("    end\n")
	}

	for _, e := range g.Edges {
		from, to := sanitizeID(e.From), sanitizeID(e.To)
		if e.Label != "" {
			fmt.Fprintf(&b, "    %s -->|%s| %s\n", from, escapeMermaid(e.Label), to)
		} else {
			fmt.Fprintf(&b, "    %s --> %s\n", from, to)
		}
	}
	return b.String()
}

func writeNode(b *strings.Builder, n Node, indent string) {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	fmt.Fprintf(b, "%s%s[\"%s\"]\n", indent, sanitizeID(n.ID), escapeMermaid(label))
}

// Missing returns edge endpoints that are not declared as nodes.
func (g Graph) Missing() []string {
	declared := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		declared[n.ID] = true
	}
	seen := make(map[string]bool)
	var missing []string
	for _, e := range g.Edges {
		for _, id := range []string{e.From, e.To} {
			if !declared[id] && !seen[id] {
				seen[id] = true
				missing = append(missing, id)
			}
		}
	}
	return missing
}

// Event is one entry of a timeline section.
type Event struct {
	Period string
	Title  string
	Detail string
}

// TimelineSection groups events under a heading.
type TimelineSection struct {
	Name   string
	Events []Event
}

// Timeline is rendered as a mermaid timeline diagram.
type Timeline struct {
	Title    string
	Sections []TimelineSection
}

// Source renders t as mermaid timeline source.
func (t Timeline) Source() string {
	var b strings.Builder
	b.WriteString("timeline\n")
	if t.Title != "" {
		fmt.Fprintf(&b, "    title %s\n", timelineText(t.Title))
	}
	for _, s := range t.Sections {
		fmt.Fprintf(&b, "    section %s\n", timelineText(s.Name))
		for _, e := range s.Events {
			line := fmt.Sprintf("        %s : %s", timelineText(e.Period), timelineText(e.Title))
			if e.Detail != "" {
				line += " : " + timelineText(e.Detail)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// timelineText strips characters that break mermaid timeline rows.
func timelineText(s string) string {
	s = strings.ReplaceAll(s, ":", " -")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// sanitizeID converts a string into a safe mermaid node ID.
func sanitizeID(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		".", "_",
		"-", "_",
		" ", "_",
		"'", "_",
		"(", "_",
		")", "_",
		"[", "_",
		"]", "_",
		"{", "_",
		"}", "_",
		":", "_",
	)
	return replacer.Replace(s)
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "{", "#lbrace;")
	s = strings.ReplaceAll(s, "}", "#rbrace;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
