package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/polynav/polynav/pkg/neighborhood"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes hierarchy statistics in node labels.
	// When false, only the concept title is shown.
	Detailed bool
}

// ToDOT converts a neighborhood subgraph to Graphviz DOT format.
// The focus concept is highlighted; cluster placeholders are rendered with
// dashed outlines and a "+N more" label. The resulting DOT string can be
// rendered with [RenderSVG].
func ToDOT(sg *neighborhood.Subgraph, focusID string, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	focus := neighborhood.Real(focusID)
	for _, it := range sg.Items() {
		n := sg.Node(it)
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, it == focus, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", it.String(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range sg.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From.String(), e.To.String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *neighborhood.Node, detailed bool) string {
	if n.Item.IsCluster() {
		label := fmt.Sprintf("+%d more", n.Count)
		if detailed && n.TotalDescendants > 0 {
			label += fmt.Sprintf("\n%d descendants", n.TotalDescendants)
		}
		return label
	}

	if !detailed {
		return n.Title
	}

	parts := []string{fmt.Sprintf("depth: %d", n.Depth)}
	if n.ChildCount > 0 {
		parts = append(parts, fmt.Sprintf("children: %d", n.ChildCount))
	}
	if n.DescendantCount > 0 {
		parts = append(parts, fmt.Sprintf("descendants: %d", n.DescendantCount))
	}
	return n.Title + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *neighborhood.Node, isFocus bool, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case isFocus:
		attrs = append(attrs, "style=\"rounded,filled,bold\"", "fillcolor=lightblue")
	case n.Item.IsCluster():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}
