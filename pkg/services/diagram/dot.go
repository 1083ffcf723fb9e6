package diagram

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// Dot serializes topology graphs into Graphviz DOT documents for offline
// rendering to images.
type Dot struct {
	palette Palette
}

// NewDot creates a DOT serializer with the given palette.
func NewDot(palette Palette) *Dot {
	return &Dot{palette: palette}
}

// Serialize emits the DOT document for a graph. Traversal order matches the
// Mermaid serializer exactly, and both draw identifiers from the same table.
func (d *Dot) Serialize(g *domain.TopologyGraph) string {
	ids := NewIdentifierTable(g)

	var b strings.Builder
	fmt.Fprintf(&b, "// Network topology: %s\n", g.Scope.Name)
	b.WriteString("digraph topology {\n")
	b.WriteString("    rankdir=TB;\n")
	b.WriteString("    node [shape=box, style=filled];\n\n")

	roots := append([]string(nil), g.Roots...)
	sort.Strings(roots)
	for _, id := range roots {
		d.writeNode(&b, g, ids, id, 1)
	}

	for _, e := range g.EdgesOfKind(domain.EdgeAttachment) {
		fmt.Fprintf(&b, "    %s -> %s;\n", ids[e.From], ids[e.To])
	}
	for _, e := range g.EdgesOfKind(domain.EdgePeering) {
		fmt.Fprintf(&b, "    %s -> %s [style=dashed, label=\"peering\"];\n", ids[e.From], ids[e.To])
	}

	b.WriteString("}\n")
	return b.String()
}

func (d *Dot) writeNode(b *strings.Builder, g *domain.TopologyGraph, ids IdentifierTable, id string, depth int) {
	n := g.Nodes[id]
	indent := strings.Repeat("    ", depth)
	label := dotEscape(n.Label)
	color := d.palette.Color(n.Category)

	if len(n.Children) > 0 {
		fmt.Fprintf(b, "%ssubgraph cluster_%s {\n", indent, ids[id])
		fmt.Fprintf(b, "%s    label=\"%s\";\n", indent, label)
		fmt.Fprintf(b, "%s    style=filled;\n", indent)
		fmt.Fprintf(b, "%s    fillcolor=\"%s\";\n", indent, color)
		for _, child := range n.Children {
			d.writeNode(b, g, ids, child, depth+1)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	} else {
		fmt.Fprintf(b, "%s%s [label=\"%s\", fillcolor=\"%s\"];\n", indent, ids[id], label, color)
	}
	if depth == 1 {
		b.WriteString("\n")
	}
}

// dotEscape escapes a node label for use inside a quoted DOT string.
func dotEscape(label string) string {
	label = strings.ReplaceAll(label, `\`, `\\`)
	label = strings.ReplaceAll(label, `"`, `\"`)
	return strings.ReplaceAll(label, "\n", `\n`)
}
