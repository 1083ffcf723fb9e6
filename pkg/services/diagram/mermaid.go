package diagram

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// Mermaid serializes topology graphs into Mermaid flowchart documents
// wrapped in markdown, for viewers that render the language inline.
type Mermaid struct {
	palette Palette
}

// NewMermaid creates a Mermaid serializer with the given palette.
func NewMermaid(palette Palette) *Mermaid {
	return &Mermaid{palette: palette}
}

// Serialize emits the markdown document for a graph. The same graph always
// produces byte-identical output: roots are visited in ascending ID order,
// children recursively in ascending ID order, then attachment edges before
// peering edges, each group ordered by (from, to).
func (m *Mermaid) Serialize(g *domain.TopologyGraph) string {
	ids := NewIdentifierTable(g)

	var b strings.Builder
	fmt.Fprintf(&b, "# Network Topology: %s\n\n", g.Scope.Name)
	b.WriteString("```mermaid\ngraph TB\n\n")

	roots := append([]string(nil), g.Roots...)
	sort.Strings(roots)
	for _, id := range roots {
		m.writeNode(&b, g, ids, id, 1)
	}

	for _, e := range g.EdgesOfKind(domain.EdgeAttachment) {
		fmt.Fprintf(&b, "    %s --> %s\n", ids[e.From], ids[e.To])
	}
	for _, e := range g.EdgesOfKind(domain.EdgePeering) {
		fmt.Fprintf(&b, "    %s -. peering .-> %s\n", ids[e.From], ids[e.To])
	}

	b.WriteString("```\n")
	b.WriteString(legend)
	return b.String()
}

func (m *Mermaid) writeNode(b *strings.Builder, g *domain.TopologyGraph, ids IdentifierTable, id string, depth int) {
	n := g.Nodes[id]
	indent := strings.Repeat("    ", depth)
	label := mermaidLabel(n.Label)

	if len(n.Children) > 0 {
		fmt.Fprintf(b, "%ssubgraph %s[\"%s\"]\n", indent, ids[id], label)
		for _, child := range n.Children {
			m.writeNode(b, g, ids, child, depth+1)
		}
		fmt.Fprintf(b, "%send\n", indent)
	} else {
		fmt.Fprintf(b, "%s%s[\"%s\"]\n", indent, ids[id], label)
	}
	fmt.Fprintf(b, "%sstyle %s fill:%s\n", indent, ids[id], m.palette.Color(n.Category))
	if depth == 1 {
		b.WriteString("\n")
	}
}

// mermaidLabel escapes a node label for use inside a quoted Mermaid string.
func mermaidLabel(label string) string {
	label = strings.ReplaceAll(label, `"`, "#quot;")
	return strings.ReplaceAll(label, "\n", "<br/>")
}

const legend = `
## Legend

- **Blue boxes**: Web/Frontend subnets
- **Yellow boxes**: Application subnets
- **Red boxes**: Database subnets
- **Green boxes**: Virtual Machines
- **Pink boxes**: Load Balancers
- **Dotted lines**: Network Peering
`
