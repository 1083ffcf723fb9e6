package diagram

import (
	"fmt"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// maxIdentifierLen bounds sanitized identifiers so generated documents stay
// readable when resource IDs are long provider paths.
const maxIdentifierLen = 64

// SanitizeIdentifier maps any string to an identifier that is legal in both
// target diagram languages: [A-Za-z_][A-Za-z0-9_]*. The mapping is total and
// deterministic; uniqueness across a graph is the identifier table's job.
func SanitizeIdentifier(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, byte(r))
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 || (out[0] >= '0' && out[0] <= '9') {
		out = append([]byte{'n'}, out...)
	}
	if len(out) > maxIdentifierLen {
		out = out[:maxIdentifierLen]
	}
	return string(out)
}

// IdentifierTable maps node IDs to unique sanitized identifiers for one
// graph. Both serializers build their identifiers from the same table, so
// the two outputs remain cross-referenceable.
type IdentifierTable map[string]string

// NewIdentifierTable assigns identifiers in ascending node-ID order;
// sanitization collisions get deterministic _2, _3, ... suffixes.
func NewIdentifierTable(g *domain.TopologyGraph) IdentifierTable {
	table := make(IdentifierTable, len(g.Nodes))
	used := make(map[string]bool, len(g.Nodes))
	for _, id := range g.NodeIDs() {
		base := SanitizeIdentifier(id)
		ident := base
		for i := 2; used[ident]; i++ {
			ident = fmt.Sprintf("%s_%d", base, i)
		}
		used[ident] = true
		table[id] = ident
	}
	return table
}
