package diagram

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/classify"
	"github.com/de-tools/cloud-atlas/pkg/services/topology"
)

func fixtureRecords() []domain.ResourceRecord {
	return []domain.ResourceRecord{
		{ID: "n1", Kind: domain.KindNetwork, Name: "core-vnet", ScopeID: "sub-1", AddressSpace: "10.0.0.0/16", Peers: []string{"n2"}},
		{ID: "n2", Kind: domain.KindNetwork, Name: "edge-vnet", ScopeID: "sub-1", AddressSpace: "10.1.0.0/16", Peers: []string{"n1"}},
		{ID: "s1", Kind: domain.KindSubnet, Name: "web-tier", ScopeID: "sub-1", AddressSpace: "10.0.1.0/24", ParentRef: "n1"},
		{ID: "v1", Kind: domain.KindVirtualMachine, Name: "web-vm-01", ScopeID: "sub-1", AttachmentRef: "s1", Attrs: map[string]string{"private_ip": "10.0.1.4"}},
		{ID: "gw1", Kind: domain.KindGateway, Name: "vpn-gw", ScopeID: "sub-1"},
	}
}

func fixtureGraph(t *testing.T, records []domain.ResourceRecord) *domain.TopologyGraph {
	t.Helper()
	builder := topology.NewBuilder(classify.New(classify.DefaultRules()))
	g, err := builder.Build(records, domain.Scope{ID: "sub-1", Name: "Production"})
	require.NoError(t, err)
	return g
}

func TestMermaid_Serialize(t *testing.T) {
	out := NewMermaid(DefaultPalette()).Serialize(fixtureGraph(t, fixtureRecords()))

	t.Run("document framing", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(out, "# Network Topology: Production\n"))
		assert.Contains(t, out, "```mermaid\ngraph TB\n")
		assert.Contains(t, out, "## Legend")
	})

	t.Run("containment as nested subgraphs", func(t *testing.T) {
		assert.Contains(t, out, `subgraph n1["core-vnet<br/>10.0.0.0/16"]`)
		assert.Contains(t, out, `s1["web-tier<br/>10.0.1.0/24"]`)
		assert.Contains(t, out, `subgraph unassigned["Unassigned"]`)
	})

	t.Run("labels carry salient attributes", func(t *testing.T) {
		assert.Contains(t, out, `v1["web-vm-01<br/>10.0.1.4"]`)
	})

	t.Run("every node has a style directive", func(t *testing.T) {
		for _, id := range []string{"n1", "n2", "s1", "v1", "gw1", "unassigned"} {
			assert.Contains(t, out, "style "+id+" fill:#", "node %s missing style", id)
		}
	})

	t.Run("attachment solid, peering dotted", func(t *testing.T) {
		assert.Contains(t, out, "s1 --> v1")
		assert.Contains(t, out, "n1 -. peering .-> n2")
	})

	t.Run("attachment edges precede peering edges", func(t *testing.T) {
		assert.Less(t, strings.Index(out, "s1 --> v1"), strings.Index(out, "n1 -. peering .-> n2"))
	})

	t.Run("category colors applied", func(t *testing.T) {
		assert.Contains(t, out, "style s1 fill:#e1f5ff")  // web subnet
		assert.Contains(t, out, "style v1 fill:#90ee90")  // compute
		assert.Contains(t, out, "style gw1 fill:#dda0dd") // gateway
	})
}

func TestMermaid_EscapesLabels(t *testing.T) {
	records := []domain.ResourceRecord{
		{ID: "n1", Kind: domain.KindNetwork, Name: `net "prod" [east]`, ScopeID: "sub-1"},
	}
	out := NewMermaid(DefaultPalette()).Serialize(fixtureGraph(t, records))
	assert.Contains(t, out, `n1["net #quot;prod#quot; [east]"]`)
}

func TestMermaid_Deterministic(t *testing.T) {
	records := fixtureRecords()
	m := NewMermaid(DefaultPalette())
	base := m.Serialize(fixtureGraph(t, records))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5; i++ {
		shuffled := append([]domain.ResourceRecord(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, base, m.Serialize(fixtureGraph(t, shuffled)))
	}
}
