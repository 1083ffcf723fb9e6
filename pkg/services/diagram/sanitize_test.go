package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

func TestSanitizeIdentifier(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain", "vnet1", "vnet1"},
		{"hyphens and dots", "core-vnet.west", "core_vnet_west"},
		{"spaces and quotes", `my "special" net`, "my__special__net"},
		{"brackets", "net[0]", "net_0_"},
		{"leading digit gets prefixed", "10net", "n10net"},
		{"empty input", "", "n"},
		{"provider path", "/subscriptions/abc/vnets/core", "_subscriptions_abc_vnets_core"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeIdentifier(tc.in))
		})
	}
}

func TestSanitizeIdentifier_Truncates(t *testing.T) {
	long := strings.Repeat("a", 200)
	out := SanitizeIdentifier(long)
	assert.Len(t, out, maxIdentifierLen)
}

func TestNewIdentifierTable_CollisionSuffixing(t *testing.T) {
	// "a-b" and "a.b" both sanitize to "a_b"; the table must keep them
	// distinct, lower node ID first.
	g := &domain.TopologyGraph{
		Nodes: map[string]*domain.GraphNode{
			"a-b": {ID: "a-b"},
			"a.b": {ID: "a.b"},
			"a_b": {ID: "a_b"},
		},
	}

	table := NewIdentifierTable(g)
	assert.Equal(t, "a_b", table["a-b"])
	assert.Equal(t, "a_b_2", table["a.b"])
	assert.Equal(t, "a_b_3", table["a_b"])
}
