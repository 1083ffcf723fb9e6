package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

const sampleExport = `{
  "scopes": [
    {"id": "sub-1", "name": "Production"},
    {"id": "sub-2", "name": "Staging"}
  ],
  "resources": [
    {"id": "n1", "kind": "Network", "name": "core-vnet", "scope_id": "sub-1", "address_space": "10.0.0.0/16", "peers": ["n2"]},
    {"id": "s1", "kind": "Subnet", "name": "web", "scope_id": "sub-1", "address_space": "10.0.1.0/24", "parent_ref": "n1"},
    {"id": "v1", "kind": "VirtualMachine", "name": "web-vm", "scope_id": "sub-1", "attachment_ref": "s1", "attrs": {"private_ip": "10.0.1.4"}},
    {"id": "n2", "kind": "Network", "name": "stage-vnet", "scope_id": "sub-2", "address_space": "10.8.0.0/16"}
  ]
}`

func TestParse_GroupsRecordsByScope(t *testing.T) {
	inv, err := Parse([]byte(sampleExport))
	require.NoError(t, err)

	assert.Equal(t, []domain.Scope{
		{ID: "sub-1", Name: "Production"},
		{ID: "sub-2", Name: "Staging"},
	}, inv.Scopes)

	require.Len(t, inv.Records["sub-1"], 3)
	require.Len(t, inv.Records["sub-2"], 1)

	n1 := inv.Records["sub-1"][0]
	assert.Equal(t, domain.KindNetwork, n1.Kind)
	assert.Equal(t, "10.0.0.0/16", n1.AddressSpace)
	assert.Equal(t, []string{"n2"}, n1.Peers)

	v1 := inv.Records["sub-1"][2]
	assert.Equal(t, "s1", v1.AttachmentRef)
	assert.Equal(t, "10.0.1.4", v1.Attr("private_ip"))
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"malformed json", `{"scopes": [`},
		{"unknown kind", `{"scopes":[{"id":"s","name":"S"}],"resources":[{"id":"r1","kind":"Teapot","scope_id":"s"}]}`},
		{"empty resource id", `{"scopes":[{"id":"s","name":"S"}],"resources":[{"kind":"Network","scope_id":"s"}]}`},
		{"undeclared scope", `{"scopes":[{"id":"s","name":"S"}],"resources":[{"id":"r1","kind":"Network","scope_id":"other"}]}`},
		{"duplicate scope id", `{"scopes":[{"id":"s","name":"A"},{"id":"s","name":"B"}],"resources":[]}`},
		{"empty scope id", `{"scopes":[{"id":"","name":"A"}],"resources":[]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile("does/not/exist.json")
	assert.Error(t, err)
}
