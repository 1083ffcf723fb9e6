package inventory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/de-tools/cloud-atlas/pkg/models/api"
	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// LoadFile reads the discovery collaborator's JSON inventory export.
func LoadFile(path string) (domain.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Inventory{}, fmt.Errorf("failed to read inventory export: %w", err)
	}
	inv, err := Parse(data)
	if err != nil {
		return domain.Inventory{}, fmt.Errorf("failed to parse inventory export %q: %w", path, err)
	}
	return inv, nil
}

// Parse decodes an inventory export and groups its records by scope. It
// validates the input boundary only: unknown kinds, blank IDs and references
// to undeclared scopes are load errors, not graph errors.
func Parse(data []byte) (domain.Inventory, error) {
	var wire api.Inventory
	if err := json.Unmarshal(data, &wire); err != nil {
		return domain.Inventory{}, fmt.Errorf("malformed inventory document: %w", err)
	}

	inv := domain.Inventory{
		Records: make(map[string][]domain.ResourceRecord),
	}

	known := make(map[string]bool, len(wire.Scopes))
	for _, s := range wire.Scopes {
		if s.ID == "" {
			return domain.Inventory{}, fmt.Errorf("scope with empty ID")
		}
		if known[s.ID] {
			return domain.Inventory{}, fmt.Errorf("duplicate scope ID %q", s.ID)
		}
		known[s.ID] = true
		inv.Scopes = append(inv.Scopes, domain.Scope{ID: s.ID, Name: s.Name})
	}

	for i, r := range wire.Resources {
		if r.ID == "" {
			return domain.Inventory{}, fmt.Errorf("resource #%d has an empty ID", i)
		}
		kind, err := domain.ParseResourceKind(r.Kind)
		if err != nil {
			return domain.Inventory{}, fmt.Errorf("resource %q: %w", r.ID, err)
		}
		if !known[r.ScopeID] {
			return domain.Inventory{}, fmt.Errorf("resource %q references undeclared scope %q", r.ID, r.ScopeID)
		}
		inv.Records[r.ScopeID] = append(inv.Records[r.ScopeID], domain.ResourceRecord{
			ID:            r.ID,
			Kind:          kind,
			Name:          r.Name,
			ScopeID:       r.ScopeID,
			AddressSpace:  r.AddressSpace,
			ParentRef:     r.ParentRef,
			AttachmentRef: r.AttachmentRef,
			Peers:         r.Peers,
			Attrs:         r.Attrs,
		})
	}

	return inv, nil
}
