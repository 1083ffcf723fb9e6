package topology

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// OverviewScopeID is the scope identifier of the merged cross-scope graph.
const OverviewScopeID = "overview"

// BuildOverview merges the root sets of every scope's graph into one
// cross-scope graph. Each scope becomes a cluster of opaque root nodes
// (containment subtrees are collapsed into a child count) and peering is
// the only non-containment relation retained, so cross-scope links stay
// visible without the per-scope detail.
func (b *Builder) BuildOverview(inv domain.Inventory) (*domain.TopologyGraph, error) {
	ov := &domain.TopologyGraph{
		Scope: domain.Scope{ID: OverviewScopeID, Name: "Overview"},
		Nodes: make(map[string]*domain.GraphNode),
	}

	scopes := make([]domain.Scope, len(inv.Scopes))
	copy(scopes, inv.Scopes)
	sort.Slice(scopes, func(i, j int) bool { return scopes[i].ID < scopes[j].ID })

	var allRecords []domain.ResourceRecord
	for _, scope := range scopes {
		g, err := b.Build(inv.Records[scope.ID], scope)
		if err != nil {
			return nil, err
		}

		scopeNodeID := "scope:" + scope.ID
		if _, exists := ov.Nodes[scopeNodeID]; exists {
			return nil, &ValidationError{Scope: OverviewScopeID, Reason: "duplicate scope ID", IDs: []string{scope.ID}}
		}
		scopeNode := &domain.GraphNode{
			ID:       scopeNodeID,
			Kind:     domain.KindGroup,
			Label:    scope.Name,
			Category: domain.CategoryGeneric,
		}
		ov.Nodes[scopeNodeID] = scopeNode
		ov.Roots = append(ov.Roots, scopeNodeID)

		for _, rootID := range g.Roots {
			root := g.Nodes[rootID]
			// The synthetic unassigned pool shares its ID across scopes;
			// qualify it so the merged graph keeps one node per scope.
			ovID := rootID
			if rootID == UnassignedID {
				ovID = scope.ID + ":" + UnassignedID
			}
			if _, exists := ov.Nodes[ovID]; exists {
				return nil, &ValidationError{
					Scope:  OverviewScopeID,
					Reason: "duplicate resource ID across scopes",
					IDs:    []string{ovID},
				}
			}
			ov.Nodes[ovID] = &domain.GraphNode{
				ID:       ovID,
				Kind:     root.Kind,
				Label:    overviewLabel(root),
				Category: root.Category,
			}
			scopeNode.Children = append(scopeNode.Children, ovID)
			ov.Edges = append(ov.Edges, domain.GraphEdge{
				Kind: domain.EdgeContainment,
				From: scopeNodeID,
				To:   ovID,
			})
		}
		sort.Strings(scopeNode.Children)

		allRecords = append(allRecords, inv.Records[scope.ID]...)
	}
	sort.Strings(ov.Roots)

	sort.Slice(allRecords, func(i, j int) bool { return allRecords[i].ID < allRecords[j].ID })
	if err := b.addPeeringEdges(ov, allRecords, true); err != nil {
		return nil, err
	}

	return ov, nil
}

// overviewLabel collapses a containment subtree into an opaque node label.
func overviewLabel(root *domain.GraphNode) string {
	if root.Kind != domain.KindNetwork && root.Kind != domain.KindGroup {
		return root.Label
	}
	name, _, _ := strings.Cut(root.Label, "\n")
	noun := "subnets"
	if root.Kind == domain.KindGroup {
		noun = "resources"
	}
	return fmt.Sprintf("%s\n%d %s", name, len(root.Children), noun)
}
