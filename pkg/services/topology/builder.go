package topology

import (
	"net/netip"
	"sort"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/classify"
)

// UnassignedID is the node ID of the synthetic per-scope container that
// collects resources with no explicit reference and no address match.
const UnassignedID = "unassigned"

// Builder turns a flat, unordered inventory snapshot into validated
// topology graphs. Construction is a pure data transformation; the result
// does not depend on input record order.
type Builder struct {
	classifier *classify.Classifier
}

// NewBuilder creates a builder using the given classifier for category
// assignment.
func NewBuilder(classifier *classify.Classifier) *Builder {
	return &Builder{classifier: classifier}
}

// Build constructs the topology graph for one scope. It fails with a
// *ValidationError on duplicate node IDs, explicit references to missing
// nodes, or containment cycles; it never silently drops a record.
func (b *Builder) Build(records []domain.ResourceRecord, scope domain.Scope) (*domain.TopologyGraph, error) {
	g := &domain.TopologyGraph{
		Scope: scope,
		Nodes: make(map[string]*domain.GraphNode, len(records)),
	}

	// Sorting a copy up front makes every later decision independent of
	// the order the collaborator happened to emit records in.
	recs := make([]domain.ResourceRecord, len(records))
	copy(recs, records)
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })

	for _, r := range recs {
		if _, exists := g.Nodes[r.ID]; exists {
			return nil, &ValidationError{Scope: scope.ID, Reason: "duplicate resource ID", IDs: []string{r.ID}}
		}
		g.Nodes[r.ID] = &domain.GraphNode{
			ID:       r.ID,
			Kind:     r.Kind,
			Label:    nodeLabel(r),
			Category: b.classifier.Classify(r),
		}
	}

	parents := make(map[string]string)
	var orphans []string

	for _, r := range recs {
		switch r.Kind {
		case domain.KindSubnet:
			parentID, err := b.containingNetwork(g, recs, r)
			if err != nil {
				return nil, err
			}
			if parentID == "" {
				orphans = append(orphans, r.ID)
				continue
			}
			parents[r.ID] = parentID
		case domain.KindVirtualMachine, domain.KindLoadBalancer,
			domain.KindGateway, domain.KindFirewall, domain.KindPeeringLink:
			if r.AttachmentRef == "" {
				orphans = append(orphans, r.ID)
				continue
			}
			if _, ok := g.Nodes[r.AttachmentRef]; !ok {
				return nil, &ValidationError{
					Scope:  scope.ID,
					Reason: "attachment reference to missing node",
					IDs:    []string{r.ID, r.AttachmentRef},
				}
			}
			g.Edges = append(g.Edges, domain.GraphEdge{
				Kind: domain.EdgeAttachment,
				From: r.AttachmentRef,
				To:   r.ID,
			})
		}
	}

	if len(orphans) > 0 {
		if _, exists := g.Nodes[UnassignedID]; exists {
			return nil, &ValidationError{
				Scope:  scope.ID,
				Reason: "resource ID collides with the synthetic unassigned container",
				IDs:    []string{UnassignedID},
			}
		}
		g.Nodes[UnassignedID] = &domain.GraphNode{
			ID:       UnassignedID,
			Kind:     domain.KindGroup,
			Label:    "Unassigned",
			Category: domain.CategoryGeneric,
		}
		for _, id := range orphans {
			parents[id] = UnassignedID
		}
	}

	if err := applyContainment(g, parents); err != nil {
		return nil, err
	}

	if err := b.addPeeringEdges(g, recs, false); err != nil {
		return nil, err
	}

	return g, nil
}

// containingNetwork resolves a subnet's containment parent. An explicit
// parent reference wins outright; otherwise the narrowest Network whose
// address space is a strict CIDR superset of the subnet's is chosen, ties
// broken by lowest network ID. Returns "" when nothing matches.
func (b *Builder) containingNetwork(g *domain.TopologyGraph, recs []domain.ResourceRecord, r domain.ResourceRecord) (string, error) {
	if r.ParentRef != "" {
		if _, ok := g.Nodes[r.ParentRef]; !ok {
			return "", &ValidationError{
				Scope:  g.Scope.ID,
				Reason: "parent reference to missing node",
				IDs:    []string{r.ID, r.ParentRef},
			}
		}
		return r.ParentRef, nil
	}

	sub, err := netip.ParsePrefix(r.AddressSpace)
	if err != nil {
		return "", nil
	}
	sub = sub.Masked()

	best := ""
	bestBits := -1
	for _, cand := range recs {
		if cand.Kind != domain.KindNetwork || cand.ID == r.ID {
			continue
		}
		net, err := netip.ParsePrefix(cand.AddressSpace)
		if err != nil {
			continue
		}
		net = net.Masked()
		// Two prefixes overlap only when one contains the other, so a
		// shorter overlapping prefix is a strict superset.
		if net.Bits() >= sub.Bits() || !net.Overlaps(sub) {
			continue
		}
		// recs is sorted by ID, so on an exact tie the first (lowest ID)
		// candidate sticks.
		if net.Bits() > bestBits {
			best = cand.ID
			bestBits = net.Bits()
		}
	}
	return best, nil
}

// applyContainment turns the child->parent assignment into containment
// edges, child lists and the root set, and rejects containment cycles.
func applyContainment(g *domain.TopologyGraph, parents map[string]string) error {
	if err := checkContainmentCycles(g.Scope.ID, parents); err != nil {
		return err
	}

	for _, childID := range sortedKeys(parents) {
		parentID := parents[childID]
		g.Nodes[parentID].Children = append(g.Nodes[parentID].Children, childID)
		g.Edges = append(g.Edges, domain.GraphEdge{
			Kind: domain.EdgeContainment,
			From: parentID,
			To:   childID,
		})
	}
	for _, n := range g.Nodes {
		sort.Strings(n.Children)
	}

	for _, id := range g.NodeIDs() {
		if _, hasParent := parents[id]; !hasParent {
			g.Roots = append(g.Roots, id)
		}
	}
	return nil
}

// checkContainmentCycles walks every parent chain; a node reachable from
// itself means the explicit references describe a cycle, not a forest.
func checkContainmentCycles(scopeID string, parents map[string]string) error {
	for _, start := range sortedKeys(parents) {
		seen := map[string]bool{start: true}
		for cur, ok := parents[start]; ok; cur, ok = parents[cur] {
			if seen[cur] {
				cycle := []string{start, cur}
				return &ValidationError{Scope: scopeID, Reason: "containment cycle", IDs: cycle}
			}
			seen[cur] = true
		}
	}
	return nil
}

// addPeeringEdges derives peering edges from each Network record's peer
// list, deduplicating symmetric pairs on the sorted endpoint pair. When
// crossScope is false, peer references that do not resolve within the graph
// are left for the overview graph to resolve; when true, they are dangling
// and fatal.
func (b *Builder) addPeeringEdges(g *domain.TopologyGraph, recs []domain.ResourceRecord, crossScope bool) error {
	seen := make(map[[2]string]bool)
	for _, r := range recs {
		if r.Kind != domain.KindNetwork {
			continue
		}
		peers := make([]string, len(r.Peers))
		copy(peers, r.Peers)
		sort.Strings(peers)
		for _, peer := range peers {
			if peer == r.ID {
				return &ValidationError{
					Scope:  g.Scope.ID,
					Reason: "network peered with itself",
					IDs:    []string{r.ID},
				}
			}
			peerNode, ok := g.Nodes[peer]
			if !ok {
				if crossScope {
					return &ValidationError{
						Scope:  g.Scope.ID,
						Reason: "peering reference to missing node",
						IDs:    []string{r.ID, peer},
					}
				}
				continue
			}
			if peerNode.Kind != domain.KindNetwork {
				return &ValidationError{
					Scope:  g.Scope.ID,
					Reason: "peering endpoint is not a network",
					IDs:    []string{r.ID, peer},
				}
			}
			a, z := r.ID, peer
			if z < a {
				a, z = z, a
			}
			key := [2]string{a, z}
			if seen[key] {
				continue
			}
			seen[key] = true
			g.Edges = append(g.Edges, domain.GraphEdge{Kind: domain.EdgePeering, From: a, To: z})
		}
	}
	return nil
}

// nodeLabel derives the display label: the resource name with its most
// salient attribute (address space, else private IP) on a second line.
func nodeLabel(r domain.ResourceRecord) string {
	detail := r.AddressSpace
	if detail == "" {
		detail = r.Attr("private_ip")
	}
	if detail == "" {
		return r.Name
	}
	return r.Name + "\n" + detail
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
