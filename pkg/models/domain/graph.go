package domain

import (
	"fmt"
	"sort"
)

// Category is the visual classification bucket a record maps to; it picks
// the rendering color for the node in both diagram languages.
type Category string

const (
	CategoryWeb          Category = "web"
	CategoryApp          Category = "app"
	CategoryDatabase     Category = "database"
	CategoryCompute      Category = "compute"
	CategoryLoadBalancer Category = "load_balancer"
	CategoryGateway      Category = "gateway"
	CategoryFirewall     Category = "firewall"
	CategoryGeneric      Category = "generic"
)

// ParseCategory validates a category string from profile configuration.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryWeb, CategoryApp, CategoryDatabase, CategoryCompute,
		CategoryLoadBalancer, CategoryGateway, CategoryFirewall, CategoryGeneric:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// EdgeKind distinguishes the three relationship flavors in a topology graph.
type EdgeKind string

const (
	// EdgeContainment is the "is inside" relation (Subnet inside Network).
	// Directional, parent -> child; forms a forest.
	EdgeContainment EdgeKind = "containment"
	// EdgeAttachment binds a compute/appliance resource to a Subnet.
	// Directional, subnet -> resource.
	EdgeAttachment EdgeKind = "attachment"
	// EdgePeering links two top-level networks. Logically undirected and
	// deduplicated on the sorted endpoint pair.
	EdgePeering EdgeKind = "peering"
)

// GraphNode is one resource in a built topology graph. Category is assigned
// once at construction and never changes.
type GraphNode struct {
	ID       string
	Kind     ResourceKind
	Label    string
	Category Category
	// Children holds containment child IDs in ascending order.
	Children []string
}

// GraphEdge connects two nodes of the same graph. Both endpoints must exist
// in the graph that owns the edge.
type GraphEdge struct {
	Kind EdgeKind
	From string
	To   string
}

// TopologyGraph owns all nodes and edges for one scope. It is constructed
// once from an inventory snapshot, treated as immutable afterwards, and
// discarded after serialization.
type TopologyGraph struct {
	Scope Scope
	Nodes map[string]*GraphNode
	Edges []GraphEdge
	// Roots are the IDs of nodes with no containment parent, ascending.
	Roots []string
}

// Node looks a node up by ID.
func (g *TopologyGraph) Node(id string) (*GraphNode, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}

// NodeIDs returns every node ID in ascending order.
func (g *TopologyGraph) NodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EdgesOfKind returns the graph's edges of one kind, ordered by (From, To).
func (g *TopologyGraph) EdgesOfKind(kind EdgeKind) []GraphEdge {
	var edges []GraphEdge
	for _, e := range g.Edges {
		if e.Kind == kind {
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}
