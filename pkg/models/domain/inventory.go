package domain

import "fmt"

// ResourceKind enumerates the record kinds the inventory collaborator emits.
type ResourceKind string

const (
	KindNetwork        ResourceKind = "Network"
	KindSubnet         ResourceKind = "Subnet"
	KindVirtualMachine ResourceKind = "VirtualMachine"
	KindLoadBalancer   ResourceKind = "LoadBalancer"
	KindGateway        ResourceKind = "Gateway"
	KindFirewall       ResourceKind = "Firewall"
	KindPeeringLink    ResourceKind = "PeeringLink"

	// KindGroup marks synthetic container nodes introduced by the graph
	// builder (the per-scope "Unassigned" pool and the overview's scope
	// clusters). It never appears in inventory input.
	KindGroup ResourceKind = "Group"
)

// ParseResourceKind validates a kind string coming from the inventory export.
func ParseResourceKind(s string) (ResourceKind, error) {
	switch k := ResourceKind(s); k {
	case KindNetwork, KindSubnet, KindVirtualMachine, KindLoadBalancer,
		KindGateway, KindFirewall, KindPeeringLink:
		return k, nil
	default:
		return "", fmt.Errorf("unknown resource kind %q", s)
	}
}

// Scope identifies one isolated inventory boundary (an account or
// subscription). Resource IDs are unique within a scope.
type Scope struct {
	ID   string
	Name string
}

// ResourceRecord is one normalized inventory entry supplied by the external
// discovery collaborator.
type ResourceRecord struct {
	ID      string
	Kind    ResourceKind
	Name    string
	ScopeID string

	// AddressSpace is the CIDR block of Network/Subnet records.
	AddressSpace string
	// ParentRef is the ID of the containing Network, when the source
	// provides it explicitly.
	ParentRef string
	// AttachmentRef is the ID of the Subnet a compute or network-appliance
	// record is bound to.
	AttachmentRef string
	// Peers lists peered Network IDs; Network records only.
	Peers []string
	// Attrs carries free-form scalar attributes (private_ip, sku, size, ...).
	Attrs map[string]string
}

// Attr returns a free-form attribute value, or "" when absent.
func (r ResourceRecord) Attr(key string) string {
	return r.Attrs[key]
}

// Inventory groups the collaborator's records by scope. No record ordering
// is guaranteed by the collaborator.
type Inventory struct {
	Scopes  []Scope
	Records map[string][]ResourceRecord // scope ID -> records
}
