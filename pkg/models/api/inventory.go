package api

// Inventory is the wire shape of the discovery collaborator's JSON export.
type Inventory struct {
	Scopes    []Scope    `json:"scopes"`
	Resources []Resource `json:"resources"`
}

type Scope struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Resource struct {
	ID            string            `json:"id"`
	Kind          string            `json:"kind"`
	Name          string            `json:"name"`
	ScopeID       string            `json:"scope_id"`
	AddressSpace  string            `json:"address_space,omitempty"`
	ParentRef     string            `json:"parent_ref,omitempty"`
	AttachmentRef string            `json:"attachment_ref,omitempty"`
	Peers         []string          `json:"peers,omitempty"`
	Attrs         map[string]string `json:"attrs,omitempty"`
}
