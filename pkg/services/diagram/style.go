package diagram

import "github.com/de-tools/cloud-atlas/pkg/models/domain"

// Palette maps categories to fill colors. Both serializers share one palette
// so the Mermaid and DOT renderings of a graph stay visually consistent.
type Palette struct {
	Colors map[domain.Category]string
	// Default is used for any category with no table entry; a node is never
	// emitted without a style directive.
	Default string
}

// DefaultPalette returns the built-in category color table.
func DefaultPalette() Palette {
	return Palette{
		Colors: map[domain.Category]string{
			domain.CategoryWeb:          "#e1f5ff",
			domain.CategoryApp:          "#fff4e1",
			domain.CategoryDatabase:     "#ffe1e1",
			domain.CategoryCompute:      "#90ee90",
			domain.CategoryLoadBalancer: "#ffb6c1",
			domain.CategoryGateway:      "#dda0dd",
			domain.CategoryFirewall:     "#ff6347",
			domain.CategoryGeneric:      "#f0f0f0",
		},
		Default: "#f0f0f0",
	}
}

// Color looks up a category's fill color, falling back to the default.
func (p Palette) Color(c domain.Category) string {
	if color, ok := p.Colors[c]; ok {
		return color
	}
	return p.Default
}
