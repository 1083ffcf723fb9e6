package docs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/diagram"
	"github.com/de-tools/cloud-atlas/pkg/services/topology"
)

// Settings configures artifact generation.
type Settings struct {
	// OutputDir receives the generated diagram files; created if missing.
	OutputDir string
}

// Generator runs the full documentation flow for an inventory: build each
// scope's topology graph plus the cross-scope overview, serialize every
// graph to Mermaid and DOT, and write the artifacts to disk.
type Generator struct {
	builder  *topology.Builder
	mermaid  *diagram.Mermaid
	dot      *diagram.Dot
	settings Settings
}

// NewGenerator wires a generator from its collaborators.
func NewGenerator(builder *topology.Builder, mermaid *diagram.Mermaid, dot *diagram.Dot, settings Settings) *Generator {
	return &Generator{
		builder:  builder,
		mermaid:  mermaid,
		dot:      dot,
		settings: settings,
	}
}

// Generate emits all diagram artifacts for the inventory. A validation
// failure in any scope is fatal for the whole run.
func (g *Generator) Generate(ctx context.Context, inv domain.Inventory) ([]domain.Artifact, error) {
	logger := zerolog.Ctx(ctx)

	if err := os.MkdirAll(g.settings.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	scopes := append([]domain.Scope(nil), inv.Scopes...)
	sort.Slice(scopes, func(i, j int) bool { return scopes[i].ID < scopes[j].ID })

	var artifacts []domain.Artifact
	for _, scope := range scopes {
		graph, err := g.builder.Build(inv.Records[scope.ID], scope)
		if err != nil {
			return nil, fmt.Errorf("failed to build topology for scope %q: %w", scope.ID, err)
		}

		slug := Slug(scope.Name)
		written, err := g.writeGraph(graph, "network_"+slug)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, written...)
		logger.Info().
			Str("scope", scope.ID).
			Int("nodes", len(graph.Nodes)).
			Int("edges", len(graph.Edges)).
			Msg("scope diagrams generated")
	}

	overview, err := g.builder.BuildOverview(inv)
	if err != nil {
		return nil, fmt.Errorf("failed to build overview topology: %w", err)
	}
	written, err := g.writeOverview(overview, inv)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, written...)

	logger.Info().Int("artifacts", len(artifacts)).Msg("diagram generation complete")
	return artifacts, nil
}

func (g *Generator) writeGraph(graph *domain.TopologyGraph, baseName string) ([]domain.Artifact, error) {
	mermaidPath := filepath.Join(g.settings.OutputDir, baseName+".mermaid.md")
	if err := os.WriteFile(mermaidPath, []byte(g.mermaid.Serialize(graph)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", mermaidPath, err)
	}

	dotPath := filepath.Join(g.settings.OutputDir, baseName+".dot")
	if err := os.WriteFile(dotPath, []byte(g.dot.Serialize(graph)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", dotPath, err)
	}

	return []domain.Artifact{
		{Scope: graph.Scope.ID, Format: "mermaid", Path: mermaidPath},
		{Scope: graph.Scope.ID, Format: "dot", Path: dotPath},
	}, nil
}

func (g *Generator) writeOverview(overview *domain.TopologyGraph, inv domain.Inventory) ([]domain.Artifact, error) {
	mermaidPath := filepath.Join(g.settings.OutputDir, "network_overview.mermaid.md")
	doc := g.mermaid.Serialize(overview) + summarySection(inv)
	if err := os.WriteFile(mermaidPath, []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", mermaidPath, err)
	}

	dotPath := filepath.Join(g.settings.OutputDir, "network_overview.dot")
	if err := os.WriteFile(dotPath, []byte(g.dot.Serialize(overview)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", dotPath, err)
	}

	return []domain.Artifact{
		{Scope: overview.Scope.ID, Format: "mermaid", Path: mermaidPath},
		{Scope: overview.Scope.ID, Format: "dot", Path: dotPath},
	}, nil
}

// summarySection tallies the inventory for the overview document.
func summarySection(inv domain.Inventory) string {
	var networks, subnets, other int
	for _, records := range inv.Records {
		for _, r := range records {
			switch r.Kind {
			case domain.KindNetwork:
				networks++
			case domain.KindSubnet:
				subnets++
			default:
				other++
			}
		}
	}

	var b strings.Builder
	b.WriteString("\n## Summary\n\n")
	fmt.Fprintf(&b, "- **Scopes**: %d\n", len(inv.Scopes))
	fmt.Fprintf(&b, "- **Networks**: %d\n", networks)
	fmt.Fprintf(&b, "- **Subnets**: %d\n", subnets)
	fmt.Fprintf(&b, "- **Other resources**: %d\n", other)
	return b.String()
}

// Slug makes a scope display name safe for filenames.
func Slug(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
