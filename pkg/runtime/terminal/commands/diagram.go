package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/cloud-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/cloud-atlas/pkg/services/classify"
	"github.com/de-tools/cloud-atlas/pkg/services/config"
	"github.com/de-tools/cloud-atlas/pkg/services/diagram"
	"github.com/de-tools/cloud-atlas/pkg/services/docs"
	"github.com/de-tools/cloud-atlas/pkg/services/inventory"
	"github.com/de-tools/cloud-atlas/pkg/services/topology"
)

type DiagramCmd struct {
	inventoryPath string
	outputDir     string
	profilePath   string
	reporter      *export.Reporter
}

// NewDiagramCmd builds topology graphs from an inventory export and emits
// the Mermaid and DOT diagram files.
func NewDiagramCmd(reporter *export.Reporter) *cobra.Command {
	dc := &DiagramCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Build topology diagrams from an inventory export",
		RunE:  dc.run,
	}

	cmd.Flags().StringVar(&dc.inventoryPath, "inventory", "", "Path to the inventory export (JSON)")
	cmd.Flags().StringVar(&dc.outputDir, "output", "docs/diagrams", "Directory for generated diagram files")
	cmd.Flags().StringVar(&dc.profilePath, "profile", "", "Path to an optional configuration profile")

	_ = cmd.MarkFlagRequired("inventory")

	return cmd
}

func (dc *DiagramCmd) run(cmd *cobra.Command, _ []string) error {
	profile, err := loadProfile(dc.profilePath)
	if err != nil {
		return err
	}
	rules, err := profile.ClassifierRules()
	if err != nil {
		return err
	}
	palette, err := profile.Palette()
	if err != nil {
		return err
	}

	inv, err := inventory.LoadFile(dc.inventoryPath)
	if err != nil {
		return err
	}

	generator := docs.NewGenerator(
		topology.NewBuilder(classify.New(rules)),
		diagram.NewMermaid(palette),
		diagram.NewDot(palette),
		docs.Settings{OutputDir: dc.outputDir},
	)

	artifacts, err := generator.Generate(cmd.Context(), inv)
	if err != nil {
		return fmt.Errorf("failed to generate diagrams: %w", err)
	}

	return dc.reporter.HandleArtifacts(artifacts)
}

func loadProfile(path string) (*config.Profile, error) {
	if path == "" {
		return config.DefaultProfile(), nil
	}
	return config.LoadProfile(path)
}
