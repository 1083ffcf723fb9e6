package commands

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/cloud-atlas/pkg/services/render"
)

type RenderCmd struct {
	inputDir    string
	outputDir   string
	formats     []string
	profilePath string
	reporter    *export.Reporter
}

// NewRenderCmd renders the DOT files of a directory to images via the
// external Graphviz binary. Partial failure is not fatal at the process
// level; only a missing renderer binary exits non-zero.
func NewRenderCmd(reporter *export.Reporter) *cobra.Command {
	rc := &RenderCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render DOT diagram files to images",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.inputDir, "input", "docs/diagrams", "Directory containing .dot files")
	cmd.Flags().StringVar(&rc.outputDir, "output", "", "Directory for rendered images (default: beside each source)")
	cmd.Flags().StringSliceVar(&rc.formats, "formats", nil, "Target image formats (png, svg, pdf)")
	cmd.Flags().StringVar(&rc.profilePath, "profile", "", "Path to an optional configuration profile")

	return cmd
}

func (rc *RenderCmd) run(cmd *cobra.Command, _ []string) error {
	profile, err := loadProfile(rc.profilePath)
	if err != nil {
		return err
	}

	formats, err := rc.resolveFormats(profile.Formats)
	if err != nil {
		return err
	}

	sources, err := filepath.Glob(filepath.Join(rc.inputDir, "*.dot"))
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", rc.inputDir, err)
	}
	sort.Strings(sources)

	dotSettings := profile.DotSettings()
	if rc.outputDir != "" {
		dotSettings.OutputDir = rc.outputDir
	}

	pipeline := render.NewPipeline(render.NewDotRenderer(dotSettings), profile.PipelineSettings())
	result, err := pipeline.RenderBatch(cmd.Context(), sources, formats)
	if err != nil {
		return err
	}

	return rc.reporter.HandleBatch(result)
}

// resolveFormats prefers the --formats flag, falls back to the profile, and
// defaults to png.
func (rc *RenderCmd) resolveFormats(fromProfile func() ([]domain.ImageFormat, error)) ([]domain.ImageFormat, error) {
	if len(rc.formats) > 0 {
		var formats []domain.ImageFormat
		for _, s := range rc.formats {
			f, err := domain.ParseImageFormat(s)
			if err != nil {
				return nil, err
			}
			formats = append(formats, f)
		}
		return formats, nil
	}

	formats, err := fromProfile()
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		formats = []domain.ImageFormat{domain.FormatPNG}
	}
	return formats, nil
}
