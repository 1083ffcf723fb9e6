package render

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// Settings configures batch rendering.
type Settings struct {
	// Workers bounds concurrent renderer invocations.
	Workers int
}

// DefaultSettings returns the default pipeline configuration.
func DefaultSettings() Settings {
	return Settings{Workers: 4}
}

// Pipeline fans a batch of diagram sources out to the renderer, one
// invocation per (source, format) pair. Pair failures are aggregated into
// the batch result; only a missing renderer aborts the batch.
type Pipeline struct {
	renderer Renderer
	settings Settings
}

// NewPipeline creates a pipeline over the given renderer.
func NewPipeline(renderer Renderer, settings Settings) *Pipeline {
	if settings.Workers <= 0 {
		settings.Workers = DefaultSettings().Workers
	}
	return &Pipeline{renderer: renderer, settings: settings}
}

type renderPair struct {
	source string
	format domain.ImageFormat
}

// RenderBatch renders every (source, format) combination. The batch always
// runs to completion: a failed pair is recorded with its diagnostic text and
// the remaining pairs proceed. The returned error is non-nil only when the
// renderer itself is unavailable.
func (p *Pipeline) RenderBatch(ctx context.Context, sources []string, formats []domain.ImageFormat) (domain.BatchResult, error) {
	result := domain.BatchResult{RunID: uuid.NewString()}

	if err := p.renderer.Available(); err != nil {
		return result, fmt.Errorf("render batch aborted: %w", err)
	}

	logger := zerolog.Ctx(ctx).With().Str("run_id", result.RunID).Logger()

	pairs := buildPairs(sources, formats)
	logger.Info().Int("pairs", len(pairs)).Msg("starting render batch")

	var mu sync.Mutex
	var grp errgroup.Group
	grp.SetLimit(p.settings.Workers)

	for _, pair := range pairs {
		pair := pair
		grp.Go(func() error {
			out, err := p.renderer.Render(ctx, pair.source, pair.format)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn().
					Str("source", pair.source).
					Str("format", string(pair.format)).
					Err(err).
					Msg("render failed")
				result.Failed = append(result.Failed, domain.RenderFailure{
					Source: pair.source,
					Format: pair.format,
					Reason: failureReason(err),
				})
				return nil
			}
			result.Succeeded = append(result.Succeeded, out)
			return nil
		})
	}
	_ = grp.Wait()

	sort.Strings(result.Succeeded)
	sort.Slice(result.Failed, func(i, j int) bool {
		if result.Failed[i].Source != result.Failed[j].Source {
			return result.Failed[i].Source < result.Failed[j].Source
		}
		return result.Failed[i].Format < result.Failed[j].Format
	})

	logger.Info().
		Int("succeeded", len(result.Succeeded)).
		Int("failed", len(result.Failed)).
		Msg("render batch complete")
	return result, nil
}

// buildPairs expands sources x formats into a deduplicated, sorted work list.
func buildPairs(sources []string, formats []domain.ImageFormat) []renderPair {
	srcs := append([]string(nil), sources...)
	sort.Strings(srcs)

	seen := make(map[domain.ImageFormat]bool, len(formats))
	var fmts []domain.ImageFormat
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			fmts = append(fmts, f)
		}
	}
	sort.Slice(fmts, func(i, j int) bool { return fmts[i] < fmts[j] })

	pairs := make([]renderPair, 0, len(srcs)*len(fmts))
	for _, s := range srcs {
		for _, f := range fmts {
			pairs = append(pairs, renderPair{source: s, format: f})
		}
	}
	return pairs
}

// failureReason prefers the renderer's captured diagnostics over the bare
// error string.
func failureReason(err error) string {
	var inv *InvocationError
	if errors.As(err, &inv) && inv.Output != "" {
		return inv.Output
	}
	return err.Error()
}
