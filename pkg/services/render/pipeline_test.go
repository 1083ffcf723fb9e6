package render

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// fakeRenderer drives the pipeline without the real Graphviz binary.
type fakeRenderer struct {
	mu           sync.Mutex
	availableErr error
	failures     map[string]string // source -> diagnostic text
	calls        []string
}

func (f *fakeRenderer) Available() error {
	return f.availableErr
}

func (f *fakeRenderer) Render(_ context.Context, source string, format domain.ImageFormat) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, source+":"+string(format))
	f.mu.Unlock()

	if diag, ok := f.failures[source]; ok {
		return "", &InvocationError{
			Source: source,
			Format: format,
			Output: diag,
			Err:    errors.New("exit status 1"),
		}
	}
	return OutputPath(source, format), nil
}

func TestRenderBatch_PartialFailure(t *testing.T) {
	fake := &fakeRenderer{
		failures: map[string]string{
			"b.dot": "syntax error in line 3",
		},
	}
	p := NewPipeline(fake, Settings{Workers: 2})

	result, err := p.RenderBatch(context.Background(),
		[]string{"a.dot", "b.dot", "c.dot"},
		[]domain.ImageFormat{domain.FormatPNG})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.png", "c.png"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "b.dot", result.Failed[0].Source)
	assert.Equal(t, domain.FormatPNG, result.Failed[0].Format)
	assert.Equal(t, "syntax error in line 3", result.Failed[0].Reason)
	assert.Equal(t, 3, result.Total())
	assert.NotEmpty(t, result.RunID)
}

func TestRenderBatch_MissingBinaryFailsFast(t *testing.T) {
	fake := &fakeRenderer{availableErr: errors.New(`renderer binary "dot" not found`)}
	p := NewPipeline(fake, Settings{})

	_, err := p.RenderBatch(context.Background(),
		[]string{"a.dot", "b.dot"},
		[]domain.ImageFormat{domain.FormatPNG, domain.FormatSVG})

	require.Error(t, err)
	// The availability check runs once, before any invocation.
	assert.Empty(t, fake.calls)
}

func TestRenderBatch_AllPairsProcessed(t *testing.T) {
	fake := &fakeRenderer{}
	p := NewPipeline(fake, Settings{Workers: 3})

	sources := []string{"x.dot", "y.dot"}
	formats := []domain.ImageFormat{domain.FormatPNG, domain.FormatSVG}
	result, err := p.RenderBatch(context.Background(), sources, formats)
	require.NoError(t, err)

	assert.Equal(t, []string{"x.png", "x.svg", "y.png", "y.svg"}, result.Succeeded)
	assert.Len(t, fake.calls, 4)
}

func TestRenderBatch_DeduplicatesFormats(t *testing.T) {
	fake := &fakeRenderer{}
	p := NewPipeline(fake, Settings{})

	result, err := p.RenderBatch(context.Background(),
		[]string{"a.dot"},
		[]domain.ImageFormat{domain.FormatPNG, domain.FormatPNG})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.png"}, result.Succeeded)
	assert.Len(t, fake.calls, 1)
}

func TestRenderBatch_ResultOrderIsDeterministic(t *testing.T) {
	fake := &fakeRenderer{
		failures: map[string]string{"z.dot": "boom", "a.dot": "boom"},
	}
	p := NewPipeline(fake, Settings{Workers: 4})

	sources := []string{"z.dot", "m.dot", "a.dot", "k.dot"}
	result, err := p.RenderBatch(context.Background(), sources,
		[]domain.ImageFormat{domain.FormatSVG, domain.FormatPNG})
	require.NoError(t, err)

	assert.Equal(t, []string{"k.png", "k.svg", "m.png", "m.svg"}, result.Succeeded)

	var failedKeys []string
	for _, f := range result.Failed {
		failedKeys = append(failedKeys, fmt.Sprintf("%s:%s", f.Source, f.Format))
	}
	assert.Equal(t, []string{"a.dot:png", "a.dot:svg", "z.dot:png", "z.dot:svg"}, failedKeys)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "docs/network_prod.png", OutputPath("docs/network_prod.dot", domain.FormatPNG))
	assert.Equal(t, "plain.svg", OutputPath("plain.dot", domain.FormatSVG))
}

func TestFailureReason(t *testing.T) {
	t.Run("prefers captured diagnostics", func(t *testing.T) {
		err := &InvocationError{Source: "a.dot", Format: domain.FormatPNG, Output: "bad input", Err: errors.New("exit status 1")}
		assert.Equal(t, "bad input", failureReason(err))
	})

	t.Run("falls back to error text", func(t *testing.T) {
		err := &InvocationError{Source: "a.dot", Format: domain.FormatPNG, Err: errors.New("exit status 1")}
		assert.Equal(t, err.Error(), failureReason(err))
	})
}
