package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

func TestNewDotRenderer_Defaults(t *testing.T) {
	r, ok := NewDotRenderer(DotSettings{}).(*dotRenderer)
	require.True(t, ok)
	assert.Equal(t, "dot", r.settings.Binary)
	assert.Equal(t, 30*time.Second, r.settings.Timeout)
}

func TestDotRenderer_OutputPath(t *testing.T) {
	t.Run("beside source by default", func(t *testing.T) {
		r := NewDotRenderer(DotSettings{}).(*dotRenderer)
		assert.Equal(t, "docs/diagrams/net.png", r.outputPath("docs/diagrams/net.dot", domain.FormatPNG))
	})

	t.Run("redirected to output dir", func(t *testing.T) {
		r := NewDotRenderer(DotSettings{OutputDir: "out"}).(*dotRenderer)
		assert.Equal(t, "out/net.svg", r.outputPath("docs/diagrams/net.dot", domain.FormatSVG))
	})
}

func TestInvocationError_Message(t *testing.T) {
	err := &InvocationError{
		Source: "net.dot",
		Format: domain.FormatPNG,
		Output: "syntax error",
		Err:    assert.AnError,
	}
	assert.Contains(t, err.Error(), "net.dot")
	assert.Contains(t, err.Error(), "png")
	assert.Contains(t, err.Error(), "syntax error")
	assert.ErrorIs(t, err, assert.AnError)
}
