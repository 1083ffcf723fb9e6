package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// InvocationError describes a failed renderer invocation for one
// (source, format) pair: subprocess failure, timeout, or missing binary.
type InvocationError struct {
	Source string
	Format domain.ImageFormat
	// Output holds the diagnostic text captured from the renderer.
	Output string
	Err    error
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("rendering %s to %s failed: %v", e.Source, e.Format, e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *InvocationError) Unwrap() error { return e.Err }

// Renderer isolates the external rendering process behind a narrow
// interface, so the batch pipeline is testable with a fake.
type Renderer interface {
	// Available reports whether the renderer can run at all. It is checked
	// once per batch so a missing binary fails fast instead of N times.
	Available() error
	// Render produces source in the given format and returns the output
	// path. Re-rendering overwrites prior output.
	Render(ctx context.Context, source string, format domain.ImageFormat) (string, error)
}

// DotSettings configures the Graphviz-backed renderer.
type DotSettings struct {
	// Binary is the renderer executable, resolved via PATH.
	Binary string
	// Timeout bounds each invocation.
	Timeout time.Duration
	// OutputDir overrides the default of writing outputs beside their
	// source file.
	OutputDir string
}

// DefaultDotSettings returns the default Graphviz renderer configuration.
func DefaultDotSettings() DotSettings {
	return DotSettings{
		Binary:  "dot",
		Timeout: 30 * time.Second,
	}
}

type dotRenderer struct {
	settings DotSettings
}

// NewDotRenderer creates a Renderer that shells out to Graphviz.
func NewDotRenderer(settings DotSettings) Renderer {
	defaults := DefaultDotSettings()
	if settings.Binary == "" {
		settings.Binary = defaults.Binary
	}
	if settings.Timeout <= 0 {
		settings.Timeout = defaults.Timeout
	}
	return &dotRenderer{settings: settings}
}

func (r *dotRenderer) Available() error {
	if _, err := exec.LookPath(r.settings.Binary); err != nil {
		return fmt.Errorf("renderer binary %q not found: %w", r.settings.Binary, err)
	}
	return nil
}

func (r *dotRenderer) Render(ctx context.Context, source string, format domain.ImageFormat) (string, error) {
	out := r.outputPath(source, format)

	ctx, cancel := context.WithTimeout(ctx, r.settings.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.settings.Binary, "-T"+string(format), "-o", out, source)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", r.settings.Timeout, ctx.Err())
		}
		return "", &InvocationError{
			Source: source,
			Format: format,
			Output: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return out, nil
}

func (r *dotRenderer) outputPath(source string, format domain.ImageFormat) string {
	if r.settings.OutputDir != "" {
		source = filepath.Join(r.settings.OutputDir, filepath.Base(source))
	}
	return OutputPath(source, format)
}

// OutputPath is the deterministic sibling path a rendered source maps to.
func OutputPath(source string, format domain.ImageFormat) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + "." + string(format)
}
