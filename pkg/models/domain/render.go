package domain

import "fmt"

// ImageFormat names a raster/vector output format the external renderer
// supports.
type ImageFormat string

const (
	FormatPNG ImageFormat = "png"
	FormatSVG ImageFormat = "svg"
	FormatPDF ImageFormat = "pdf"
)

// ParseImageFormat validates a format string from flags or profile config.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch f := ImageFormat(s); f {
	case FormatPNG, FormatSVG, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", s)
	}
}

// RenderFailure records one failed (source, format) pair of a render batch.
type RenderFailure struct {
	Source string
	Format ImageFormat
	Reason string
}

// BatchResult is the full tally of one render batch. A batch always runs to
// completion; per-pair failures land here instead of aborting it.
type BatchResult struct {
	RunID     string
	Succeeded []string
	Failed    []RenderFailure
}

// Total is the number of (source, format) pairs the batch processed.
func (r BatchResult) Total() int {
	return len(r.Succeeded) + len(r.Failed)
}

// Artifact is one file the docs generator wrote.
type Artifact struct {
	Scope  string
	Format string // "mermaid" or "dot"
	Path   string
}
