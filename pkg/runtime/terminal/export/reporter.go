package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
)

// Reporter prints generation and render summaries in a formatted text form.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a console reporter.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// HandleArtifacts prints the list of generated diagram files.
func (r *Reporter) HandleArtifacts(artifacts []domain.Artifact) error {
	tmpl := `
Generated {{len .}} diagram artifacts:
{{range .}}  [{{.Format}}] {{.Path}}
{{end}}`
	t, err := template.New("artifacts").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, artifacts)
}

// HandleBatch prints the per-file tally of a render batch.
func (r *Reporter) HandleBatch(result domain.BatchResult) error {
	tmpl := `
Render batch {{.RunID}}: {{.Total}} pairs, {{len .Succeeded}} succeeded, {{len .Failed}} failed
{{range .Succeeded}}  ok: {{.}}
{{end}}{{range .Failed}}  failed: {{.Source}} ({{.Format}}): {{.Reason}}
{{end}}`
	t, err := template.New("batch").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, result)
}
