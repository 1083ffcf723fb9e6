package topology

import (
	"fmt"
	"strings"
)

// ValidationError reports a structural defect found while building a
// topology graph: duplicate node IDs, edge references to missing endpoints,
// or containment cycles. It is fatal for that scope's build; the builder
// never drops or auto-corrects defective input.
type ValidationError struct {
	Scope  string
	Reason string
	// IDs identifies the offending nodes or edge endpoints.
	IDs []string
}

func (e *ValidationError) Error() string {
	if len(e.IDs) == 0 {
		return fmt.Sprintf("invalid topology for scope %q: %s", e.Scope, e.Reason)
	}
	return fmt.Sprintf("invalid topology for scope %q: %s (%s)",
		e.Scope, e.Reason, strings.Join(e.IDs, ", "))
}
