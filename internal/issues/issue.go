// Package issues provides a unified issue type and a run-scoped collector for
// problems found while gathering source facts or assembling a document.
package issues

import (
	"fmt"

	"github.com/inferspec/inferspec/internal/severity"
)

// Issue represents a single problem found during analysis or assembly.
type Issue struct {
	// Path identifies what was being processed (e.g., "routes./users/{id}.get")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Context tags the collaborator or phase that reported the issue
	// (e.g., "rules", "shapes", "routes")
	Context string
	// Value is the problematic value (optional)
	Value any
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	result := fmt.Sprintf("%s %s: %s", symbol, i.Path, i.Message)
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}
