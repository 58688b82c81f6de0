// Package severity provides severity level constants and utilities for issues
// reported by the rules, shapes, assemble, and requirements packages.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue collected during analysis
// or assembly.
type Severity int

const (
	// SeverityError indicates a collaborator-level failure, such as a route
	// whose handler cannot be introspected. Errors abort the run only when the
	// caller opted into fail-fast behavior.
	SeverityError Severity = iota

	// SeverityWarning indicates a degraded analysis result that should be
	// reviewed but does not prevent assembly.
	SeverityWarning

	// SeverityInfo indicates informational messages about analysis choices.
	SeverityInfo

	// SeverityCritical indicates input that cannot be processed at all.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
