package requirements

import "fmt"

// Status is a check outcome.
type Status string

const (
	// StatusPass means the check found no violations.
	StatusPass Status = "pass"
	// StatusFail means the check found at least one violation.
	StatusFail Status = "fail"
	// StatusSkip means the check does not apply to the document's version.
	StatusSkip Status = "skip"
)

// CheckResult is one check's outcome.
type CheckResult struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	// ApplicableVersions lists the document versions the check is gated on,
	// regardless of the version it actually ran against.
	ApplicableVersions []string `json:"applicableVersions"`
	Status             Status   `json:"status"`
	Violations         []string `json:"violations,omitempty"`
}

// Summary counts check outcomes. Passed+Failed+Skipped always equals Total.
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Report is the full validation outcome.
type Report struct {
	Summary Summary       `json:"summary"`
	Checks  []CheckResult `json:"checks"`
	// Failures flattens every violation as "[id] message" for callers that
	// print one line per problem.
	Failures []string `json:"failures,omitempty"`
}

// Valid reports whether no check failed.
func (r *Report) Valid() bool { return r.Summary.Failed == 0 }

func buildReport(results []CheckResult) *Report {
	report := &Report{Checks: results}
	report.Summary.Total = len(results)
	for _, c := range results {
		switch c.Status {
		case StatusPass:
			report.Summary.Passed++
		case StatusFail:
			report.Summary.Failed++
			for _, v := range c.Violations {
				report.Failures = append(report.Failures, fmt.Sprintf("[%s] %s", c.ID, v))
			}
		case StatusSkip:
			report.Summary.Skipped++
		}
	}
	return report
}
