package issues

import (
	"fmt"
	"sync"

	"github.com/inferspec/inferspec/internal/severity"
)

// ErrAborted is returned by Collector.Err when a fail-fast collector has
// recorded its first error-severity issue.
type ErrAborted struct {
	// First is the issue that triggered the abort.
	First Issue
}

// Error implements the error interface.
func (e *ErrAborted) Error() string {
	return fmt.Sprintf("aborted on first collected error: %s", e.First.String())
}

// Collector accumulates issues reported by analyzers and collaborators during
// a single generation run. It is safe for concurrent use.
//
// Lifecycle is create once per run, discard at run end; collectors are never
// shared across runs.
type Collector struct {
	mu       sync.Mutex
	failFast bool
	items    []Issue
	abort    *ErrAborted
}

// NewCollector creates an empty collector. When failFast is true, the first
// issue with severity Error or Critical latches an abort error that Err
// reports; subsequent issues are still recorded.
func NewCollector(failFast bool) *Collector {
	return &Collector{failFast: failFast}
}

// Add records an issue.
func (c *Collector) Add(issue Issue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, issue)
	if c.failFast && c.abort == nil &&
		(issue.Severity == severity.SeverityError || issue.Severity == severity.SeverityCritical) {
		c.abort = &ErrAborted{First: issue}
	}
}

// Addf records an issue built from a format string.
func (c *Collector) Addf(sev severity.Severity, context, path, format string, args ...any) {
	c.Add(Issue{
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
		Context:  context,
	})
}

// Err returns the latched abort error for fail-fast collectors, or nil.
func (c *Collector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.abort == nil {
		return nil
	}
	return c.abort
}

// Issues returns a copy of all recorded issues in collection order.
func (c *Collector) Issues() []Issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Issue, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns the number of issues at or above the given severity threshold
// ordering (Info < Warning < Error < Critical is the conceptual ordering; the
// count here matches exact severity).
func (c *Collector) Count(sev severity.Severity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, it := range c.items {
		if it.Severity == sev {
			n++
		}
	}
	return n
}
