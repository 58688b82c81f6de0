package issues

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferspec/inferspec/internal/severity"
)

func TestCollectorRecordsInOrder(t *testing.T) {
	c := NewCollector(false)
	c.Addf(severity.SeverityWarning, "routes", "/users", "first")
	c.Addf(severity.SeverityInfo, "rules", "", "second")

	all := c.Issues()
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].Message)
	assert.Equal(t, "second", all[1].Message)
	assert.NoError(t, c.Err())
}

func TestCollectorFailFastLatchesFirstError(t *testing.T) {
	c := NewCollector(true)
	c.Addf(severity.SeverityWarning, "routes", "", "just a warning")
	assert.NoError(t, c.Err())

	c.Addf(severity.SeverityError, "routes", "/a", "boom")
	c.Addf(severity.SeverityError, "routes", "/b", "later")

	err := c.Err()
	require.Error(t, err)
	var aborted *ErrAborted
	require.True(t, errors.As(err, &aborted))
	assert.Equal(t, "boom", aborted.First.Message)

	// Issues after the abort are still recorded.
	assert.Len(t, c.Issues(), 3)
}

func TestCollectorWithoutFailFastNeverAborts(t *testing.T) {
	c := NewCollector(false)
	c.Addf(severity.SeverityCritical, "input", "", "unreadable")
	assert.NoError(t, c.Err())
}

func TestCollectorCount(t *testing.T) {
	c := NewCollector(false)
	c.Addf(severity.SeverityWarning, "a", "", "w1")
	c.Addf(severity.SeverityWarning, "b", "", "w2")
	c.Addf(severity.SeverityInfo, "c", "", "i1")

	assert.Equal(t, 2, c.Count(severity.SeverityWarning))
	assert.Equal(t, 1, c.Count(severity.SeverityInfo))
	assert.Equal(t, 0, c.Count(severity.SeverityError))
}

func TestCollectorConcurrentAdd(t *testing.T) {
	c := NewCollector(true)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Addf(severity.SeverityError, "routes", "", "concurrent")
		}()
	}
	wg.Wait()

	assert.Len(t, c.Issues(), 32)
	var aborted *ErrAborted
	assert.True(t, errors.As(c.Err(), &aborted))
}

func TestIssuesReturnsCopy(t *testing.T) {
	c := NewCollector(false)
	c.Addf(severity.SeverityInfo, "a", "", "original")

	snapshot := c.Issues()
	snapshot[0].Message = "mutated"
	assert.Equal(t, "original", c.Issues()[0].Message)
}
