// Package cache provides the run-scoped analysis cache. Entries are keyed by
// a SHA-256 fingerprint of the analyzed source material, so unchanged inputs
// reuse prior analysis results across operations and across runs that share a
// store.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
)

// Key is a content fingerprint.
type Key string

// Fingerprint hashes raw source material into a cache key.
func Fingerprint(data []byte) Key {
	sum := sha256.Sum256(data)
	return Key(hex.EncodeToString(sum[:]))
}

// FingerprintString hashes a string, typically a serialized facts fragment.
func FingerprintString(s string) Key {
	return Fingerprint([]byte(s))
}

type entry struct {
	once  sync.Once
	done  atomic.Bool
	value any
	err   error
}

// Store memoizes computed analysis results. Reads are safe for concurrent
// use, and the compute function for a given key runs at most once even when
// many workers request it simultaneously; the others block until the first
// computation finishes.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry
}

// New returns an empty store.
func New() *Store {
	return &Store{entries: make(map[Key]*entry)}
}

// Fetch returns the cached value for key, computing and storing it on first
// use. A compute error is cached too: the same key keeps returning it without
// re-running compute, since identical input would fail identically.
func (s *Store) Fetch(key Key, compute func() (any, error)) (any, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	s.mu.Unlock()

	e.once.Do(func() {
		e.value, e.err = compute()
		e.done.Store(true)
	})
	return e.value, e.err
}

// Peek returns the cached value for key without computing anything. It never
// blocks: an entry still being computed reports false.
func (s *Store) Peek(key Key) (any, bool) {
	s.mu.Lock()
	e, ok := s.entries[key]
	s.mu.Unlock()
	if !ok || !e.done.Load() || e.err != nil {
		return nil, false
	}
	return e.value, true
}

// Len reports the number of entries, completed or in flight.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
