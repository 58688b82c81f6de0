package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint([]byte("rules: required|string"))
	b := FingerprintString("rules: required|string")
	assert.Equal(t, a, b)
	assert.Len(t, string(a), 64)
	assert.NotEqual(t, a, FingerprintString("rules: required|integer"))
}

func TestFetchComputesOnce(t *testing.T) {
	store := New()
	var calls atomic.Int32

	key := FingerprintString("user.email")
	for range 3 {
		v, err := store.Fetch(key, func() (any, error) {
			calls.Add(1)
			return "computed", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "computed", v)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, store.Len())
}

func TestFetchConcurrentAtMostOnce(t *testing.T) {
	store := New()
	var calls atomic.Int32
	key := FingerprintString("shared")

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.Fetch(key, func() (any, error) {
				calls.Add(1)
				return 42, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchCachesError(t *testing.T) {
	store := New()
	var calls atomic.Int32
	key := FingerprintString("bad")
	boom := errors.New("unparseable facts")

	for range 2 {
		_, err := store.Fetch(key, func() (any, error) {
			calls.Add(1)
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, int32(1), calls.Load())

	_, ok := store.Peek(key)
	assert.False(t, ok, "errored entries are not peekable values")
}

func TestPeek(t *testing.T) {
	store := New()
	key := FingerprintString("k")

	_, ok := store.Peek(key)
	assert.False(t, ok)

	_, err := store.Fetch(key, func() (any, error) { return "v", nil })
	require.NoError(t, err)

	v, ok := store.Peek(key)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
