package request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCache is a minimal in-memory Store.
type memCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	state map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, state: map[string]string{}}
}

func (m *memCache) GetCache(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memCache) SetCache(ctx context.Context, key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = val
	return nil
}

func (m *memCache) HasCache(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *memCache) GetState(ctx context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.state[key]
	return v, ok
}

func (m *memCache) SetState(ctx context.Context, key, val string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state[key] = val
	return nil
}

func (m *memCache) DeleteState(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.state, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func fastConfig(retries int) ClientConfig {
	return ClientConfig{
		Retries:   retries,
		Timeout:   time.Second,
		BaseDelay: time.Millisecond,
		MaxDelay:  5 * time.Millisecond,
	}
}

func TestGetSuccessWritesCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<kml/>"))
	}))
	defer srv.Close()

	cache := newMemCache()
	c := New(cache, fastConfig(2))

	body, err := c.Get(context.Background(), srv.URL, "source:doc")
	require.NoError(t, err)
	assert.Equal(t, []byte("<kml/>"), body)

	cached, ok := cache.data["source:doc"]
	require.True(t, ok)
	assert.Equal(t, []byte("<kml/>"), cached)

	// A successful fetch records its time in persistent state.
	fetched, ok := c.FetchedAt(context.Background(), "source:doc")
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), fetched, time.Minute)
}

func TestGetRetriesThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New(newMemCache(), fastConfig(3))

	body, err := c.Get(context.Background(), srv.URL, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), body)
	assert.Equal(t, 3, calls)
}

func TestGetFallsBackToCachedCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cache := newMemCache()
	cache.data["source:doc"] = []byte("stale but usable")
	c := New(cache, fastConfig(2))

	body, err := c.Get(context.Background(), srv.URL, "source:doc")
	require.NoError(t, err)
	assert.Equal(t, []byte("stale but usable"), body)

	// No successful fetch ever happened, so there is no recorded time.
	_, ok := c.FetchedAt(context.Background(), "source:doc")
	assert.False(t, ok)
}

func TestGetFailsWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(newMemCache(), fastConfig(2))

	_, err := c.Get(context.Background(), srv.URL, "missing")
	assert.Error(t, err)
}
