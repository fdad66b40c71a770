// Package history maintains the list of past import attempts, remote-first
// with a durable local fallback.
package history

import (
	"context"
	"log"
	"sync"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/cache"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/models"
)

// Remote is the slice of the backend client the store needs.
type Remote interface {
	FetchImportHistory(ctx context.Context) ([]models.ImportAttempt, error)
}

// Store keeps the import history in memory, mirrored to the durable cache.
// The remote API is the source of truth: the cache is written through on a
// successful fetch and read through when the fetch fails.
type Store struct {
	remote Remote
	cache  *cache.Store

	mu       sync.Mutex
	attempts []models.ImportAttempt
	stale    bool
}

// NewStore builds a store over the remote client and durable cache.
func NewStore(remote Remote, c *cache.Store) *Store {
	return &Store{remote: remote, cache: c}
}

// Refresh fetches the history from the backend. On success both the
// in-memory list and the cache are replaced; the cache write only happens
// after a fully decoded response. On failure the cached copy is served
// instead, flagged as stale, so the UI always has something to render.
func (s *Store) Refresh(ctx context.Context) []models.ImportAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts, err := s.remote.FetchImportHistory(ctx)
	if err != nil {
		log.Printf("import history fetch failed, serving cached copy: %v", err)
		var cached []models.ImportAttempt
		s.cache.Get(cache.KeyImportHistory, &cached)
		s.attempts = cached
		s.stale = true
		return s.listLocked()
	}

	if attempts == nil {
		attempts = []models.ImportAttempt{}
	}
	s.attempts = attempts
	s.stale = false
	if err := s.cache.Set(cache.KeyImportHistory, attempts); err != nil {
		log.Printf("import history cache write failed: %v", err)
	}
	return s.listLocked()
}

// List returns the last known history without touching the network.
func (s *Store) List() []models.ImportAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

// Stale reports whether the current list came from the cache because the
// last remote fetch failed.
func (s *Store) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

// Clear drops both the in-memory list and the durable cache entry.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = nil
	s.stale = false
	return s.cache.Delete(cache.KeyImportHistory)
}

func (s *Store) listLocked() []models.ImportAttempt {
	out := make([]models.ImportAttempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}
