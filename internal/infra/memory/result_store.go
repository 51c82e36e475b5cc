package memory

import (
	"context"
	"sync"
	"time"

	"github.com/LKAC-Leander/boardReview/internal/domain"
)

// ResultStore keeps score results in memory with a TTL standing in
// for the lifetime of a browsing session.
type ResultStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu      sync.RWMutex
	results map[string]storedResult
}

type storedResult struct {
	result    domain.ScoreResult
	expiresAt time.Time
}

func NewResultStore(ttl time.Duration) *ResultStore {
	return &ResultStore{
		ttl:     ttl,
		clock:   time.Now,
		results: make(map[string]storedResult),
	}
}

func (s *ResultStore) Put(_ context.Context, id string, result domain.ScoreResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := storedResult{result: result}
	if s.ttl > 0 {
		entry.expiresAt = s.clock().Add(s.ttl)
	}
	s.results[id] = entry
	return nil
}

func (s *ResultStore) Get(_ context.Context, id string) (domain.ScoreResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.results[id]
	if !ok {
		return domain.ScoreResult{}, domain.ErrNoResult
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(s.clock()) {
		return domain.ScoreResult{}, domain.ErrNoResult
	}
	return entry.result, nil
}

// PreferenceStore keeps the theme preference in memory.
type PreferenceStore struct {
	mu    sync.RWMutex
	theme string
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{}
}

func (s *PreferenceStore) Theme(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme, nil
}

func (s *PreferenceStore) SetTheme(_ context.Context, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	return nil
}
