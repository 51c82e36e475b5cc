package app

import (
	"context"
	"sync"

	"github.com/LKAC-Leander/boardReview/internal/domain"
)

// Catalog fans quiz-list snapshots out to subscribers so a builder UI
// can keep its quiz dropdown live without polling.
type Catalog struct {
	store       QuizStore
	mu          sync.Mutex
	subscribers map[chan []domain.Quiz]struct{}
}

func NewCatalog(store QuizStore) *Catalog {
	return &Catalog{
		store:       store,
		subscribers: make(map[chan []domain.Quiz]struct{}),
	}
}

// Subscribe registers a listener and immediately delivers the current
// snapshot. The caller must invoke the returned cancel function to
// avoid leaks.
func (c *Catalog) Subscribe(ctx context.Context) (<-chan []domain.Quiz, func(), error) {
	snapshot, err := c.store.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan []domain.Quiz, 8)
	c.mu.Lock()
	c.subscribers[ch] = struct{}{}
	c.mu.Unlock()

	ch <- snapshot

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel, nil
}

// Refresh re-lists the store and pushes the snapshot to every
// subscriber. Slow subscribers have their stale snapshot dropped so a
// refresh never blocks the mutation that triggered it. Safe to call on
// a nil catalog.
func (c *Catalog) Refresh(ctx context.Context) error {
	if c == nil {
		return nil
	}
	quizzes, err := c.store.ListAll(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for ch := range c.subscribers {
		select {
		case ch <- quizzes:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- quizzes
		}
	}
	return nil
}
