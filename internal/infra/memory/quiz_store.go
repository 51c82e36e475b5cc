package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/LKAC-Leander/boardReview/internal/domain"
)

// QuizStore is an in-memory implementation of app.QuizStore, useful
// for tests and for running without a database.
type QuizStore struct {
	clock func() time.Time

	mu      sync.RWMutex
	quizzes map[string]domain.Quiz
	seq     map[string]int // insertion order, for stable ties
	nextSeq int
}

func NewQuizStore() *QuizStore {
	return NewQuizStoreWithClock(time.Now)
}

// NewQuizStoreWithClock allows deterministic timestamps in tests.
func NewQuizStoreWithClock(clock func() time.Time) *QuizStore {
	return &QuizStore{
		clock:   clock,
		quizzes: make(map[string]domain.Quiz),
		seq:     make(map[string]int),
	}
}

func (s *QuizStore) ListAll(_ context.Context) ([]domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Quiz, 0, len(s.quizzes))
	for _, quiz := range s.quizzes {
		out = append(out, quiz.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := out[i].SortKey(), out[j].SortKey()
		if ki != kj {
			return ki > kj
		}
		return s.seq[out[i].ID] < s.seq[out[j].ID]
	})
	return out, nil
}

func (s *QuizStore) Get(_ context.Context, id string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz.Clone(), nil
}

// Save stamps timestamps and replaces the whole stored document.
func (s *QuizStore) Save(_ context.Context, quiz *domain.Quiz) error {
	now := s.clock().UnixMilli()
	quiz.UpdatedAt = now
	if quiz.CreatedAt == 0 {
		quiz.CreatedAt = now
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seq[quiz.ID]; !ok {
		s.seq[quiz.ID] = s.nextSeq
		s.nextSeq++
	}
	s.quizzes[quiz.ID] = quiz.Clone()
	return nil
}

func (s *QuizStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.quizzes, id)
	delete(s.seq, id)
	return nil
}
