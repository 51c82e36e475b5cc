package app

import (
	"context"

	"github.com/LKAC-Leander/boardReview/internal/domain"
)

// QuizStore abstracts the document collection quizzes are persisted in
// (in-memory, Postgres, a caching layer over either).
type QuizStore interface {
	// ListAll returns every quiz, most recently updated first
	// (creation time when a quiz was never re-saved), ties stable.
	ListAll(ctx context.Context) ([]domain.Quiz, error)
	// Get returns the quiz for id, or domain.ErrQuizNotFound when no
	// document exists. Store failures are any other error.
	Get(ctx context.Context, id string) (domain.Quiz, error)
	// Save stamps UpdatedAt (and CreatedAt when unset) on the given
	// quiz and overwrites the whole document keyed by its id.
	// Last write wins; there is no merge or version check.
	Save(ctx context.Context, quiz *domain.Quiz) error
	// Delete removes the document for id. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error
}

// ResultStore holds score results between submission and review. Slots
// are transient: implementations may expire them after a session-like TTL.
type ResultStore interface {
	Put(ctx context.Context, id string, result domain.ScoreResult) error
	// Get returns domain.ErrNoResult when the slot is empty or expired.
	Get(ctx context.Context, id string) (domain.ScoreResult, error)
}

// PreferenceStore keeps the cosmetic theme preference. "light" selects
// the light theme; empty or anything else means dark.
type PreferenceStore interface {
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
}
