package memory

import (
	"context"
	"testing"
	"time"

	"github.com/LKAC-Leander/boardReview/internal/domain"
)

func TestSaveStampsTimestamps(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	store := NewQuizStoreWithClock(func() time.Time { return now })

	quiz := domain.Quiz{ID: "quiz-1", Title: "First"}
	if err := store.Save(context.Background(), &quiz); err != nil {
		t.Fatalf("save: %v", err)
	}
	if quiz.CreatedAt != now.UnixMilli() || quiz.UpdatedAt != now.UnixMilli() {
		t.Fatalf("expected createdAt == updatedAt == now, got %d/%d", quiz.CreatedAt, quiz.UpdatedAt)
	}

	now = now.Add(time.Minute)
	if err := store.Save(context.Background(), &quiz); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if quiz.CreatedAt == quiz.UpdatedAt {
		t.Fatalf("expected createdAt to stay fixed, got %d/%d", quiz.CreatedAt, quiz.UpdatedAt)
	}
}

func TestListAllOrdersByUpdatedAtDesc(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	store := NewQuizStoreWithClock(func() time.Time { return now })
	ctx := context.Background()

	a := domain.Quiz{ID: "a", Title: "A"}
	_ = store.Save(ctx, &a)
	now = now.Add(time.Minute)
	b := domain.Quiz{ID: "b", Title: "B"}
	_ = store.Save(ctx, &b)
	now = now.Add(time.Minute)
	_ = store.Save(ctx, &a) // a edited most recently

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != "a" || all[1].ID != "b" {
		t.Fatalf("expected [a b], got %+v", all)
	}
}

func TestListAllFallsBackToCreatedAt(t *testing.T) {
	store := NewQuizStore()
	ctx := context.Background()

	// A document written by an older client, with no updatedAt.
	legacy := domain.Quiz{ID: "legacy", Title: "Legacy", CreatedAt: 2}
	store.mu.Lock()
	store.quizzes["legacy"] = legacy
	store.seq["legacy"] = 0
	store.mu.Unlock()

	fresh := domain.Quiz{ID: "fresh", Title: "Fresh", CreatedAt: 1, UpdatedAt: 1}
	store.mu.Lock()
	store.quizzes["fresh"] = fresh
	store.seq["fresh"] = 1
	store.mu.Unlock()

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all[0].ID != "legacy" {
		t.Fatalf("expected legacy first via createdAt fallback, got %+v", all)
	}
}

func TestGetAbsent(t *testing.T) {
	store := NewQuizStore()
	if _, err := store.Get(context.Background(), "nope"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := NewQuizStore()
	ctx := context.Background()

	quiz := domain.Quiz{ID: "quiz-1"}
	_ = store.Save(ctx, &quiz)
	if err := store.Delete(ctx, "quiz-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "quiz-1"); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
	if err := store.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("deleting unknown id should be a no-op, got %v", err)
	}
}

func TestSaveIsFullReplace(t *testing.T) {
	store := NewQuizStore()
	ctx := context.Background()

	quiz := domain.Quiz{ID: "quiz-1", Title: "Full", Questions: []domain.Question{
		{ID: "q1", Text: "?", Choices: []string{"a", "b"}, CorrectIndex: 0},
	}}
	_ = store.Save(ctx, &quiz)

	trimmed := domain.Quiz{ID: "quiz-1", Title: "Trimmed", CreatedAt: quiz.CreatedAt}
	_ = store.Save(ctx, &trimmed)

	got, err := store.Get(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Trimmed" || len(got.Questions) != 0 {
		t.Fatalf("expected full replace, got %+v", got)
	}
}

func TestStoredQuizIsIsolatedFromCaller(t *testing.T) {
	store := NewQuizStore()
	ctx := context.Background()

	quiz := domain.Quiz{ID: "quiz-1", Questions: []domain.Question{
		{ID: "q1", Text: "?", Choices: []string{"a", "b"}, CorrectIndex: 0},
	}}
	_ = store.Save(ctx, &quiz)
	quiz.Questions[0].Text = "mutated after save"

	got, _ := store.Get(ctx, "quiz-1")
	if got.Questions[0].Text != "?" {
		t.Fatalf("store shared memory with caller: %+v", got.Questions[0])
	}
}
