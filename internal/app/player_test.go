package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LKAC-Leander/boardReview/internal/app"
	"github.com/LKAC-Leander/boardReview/internal/domain"
	"github.com/LKAC-Leander/boardReview/internal/infra/memory"
	"github.com/LKAC-Leander/boardReview/internal/sharelink"
)

func TestResolvePrefersSharedPayload(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuizStore()
	stored := domain.Quiz{ID: "stored", Title: "Stored"}
	_ = store.Save(ctx, &stored)

	player := app.NewPlayer(store, memory.NewResultStore(time.Minute))

	shared := domain.Quiz{ID: "shared", Title: "Shared", Questions: []domain.Question{
		{ID: "q1", Text: "?", Choices: []string{"a", "b"}, CorrectIndex: 0},
	}}
	token := sharelink.EncodePayload(shared)

	quiz, mode, err := player.Resolve(ctx, token, "stored")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if mode != app.ModeShared || quiz.ID != "shared" {
		t.Fatalf("expected shared quiz to win, got mode=%s quiz=%+v", mode, quiz)
	}
}

func TestResolveInvalidTokenDoesNotFallThrough(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuizStore()
	stored := domain.Quiz{ID: "stored", Title: "Stored"}
	_ = store.Save(ctx, &stored)

	player := app.NewPlayer(store, memory.NewResultStore(time.Minute))

	_, mode, err := player.Resolve(ctx, "not!a!token", "stored")
	if !errors.Is(err, domain.ErrInvalidShareLink) {
		t.Fatalf("expected invalid share link error, got %v", err)
	}
	if mode != app.ModeShared {
		t.Fatalf("expected failure on the shared path, got mode=%s", mode)
	}
}

func TestResolveByID(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuizStore()
	stored := domain.Quiz{ID: "stored", Title: "Stored"}
	_ = store.Save(ctx, &stored)

	player := app.NewPlayer(store, memory.NewResultStore(time.Minute))

	quiz, mode, err := player.Resolve(ctx, "", "stored")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if mode != app.ModeLocal || quiz.ID != "stored" {
		t.Fatalf("expected local quiz, got mode=%s quiz=%+v", mode, quiz)
	}

	if _, _, err := player.Resolve(ctx, "", "missing"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestResolveWithoutParamsOffersPicker(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuizStore()
	a := domain.Quiz{ID: "a"}
	_ = store.Save(ctx, &a)

	player := app.NewPlayer(store, memory.NewResultStore(time.Minute))

	_, mode, err := player.Resolve(ctx, "", "")
	if err != nil || mode != app.ModePicker {
		t.Fatalf("expected picker mode, got mode=%s err=%v", mode, err)
	}
	choices, err := player.Choices(ctx)
	if err != nil || len(choices) != 1 {
		t.Fatalf("expected one pickable quiz, got %+v err=%v", choices, err)
	}
}

func TestScore(t *testing.T) {
	quiz := domain.Quiz{
		ID:    "quiz-1",
		Title: "Boards",
		Questions: []domain.Question{
			{ID: "q1", Text: "1", Choices: []string{"a", "b", "c"}, CorrectIndex: 0},
			{ID: "q2", Text: "2", Choices: []string{"a", "b", "c"}, CorrectIndex: 1},
			{ID: "q3", Text: "3", Choices: []string{"a", "b", "c"}, CorrectIndex: 2},
		},
	}

	result := app.Score(quiz, map[string]int{"q1": 0, "q2": 2})
	if result.Correct != 1 || result.Total != 3 {
		t.Fatalf("expected 1/3, got %d/%d", result.Correct, result.Total)
	}
	if result.QuizTitle != "Boards" {
		t.Fatalf("unexpected title %q", result.QuizTitle)
	}
	if picked := result.Answers["q2"]; picked == nil || *picked != 2 {
		t.Fatalf("expected q2 answer recorded, got %+v", result.Answers)
	}
	if result.Answers["q3"] != nil {
		t.Fatalf("expected q3 unanswered (nil), got %+v", result.Answers["q3"])
	}
	if len(result.Questions) != 3 {
		t.Fatalf("expected question snapshot, got %+v", result.Questions)
	}
}

func TestScoreUntitledQuiz(t *testing.T) {
	result := app.Score(domain.Quiz{Questions: []domain.Question{}}, nil)
	if result.QuizTitle != "Untitled Quiz" {
		t.Fatalf("expected default title, got %q", result.QuizTitle)
	}
}

func TestPercentRounds(t *testing.T) {
	cases := []struct {
		correct, total, want int
	}{
		{2, 3, 67},
		{1, 3, 33},
		{0, 3, 0},
		{3, 3, 100},
		{1, 8, 13},
		{0, 0, 0}, // guard, not expected to be reachable via Submit
	}
	for _, tc := range cases {
		r := domain.ScoreResult{Correct: tc.correct, Total: tc.total}
		if got := r.Percent(); got != tc.want {
			t.Fatalf("%d/%d: expected %d, got %d", tc.correct, tc.total, tc.want, got)
		}
	}
}

func TestReviewMarks(t *testing.T) {
	picked := 0
	result := domain.ScoreResult{
		Answers: map[string]*int{"q1": &picked, "q2": nil},
	}
	q1 := domain.Question{ID: "q1", Choices: []string{"a", "b", "c"}, CorrectIndex: 2}
	marks := result.ReviewMarks(q1)
	if marks[2] != domain.MarkCorrect || marks[0] != domain.MarkPickedWrong || marks[1] != domain.MarkNone {
		t.Fatalf("unexpected marks %v", marks)
	}

	// Unanswered question still marks the correct choice.
	q2 := domain.Question{ID: "q2", Choices: []string{"a", "b"}, CorrectIndex: 1}
	marks = result.ReviewMarks(q2)
	if marks[1] != domain.MarkCorrect || marks[0] != domain.MarkNone {
		t.Fatalf("unexpected marks for unanswered question %v", marks)
	}
}

func TestSubmitRequiresCompleteAnswers(t *testing.T) {
	ctx := context.Background()
	player := app.NewPlayer(memory.NewQuizStore(), memory.NewResultStore(time.Minute))

	quiz := domain.Quiz{ID: "quiz-1", Title: "T", Questions: []domain.Question{
		{ID: "q1", Text: "1", Choices: []string{"a", "b"}, CorrectIndex: 0},
		{ID: "q2", Text: "2", Choices: []string{"a", "b"}, CorrectIndex: 1},
	}}

	if _, _, err := player.Submit(ctx, quiz, map[string]int{"q1": 0}); err != domain.ErrIncompleteAnswers {
		t.Fatalf("expected ErrIncompleteAnswers, got %v", err)
	}

	// A quiz with zero questions cannot be submitted at all.
	if _, _, err := player.Submit(ctx, domain.Quiz{ID: "empty"}, nil); err != domain.ErrIncompleteAnswers {
		t.Fatalf("expected empty quiz to be unsubmittable, got %v", err)
	}
}

func TestSubmitStoresResultForReview(t *testing.T) {
	ctx := context.Background()
	results := memory.NewResultStore(time.Minute)
	player := app.NewPlayer(memory.NewQuizStore(), results)

	quiz := domain.Quiz{ID: "quiz-1", Title: "T", Questions: []domain.Question{
		{ID: "q1", Text: "1", Choices: []string{"a", "b"}, CorrectIndex: 0},
	}}

	id, result, err := player.Submit(ctx, quiz, map[string]int{"q1": 0})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id == "" || result.Correct != 1 {
		t.Fatalf("unexpected submit outcome id=%q result=%+v", id, result)
	}

	viewer := app.NewResults(results)
	loaded, err := viewer.Load(ctx, id)
	if err != nil {
		t.Fatalf("load result: %v", err)
	}
	if loaded.Correct != 1 || loaded.Total != 1 {
		t.Fatalf("unexpected stored result %+v", loaded)
	}

	if _, err := viewer.Load(ctx, "never-submitted"); err != domain.ErrNoResult {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}
