package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/LKAC-Leander/boardReview/internal/domain"
	"github.com/LKAC-Leander/boardReview/internal/sharelink"
)

// Mode describes where the quiz being taken came from.
type Mode string

const (
	// ModeShared means the quiz was decoded from a share token.
	ModeShared Mode = "shared"
	// ModeLocal means the quiz was loaded from the store by id.
	ModeLocal Mode = "local"
	// ModePicker means neither parameter was present; the caller
	// should offer a picker over all stored quizzes.
	ModePicker Mode = "picker"
)

// Player resolves a quiz to present and scores submissions.
type Player struct {
	store   QuizStore
	results ResultStore
	newID   func() string
}

func NewPlayer(store QuizStore, results ResultStore) *Player {
	return &Player{store: store, results: results, newID: uuid.NewString}
}

// NewPlayerWithIDs is test-only for deterministic result ids.
func NewPlayerWithIDs(store QuizStore, results ResultStore, newID func() string) *Player {
	p := NewPlayer(store, results)
	p.newID = newID
	return p
}

// Resolve picks the quiz to play. A share token takes priority over an
// id; a token that fails to decode is reported as an invalid shared
// link and never falls through to the id lookup. With neither
// parameter, ModePicker is returned and Choices lists the candidates.
func (p *Player) Resolve(ctx context.Context, dataParam, idParam string) (domain.Quiz, Mode, error) {
	if dataParam != "" {
		quiz, err := sharelink.DecodePayload(dataParam)
		if err != nil {
			return domain.Quiz{}, ModeShared, err
		}
		return quiz, ModeShared, nil
	}
	if idParam != "" {
		quiz, err := p.store.Get(ctx, idParam)
		if err != nil {
			return domain.Quiz{}, ModeLocal, err
		}
		return quiz, ModeLocal, nil
	}
	return domain.Quiz{}, ModePicker, nil
}

// Choices lists all stored quizzes for the picker.
func (p *Player) Choices(ctx context.Context) ([]domain.Quiz, error) {
	return p.store.ListAll(ctx)
}

// Submit checks that every question has a selection, scores the
// submission, and stashes the result under a fresh result id for the
// results viewer to pick up.
func (p *Player) Submit(ctx context.Context, quiz domain.Quiz, selections map[string]int) (string, domain.ScoreResult, error) {
	if len(quiz.Questions) == 0 {
		return "", domain.ScoreResult{}, domain.ErrIncompleteAnswers
	}
	for _, q := range quiz.Questions {
		if _, ok := selections[q.ID]; !ok {
			return "", domain.ScoreResult{}, domain.ErrIncompleteAnswers
		}
	}

	result := Score(quiz, selections)
	id := p.newID()
	if err := p.results.Put(ctx, id, result); err != nil {
		return "", domain.ScoreResult{}, err
	}
	return id, result, nil
}

// Score evaluates selections against a quiz. A selection matching the
// question's correct index counts as correct; an absent or mismatched
// selection counts as incorrect. Callers wanting the completeness
// precondition enforced go through Submit; Score itself accepts
// partial answer sets.
func Score(quiz domain.Quiz, selections map[string]int) domain.ScoreResult {
	title := quiz.Title
	if title == "" {
		title = domain.DefaultTitle
	}

	snapshot := quiz.Clone()
	answers := make(map[string]*int, len(quiz.Questions))
	correct := 0
	for _, q := range quiz.Questions {
		if picked, ok := selections[q.ID]; ok {
			answers[q.ID] = &picked
			if picked == q.CorrectIndex {
				correct++
			}
		} else {
			answers[q.ID] = nil
		}
	}

	return domain.ScoreResult{
		QuizTitle: title,
		Total:     len(quiz.Questions),
		Correct:   correct,
		Answers:   answers,
		Questions: snapshot.Questions,
	}
}

// Results reads previously computed score results back for review.
type Results struct {
	store ResultStore
}

func NewResults(store ResultStore) *Results {
	return &Results{store: store}
}

// Load returns the stored result, or domain.ErrNoResult when the slot
// is empty or has expired with the session.
func (r *Results) Load(ctx context.Context, id string) (domain.ScoreResult, error) {
	return r.store.Get(ctx, id)
}
