package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/LKAC-Leander/boardReview/internal/domain"
	"github.com/LKAC-Leander/boardReview/internal/sharelink"
)

// Builder maintains one active quiz per editing session and keeps the
// store synchronized: every mutation rewrites the whole quiz document
// immediately, with no batching or debouncing.
type Builder struct {
	store    QuizStore
	catalog  *Catalog
	takeBase string
	newID    func() string
	active   *domain.Quiz
}

// NewBuilder returns a builder writing through store. catalog may be
// nil when no live quiz-list subscribers exist. takeBase is the take
// page URL that share links are built on.
func NewBuilder(store QuizStore, catalog *Catalog, takeBase string) *Builder {
	return &Builder{
		store:    store,
		catalog:  catalog,
		takeBase: takeBase,
		newID:    uuid.NewString,
	}
}

// NewBuilderWithIDs is test-only for deterministic question and quiz ids.
func NewBuilderWithIDs(store QuizStore, catalog *Catalog, takeBase string, newID func() string) *Builder {
	b := NewBuilder(store, catalog, takeBase)
	b.newID = newID
	return b
}

// Active returns a snapshot of the active quiz, if any.
func (b *Builder) Active() (domain.Quiz, bool) {
	if b.active == nil {
		return domain.Quiz{}, false
	}
	return b.active.Clone(), true
}

// CreateQuiz persists a fresh quiz with the default title and no
// questions, and makes it the active quiz.
func (b *Builder) CreateQuiz(ctx context.Context) (domain.Quiz, error) {
	quiz := domain.Quiz{
		ID:        b.newID(),
		Title:     domain.DefaultTitle,
		Questions: []domain.Question{},
	}
	if err := b.persist(ctx, &quiz); err != nil {
		return domain.Quiz{}, err
	}
	b.active = &quiz
	return quiz.Clone(), nil
}

// SelectQuiz loads a quiz from the store and makes it active. When the
// id is unknown the previously active quiz is kept and
// domain.ErrQuizNotFound is returned.
func (b *Builder) SelectQuiz(ctx context.Context, id string) (domain.Quiz, error) {
	quiz, err := b.store.Get(ctx, id)
	if err != nil {
		return domain.Quiz{}, err
	}
	b.active = &quiz
	return quiz.Clone(), nil
}

// SetTitle trims and applies a new title to the active quiz, falling
// back to the default when the trimmed text is empty, then persists.
func (b *Builder) SetTitle(ctx context.Context, text string) error {
	if b.active == nil {
		return domain.ErrNoActiveQuiz
	}
	title := strings.TrimSpace(text)
	if title == "" {
		title = domain.DefaultTitle
	}
	b.active.Title = title
	return b.persist(ctx, b.active)
}

// UpsertQuestion validates input and either replaces the question with
// editingID in place (id and position preserved) or, when editingID is
// empty, appends a new question with a fresh id. Validation failures
// abort before any state changes.
func (b *Builder) UpsertQuestion(ctx context.Context, input domain.QuestionInput, editingID string) (domain.Question, error) {
	if b.active == nil {
		return domain.Question{}, domain.ErrNoActiveQuiz
	}
	question, err := validateQuestion(input)
	if err != nil {
		return domain.Question{}, err
	}

	if editingID != "" {
		found := false
		for i := range b.active.Questions {
			if b.active.Questions[i].ID == editingID {
				question.ID = editingID
				b.active.Questions[i] = question
				found = true
				break
			}
		}
		if !found {
			return domain.Question{}, domain.ErrQuestionNotFound
		}
	} else {
		question.ID = b.newID()
		b.active.Questions = append(b.active.Questions, question)
	}

	if err := b.persist(ctx, b.active); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

// DeleteQuestion removes the question with the given id from the
// active quiz and persists the result.
func (b *Builder) DeleteQuestion(ctx context.Context, id string) error {
	if b.active == nil {
		return domain.ErrNoActiveQuiz
	}
	kept := b.active.Questions[:0]
	for _, q := range b.active.Questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	b.active.Questions = kept
	return b.persist(ctx, b.active)
}

// DeleteQuiz removes the quiz from the store and clears the active
// quiz when it was the one deleted.
func (b *Builder) DeleteQuiz(ctx context.Context, id string) error {
	if err := b.store.Delete(ctx, id); err != nil {
		return err
	}
	if b.active != nil && b.active.ID == id {
		b.active = nil
	}
	return b.catalog.Refresh(ctx)
}

// ShareLink returns the stateless share URL for the active quiz.
func (b *Builder) ShareLink() (string, error) {
	if b.active == nil {
		return "", domain.ErrNoActiveQuiz
	}
	return sharelink.URL(b.takeBase, *b.active), nil
}

// LocalLink returns the take URL that loads the active quiz by id.
func (b *Builder) LocalLink() (string, error) {
	if b.active == nil {
		return "", domain.ErrNoActiveQuiz
	}
	return sharelink.LocalURL(b.takeBase, b.active.ID), nil
}

func (b *Builder) persist(ctx context.Context, quiz *domain.Quiz) error {
	if err := b.store.Save(ctx, quiz); err != nil {
		return err
	}
	return b.catalog.Refresh(ctx)
}

func validateQuestion(input domain.QuestionInput) (domain.Question, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return domain.Question{}, domain.ErrQuestionTextRequired
	}

	choices := make([]string, len(input.Choices))
	for i, choice := range input.Choices {
		choices[i] = strings.TrimSpace(choice)
		if choices[i] == "" {
			return domain.Question{}, domain.ErrChoiceTextRequired
		}
	}
	if len(choices) < 2 {
		return domain.Question{}, domain.ErrTooFewChoices
	}
	if input.CorrectIndex < 0 || input.CorrectIndex >= len(choices) {
		return domain.Question{}, domain.ErrNoCorrectAnswer
	}

	return domain.Question{
		Text:         text,
		Choices:      choices,
		CorrectIndex: input.CorrectIndex,
	}, nil
}
