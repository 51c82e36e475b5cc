package domain

import "errors"

var (
	// ErrQuizNotFound indicates the requested quiz id has no document in the store.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates an edit referenced a question id the quiz does not contain.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrNoActiveQuiz is returned when a builder operation runs before a quiz is created or selected.
	ErrNoActiveQuiz = errors.New("no active quiz")
	// ErrInvalidShareLink indicates a share token that is not valid base64url, UTF-8, or quiz JSON.
	ErrInvalidShareLink = errors.New("invalid shared link")
	// ErrNoResult is returned when the results viewer has nothing to show.
	ErrNoResult = errors.New("no results, take a quiz first")
	// ErrIncompleteAnswers is returned when a submission is missing a selection for some question.
	ErrIncompleteAnswers = errors.New("answer every question before submitting")
)

// ValidationError rejects a question edit; the message is shown to the
// user verbatim and the active quiz is left untouched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrQuestionTextRequired = &ValidationError{Message: "question text required"}
	ErrChoiceTextRequired   = &ValidationError{Message: "all choices must have text"}
	ErrNoCorrectAnswer      = &ValidationError{Message: "must select a correct answer"}
	ErrTooFewChoices        = &ValidationError{Message: "keep at least 2 choices"}
)

// IsValidation reports whether err is a user-input validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
