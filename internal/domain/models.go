package domain

// Question is a prompt with an ordered set of choices and exactly one
// designated correct choice. CorrectIndex always satisfies
// 0 <= CorrectIndex < len(Choices).
type Question struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correctIndex"`
}

// Quiz is a titled, ordered collection of questions. Timestamps are
// epoch milliseconds; CreatedAt is set once, UpdatedAt on every
// persisted mutation. An empty question list is valid for editing but
// the quiz cannot be taken.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt int64      `json:"createdAt,omitempty"`
	UpdatedAt int64      `json:"updatedAt,omitempty"`
	Questions []Question `json:"questions"`
}

// DefaultTitle is used whenever a quiz title is blank.
const DefaultTitle = "Untitled Quiz"

// SortKey orders quizzes most-recently-updated first, falling back to
// the creation time for documents that were never re-saved.
func (q Quiz) SortKey() int64 {
	if q.UpdatedAt != 0 {
		return q.UpdatedAt
	}
	return q.CreatedAt
}

// Clone returns a deep copy so callers can hand out snapshots without
// sharing the questions slice.
func (q Quiz) Clone() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		out.Questions[i] = question
		out.Questions[i].Choices = append([]string(nil), question.Choices...)
	}
	return out
}

// QuestionInput carries the editable fields of a question through
// validation before they are applied to a quiz.
type QuestionInput struct {
	Text         string   `json:"text"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correctIndex"`
}

// SharePayload is the quiz shape embedded in share links: timestamps
// are deliberately omitted so the token only carries content.
type SharePayload struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// ScoreResult is the outcome of evaluating submitted answers against a
// quiz. Answers maps question id to the chosen choice index, or nil for
// an unanswered question. Questions is a snapshot taken at submission
// time so the review survives later edits to the quiz.
type ScoreResult struct {
	QuizTitle string         `json:"quizTitle"`
	Total     int            `json:"total"`
	Correct   int            `json:"correct"`
	Answers   map[string]*int `json:"answers"`
	Questions []Question     `json:"questions"`
}

// Percent is the rounded score percentage. A zero-question result
// cannot normally be submitted; guard anyway rather than divide by zero.
func (r ScoreResult) Percent() int {
	if r.Total == 0 {
		return 0
	}
	return int(float64(r.Correct)/float64(r.Total)*100 + 0.5)
}

// ChoiceMark classifies a choice on the review screen.
type ChoiceMark string

const (
	// MarkCorrect flags the correct choice, picked or not.
	MarkCorrect ChoiceMark = "correct"
	// MarkPickedWrong flags the chosen choice when it differs from the correct one.
	MarkPickedWrong ChoiceMark = "pickedWrong"
	// MarkNone is every other choice.
	MarkNone ChoiceMark = ""
)

// ReviewMarks returns one mark per choice of the given question,
// using the recorded answer for that question.
func (r ScoreResult) ReviewMarks(q Question) []ChoiceMark {
	marks := make([]ChoiceMark, len(q.Choices))
	picked := r.Answers[q.ID]
	for i := range marks {
		switch {
		case i == q.CorrectIndex:
			marks[i] = MarkCorrect
		case picked != nil && *picked == i:
			marks[i] = MarkPickedWrong
		default:
			marks[i] = MarkNone
		}
	}
	return marks
}
