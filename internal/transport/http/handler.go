// Package http exposes the quiz builder, player, and results viewer
// over a small JSON API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LKAC-Leander/boardReview/internal/app"
	"github.com/LKAC-Leander/boardReview/internal/domain"
)

// Handler is the REST surface over the builder/player/results use cases.
type Handler struct {
	store    app.QuizStore
	results  app.ResultStore
	prefs    app.PreferenceStore
	catalog  *app.Catalog
	player   *app.Player
	viewer   *app.Results
	takeBase string
}

func NewHandler(store app.QuizStore, results app.ResultStore, prefs app.PreferenceStore, catalog *app.Catalog, takeBase string) *Handler {
	return &Handler{
		store:    store,
		results:  results,
		prefs:    prefs,
		catalog:  catalog,
		player:   app.NewPlayer(store, results),
		viewer:   app.NewResults(results),
		takeBase: takeBase,
	}
}

// Register wires every route onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/quizzes", h.listQuizzes)
	mux.HandleFunc("POST /api/quizzes", h.createQuiz)
	mux.HandleFunc("GET /api/quizzes/{id}", h.getQuiz)
	mux.HandleFunc("DELETE /api/quizzes/{id}", h.deleteQuiz)
	mux.HandleFunc("PUT /api/quizzes/{id}/title", h.setTitle)
	mux.HandleFunc("POST /api/quizzes/{id}/questions", h.upsertQuestion)
	mux.HandleFunc("DELETE /api/quizzes/{id}/questions/{qid}", h.deleteQuestion)
	mux.HandleFunc("GET /api/quizzes/{id}/share", h.shareLinks)
	mux.HandleFunc("GET /api/take", h.take)
	mux.HandleFunc("POST /api/take/submit", h.submit)
	mux.HandleFunc("GET /api/results/{id}", h.result)
	mux.HandleFunc("GET /api/prefs/theme", h.getTheme)
	mux.HandleFunc("PUT /api/prefs/theme", h.setTheme)
}

type quizSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
	CreatedAt     int64  `json:"createdAt"`
	UpdatedAt     int64  `json:"updatedAt"`
}

func newQuizSummary(quiz domain.Quiz) quizSummary {
	return quizSummary{
		ID:            quiz.ID,
		Title:         quiz.Title,
		QuestionCount: len(quiz.Questions),
		CreatedAt:     quiz.CreatedAt,
		UpdatedAt:     quiz.UpdatedAt,
	}
}

func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.store.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries(quizzes))
}

func (h *Handler) createQuiz(w http.ResponseWriter, r *http.Request) {
	builder := app.NewBuilder(h.store, h.catalog, h.takeBase)
	quiz, err := builder.CreateQuiz(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	builder := app.NewBuilder(h.store, h.catalog, h.takeBase)
	if err := builder.DeleteQuiz(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type titleRequest struct {
	Title string `json:"title"`
}

func (h *Handler) setTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	builder, err := h.builderFor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := builder.SetTitle(r.Context(), req.Title); err != nil {
		writeError(w, err)
		return
	}
	quiz, _ := builder.Active()
	writeJSON(w, http.StatusOK, quiz)
}

type questionRequest struct {
	Text         string   `json:"text"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correctIndex"`
	EditingID    string   `json:"editingId,omitempty"`
}

func (h *Handler) upsertQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	builder, err := h.builderFor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	question, err := builder.UpsertQuestion(r.Context(), domain.QuestionInput{
		Text:         req.Text,
		Choices:      req.Choices,
		CorrectIndex: req.CorrectIndex,
	}, req.EditingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	builder, err := h.builderFor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := builder.DeleteQuestion(r.Context(), r.PathValue("qid")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type shareResponse struct {
	ShareURL string `json:"shareUrl"`
	LocalURL string `json:"localUrl"`
}

func (h *Handler) shareLinks(w http.ResponseWriter, r *http.Request) {
	builder, err := h.builderFor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	share, err := builder.ShareLink()
	if err != nil {
		writeError(w, err)
		return
	}
	local, err := builder.LocalLink()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{ShareURL: share, LocalURL: local})
}

type takeResponse struct {
	Mode    app.Mode      `json:"mode"`
	Quiz    *domain.Quiz  `json:"quiz,omitempty"`
	Choices []quizSummary `json:"choices,omitempty"`
}

func (h *Handler) take(w http.ResponseWriter, r *http.Request) {
	quiz, mode, err := h.player.Resolve(r.Context(), r.URL.Query().Get("data"), r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if mode == app.ModePicker {
		choices, err := h.player.Choices(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, takeResponse{Mode: mode, Choices: summaries(choices)})
		return
	}
	writeJSON(w, http.StatusOK, takeResponse{Mode: mode, Quiz: &quiz})
}

type submitRequest struct {
	Data       string         `json:"data,omitempty"`
	ID         string         `json:"id,omitempty"`
	Selections map[string]int `json:"selections"`
}

type submitResponse struct {
	ResultID string             `json:"resultId"`
	Result   domain.ScoreResult `json:"result"`
	Percent  int                `json:"percent"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	quiz, mode, err := h.player.Resolve(r.Context(), req.Data, req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if mode == app.ModePicker {
		http.Error(w, "no quiz selected", http.StatusBadRequest)
		return
	}

	id, result, err := h.player.Submit(r.Context(), quiz, req.Selections)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{ResultID: id, Result: result, Percent: result.Percent()})
}

type reviewQuestion struct {
	domain.Question
	Picked *int                `json:"picked"`
	Marks  []domain.ChoiceMark `json:"marks"`
}

type resultResponse struct {
	domain.ScoreResult
	Percent int              `json:"percent"`
	Review  []reviewQuestion `json:"review"`
}

func (h *Handler) result(w http.ResponseWriter, r *http.Request) {
	result, err := h.viewer.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	review := make([]reviewQuestion, len(result.Questions))
	for i, q := range result.Questions {
		review[i] = reviewQuestion{
			Question: q,
			Picked:   result.Answers[q.ID],
			Marks:    result.ReviewMarks(q),
		}
	}
	writeJSON(w, http.StatusOK, resultResponse{ScoreResult: result, Percent: result.Percent(), Review: review})
}

type themeResponse struct {
	Theme string `json:"theme"`
}

func (h *Handler) getTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.prefs.Theme(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	// anything other than "light" renders dark
	if theme != "light" {
		theme = "dark"
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: theme})
}

func (h *Handler) setTheme(w http.ResponseWriter, r *http.Request) {
	var req themeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.prefs.SetTheme(r.Context(), req.Theme); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) builderFor(r *http.Request) (*app.Builder, error) {
	builder := app.NewBuilder(h.store, h.catalog, h.takeBase)
	if _, err := builder.SelectQuiz(r.Context(), r.PathValue("id")); err != nil {
		return nil, err
	}
	return builder, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidShareLink):
		http.Error(w, domain.ErrInvalidShareLink.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrIncompleteAnswers):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrNoResult):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
