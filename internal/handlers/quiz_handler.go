package handlers

import (
	"net/http"

	"kidquest/internal/service"
)

// QuizHandler handles quiz and question routes
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GenerateQuiz handles POST /parents/{parentId}/kids/{kidId}/quizzes.
// An empty body (or one without a topic) requests a retry quiz built from
// the child's missed questions.
func (h *QuizHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateQuizRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
	}

	quiz, err := h.quizService.GenerateQuiz(r.Context(), r.PathValue("parentId"), r.PathValue("kidId"), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, quiz)
}

// ListQuizzes handles GET .../quizzes
func (h *QuizHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizService.ListQuizzes(r.PathValue("parentId"), r.PathValue("kidId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, quizzes)
}

// GetQuiz handles GET .../quizzes/{quizId}
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizService.GetQuiz(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("quizId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, quiz)
}

// UpdateQuiz handles PATCH .../quizzes/{quizId}
func (h *QuizHandler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	var update service.QuizUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, r, err)
		return
	}

	quiz, err := h.quizService.UpdateQuiz(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("quizId"), update)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, quiz)
}

// DeleteQuiz handles DELETE .../quizzes/{quizId}
func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.quizService.DeleteQuiz(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("quizId")); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type submitQuizRequest struct {
	Answers []int `json:"answers"`
}

// SubmitQuiz handles POST .../quizzes/{quizId}/submit and returns the
// whole updated child so clients see scores and quest progress at once.
func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req submitQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	child, err := h.quizService.SubmitQuiz(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("quizId"), req.Answers)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}

// AddQuestion handles POST .../quizzes/{quizId}/questions
func (h *QuizHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var in service.QuestionInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	question, err := h.quizService.AddQuestion(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("quizId"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, question)
}

// UpdateQuestion handles PATCH .../questions/{questionId}
func (h *QuizHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var in service.QuestionInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	question, err := h.quizService.UpdateQuestion(
		r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("quizId"), r.PathValue("questionId"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, question)
}

// DeleteQuestion handles DELETE .../questions/{questionId}
func (h *QuizHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	err := h.quizService.DeleteQuestion(
		r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("quizId"), r.PathValue("questionId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
