package handlers

import (
	"net/http"

	"kidquest/internal/service"
)

// PuzzleHandler handles puzzle routes
type PuzzleHandler struct {
	puzzleService *service.PuzzleService
}

// NewPuzzleHandler creates a new puzzle handler
func NewPuzzleHandler(puzzleService *service.PuzzleService) *PuzzleHandler {
	return &PuzzleHandler{puzzleService: puzzleService}
}

// AddPuzzle handles POST /parents/{parentId}/kids/{kidId}/puzzles
func (h *PuzzleHandler) AddPuzzle(w http.ResponseWriter, r *http.Request) {
	var in service.PuzzleInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	puzzle, err := h.puzzleService.AddPuzzle(r.PathValue("parentId"), r.PathValue("kidId"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, puzzle)
}

// ListPuzzles handles GET .../puzzles
func (h *PuzzleHandler) ListPuzzles(w http.ResponseWriter, r *http.Request) {
	puzzles, err := h.puzzleService.ListPuzzles(r.PathValue("parentId"), r.PathValue("kidId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, puzzles)
}

// GetPuzzle handles GET .../puzzles/{puzzleId}
func (h *PuzzleHandler) GetPuzzle(w http.ResponseWriter, r *http.Request) {
	puzzle, err := h.puzzleService.GetPuzzle(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("puzzleId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, puzzle)
}

// DeletePuzzle handles DELETE .../puzzles/{puzzleId}
func (h *PuzzleHandler) DeletePuzzle(w http.ResponseWriter, r *http.Request) {
	if err := h.puzzleService.DeletePuzzle(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("puzzleId")); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// SubmitPuzzle handles POST .../puzzles/{puzzleId}/submit
func (h *PuzzleHandler) SubmitPuzzle(w http.ResponseWriter, r *http.Request) {
	var sub service.PuzzleSubmission
	if err := decodeJSON(r, &sub); err != nil {
		respondError(w, r, err)
		return
	}

	child, err := h.puzzleService.SubmitPuzzle(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("puzzleId"), sub)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}
