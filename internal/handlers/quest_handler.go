package handlers

import (
	"net/http"

	"kidquest/internal/service"
)

// QuestHandler handles quest routes
type QuestHandler struct {
	questService *service.QuestService
}

// NewQuestHandler creates a new quest handler
func NewQuestHandler(questService *service.QuestService) *QuestHandler {
	return &QuestHandler{questService: questService}
}

// GetQuests handles GET /parents/{parentId}/kids/{kidId}/quests
func (h *QuestHandler) GetQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := h.questService.GetQuests(r.PathValue("parentId"), r.PathValue("kidId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, quests)
}

// ClaimQuest handles POST .../quests/{questId}/claim and returns the
// whole updated child, successor quest included.
func (h *QuestHandler) ClaimQuest(w http.ResponseWriter, r *http.Request) {
	child, err := h.questService.ClaimQuest(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("questId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}
