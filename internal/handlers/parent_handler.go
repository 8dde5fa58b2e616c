package handlers

import (
	"net/http"

	"kidquest/internal/service"
)

// ParentHandler handles parent and child profile routes
type ParentHandler struct {
	parentService *service.ParentService
}

// NewParentHandler creates a new parent handler
func NewParentHandler(parentService *service.ParentService) *ParentHandler {
	return &ParentHandler{parentService: parentService}
}

type createParentRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}

// CreateParent handles POST /parents
func (h *ParentHandler) CreateParent(w http.ResponseWriter, r *http.Request) {
	var req createParentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	parent, err := h.parentService.CreateParent(req.Name, req.Email, req.Password, req.PhoneNumber)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, parent)
}

// ListParents handles GET /parents
func (h *ParentHandler) ListParents(w http.ResponseWriter, r *http.Request) {
	parents, err := h.parentService.ListParents()
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, parents)
}

// GetParent handles GET /parents/{parentId}
func (h *ParentHandler) GetParent(w http.ResponseWriter, r *http.Request) {
	parent, err := h.parentService.GetParent(r.PathValue("parentId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, parent)
}

// UpdateParent handles PATCH /parents/{parentId}
func (h *ParentHandler) UpdateParent(w http.ResponseWriter, r *http.Request) {
	var update service.ParentUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, r, err)
		return
	}

	parent, err := h.parentService.UpdateParent(r.PathValue("parentId"), update)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, parent)
}

// DeleteParent handles DELETE /parents/{parentId}
func (h *ParentHandler) DeleteParent(w http.ResponseWriter, r *http.Request) {
	if err := h.parentService.DeleteParent(r.PathValue("parentId")); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type addChildRequest struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Level       string `json:"level"`
	AvatarEmoji string `json:"avatarEmoji"`
}

// AddChild handles POST /parents/{parentId}/kids
func (h *ParentHandler) AddChild(w http.ResponseWriter, r *http.Request) {
	var req addChildRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	child, err := h.parentService.AddChild(r.PathValue("parentId"), req.Name, req.Age, req.Level, req.AvatarEmoji)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, child)
}

// UpdateChild handles PATCH /parents/{parentId}/kids/{kidId}
func (h *ParentHandler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	var update service.ChildUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, r, err)
		return
	}

	child, err := h.parentService.UpdateChild(r.PathValue("parentId"), r.PathValue("kidId"), update)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}

// DeleteChild handles DELETE /parents/{parentId}/kids/{kidId}
func (h *ParentHandler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	if err := h.parentService.DeleteChild(r.PathValue("parentId"), r.PathValue("kidId")); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// FindChild handles GET /parents/child/{childId}, the QR scan lookup.
// The child ID is an unguessable UUID, which is the whole credential here.
func (h *ParentHandler) FindChild(w http.ResponseWriter, r *http.Request) {
	child, err := h.parentService.FindChild(r.PathValue("childId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}
