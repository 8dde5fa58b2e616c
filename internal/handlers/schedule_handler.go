package handlers

import (
	"net/http"

	"kidquest/internal/service"
)

// ScheduleHandler handles planned-activity routes
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// AddSchedule handles POST /parents/{parentId}/kids/{kidId}/schedules
func (h *ScheduleHandler) AddSchedule(w http.ResponseWriter, r *http.Request) {
	var in service.ScheduleInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	sched, err := h.scheduleService.AddSchedule(r.PathValue("parentId"), r.PathValue("kidId"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, sched)
}

// ListSchedules handles GET .../schedules
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleService.ListSchedules(r.PathValue("parentId"), r.PathValue("kidId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, schedules)
}

// ListParentSchedules handles GET /parents/{parentId}/schedules
func (h *ScheduleHandler) ListParentSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleService.ListParentSchedules(r.PathValue("parentId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, schedules)
}

// ListAvailable handles GET .../schedules/available
func (h *ScheduleHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleService.ListAvailable(r.PathValue("parentId"), r.PathValue("kidId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, schedules)
}

// ListUpcoming handles GET .../schedules/upcoming
func (h *ScheduleHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleService.ListUpcoming(r.PathValue("parentId"), r.PathValue("kidId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, schedules)
}

// ListCompleted handles GET .../schedules/completed
func (h *ScheduleHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleService.ListCompleted(r.PathValue("parentId"), r.PathValue("kidId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, schedules)
}

// GetStats handles GET .../schedules/stats
func (h *ScheduleHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.scheduleService.GetStats(r.PathValue("parentId"), r.PathValue("kidId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetSchedule handles GET .../schedules/{scheduleId}
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	sched, err := h.scheduleService.GetSchedule(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("scheduleId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sched)
}

// UpdateSchedule handles PATCH .../schedules/{scheduleId}
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var update service.ScheduleUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, r, err)
		return
	}

	sched, err := h.scheduleService.UpdateSchedule(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("scheduleId"), update)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sched)
}

type completeScheduleRequest struct {
	Score     *int `json:"score"`
	TimeSpent *int `json:"timeSpent"`
}

// CompleteSchedule handles POST .../schedules/{scheduleId}/complete
func (h *ScheduleHandler) CompleteSchedule(w http.ResponseWriter, r *http.Request) {
	var req completeScheduleRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
	}

	sched, err := h.scheduleService.CompleteSchedule(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("scheduleId"), req.Score, req.TimeSpent)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sched)
}

// DeleteSchedule handles DELETE .../schedules/{scheduleId}
func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.DeleteSchedule(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("scheduleId")); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type syncSchedulesRequest struct {
	Schedules []service.ScheduleInput `json:"schedules"`
}

// SyncSchedules handles POST .../schedules/sync
func (h *ScheduleHandler) SyncSchedules(w http.ResponseWriter, r *http.Request) {
	var req syncSchedulesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	schedules, err := h.scheduleService.SyncSchedules(r.PathValue("parentId"), r.PathValue("kidId"), req.Schedules)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, schedules)
}
