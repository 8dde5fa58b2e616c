package handlers

import (
	"net/http"

	"kidquest/internal/service"
)

// ReportHandler handles progress review routes
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GenerateReview handles POST /parents/{parentId}/kids/{kidId}/review
func (h *ReportHandler) GenerateReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.reportService.GenerateReview(r.Context(), r.PathValue("parentId"), r.PathValue("kidId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}
