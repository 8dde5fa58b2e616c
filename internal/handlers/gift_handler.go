package handlers

import (
	"net/http"

	"kidquest/internal/service"
)

// GiftHandler handles shop catalog routes
type GiftHandler struct {
	giftService *service.GiftService
}

// NewGiftHandler creates a new gift handler
func NewGiftHandler(giftService *service.GiftService) *GiftHandler {
	return &GiftHandler{giftService: giftService}
}

type addGiftRequest struct {
	Title    string `json:"title"`
	Cost     int    `json:"cost"`
	ImageURL string `json:"imageUrl"`
}

// AddGift handles POST /parents/{parentId}/kids/{kidId}/gifts
func (h *GiftHandler) AddGift(w http.ResponseWriter, r *http.Request) {
	var req addGiftRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	gift, err := h.giftService.AddGift(r.PathValue("parentId"), r.PathValue("kidId"), req.Title, req.Cost, req.ImageURL)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, gift)
}

// ListGifts handles GET .../gifts
func (h *GiftHandler) ListGifts(w http.ResponseWriter, r *http.Request) {
	gifts, err := h.giftService.ListGifts(r.PathValue("parentId"), r.PathValue("kidId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, gifts)
}

// DeleteGift handles DELETE .../gifts/{giftId}
func (h *GiftHandler) DeleteGift(w http.ResponseWriter, r *http.Request) {
	if err := h.giftService.DeleteGift(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("giftId")); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// BuyGift handles POST .../gifts/{giftId}/buy
func (h *GiftHandler) BuyGift(w http.ResponseWriter, r *http.Request) {
	child, err := h.giftService.BuyGift(r.PathValue("parentId"), r.PathValue("kidId"), r.PathValue("giftId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}
