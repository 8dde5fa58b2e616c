package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"kidquest/internal/apperr"
	"kidquest/internal/models"
)

// GiftService handles a child's shop catalog and purchases
type GiftService struct {
	store ParentStore
}

// NewGiftService creates a new gift service
func NewGiftService(store ParentStore) *GiftService {
	return &GiftService{store: store}
}

// AddGift adds a gift to a child's shop catalog
func (s *GiftService) AddGift(parentID, childID, title string, cost int, imageURL string) (*models.Gift, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.InvalidArgument("title is required")
	}
	if cost <= 0 {
		return nil, apperr.InvalidArgument("cost must be positive")
	}

	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}

	child.ShopCatalog = append(child.ShopCatalog, models.Gift{
		ID:       uuid.New().String(),
		Title:    strings.TrimSpace(title),
		Cost:     cost,
		ImageURL: imageURL,
	})

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return &child.ShopCatalog[len(child.ShopCatalog)-1], nil
}

// ListGifts returns a child's shop catalog
func (s *GiftService) ListGifts(parentID, childID string) ([]models.Gift, error) {
	_, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	return child.ShopCatalog, nil
}

// DeleteGift removes a gift from the shop catalog
func (s *GiftService) DeleteGift(parentID, childID, giftID string) error {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return err
	}

	idx := -1
	for i := range child.ShopCatalog {
		if child.ShopCatalog[i].ID == giftID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperr.NotFound("gift", giftID)
	}

	child.ShopCatalog = append(child.ShopCatalog[:idx], child.ShopCatalog[idx+1:]...)
	if err := s.store.SaveParent(parent); err != nil {
		return fmt.Errorf("failed to save parent: %w", err)
	}
	return nil
}

// BuyGift spends a child's points on a catalog gift. Only the spendable
// balance is reduced; lifetime score and level are untouched, so a
// purchase can never demote a child.
func (s *GiftService) BuyGift(parentID, childID, giftID string) (*models.Child, error) {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}

	var gift *models.Gift
	for i := range child.ShopCatalog {
		if child.ShopCatalog[i].ID == giftID {
			gift = &child.ShopCatalog[i]
			break
		}
	}
	if gift == nil {
		return nil, apperr.NotFound("gift", giftID)
	}

	if child.CurrentScore < gift.Cost {
		return nil, apperr.InvalidState(fmt.Sprintf(
			"not enough points: have %d, need %d", child.CurrentScore, gift.Cost))
	}

	child.CurrentScore -= gift.Cost
	child.Inventory = append(child.Inventory, *gift)

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return child, nil
}

