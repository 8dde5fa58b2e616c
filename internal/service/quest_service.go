package service

import (
	"fmt"

	"kidquest/internal/models"
	"kidquest/internal/quest"
)

// QuestService handles quest reads and reward claims
type QuestService struct {
	store ParentStore
}

// NewQuestService creates a new quest service
func NewQuestService(store ParentStore) *QuestService {
	return &QuestService{store: store}
}

// GetQuests returns a child's quests, seeding the initial quest set on
// first read for children created before quests existed.
func (s *QuestService) GetQuests(parentID, childID string) ([]models.Quest, error) {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}

	if len(child.Quests) == 0 {
		child.Quests = quest.InitialQuestSet()
		if err := s.store.SaveParent(parent); err != nil {
			return nil, fmt.Errorf("failed to save parent: %w", err)
		}
	}

	return child.Quests, nil
}

// ClaimQuest claims a completed quest's reward and returns the whole
// updated child, successor quest included.
func (s *QuestService) ClaimQuest(parentID, childID, questID string) (*models.Child, error) {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}

	if err := quest.Claim(child, questID); err != nil {
		return nil, err
	}

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return child, nil
}

