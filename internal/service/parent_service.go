package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"kidquest/internal/apperr"
	"kidquest/internal/models"
	"kidquest/internal/progression"
	"kidquest/internal/quest"
	"kidquest/internal/security"
	"kidquest/internal/validation"
)

// ParentService handles parent and child profile management
type ParentService struct {
	store ParentStore
}

// NewParentService creates a new parent service
func NewParentService(store ParentStore) *ParentService {
	return &ParentService{store: store}
}

// CreateParent creates a parent account without logging it in. The auth
// register endpoint is the usual path; this backs the admin-style
// POST /parents route.
func (s *ParentService) CreateParent(name, email, password, phoneNumber string) (*models.Parent, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, apperr.InvalidArgument(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperr.InvalidArgument(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, apperr.InvalidArgument(err.Error())
	}

	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.store.GetParentByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, apperr.InvalidState("email already registered")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	parent := &models.Parent{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  phoneNumber,
		Children:     []models.Child{},
		IsActive:     true,
	}
	if err := s.store.CreateParent(parent); err != nil {
		return nil, fmt.Errorf("failed to create parent: %w", err)
	}
	return parent, nil
}

// GetParent retrieves a parent aggregate
func (s *ParentService) GetParent(parentID string) (*models.Parent, error) {
	parent, err := s.store.GetParentByID(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}
	if parent == nil {
		return nil, apperr.NotFound("parent", parentID)
	}
	return parent, nil
}

// ListParents retrieves all parents
func (s *ParentService) ListParents() ([]models.Parent, error) {
	return s.store.GetAllParents()
}

// ParentUpdate carries optional parent profile changes
type ParentUpdate struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	IsActive    *bool   `json:"isActive"`
}

// UpdateParent applies a partial update to a parent profile
func (s *ParentService) UpdateParent(parentID string, update ParentUpdate) (*models.Parent, error) {
	parent, err := s.GetParent(parentID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if err := validation.ValidateName(*update.Name); err != nil {
			return nil, apperr.InvalidArgument(err.Error())
		}
		parent.Name = strings.TrimSpace(*update.Name)
	}
	if update.PhoneNumber != nil {
		parent.PhoneNumber = *update.PhoneNumber
	}
	if update.IsActive != nil {
		parent.IsActive = *update.IsActive
	}

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return parent, nil
}

// DeleteParent removes a parent aggregate entirely
func (s *ParentService) DeleteParent(parentID string) error {
	if _, err := s.GetParent(parentID); err != nil {
		return err
	}
	return s.store.DeleteParent(parentID)
}

// AddChild creates a child profile under a parent. The child starts with
// zero scores, level 1, and the initial quest set.
func (s *ParentService) AddChild(parentID, name string, age int, level, avatarEmoji string) (*models.Child, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, apperr.InvalidArgument(err.Error())
	}
	if err := validation.ValidateChildAge(age); err != nil {
		return nil, apperr.InvalidArgument(err.Error())
	}

	parent, err := s.GetParent(parentID)
	if err != nil {
		return nil, err
	}

	child := models.Child{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(name),
		Age:              age,
		Level:            level,
		AvatarEmoji:      avatarEmoji,
		ProgressionLevel: progression.Level(0),
		Quests:           quest.InitialQuestSet(),
		Quizzes:          []models.Quiz{},
		Puzzles:          []models.Puzzle{},
		ShopCatalog:      []models.Gift{},
		Inventory:        []models.Gift{},
		CreatedAt:        time.Now().UTC(),
	}
	parent.Children = append(parent.Children, child)

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return &parent.Children[len(parent.Children)-1], nil
}

// ChildUpdate carries optional child profile changes
type ChildUpdate struct {
	Name        *string `json:"name"`
	Age         *int    `json:"age"`
	Level       *string `json:"level"`
	AvatarEmoji *string `json:"avatarEmoji"`
}

// UpdateChild applies a partial update to a child profile
func (s *ParentService) UpdateChild(parentID, childID string, update ChildUpdate) (*models.Child, error) {
	parent, err := s.GetParent(parentID)
	if err != nil {
		return nil, err
	}

	child := parent.FindChild(childID)
	if child == nil {
		return nil, apperr.NotFound("child", childID)
	}

	if update.Name != nil {
		if err := validation.ValidateName(*update.Name); err != nil {
			return nil, apperr.InvalidArgument(err.Error())
		}
		child.Name = strings.TrimSpace(*update.Name)
	}
	if update.Age != nil {
		if err := validation.ValidateChildAge(*update.Age); err != nil {
			return nil, apperr.InvalidArgument(err.Error())
		}
		child.Age = *update.Age
	}
	if update.Level != nil {
		child.Level = *update.Level
	}
	if update.AvatarEmoji != nil {
		child.AvatarEmoji = *update.AvatarEmoji
	}

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return child, nil
}

// DeleteChild removes a child profile from a parent
func (s *ParentService) DeleteChild(parentID, childID string) error {
	parent, err := s.GetParent(parentID)
	if err != nil {
		return err
	}

	idx := -1
	for i := range parent.Children {
		if parent.Children[i].ID == childID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperr.NotFound("child", childID)
	}

	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)

	if err := s.store.SaveParent(parent); err != nil {
		return fmt.Errorf("failed to save parent: %w", err)
	}
	return nil
}

// FindChild resolves a child by ID alone, used by the QR scan flow where
// the caller knows only the child's ID.
func (s *ParentService) FindChild(childID string) (*models.Child, error) {
	parentID, err := s.store.FindParentIDByChildID(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up child: %w", err)
	}
	if parentID == "" {
		return nil, apperr.NotFound("child", childID)
	}

	parent, err := s.GetParent(parentID)
	if err != nil {
		return nil, err
	}
	child := parent.FindChild(childID)
	if child == nil {
		return nil, apperr.NotFound("child", childID)
	}
	return child, nil
}
