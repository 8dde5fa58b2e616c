package service

import (
	"fmt"

	"kidquest/internal/apperr"
	"kidquest/internal/models"
)

// ParentStore is the persistence contract the services depend on. The SQL
// repository implements it; tests substitute an in-memory fake.
type ParentStore interface {
	CreateParent(parent *models.Parent) error
	GetParentByID(parentID string) (*models.Parent, error)
	GetParentByEmail(email string) (*models.Parent, error)
	GetAllParents() ([]models.Parent, error)
	SaveParent(parent *models.Parent) error
	DeleteParent(parentID string) error
	FindParentIDByChildID(childID string) (string, error)
}

// loadChild loads a parent aggregate and resolves one of its children.
// The returned child pointer aliases into the parent, so mutations through
// it are captured when the parent is saved.
func loadChild(store ParentStore, parentID, childID string) (*models.Parent, *models.Child, error) {
	parent, err := store.GetParentByID(parentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get parent: %w", err)
	}
	if parent == nil {
		return nil, nil, apperr.NotFound("parent", parentID)
	}
	child := parent.FindChild(childID)
	if child == nil {
		return nil, nil, apperr.NotFound("child", childID)
	}
	return parent, child, nil
}
