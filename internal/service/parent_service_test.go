package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidquest/internal/apperr"
	"kidquest/internal/models"
)

func TestCreateParent(t *testing.T) {
	store := newFakeStore()
	svc := NewParentService(store)

	parent, err := svc.CreateParent("Beth", "Beth@Example.com", "super-secret", "")
	require.NoError(t, err)
	assert.NotEmpty(t, parent.ID)
	assert.Equal(t, "beth@example.com", parent.Email)
	assert.NotEmpty(t, parent.PasswordHash)
	assert.True(t, parent.IsActive)

	_, err = svc.CreateParent("Beth", "beth@example.com", "super-secret", "")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
}

func TestCreateParent_Validation(t *testing.T) {
	svc := NewParentService(newFakeStore())

	_, err := svc.CreateParent("Beth", "not-an-email", "super-secret", "")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	_, err = svc.CreateParent("Beth", "beth@example.com", "short", "")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestAddChild_SeedsQuests(t *testing.T) {
	parent, _ := newTestParent()
	store := newFakeStore(parent)
	svc := NewParentService(store)

	child, err := svc.AddChild(parent.ID, "Casey", 7, "beginner", "🦊")
	require.NoError(t, err)

	assert.NotEmpty(t, child.ID)
	assert.Equal(t, 0, child.CurrentScore)
	assert.Equal(t, 0, child.LifetimeScore)
	assert.Equal(t, 1, child.ProgressionLevel)
	require.NotEmpty(t, child.Quests)
	for _, q := range child.Quests {
		assert.Equal(t, models.QuestActive, q.Status)
		assert.Equal(t, 1, q.ProgressionLevel)
	}
	assert.Len(t, parent.Children, 2)
}

func TestAddChild_Validation(t *testing.T) {
	parent, _ := newTestParent()
	store := newFakeStore(parent)
	svc := NewParentService(store)

	_, err := svc.AddChild(parent.ID, "", 7, "", "")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	_, err = svc.AddChild(parent.ID, "Casey", 30, "", "")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestUpdateChild_Partial(t *testing.T) {
	parent, child := newTestParent()
	store := newFakeStore(parent)
	svc := NewParentService(store)

	newName := "Robin Jr"
	updated, err := svc.UpdateChild(parent.ID, child.ID, ChildUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Robin Jr", updated.Name)
	assert.Equal(t, 8, updated.Age) // untouched
}

func TestDeleteChild(t *testing.T) {
	parent, child := newTestParent()
	store := newFakeStore(parent)
	svc := NewParentService(store)

	require.NoError(t, svc.DeleteChild(parent.ID, child.ID))
	assert.Empty(t, parent.Children)

	err := svc.DeleteChild(parent.ID, child.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestFindChild_ByIDAlone(t *testing.T) {
	parent, child := newTestParent()
	store := newFakeStore(parent)
	svc := NewParentService(store)

	found, err := svc.FindChild(child.ID)
	require.NoError(t, err)
	assert.Equal(t, child.ID, found.ID)

	_, err = svc.FindChild("missing")
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestUpdateParent_Partial(t *testing.T) {
	parent, _ := newTestParent()
	store := newFakeStore(parent)
	svc := NewParentService(store)

	inactive := false
	updated, err := svc.UpdateParent(parent.ID, ParentUpdate{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Alex", updated.Name)
}

func TestGetParent_NotFound(t *testing.T) {
	store := newFakeStore()
	svc := NewParentService(store)

	_, err := svc.GetParent("missing")
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
