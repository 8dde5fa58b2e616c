package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidquest/internal/database"
	"kidquest/internal/models"
)

func newTestRepo(t *testing.T) *ParentRepository {
	t.Helper()

	db, err := database.InitializeSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations("../../migrations"))
	return NewParentRepository(db)
}

func testParent() *models.Parent {
	return &models.Parent{
		ID:           "parent-1",
		Name:         "Alex",
		Email:        "alex@example.com",
		PasswordHash: "$2a$10$fakehash",
		IsActive:     true,
		Children: []models.Child{
			{ID: "child-1", Name: "Robin", Age: 8},
		},
	}
}

func TestParentRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.CreateParent(testParent()))

	got, err := repo.GetParentByID("parent-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alex", got.Name)
	assert.Equal(t, "alex@example.com", got.Email)
	assert.True(t, got.IsActive)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "Robin", got.Children[0].Name)

	// The hash is hidden from API responses but must survive persistence
	assert.Equal(t, "$2a$10$fakehash", got.PasswordHash)
}

func TestGetParentByEmail(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.CreateParent(testParent()))

	got, err := repo.GetParentByEmail("alex@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "parent-1", got.ID)

	missing, err := repo.GetParentByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetParentByID_Missing(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetParentByID("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveParent(t *testing.T) {
	repo := newTestRepo(t)
	parent := testParent()
	require.NoError(t, repo.CreateParent(parent))

	parent.Name = "Alexandra"
	parent.Children[0].CurrentScore = 150
	require.NoError(t, repo.SaveParent(parent))

	got, err := repo.GetParentByID("parent-1")
	require.NoError(t, err)
	assert.Equal(t, "Alexandra", got.Name)
	assert.Equal(t, 150, got.Children[0].CurrentScore)
}

func TestSaveParent_Unknown(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.SaveParent(testParent())
	assert.Error(t, err)
}

func TestFindParentIDByChildID(t *testing.T) {
	repo := newTestRepo(t)
	parent := testParent()
	require.NoError(t, repo.CreateParent(parent))

	parentID, err := repo.FindParentIDByChildID("child-1")
	require.NoError(t, err)
	assert.Equal(t, "parent-1", parentID)

	parentID, err = repo.FindParentIDByChildID("unknown")
	require.NoError(t, err)
	assert.Equal(t, "", parentID)
}

func TestChildIndexResync(t *testing.T) {
	repo := newTestRepo(t)
	parent := testParent()
	require.NoError(t, repo.CreateParent(parent))

	// Add a second child and remove the first
	parent.Children = []models.Child{{ID: "child-2", Name: "Sam", Age: 6}}
	require.NoError(t, repo.SaveParent(parent))

	parentID, err := repo.FindParentIDByChildID("child-2")
	require.NoError(t, err)
	assert.Equal(t, "parent-1", parentID)

	parentID, err = repo.FindParentIDByChildID("child-1")
	require.NoError(t, err)
	assert.Equal(t, "", parentID)
}

func TestDeleteParent(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.CreateParent(testParent()))

	require.NoError(t, repo.DeleteParent("parent-1"))

	got, err := repo.GetParentByID("parent-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	parentID, err := repo.FindParentIDByChildID("child-1")
	require.NoError(t, err)
	assert.Equal(t, "", parentID)
}

func TestGetAllParents(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.CreateParent(testParent()))

	second := testParent()
	second.ID = "parent-2"
	second.Email = "beth@example.com"
	second.Children = nil
	require.NoError(t, repo.CreateParent(second))

	parents, err := repo.GetAllParents()
	require.NoError(t, err)
	assert.Len(t, parents, 2)
}
