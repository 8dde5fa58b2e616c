package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"kidquest/internal/database"
	"kidquest/internal/models"
)

// ParentRepository persists parent aggregates. The whole parent document
// (children, quizzes, quests, gifts included) is stored as one JSON column
// and written back in a single statement, so every mutation is atomic at
// the parent level. A child_id -> parent_id index table is kept in sync on
// each save to support child lookup without scanning documents.
type ParentRepository struct {
	db *database.DB
}

// NewParentRepository creates a new parent repository
func NewParentRepository(db *database.DB) *ParentRepository {
	return &ParentRepository{db: db}
}

// parentDocument is the persisted shape of a parent. The API model hides
// the password hash from JSON responses, so the document re-adds it under
// its own key.
type parentDocument struct {
	*models.Parent
	PasswordHash string `json:"passwordHash"`
}

func encodeParent(parent *models.Parent) ([]byte, error) {
	return json.Marshal(parentDocument{Parent: parent, PasswordHash: parent.PasswordHash})
}

func decodeParent(doc []byte) (*models.Parent, error) {
	pd := parentDocument{Parent: &models.Parent{}}
	if err := json.Unmarshal(doc, &pd); err != nil {
		return nil, err
	}
	pd.Parent.PasswordHash = pd.PasswordHash
	return pd.Parent, nil
}

// CreateParent inserts a new parent aggregate
func (r *ParentRepository) CreateParent(parent *models.Parent) error {
	now := time.Now().UTC()
	parent.CreatedAt = now
	parent.UpdatedAt = now

	doc, err := encodeParent(parent)
	if err != nil {
		return fmt.Errorf("failed to marshal parent document: %w", err)
	}

	query := "INSERT INTO parents (id, email, document, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	if _, err := r.db.Exec(query, parent.ID, parent.Email, string(doc), now, now); err != nil {
		return fmt.Errorf("failed to create parent: %w", err)
	}

	return r.syncChildIndex(parent)
}

// GetParentByID retrieves a parent aggregate by ID. Returns nil when absent.
func (r *ParentRepository) GetParentByID(parentID string) (*models.Parent, error) {
	query := "SELECT document FROM parents WHERE id = ?"
	return r.scanParent(r.db.QueryRow(query, parentID))
}

// GetParentByEmail retrieves a parent aggregate by email. Returns nil when absent.
func (r *ParentRepository) GetParentByEmail(email string) (*models.Parent, error) {
	query := "SELECT document FROM parents WHERE email = ?"
	return r.scanParent(r.db.QueryRow(query, email))
}

// GetAllParents retrieves every parent aggregate
func (r *ParentRepository) GetAllParents() ([]models.Parent, error) {
	query := "SELECT document FROM parents ORDER BY created_at ASC"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query parents: %w", err)
	}
	defer rows.Close()

	var parents []models.Parent
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan parent: %w", err)
		}
		parent, err := decodeParent([]byte(doc))
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal parent document: %w", err)
		}
		parents = append(parents, *parent)
	}

	return parents, rows.Err()
}

// SaveParent writes the whole aggregate back in one statement. Last writer
// wins; there is no per-quest or per-quiz concurrency control below the
// parent level.
func (r *ParentRepository) SaveParent(parent *models.Parent) error {
	parent.UpdatedAt = time.Now().UTC()

	doc, err := encodeParent(parent)
	if err != nil {
		return fmt.Errorf("failed to marshal parent document: %w", err)
	}

	query := "UPDATE parents SET email = ?, document = ?, updated_at = ? WHERE id = ?"
	result, err := r.db.Exec(query, parent.Email, string(doc), parent.UpdatedAt, parent.ID)
	if err != nil {
		return fmt.Errorf("failed to save parent: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check save result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return r.syncChildIndex(parent)
}

// DeleteParent removes a parent aggregate and its child index entries
func (r *ParentRepository) DeleteParent(parentID string) error {
	// Child index rows cascade in postgres/mysql; delete explicitly so
	// sqlite databases created without foreign_keys=ON behave the same.
	if _, err := r.db.Exec("DELETE FROM parent_children WHERE parent_id = ?", parentID); err != nil {
		return fmt.Errorf("failed to delete child index: %w", err)
	}
	if _, err := r.db.Exec("DELETE FROM parents WHERE id = ?", parentID); err != nil {
		return fmt.Errorf("failed to delete parent: %w", err)
	}
	return nil
}

// FindParentIDByChildID resolves which parent owns a child. Returns ""
// when no parent owns the child.
func (r *ParentRepository) FindParentIDByChildID(childID string) (string, error) {
	var parentID string
	query := "SELECT parent_id FROM parent_children WHERE child_id = ?"
	err := r.db.QueryRow(query, childID).Scan(&parentID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up child: %w", err)
	}
	return parentID, nil
}

func (r *ParentRepository) scanParent(row *sql.Row) (*models.Parent, error) {
	var doc string
	err := row.Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}

	parent, err := decodeParent([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal parent document: %w", err)
	}
	return parent, nil
}

// syncChildIndex rebuilds the child lookup rows for a parent
func (r *ParentRepository) syncChildIndex(parent *models.Parent) error {
	if _, err := r.db.Exec("DELETE FROM parent_children WHERE parent_id = ?", parent.ID); err != nil {
		return fmt.Errorf("failed to clear child index: %w", err)
	}
	for i := range parent.Children {
		query := "INSERT INTO parent_children (child_id, parent_id) VALUES (?, ?)"
		if _, err := r.db.Exec(query, parent.Children[i].ID, parent.ID); err != nil {
			return fmt.Errorf("failed to index child: %w", err)
		}
	}
	return nil
}
