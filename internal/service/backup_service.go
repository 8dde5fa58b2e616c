package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"kidquest/internal/database"
)

// BackupData is the on-disk backup format: raw parent documents plus the
// child index rows, portable across database backends.
type BackupData struct {
	Version    string         `json:"version"`
	ExportedAt time.Time      `json:"exported_at"`
	Parents    []ParentBackup `json:"parents"`
}

// ParentBackup is one parent row, document included verbatim
type ParentBackup struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Document  json.RawMessage `json:"document"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup of every parent aggregate to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC(),
	}

	rows, err := s.db.Query("SELECT id, email, document, created_at, updated_at FROM parents ORDER BY created_at ASC")
	if err != nil {
		return fmt.Errorf("failed to query parents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p ParentBackup
		var doc string
		if err := rows.Scan(&p.ID, &p.Email, &doc, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan parent: %w", err)
		}
		p.Document = json.RawMessage(doc)
		backup.Parents = append(backup.Parents, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read parents: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s (%d parents)", outputPath, len(backup.Parents))
	return nil
}

// Import restores parents from a backup file. Existing rows with the same
// ID are overwritten; others are left alone.
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores parents from a backup stream
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	imported := 0
	for _, p := range backup.Parents {
		if err := s.restoreParent(p); err != nil {
			return fmt.Errorf("failed to restore parent %s: %w", p.ID, err)
		}
		imported++
	}

	log.Printf("Import complete: %d parents restored", imported)
	return nil
}

func (s *BackupService) restoreParent(p ParentBackup) error {
	var existing string
	err := s.db.QueryRow("SELECT id FROM parents WHERE id = ?", p.ID).Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
		_, err = s.db.Exec(
			"INSERT INTO parents (id, email, document, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			p.ID, p.Email, string(p.Document), p.CreatedAt, p.UpdatedAt)
	case err == nil:
		_, err = s.db.Exec(
			"UPDATE parents SET email = ?, document = ?, created_at = ?, updated_at = ? WHERE id = ?",
			p.Email, string(p.Document), p.CreatedAt, p.UpdatedAt, p.ID)
	}
	if err != nil {
		return err
	}

	return s.rebuildChildIndex(p)
}

// rebuildChildIndex recreates the child lookup rows from the document
func (s *BackupService) rebuildChildIndex(p ParentBackup) error {
	var doc struct {
		Children []struct {
			ID string `json:"id"`
		} `json:"children"`
	}
	if err := json.Unmarshal(p.Document, &doc); err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	if _, err := s.db.Exec("DELETE FROM parent_children WHERE parent_id = ?", p.ID); err != nil {
		return err
	}
	for _, child := range doc.Children {
		if _, err := s.db.Exec(
			"INSERT INTO parent_children (child_id, parent_id) VALUES (?, ?)", child.ID, p.ID); err != nil {
			return err
		}
	}
	return nil
}
