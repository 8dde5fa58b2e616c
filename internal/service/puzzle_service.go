package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"kidquest/internal/apperr"
	"kidquest/internal/models"
	"kidquest/internal/progression"
	"kidquest/internal/quest"
)

// PuzzleService manages puzzles, the reward-triggering sibling of quizzes
type PuzzleService struct {
	store ParentStore
}

// NewPuzzleService creates a new puzzle service
func NewPuzzleService(store ParentStore) *PuzzleService {
	return &PuzzleService{store: store}
}

// PuzzleInput carries the fields for creating a puzzle. Pieces are
// supplied by the caller; each starts at its current position and the
// puzzle is solved when every piece reaches its correct one.
type PuzzleInput struct {
	Title      string               `json:"title"`
	Type       string               `json:"type"`
	Difficulty string               `json:"difficulty"`
	GridSize   int                  `json:"gridSize"`
	Pieces     []models.PuzzlePiece `json:"pieces"`
	Hint       string               `json:"hint"`
}

// AddPuzzle creates a puzzle under a child
func (s *PuzzleService) AddPuzzle(parentID, childID string, in PuzzleInput) (*models.Puzzle, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.InvalidArgument("title is required")
	}
	if len(in.Pieces) == 0 {
		return nil, apperr.InvalidArgument("puzzle needs at least one piece")
	}

	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}

	child.Puzzles = append(child.Puzzles, models.Puzzle{
		ID:         uuid.New().String(),
		Title:      strings.TrimSpace(in.Title),
		Type:       in.Type,
		Difficulty: in.Difficulty,
		GridSize:   in.GridSize,
		Pieces:     in.Pieces,
		Hint:       in.Hint,
	})

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return &child.Puzzles[len(child.Puzzles)-1], nil
}

// ListPuzzles returns all puzzles for a child
func (s *PuzzleService) ListPuzzles(parentID, childID string) ([]models.Puzzle, error) {
	_, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	return child.Puzzles, nil
}

// GetPuzzle returns a single puzzle
func (s *PuzzleService) GetPuzzle(parentID, childID, puzzleID string) (*models.Puzzle, error) {
	_, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	puzzle := child.FindPuzzle(puzzleID)
	if puzzle == nil {
		return nil, apperr.NotFound("puzzle", puzzleID)
	}
	return puzzle, nil
}

// DeletePuzzle removes a puzzle from a child
func (s *PuzzleService) DeletePuzzle(parentID, childID, puzzleID string) error {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return err
	}

	idx := -1
	for i := range child.Puzzles {
		if child.Puzzles[i].ID == puzzleID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperr.NotFound("puzzle", puzzleID)
	}

	child.Puzzles = append(child.Puzzles[:idx], child.Puzzles[idx+1:]...)
	if err := s.store.SaveParent(parent); err != nil {
		return fmt.Errorf("failed to save parent: %w", err)
	}
	return nil
}

// PuzzleSubmission carries an attempt's piece placements and timing
type PuzzleSubmission struct {
	Positions map[int]int `json:"positions"` // piece ID -> current position
	TimeSpent int         `json:"timeSpent"` // seconds
}

// SubmitPuzzle records an attempt. A solved puzzle is scored (repeat
// attempts cost points), the score is credited to the child, and a
// game-completion event feeds the same quest tracker as quizzes. Returns
// the whole updated child.
func (s *PuzzleService) SubmitPuzzle(parentID, childID, puzzleID string, sub PuzzleSubmission) (*models.Child, error) {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	puzzle := child.FindPuzzle(puzzleID)
	if puzzle == nil {
		return nil, apperr.NotFound("puzzle", puzzleID)
	}
	if puzzle.IsCompleted {
		return nil, apperr.InvalidState("puzzle already completed")
	}

	for i := range puzzle.Pieces {
		if pos, ok := sub.Positions[puzzle.Pieces[i].ID]; ok {
			puzzle.Pieces[i].CurrentPosition = pos
		}
	}
	puzzle.Attempts++
	puzzle.TimeSpent += sub.TimeSpent

	if !puzzleSolved(puzzle) {
		if err := s.store.SaveParent(parent); err != nil {
			return nil, fmt.Errorf("failed to save parent: %w", err)
		}
		return child, nil
	}

	score := puzzleScore(puzzle.Attempts)
	puzzle.IsCompleted = true
	puzzle.Score = score

	child.CurrentScore += score
	child.LifetimeScore += score
	child.ProgressionLevel = progression.Level(child.LifetimeScore)

	quest.ApplyEvent(child.Quests, quest.Event{
		GameCompleted: true,
		PointsEarned:  score,
		PerfectScore:  score == 100,
	})

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return child, nil
}

// puzzleSolved reports whether every piece sits at its correct position
func puzzleSolved(p *models.Puzzle) bool {
	for i := range p.Pieces {
		if p.Pieces[i].CurrentPosition != p.Pieces[i].CorrectPosition {
			return false
		}
	}
	return true
}

// puzzleScore awards 100 for a first-attempt solve, dropping 10 points
// per extra attempt with a floor of 20.
func puzzleScore(attempts int) int {
	score := 100 - (attempts-1)*10
	if score < 20 {
		score = 20
	}
	return score
}

