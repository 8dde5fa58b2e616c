package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidquest/internal/apperr"
	"kidquest/internal/models"
)

func newTestPuzzle() PuzzleInput {
	return PuzzleInput{
		Title:      "Animal jigsaw",
		Type:       "jigsaw",
		Difficulty: "easy",
		GridSize:   2,
		Pieces: []models.PuzzlePiece{
			{ID: 1, CorrectPosition: 0, CurrentPosition: 3},
			{ID: 2, CorrectPosition: 1, CurrentPosition: 2},
			{ID: 3, CorrectPosition: 2, CurrentPosition: 1},
			{ID: 4, CorrectPosition: 3, CurrentPosition: 0},
		},
	}
}

func TestSubmitPuzzle_SolvedFirstAttempt(t *testing.T) {
	parent, child := newTestParent()
	store := newFakeStore(parent)
	svc := NewPuzzleService(store)

	puzzle, err := svc.AddPuzzle(parent.ID, child.ID, newTestPuzzle())
	require.NoError(t, err)

	updated, err := svc.SubmitPuzzle(parent.ID, child.ID, puzzle.ID, PuzzleSubmission{
		Positions: map[int]int{1: 0, 2: 1, 3: 2, 4: 3},
		TimeSpent: 42,
	})
	require.NoError(t, err)

	assert.True(t, puzzle.IsCompleted)
	assert.Equal(t, 100, puzzle.Score)
	assert.Equal(t, 1, puzzle.Attempts)
	assert.Equal(t, 42, puzzle.TimeSpent)
	assert.Equal(t, 100, updated.CurrentScore)
	assert.Equal(t, 100, updated.LifetimeScore)
	assert.Equal(t, 2, updated.ProgressionLevel)

	// Games feed the quest tracker but not the quiz-completion counter.
	assert.Equal(t, 100, questProgress(t, updated, models.QuestEarnPoints))
	assert.Equal(t, 1, questProgress(t, updated, models.QuestPerfectScore))
	assert.Equal(t, 0, questProgress(t, updated, models.QuestCompleteQuizzes))
}

func TestSubmitPuzzle_RepeatAttemptsLowerScore(t *testing.T) {
	parent, child := newTestParent()
	store := newFakeStore(parent)
	svc := NewPuzzleService(store)

	puzzle, err := svc.AddPuzzle(parent.ID, child.ID, newTestPuzzle())
	require.NoError(t, err)

	// First attempt leaves a piece misplaced.
	updated, err := svc.SubmitPuzzle(parent.ID, child.ID, puzzle.ID, PuzzleSubmission{
		Positions: map[int]int{1: 0, 2: 1, 3: 2, 4: 2},
	})
	require.NoError(t, err)
	assert.False(t, puzzle.IsCompleted)
	assert.Equal(t, 1, puzzle.Attempts)
	assert.Equal(t, 0, updated.CurrentScore)

	// Second attempt solves it for a reduced score.
	updated, err = svc.SubmitPuzzle(parent.ID, child.ID, puzzle.ID, PuzzleSubmission{
		Positions: map[int]int{1: 0, 2: 1, 3: 2, 4: 3},
	})
	require.NoError(t, err)
	assert.True(t, puzzle.IsCompleted)
	assert.Equal(t, 90, puzzle.Score)
	assert.Equal(t, 90, updated.CurrentScore)
	assert.Equal(t, 0, questProgress(t, updated, models.QuestPerfectScore))
}

func TestSubmitPuzzle_Resubmission(t *testing.T) {
	parent, child := newTestParent()
	store := newFakeStore(parent)
	svc := NewPuzzleService(store)

	puzzle, err := svc.AddPuzzle(parent.ID, child.ID, newTestPuzzle())
	require.NoError(t, err)

	_, err = svc.SubmitPuzzle(parent.ID, child.ID, puzzle.ID, PuzzleSubmission{
		Positions: map[int]int{1: 0, 2: 1, 3: 2, 4: 3},
	})
	require.NoError(t, err)

	_, err = svc.SubmitPuzzle(parent.ID, child.ID, puzzle.ID, PuzzleSubmission{})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
}

func TestPuzzleScore(t *testing.T) {
	tests := []struct {
		attempts int
		expected int
	}{
		{1, 100},
		{2, 90},
		{5, 60},
		{9, 20},
		{20, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, puzzleScore(tt.attempts), "attempts=%d", tt.attempts)
	}
}

func TestAddPuzzle_Validation(t *testing.T) {
	parent, child := newTestParent()
	store := newFakeStore(parent)
	svc := NewPuzzleService(store)

	_, err := svc.AddPuzzle(parent.ID, child.ID, PuzzleInput{Title: "no pieces"})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	in := newTestPuzzle()
	in.Title = ""
	_, err = svc.AddPuzzle(parent.ID, child.ID, in)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}
