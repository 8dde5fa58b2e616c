package models

// Puzzle is a game embedded in a child. Completing one feeds the same
// quest engine as quizzes via a game-completion event.
type Puzzle struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Type        string        `json:"type"`
	Difficulty  string        `json:"difficulty"`
	GridSize    int           `json:"gridSize,omitempty"`
	Pieces      []PuzzlePiece `json:"pieces"`
	Hint        string        `json:"hint,omitempty"`
	IsCompleted bool          `json:"isCompleted"`
	Attempts    int           `json:"attempts"`
	TimeSpent   int           `json:"timeSpent"`
	Score       int           `json:"score"`
}

// PuzzlePiece is one movable piece of a puzzle; the puzzle is solved when
// every piece's current position matches its correct position.
type PuzzlePiece struct {
	ID              int    `json:"id"`
	CorrectPosition int    `json:"correctPosition"`
	CurrentPosition int    `json:"currentPosition"`
	Content         string `json:"content,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
}
