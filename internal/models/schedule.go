package models

import "time"

// ActivityType identifies what kind of activity a schedule points at.
type ActivityType string

const (
	ActivityQuiz   ActivityType = "quiz"
	ActivityGame   ActivityType = "game"
	ActivityPuzzle ActivityType = "puzzle"
)

// Schedule is a planned activity embedded in a child. An activity becomes
// available once its scheduled time has passed and stays available until
// it is marked completed. Quiz and puzzle schedules reference content
// already embedded in the child; game schedules carry the game type name.
type Schedule struct {
	ID            string       `json:"id"`
	ActivityType  ActivityType `json:"activityType"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	ScheduledTime time.Time    `json:"scheduledTime"`
	Duration      int          `json:"duration"` // seconds
	IsCompleted   bool         `json:"isCompleted"`
	CompletedAt   *time.Time   `json:"completedAt,omitempty"`
	QuizID        string       `json:"quizId,omitempty"`
	GameType      string       `json:"gameType,omitempty"`
	PuzzleID      string       `json:"puzzleId,omitempty"`
	Score         *int         `json:"score,omitempty"`
	TimeSpent     *int         `json:"timeSpent,omitempty"`
}

// Available reports whether the activity can be started: its scheduled
// time has passed and it has not been completed.
func (s *Schedule) Available(now time.Time) bool {
	return !s.IsCompleted && !s.ScheduledTime.After(now)
}

// Upcoming reports whether the activity is still in the future.
func (s *Schedule) Upcoming(now time.Time) bool {
	return !s.IsCompleted && s.ScheduledTime.After(now)
}
