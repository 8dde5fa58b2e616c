package models

// QuestType identifies how a quest's progress accrues.
type QuestType string

const (
	QuestCompleteQuizzes QuestType = "COMPLETE_QUIZZES"
	QuestCompleteGames   QuestType = "COMPLETE_GAMES"
	QuestEarnPoints      QuestType = "EARN_POINTS"
	QuestPerfectScore    QuestType = "PERFECT_SCORE"
)

// QuestStatus is the quest lifecycle state. Transitions are one-directional:
// ACTIVE -> COMPLETED -> CLAIMED.
type QuestStatus string

const (
	QuestActive    QuestStatus = "ACTIVE"
	QuestCompleted QuestStatus = "COMPLETED"
	QuestClaimed   QuestStatus = "CLAIMED"
)

// Quest is a progress-tracked goal embedded in a child. ProgressionLevel is
// the tier of the archetype's difficulty table this instance represents.
type Quest struct {
	ID               string      `json:"id"`
	Type             QuestType   `json:"type"`
	Title            string      `json:"title,omitempty"`
	Description      string      `json:"description,omitempty"`
	Progress         int         `json:"progress"`
	Target           int         `json:"target"`
	Reward           int         `json:"reward"`
	Status           QuestStatus `json:"status"`
	ProgressionLevel int         `json:"progressionLevel"`
}
