package models

import "time"

// Child represents a child profile owned by a parent.
//
// CurrentScore is the spendable balance; LifetimeScore only ever grows and
// drives ProgressionLevel, which is always recomputed from LifetimeScore
// and never set by hand.
type Child struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Age              int        `json:"age"`
	Level            string     `json:"level"`
	AvatarEmoji      string     `json:"avatarEmoji,omitempty"`
	CurrentScore     int        `json:"currentScore"`
	LifetimeScore    int        `json:"lifetimeScore"`
	ProgressionLevel int        `json:"progressionLevel"`
	Quests           []Quest    `json:"quests"`
	Quizzes          []Quiz     `json:"quizzes"`
	Puzzles          []Puzzle   `json:"puzzles"`
	ShopCatalog      []Gift     `json:"shopCatalog"`
	Inventory        []Gift     `json:"inventory"`
	Schedules        []Schedule `json:"schedules"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// FindQuiz returns a pointer into the child's quizzes slice, or nil.
func (c *Child) FindQuiz(quizID string) *Quiz {
	for i := range c.Quizzes {
		if c.Quizzes[i].ID == quizID {
			return &c.Quizzes[i]
		}
	}
	return nil
}

// FindQuest returns a pointer into the child's quests slice, or nil.
func (c *Child) FindQuest(questID string) *Quest {
	for i := range c.Quests {
		if c.Quests[i].ID == questID {
			return &c.Quests[i]
		}
	}
	return nil
}

// FindPuzzle returns a pointer into the child's puzzles slice, or nil.
func (c *Child) FindPuzzle(puzzleID string) *Puzzle {
	for i := range c.Puzzles {
		if c.Puzzles[i].ID == puzzleID {
			return &c.Puzzles[i]
		}
	}
	return nil
}

// FindSchedule returns a pointer into the child's schedules slice, or nil.
func (c *Child) FindSchedule(scheduleID string) *Schedule {
	for i := range c.Schedules {
		if c.Schedules[i].ID == scheduleID {
			return &c.Schedules[i]
		}
	}
	return nil
}
