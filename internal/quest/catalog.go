// Package quest implements the quest progression and reward engine: the
// archetype catalog with its difficulty tables, the event tracker that
// advances quest progress, and the claim flow that credits rewards and
// spawns successor quests.
package quest

import (
	"fmt"

	"github.com/google/uuid"

	"kidquest/internal/models"
)

// archetype holds the fixed difficulty curve for one quest type. Targets
// and rewards are indexed by tier-1; tiers past the end of the table reuse
// the last entry, so difficulty plateaus instead of erroring.
type archetype struct {
	title    string
	describe func(target int) string
	targets  []int
	rewards  []int
}

var catalog = map[models.QuestType]archetype{
	models.QuestCompleteQuizzes: {
		title:    "Quiz Explorer",
		describe: func(t int) string { return fmt.Sprintf("Complete %d quizzes", t) },
		targets:  []int{5, 10, 15, 20},
		rewards:  []int{100, 200, 300, 400},
	},
	models.QuestCompleteGames: {
		title:    "Game Master",
		describe: func(t int) string { return fmt.Sprintf("Complete %d games", t) },
		targets:  []int{3, 5, 10, 15},
		rewards:  []int{150, 250, 350, 450},
	},
	models.QuestEarnPoints: {
		title:    "Point Collector",
		describe: func(t int) string { return fmt.Sprintf("Earn %d points", t) },
		targets:  []int{200, 500, 1000, 1500},
		rewards:  []int{150, 300, 500, 700},
	},
	models.QuestPerfectScore: {
		title:    "Perfectionist",
		describe: func(t int) string { return fmt.Sprintf("Get a perfect score on %d quizzes", t) },
		targets:  []int{1, 3, 5, 10},
		rewards:  []int{200, 400, 600, 800},
	},
}

// seededTypes are the archetypes a new child starts with. CompleteGames is
// in the catalog but not seeded initially.
var seededTypes = []models.QuestType{
	models.QuestCompleteQuizzes,
	models.QuestEarnPoints,
	models.QuestPerfectScore,
}

// InitialQuestSet returns one tier-1 ACTIVE quest per seeded archetype.
func InitialQuestSet() []models.Quest {
	quests := make([]models.Quest, 0, len(seededTypes))
	for _, qt := range seededTypes {
		quests = append(quests, newQuest(qt, 1))
	}
	return quests
}

// NextQuest returns the ACTIVE successor quest for an archetype, one tier
// above the previous one.
func NextQuest(qt models.QuestType, previousTier int) models.Quest {
	return newQuest(qt, previousTier+1)
}

func newQuest(qt models.QuestType, tier int) models.Quest {
	arch := catalog[qt]

	idx := tier - 1
	if idx >= len(arch.targets) {
		idx = len(arch.targets) - 1
	}
	if idx < 0 {
		idx = 0
	}

	target := arch.targets[idx]
	return models.Quest{
		ID:               uuid.New().String(),
		Type:             qt,
		Title:            arch.title,
		Description:      arch.describe(target),
		Progress:         0,
		Target:           target,
		Reward:           arch.rewards[idx],
		Status:           models.QuestActive,
		ProgressionLevel: tier,
	}
}
