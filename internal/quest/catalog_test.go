package quest

import (
	"testing"

	"kidquest/internal/models"
)

func TestInitialQuestSet(t *testing.T) {
	quests := InitialQuestSet()

	if len(quests) != 3 {
		t.Fatalf("got %d quests, want 3", len(quests))
	}

	want := map[models.QuestType]struct {
		target int
		reward int
	}{
		models.QuestCompleteQuizzes: {target: 5, reward: 100},
		models.QuestEarnPoints:      {target: 200, reward: 150},
		models.QuestPerfectScore:    {target: 1, reward: 200},
	}

	seen := make(map[models.QuestType]bool)
	for _, q := range quests {
		expected, ok := want[q.Type]
		if !ok {
			t.Errorf("unexpected quest type %s", q.Type)
			continue
		}
		if seen[q.Type] {
			t.Errorf("duplicate quest type %s", q.Type)
		}
		seen[q.Type] = true

		if q.Status != models.QuestActive {
			t.Errorf("%s: status = %s, want ACTIVE", q.Type, q.Status)
		}
		if q.Progress != 0 {
			t.Errorf("%s: progress = %d, want 0", q.Type, q.Progress)
		}
		if q.ProgressionLevel != 1 {
			t.Errorf("%s: tier = %d, want 1", q.Type, q.ProgressionLevel)
		}
		if q.Target != expected.target {
			t.Errorf("%s: target = %d, want %d", q.Type, q.Target, expected.target)
		}
		if q.Reward != expected.reward {
			t.Errorf("%s: reward = %d, want %d", q.Type, q.Reward, expected.reward)
		}
		if q.ID == "" {
			t.Errorf("%s: quest has no ID", q.Type)
		}
	}
}

func TestInitialQuestSetSkipsGames(t *testing.T) {
	for _, q := range InitialQuestSet() {
		if q.Type == models.QuestCompleteGames {
			t.Error("CompleteGames quest should not be seeded initially")
		}
	}
}

func TestNextQuest(t *testing.T) {
	tests := []struct {
		name         string
		questType    models.QuestType
		previousTier int
		wantTier     int
		wantTarget   int
		wantReward   int
	}{
		{
			name:         "quizzes tier 1 to 2",
			questType:    models.QuestCompleteQuizzes,
			previousTier: 1,
			wantTier:     2,
			wantTarget:   10,
			wantReward:   200,
		},
		{
			name:         "perfect score tier 1 to 2",
			questType:    models.QuestPerfectScore,
			previousTier: 1,
			wantTier:     2,
			wantTarget:   3,
			wantReward:   400,
		},
		{
			name:         "earn points tier 3 to 4",
			questType:    models.QuestEarnPoints,
			previousTier: 3,
			wantTier:     4,
			wantTarget:   1500,
			wantReward:   700,
		},
		{
			name:         "past end of table plateaus",
			questType:    models.QuestCompleteQuizzes,
			previousTier: 9,
			wantTier:     10,
			wantTarget:   20,
			wantReward:   400,
		},
		{
			name:         "games tier 1 to 2",
			questType:    models.QuestCompleteGames,
			previousTier: 1,
			wantTier:     2,
			wantTarget:   5,
			wantReward:   250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NextQuest(tt.questType, tt.previousTier)

			if q.ProgressionLevel != tt.wantTier {
				t.Errorf("tier = %d, want %d", q.ProgressionLevel, tt.wantTier)
			}
			if q.Target != tt.wantTarget {
				t.Errorf("target = %d, want %d", q.Target, tt.wantTarget)
			}
			if q.Reward != tt.wantReward {
				t.Errorf("reward = %d, want %d", q.Reward, tt.wantReward)
			}
			if q.Status != models.QuestActive {
				t.Errorf("status = %s, want ACTIVE", q.Status)
			}
			if q.Progress != 0 {
				t.Errorf("progress = %d, want 0", q.Progress)
			}
		})
	}
}
