package quest

import (
	"testing"

	"kidquest/internal/apperr"
	"kidquest/internal/models"
)

func childWithQuest(q models.Quest) *models.Child {
	return &models.Child{
		ID:               "kid-1",
		Name:             "Maya",
		CurrentScore:     100,
		LifetimeScore:    100,
		ProgressionLevel: 2,
		Quests:           []models.Quest{q},
	}
}

func TestClaimCompletedQuest(t *testing.T) {
	child := childWithQuest(models.Quest{
		ID:               "q1",
		Type:             models.QuestPerfectScore,
		Progress:         1,
		Target:           1,
		Reward:           200,
		Status:           models.QuestCompleted,
		ProgressionLevel: 1,
	})

	if err := Claim(child, "q1"); err != nil {
		t.Fatalf("Claim() error = %v", err)
	}

	if child.CurrentScore != 300 {
		t.Errorf("currentScore = %d, want 300", child.CurrentScore)
	}
	if child.LifetimeScore != 300 {
		t.Errorf("lifetimeScore = %d, want 300", child.LifetimeScore)
	}
	if child.ProgressionLevel != 2 {
		t.Errorf("progressionLevel = %d, want 2", child.ProgressionLevel)
	}
	if child.Quests[0].Status != models.QuestClaimed {
		t.Errorf("claimed quest status = %s, want CLAIMED", child.Quests[0].Status)
	}

	if len(child.Quests) != 2 {
		t.Fatalf("got %d quests after claim, want 2", len(child.Quests))
	}
	successor := child.Quests[1]
	if successor.Type != models.QuestPerfectScore {
		t.Errorf("successor type = %s, want PERFECT_SCORE", successor.Type)
	}
	if successor.ProgressionLevel != 2 {
		t.Errorf("successor tier = %d, want 2", successor.ProgressionLevel)
	}
	if successor.Target != 3 || successor.Reward != 400 {
		t.Errorf("successor target/reward = %d/%d, want 3/400", successor.Target, successor.Reward)
	}
	if successor.Status != models.QuestActive {
		t.Errorf("successor status = %s, want ACTIVE", successor.Status)
	}
}

func TestClaimRejectsWrongState(t *testing.T) {
	tests := []struct {
		name   string
		status models.QuestStatus
	}{
		{name: "active quest", status: models.QuestActive},
		{name: "already claimed quest", status: models.QuestClaimed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			child := childWithQuest(models.Quest{
				ID:               "q1",
				Type:             models.QuestEarnPoints,
				Target:           200,
				Reward:           150,
				Status:           tt.status,
				ProgressionLevel: 1,
			})

			err := Claim(child, "q1")
			if !apperr.Is(err, apperr.CodeInvalidState) {
				t.Fatalf("Claim() error = %v, want INVALID_STATE", err)
			}

			// Nothing may change on a rejected claim.
			if child.CurrentScore != 100 || child.LifetimeScore != 100 {
				t.Errorf("scores changed: %d/%d, want 100/100", child.CurrentScore, child.LifetimeScore)
			}
			if len(child.Quests) != 1 {
				t.Errorf("quest list grew to %d, want 1", len(child.Quests))
			}
			if child.Quests[0].Status != tt.status {
				t.Errorf("status changed to %s, want %s", child.Quests[0].Status, tt.status)
			}
		})
	}
}

func TestClaimUnknownQuest(t *testing.T) {
	child := childWithQuest(models.Quest{ID: "q1", Status: models.QuestCompleted})

	err := Claim(child, "nope")
	if !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("Claim() error = %v, want NOT_FOUND", err)
	}
}
