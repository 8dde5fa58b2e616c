package quest

import (
	"kidquest/internal/apperr"
	"kidquest/internal/models"
	"kidquest/internal/progression"
)

// Claim converts a COMPLETED quest into CLAIMED: the reward is credited to
// both the spendable and lifetime scores, the child's level is recomputed,
// and exactly one successor quest of the same archetype is appended at the
// next tier. The child is mutated in memory only; persisting the owning
// aggregate is the caller's job.
func Claim(child *models.Child, questID string) error {
	q := child.FindQuest(questID)
	if q == nil {
		return apperr.NotFound("quest", questID)
	}

	switch q.Status {
	case models.QuestClaimed:
		return apperr.InvalidState("quest reward already claimed")
	case models.QuestActive:
		return apperr.InvalidState("quest not completed yet")
	}

	child.CurrentScore += q.Reward
	child.LifetimeScore += q.Reward
	child.ProgressionLevel = progression.Level(child.LifetimeScore)
	q.Status = models.QuestClaimed

	child.Quests = append(child.Quests, NextQuest(q.Type, q.ProgressionLevel))
	return nil
}
