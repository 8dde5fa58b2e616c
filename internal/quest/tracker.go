package quest

import "kidquest/internal/models"

// Event is a single gameplay outcome fanned out to every active quest.
// One quiz submission can advance several archetypes at once: completion
// count, earned points, and the perfect-score counter.
type Event struct {
	QuizCompleted bool
	GameCompleted bool
	PointsEarned  int
	PerfectScore  bool
}

// ApplyEvent advances every ACTIVE quest affected by the event, in place.
// Progress never decreases and status never regresses; a quest whose
// progress reaches its target flips to COMPLETED and stops accruing.
func ApplyEvent(quests []models.Quest, ev Event) {
	for i := range quests {
		q := &quests[i]
		if q.Status != models.QuestActive {
			continue
		}

		switch q.Type {
		case models.QuestCompleteQuizzes:
			if ev.QuizCompleted {
				q.Progress++
			}
		case models.QuestCompleteGames:
			if ev.GameCompleted {
				q.Progress++
			}
		case models.QuestEarnPoints:
			if ev.PointsEarned > 0 {
				q.Progress += ev.PointsEarned
			}
		case models.QuestPerfectScore:
			if ev.PerfectScore {
				q.Progress++
			}
		}

		if q.Progress >= q.Target {
			q.Status = models.QuestCompleted
		}
	}
}
