package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidquest/internal/apperr"
	"kidquest/internal/models"
)

func newScheduleService(store *fakeStore, now time.Time) *ScheduleService {
	svc := NewScheduleService(store)
	svc.now = func() time.Time { return now }
	return svc
}

func scheduleInput(at time.Time) ScheduleInput {
	return ScheduleInput{
		ActivityType:  models.ActivityGame,
		Title:         "Memory match",
		ScheduledTime: at,
		Duration:      300,
		GameType:      "memoryMatch",
	}
}

func TestAddSchedule(t *testing.T) {
	parent, child := newTestParent()
	store := newFakeStore(parent)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newScheduleService(store, now)

	sched, err := svc.AddSchedule(parent.ID, child.ID, scheduleInput(now.Add(time.Hour)))
	require.NoError(t, err)

	assert.NotEmpty(t, sched.ID)
	assert.Equal(t, models.ActivityGame, sched.ActivityType)
	assert.False(t, sched.IsCompleted)
	assert.Len(t, child.Schedules, 1)
	assert.Equal(t, 1, store.saves)
}

func TestAddSchedule_Validation(t *testing.T) {
	parent, child := newTestParent()
	store := newFakeStore(parent)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newScheduleService(store, now)

	tests := []struct {
		name  string
		input ScheduleInput
	}{
		{"blank title", ScheduleInput{ActivityType: models.ActivityGame, Title: " ", ScheduledTime: now.Add(time.Hour), Duration: 300, GameType: "memoryMatch"}},
		{"past time", scheduleInput(now.Add(-time.Hour))},
		{"short duration", ScheduleInput{ActivityType: models.ActivityGame, Title: "Memory", ScheduledTime: now.Add(time.Hour), Duration: 30, GameType: "memoryMatch"}},
		{"unknown activity", ScheduleInput{ActivityType: "movie", Title: "Movie night", ScheduledTime: now.Add(time.Hour), Duration: 300}},
		{"quiz without quizId", ScheduleInput{ActivityType: models.ActivityQuiz, Title: "Math quiz", ScheduledTime: now.Add(time.Hour), Duration: 300}},
		{"game without gameType", ScheduleInput{ActivityType: models.ActivityGame, Title: "Game", ScheduledTime: now.Add(time.Hour), Duration: 300}},
		{"puzzle without puzzleId", ScheduleInput{ActivityType: models.ActivityPuzzle, Title: "Puzzle", ScheduledTime: now.Add(time.Hour), Duration: 300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddSchedule(parent.ID, child.ID, tt.input)
			assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
		})
	}
	assert.Zero(t, store.saves)
}

func TestListSchedules_SortedByTime(t *testing.T) {
	parent, child := newTestParent()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	child.Schedules = []models.Schedule{
		{ID: "s-late", ScheduledTime: now.Add(2 * time.Hour)},
		{ID: "s-early", ScheduledTime: now.Add(time.Hour)},
	}
	svc := newScheduleService(newFakeStore(parent), now)

	schedules, err := svc.ListSchedules(parent.ID, child.ID)
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, "s-early", schedules[0].ID)
	assert.Equal(t, "s-late", schedules[1].ID)
}

func TestAvailableAndUpcoming(t *testing.T) {
	parent, child := newTestParent()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	done := now.Add(-2 * time.Hour)
	child.Schedules = []models.Schedule{
		{ID: "s-open", ScheduledTime: now.Add(-time.Hour)},
		{ID: "s-future", ScheduledTime: now.Add(time.Hour)},
		{ID: "s-done", ScheduledTime: now.Add(-3 * time.Hour), IsCompleted: true, CompletedAt: &done},
	}
	svc := newScheduleService(newFakeStore(parent), now)

	available, err := svc.ListAvailable(parent.ID, child.ID)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "s-open", available[0].ID)

	upcoming, err := svc.ListUpcoming(parent.ID, child.ID)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "s-future", upcoming[0].ID)

	completed, err := svc.ListCompleted(parent.ID, child.ID)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "s-done", completed[0].ID)
}

func TestCompleteSchedule(t *testing.T) {
	parent, child := newTestParent()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	child.Schedules = []models.Schedule{
		{ID: "s-1", ScheduledTime: now.Add(-time.Hour)},
	}
	store := newFakeStore(parent)
	svc := newScheduleService(store, now)

	score, spent := 85, 240
	sched, err := svc.CompleteSchedule(parent.ID, child.ID, "s-1", &score, &spent)
	require.NoError(t, err)

	assert.True(t, sched.IsCompleted)
	require.NotNil(t, sched.CompletedAt)
	assert.Equal(t, now, *sched.CompletedAt)
	require.NotNil(t, sched.Score)
	assert.Equal(t, 85, *sched.Score)
	require.NotNil(t, sched.TimeSpent)
	assert.Equal(t, 240, *sched.TimeSpent)
	assert.Equal(t, 1, store.saves)
}

func TestCompleteSchedule_Unknown(t *testing.T) {
	parent, child := newTestParent()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newScheduleService(newFakeStore(parent), now)

	_, err := svc.CompleteSchedule(parent.ID, child.ID, "nope", nil, nil)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestUpdateSchedule_Partial(t *testing.T) {
	parent, child := newTestParent()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	child.Schedules = []models.Schedule{
		{ID: "s-1", Title: "Memory match", ScheduledTime: now.Add(time.Hour), Duration: 300},
	}
	svc := newScheduleService(newFakeStore(parent), now)

	title := "Color match"
	sched, err := svc.UpdateSchedule(parent.ID, child.ID, "s-1", ScheduleUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Color match", sched.Title)
	assert.Equal(t, 300, sched.Duration)

	short := 10
	_, err = svc.UpdateSchedule(parent.ID, child.ID, "s-1", ScheduleUpdate{Duration: &short})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestDeleteSchedule(t *testing.T) {
	parent, child := newTestParent()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	child.Schedules = []models.Schedule{
		{ID: "s-1", ScheduledTime: now.Add(time.Hour)},
	}
	svc := newScheduleService(newFakeStore(parent), now)

	require.NoError(t, svc.DeleteSchedule(parent.ID, child.ID, "s-1"))
	assert.Empty(t, child.Schedules)

	err := svc.DeleteSchedule(parent.ID, child.ID, "s-1")
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestSyncSchedules_ReplacesAll(t *testing.T) {
	parent, child := newTestParent()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	child.Schedules = []models.Schedule{
		{ID: "s-old", ScheduledTime: now.Add(time.Hour)},
	}
	store := newFakeStore(parent)
	svc := newScheduleService(store, now)

	schedules, err := svc.SyncSchedules(parent.ID, child.ID, []ScheduleInput{
		scheduleInput(now.Add(time.Hour)),
		scheduleInput(now.Add(2 * time.Hour)),
	})
	require.NoError(t, err)
	assert.Len(t, schedules, 2)
	assert.Len(t, child.Schedules, 2)
	assert.Nil(t, child.FindSchedule("s-old"))
	assert.Equal(t, 1, store.saves)
}

func TestSyncSchedules_RejectsInvalidBatch(t *testing.T) {
	parent, child := newTestParent()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	child.Schedules = []models.Schedule{
		{ID: "s-old", ScheduledTime: now.Add(time.Hour)},
	}
	store := newFakeStore(parent)
	svc := newScheduleService(store, now)

	_, err := svc.SyncSchedules(parent.ID, child.ID, []ScheduleInput{
		scheduleInput(now.Add(time.Hour)),
		scheduleInput(now.Add(-time.Hour)),
	})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	// Nothing replaced on a bad batch
	assert.NotNil(t, child.FindSchedule("s-old"))
	assert.Zero(t, store.saves)
}

func TestGetStats(t *testing.T) {
	parent, child := newTestParent()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	done := now.Add(-time.Hour)
	s80, s90 := 80, 90
	child.Schedules = []models.Schedule{
		{ID: "s-1", ScheduledTime: now.Add(-2 * time.Hour), IsCompleted: true, CompletedAt: &done, Score: &s80},
		{ID: "s-2", ScheduledTime: now.Add(-2 * time.Hour), IsCompleted: true, CompletedAt: &done, Score: &s90},
		{ID: "s-3", ScheduledTime: now.Add(-time.Hour)},
		{ID: "s-4", ScheduledTime: now.Add(time.Hour)},
	}
	svc := newScheduleService(newFakeStore(parent), now)

	stats, err := svc.GetStats(parent.ID, child.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 1, stats.Available)
	assert.Equal(t, 1, stats.Upcoming)
	assert.Equal(t, 50.0, stats.CompletionRate)
	assert.Equal(t, 85.0, stats.AverageScore)
}

func TestGetStats_Empty(t *testing.T) {
	parent, child := newTestParent()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newScheduleService(newFakeStore(parent), now)

	stats, err := svc.GetStats(parent.ID, child.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.CompletionRate)
	assert.Zero(t, stats.AverageScore)
}
