package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"kidquest/internal/apperr"
	"kidquest/internal/models"
)

// minScheduleDuration is the shortest plannable activity.
const minScheduleDuration = 60 * time.Second

// ScheduleService manages planned activities for children
type ScheduleService struct {
	store ParentStore
	now   func() time.Time
}

// NewScheduleService creates a new schedule service
func NewScheduleService(store ParentStore) *ScheduleService {
	return &ScheduleService{store: store, now: time.Now}
}

// ScheduleInput carries the fields for creating a scheduled activity.
// Quiz and puzzle schedules reference content embedded in the child;
// game schedules name the game type instead.
type ScheduleInput struct {
	ActivityType  models.ActivityType `json:"activityType"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	ScheduledTime time.Time           `json:"scheduledTime"`
	Duration      int                 `json:"duration"` // seconds
	QuizID        string              `json:"quizId"`
	GameType      string              `json:"gameType"`
	PuzzleID      string              `json:"puzzleId"`
}

func (in *ScheduleInput) validate(now time.Time) error {
	if strings.TrimSpace(in.Title) == "" {
		return apperr.InvalidArgument("title is required")
	}
	if in.ScheduledTime.Before(now) {
		return apperr.InvalidArgument("scheduled time must be in the future")
	}
	if time.Duration(in.Duration)*time.Second < minScheduleDuration {
		return apperr.InvalidArgument("duration must be at least 60 seconds")
	}

	switch in.ActivityType {
	case models.ActivityQuiz:
		if in.QuizID == "" {
			return apperr.InvalidArgument("quizId is required for quiz activities")
		}
	case models.ActivityGame:
		if in.GameType == "" {
			return apperr.InvalidArgument("gameType is required for game activities")
		}
	case models.ActivityPuzzle:
		if in.PuzzleID == "" {
			return apperr.InvalidArgument("puzzleId is required for puzzle activities")
		}
	default:
		return apperr.InvalidArgument("activityType must be quiz, game, or puzzle")
	}
	return nil
}

func (in *ScheduleInput) toSchedule() models.Schedule {
	return models.Schedule{
		ID:            uuid.New().String(),
		ActivityType:  in.ActivityType,
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		ScheduledTime: in.ScheduledTime,
		Duration:      in.Duration,
		QuizID:        in.QuizID,
		GameType:      in.GameType,
		PuzzleID:      in.PuzzleID,
	}
}

// AddSchedule plans an activity for a child
func (s *ScheduleService) AddSchedule(parentID, childID string, in ScheduleInput) (*models.Schedule, error) {
	if err := in.validate(s.now()); err != nil {
		return nil, err
	}

	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}

	child.Schedules = append(child.Schedules, in.toSchedule())
	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return &child.Schedules[len(child.Schedules)-1], nil
}

// ListSchedules returns all of a child's schedules, earliest first
func (s *ScheduleService) ListSchedules(parentID, childID string) ([]models.Schedule, error) {
	_, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	return sortedByTime(child.Schedules), nil
}

// ListParentSchedules returns every schedule across a parent's children,
// earliest first.
func (s *ScheduleService) ListParentSchedules(parentID string) ([]models.Schedule, error) {
	parent, err := s.store.GetParentByID(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}
	if parent == nil {
		return nil, apperr.NotFound("parent", parentID)
	}

	var all []models.Schedule
	for i := range parent.Children {
		all = append(all, parent.Children[i].Schedules...)
	}
	return sortedByTime(all), nil
}

// ListAvailable returns schedules whose time has passed but are not done
func (s *ScheduleService) ListAvailable(parentID, childID string) ([]models.Schedule, error) {
	return s.filtered(parentID, childID, func(sc *models.Schedule) bool {
		return sc.Available(s.now())
	})
}

// ListUpcoming returns schedules still in the future
func (s *ScheduleService) ListUpcoming(parentID, childID string) ([]models.Schedule, error) {
	return s.filtered(parentID, childID, func(sc *models.Schedule) bool {
		return sc.Upcoming(s.now())
	})
}

// ListCompleted returns completed schedules, most recently completed first
func (s *ScheduleService) ListCompleted(parentID, childID string) ([]models.Schedule, error) {
	out, err := s.filtered(parentID, childID, func(sc *models.Schedule) bool {
		return sc.IsCompleted
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].CompletedAt, out[j].CompletedAt
		if ti == nil || tj == nil {
			return tj == nil && ti != nil
		}
		return ti.After(*tj)
	})
	return out, nil
}

// GetSchedule returns a single schedule
func (s *ScheduleService) GetSchedule(parentID, childID, scheduleID string) (*models.Schedule, error) {
	_, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	sched := child.FindSchedule(scheduleID)
	if sched == nil {
		return nil, apperr.NotFound("schedule", scheduleID)
	}
	return sched, nil
}

// ScheduleUpdate carries optional schedule changes
type ScheduleUpdate struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	ScheduledTime *time.Time `json:"scheduledTime"`
	Duration      *int       `json:"duration"`
}

// UpdateSchedule applies a partial update to a schedule
func (s *ScheduleService) UpdateSchedule(parentID, childID, scheduleID string, update ScheduleUpdate) (*models.Schedule, error) {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	sched := child.FindSchedule(scheduleID)
	if sched == nil {
		return nil, apperr.NotFound("schedule", scheduleID)
	}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, apperr.InvalidArgument("title is required")
		}
		sched.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		sched.Description = *update.Description
	}
	if update.ScheduledTime != nil {
		sched.ScheduledTime = *update.ScheduledTime
	}
	if update.Duration != nil {
		if time.Duration(*update.Duration)*time.Second < minScheduleDuration {
			return nil, apperr.InvalidArgument("duration must be at least 60 seconds")
		}
		sched.Duration = *update.Duration
	}

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return sched, nil
}

// CompleteSchedule marks a schedule as done, recording an optional score
// and time spent
func (s *ScheduleService) CompleteSchedule(parentID, childID, scheduleID string, score, timeSpent *int) (*models.Schedule, error) {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	sched := child.FindSchedule(scheduleID)
	if sched == nil {
		return nil, apperr.NotFound("schedule", scheduleID)
	}

	now := s.now()
	sched.IsCompleted = true
	sched.CompletedAt = &now
	if score != nil {
		sched.Score = score
	}
	if timeSpent != nil {
		sched.TimeSpent = timeSpent
	}

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return sched, nil
}

// DeleteSchedule removes a schedule from a child
func (s *ScheduleService) DeleteSchedule(parentID, childID, scheduleID string) error {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return err
	}

	idx := -1
	for i := range child.Schedules {
		if child.Schedules[i].ID == scheduleID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperr.NotFound("schedule", scheduleID)
	}

	child.Schedules = append(child.Schedules[:idx], child.Schedules[idx+1:]...)
	if err := s.store.SaveParent(parent); err != nil {
		return fmt.Errorf("failed to save parent: %w", err)
	}
	return nil
}

// SyncSchedules replaces a child's schedules wholesale, the bulk path the
// mobile app uses after offline edits.
func (s *ScheduleService) SyncSchedules(parentID, childID string, inputs []ScheduleInput) ([]models.Schedule, error) {
	now := s.now()
	for i := range inputs {
		if err := inputs[i].validate(now); err != nil {
			return nil, err
		}
	}

	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}

	child.Schedules = make([]models.Schedule, 0, len(inputs))
	for i := range inputs {
		child.Schedules = append(child.Schedules, inputs[i].toSchedule())
	}

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return child.Schedules, nil
}

// ScheduleStats summarizes a child's planned activity
type ScheduleStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Available      int     `json:"available"`
	Upcoming       int     `json:"upcoming"`
	CompletionRate float64 `json:"completionRate"` // percent
	AverageScore   float64 `json:"averageScore"`   // over scored completions
}

// GetStats aggregates schedule counts and scores for a child
func (s *ScheduleService) GetStats(parentID, childID string) (*ScheduleStats, error) {
	_, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &ScheduleStats{Total: len(child.Schedules)}

	scoreSum, scored := 0, 0
	for i := range child.Schedules {
		sc := &child.Schedules[i]
		switch {
		case sc.IsCompleted:
			stats.Completed++
			if sc.Score != nil {
				scoreSum += *sc.Score
				scored++
			}
		case sc.Available(now):
			stats.Available++
		default:
			stats.Upcoming++
		}
	}

	if stats.Total > 0 {
		stats.CompletionRate = math.Round(float64(stats.Completed)/float64(stats.Total)*10000) / 100
	}
	if scored > 0 {
		stats.AverageScore = float64(scoreSum) / float64(scored)
	}
	return stats, nil
}

func (s *ScheduleService) filtered(parentID, childID string, keep func(*models.Schedule) bool) ([]models.Schedule, error) {
	_, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}

	var out []models.Schedule
	for i := range child.Schedules {
		if keep(&child.Schedules[i]) {
			out = append(out, child.Schedules[i])
		}
	}
	return sortedByTime(out), nil
}

// sortedByTime returns a copy ordered by scheduled time ascending
func sortedByTime(schedules []models.Schedule) []models.Schedule {
	out := make([]models.Schedule, len(schedules))
	copy(out, schedules)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledTime.Before(out[j].ScheduledTime)
	})
	return out
}
