package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"kidquest/internal/ai"
	"kidquest/internal/apperr"
	"kidquest/internal/models"
)

// ReportService produces written progress reviews over a child's quiz
// history via the content generator.
type ReportService struct {
	store    ParentStore
	provider ai.Provider
	email    *EmailService
}

// NewReportService creates a new report service
func NewReportService(store ParentStore, provider ai.Provider, email *EmailService) *ReportService {
	return &ReportService{
		store:    store,
		provider: provider,
		email:    email,
	}
}

// Review is a generated progress summary for one child
type Review struct {
	ChildID    string   `json:"childId"`
	ChildName  string   `json:"childName"`
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	FocusAreas []string `json:"focusAreas"`
}

type generatedReview struct {
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	FocusAreas []string `json:"focusAreas"`
}

// GenerateReview writes an activity review over the child's answered
// quizzes and, when email is configured, mails it to the parent.
func (s *ReportService) GenerateReview(ctx context.Context, parentID, childID string) (*Review, error) {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}

	answered := answeredQuizzes(child)
	if len(answered) == 0 {
		return nil, apperr.InvalidState("no answered quizzes to review yet")
	}

	resp, err := s.provider.Generate(ctx, ai.Request{
		System: "You write short, encouraging progress reviews of a child's quiz activity " +
			"for their parent. Be specific about what went well and what to practice next. " +
			"Never be discouraging.",
		Prompt:      reviewPrompt(child, answered),
		Schema:      reviewSchema(),
		MaxTokens:   1024,
		Temperature: 0.5,
	})
	if err != nil {
		return nil, mapProviderError(err)
	}

	var generated generatedReview
	if err := json.Unmarshal(resp.Content, &generated); err != nil {
		return nil, apperr.GenerationFailed(fmt.Errorf("unmarshal review: %w", err))
	}

	review := &Review{
		ChildID:    child.ID,
		ChildName:  child.Name,
		Summary:    generated.Summary,
		Strengths:  generated.Strengths,
		FocusAreas: generated.FocusAreas,
	}

	// The review is the response payload; a failed email should not fail it.
	if err := s.email.SendProgressReportEmail(ctx, parent.Email, parent.Name, child.Name, review.Summary); err != nil {
		log.Printf("Failed to send progress report to %s: %v", parent.Email, err)
	}

	return review, nil
}

func answeredQuizzes(child *models.Child) []models.Quiz {
	var answered []models.Quiz
	for _, q := range child.Quizzes {
		if q.IsAnswered {
			answered = append(answered, q)
		}
	}
	return answered
}

func reviewPrompt(child *models.Child, quizzes []models.Quiz) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is %d years old, at progression level %d with a lifetime score of %d.\n",
		child.Name, child.Age, child.ProgressionLevel, child.LifetimeScore)
	fmt.Fprintf(&b, "Completed quizzes:\n")
	for _, q := range quizzes {
		wrong := 0
		for _, question := range q.Questions {
			if question.AnsweredWrong() {
				wrong++
			}
		}
		fmt.Fprintf(&b, "- %q (%s): scored %d%%, missed %d of %d questions\n",
			q.Title, q.Type, q.Score, wrong, len(q.Questions))
	}
	b.WriteString("\nWrite the review for the parent.")
	return b.String()
}

func reviewSchema() *ai.Schema {
	return &ai.Schema{
		Name: "progress-review",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary":    map[string]any{"type": "string"},
				"strengths":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"focusAreas": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []any{"summary", "strengths", "focusAreas"},
		},
	}
}
