package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"kidquest/internal/ai"
	"kidquest/internal/apperr"
	"kidquest/internal/models"
	"kidquest/internal/progression"
	"kidquest/internal/quest"
	"kidquest/internal/validation"
)

// maxRetrySamples caps how many previously missed questions are included
// in a retry-mode generation prompt.
const maxRetrySamples = 5

// QuizService handles quiz generation, grading, and question management
type QuizService struct {
	store        ParentStore
	provider     ai.Provider
	numQuestions int
}

// NewQuizService creates a new quiz service
func NewQuizService(store ParentStore, provider ai.Provider, numQuestions int) *QuizService {
	if numQuestions <= 0 {
		numQuestions = 5
	}
	return &QuizService{
		store:        store,
		provider:     provider,
		numQuestions: numQuestions,
	}
}

// GenerateQuizRequest describes a quiz generation call. When Topic is
// empty the request runs in retry mode: topic and difficulty are derived
// from the child's previously missed questions.
type GenerateQuizRequest struct {
	Topic        string `json:"topic"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"numQuestions"`
}

// generatedQuestion is the shape each question takes in model output.
type generatedQuestion struct {
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

type generatedQuiz struct {
	Title     string              `json:"title"`
	Questions []generatedQuestion `json:"questions"`
}

// GenerateQuiz creates a new quiz for a child via the content generator
// and appends it to the child's quiz list.
func (s *QuizService) GenerateQuiz(ctx context.Context, parentID, childID string, req GenerateQuizRequest) (*models.Quiz, error) {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}

	topic := strings.TrimSpace(req.Topic)
	difficulty := strings.TrimSpace(req.Difficulty)
	var samples []models.Question

	if topic == "" {
		// Retry mode: revisit what the child got wrong most often.
		topic, difficulty, samples, err = selectRetryFocus(child)
		if err != nil {
			return nil, err
		}
	} else if err := validation.ValidateQuizTopic(topic); err != nil {
		return nil, apperr.InvalidArgument(err.Error())
	}

	count := req.NumQuestions
	if count <= 0 {
		count = s.numQuestions
	}

	resp, err := s.provider.Generate(ctx, ai.Request{
		System:      generationSystemPrompt(child),
		Prompt:      generationPrompt(topic, difficulty, count, samples),
		Schema:      quizSchema(),
		MaxTokens:   4096,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, mapProviderError(err)
	}

	var generated generatedQuiz
	if err := json.Unmarshal(resp.Content, &generated); err != nil {
		return nil, apperr.GenerationFailed(fmt.Errorf("unmarshal quiz: %w", err))
	}
	if len(generated.Questions) == 0 {
		return nil, apperr.GenerationFailed(fmt.Errorf("generator returned no questions"))
	}

	quiz := models.Quiz{
		ID:    uuid.New().String(),
		Title: generated.Title,
		Type:  topic,
	}
	if quiz.Title == "" {
		quiz.Title = topic
	}
	for _, g := range generated.Questions {
		if g.CorrectAnswerIndex < 0 || g.CorrectAnswerIndex >= len(g.Options) {
			return nil, apperr.GenerationFailed(fmt.Errorf("correct answer index %d out of range", g.CorrectAnswerIndex))
		}
		quiz.Questions = append(quiz.Questions, models.Question{
			ID:                 uuid.New().String(),
			QuestionText:       g.QuestionText,
			Options:            g.Options,
			CorrectAnswerIndex: g.CorrectAnswerIndex,
			Explanation:        g.Explanation,
			Type:               topic,
			Level:              difficulty,
		})
	}

	child.Quizzes = append(child.Quizzes, quiz)
	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return &child.Quizzes[len(child.Quizzes)-1], nil
}

// ListQuizzes returns all quizzes for a child
func (s *QuizService) ListQuizzes(parentID, childID string) ([]models.Quiz, error) {
	_, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	return child.Quizzes, nil
}

// GetQuiz returns a single quiz
func (s *QuizService) GetQuiz(parentID, childID, quizID string) (*models.Quiz, error) {
	_, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	quiz := child.FindQuiz(quizID)
	if quiz == nil {
		return nil, apperr.NotFound("quiz", quizID)
	}
	return quiz, nil
}

// QuizUpdate carries optional quiz metadata changes
type QuizUpdate struct {
	Title *string `json:"title"`
	Type  *string `json:"type"`
}

// UpdateQuiz applies a partial update to quiz metadata
func (s *QuizService) UpdateQuiz(parentID, childID, quizID string, update QuizUpdate) (*models.Quiz, error) {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	quiz := child.FindQuiz(quizID)
	if quiz == nil {
		return nil, apperr.NotFound("quiz", quizID)
	}

	if update.Title != nil {
		quiz.Title = *update.Title
	}
	if update.Type != nil {
		quiz.Type = *update.Type
	}

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return quiz, nil
}

// DeleteQuiz removes a quiz from a child
func (s *QuizService) DeleteQuiz(parentID, childID, quizID string) error {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return err
	}

	idx := -1
	for i := range child.Quizzes {
		if child.Quizzes[i].ID == quizID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperr.NotFound("quiz", quizID)
	}

	child.Quizzes = append(child.Quizzes[:idx], child.Quizzes[idx+1:]...)
	if err := s.store.SaveParent(parent); err != nil {
		return fmt.Errorf("failed to save parent: %w", err)
	}
	return nil
}

// SubmitQuiz grades a quiz submission. Answers are recorded write-once,
// the score is credited to the child, and the resulting event is applied
// to every active quest before the aggregate is saved in one write.
// Returns the whole updated child.
func (s *QuizService) SubmitQuiz(parentID, childID, quizID string, answers []int) (*models.Child, error) {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	quiz := child.FindQuiz(quizID)
	if quiz == nil {
		return nil, apperr.NotFound("quiz", quizID)
	}
	if quiz.IsAnswered {
		return nil, apperr.InvalidState("quiz already submitted")
	}
	if len(quiz.Questions) == 0 {
		return nil, apperr.InvalidState("quiz has no questions")
	}
	if len(answers) != len(quiz.Questions) {
		return nil, apperr.InvalidArgument(fmt.Sprintf(
			"expected %d answers, got %d", len(quiz.Questions), len(answers)))
	}
	for i, a := range answers {
		if a < 0 || a >= len(quiz.Questions[i].Options) {
			return nil, apperr.InvalidArgument(fmt.Sprintf(
				"answer %d out of range for question %d", a, i))
		}
	}

	score := gradeQuiz(quiz, answers)

	child.CurrentScore += score
	child.LifetimeScore += score
	child.ProgressionLevel = progression.Level(child.LifetimeScore)

	quest.ApplyEvent(child.Quests, quest.Event{
		QuizCompleted: true,
		PointsEarned:  score,
		PerfectScore:  score == 100,
	})

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return child, nil
}

// gradeQuiz records the answers on the quiz and returns the integer
// percentage score.
func gradeQuiz(quiz *models.Quiz, answers []int) int {
	correct := 0
	for i := range quiz.Questions {
		a := answers[i]
		quiz.Questions[i].UserAnswerIndex = &a
		if a == quiz.Questions[i].CorrectAnswerIndex {
			correct++
		}
	}

	score := int(math.Round(float64(correct) / float64(len(quiz.Questions)) * 100))
	quiz.IsAnswered = true
	quiz.Score = score
	return score
}

// QuestionInput carries the fields for creating or replacing a question
type QuestionInput struct {
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
	Type               string   `json:"type"`
	Level              string   `json:"level"`
}

func (in QuestionInput) validate() error {
	if strings.TrimSpace(in.QuestionText) == "" {
		return apperr.InvalidArgument("questionText is required")
	}
	if len(in.Options) < 2 {
		return apperr.InvalidArgument("at least two options are required")
	}
	if in.CorrectAnswerIndex < 0 || in.CorrectAnswerIndex >= len(in.Options) {
		return apperr.InvalidArgument("correctAnswerIndex out of range")
	}
	return nil
}

// AddQuestion appends a question to an unanswered quiz
func (s *QuizService) AddQuestion(parentID, childID, quizID string, in QuestionInput) (*models.Question, error) {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	quiz := child.FindQuiz(quizID)
	if quiz == nil {
		return nil, apperr.NotFound("quiz", quizID)
	}
	if quiz.IsAnswered {
		return nil, apperr.InvalidState("cannot modify a submitted quiz")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	quiz.Questions = append(quiz.Questions, models.Question{
		ID:                 uuid.New().String(),
		QuestionText:       in.QuestionText,
		Options:            in.Options,
		CorrectAnswerIndex: in.CorrectAnswerIndex,
		Explanation:        in.Explanation,
		Type:               in.Type,
		Level:              in.Level,
	})

	if err := s.store.SaveParent(parent); err != nil {
		return nil, fmt.Errorf("failed to save parent: %w", err)
	}
	return &quiz.Questions[len(quiz.Questions)-1], nil
}

// UpdateQuestion replaces a question's content on an unanswered quiz
func (s *QuizService) UpdateQuestion(parentID, childID, quizID, questionID string, in QuestionInput) (*models.Question, error) {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return nil, err
	}
	quiz := child.FindQuiz(quizID)
	if quiz == nil {
		return nil, apperr.NotFound("quiz", quizID)
	}
	if quiz.IsAnswered {
		return nil, apperr.InvalidState("cannot modify a submitted quiz")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	for i := range quiz.Questions {
		if quiz.Questions[i].ID == questionID {
			q := &quiz.Questions[i]
			q.QuestionText = in.QuestionText
			q.Options = in.Options
			q.CorrectAnswerIndex = in.CorrectAnswerIndex
			q.Explanation = in.Explanation
			q.Type = in.Type
			q.Level = in.Level

			if err := s.store.SaveParent(parent); err != nil {
				return nil, fmt.Errorf("failed to save parent: %w", err)
			}
			return q, nil
		}
	}
	return nil, apperr.NotFound("question", questionID)
}

// DeleteQuestion removes a question from an unanswered quiz
func (s *QuizService) DeleteQuestion(parentID, childID, quizID, questionID string) error {
	parent, child, err := loadChild(s.store, parentID, childID)
	if err != nil {
		return err
	}
	quiz := child.FindQuiz(quizID)
	if quiz == nil {
		return apperr.NotFound("quiz", quizID)
	}
	if quiz.IsAnswered {
		return apperr.InvalidState("cannot modify a submitted quiz")
	}

	idx := -1
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == questionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperr.NotFound("question", questionID)
	}

	quiz.Questions = append(quiz.Questions[:idx], quiz.Questions[idx+1:]...)
	if err := s.store.SaveParent(parent); err != nil {
		return fmt.Errorf("failed to save parent: %w", err)
	}
	return nil
}


// selectRetryFocus picks the topic and difficulty a retry quiz should
// target: the most frequent type and level among every question the child
// answered incorrectly, with ties broken by first encounter. Up to
// maxRetrySamples missed questions are returned, in their original order,
// as few-shot examples for the generator.
func selectRetryFocus(child *models.Child) (topic, difficulty string, samples []models.Question, err error) {
	wrong := collectIncorrect(child)
	if len(wrong) == 0 {
		return "", "", nil, apperr.NotFound("incorrectly answered questions", child.ID)
	}

	types := make([]string, len(wrong))
	levels := make([]string, len(wrong))
	for i, q := range wrong {
		types[i] = q.Type
		levels[i] = q.Level
	}

	topic = mostFrequent(types)
	difficulty = mostFrequent(levels)

	samples = wrong
	if len(samples) > maxRetrySamples {
		samples = samples[:maxRetrySamples]
	}
	return topic, difficulty, samples, nil
}

// collectIncorrect gathers every question the child answered wrong, in
// quiz order then question order.
func collectIncorrect(child *models.Child) []models.Question {
	var wrong []models.Question
	for i := range child.Quizzes {
		for j := range child.Quizzes[i].Questions {
			q := &child.Quizzes[i].Questions[j]
			if q.AnsweredWrong() {
				wrong = append(wrong, *q)
			}
		}
	}
	return wrong
}

// mostFrequent returns the most common value in order of first encounter,
// so earlier values win ties.
func mostFrequent(values []string) string {
	counts := make(map[string]int)
	best := ""
	bestCount := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

func generationSystemPrompt(child *models.Child) string {
	return fmt.Sprintf(
		"You write multiple-choice quiz questions for a %d year old child. "+
			"Questions must be age-appropriate, encouraging, and factually correct. "+
			"Each question has exactly 4 options and one correct answer.", child.Age)
}

func generationPrompt(topic, difficulty string, count int, samples []models.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d multiple-choice questions about %q", count, topic)
	if difficulty != "" {
		fmt.Fprintf(&b, " at %q difficulty", difficulty)
	}
	b.WriteString(".")

	if len(samples) > 0 {
		b.WriteString("\n\nThe child previously answered these questions incorrectly. " +
			"Write new questions that practice the same ideas without repeating them verbatim:\n")
		for _, q := range samples {
			fmt.Fprintf(&b, "- %s (correct: %s)\n", q.QuestionText, q.Options[q.CorrectAnswerIndex])
		}
	}
	return b.String()
}

func quizSchema() *ai.Schema {
	return &ai.Schema{
		Name: "quiz-questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"questionText":       map[string]any{"type": "string"},
							"options":            map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							"correctAnswerIndex": map[string]any{"type": "integer"},
							"explanation":        map[string]any{"type": "string"},
						},
						"required": []any{"questionText", "options", "correctAnswerIndex"},
					},
				},
			},
			"required": []any{"title", "questions"},
		},
	}
}

// mapProviderError converts generator errors into application errors
func mapProviderError(err error) error {
	var invalid *ai.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return apperr.GenerationFailed(err)
	}
	var rateLimit *ai.ErrRateLimit
	var unavailable *ai.ErrUnavailable
	if errors.As(err, &rateLimit) || errors.As(err, &unavailable) {
		return apperr.Unavailable(err)
	}
	return apperr.Internal(err)
}
