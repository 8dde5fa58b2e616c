package models

// Quiz is an embedded quiz owned by a child. A quiz is submitted at most
// once: IsAnswered flips on the first submission and Score is set then.
type Quiz struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Type       string     `json:"type"`
	Questions  []Question `json:"questions"`
	IsAnswered bool       `json:"isAnswered"`
	Score      int        `json:"score"`
}

// Question is a single multiple-choice question. UserAnswerIndex is nil
// until the quiz is submitted, then permanently recorded; answered
// questions double as the training signal for retry-mode generation.
type Question struct {
	ID                 string   `json:"id"`
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	UserAnswerIndex    *int     `json:"userAnswerIndex,omitempty"`
	Explanation        string   `json:"explanation,omitempty"`
	Type               string   `json:"type"`
	Level              string   `json:"level"`
}

// Answered reports whether the question has a recorded user answer.
func (q *Question) Answered() bool {
	return q.UserAnswerIndex != nil
}

// AnsweredWrong reports whether the recorded answer differs from the key.
func (q *Question) AnsweredWrong() bool {
	return q.UserAnswerIndex != nil && *q.UserAnswerIndex != q.CorrectAnswerIndex
}
