package service

import (
	"time"

	"github.com/google/uuid"

	"kidquest/internal/models"
	"kidquest/internal/quest"
)

// fakeStore is an in-memory ParentStore for service tests.
type fakeStore struct {
	parents map[string]*models.Parent
	saves   int
	saveErr error
}

func newFakeStore(parents ...*models.Parent) *fakeStore {
	s := &fakeStore{parents: make(map[string]*models.Parent)}
	for _, p := range parents {
		s.parents[p.ID] = p
	}
	return s
}

func (s *fakeStore) CreateParent(parent *models.Parent) error {
	s.parents[parent.ID] = parent
	return nil
}

func (s *fakeStore) GetParentByID(parentID string) (*models.Parent, error) {
	return s.parents[parentID], nil
}

func (s *fakeStore) GetParentByEmail(email string) (*models.Parent, error) {
	for _, p := range s.parents {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetAllParents() ([]models.Parent, error) {
	var out []models.Parent
	for _, p := range s.parents {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeStore) SaveParent(parent *models.Parent) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.parents[parent.ID] = parent
	return nil
}

func (s *fakeStore) DeleteParent(parentID string) error {
	delete(s.parents, parentID)
	return nil
}

func (s *fakeStore) FindParentIDByChildID(childID string) (string, error) {
	for _, p := range s.parents {
		if p.FindChild(childID) != nil {
			return p.ID, nil
		}
	}
	return "", nil
}

// newTestParent creates a parent with one child carrying the initial
// quest set.
func newTestParent() (*models.Parent, *models.Child) {
	child := models.Child{
		ID:        uuid.New().String(),
		Name:      "Robin",
		Age:       8,
		Quests:    quest.InitialQuestSet(),
		CreatedAt: time.Now().UTC(),
	}
	parent := &models.Parent{
		ID:       uuid.New().String(),
		Name:     "Alex",
		Email:    "alex@example.com",
		Children: []models.Child{child},
		IsActive: true,
	}
	return parent, &parent.Children[0]
}

// addQuiz appends an unanswered quiz with the given correct answer key.
func addQuiz(child *models.Child, topic, level string, correct ...int) *models.Quiz {
	quiz := models.Quiz{
		ID:    uuid.New().String(),
		Title: topic,
		Type:  topic,
	}
	for _, c := range correct {
		quiz.Questions = append(quiz.Questions, models.Question{
			ID:                 uuid.New().String(),
			QuestionText:       "q",
			Options:            []string{"a", "b", "c", "d"},
			CorrectAnswerIndex: c,
			Type:               topic,
			Level:              level,
		})
	}
	child.Quizzes = append(child.Quizzes, quiz)
	return &child.Quizzes[len(child.Quizzes)-1]
}
