package service

import (
	"context"
	"fmt"
	"time"

	"quizhub/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// QuizStore is the slice of the quizzes collection this service needs.
type QuizStore interface {
	FindAll(ctx context.Context, category string) ([]models.Quiz, error)
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) error
}

type QuizService struct {
	Store QuizStore
}

func NewQuizService(store QuizStore) *QuizService {
	return &QuizService{Store: store}
}

func (s *QuizService) ListQuizzes(ctx context.Context, category string) ([]models.Quiz, error) {
	return s.Store.FindAll(ctx, category)
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	quiz, err := s.Store.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) CreateQuiz(ctx context.Context, quiz *models.Quiz, creatorID, creatorName string) error {
	if quiz.Category == "" {
		quiz.Category = "General"
	}
	if quiz.TimeLimit == 0 {
		quiz.TimeLimit = 600
	}
	if err := quiz.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	// Server-owned fields; anything the client sent for them is dropped.
	// A client-supplied id could collide with the external-result sentinel
	// and would never be reachable through the ObjectID lookup anyway.
	quiz.ID = ""
	quiz.IsExternal = false
	quiz.CreatedBy = creatorID
	quiz.CreatedByName = creatorName
	quiz.CreatedAt = time.Now()
	quiz.TotalAttempts = 0
	return s.Store.Create(ctx, quiz)
}
