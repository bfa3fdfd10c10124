package models

import (
	"fmt"
	"time"
)

// ExternalQuizID is the sentinel quiz identifier stored on results of
// quizzes pulled from the trivia API; such quizzes have no quiz document.
const ExternalQuizID = "api-quiz"

type Quiz struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Title         string     `bson:"title" json:"title"`
	Description   string     `bson:"description" json:"description"`
	Category      string     `bson:"category" json:"category"`
	TimeLimit     int        `bson:"timeLimit" json:"timeLimit"` // seconds
	Questions     []Question `bson:"questions,omitempty" json:"questions,omitempty"`
	CreatedBy     string     `bson:"createdBy" json:"createdBy"`
	CreatedByName string     `bson:"createdByName" json:"createdByName"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	TotalAttempts int        `bson:"totalAttempts" json:"totalAttempts"`
	IsExternal    bool       `bson:"isApiQuiz,omitempty" json:"isApiQuiz,omitempty"`
}

func (q *Quiz) Validate() error {
	if q.Title == "" {
		return fmt.Errorf("quiz title is required")
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("quiz must have at least one question")
	}
	if q.TimeLimit <= 0 {
		return fmt.Errorf("quiz time limit must be positive, got %d", q.TimeLimit)
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}
