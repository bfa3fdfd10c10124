package models

import "time"

// NoAnswerText is the literal stored in a question outcome when the user
// left the question unanswered.
const NoAnswerText = "No answer"

// QuestionOutcome records one question of a scored attempt by option text,
// so a result stays reviewable even if option ordering changes later.
type QuestionOutcome struct {
	Question      string `bson:"question" json:"question"`
	UserAnswer    string `bson:"userAnswer" json:"userAnswer"`
	CorrectAnswer string `bson:"correctAnswer" json:"correctAnswer"`
	IsCorrect     bool   `bson:"isCorrect" json:"isCorrect"`
}

type Result struct {
	ID             string            `bson:"_id,omitempty" json:"id"`
	UserID         string            `bson:"userId" json:"userId"`
	UserName       string            `bson:"userName" json:"userName"`
	QuizID         string            `bson:"quizId" json:"quizId"`
	QuizTitle      string            `bson:"quizTitle" json:"quizTitle"`
	Score          int               `bson:"score" json:"score"`
	CorrectAnswers int               `bson:"correctAnswers" json:"correctAnswers"`
	TotalQuestions int               `bson:"totalQuestions" json:"totalQuestions"`
	TimeTaken      int               `bson:"timeTaken" json:"timeTaken"` // seconds
	Outcomes       []QuestionOutcome `bson:"results" json:"results"`
	CompletedAt    time.Time         `bson:"completedAt" json:"completedAt"`
	IsExternal     bool              `bson:"isApiQuiz,omitempty" json:"isApiQuiz,omitempty"`
}

// UserStats is derived from a user's results, never stored.
type UserStats struct {
	AttemptCount int `json:"attemptCount"`
	AverageScore int `json:"averageScore"`
	BestScore    int `json:"bestScore"`
}
