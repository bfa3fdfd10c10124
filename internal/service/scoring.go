package service

import (
	"math"

	"quizhub/internal/models"
)

// Summary is the outcome of scoring one attempt against a question set.
type Summary struct {
	Score          int                      `json:"score"`
	CorrectAnswers int                      `json:"correctAnswers"`
	TotalQuestions int                      `json:"totalQuestions"`
	Outcomes       []models.QuestionOutcome `json:"results"`
}

// Score grades answers against the authoritative question set. It is a pure
// function: the same grading runs server-side for stored quizzes and inside
// the terminal player for trivia quizzes, whose answer key is already on the
// client. Unanswered entries (models.Unanswered or out of range) never match.
func Score(answers []int, questions []models.Question) Summary {
	correct := 0
	outcomes := make([]models.QuestionOutcome, len(questions))
	for i, q := range questions {
		answer := models.Unanswered
		if i < len(answers) {
			answer = answers[i]
		}

		userText := models.NoAnswerText
		if answer >= 0 && answer < len(q.Options) {
			userText = q.Options[answer]
		}

		isCorrect := answer == q.CorrectIndex
		if isCorrect {
			correct++
		}
		outcomes[i] = models.QuestionOutcome{
			Question:      q.Text,
			UserAnswer:    userText,
			CorrectAnswer: q.Options[q.CorrectIndex],
			IsCorrect:     isCorrect,
		}
	}

	return Summary{
		Score:          percentage(correct, len(questions)),
		CorrectAnswers: correct,
		TotalQuestions: len(questions),
		Outcomes:       outcomes,
	}
}

// percentage rounds half-up, matching how scores are displayed.
func percentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
