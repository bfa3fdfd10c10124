package trivia

import (
	"fmt"
	"html"
	"math/rand"
	"strings"
	"time"

	"quizhub/internal/models"
)

// secondsPerQuestion sizes the time limit of a generated quiz.
const secondsPerQuestion = 60

// BuildQuiz normalizes raw trivia items into a playable quiz. The quiz is
// marked externally-sourced: it is never persisted and its results carry
// the sentinel quiz id.
func BuildQuiz(raw []RawQuestion, category, difficulty string) models.Quiz {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	questions := BuildQuestions(raw, rng)

	diffLabel := "Mixed"
	if difficulty != "" && difficulty != "any" {
		diffLabel = strings.ToUpper(difficulty[:1]) + difficulty[1:]
	}
	name := CategoryName(category)
	return models.Quiz{
		ID:          models.ExternalQuizID,
		Title:       name + " Quiz",
		Description: fmt.Sprintf("%d questions - %s difficulty", len(questions), diffLabel),
		Category:    name,
		TimeLimit:   len(questions) * secondsPerQuestion,
		Questions:   questions,
		IsExternal:  true,
	}
}

// BuildQuestions decodes and shuffles each raw item with the given source
// of randomness.
func BuildQuestions(raw []RawQuestion, rng *rand.Rand) []models.Question {
	questions := make([]models.Question, 0, len(raw))
	for _, r := range raw {
		questions = append(questions, normalize(r, rng))
	}
	return questions
}

// normalize decodes HTML entities and applies an unbiased Fisher-Yates
// shuffle to the four options. The correct option is tracked by position
// through the swaps: recovering it by text search would be ambiguous when
// the correct and an incorrect answer decode to the same string.
func normalize(r RawQuestion, rng *rand.Rand) models.Question {
	options := make([]string, 0, len(r.IncorrectAnswers)+1)
	options = append(options, html.UnescapeString(r.CorrectAnswer))
	for _, a := range r.IncorrectAnswers {
		options = append(options, html.UnescapeString(a))
	}

	correct := 0
	for i := len(options) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		options[i], options[j] = options[j], options[i]
		switch correct {
		case i:
			correct = j
		case j:
			correct = i
		}
	}

	return models.Question{
		Text:         html.UnescapeString(r.Question),
		Options:      options,
		CorrectIndex: correct,
	}
}

var categoryNames = map[string]string{
	"any": "General Knowledge",
	"9":   "General Knowledge",
	"10":  "Books",
	"11":  "Film",
	"12":  "Music",
	"14":  "Television",
	"15":  "Video Games",
	"17":  "Science & Nature",
	"18":  "Computers",
	"19":  "Mathematics",
	"20":  "Mythology",
	"21":  "Sports",
	"22":  "Geography",
	"23":  "History",
	"27":  "Animals",
}

// CategoryName maps an Open Trivia DB category id to a display name.
func CategoryName(id string) string {
	if name, ok := categoryNames[id]; ok {
		return name
	}
	return "General Knowledge"
}
