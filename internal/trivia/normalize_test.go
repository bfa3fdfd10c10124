package trivia

import (
	"math/rand"
	"testing"

	"quizhub/internal/models"
)

func TestNormalizeDecodesEntities(t *testing.T) {
	raw := RawQuestion{
		Question:         "Who wrote &quot;Hamlet&quot;?",
		CorrectAnswer:    "Shakespeare &amp; co",
		IncorrectAnswers: []string{"Marlowe", "Jonson", "Kyd"},
	}

	q := normalize(raw, rand.New(rand.NewSource(1)))
	if q.Text != `Who wrote "Hamlet"?` {
		t.Errorf("Expected decoded question text, got %q", q.Text)
	}
	if q.Options[q.CorrectIndex] != "Shakespeare & co" {
		t.Errorf("Expected decoded correct answer, got %q", q.Options[q.CorrectIndex])
	}
	if len(q.Options) != models.OptionCount {
		t.Errorf("Expected %d options, got %d", models.OptionCount, len(q.Options))
	}
}

func TestNormalizeTracksCorrectThroughShuffle(t *testing.T) {
	raw := RawQuestion{
		Question:         "Pick the right one",
		CorrectAnswer:    "right",
		IncorrectAnswers: []string{"wrong a", "wrong b", "wrong c"},
	}

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 1000; trial++ {
		q := normalize(raw, rng)
		if q.Options[q.CorrectIndex] != "right" {
			t.Fatalf("Trial %d: correct index %d points at %q", trial, q.CorrectIndex, q.Options[q.CorrectIndex])
		}
	}
}

// A text search for the correct answer breaks down when an incorrect option
// decodes to the same string; position tracking must not.
func TestNormalizeWithDuplicateAnswerText(t *testing.T) {
	raw := RawQuestion{
		Question:         "Tricky",
		CorrectAnswer:    "42",
		IncorrectAnswers: []string{"42", "43", "44"},
	}

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 1000; trial++ {
		q := normalize(raw, rng)
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			t.Fatalf("Trial %d: correct index %d out of range", trial, q.CorrectIndex)
		}
		if q.Options[q.CorrectIndex] != "42" {
			t.Fatalf("Trial %d: correct index points at %q", trial, q.Options[q.CorrectIndex])
		}
	}
}

func TestNormalizeShuffleIsUnbiased(t *testing.T) {
	raw := RawQuestion{
		Question:         "q",
		CorrectAnswer:    "right",
		IncorrectAnswers: []string{"a", "b", "c"},
	}

	const trials = 4000
	counts := make([]int, models.OptionCount)
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < trials; i++ {
		q := normalize(raw, rng)
		counts[q.CorrectIndex]++
	}

	// Each slot expects trials/4 = 1000 hits; far outside that means the
	// shuffle is biased toward or away from a position.
	for i, c := range counts {
		if c < 800 || c > 1200 {
			t.Errorf("Position %d hit %d times out of %d, expected ~%d", i, c, trials, trials/models.OptionCount)
		}
	}
}

func TestBuildQuiz(t *testing.T) {
	raw := []RawQuestion{
		{Question: "q1", CorrectAnswer: "a", IncorrectAnswers: []string{"b", "c", "d"}},
		{Question: "q2", CorrectAnswer: "a", IncorrectAnswers: []string{"b", "c", "d"}},
	}

	quiz := BuildQuiz(raw, "22", "hard")
	if quiz.ID != models.ExternalQuizID {
		t.Errorf("Expected sentinel quiz id %q, got %q", models.ExternalQuizID, quiz.ID)
	}
	if !quiz.IsExternal {
		t.Error("Expected quiz to be flagged external")
	}
	if quiz.Title != "Geography Quiz" {
		t.Errorf("Expected title %q, got %q", "Geography Quiz", quiz.Title)
	}
	if quiz.TimeLimit != 2*secondsPerQuestion {
		t.Errorf("Expected time limit %d, got %d", 2*secondsPerQuestion, quiz.TimeLimit)
	}
	if len(quiz.Questions) != 2 {
		t.Errorf("Expected 2 questions, got %d", len(quiz.Questions))
	}
	if quiz.Description != "2 questions - Hard difficulty" {
		t.Errorf("Unexpected description %q", quiz.Description)
	}
}

func TestCategoryName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"22", "Geography"},
		{"18", "Computers"},
		{"any", "General Knowledge"},
		{"999", "General Knowledge"},
	}
	for _, tt := range tests {
		if got := CategoryName(tt.id); got != tt.want {
			t.Errorf("CategoryName(%q): expected %q, got %q", tt.id, tt.want, got)
		}
	}
}
