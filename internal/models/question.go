package models

import "fmt"

// OptionCount is fixed for every question; the web and terminal clients
// both render exactly four choices.
const OptionCount = 4

// Unanswered marks a question the user never selected an option for.
const Unanswered = -1

type Question struct {
	Text         string   `bson:"question" json:"question"`
	Options      []string `bson:"options" json:"options"`
	CorrectIndex int      `bson:"correctAnswer" json:"correctAnswer"`
}

func (q *Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("question text is required")
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question %q must have exactly %d options, got %d", q.Text, OptionCount, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= OptionCount {
		return fmt.Errorf("question %q has correct answer index %d out of range", q.Text, q.CorrectIndex)
	}
	return nil
}
