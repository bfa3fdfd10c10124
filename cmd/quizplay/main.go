// quizplay fetches a trivia quiz and runs it as a timed attempt in the
// terminal. Scoring happens locally (the answer key is already in hand for
// trivia quizzes) and the result is saved to a quizhub server when one is
// configured, best-effort.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"quizhub/internal/models"
	"quizhub/internal/service"
	"quizhub/internal/session"
	"quizhub/internal/trivia"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		amount     int
		category   string
		difficulty string
		server     string
		token      string
	)

	cmd := &cobra.Command{
		Use:   "quizplay",
		Short: "Play a timed trivia quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, amount, category, difficulty, server, token)
		},
	}
	cmd.Flags().IntVar(&amount, "amount", 10, "number of questions")
	cmd.Flags().StringVar(&category, "category", "any", "Open Trivia DB category id")
	cmd.Flags().StringVar(&difficulty, "difficulty", "any", "easy, medium or hard")
	cmd.Flags().StringVar(&server, "server", os.Getenv("QUIZHUB_SERVER"), "quizhub server base URL for saving the result")
	cmd.Flags().StringVar(&token, "token", os.Getenv("QUIZHUB_TOKEN"), "bearer token for the quizhub server")
	return cmd
}

func run(cmd *cobra.Command, amount int, category, difficulty, server, token string) error {
	raw, err := trivia.NewClient().Fetch(cmd.Context(), amount, category, difficulty)
	if err != nil {
		return err
	}
	quiz := trivia.BuildQuiz(raw, category, difficulty)

	fmt.Printf("%s\n%s\nTime limit: %s\n\n", quiz.Title, quiz.Description, formatTime(quiz.TimeLimit))

	mgr := session.NewManager()
	id, sess := mgr.Create(quiz)
	defer mgr.Remove(id)

	finished := make(chan session.Outcome, 1)
	if err := sess.Start(func(o session.Outcome) {
		fmt.Println("\nTime is up! Submitting your quiz...")
		finished <- o
	}); err != nil {
		return err
	}

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
		close(lines)
	}()

	outcome, played := play(sess, quiz, lines, finished)
	if !played {
		fmt.Println("Quiz abandoned.")
		return nil
	}

	summary := service.Score(outcome.Attempt.Answers, quiz.Questions)
	printSummary(summary, outcome.TimeTaken)
	saveResult(server, token, quiz, summary, outcome.TimeTaken)
	return nil
}

// play drives the interactive loop until the session ends, by submission,
// timeout or the user quitting.
func play(sess *session.Session, quiz models.Quiz, lines <-chan string, finished <-chan session.Outcome) (session.Outcome, bool) {
	for {
		printQuestion(sess, quiz)

		select {
		case o := <-finished:
			return o, true
		case line, ok := <-lines:
			if !ok {
				sess.Abandon()
				return session.Outcome{}, false
			}
			switch strings.ToLower(line) {
			case "a", "b", "c", "d":
				if err := sess.SelectAnswer(int(strings.ToLower(line)[0] - 'a')); err != nil {
					if o, drained := drainFinished(finished); drained {
						return o, true
					}
				}
			case "n":
				sess.Next()
			case "p":
				sess.Prev()
			case "s":
				if unanswered := sess.Unanswered(); unanswered > 0 {
					fmt.Printf("You have %d unanswered question(s). Submit anyway? (y/n): ", unanswered)
					confirm, o, ended := nextLine(lines, finished)
					if ended {
						return o, true
					}
					if strings.ToLower(confirm) != "y" {
						continue
					}
				}
				o, err := sess.Submit()
				if err != nil {
					// The clock beat us to it; take the forced outcome.
					if forced, drained := drainFinished(finished); drained {
						return forced, true
					}
					continue
				}
				return o, true
			case "q":
				sess.Abandon()
				return session.Outcome{}, false
			default:
				fmt.Println("Commands: a-d answer, n next, p previous, s submit, q quit")
			}
		}
	}
}

func nextLine(lines <-chan string, finished <-chan session.Outcome) (string, session.Outcome, bool) {
	select {
	case o := <-finished:
		return "", o, true
	case line, ok := <-lines:
		if !ok {
			return "", session.Outcome{}, false
		}
		return line, session.Outcome{}, false
	}
}

func drainFinished(finished <-chan session.Outcome) (session.Outcome, bool) {
	select {
	case o := <-finished:
		return o, true
	default:
		return session.Outcome{}, false
	}
}

func printQuestion(sess *session.Session, quiz models.Quiz) {
	idx, q := sess.Current()
	fmt.Printf("\n[%s left, %d unanswered] Question %d/%d\n%s\n",
		formatTime(sess.Remaining()), sess.Unanswered(), idx+1, len(quiz.Questions), q.Text)
	selected := sess.AnswerAt(idx)
	for i, opt := range q.Options {
		marker := " "
		if i == selected {
			marker = "*"
		}
		fmt.Printf(" %s %c. %s\n", marker, 'A'+i, opt)
	}
	fmt.Print("> ")
}

func printSummary(summary service.Summary, timeTaken int) {
	fmt.Printf("\nScore: %d%% (%d/%d correct) in %s\n\n",
		summary.Score, summary.CorrectAnswers, summary.TotalQuestions, formatTime(timeTaken))
	for i, o := range summary.Outcomes {
		mark := "✗"
		if o.IsCorrect {
			mark = "✓"
		}
		fmt.Printf("%s %d. %s\n   Your answer: %s\n", mark, i+1, o.Question, o.UserAnswer)
		if !o.IsCorrect {
			fmt.Printf("   Correct answer: %s\n", o.CorrectAnswer)
		}
	}
}

// saveResult posts the scored attempt to the server's save-api-quiz
// endpoint. Failures are reported but never hide the score the user just
// earned.
func saveResult(server, token string, quiz models.Quiz, summary service.Summary, timeTaken int) {
	if server == "" || token == "" {
		return
	}
	body, err := json.Marshal(map[string]any{
		"quizTitle":      quiz.Title,
		"score":          summary.Score,
		"correctAnswers": summary.CorrectAnswers,
		"totalQuestions": summary.TotalQuestions,
		"timeTaken":      timeTaken,
		"results":        summary.Outcomes,
	})
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, strings.TrimRight(server, "/")+"/api/results/save-api-quiz", bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Could not save result: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Could not save result: server returned %d\n", resp.StatusCode)
		return
	}
	fmt.Println("Result saved.")
}

func formatTime(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
