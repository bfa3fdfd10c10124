// Package session drives a single quiz attempt: question navigation, answer
// capture and the countdown clock. An Attempt is an explicit value owned by
// its Session, so the engine is testable without any rendering surface.
package session

import (
	"errors"
	"sync"
	"time"

	"quizhub/internal/models"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
)

var (
	// ErrNotInProgress is returned for answer or navigation calls outside
	// the InProgress state.
	ErrNotInProgress = errors.New("session is not in progress")
	// ErrAlreadySubmitted is returned when submission is attempted on a
	// finished session. Callers treat it as a no-op.
	ErrAlreadySubmitted = errors.New("session already submitted")
	// ErrOptionOutOfRange is returned for an answer index outside the
	// question's options.
	ErrOptionOutOfRange = errors.New("option index out of range")
)

// Attempt is the session-local, ephemeral record of one pass through a
// quiz. It is consumed by scoring and then discarded, never persisted.
type Attempt struct {
	QuizID           string
	Answers          []int
	CurrentIndex     int
	RemainingSeconds int
	StartedAt        time.Time
}

// Outcome is the final snapshot handed to scoring when a session ends.
type Outcome struct {
	Attempt   Attempt
	TimeTaken int // wall-clock seconds from start to submission
	Forced    bool
}

// Session is safe for concurrent use; the countdown goroutine and the
// caller race only on the Submitted latch, which is entered exactly once.
type Session struct {
	mu       sync.Mutex
	quiz     models.Quiz
	attempt  Attempt
	status   Status
	stop     chan struct{}
	tick     time.Duration
	onExpire func(Outcome)
}

func New(quiz models.Quiz) *Session {
	return newWithTick(quiz, time.Second)
}

// newWithTick lets tests run the clock faster than real time.
func newWithTick(quiz models.Quiz, tick time.Duration) *Session {
	return &Session{
		quiz:   quiz,
		status: StatusNotStarted,
		tick:   tick,
	}
}

// Start moves the session into InProgress, sizes the answer slice to the
// question count and launches the countdown. onExpire fires exactly once if
// the clock reaches zero before a manual submission; it may be nil.
func (s *Session) Start(onExpire func(Outcome)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusNotStarted {
		return ErrNotInProgress
	}

	answers := make([]int, len(s.quiz.Questions))
	for i := range answers {
		answers[i] = models.Unanswered
	}
	s.attempt = Attempt{
		QuizID:           s.quiz.ID,
		Answers:          answers,
		CurrentIndex:     0,
		RemainingSeconds: s.quiz.TimeLimit,
		StartedAt:        time.Now(),
	}
	s.status = StatusInProgress
	s.onExpire = onExpire
	s.stop = make(chan struct{})
	go s.countdown(s.stop)
	return nil
}

func (s *Session) countdown(stop chan struct{}) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if s.decrement() {
				return
			}
		}
	}
}

// decrement ticks the clock down one second; on zero it forces submission
// and reports that the countdown is finished.
func (s *Session) decrement() bool {
	s.mu.Lock()
	if s.status != StatusInProgress {
		s.mu.Unlock()
		return true
	}
	s.attempt.RemainingSeconds--
	if s.attempt.RemainingSeconds > 0 {
		s.mu.Unlock()
		return false
	}
	s.attempt.RemainingSeconds = 0
	outcome, callback := s.finishLocked(true)
	s.mu.Unlock()
	if callback != nil {
		callback(outcome)
	}
	return true
}

// SelectAnswer records an option for the current question, overwriting any
// earlier choice. Last write per question wins.
func (s *Session) SelectAnswer(option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusInProgress {
		return ErrNotInProgress
	}
	if option < 0 || option >= len(s.quiz.Questions[s.attempt.CurrentIndex].Options) {
		return ErrOptionOutOfRange
	}
	s.attempt.Answers[s.attempt.CurrentIndex] = option
	return nil
}

// Next advances to the following question, clamped at the last one.
func (s *Session) Next() error { return s.navigate(1) }

// Prev moves back one question, clamped at the first one.
func (s *Session) Prev() error { return s.navigate(-1) }

func (s *Session) navigate(delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusInProgress {
		return ErrNotInProgress
	}
	next := s.attempt.CurrentIndex + delta
	if next < 0 {
		next = 0
	}
	if max := len(s.quiz.Questions) - 1; next > max {
		next = max
	}
	s.attempt.CurrentIndex = next
	return nil
}

// Current returns the index and question under the cursor.
func (s *Session) Current() (int, models.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt.CurrentIndex, s.quiz.Questions[s.attempt.CurrentIndex]
}

// Unanswered reports how many questions still have no selection, for the
// caller's confirmation prompt before a manual submit.
func (s *Session) Unanswered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, a := range s.attempt.Answers {
		if a == models.Unanswered {
			count++
		}
	}
	return count
}

// AnswerAt returns the recorded option for a question, or
// models.Unanswered when nothing has been selected.
func (s *Session) AnswerAt(index int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.attempt.Answers) {
		return models.Unanswered
	}
	return s.attempt.Answers[index]
}

// Remaining returns the seconds left on the clock.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt.RemainingSeconds
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Submit ends the session and returns the final attempt snapshot. A second
// call, or a call racing a timeout, returns ErrAlreadySubmitted: the
// Submitted state is a single-assignment latch, so exactly one outcome is
// ever produced.
func (s *Session) Submit() (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.status {
	case StatusSubmitted:
		return Outcome{}, ErrAlreadySubmitted
	case StatusNotStarted:
		return Outcome{}, ErrNotInProgress
	}
	outcome, _ := s.finishLocked(false)
	return outcome, nil
}

// Abandon cancels the countdown and seals the session without producing an
// outcome, for when the user navigates away mid-attempt.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusInProgress {
		return
	}
	s.status = StatusSubmitted
	close(s.stop)
	s.onExpire = nil
}

// finishLocked enters the terminal state and builds the outcome. The expiry
// callback is returned rather than invoked so it can run outside the lock.
// Elapsed time is a wall-clock delta from the session start, not derived
// from the remaining-time counter, to tolerate missed ticks.
func (s *Session) finishLocked(forced bool) (Outcome, func(Outcome)) {
	s.status = StatusSubmitted
	close(s.stop)

	snapshot := s.attempt
	snapshot.Answers = make([]int, len(s.attempt.Answers))
	copy(snapshot.Answers, s.attempt.Answers)

	outcome := Outcome{
		Attempt:   snapshot,
		TimeTaken: int(time.Since(s.attempt.StartedAt) / time.Second),
		Forced:    forced,
	}

	callback := s.onExpire
	s.onExpire = nil
	if !forced {
		callback = nil
	}
	return outcome, callback
}
