package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"quizhub/internal/models"
	"quizhub/internal/service"
)

type fakeQuizStore struct {
	quizzes []models.Quiz
}

func (f *fakeQuizStore) FindAll(_ context.Context, _ string) ([]models.Quiz, error) {
	return f.quizzes, nil
}

func (f *fakeQuizStore) FindByID(_ context.Context, id string) (*models.Quiz, error) {
	for i := range f.quizzes {
		if f.quizzes[i].ID == id {
			return &f.quizzes[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeQuizStore) Create(_ context.Context, _ *models.Quiz) error { return nil }

type fakeResultStore struct {
	created []models.Result
}

func (f *fakeResultStore) Create(_ context.Context, result *models.Result) error {
	f.created = append(f.created, *result)
	return nil
}

func (f *fakeResultStore) FindByUser(_ context.Context, _ string) ([]models.Result, error) {
	return nil, nil
}

func (f *fakeResultStore) FindTopByQuiz(_ context.Context, _ string, _ int) ([]models.Result, error) {
	return nil, nil
}

type fakeCounter struct {
	incremented []string
}

func (f *fakeCounter) IncrementAttempts(_ context.Context, id string) error {
	f.incremented = append(f.incremented, id)
	return nil
}

func submitFixture() (*gin.Engine, *fakeResultStore, *fakeCounter) {
	gin.SetMode(gin.TestMode)

	quizStore := &fakeQuizStore{quizzes: []models.Quiz{{
		ID:        "quiz-1",
		Title:     "Arithmetic",
		TimeLimit: 300,
		Questions: []models.Question{
			{Text: "What is 2+2?", Options: []string{"3", "4", "5", "6"}, CorrectIndex: 1},
			{Text: "What is 3*3?", Options: []string{"9", "6", "3", "12"}, CorrectIndex: 0},
		},
	}}}
	resultStore := &fakeResultStore{}
	counter := &fakeCounter{}

	handler := NewQuizHandler(
		service.NewQuizService(quizStore),
		service.NewResultService(resultStore, counter, nil),
	)

	r := gin.New()
	r.POST("/api/quizzes/:id/submit", func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Set("userName", "Alice")
		handler.SubmitQuiz(c)
	})
	return r, resultStore, counter
}

func postSubmit(r *gin.Engine, quizID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/quizzes/"+quizID+"/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type submitResponse struct {
	Score          int                      `json:"score"`
	CorrectAnswers int                      `json:"correctAnswers"`
	TotalQuestions int                      `json:"totalQuestions"`
	Results        []models.QuestionOutcome `json:"results"`
}

func TestSubmitQuizScoresAndSaves(t *testing.T) {
	r, resultStore, counter := submitFixture()

	w := postSubmit(r, "quiz-1", `{"answers":[1,0],"timeTaken":42}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp submitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Score != 100 || resp.CorrectAnswers != 2 || resp.TotalQuestions != 2 {
		t.Errorf("Expected 100%% with 2/2 correct, got %+v", resp)
	}

	if len(resultStore.created) != 1 {
		t.Fatalf("Expected 1 saved result, got %d", len(resultStore.created))
	}
	saved := resultStore.created[0]
	if saved.UserID != "user-1" || saved.UserName != "Alice" {
		t.Errorf("Expected result owned by user-1/Alice, got %q/%q", saved.UserID, saved.UserName)
	}
	if saved.QuizID != "quiz-1" || saved.QuizTitle != "Arithmetic" {
		t.Errorf("Expected result for quiz-1/Arithmetic, got %q/%q", saved.QuizID, saved.QuizTitle)
	}
	if saved.TimeTaken != 42 {
		t.Errorf("Expected timeTaken 42, got %d", saved.TimeTaken)
	}
	if saved.Score != 100 {
		t.Errorf("Expected saved score 100, got %d", saved.Score)
	}

	if len(counter.incremented) != 1 || counter.incremented[0] != "quiz-1" {
		t.Errorf("Expected attempt increment for quiz-1, got %v", counter.incremented)
	}
}

// A null entry on the wire means the question was never answered; it must
// grade as wrong with the "No answer" text, not as option zero.
func TestSubmitQuizNullAnswer(t *testing.T) {
	r, resultStore, _ := submitFixture()

	w := postSubmit(r, "quiz-1", `{"answers":[null,0],"timeTaken":10}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp submitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Score != 50 || resp.CorrectAnswers != 1 {
		t.Errorf("Expected 50%% with 1 correct, got %+v", resp)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("Expected 2 outcomes, got %d", len(resp.Results))
	}
	first := resp.Results[0]
	if first.UserAnswer != models.NoAnswerText {
		t.Errorf("Expected %q for the null answer, got %q", models.NoAnswerText, first.UserAnswer)
	}
	if first.IsCorrect {
		t.Error("Expected null answer to grade as wrong")
	}

	if resultStore.created[0].Outcomes[0].UserAnswer != models.NoAnswerText {
		t.Errorf("Expected stored outcome to carry %q, got %q", models.NoAnswerText, resultStore.created[0].Outcomes[0].UserAnswer)
	}
}

func TestSubmitQuizAnswerCountMismatch(t *testing.T) {
	r, resultStore, counter := submitFixture()

	w := postSubmit(r, "quiz-1", `{"answers":[1],"timeTaken":10}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
	}
	if len(resultStore.created) != 0 {
		t.Errorf("Expected no saved result, got %d", len(resultStore.created))
	}
	if len(counter.incremented) != 0 {
		t.Errorf("Expected no attempt increment, got %v", counter.incremented)
	}
}

func TestSubmitQuizUnknownQuiz(t *testing.T) {
	r, _, _ := submitFixture()

	w := postSubmit(r, "missing", `{"answers":[1,0],"timeTaken":10}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmitQuizMalformedBody(t *testing.T) {
	r, _, _ := submitFixture()

	w := postSubmit(r, "quiz-1", `{"answers":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}
