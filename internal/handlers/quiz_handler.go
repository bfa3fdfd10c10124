package handlers

import (
	"net/http"

	"quizhub/internal/models"
	"quizhub/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service *service.QuizService
	Results *service.ResultService
}

func NewQuizHandler(s *service.QuizService, results *service.ResultService) *QuizHandler {
	return &QuizHandler{Service: s, Results: results}
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.Service.ListQuizzes(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	if quizzes == nil {
		quizzes = []models.Quiz{}
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.Service.GetQuiz(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var quiz models.Quiz
	if err := c.ShouldBindJSON(&quiz); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.Service.CreateQuiz(c.Request.Context(), &quiz, c.GetString("userID"), c.GetString("userName"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Quiz created successfully",
		"quizId":  quiz.ID,
	})
}

type submitRequest struct {
	// Entries are null for questions the user never answered.
	Answers   []*int `json:"answers"`
	TimeTaken int    `json:"timeTaken"`
}

// SubmitQuiz scores an attempt against the stored answer key. Scoring for
// stored quizzes always happens here: a client-computed score could be
// forged, since clients never see the key for quizzes they browse.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.Service.GetQuiz(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(req.Answers) != len(quiz.Questions) {
		respondError(c, service.ErrAnswerCountMismatch)
		return
	}

	answers := make([]int, len(req.Answers))
	for i, a := range req.Answers {
		if a == nil {
			answers[i] = models.Unanswered
		} else {
			answers[i] = *a
		}
	}

	summary := service.Score(answers, quiz.Questions)
	result := &models.Result{
		UserID:         c.GetString("userID"),
		UserName:       c.GetString("userName"),
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		Score:          summary.Score,
		CorrectAnswers: summary.CorrectAnswers,
		TotalQuestions: summary.TotalQuestions,
		TimeTaken:      req.TimeTaken,
		Outcomes:       summary.Outcomes,
	}
	if err := h.Results.SaveQuizResult(c.Request.Context(), result); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"score":          summary.Score,
		"correctAnswers": summary.CorrectAnswers,
		"totalQuestions": summary.TotalQuestions,
		"results":        summary.Outcomes,
	})
}
