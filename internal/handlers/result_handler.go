package handlers

import (
	"net/http"
	"strconv"

	"quizhub/internal/models"
	"quizhub/internal/service"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	Service *service.ResultService
}

func NewResultHandler(s *service.ResultService) *ResultHandler {
	return &ResultHandler{Service: s}
}

type externalResultRequest struct {
	QuizTitle      string                   `json:"quizTitle"`
	Score          *int                     `json:"score"`
	CorrectAnswers int                      `json:"correctAnswers"`
	TotalQuestions int                      `json:"totalQuestions"`
	TimeTaken      int                      `json:"timeTaken"`
	Results        []models.QuestionOutcome `json:"results"`
}

// SaveExternalResult accepts a client-scored result for a trivia-API quiz.
// The answer key for those quizzes never leaves the client, so its score is
// taken at face value; this is the documented trust boundary.
func (h *ResultHandler) SaveExternalResult(c *gin.Context) {
	var req externalResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.QuizTitle == "" || req.Score == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quiz title and score are required"})
		return
	}

	result := &models.Result{
		UserID:         c.GetString("userID"),
		UserName:       c.GetString("userName"),
		QuizTitle:      req.QuizTitle,
		Score:          *req.Score,
		CorrectAnswers: req.CorrectAnswers,
		TotalQuestions: req.TotalQuestions,
		TimeTaken:      req.TimeTaken,
		Outcomes:       req.Results,
	}
	if err := h.Service.SaveExternalResult(c.Request.Context(), result); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "API quiz result saved successfully",
		"score":   *req.Score,
	})
}

func (h *ResultHandler) GetMyResults(c *gin.Context) {
	results, err := h.Service.ResultsByUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	if results == nil {
		results = []models.Result{}
	}
	c.JSON(http.StatusOK, results)
}

func (h *ResultHandler) GetMyStats(c *gin.Context) {
	stats, err := h.Service.UserStats(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ResultHandler) GetLeaderboard(c *gin.Context) {
	limit := service.DefaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	results, err := h.Service.Leaderboard(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if results == nil {
		results = []models.Result{}
	}
	c.JSON(http.StatusOK, results)
}
