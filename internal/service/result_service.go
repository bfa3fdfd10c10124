package service

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"quizhub/internal/models"
)

// ResultStore is the slice of the results collection this service needs.
type ResultStore interface {
	Create(ctx context.Context, result *models.Result) error
	FindByUser(ctx context.Context, userID string) ([]models.Result, error)
	FindTopByQuiz(ctx context.Context, quizID string, limit int) ([]models.Result, error)
}

// AttemptCounter increments a quiz's attempt counter atomically.
type AttemptCounter interface {
	IncrementAttempts(ctx context.Context, id string) error
}

// LeaderboardCache is an optional read-through cache for leaderboards.
type LeaderboardCache interface {
	Get(ctx context.Context, quizID string) ([]models.Result, bool)
	Set(ctx context.Context, quizID string, results []models.Result)
	Invalidate(ctx context.Context, quizID string)
}

const DefaultLeaderboardLimit = 10

// maxLeaderboardLimit caps requests and sizes the cached snapshot. The
// cache is keyed by quiz only, so the snapshot must hold enough rows to
// serve any limit a later caller asks for.
const maxLeaderboardLimit = 100

type ResultService struct {
	Store   ResultStore
	Quizzes AttemptCounter
	cache   LeaderboardCache
}

func NewResultService(store ResultStore, quizzes AttemptCounter, cache LeaderboardCache) *ResultService {
	return &ResultService{Store: store, Quizzes: quizzes, cache: cache}
}

// SaveQuizResult persists a scored attempt on a stored quiz and bumps the
// quiz's totalAttempts counter.
func (s *ResultService) SaveQuizResult(ctx context.Context, result *models.Result) error {
	result.CompletedAt = time.Now()
	if err := s.Store.Create(ctx, result); err != nil {
		return err
	}
	if err := s.Quizzes.IncrementAttempts(ctx, result.QuizID); err != nil {
		// The result is already saved; a lost counter bump is not worth
		// failing the submission over.
		log.Printf("Failed to increment attempts for quiz %s: %v", result.QuizID, err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, result.QuizID)
	}
	return nil
}

// SaveExternalResult persists a client-scored result for a trivia-API quiz.
// Such quizzes have no quiz document, so the result carries the sentinel
// quiz id and no attempt counter is touched.
func (s *ResultService) SaveExternalResult(ctx context.Context, result *models.Result) error {
	result.QuizID = models.ExternalQuizID
	result.IsExternal = true
	result.CompletedAt = time.Now()
	return s.Store.Create(ctx, result)
}

func (s *ResultService) ResultsByUser(ctx context.Context, userID string) ([]models.Result, error) {
	return s.Store.FindByUser(ctx, userID)
}

// UserStats derives attempt count, mean and best score from a user's
// results. All zeroes when the user has no attempts.
func (s *ResultService) UserStats(ctx context.Context, userID string) (models.UserStats, error) {
	results, err := s.Store.FindByUser(ctx, userID)
	if err != nil {
		return models.UserStats{}, err
	}
	return ComputeStats(results), nil
}

func (s *ResultService) Leaderboard(ctx context.Context, quizID string, limit int) ([]models.Result, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, quizID); ok {
			return RankResults(cached, limit), nil
		}
	}
	results, err := s.Store.FindTopByQuiz(ctx, quizID, maxLeaderboardLimit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, quizID, results)
	}
	return RankResults(results, limit), nil
}

// RankResults orders leaderboard rows by score descending, faster
// completion breaking ties, and trims to limit. The store already sorts
// this way; re-ranking here keeps cached slices honest too.
func RankResults(results []models.Result, limit int) []models.Result {
	ranked := make([]models.Result, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].TimeTaken < ranked[j].TimeTaken
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// ComputeStats aggregates scores without touching storage.
func ComputeStats(results []models.Result) models.UserStats {
	stats := models.UserStats{AttemptCount: len(results)}
	if len(results) == 0 {
		return stats
	}
	sum := 0
	for _, r := range results {
		sum += r.Score
		if r.Score > stats.BestScore {
			stats.BestScore = r.Score
		}
	}
	stats.AverageScore = int(math.Round(float64(sum) / float64(len(results))))
	return stats
}
