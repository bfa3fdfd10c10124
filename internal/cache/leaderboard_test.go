package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"quizhub/internal/models"
)

func newTestCache(t *testing.T) (*LeaderboardCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewLeaderboardCache(mr.Addr(), "", time.Minute)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestLeaderboardCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "quiz-1"); ok {
		t.Fatal("Expected miss on empty cache")
	}

	rows := []models.Result{
		{UserName: "alice", Score: 90, TimeTaken: 40},
		{UserName: "bob", Score: 80, TimeTaken: 35},
	}
	c.Set(ctx, "quiz-1", rows)

	got, ok := c.Get(ctx, "quiz-1")
	if !ok {
		t.Fatal("Expected hit after Set")
	}
	if len(got) != 2 || got[0].UserName != "alice" || got[1].Score != 80 {
		t.Errorf("Unexpected cached rows %v", got)
	}

	if _, ok := c.Get(ctx, "quiz-2"); ok {
		t.Error("Expected miss for a different quiz")
	}
}

func TestLeaderboardCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "quiz-1", []models.Result{{UserName: "alice", Score: 90}})
	c.Invalidate(ctx, "quiz-1")

	if _, ok := c.Get(ctx, "quiz-1"); ok {
		t.Error("Expected miss after Invalidate")
	}
}

func TestLeaderboardCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "quiz-1", []models.Result{{UserName: "alice", Score: 90}})
	mr.FastForward(2 * time.Minute)

	if _, ok := c.Get(ctx, "quiz-1"); ok {
		t.Error("Expected entry to expire after the TTL")
	}
}
