package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemoryCache(opts QuestionCacheOptions) (*memoryQuestionCache, *time.Time) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	cache := NewMemoryQuestionCache(opts).(*memoryQuestionCache)
	cache.now = func() time.Time { return now }
	return cache, &now
}

func TestQuestionCacheKey_Hash(t *testing.T) {
	key := QuestionCacheKey{DocumentID: "doc-1", JobType: "backend", Category: "tech", Level: "junior"}

	assert.Equal(t, "96333fdd0499ce8def7ec571d85e6f1e", key.Hash())

	other := key
	other.Level = "senior"
	assert.NotEqual(t, key.Hash(), other.Hash())
}

func TestMemoryQuestionCache(t *testing.T) {
	ctx := context.Background()
	key := QuestionCacheKey{DocumentID: "doc-1", JobType: "backend", Category: "tech", Level: "junior"}

	t.Run("returns questions in insertion order", func(t *testing.T) {
		cache, _ := newTestMemoryCache(QuestionCacheOptions{})

		require.NoError(t, cache.AddQuestion(ctx, key, "q1"))
		require.NoError(t, cache.AddQuestion(ctx, key, "q2"))

		got, err := cache.PreviousQuestions(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []string{"q1", "q2"}, got)
	})

	t.Run("unknown key is empty, not nil", func(t *testing.T) {
		cache, _ := newTestMemoryCache(QuestionCacheOptions{})

		got, err := cache.PreviousQuestions(ctx, key)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		cache, _ := newTestMemoryCache(QuestionCacheOptions{})
		require.NoError(t, cache.AddQuestion(ctx, key, "q1"))

		got, _ := cache.PreviousQuestions(ctx, key)
		got[0] = "changed"

		again, _ := cache.PreviousQuestions(ctx, key)
		assert.Equal(t, []string{"q1"}, again)
	})

	t.Run("keeps only the newest questions", func(t *testing.T) {
		cache, _ := newTestMemoryCache(QuestionCacheOptions{MaxQuestionsPerKey: 3})

		for i := 1; i <= 5; i++ {
			require.NoError(t, cache.AddQuestion(ctx, key, fmt.Sprintf("q%d", i)))
		}

		got, _ := cache.PreviousQuestions(ctx, key)
		assert.Equal(t, []string{"q3", "q4", "q5"}, got)
	})

	t.Run("expired entries disappear", func(t *testing.T) {
		cache, now := newTestMemoryCache(QuestionCacheOptions{TTL: time.Hour})
		require.NoError(t, cache.AddQuestion(ctx, key, "q1"))

		*now = now.Add(30 * time.Minute)
		require.NoError(t, cache.AddQuestion(ctx, key, "q2"))

		*now = now.Add(31 * time.Minute)
		got, err := cache.PreviousQuestions(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, got)

		stats, _ := cache.Stats(ctx)
		assert.Equal(t, 0, stats.TotalEntries)
	})

	t.Run("clear by document", func(t *testing.T) {
		cache, _ := newTestMemoryCache(QuestionCacheOptions{})
		senior := key
		senior.Level = "senior"
		otherDoc := key
		otherDoc.DocumentID = "doc-2"

		require.NoError(t, cache.AddQuestion(ctx, key, "q1"))
		require.NoError(t, cache.AddQuestion(ctx, senior, "q2"))
		require.NoError(t, cache.AddQuestion(ctx, otherDoc, "q3"))

		cleared, err := cache.ClearByDocument(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, 2, cleared)

		got, _ := cache.PreviousQuestions(ctx, otherDoc)
		assert.Equal(t, []string{"q3"}, got)
	})

	t.Run("cleanup removes only expired entries", func(t *testing.T) {
		cache, now := newTestMemoryCache(QuestionCacheOptions{TTL: time.Hour})
		fresh := key
		fresh.DocumentID = "doc-2"

		require.NoError(t, cache.AddQuestion(ctx, key, "old"))
		*now = now.Add(50 * time.Minute)
		require.NoError(t, cache.AddQuestion(ctx, fresh, "new"))
		*now = now.Add(20 * time.Minute)

		removed, err := cache.CleanupExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		stats, _ := cache.Stats(ctx)
		assert.Equal(t, 1, stats.TotalEntries)
		assert.Equal(t, 1, stats.TotalQuestions)
	})

	t.Run("stats report configuration", func(t *testing.T) {
		cache, _ := newTestMemoryCache(QuestionCacheOptions{})
		require.NoError(t, cache.AddQuestion(ctx, key, "q1"))
		require.NoError(t, cache.AddQuestion(ctx, key, "q2"))

		stats, err := cache.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, CacheStats{
			TotalEntries:         1,
			TotalQuestions:       2,
			TTLHours:             24,
			MaxQuestionsPerKey:   20,
			CleanupIntervalHours: 3,
			Backend:              "memory",
		}, stats)
	})
}

func TestNewQuestionCache_WithoutRedisURL(t *testing.T) {
	cache, err := NewQuestionCache(context.Background(), "", QuestionCacheOptions{})
	require.NoError(t, err)

	_, ok := cache.(*memoryQuestionCache)
	assert.True(t, ok)
}

func TestNewQuestionCache_InvalidRedisURL(t *testing.T) {
	_, err := NewQuestionCache(context.Background(), "not-a-redis-url", QuestionCacheOptions{})
	assert.Error(t, err)
}

func TestCacheJanitor_StartStop(t *testing.T) {
	cache, now := newTestMemoryCache(QuestionCacheOptions{TTL: time.Minute})
	ctx := context.Background()
	require.NoError(t, cache.AddQuestion(ctx, QuestionCacheKey{DocumentID: "d"}, "q"))

	cache.mu.Lock()
	*now = now.Add(2 * time.Minute)
	cache.mu.Unlock()

	janitor := NewCacheJanitor(cache, 10*time.Millisecond)
	janitor.Start(ctx)

	assert.Eventually(t, func() bool {
		stats, _ := cache.Stats(ctx)
		return stats.TotalEntries == 0
	}, time.Second, 10*time.Millisecond)

	janitor.Stop()
	janitor.Stop()
}
