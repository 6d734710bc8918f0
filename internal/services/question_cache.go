package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log"
	"sync"
	"time"
)

// QuestionCacheKey identifies the set of questions already asked for one
// résumé under one job type, category and level.
type QuestionCacheKey struct {
	DocumentID string
	JobType    string
	Category   string
	Level      string
}

// Hash is the md5 of "document:job:category:level".
func (k QuestionCacheKey) Hash() string {
	sum := md5.Sum([]byte(k.DocumentID + ":" + k.JobType + ":" + k.Category + ":" + k.Level))
	return hex.EncodeToString(sum[:])
}

type CacheStats struct {
	TotalEntries         int     `json:"total_cache_entries"`
	TotalQuestions       int     `json:"total_cached_questions"`
	TTLHours             float64 `json:"ttl_hours"`
	MaxQuestionsPerKey   int     `json:"max_questions_per_key"`
	CleanupIntervalHours float64 `json:"cleanup_interval_hours"`
	Backend              string  `json:"backend"`
}

// QuestionCache remembers generated questions so the same résumé is not asked
// the same question twice.
type QuestionCache interface {
	PreviousQuestions(ctx context.Context, key QuestionCacheKey) ([]string, error)
	AddQuestion(ctx context.Context, key QuestionCacheKey, question string) error
	ClearByDocument(ctx context.Context, documentID string) (int, error)
	CleanupExpired(ctx context.Context) (int, error)
	Stats(ctx context.Context) (CacheStats, error)
}

type QuestionCacheOptions struct {
	TTL                time.Duration
	MaxQuestionsPerKey int
	CleanupInterval    time.Duration
}

func (o QuestionCacheOptions) withDefaults() QuestionCacheOptions {
	if o.TTL <= 0 {
		o.TTL = 24 * time.Hour
	}
	if o.MaxQuestionsPerKey <= 0 {
		o.MaxQuestionsPerKey = 20
	}
	if o.CleanupInterval <= 0 {
		o.CleanupInterval = 3 * time.Hour
	}
	return o
}

func (o QuestionCacheOptions) stats(backend string) CacheStats {
	return CacheStats{
		TTLHours:             o.TTL.Hours(),
		MaxQuestionsPerKey:   o.MaxQuestionsPerKey,
		CleanupIntervalHours: o.CleanupInterval.Hours(),
		Backend:              backend,
	}
}

// keepLast drops the oldest questions beyond max.
func keepLast(questions []string, max int) []string {
	if len(questions) <= max {
		return questions
	}
	return append([]string(nil), questions[len(questions)-max:]...)
}

type cacheEntry struct {
	Questions  []string  `json:"questions"`
	DocumentID string    `json:"document_id"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type memoryQuestionCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	opts    QuestionCacheOptions
	now     func() time.Time
}

func NewMemoryQuestionCache(opts QuestionCacheOptions) QuestionCache {
	return &memoryQuestionCache{
		entries: make(map[string]*cacheEntry),
		opts:    opts.withDefaults(),
		now:     time.Now,
	}
}

// PreviousQuestions implements QuestionCache.
func (c *memoryQuestionCache) PreviousQuestions(_ context.Context, key QuestionCacheKey) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hash := key.Hash()
	entry, ok := c.entries[hash]
	if !ok {
		return []string{}, nil
	}
	if c.now().After(entry.ExpiresAt) {
		delete(c.entries, hash)
		return []string{}, nil
	}

	return append([]string(nil), entry.Questions...), nil
}

// AddQuestion implements QuestionCache. The entry's expiry is fixed when it is
// first created; adding questions does not extend it.
func (c *memoryQuestionCache) AddQuestion(_ context.Context, key QuestionCacheKey, question string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	hash := key.Hash()
	entry, ok := c.entries[hash]
	if !ok || c.now().After(entry.ExpiresAt) {
		entry = &cacheEntry{
			DocumentID: key.DocumentID,
			ExpiresAt:  c.now().Add(c.opts.TTL),
		}
		c.entries[hash] = entry
	}

	entry.Questions = keepLast(append(entry.Questions, question), c.opts.MaxQuestionsPerKey)
	return nil
}

// ClearByDocument implements QuestionCache.
func (c *memoryQuestionCache) ClearByDocument(_ context.Context, documentID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cleared := 0
	for hash, entry := range c.entries {
		if entry.DocumentID == documentID {
			delete(c.entries, hash)
			cleared++
		}
	}
	return cleared, nil
}

// CleanupExpired implements QuestionCache.
func (c *memoryQuestionCache) CleanupExpired(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for hash, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, hash)
			removed++
		}
	}
	return removed, nil
}

// Stats implements QuestionCache.
func (c *memoryQuestionCache) Stats(_ context.Context) (CacheStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.opts.stats("memory")
	stats.TotalEntries = len(c.entries)
	for _, entry := range c.entries {
		stats.TotalQuestions += len(entry.Questions)
	}
	return stats, nil
}

// CacheJanitor periodically removes expired question cache entries.
type CacheJanitor interface {
	Start(ctx context.Context)
	Stop()
}

type cacheJanitor struct {
	cache    QuestionCache
	interval time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

func NewCacheJanitor(cache QuestionCache, interval time.Duration) CacheJanitor {
	if interval <= 0 {
		interval = 3 * time.Hour
	}
	return &cacheJanitor{
		cache:    cache,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start implements CacheJanitor.
func (j *cacheJanitor) Start(ctx context.Context) {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		log.Printf("🧹 Question cache cleanup started (every %s)\n", j.interval)

		for {
			select {
			case <-j.stopChan:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := j.cache.CleanupExpired(ctx)
				if err != nil {
					log.Printf("⚠️  Question cache cleanup failed: %v\n", err)
					continue
				}
				if removed > 0 {
					log.Printf("🧹 Removed %d expired question cache entries\n", removed)
				}
			}
		}
	}()
}

// Stop implements CacheJanitor.
func (j *cacheJanitor) Stop() {
	j.once.Do(func() {
		close(j.stopChan)
	})
	j.wg.Wait()
	log.Println("🛑 Question cache cleanup stopped")
}
