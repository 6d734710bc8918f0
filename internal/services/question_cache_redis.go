package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisEntryPrefix    = "question_cache:entry:"
	redisDocumentPrefix = "question_cache:doc:"
	redisMaxTxRetries   = 5
)

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// redisQuestionCache keeps one JSON entry per key with a native redis TTL and
// a set per document listing its entry keys.
type redisQuestionCache struct {
	client *redis.Client
	opts   QuestionCacheOptions
}

func NewRedisQuestionCache(client *redis.Client, opts QuestionCacheOptions) QuestionCache {
	return &redisQuestionCache{
		client: client,
		opts:   opts.withDefaults(),
	}
}

// NewQuestionCache returns a redis-backed cache when redisURL is set and an
// in-memory one otherwise.
func NewQuestionCache(ctx context.Context, redisURL string, opts QuestionCacheOptions) (QuestionCache, error) {
	if redisURL == "" {
		return NewMemoryQuestionCache(opts), nil
	}

	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisQuestionCache(client, opts), nil
}

// PreviousQuestions implements QuestionCache.
func (c *redisQuestionCache) PreviousQuestions(ctx context.Context, key QuestionCacheKey) ([]string, error) {
	entry, err := c.load(ctx, c.client, redisEntryPrefix+key.Hash())
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return []string{}, nil
	}
	return entry.Questions, nil
}

// AddQuestion implements QuestionCache.
func (c *redisQuestionCache) AddQuestion(ctx context.Context, key QuestionCacheKey, question string) error {
	entryKey := redisEntryPrefix + key.Hash()
	docKey := redisDocumentPrefix + key.DocumentID

	txf := func(tx *redis.Tx) error {
		entry, err := c.load(ctx, tx, entryKey)
		if err != nil {
			return err
		}

		expiration := c.opts.TTL
		if entry == nil {
			entry = &cacheEntry{
				DocumentID: key.DocumentID,
				ExpiresAt:  time.Now().Add(c.opts.TTL),
			}
		} else {
			expiration = redis.KeepTTL
		}
		entry.Questions = keepLast(append(entry.Questions, question), c.opts.MaxQuestionsPerKey)

		payload, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to encode cache entry: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, entryKey, payload, expiration)
			pipe.SAdd(ctx, docKey, entryKey)
			return nil
		})
		return err
	}

	for i := 0; i < redisMaxTxRetries; i++ {
		err := c.client.Watch(ctx, txf, entryKey)
		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return fmt.Errorf("failed to add question to cache: %w", err)
		}
	}

	return fmt.Errorf("failed to add question to cache: too many concurrent updates")
}

// ClearByDocument implements QuestionCache.
func (c *redisQuestionCache) ClearByDocument(ctx context.Context, documentID string) (int, error) {
	docKey := redisDocumentPrefix + documentID

	keys, err := c.client.SMembers(ctx, docKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list document cache keys: %w", err)
	}

	cleared := 0
	if len(keys) > 0 {
		n, err := c.client.Del(ctx, keys...).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to clear document cache: %w", err)
		}
		cleared = int(n)
	}

	if err := c.client.Del(ctx, docKey).Err(); err != nil {
		return cleared, fmt.Errorf("failed to clear document index: %w", err)
	}

	return cleared, nil
}

// CleanupExpired implements QuestionCache. Redis expires the entries itself;
// this prunes document index members whose entry is gone.
func (c *redisQuestionCache) CleanupExpired(ctx context.Context) (int, error) {
	pruned := 0
	iter := c.client.Scan(ctx, 0, redisDocumentPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		docKey := iter.Val()
		members, err := c.client.SMembers(ctx, docKey).Result()
		if err != nil {
			return pruned, fmt.Errorf("failed to read document index: %w", err)
		}

		for _, member := range members {
			exists, err := c.client.Exists(ctx, member).Result()
			if err != nil {
				return pruned, fmt.Errorf("failed to check cache entry: %w", err)
			}
			if exists == 0 {
				if err := c.client.SRem(ctx, docKey, member).Err(); err != nil {
					return pruned, fmt.Errorf("failed to prune document index: %w", err)
				}
				pruned++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return pruned, fmt.Errorf("failed to scan document indexes: %w", err)
	}

	return pruned, nil
}

// Stats implements QuestionCache.
func (c *redisQuestionCache) Stats(ctx context.Context) (CacheStats, error) {
	stats := c.opts.stats("redis")

	iter := c.client.Scan(ctx, 0, redisEntryPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		entry, err := c.load(ctx, c.client, iter.Val())
		if err != nil {
			return stats, err
		}
		if entry == nil {
			continue
		}
		stats.TotalEntries++
		stats.TotalQuestions += len(entry.Questions)
	}
	if err := iter.Err(); err != nil {
		return stats, fmt.Errorf("failed to scan cache entries: %w", err)
	}

	return stats, nil
}

func (c *redisQuestionCache) load(ctx context.Context, cmd redisGetter, key string) (*cacheEntry, error) {
	raw, err := cmd.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return &entry, nil
}
