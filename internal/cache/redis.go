package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mshrynzw/auriary/pkg/model"
)

func NewRedisClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})
}

func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// AnalysisCache stores sentiment analysis results keyed by a hash of the note
// text, so re-analyzing an unchanged note skips the backend call. Best-effort:
// every method is a no-op on a nil cache and swallows redis errors.
type AnalysisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAnalysisCache(rdb *redis.Client, ttl time.Duration) *AnalysisCache {
	if rdb == nil {
		return nil
	}
	return &AnalysisCache{rdb: rdb, ttl: ttl}
}

func (c *AnalysisCache) Get(ctx context.Context, text string) (*model.SentimentResult, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, analysisKey(text)).Bytes()
	if err != nil {
		return nil, false
	}
	var result model.SentimentResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (c *AnalysisCache) Set(ctx context.Context, text string, result model.SentimentResult) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, analysisKey(text), raw, c.ttl)
}

func analysisKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "sentiment:" + hex.EncodeToString(sum[:])
}
