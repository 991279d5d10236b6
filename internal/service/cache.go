package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"movie-recommendation-service/internal/metrics"
	"movie-recommendation-service/internal/models"
)

const (
	recommendationCacheTTL    = 10 * time.Minute
	recommendationCachePrefix = "recommendations:"
)

// cacheFlusher drops every cached ranking after a catalog write.
type cacheFlusher interface {
	flush(ctx context.Context)
}

// recommendationCache stores ranked results per user. A nil client turns
// every call into a no-op miss.
type recommendationCache struct {
	rdb *redis.Client
}

func (c recommendationCache) get(ctx context.Context, userID string) ([]models.MovieDetail, bool) {
	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, recommendationCachePrefix+userID).Bytes()
	if err != nil {
		metrics.CacheResult("recommendations", false)
		return nil, false
	}
	var movies []models.MovieDetail
	if err := json.Unmarshal(data, &movies); err != nil {
		metrics.CacheResult("recommendations", false)
		return nil, false
	}
	metrics.CacheResult("recommendations", true)
	return movies, true
}

func (c recommendationCache) set(ctx context.Context, userID string, movies []models.MovieDetail) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(movies)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, recommendationCachePrefix+userID, data, recommendationCacheTTL).Err(); err != nil {
		slog.Error("failed to set cache", "user_id", userID, "error", err)
	}
}

// forget drops one user's cached ranking.
func (c recommendationCache) forget(ctx context.Context, userID string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, recommendationCachePrefix+userID).Err(); err != nil {
		slog.Error("failed to delete cache", "user_id", userID, "error", err)
	}
}

// flush drops every cached ranking; used when the catalog changes.
func (c recommendationCache) flush(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, recommendationCachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Error("failed to invalidate recommendation cache", "error", err)
		return
	}
	slog.Debug("recommendation cache invalidated")
}
