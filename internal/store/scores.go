// internal/store/scores.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vendormatch-workers/internal/common/logger"
	"vendormatch-workers/internal/matching"
)

// ScoreCache memoizes computed match results in Redis. Scoring is
// deterministic for a given configuration version, so a cached entry stays
// valid until the request or vendor record changes or the configuration is
// rolled; keying on the version makes a config roll a natural cache bust.
type ScoreCache struct {
	redis  *redis.Client
	logger logger.Logger
	ttl    time.Duration
}

func NewScoreCache(redisClient *redis.Client, log logger.Logger, ttl time.Duration) *ScoreCache {
	return &ScoreCache{
		redis:  redisClient,
		logger: log.WithFields(map[string]interface{}{"component": "score_cache"}),
		ttl:    ttl,
	}
}

// Get returns the cached result for (request, vendor, config version), or
// false on a miss. Cache failures are logged and absorbed so a degraded
// Redis never blocks scoring.
func (c *ScoreCache) Get(ctx context.Context, requestID, vendorID, configVersion string) (*matching.MatchScoreResult, bool) {
	if c.redis == nil {
		return nil, false
	}

	cached, err := c.redis.Get(ctx, scoreCacheKey(requestID, vendorID, configVersion)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Score cache read failed", map[string]interface{}{
			"request_id": requestID,
			"vendor_id":  vendorID,
			"error":      err.Error(),
		})
		return nil, false
	}

	var result matching.MatchScoreResult
	if err := json.Unmarshal([]byte(cached), &result); err != nil {
		c.logger.Warn("Score cache entry malformed", map[string]interface{}{
			"request_id": requestID,
			"vendor_id":  vendorID,
			"error":      err.Error(),
		})
		return nil, false
	}
	return &result, true
}

// Put stores a computed result. Write failures are logged and absorbed.
func (c *ScoreCache) Put(ctx context.Context, requestID, vendorID, configVersion string, result *matching.MatchScoreResult) {
	if c.redis == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("Score cache encode failed", map[string]interface{}{
			"request_id": requestID,
			"vendor_id":  vendorID,
			"error":      err.Error(),
		})
		return
	}
	if err := c.redis.Set(ctx, scoreCacheKey(requestID, vendorID, configVersion), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Score cache write failed", map[string]interface{}{
			"request_id": requestID,
			"vendor_id":  vendorID,
			"error":      err.Error(),
		})
	}
}

func scoreCacheKey(requestID, vendorID, configVersion string) string {
	return fmt.Sprintf("match:score:%s:%s:%s", requestID, vendorID, configVersion)
}
