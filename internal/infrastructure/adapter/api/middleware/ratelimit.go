package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerr "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/api/dto"
)

// tokenBucketScript refills and consumes atomically so concurrent requests
// from the same client cannot overdraw the bucket.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_per_ms = tonumber(ARGV[3])
	local ttl_seconds = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	local elapsed = math.max(0, now_ms - last_refill)
	tokens = math.min(capacity, tokens + (elapsed * refill_per_ms))

	local allowed = 0
	local retry_after_ms = 0
	if tokens >= 1 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.ceil((1 - tokens) / refill_per_ms)
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', now_ms)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, retry_after_ms }
`)

// RateLimit returns a Redis token-bucket rate limiting middleware keyed by
// client IP and route. A nil client disables limiting.
func RateLimit(rdb *redis.Client, capacity int, refillRate float64, timeProvider coreport.TimeProvider, logger coreport.Logger) gin.HandlerFunc {
	if rdb == nil || capacity <= 0 || refillRate <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	refillPerMs := refillRate / 1000.0

	// Bucket state outlives any realistic refill gap
	ttlSeconds := int64(math.Ceil(float64(capacity)/refillRate)) * 2
	if ttlSeconds < 60 {
		ttlSeconds = 60
	}

	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()

		args := []any{
			timeProvider.Now().UnixMilli(),
			capacity,
			refillPerMs,
			ttlSeconds,
		}

		vals, err := tokenBucketScript.Run(c.Request.Context(), rdb, []string{key}, args...).Result()
		if err != nil {
			// Redis being down must not take bidding down with it
			logger.Warn("Rate limiter unavailable, allowing request", map[string]any{
				"error": err.Error(),
			})
			c.Next()
			return
		}

		arr, ok := vals.([]any)
		if !ok || len(arr) != 2 {
			logger.Warn("Unexpected rate limiter script result", map[string]any{
				"result": vals,
			})
			c.Next()
			return
		}

		allowed, _ := arr[0].(int64)
		retryMs, _ := arr[1].(int64)

		if allowed != 1 {
			secs := int(math.Ceil(float64(retryMs) / 1000.0))
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrRowLocked),
				Message: "Rate limit exceeded, retry later",
			})
			return
		}

		c.Next()
	}
}
