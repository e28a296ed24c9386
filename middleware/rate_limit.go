package middleware

import (
	"fmt"
	"strconv"
	"time"

	apperrors "github.com/feedbackhq/feedback-backend/errors"
	"github.com/feedbackhq/feedback-backend/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SubmissionRateLimiter limits feedback submissions per client IP using a
// Redis counter with a rolling window. A Redis outage fails open: the
// submission pipeline stays available without the limiter.
func SubmissionRateLimiter(redisClient *redis.Client, maxPerWindow int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		key := fmt.Sprintf("ratelimit:feedback:%s", ip)

		// Pipeline keeps INCR and EXPIRE atomic.
		pipe := redisClient.TxPipeline()
		incr := pipe.Incr(c.Request.Context(), key)
		pipe.Expire(c.Request.Context(), key, window)

		_, err := pipe.Exec(c.Request.Context())
		if err != nil {
			logger.GetLogger().Warnw("Rate limit check failed, allowing request",
				"error", err, "ip", ip)
			c.Next()
			return
		}

		if incr.Val() > int64(maxPerWindow) {
			retryAfter := int(window.Seconds())
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			_ = c.Error(apperrors.RateLimitExceeded(
				"Too many feedback submissions. Please try again later.", retryAfter))
			c.Abort()
			return
		}

		c.Next()
	}
}
