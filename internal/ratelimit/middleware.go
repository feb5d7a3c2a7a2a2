package ratelimit

import (
	"net/http"

	"github.com/digimanager/digimanager/internal/config"
	"github.com/digimanager/digimanager/internal/observability/metrics"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("ratelimit",
	fx.Provide(
		NewRedisClient,
		Provide,
	),
)

// NewRedisClient returns nil when no address is configured; the limiter
// then passes everything through.
func NewRedisClient(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
}

func Provide(cfg config.Config, client *redis.Client) *Limiter {
	if client == nil {
		return nil
	}
	return NewLimiter(client, cfg.RateLimitRate, cfg.RateLimitBurst)
}

// GinMiddleware limits by client IP. Errors talking to redis are logged
// and the request proceeds.
func GinMiddleware(limiter *Limiter, m *metrics.Metrics, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			m.RecordRateLimitDenied(c.Request.Context(), c.FullPath(), "bucket_empty")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"type":    "rate_limited",
					"message": "too many requests",
				},
			})
			return
		}

		m.RecordRateLimitAllowed(c.Request.Context(), c.FullPath())
		c.Next()
	}
}
