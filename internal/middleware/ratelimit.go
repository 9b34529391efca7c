package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/agrisight/agrisight-backend/internal/logger"
)

// RateLimiter keeps a token-bucket limiter per client IP. Idle buckets age
// out of the cache so the map cannot grow unbounded.
type RateLimiter struct {
	log      *logger.Logger
	limiters *gocache.Cache
	rps      rate.Limit
	burst    int
}

func NewRateLimiter(log *logger.Logger, rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		log:      log.With("middleware", "RateLimiter"),
		limiters: gocache.New(10*time.Minute, 15*time.Minute),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	if v, ok := rl.limiters.Get(key); ok {
		if limiter, ok := v.(*rate.Limiter); ok {
			return limiter
		}
	}
	limiter := rate.NewLimiter(rl.rps, rl.burst)
	rl.limiters.SetDefault(key, limiter)
	return limiter
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			rl.log.Warn("Rate limit exceeded", "client_ip", c.ClientIP(), "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
