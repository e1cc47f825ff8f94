package middelware

import (
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const defaultRequestsPerMinute = 120

// idleLimiterTTL drops a client's bucket after this long without requests.
// A bucket refills completely within a minute, so a dropped one is
// indistinguishable from the fresh one that replaces it.
const idleLimiterTTL = 2 * time.Minute

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	perMinute int
	logger    logger.Logger

	mu       sync.Mutex
	limiters *gocache.Cache
}

// NewRateLimiter creates a limiter allowing cfg.RateLimitRequestsPerMinute
// requests per client, with the same burst
func NewRateLimiter(cfg *models.Config, log logger.Logger) *RateLimiter {
	return newRateLimiter(cfg.RateLimitRequestsPerMinute, idleLimiterTTL, log)
}

func newRateLimiter(perMinute int, idle time.Duration, log logger.Logger) *RateLimiter {
	if perMinute <= 0 {
		perMinute = defaultRequestsPerMinute
	}
	return &RateLimiter{
		perMinute: perMinute,
		logger:    log,
		limiters:  gocache.New(idle, idle),
	}
}

// limiter returns the client's bucket and pushes back its idle expiry
func (r *RateLimiter) limiter(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	var l *rate.Limiter
	if v, ok := r.limiters.Get(ip); ok {
		l = v.(*rate.Limiter)
	} else {
		l = rate.NewLimiter(rate.Every(time.Minute/time.Duration(r.perMinute)), r.perMinute)
	}
	r.limiters.SetDefault(ip, l)
	return l
}

// Limit rejects requests over the per-client budget with 429
func (r *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !r.limiter(ip).Allow() {
			r.logger.Warnf("Rate limit exceeded for %s", ip)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse(
				http.StatusTooManyRequests, "Rate limit exceeded. Try again later.", "RateLimitError", "",
			))
			return
		}
		c.Next()
	}
}
