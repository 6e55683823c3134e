package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yigit/placementhub/internal/app/models/dto"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

// NewRateLimiter allows rps requests per second per IP with the given burst
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		visitors: map[string]*visitor{},
		limit:    rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

// Allow reports whether ip may make another request now
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Sweep forgets visitors idle for longer than the idle TTL and returns how many went
func (l *RateLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	cutoff := l.now().Add(-l.idleTTL)
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed
}

// Middleware rejects requests over the limit with 429
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeTooManyRequests, "Too many requests, please try again later").
				WithSeverity(dto.ErrorSeverityWarning)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}
