package middleware

import (
	"net/http"
	"sync"
	"time"

	"vales/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client ip. It guards the login
// endpoint against password guessing.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	entryTTL time.Duration
	stop     chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter allows perMinute requests per ip with the same burst.
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	rl := &IPRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		entryTTL: 10 * time.Minute,
		stop:     make(chan struct{}),
	}
	go rl.cleanupLoop(5 * time.Minute)
	return rl
}

func (rl *IPRateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (rl *IPRateLimiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for ip, e := range rl.limiters {
				if time.Since(e.lastSeen) > rl.entryTTL {
					delete(rl.limiters, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

func (rl *IPRateLimiter) Stop() {
	close(rl.stop)
}

func (rl *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			c.Header("Retry-After", "60")
			response.Abort(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many attempts, try again later")
			return
		}
		c.Next()
	}
}
