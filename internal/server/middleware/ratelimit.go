package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/summary-gateway/pkg/api"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// clientIdleTTL is how long a client's bucket survives without requests.
const clientIdleTTL = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP and forgets clients that
// have been idle for clientIdleTTL.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	rps       rate.Limit
	burst     int
	logger    *zap.Logger
	now       func() time.Time
	lastSweep time.Time
}

func NewRateLimiter(rps float64, burst int, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		clients:   make(map[string]*client),
		rps:       rate.Limit(rps),
		burst:     burst,
		logger:    logger,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

// reserve takes a token for ip. A zero delay means the request may proceed.
func (rl *RateLimiter) reserve(ip string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= clientIdleTTL {
		rl.sweep(now)
	}

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now

	r := c.limiter.ReserveN(now, 1)
	if !r.OK() {
		return clientIdleTTL
	}
	delay := r.DelayFrom(now)
	if delay > 0 {
		// rejected requests must not consume future tokens
		r.CancelAt(now)
	}
	return delay
}

// sweep drops idle clients. Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for ip, c := range rl.clients {
		if now.Sub(c.lastSeen) >= clientIdleTTL {
			delete(rl.clients, ip)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		delay := rl.reserve(ip)
		if delay > 0 {
			retryAfter := int(math.Ceil(delay.Seconds()))
			rl.logger.Warn("Rate limit exceeded",
				zap.String("ip", ip),
				zap.String("path", c.Request.URL.Path),
				zap.Int("retry_after", retryAfter),
			)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.NewError(
				http.StatusTooManyRequests,
				"Too Many Requests",
				"rate limit exceeded, retry in "+strconv.Itoa(retryAfter)+"s",
			))
			return
		}

		c.Next()
	}
}
