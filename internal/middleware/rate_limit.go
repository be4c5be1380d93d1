package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
)

const (
	limiterSweepThreshold = 10000
	limiterSweepInterval  = time.Minute
	limiterIdleTTL        = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters keeps one token bucket per client IP. Once the map holds
// sweepThreshold clients, idle ones are dropped at most once per sweepInterval.
type clientLimiters struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int

	sweepThreshold int
	sweepInterval  time.Duration
	idleTTL        time.Duration
	lastSweep      time.Time
}

func newClientLimiters(limit rate.Limit, burst int) *clientLimiters {
	return &clientLimiters{
		clients:        make(map[string]*clientLimiter),
		limit:          limit,
		burst:          burst,
		sweepThreshold: limiterSweepThreshold,
		sweepInterval:  limiterSweepInterval,
		idleTTL:        limiterIdleTTL,
	}
}

func (l *clientLimiters) get(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.clients) >= l.sweepThreshold && now.Sub(l.lastSweep) >= l.sweepInterval {
		for key, client := range l.clients {
			if now.Sub(client.lastSeen) > l.idleTTL {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	client, ok := l.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter
}

// RateLimit allows rps requests per second per client IP with the given burst.
// A non-positive rps disables limiting.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	if burst < 1 {
		burst = 1
	}

	limiters := newClientLimiters(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP(), time.Now()).Allow() {
			apierrors.TooManyRequests(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}
