package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/investlens/internal/domain/dto"
	"golang.org/x/time/rate"
)

// Defaults used by RateLimiter: 60 requests per minute per client IP.
var (
	window = time.Minute
	limit  = 60
)

// client is one rate-limited caller.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is an in-memory middleware limiting requests per client IP
// using the package defaults.
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{"message": "rate limit exceeded", ...}
func RateLimiter() gin.HandlerFunc {
	return NewRateLimiter(limit, window)
}

// NewRateLimiter allows n requests per per window for every client IP, as a
// token bucket refilled evenly over the window. Clients idle for three
// windows are forgotten.
//
// NOTE: state is per process; multi-instance deployments need a shared store.
func NewRateLimiter(n int, per time.Duration) gin.HandlerFunc {
	if n < 1 {
		n = 1
	}
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
		every   = rate.Every(per / time.Duration(n))
		lastGC  = time.Now()
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.Sub(lastGC) > per {
			for k, cl := range clients {
				if now.Sub(cl.lastSeen) > 3*per {
					delete(clients, k)
				}
			}
			lastGC = now
		}
		cl, ok := clients[ip]
		if !ok {
			cl = &client{limiter: rate.NewLimiter(every, n)}
			clients[ip] = cl
		}
		cl.lastSeen = now
		allowed := cl.limiter.AllowN(now, 1)
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}

		c.Next()
	}
}
