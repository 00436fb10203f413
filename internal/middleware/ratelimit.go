package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultLimiterIdleTTL is how long an idle client's bucket is kept.
const DefaultLimiterIdleTTL = 10 * time.Minute

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// IPRateLimiter limits requests per client IP using a token bucket per IP.
// Buckets idle for longer than idleTTL are evicted.
type IPRateLimiter struct {
	mu        sync.Mutex
	ips       map[string]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time

	// now is overridden in tests.
	now func() time.Time
}

// NewIPRateLimiter creates a per-IP rate limiter. limit is events per second;
// for N per minute use rate.Limit(float64(N)/60.0). burst is max tokens per bucket.
func NewIPRateLimiter(limit rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:     make(map[string]*visitor),
		limit:   limit,
		burst:   burst,
		idleTTL: DefaultLimiterIdleTTL,
		now:     time.Now,
	}
}

func (l *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		for k, v := range l.ips {
			if now.Sub(v.seen) >= l.idleTTL {
				delete(l.ips, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.ips[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.limit, l.burst)}
		l.ips[ip] = v
	}
	v.seen = now
	return v.lim
}

// size reports how many client buckets are held.
func (l *IPRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ips)
}

// clientIP is the host part of RemoteAddr. Forwarding headers are ignored
// here; behind a trusted proxy, chi's RealIP rewrites RemoteAddr first.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Middleware answers 429 once the client IP exceeds its budget.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.getLimiter(clientIP(r)).Allow() {
			writeJSONError(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AuthRateLimiter guards login and registration: 10 requests per minute per IP, burst 5.
func AuthRateLimiter() *IPRateLimiter {
	return NewIPRateLimiter(rate.Limit(10.0/60.0), 5)
}
