package httpserver

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"golang.org/x/time/rate"
)

// clientTTL is how long an idle client keeps its bucket.
const clientTTL = 10 * time.Minute

type limitedClient struct {
	lim  *rate.Limiter
	seen time.Time
}

// ipLimiter hands out one token bucket per client address.
type ipLimiter struct {
	mu        sync.Mutex
	perMinute int
	clients   map[string]*limitedClient
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiter(perMinute int) *ipLimiter {
	return &ipLimiter{perMinute: perMinute, clients: map[string]*limitedClient{}, now: time.Now}
}

// allow reports whether ip may proceed and, if not, how long until it may.
func (l *ipLimiter) allow(ip string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) > clientTTL {
		for k, c := range l.clients {
			if now.Sub(c.seen) > clientTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}
	c, ok := l.clients[ip]
	if !ok {
		c = &limitedClient{lim: rate.NewLimiter(rate.Limit(float64(l.perMinute)/60), l.perMinute)}
		l.clients[ip] = c
	}
	c.seen = now
	r := c.lim.ReserveN(now, 1)
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, d
	}
	return true, 0
}

func tooManyRequests(w http.ResponseWriter, wait time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
	writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "too many requests"})
}

// clientIP uses the first X-Forwarded-For hop only behind a trusted proxy.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit caps every client at perMinute requests. perMinute <= 0 disables it.
func RateLimit(perMinute int, trustProxy bool) Middleware {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	l := newIPLimiter(perMinute)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ok, wait := l.allow(clientIP(r, trustProxy)); !ok {
				tooManyRequests(w, wait)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PublicRateLimit applies tighter per-client limits to individual write
// endpoints, keyed by "METHOD /path".
func PublicRateLimit(limits map[string]int, trustProxy bool) Middleware {
	limiters := make(map[string]*ipLimiter, len(limits))
	for route, n := range limits {
		if n > 0 {
			limiters[route] = newIPLimiter(n)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l := limiters[r.Method+" "+r.URL.Path]; l != nil {
				if ok, wait := l.allow(clientIP(r, trustProxy)); !ok {
					tooManyRequests(w, wait)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func Gzip(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}
