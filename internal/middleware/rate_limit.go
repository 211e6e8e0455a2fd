package middleware

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"vikare/airports/internal/common"
	"vikare/airports/internal/constants"
	"vikare/airports/internal/metrics"
)

// RateLimiter hands out one token bucket per client IP. Buckets for idle
// clients expire from the cache after ttl.
type RateLimiter struct {
	limiters  common.CacheInterface
	rps       rate.Limit
	burst     int
	ttl       time.Duration
	whitelist map[string]bool
	metrics   *metrics.MetricsRegistry
}

func NewRateLimiter(limiters common.CacheInterface, rps float64, burst int, ttl time.Duration, whitelistedIPs []string, metricsReg *metrics.MetricsRegistry) *RateLimiter {
	whitelist := make(map[string]bool, len(whitelistedIPs))
	for _, ip := range whitelistedIPs {
		whitelist[ip] = true
	}

	return &RateLimiter{
		limiters:  limiters,
		rps:       rate.Limit(rps),
		burst:     burst,
		ttl:       ttl,
		whitelist: whitelist,
		metrics:   metricsReg,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	val, _ := rl.limiters.GetOrSet("ratelimit:"+ip, rl.ttl, func() (any, error) {
		return rate.NewLimiter(rl.rps, rl.burst), nil
	})
	limiter := val.(*rate.Limiter)

	// refresh expiry so active clients keep their bucket
	rl.limiters.Set("ratelimit:"+ip, limiter, rl.ttl)
	if rl.metrics != nil {
		rl.metrics.RateLimitClients.Set(float64(rl.limiters.ItemCount()))
	}
	return limiter
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if rl.whitelist[ip] {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(ip).Allow() {
			if rl.metrics != nil {
				rl.metrics.RateLimitedTotal.Inc()
			}
			w.Header().Set("Retry-After", "1")
			http.Error(w, constants.MsgTooManyRequests, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
