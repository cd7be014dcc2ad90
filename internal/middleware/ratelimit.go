package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rvanheerden/go-autoquote/pkg/problem"
)

// RateLimiter is a fixed-window, per-IP limiter held in memory. The service
// runs as a single instance, so there is no need for a shared store; the
// limit mostly exists to keep a stuck frontend from hammering the simulated
// scan endpoints in a loop.
type RateLimiter struct {
	requests map[string][]time.Time
	mu       sync.RWMutex
	limit    int
	window   time.Duration
	stopCh   chan struct{}
}

// NewRateLimiter allows limit requests per source IP per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		stopCh:   make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// StartWithContext ties the limiter's lifetime to ctx.
func (rl *RateLimiter) StartWithContext(ctx context.Context) {
	go func() {
		<-ctx.Done()
		rl.Stop()
	}()
}

// cleanup drops IPs whose window has fully expired so an idle server does
// not hold every address it has ever seen.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for ip, times := range rl.requests {
				var valid []time.Time
				for _, t := range times {
					if now.Sub(t) < rl.window {
						valid = append(valid, t)
					}
				}
				if len(valid) == 0 {
					delete(rl.requests, ip)
				} else {
					rl.requests[ip] = valid
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) isAllowed(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.window)

	var valid []time.Time
	for _, t := range rl.requests[ip] {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[ip] = valid
		return false
	}

	rl.requests[ip] = append(valid, now)
	return true
}

// Middleware enforces the limit. It keys on RemoteAddr, so it must sit after
// chi's RealIP middleware; X-Forwarded-For is never read directly since
// clients can spoof it.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr

		// RemoteAddr is usually "ip:port"; IPv6 wraps the ip in brackets.
		if idx := strings.LastIndex(ip, ":"); idx != -1 {
			if strings.Count(ip, ":") > 1 {
				if bracketIdx := strings.LastIndex(ip, "]:"); bracketIdx != -1 {
					ip = ip[1:bracketIdx]
				}
			} else {
				ip = ip[:idx]
			}
		}

		if !rl.isAllowed(ip) {
			w.Header().Set("Retry-After", "60")
			problem.Write(w, http.StatusTooManyRequests, "Rate Limit Exceeded",
				"Too many requests. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
