package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"crms/pkg/logger"
)

// KeyExtractor derives the rate-limiting key from a request.
type KeyExtractor func(r *http.Request) string

// DefaultKeyExtractor buckets clients by remote IP.
func DefaultKeyExtractor(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ClientRateLimiter is a fixed-window limiter keyed per client.
type ClientRateLimiter struct {
	maxRequests int
	window      time.Duration
	extractor   KeyExtractor
	log         *logger.Logger

	mu      sync.Mutex
	buckets map[string]*windowBucket
	done    chan struct{}
	once    sync.Once
}

type windowBucket struct {
	count       int
	windowStart time.Time
}

func NewClientRateLimiter(maxRequests int, window time.Duration, extractor KeyExtractor, log *logger.Logger) *ClientRateLimiter {
	if extractor == nil {
		extractor = DefaultKeyExtractor
	}
	rl := &ClientRateLimiter{
		maxRequests: maxRequests,
		window:      window,
		extractor:   extractor,
		log:         log,
		buckets:     make(map[string]*windowBucket),
		done:        make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *ClientRateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	bucket, ok := rl.buckets[key]
	if !ok || now.Sub(bucket.windowStart) >= rl.window {
		rl.buckets[key] = &windowBucket{count: 1, windowStart: now}
		return true
	}

	if bucket.count >= rl.maxRequests {
		return false
	}
	bucket.count++
	return true
}

func (rl *ClientRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			now := time.Now()
			rl.mu.Lock()
			for key, bucket := range rl.buckets {
				if now.Sub(bucket.windowStart) >= rl.window {
					delete(rl.buckets, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *ClientRateLimiter) Stop() {
	rl.once.Do(func() { close(rl.done) })
}

func RateLimit(rl *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rl.extractor(r)
			if !rl.Allow(key) {
				rl.log.Warn("Rate limit exceeded",
					"client", key,
					"method", r.Method,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
