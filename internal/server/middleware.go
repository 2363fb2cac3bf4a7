package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs API requests with a per-request ID
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()

		w.Header().Set("X-Request-ID", requestID)
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.WithRequestID(requestID).Info("Request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrapped.statusCode),
			zap.String("remote_addr", requestAddr(r)),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// rateLimiter keeps one token bucket per client address.
type rateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*rate.Limiter
	perSec   rate.Limit
	burst    int
	lastSeen map[string]time.Time
}

func newRateLimiter(perSec float64, burst int) *rateLimiter {
	rl := &rateLimiter{
		clients:  make(map[string]*rate.Limiter),
		perSec:   rate.Limit(perSec),
		burst:    burst,
		lastSeen: make(map[string]time.Time),
	}
	go rl.cleanup()
	return rl
}

func (rl *rateLimiter) allow(addr string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.clients[addr]
	if !ok {
		limiter = rate.NewLimiter(rl.perSec, rl.burst)
		rl.clients[addr] = limiter
	}
	rl.lastSeen[addr] = time.Now()
	return limiter.Allow()
}

// cleanup evicts buckets for clients idle longer than ten minutes.
func (rl *rateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for addr, seen := range rl.lastSeen {
			if time.Since(seen) > 10*time.Minute {
				delete(rl.clients, addr)
				delete(rl.lastSeen, addr)
			}
		}
		rl.mu.Unlock()
	}
}

// rateLimitMiddleware rejects clients that exceed the configured rate
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.allow(requestAddr(r)) {
			s.logger.Warn("Rate limit exceeded",
				zap.String("remote_addr", requestAddr(r)),
				zap.String("path", r.URL.Path),
			)
			s.writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestAddr(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
