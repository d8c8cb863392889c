package server

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/vistalabs/vista/internal/logger"
	"github.com/vistalabs/vista/internal/metrics"
)

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AuthMiddleware requires the X-API-Key header on everything outside
// PublicPaths and reports failures to the detector.
func AuthMiddleware(apiKey string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	expected := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(provided), expected) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := detector.ClientIP(r)
			detector.RecordFailedAuth(ip)
			metrics.SecurityRejections.WithLabelValues(metrics.ReasonUnauthorized).Inc()

			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"ip", ip,
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
				"has_key", provided != "")

			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// clientWindow is one client's counters for the current rate window
type clientWindow struct {
	start      time.Time
	requests   int
	failedAuth int
}

// SuspiciousActivityDetector counts requests and failed logins per client
// over a fixed window. Clients are kept in a bounded LRU so a scan from
// many addresses cannot grow memory without limit.
type SuspiciousActivityDetector struct {
	mu       sync.Mutex
	clients  *expirable.LRU[string, *clientWindow]
	resolver *clientIPResolver
	limit    int
	window   time.Duration
	now      func() time.Time
}

// NewSuspiciousActivityDetector builds a detector with the default window
// and per-window request limit.
func NewSuspiciousActivityDetector(trustedProxies []string) *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		clients:  expirable.NewLRU[string, *clientWindow](MaxTrackedClients, nil, RateWindow),
		resolver: newClientIPResolver(trustedProxies),
		limit:    RateLimitPerWindow,
		window:   RateWindow,
		now:      time.Now,
	}
}

// ClientIP resolves the address a request is attributed to
func (s *SuspiciousActivityDetector) ClientIP(r *http.Request) string {
	return s.resolver.Resolve(r)
}

// current returns the live counters for ip, starting a new window when the
// previous one has elapsed. Caller must hold the mutex.
func (s *SuspiciousActivityDetector) current(ip string) *clientWindow {
	now := s.now()
	cw, ok := s.clients.Get(ip)
	if !ok || now.Sub(cw.start) >= s.window {
		cw = &clientWindow{start: now}
		s.clients.Add(ip, cw)
	}
	return cw
}

// RecordFailedAuth records a failed authentication attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cw := s.current(ip)
	cw.failedAuth++
	if cw.failedAuth >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", cw.failedAuth)
	}
}

// Allow counts a request from ip. When the client is over its limit it
// returns false and how long until the window resets.
func (s *SuspiciousActivityDetector) Allow(ip string) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cw := s.current(ip)
	cw.requests++
	if cw.requests <= s.limit {
		return true, 0
	}
	if (cw.requests-s.limit)%HighRateLogEvery == 1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count", cw.requests, "window", s.window.String())
	}
	return false, cw.start.Add(s.window).Sub(s.now())
}

// FailedAuthCount reports the failed logins recorded for ip in its current window
func (s *SuspiciousActivityDetector) FailedAuthCount(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cw, ok := s.clients.Peek(ip); ok && s.now().Sub(cw.start) < s.window {
		return cw.failedAuth
	}
	return 0
}

// RequestCount reports the requests recorded for ip in its current window
func (s *SuspiciousActivityDetector) RequestCount(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cw, ok := s.clients.Peek(ip); ok && s.now().Sub(cw.start) < s.window {
		return cw.requests
	}
	return 0
}

// SecurityLoggingMiddleware enforces the per-client rate limit
func SecurityLoggingMiddleware(detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, retryAfter := detector.Allow(detector.ClientIP(r))
			if !ok {
				secs := int(retryAfter.Round(time.Second) / time.Second)
				if secs < 1 {
					secs = 1
				}
				w.Header().Set(HeaderRetryAfter, strconv.Itoa(secs))
				metrics.SecurityRejections.WithLabelValues(metrics.ReasonRateLimited).Inc()
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			// Stock figures change on every run
			if strings.HasPrefix(r.URL.Path, APIPrefix) {
				h.Set(HeaderCacheControl, HeaderValueNoStore)
			}
			next.ServeHTTP(w, r)
		})
	}
}
