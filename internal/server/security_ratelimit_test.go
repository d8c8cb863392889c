package server

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector(nil)
	handler := SecurityLoggingMiddleware(detector)(okHandler())

	ip := "192.168.1.100"
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < RateLimitPerWindow; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	// Next request should be blocked
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	retry, err := strconv.Atoi(rec.Header().Get(HeaderRetryAfter))
	require.NoError(t, err)
	assert.Positive(t, retry)
	assert.LessOrEqual(t, retry, int(RateWindow/time.Second))

	assert.Equal(t, RateLimitPerWindow+1, detector.RequestCount(ip))

	// Other clients are unaffected
	other := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	other.RemoteAddr = "192.168.1.101:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSuspiciousActivityDetector_WindowResets(t *testing.T) {
	detector := NewSuspiciousActivityDetector(nil)
	detector.limit = 2
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	detector.now = func() time.Time { return now }

	ok, _ := detector.Allow("10.1.1.1")
	assert.True(t, ok)
	ok, _ = detector.Allow("10.1.1.1")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, wait := detector.Allow("10.1.1.1")
	assert.False(t, ok)
	assert.Equal(t, RateWindow-time.Minute, wait)

	now = now.Add(RateWindow)
	ok, _ = detector.Allow("10.1.1.1")
	assert.True(t, ok)
	assert.Equal(t, 1, detector.RequestCount("10.1.1.1"))
}

func TestSecurityLoggingMiddleware_TrustedProxy(t *testing.T) {
	detector := NewSuspiciousActivityDetector([]string{"10.0.0.1"})
	handler := SecurityLoggingMiddleware(detector)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.RemoteAddr = "10.0.0.1:80"
	req.Header.Set(HeaderForwardedFor, "203.0.113.9")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1, detector.RequestCount("203.0.113.9"))
	assert.Zero(t, detector.RequestCount("10.0.0.1"))
}

func TestClientIPResolver(t *testing.T) {
	res := newClientIPResolver([]string{"10.0.0.0/8", "192.0.2.10", "not-an-ip"})

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  []string
		want       string
	}{
		{name: "direct client", remoteAddr: "198.51.100.4:9000", want: "198.51.100.4"},
		{name: "untrusted peer ignores header", remoteAddr: "198.51.100.4:9000", forwarded: []string{"203.0.113.9"}, want: "198.51.100.4"},
		{name: "trusted cidr", remoteAddr: "10.2.3.4:80", forwarded: []string{"203.0.113.9"}, want: "203.0.113.9"},
		{name: "trusted single address", remoteAddr: "192.0.2.10:80", forwarded: []string{"203.0.113.9"}, want: "203.0.113.9"},
		{name: "skips trusted hops", remoteAddr: "10.0.0.1:80", forwarded: []string{"203.0.113.9, 10.9.9.9"}, want: "203.0.113.9"},
		{name: "multiple header lines", remoteAddr: "10.0.0.1:80", forwarded: []string{"198.51.100.1", "203.0.113.7"}, want: "203.0.113.7"},
		{name: "spoofed left entries ignored", remoteAddr: "10.0.0.1:80", forwarded: []string{"1.1.1.1, 203.0.113.9"}, want: "203.0.113.9"},
		{name: "garbage hop falls back to peer", remoteAddr: "10.0.0.1:80", forwarded: []string{"junk"}, want: "10.0.0.1"},
		{name: "all hops trusted", remoteAddr: "10.0.0.1:80", forwarded: []string{"10.0.0.2"}, want: "10.0.0.1"},
		{name: "mapped ipv4", remoteAddr: "[::ffff:10.0.0.1]:80", forwarded: []string{"203.0.113.9"}, want: "203.0.113.9"},
		{name: "ipv6 client", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "unparseable remote addr", remoteAddr: "pipe", want: "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for _, v := range tt.forwarded {
				req.Header.Add(HeaderForwardedFor, v)
			}
			assert.Equal(t, tt.want, res.Resolve(req))
		})
	}
}
