// Package idempotency replays responses for requests retried with the same
// Idempotency-Key header.
package idempotency

import (
	"bytes"
	"crypto/sha256"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/vistalabs/vista/internal/logger"
	"github.com/vistalabs/vista/internal/metrics"
)

// Headers
const (
	HeaderKey      = "Idempotency-Key"
	HeaderReplayed = "Idempotent-Replayed"
)

// MaxKeyLength bounds the accepted header value
const MaxKeyLength = 255

// Log messages
const (
	LogMsgReplayed      = "Replaying cached response"
	LogMsgKeyReused     = "Idempotency key reused with a different body"
	LogMsgWaitInFlight  = "Waiting for in-flight request with same idempotency key"
	LogMsgBodyReadError = "Failed to read request body for idempotency check"
)

// Error messages returned to clients
const (
	ErrMsgKeyTooLong = "Idempotency-Key too long"
	ErrMsgKeyReused  = "Idempotency-Key was already used with a different request body"
	ErrMsgBadBody    = "Invalid request body"
)

type response struct {
	status      int
	contentType string
	body        []byte
	fingerprint [sha256.Size]byte
}

// Cache stores finished responses keyed by route and Idempotency-Key. Only
// responses are stored; a retried request is never re-evaluated.
type Cache struct {
	lru *expirable.LRU[string, response]

	mu       sync.Mutex
	inflight map[string]chan struct{}
}

// NewCache creates a cache holding at most size responses for ttl
func NewCache(size int, ttl time.Duration) *Cache {
	return &Cache{
		lru:      expirable.NewLRU[string, response](size, nil, ttl),
		inflight: make(map[string]chan struct{}),
	}
}

// Len returns the number of cached responses
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Middleware replays the cached response for a repeated key. Concurrent
// requests with the same key wait for the first one to finish. Server errors
// are not cached so the client can retry them.
func (c *Cache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(HeaderKey)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		if len(key) > MaxKeyLength {
			http.Error(w, ErrMsgKeyTooLong, http.StatusBadRequest)
			return
		}

		log := logger.FromContext(r.Context())
		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Warn(LogMsgBodyReadError, "error", err)
			http.Error(w, ErrMsgBadBody, http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		fingerprint := sha256.Sum256(body)
		cacheKey := r.Method + " " + r.URL.Path + " " + key

		for {
			if cached, ok := c.lru.Get(cacheKey); ok {
				if cached.fingerprint != fingerprint {
					log.Warn(LogMsgKeyReused, "key", key)
					http.Error(w, ErrMsgKeyReused, http.StatusUnprocessableEntity)
					return
				}
				log.Info(LogMsgReplayed, "key", key, "status", cached.status)
				metrics.IdempotentReplays.Inc()
				replay(w, cached)
				return
			}

			wait, owner := c.claim(cacheKey)
			if owner {
				break
			}
			log.Debug(LogMsgWaitInFlight, "key", key)
			select {
			case <-wait:
			case <-r.Context().Done():
				return
			}
		}
		defer c.release(cacheKey)

		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status < http.StatusInternalServerError {
			c.lru.Add(cacheKey, response{
				status:      rec.status,
				contentType: w.Header().Get("Content-Type"),
				body:        rec.body.Bytes(),
				fingerprint: fingerprint,
			})
		}
	})
}

// claim registers the caller as the owner of key, or returns the channel
// closed when the current owner finishes.
func (c *Cache) claim(key string) (<-chan struct{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ch, ok := c.inflight[key]; ok {
		return ch, false
	}
	c.inflight[key] = make(chan struct{})
	return nil, true
}

func (c *Cache) release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ch, ok := c.inflight[key]; ok {
		close(ch)
		delete(c.inflight, key)
	}
}

func replay(w http.ResponseWriter, cached response) {
	if cached.contentType != "" {
		w.Header().Set("Content-Type", cached.contentType)
	}
	w.Header().Set(HeaderReplayed, "true")
	w.WriteHeader(cached.status)
	_, _ = w.Write(cached.body)
}

type recorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.wroteHeader = true
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
