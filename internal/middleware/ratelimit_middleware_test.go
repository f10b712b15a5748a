package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// fakeCounter is an in-memory Counter.
type fakeCounter struct {
	counts map[string]int64
	ttl    time.Duration
	err    error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: make(map[string]int64)}
}

func (f *fakeCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	if f.ttl == 0 {
		f.ttl = ttl
	}
	return f.counts[key], nil
}

func (f *fakeCounter) TTL(ctx context.Context, key string) (time.Duration, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.ttl, nil
}

func limitedRouter(limiter *RateLimiter) *gin.Engine {
	router := gin.New()
	router.POST("/limited", limiter.Handle(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return router
}

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	router := limitedRouter(NewRateLimiter(newFakeCounter(), "rl:test", 3, time.Minute))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}
}

func TestRateLimiterRejectsOverLimit(t *testing.T) {
	router := limitedRouter(NewRateLimiter(newFakeCounter(), "rl:test", 3, time.Minute))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if !strings.Contains(w.Body.String(), "TOO_MANY_REQUESTS") {
		t.Errorf("body = %s, want TOO_MANY_REQUESTS", w.Body.String())
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	counter := newFakeCounter()
	counter.err = errors.New("redis unavailable")
	router := limitedRouter(NewRateLimiter(counter, "rl:test", 1, time.Minute))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d with counter down: status = %d, want 200", i+1, w.Code)
		}
	}
}
