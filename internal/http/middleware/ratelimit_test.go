package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_Handler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// No refill, burst of 2: third request in a row must be rejected.
	rl := NewRateLimiter(0, 2)
	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}
	if !strings.Contains(w.Body.String(), `"code":"rate_limited"`) {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestNewRateLimiter_CoercesBurst(t *testing.T) {
	rl := NewRateLimiter(1, 0)
	if rl.burst != 1 {
		t.Fatalf("burst = %d", rl.burst)
	}
}

func TestRateLimiter_EvictsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.ttl = time.Nanosecond
	rl.cleanupN = 2

	rl.get("ip:1.1.1.1")
	time.Sleep(time.Millisecond)
	rl.get("ip:2.2.2.2") // second lookup triggers the sweep

	rl.mu.Lock()
	_, stale := rl.buckets["ip:1.1.1.1"]
	rl.mu.Unlock()
	if stale {
		t.Fatal("idle bucket not evicted")
	}
}
