package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"guest-response-agent/config"
	"guest-response-agent/pkg/log"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, args ...any)                 {}
func (nopLogger) Info(ctx context.Context, args ...any)                  {}
func (nopLogger) Warn(ctx context.Context, args ...any)                  {}
func (nopLogger) Error(ctx context.Context, args ...any)                 {}
func (nopLogger) Fatal(ctx context.Context, args ...any)                 {}
func (nopLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Errorf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Fatalf(ctx context.Context, format string, args ...any) {}

var _ log.Logger = nopLogger{}

func newRouter(mw Middleware, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/", chain...)
	return r
}

func TestAuth(t *testing.T) {
	t.Run("valid key passes", func(t *testing.T) {
		mw := New(nopLogger{}, config.APIConfig{Keys: []string{"secret-1", "secret-2"}, RateLimitPerMinute: 60})
		r := newRouter(mw, mw.Auth())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(apiKeyHeader, "secret-2")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		mw := New(nopLogger{}, config.APIConfig{Keys: []string{"secret-1"}, RateLimitPerMinute: 60})
		r := newRouter(mw, mw.Auth())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(apiKeyHeader, "wrong")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("missing key rejected", func(t *testing.T) {
		mw := New(nopLogger{}, config.APIConfig{Keys: []string{"secret-1"}, RateLimitPerMinute: 60})
		r := newRouter(mw, mw.Auth())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("no keys configured disables auth", func(t *testing.T) {
		mw := New(nopLogger{}, config.APIConfig{RateLimitPerMinute: 60})
		r := newRouter(mw, mw.Auth())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d", w.Code)
		}
	})
}

func TestRateLimit(t *testing.T) {
	// 60/min with burst 6: the 7th immediate request must be rejected.
	mw := New(nopLogger{}, config.APIConfig{RateLimitPerMinute: 60})
	r := newRouter(mw, mw.RateLimit())

	limited := false
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(apiKeyHeader, "same-client")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected rate limit to trigger within burst window")
	}
}

func TestRateLimitPerClient(t *testing.T) {
	mw := New(nopLogger{}, config.APIConfig{RateLimitPerMinute: 60})
	r := newRouter(mw, mw.RateLimit())

	// Exhaust client A.
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(apiKeyHeader, "client-a")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	// Client B is unaffected.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(apiKeyHeader, "client-b")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("independent client limited: status = %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	mw := New(nopLogger{}, config.APIConfig{RateLimitPerMinute: 60})
	r := newRouter(mw, mw.RequestID())

	t.Run("generated when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Header().Get(requestIDHeader) == "" {
			t.Error("expected generated request id on response")
		}
	})

	t.Run("caller id preserved", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, "given-id")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Header().Get(requestIDHeader); got != "given-id" {
			t.Errorf("request id = %q", got)
		}
	})
}
