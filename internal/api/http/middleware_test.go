package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("BurstThenThrottle", func(t *testing.T) {
		rl := NewRateLimiter(60, 2)
		h := rl.Handler(okHandler)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
			req.RemoteAddr = "192.0.2.1:5000"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
		}
		assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
	})

	t.Run("ClientsAreIndependent", func(t *testing.T) {
		rl := NewRateLimiter(60, 1)
		h := rl.Handler(okHandler)

		for _, addr := range []string{"192.0.2.1:5000", "192.0.2.2:5000"} {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusNoContent, rec.Code)
		}
	})

	t.Run("CleanupDropsIdleClients", func(t *testing.T) {
		rl := NewRateLimiter(60, 1)
		now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		rl.now = func() time.Time { return now }
		rl.allow("192.0.2.1")

		now = now.Add(11 * time.Minute)
		rl.Cleanup()
		assert.Empty(t, rl.clients)
	})
}

func TestRouterRateLimitsAuth(t *testing.T) {
	s := newTestServer()
	s.handler = NewRouter(RouterDeps{
		Auth:        s.auth,
		Surfboards:  s.surfboards,
		Rentals:     s.rentals,
		Storage:     s.storage,
		Partners:    s.partners,
		Tokens:      s.tokens,
		DB:          s.db,
		AuthLimiter: NewRateLimiter(60, 1),
	})

	first := s.do(http.MethodPost, "/auth/login", `{}`, "")
	second := s.do(http.MethodPost, "/auth/login", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// other prefixes are not throttled
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/healthz", "", "").Code)
}

func TestCORSMiddleware(t *testing.T) {
	s := newTestServer()

	t.Run("Preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/rentals", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("UnknownOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer abc.def")
	assert.Equal(t, "abc.def", extractToken(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", extractToken(req))
}
