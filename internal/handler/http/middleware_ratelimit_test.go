package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimiter(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.RateLimit
		wantNil   bool
		wantBurst int
	}{
		{name: "disabled", cfg: config.RateLimit{}, wantNil: true},
		{name: "negative rps", cfg: config.RateLimit{RPS: -1, Burst: 10}, wantNil: true},
		{name: "configured", cfg: config.RateLimit{RPS: 50, Burst: 100}, wantBurst: 100},
		{name: "burst raised to one", cfg: config.RateLimit{RPS: 5}, wantBurst: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := newLimiter(tt.cfg)
			if tt.wantNil {
				assert.Nil(t, limiter)
				return
			}
			require.NotNil(t, limiter)
			assert.Equal(t, tt.wantBurst, limiter.Burst())
		})
	}
}

func TestWithRateLimit(t *testing.T) {
	h := newTestHandler()
	// a tiny refill rate keeps the bucket empty for the duration of the test
	h.limiter = newLimiter(config.RateLimit{RPS: 0.001, Burst: 2})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := h.withRateLimit(next)

	var codes []int
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		middleware.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/api/account", nil))
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "1", last.Header().Get("Retry-After"))

	var problem utils.Problem
	require.NoError(t, json.Unmarshal(last.Body.Bytes(), &problem))
	assert.Equal(t, http.StatusTooManyRequests, problem.Status)
}

func TestWithRateLimit_Disabled(t *testing.T) {
	h := newTestHandler()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := h.withRateLimit(next)

	for i := 0; i < 10; i++ {
		rr := httptest.NewRecorder()
		middleware.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}
