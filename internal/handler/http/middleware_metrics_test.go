package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestWithMetrics(t *testing.T) {
	h := newTestHandler()

	router := chi.NewRouter()
	router.Use(h.withMetrics)
	router.Get("/api/users/{login}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	serve(router, httptest.NewRequest(http.MethodGet, "/api/users/john", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/api/users/jane", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.requests.WithLabelValues("/api/users/{login}", http.MethodGet, "202")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.requests.WithLabelValues(unmatchedRoute, http.MethodGet, "404")))
}

func TestRoutePattern_NoRouteContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	assert.Equal(t, unmatchedRoute, routePattern(req))
}
