package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-gateway/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSwaggerGuard(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		loggedIn     bool
		wantStatus   int
		wantLocation string
	}{
		{name: "anonymous ui visit is redirected", path: "/api/v2/api-docs", wantStatus: http.StatusFound, wantLocation: auth.LoginPath},
		{name: "logged in user sees the ui", path: "/api/v2/api-docs", loggedIn: true, wantStatus: http.StatusOK},
		{name: "anonymous visit below the ui path is redirected", path: "/api/v2/api-docs/index.html", wantStatus: http.StatusFound, wantLocation: auth.LoginPath},
		{name: "logged in visit below the ui path is not found", path: "/api/v2/api-docs/index.html", loggedIn: true, wantStatus: http.StatusNotFound},
		{name: "unknown path outside the ui is not found", path: "/no/such/page", wantStatus: http.StatusNotFound},
		{name: "other paths are untouched", path: "/api/account", wantStatus: http.StatusUnauthorized},
		{name: "raw document is public", path: "/v3/api-docs", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandlerWith(t, testConfig(), false)
			router := h.Init()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.loggedIn {
				req.AddCookie(loggedInCookie(t, h, testUser))
			}
			rr := serve(router, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
		})
	}
}
