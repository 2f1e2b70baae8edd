package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-gateway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetHealth(t *testing.T) {
	tests := []struct {
		name       string
		health     models.Health
		wantStatus int
	}{
		{
			name:   "up",
			health: models.Health{
				Status:     models.StatusUp,
				Components: map[string]models.HealthComponent{"db": {Status: models.StatusUp}},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "down",
			health: models.Health{
				Status:     models.StatusDown,
				Components: map[string]models.HealthComponent{
					"db": {Status: models.StatusDown, Details: map[string]string{"error": "connection refused"}},
				},
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandlerWith(t, testConfig(), false)
			m.health.EXPECT().Check(gomock.Any()).Return(tt.health)

			rr := serve(h.Init(), httptest.NewRequest(http.MethodGet, managementHealthPath, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var got models.Health
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tt.health, got)
		})
	}
}

func TestManagementEndpoints_NoSession(t *testing.T) {
	h, m := newTestHandlerWith(t, testConfig(), false)
	m.health.EXPECT().Check(gomock.Any()).Return(models.Health{Status: models.StatusUp})

	rr := serve(h.Init(), httptest.NewRequest(http.MethodGet, managementHealthPath, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Result().Cookies())
	assert.Equal(t, 0, m.sessions.count())
}

func TestGetInfo(t *testing.T) {
	h, m := newTestHandlerWith(t, testConfig(), false)
	info := models.AppInfo{Name: "gatewayApp", Profile: "dev", Version: "1.2.3", Date: "N/A", Commit: "abc"}
	m.appInfo.EXPECT().GetAppInfo(gomock.Any()).Return(info)

	rr := serve(h.Init(), httptest.NewRequest(http.MethodGet, managementInfoPath, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got models.AppInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, info, got)
}

func TestPrometheusEndpoint(t *testing.T) {
	h, m := newTestHandlerWith(t, testConfig(), false)
	m.appInfo.EXPECT().GetAppInfo(gomock.Any()).Return(models.AppInfo{})
	router := h.Init()

	serve(router, httptest.NewRequest(http.MethodGet, managementInfoPath, nil))
	rr := serve(router, httptest.NewRequest(http.MethodGet, managementPrometheusPath, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `gateway_http_requests_total{method="GET",path="/management/info",status="200"} 1`)
	assert.Contains(t, body, "gateway_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}
