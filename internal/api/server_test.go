package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/config"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/account/mocks"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting/alertingtest"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/authenticating"
	"go.uber.org/mock/gomock"
)

type idleScheduler struct{}

func (idleScheduler) TriggerManualRun(context.Context) bool { return true }
func (idleScheduler) GetStatus() map[string]any             { return map[string]any{"running": false} }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func TestNewHandler(t *testing.T) {
	auth := authenticating.NewService(config.Auth{Secret: "segredo"})
	viewerToken, err := auth.GenerateToken("ops@loja.com.br", "viewer", 0)
	assert.NoError(t, err)

	h := NewHandler(
		mocks.NewMockAccountService(gomock.NewController(t)),
		auth,
		idleScheduler{},
		alertingtest.NewMemoryStore(),
		okPinger{},
	)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{name: "healthcheck sem token", method: http.MethodGet, path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "métricas sem token", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "dashboard sem token", method: http.MethodGet, path: "/v1/dashboard", wantStatus: http.StatusUnauthorized},
		{name: "dashboard com viewer", method: http.MethodGet, path: "/v1/dashboard", token: viewerToken, wantStatus: http.StatusOK},
		{name: "viewer não dispara rodada", method: http.MethodPost, path: "/v1/cron/alerts/run", token: viewerToken, wantStatus: http.StatusForbidden},
		{name: "rota inexistente", method: http.MethodGet, path: "/v1/nada", token: viewerToken, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
