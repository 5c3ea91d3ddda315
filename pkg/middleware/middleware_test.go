package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/pkg/apiErrors"
)

type stubValidator struct {
	claims *domain.Claims
	err    error
}

func (s stubValidator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	admin := &domain.Claims{Role: domain.RoleAdmin}

	tests := []struct {
		name       string
		path       string
		header     string
		validator  stubValidator
		wantStatus int
		wantCode   string
	}{
		{name: "rota pública", path: "/healthcheck", wantStatus: http.StatusNoContent},
		{name: "métricas públicas", path: "/metrics", wantStatus: http.StatusNoContent},
		{name: "sem header", path: "/v1/dashboard", wantStatus: http.StatusUnauthorized},
		{name: "sem bearer", path: "/v1/dashboard", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "token inválido", path: "/v1/dashboard", header: "Bearer abc", validator: stubValidator{err: errors.New("expired")}, wantStatus: http.StatusUnauthorized},
		{name: "token expirado", path: "/v1/dashboard", header: "Bearer abc", validator: stubValidator{err: fmt.Errorf("invalid token: %w", jwt.ErrTokenExpired)}, wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrExpiredToken},
		{name: "token válido", path: "/v1/dashboard", header: "Bearer abc", validator: stubValidator{claims: admin}, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.validator)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		wantStatus int
	}{
		{name: "admin", claims: &domain.Claims{Role: domain.RoleAdmin}, wantStatus: http.StatusNoContent},
		{name: "leitura", claims: &domain.Claims{Role: domain.RoleViewer}, wantStatus: http.StatusForbidden},
		{name: "sem autenticação", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/alerts/run", nil)
			rec := httptest.NewRecorder()

			handler := AdminOnly()(okHandler())
			if tt.claims != nil {
				handler = AuthMiddleware(stubValidator{claims: tt.claims})(handler)
				req.Header.Set("Authorization", "Bearer abc")
			}
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()

	LoggingMiddleware()(LogPanicMiddleware()(panicking)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
