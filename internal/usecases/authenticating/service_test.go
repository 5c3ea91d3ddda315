package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/config"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
)

func newTestService(now time.Time) *Service {
	s := NewService(config.Auth{Secret: "segredo-de-teste"})
	s.now = func() time.Time { return now }
	return s
}

func TestGenerateAndValidateToken(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s := newTestService(now)

	token, err := s.GenerateToken("ops", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "ops", claims.Subject)
	assert.True(t, now.Add(time.Hour).Equal(claims.ExpiresAt.Time))
}

func TestValidateToken(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name: "token expirado",
			token: func() string {
				token, _ := newTestService(now.Add(-2*time.Hour)).GenerateToken("ops", domain.RoleAdmin, time.Hour)
				return token
			},
		},
		{
			name: "assinado com outro segredo",
			token: func() string {
				other := NewService(config.Auth{Secret: "outro"})
				other.now = func() time.Time { return now }
				token, _ := other.GenerateToken("ops", domain.RoleAdmin, time.Hour)
				return token
			},
		},
		{
			name: "algoritmo none",
			token: func() string {
				token, _ := jwt.NewWithClaims(jwt.SigningMethodNone, domain.Claims{Role: domain.RoleAdmin}).
					SignedString(jwt.UnsafeAllowNoneSignatureType)
				return token
			},
		},
		{
			name:  "texto qualquer",
			token: func() string { return "abc.def.ghi" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(now).ValidateToken(tt.token())
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestGenerateToken_Validation(t *testing.T) {
	s := newTestService(time.Now())

	_, err := s.GenerateToken("", domain.RoleAdmin, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSubject)

	_, err = s.GenerateToken("ops", "root", time.Hour)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = NewService(config.Auth{}).GenerateToken("ops", domain.RoleAdmin, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}
