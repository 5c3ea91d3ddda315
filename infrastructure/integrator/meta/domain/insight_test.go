package metadomain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourlyInsight_Hour(t *testing.T) {
	tests := []struct {
		stats   string
		want    int
		wantErr bool
	}{
		{stats: "00:00:00 - 00:59:59", want: 0},
		{stats: "09:00:00 - 09:59:59", want: 9},
		{stats: "23:00:00 - 23:59:59", want: 23},
		{stats: "24:00:00 - 24:59:59", wantErr: true},
		{stats: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.stats, func(t *testing.T) {
			hour, err := HourlyInsight{HourlyStats: tt.stats}.Hour()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, hour)
		})
	}
}

func TestHourlyInsight_Weekday(t *testing.T) {
	weekday, err := HourlyInsight{DateStart: "2026-10-17"}.Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, weekday)

	_, err = HourlyInsight{DateStart: "17/10/2026"}.Weekday()
	assert.Error(t, err)
}

func TestHourlyInsight_ActionValue(t *testing.T) {
	insight := HourlyInsight{Actions: []Action{
		{ActionType: "link_click", Value: "12"},
		{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "3"},
		{ActionType: "lead", Value: ""},
	}}

	assert.Equal(t, "3", insight.ActionValue("offsite_conversion.fb_pixel_purchase"))
	assert.Equal(t, "0", insight.ActionValue("lead"))
	assert.Equal(t, "0", insight.ActionValue("add_to_cart"))
}

func TestErrorResponse_IsTokenExpired(t *testing.T) {
	assert.True(t, (&ErrorResponse{Error: ErrorDetails{Code: 190}}).IsTokenExpired())
	assert.True(t, (&ErrorResponse{Error: ErrorDetails{Type: "OAuthException", ErrorSubcode: 463}}).IsTokenExpired())
	assert.False(t, (&ErrorResponse{Error: ErrorDetails{Type: "OAuthException", Code: 100}}).IsTokenExpired())
	assert.True(t, (&ErrorResponse{Error: ErrorDetails{Code: 17}}).IsRateLimited())
}

func TestNumericOrZero(t *testing.T) {
	assert.Equal(t, "0", NumericOrZero(""))
	assert.Equal(t, "0", NumericOrZero("  "))
	assert.Equal(t, "42", NumericOrZero("42"))
	assert.Equal(t, "abc", NumericOrZero("abc"))
}
