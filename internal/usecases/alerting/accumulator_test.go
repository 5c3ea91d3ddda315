package alerting_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting/alertingtest"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "esperado %s, obtido %s", want, got.String())
}

func TestAccumulate(t *testing.T) {
	rows := []domain.ReportRow{
		alertingtest.Row(0, "1,000", "10.9", "2", "12.345"),
		alertingtest.Row(1, "500", "5", "1.5", "7.655"),
		alertingtest.Row(2, "999", "99", "9", "99.99"),
	}

	tests := []struct {
		name        string
		cutoff      int
		weight      int
		impressions string
		clicks      string
		conversions string
		cost        string
	}{
		{name: "Hoje soma apenas horas anteriores ao corte", cutoff: 2, weight: 1, impressions: "1500", clicks: "15", conversions: "3", cost: "20"},
		{name: "Corte zero não inclui nenhuma linha", cutoff: 0, weight: 1, impressions: "0", clicks: "0", conversions: "0", cost: "0"},
		{name: "Corte no fim do dia inclui todas as linhas", cutoff: 24, weight: 1, impressions: "2499", clicks: "114", conversions: "12", cost: "119.99"},
		{name: "Histórico divide pelo número de semanas", cutoff: 2, weight: 3, impressions: "500", clicks: "5", conversions: "1", cost: "6.6666666666666667"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := alerting.Accumulate(alertingtest.Rows(rows...), tt.cutoff, tt.weight)
			require.NoError(t, err)

			assertDecimal(t, tt.impressions, totals.Impressions)
			assertDecimal(t, tt.clicks, totals.Clicks)
			assertDecimal(t, tt.conversions, totals.Conversions)
			assertDecimal(t, tt.cost, totals.Cost)
		})
	}
}

func TestAccumulate_TruncatesCountsPerRow(t *testing.T) {
	// 0.9 + 0.9 truncados linha a linha somam 0, não 1
	totals, err := alerting.Accumulate(alertingtest.Rows(
		alertingtest.Row(0, "0.9", "0.9", "0.9", "0.9"),
		alertingtest.Row(1, "0.9", "0.9", "0.9", "0.9"),
	), 5, 1)
	require.NoError(t, err)

	assert.True(t, totals.Impressions.IsZero())
	assert.True(t, totals.Clicks.IsZero())
	assert.True(t, totals.Conversions.IsZero())
	assertDecimal(t, "1.8", totals.Cost)
}

func TestAccumulate_NegativeValuesPassThrough(t *testing.T) {
	totals, err := alerting.Accumulate(alertingtest.Rows(
		alertingtest.Row(0, "10", "-3.7", "0", "-1.25"),
	), 1, 1)
	require.NoError(t, err)

	assertDecimal(t, "-3", totals.Clicks)
	assertDecimal(t, "-1.25", totals.Cost)
}

func TestAccumulate_ParseError(t *testing.T) {
	tests := []struct {
		name  string
		row   domain.ReportRow
		field string
	}{
		{name: "Cliques não numéricos", row: alertingtest.Row(0, "10", "abc", "0", "1"), field: "clicks"},
		{name: "Custo vazio", row: alertingtest.Row(0, "10", "1", "0", ""), field: "cost"},
		{name: "Impressões com texto", row: alertingtest.Row(0, "n/a", "1", "0", "1"), field: "impressions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := alerting.Accumulate(alertingtest.Rows(tt.row), 1, 1)
			require.Error(t, err)
			assert.ErrorIs(t, err, alerting.ErrParse)

			var parseErr *alerting.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.field, parseErr.Field)
		})
	}
}

func TestAccumulate_IgnoresMalformedRowsAfterCutoff(t *testing.T) {
	totals, err := alerting.Accumulate(alertingtest.Rows(
		alertingtest.Row(3, "10", "1", "0", "1"),
		alertingtest.Row(9, "bad", "bad", "bad", "bad"),
	), 4, 1)
	require.NoError(t, err)
	assertDecimal(t, "10", totals.Impressions)
}

func TestAccumulate_SequenceError(t *testing.T) {
	apiErr := errors.New("graph api unavailable")

	_, err := alerting.Accumulate(alertingtest.FailingRows(apiErr, alertingtest.Row(0, "1", "1", "1", "1")), 5, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, alerting.ErrFetch)
	assert.ErrorIs(t, err, apiErr)
}

func TestAccumulate_InvalidWeight(t *testing.T) {
	_, err := alerting.Accumulate(alertingtest.Rows(), 5, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, alerting.ErrConfiguration)
}
