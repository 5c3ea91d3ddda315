package alertingtest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting"
)

// TestTrackingStoreContract verifica o comportamento comum a qualquer alerting.TrackingStore.
// Cada implementação chama a função a partir do próprio _test.go:
//
//	func TestContract(t *testing.T) {
//	    alertingtest.TestTrackingStoreContract(t, func() alerting.TrackingStore { return newStore(t) })
//	}
func TestTrackingStoreContract(t *testing.T, factory func() alerting.TrackingStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("valor inexistente volta vazio", func(t *testing.T) {
		store := factory()
		value, err := store.GetValue(ctx, "missing")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("valor gravado é sobrescrito", func(t *testing.T) {
		store := factory()
		require.NoError(t, store.SetValue(ctx, domain.RangeEmail, "first@example.com"))
		require.NoError(t, store.SetValue(ctx, domain.RangeEmail, "second@example.com"))

		value, err := store.GetValue(ctx, domain.RangeEmail)
		require.NoError(t, err)
		assert.Equal(t, "second@example.com", value)
	})

	t.Run("linha sem marcação volta nil", func(t *testing.T) {
		store := factory()
		mark, err := store.GetAlertMark(ctx, 1, domain.MetricClicks)
		require.NoError(t, err)
		assert.Nil(t, mark)
		assert.True(t, mark.IsUnmarked())
	})

	t.Run("marcação é isolada por linha e métrica", func(t *testing.T) {
		store := factory()
		at := time.Date(2024, 3, 4, 14, 5, 0, 0, time.UTC)
		require.NoError(t, store.SaveAlertMark(ctx, 2, domain.MetricCost, &domain.AlertMark{
			TodayColor:    domain.MetricCost.MarkColor(),
			BaselineColor: domain.MetricCost.MarkColor(),
			MarkedAt:      &at,
		}))

		mark, err := store.GetAlertMark(ctx, 2, domain.MetricCost)
		require.NoError(t, err)
		require.NotNil(t, mark)
		assert.Equal(t, "#d9ead3", mark.TodayColor)
		assert.Equal(t, "#d9ead3", mark.BaselineColor)
		assert.False(t, mark.IsUnmarked())

		other, err := store.GetAlertMark(ctx, 2, domain.MetricClicks)
		require.NoError(t, err)
		assert.True(t, other.IsUnmarked())

		otherRow, err := store.GetAlertMark(ctx, 3, domain.MetricCost)
		require.NoError(t, err)
		assert.True(t, otherRow.IsUnmarked())
	})

	t.Run("limpeza respeita o limite de linhas", func(t *testing.T) {
		store := factory()
		for _, row := range []int{1, 5, 10} {
			require.NoError(t, store.SaveAlertMark(ctx, row, domain.MetricImpressions, &domain.AlertMark{
				TodayColor:    "#f4cccc",
				BaselineColor: "#f4cccc",
			}))
		}

		require.NoError(t, store.ClearAlertMarks(ctx, 10))

		for _, row := range []int{1, 5} {
			mark, err := store.GetAlertMark(ctx, row, domain.MetricImpressions)
			require.NoError(t, err)
			assert.True(t, mark.IsUnmarked(), "linha %d deveria estar limpa", row)
		}
		mark, err := store.GetAlertMark(ctx, 10, domain.MetricImpressions)
		require.NoError(t, err)
		assert.False(t, mark.IsUnmarked())
	})

	t.Run("linha do dashboard é regravada na mesma posição", func(t *testing.T) {
		store := factory()
		row := &domain.DashboardRow{
			Row:         1,
			AccountID:   "123",
			AccountName: "Loja Centro",
			Today:       domain.MetricTotals{Impressions: decimal.NewFromInt(100)},
			UpdatedAt:   time.Date(2024, 3, 4, 14, 5, 0, 0, time.UTC),
		}
		require.NoError(t, store.SaveDashboardRow(ctx, row))

		row.Today.Impressions = decimal.NewFromInt(200)
		assert.NoError(t, store.SaveDashboardRow(ctx, row))
	})
}
