package alerting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting/alertingtest"
)

func TestBuildDashboard(t *testing.T) {
	ctx := context.Background()
	store := alertingtest.NewMemoryStoreWithValues(map[string]string{
		domain.RangeEmail: "traffic@loja.com.br",
	})
	orchestrator := alerting.NewOrchestrator(testReports(), store, alerting.NewStateTracker(store), alerting.MaxAccounts)
	orchestrator.ProcessAccounts(ctx, testRunContext(), testAccounts(), testSettings())

	view, err := alerting.BuildDashboard(ctx, store)
	require.NoError(t, err)

	assert.Equal(t, "traffic@loja.com.br", view.Values[domain.RangeEmail])
	assert.Contains(t, view.Values[domain.MetricClicks.StatusRange()], "Alerted at ")

	require.Len(t, view.Rows, 2)

	centro := view.Rows[0]
	assert.Equal(t, 1, centro.Row)
	assert.Equal(t, "111", centro.AccountID)
	assert.Equal(t, "Loja Centro", centro.AccountName)
	assert.Equal(t, map[string]string{"impressions": "50", "clicks": "7", "conversions": "1", "cost": "10.00"}, centro.Today)
	assert.Equal(t, map[string]string{"impressions": "100", "clicks": "8.0", "conversions": "1.0", "cost": "10.00"}, centro.Baseline)
	assert.Equal(t, []string{"impressions", "clicks"}, centro.Alerted)

	sul := view.Rows[1]
	assert.Equal(t, 3, sul.Row)
	assert.Empty(t, sul.Alerted)
}

func TestBuildDashboard_Empty(t *testing.T) {
	view, err := alerting.BuildDashboard(context.Background(), alertingtest.NewMemoryStore())
	require.NoError(t, err)
	assert.Empty(t, view.Rows)
	assert.Empty(t, view.Values)
}

type failingReader struct {
	*alertingtest.MemoryStore
}

func (failingReader) ListAlertMarks(context.Context) (map[int]map[domain.Metric]*domain.AlertMark, error) {
	return nil, errors.New("store offline")
}

func TestBuildDashboard_ReadError(t *testing.T) {
	_, err := alerting.BuildDashboard(context.Background(), failingReader{alertingtest.NewMemoryStore()})
	assert.ErrorContains(t, err, "store offline")
}
