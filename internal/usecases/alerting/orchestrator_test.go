package alerting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting/alertingtest"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting/mocks"
	"go.uber.org/mock/gomock"
)

const lojaCentroBlock = "Account: Loja Centro (111)\n" +
	"Impressions too low: 50 Impressions by 14:00, expecting at least 80\n" +
	"Clicks too low: 7 Clicks by 14:00, expecting at least 7.2"

func testAccounts() alertingtest.StaticAccounts {
	return alertingtest.StaticAccounts{
		{ExternalID: "111", Name: "Loja Centro", Currency: "BRL", Labels: []string{"premium"}},
		{ExternalID: "222", Name: "Loja Norte", Currency: "BRL"},
		{ExternalID: "333", Name: "Loja Sul", Currency: "BRL", Labels: []string{"premium"}},
	}
}

func testReports() *alertingtest.StaticReports {
	return &alertingtest.StaticReports{
		Today: map[string][]domain.ReportRow{
			"111": {
				alertingtest.Row(0, "50", "7", "1", "10.00"),
				alertingtest.Row(23, "9,999", "999", "99", "999.99"),
			},
			"333": {alertingtest.Row(0, "300", "40", "4", "20.00")},
		},
		Historical: map[string][]domain.ReportRow{
			"111": {
				alertingtest.Row(0, "100", "8", "1", "10.00"),
				alertingtest.Row(0, "100", "8", "1", "10.00"),
			},
			"333": {
				alertingtest.Row(0, "300", "40", "4", "20.00"),
				alertingtest.Row(0, "300", "40", "4", "20.00"),
			},
		},
		Errors: map[string]error{
			"222": errors.New("graph api unavailable"),
		},
	}
}

func testSettings() *domain.AlertSettings {
	return &domain.AlertSettings{
		Thresholds:     domain.ThresholdSet{Impressions: ratio("0.8"), Clicks: ratio("0.9")},
		AveragingWeeks: 2,
		Email:          "traffic@loja.com.br",
	}
}

// 17:10 menos o atraso de 3 horas: corte às 14:00
func testRunContext() domain.RunContext {
	return domain.NewRunContext(time.Date(2024, 3, 4, 17, 10, 0, 0, time.UTC), domain.ReportingDelay, 2)
}

func TestOrchestrator_ProcessAccounts(t *testing.T) {
	store := alertingtest.NewMemoryStore()
	orchestrator := alerting.NewOrchestrator(testReports(), store, alerting.NewStateTracker(store), alerting.MaxAccounts)
	ctx := context.Background()

	result := orchestrator.ProcessAccounts(ctx, testRunContext(), testAccounts(), testSettings())

	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Blocks, 1)
	assert.Equal(t, lojaCentroBlock, result.Blocks[0])

	rows := store.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Row)
	assert.Equal(t, "111", rows[0].AccountID)
	assert.Equal(t, []string{"111", "50", "7", "1", "10.00", "100", "8.0", "1.0", "10.00"}, rows[0].Cells())
	assert.Equal(t, 3, rows[1].Row)
	assert.Equal(t, "333", rows[1].AccountID)

	t.Run("Segunda execução no mesmo dia não repete alertas", func(t *testing.T) {
		again := orchestrator.ProcessAccounts(ctx, testRunContext(), testAccounts(), testSettings())
		assert.Empty(t, again.Blocks)
		assert.Equal(t, 1, again.Failed)
	})
}

func TestOrchestrator_ProcessAccounts_MaxAccounts(t *testing.T) {
	store := alertingtest.NewMemoryStore()
	orchestrator := alerting.NewOrchestrator(testReports(), store, alerting.NewStateTracker(store), 1)

	result := orchestrator.ProcessAccounts(context.Background(), testRunContext(), testAccounts(), testSettings())

	assert.Equal(t, 1, result.Processed)
	assert.Len(t, store.Rows(), 1)
}

func TestOrchestrator_ProcessAccount_ParseError(t *testing.T) {
	store := alertingtest.NewMemoryStore()
	reports := &alertingtest.StaticReports{
		Today: map[string][]domain.ReportRow{"111": {alertingtest.Row(0, "50", "sete", "1", "10")}},
	}
	orchestrator := alerting.NewOrchestrator(reports, store, alerting.NewStateTracker(store), alerting.MaxAccounts)

	block, err := orchestrator.ProcessAccount(context.Background(), testRunContext(), testAccounts()[0], 1, testSettings())
	require.Error(t, err)
	assert.ErrorIs(t, err, alerting.ErrParse)
	assert.Equal(t, "", block)
	assert.Empty(t, store.Rows())

	var alertErr *alerting.AlertError
	require.ErrorAs(t, err, &alertErr)
	assert.Equal(t, "111", alertErr.AccountID)
	assert.Equal(t, alerting.CodeParse, alertErr.Code)
}

func TestOrchestrator_ProcessAccount_NoTriggeredDecisions(t *testing.T) {
	store := alertingtest.NewMemoryStore()
	orchestrator := alerting.NewOrchestrator(testReports(), store, alerting.NewStateTracker(store), alerting.MaxAccounts)

	block, err := orchestrator.ProcessAccount(context.Background(), testRunContext(), testAccounts()[2], 3, testSettings())
	require.NoError(t, err)
	assert.Equal(t, "", block)
	assert.Len(t, store.Rows(), 1)
}

func TestOrchestrator_ProcessAccount_DashboardErrorDoesNotStopAlerts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockTrackingStore(ctrl)
	orchestrator := alerting.NewOrchestrator(testReports(), mockStore, alerting.NewStateTracker(mockStore), alerting.MaxAccounts)

	mockStore.EXPECT().SaveDashboardRow(gomock.Any(), gomock.Any()).Return(errors.New("read-only"))
	mockStore.EXPECT().GetAlertMark(gomock.Any(), 1, gomock.Any()).Return(nil, nil).Times(2)
	mockStore.EXPECT().SaveAlertMark(gomock.Any(), 1, gomock.Any(), gomock.Any()).Return(nil).Times(2)
	mockStore.EXPECT().SetValue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	block, err := orchestrator.ProcessAccount(context.Background(), testRunContext(), testAccounts()[0], 1, testSettings())
	require.NoError(t, err)
	assert.Equal(t, lojaCentroBlock, block)
}

func TestOrchestrator_ProcessAccount_MarkErrorSuppressesMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockTrackingStore(ctrl)
	orchestrator := alerting.NewOrchestrator(testReports(), mockStore, alerting.NewStateTracker(mockStore), alerting.MaxAccounts)

	mockStore.EXPECT().SaveDashboardRow(gomock.Any(), gomock.Any()).Return(nil)
	mockStore.EXPECT().GetAlertMark(gomock.Any(), 1, gomock.Any()).Return(nil, nil).Times(2)
	mockStore.EXPECT().SaveAlertMark(gomock.Any(), 1, gomock.Any(), gomock.Any()).Return(errors.New("locked")).Times(2)

	block, err := orchestrator.ProcessAccount(context.Background(), testRunContext(), testAccounts()[0], 1, testSettings())
	require.NoError(t, err)
	assert.Equal(t, "", block)
}
