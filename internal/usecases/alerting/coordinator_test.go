package alerting_test

import (
	"context"
	"errors"
	"strings"
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

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func defaultValues() map[string]string {
	return map[string]string{
		"threshold_impressions":    "0.8",
		"threshold_clicks":         "0.9",
		"threshold_conversions":    domain.NoAlert,
		"threshold_cost":           domain.NoAlert,
		domain.RangeAveragingWeeks: "2",
		domain.RangeEmail:          "traffic@loja.com.br",
	}
}

func newTestService(store alerting.TrackingStore, notifier alerting.Notifier, clock *fixedClock, labelFilter string) *alerting.Service {
	return alerting.NewService(testAccounts(), testReports(), store, notifier, alerting.RunConfig{
		Location:       time.UTC,
		ReportingDelay: domain.ReportingDelay,
		LabelFilter:    labelFilter,
		MaxAccounts:    alerting.MaxAccounts,
	}).WithClock(clock.Now)
}

func TestService_Run_IdempotentWithinTheDay(t *testing.T) {
	store := alertingtest.NewMemoryStoreWithValues(defaultValues())
	notifier := &alertingtest.RecordingNotifier{}
	clock := &fixedClock{now: time.Date(2024, 3, 4, 17, 10, 0, 0, time.UTC)}
	service := newTestService(store, notifier, clock, "")
	ctx := context.Background()

	summary, err := service.Run(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, summary.CorrelationID)
	assert.Equal(t, 14, summary.CutoffHour)
	assert.Equal(t, 3, summary.Accounts)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Alerts)
	assert.True(t, summary.Notified)

	assert.Equal(t, "2024-03-04", store.Value(domain.RangeDate))
	assert.Equal(t, "Data until 14:00", store.Value(domain.RangeCutoff))
	assert.Equal(t, "Alerted at 2024-03-04 17:10", store.Value(domain.MetricClicks.StatusRange()))
	assert.Equal(t, "", store.Value(domain.MetricCost.StatusRange()))

	sent := notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "traffic@loja.com.br", sent[0].To)
	assert.Equal(t, "Traffic alerts: 1 account(s) with anomalies", sent[0].Subject)
	assert.Equal(t, lojaCentroBlock, sent[0].Body)

	// Uma hora depois, mesmo dia: nada novo a alertar
	clock.now = clock.now.Add(time.Hour)
	summary, err = service.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Alerts)
	assert.False(t, summary.Notified)
	assert.Len(t, notifier.Sent(), 1)
	assert.Equal(t, "Data until 15:00", store.Value(domain.RangeCutoff))

	// Primeira execução do dia seguinte: 04:10 menos 3 horas, corte à 1:00
	clock.now = time.Date(2024, 3, 5, 4, 10, 0, 0, time.UTC)
	summary, err = service.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CutoffHour)
	assert.True(t, summary.Notified)

	sent = notifier.Sent()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[1].Body, "Clicks too low: 7 Clicks by 1:00, expecting at least 7.2")
	assert.Equal(t, "Alerted at 2024-03-05 04:10", store.Value(domain.MetricClicks.StatusRange()))
}

func TestService_Run_UsesConfiguredTimeZone(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	store := alertingtest.NewMemoryStoreWithValues(defaultValues())
	notifier := &alertingtest.RecordingNotifier{}
	// 20:10 UTC são 17:10 em São Paulo
	clock := &fixedClock{now: time.Date(2024, 3, 4, 20, 10, 0, 0, time.UTC)}
	service := alerting.NewService(testAccounts(), testReports(), store, notifier, alerting.RunConfig{
		Location:       saoPaulo,
		ReportingDelay: domain.ReportingDelay,
		MaxAccounts:    alerting.MaxAccounts,
	}).WithClock(clock.Now)

	summary, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saoPaulo, summary.StartedAt.Location())
	assert.Equal(t, saoPaulo, summary.CompletedAt.Location())

	assert.Equal(t, "2024-03-04", store.Value(domain.RangeDate))
	assert.Equal(t, "Data until 14:00", store.Value(domain.RangeCutoff))
	assert.Equal(t, "Alerted at 2024-03-04 17:10", store.Value(domain.MetricClicks.StatusRange()))

	rows := store.Rows()
	require.NotEmpty(t, rows)
	for _, row := range rows {
		assert.Equal(t, 17, row.UpdatedAt.Hour())
	}

	// 02:30 UTC do dia 5 ainda é dia 4 em São Paulo: a marcação não pode mudar de data
	clock.now = time.Date(2024, 3, 5, 2, 30, 0, 0, time.UTC)
	_, err = service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", store.Value(domain.RangeDate))
	assert.Equal(t, "Data until 20:00", store.Value(domain.RangeCutoff))
	assert.Equal(t, "Alerted at 2024-03-04 17:10", store.Value(domain.MetricClicks.StatusRange()))
}

func TestService_Run_PlaceholderEmail(t *testing.T) {
	values := defaultValues()
	values[domain.RangeEmail] = domain.PlaceholderEmail
	store := alertingtest.NewMemoryStoreWithValues(values)
	notifier := &alertingtest.RecordingNotifier{}
	clock := &fixedClock{now: time.Date(2024, 3, 4, 17, 10, 0, 0, time.UTC)}

	summary, err := newTestService(store, notifier, clock, "").Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, alerting.ErrConfiguration)

	assert.Equal(t, "", store.Value(domain.RangeDate))
	assert.Empty(t, store.Rows())
	assert.Empty(t, notifier.Sent())
}

func TestService_Run_NoAlertsNoNotification(t *testing.T) {
	values := defaultValues()
	for _, metric := range domain.Metrics {
		values[metric.ThresholdRange()] = domain.NoAlert
	}
	store := alertingtest.NewMemoryStoreWithValues(values)
	notifier := &alertingtest.RecordingNotifier{}
	clock := &fixedClock{now: time.Date(2024, 3, 4, 17, 10, 0, 0, time.UTC)}

	summary, err := newTestService(store, notifier, clock, "").Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Alerts)
	assert.False(t, summary.Notified)
	assert.Empty(t, notifier.Sent())
	assert.Len(t, store.Rows(), 2)
}

func TestService_Run_BlankEmailSkipsNotification(t *testing.T) {
	values := defaultValues()
	values[domain.RangeEmail] = ""
	store := alertingtest.NewMemoryStoreWithValues(values)
	notifier := &alertingtest.RecordingNotifier{}
	clock := &fixedClock{now: time.Date(2024, 3, 4, 17, 10, 0, 0, time.UTC)}

	summary, err := newTestService(store, notifier, clock, "").Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Alerts)
	assert.False(t, summary.Notified)
	assert.Empty(t, notifier.Sent())
}

func TestService_Run_NotificationFailureDoesNotFailRun(t *testing.T) {
	store := alertingtest.NewMemoryStoreWithValues(defaultValues())
	notifier := &alertingtest.RecordingNotifier{Err: errors.New("smtp: 421 service not available")}
	clock := &fixedClock{now: time.Date(2024, 3, 4, 17, 10, 0, 0, time.UTC)}

	summary, err := newTestService(store, notifier, clock, "").Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Alerts)
	assert.False(t, summary.Notified)
}

func TestService_Run_LabelFilter(t *testing.T) {
	store := alertingtest.NewMemoryStoreWithValues(defaultValues())
	notifier := &alertingtest.RecordingNotifier{}
	clock := &fixedClock{now: time.Date(2024, 3, 4, 17, 10, 0, 0, time.UTC)}

	summary, err := newTestService(store, notifier, clock, "premium").Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Accounts)
	assert.Equal(t, 0, summary.Failed)

	// As contas filtradas ocupam as linhas 1 e 2
	rows := store.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "333", rows[1].AccountID)
	assert.Equal(t, 2, rows[1].Row)
}

func TestService_Run_ManyAccountsInOneEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := alertingtest.StaticAccounts{
		{ExternalID: "111", Name: "Loja Centro", Currency: "BRL"},
		{ExternalID: "444", Name: "Loja Leste", Currency: "BRL"},
	}
	reports := testReports()
	reports.Today["444"] = reports.Today["111"]
	reports.Historical["444"] = reports.Historical["111"]

	mockNotifier := mocks.NewMockNotifier(ctrl)
	mockNotifier.EXPECT().
		Send(gomock.Any(), "traffic@loja.com.br", "Traffic alerts: 2 account(s) with anomalies", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, body string) error {
			blocks := strings.Split(body, "\n\n")
			require.Len(t, blocks, 2)
			assert.True(t, strings.HasPrefix(blocks[0], "Account: Loja Centro (111)"))
			assert.True(t, strings.HasPrefix(blocks[1], "Account: Loja Leste (444)"))
			return nil
		})

	store := alertingtest.NewMemoryStoreWithValues(defaultValues())
	clock := &fixedClock{now: time.Date(2024, 3, 4, 17, 10, 0, 0, time.UTC)}
	service := alerting.NewService(accounts, reports, store, mockNotifier, alerting.RunConfig{
		Location:       time.UTC,
		ReportingDelay: domain.ReportingDelay,
	}).WithClock(clock.Now)

	summary, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Alerts)
	assert.True(t, summary.Notified)
}

func TestService_Run_ResetFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockTrackingStore(ctrl)
	mockAccounts := mocks.NewMockAccountSource(ctrl)
	mockNotifier := mocks.NewMockNotifier(ctrl)

	for name, value := range defaultValues() {
		mockStore.EXPECT().GetValue(gomock.Any(), name).Return(value, nil).AnyTimes()
	}
	mockStore.EXPECT().SetValue(gomock.Any(), domain.RangeDate, "2024-03-05").Return(nil)
	mockStore.EXPECT().SetValue(gomock.Any(), domain.RangeCutoff, "Data until 1:00").Return(nil)
	mockStore.EXPECT().ClearAlertMarks(gomock.Any(), alerting.MaxAccounts+1).Return(errors.New("locked"))

	clock := &fixedClock{now: time.Date(2024, 3, 5, 4, 10, 0, 0, time.UTC)}
	service := alerting.NewService(mockAccounts, testReports(), mockStore, mockNotifier, alerting.RunConfig{
		Location:       time.UTC,
		ReportingDelay: domain.ReportingDelay,
	}).WithClock(clock.Now)

	_, err := service.Run(context.Background())
	assert.Error(t, err)
}
