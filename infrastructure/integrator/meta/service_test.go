package meta_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-anomaly-alerts/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/traffic-anomaly-alerts/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/config"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
)

const purchase = "offsite_conversion.fb_pixel_purchase"

func newIntegrator(t *testing.T, handler http.Handler, businessIDs ...string) (*meta.MetaIntegrator, *config.Config) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Meta: config.Meta{
			URL:                  srv.URL + "/v22.0",
			AccessToken:          "short-token",
			AppID:                "app",
			AppSecret:            "secret",
			BusinessIDs:          businessIDs,
			ConversionActionType: purchase,
		},
	}

	client := metaclient.NewClient(cfg, metaclient.NewTokenManager(cfg))
	return meta.New(cfg, client), cfg
}

func collect(t *testing.T, integrator *meta.MetaIntegrator, query domain.ReportQuery) ([]domain.ReportRow, error) {
	t.Helper()

	account := &domain.AdAccount{ExternalID: "111"}
	rows := make([]domain.ReportRow, 0)
	for row, err := range integrator.HourlyReport(context.Background(), account, query) {
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func monday() time.Time {
	return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
}

func TestHourlyReport_PagesAndConvertsRows(t *testing.T) {
	var requests atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v22.0/act_111/insights", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		q := r.URL.Query()
		assert.Equal(t, "hourly_stats_aggregated_by_advertiser_time_zone", q.Get("breakdowns"))
		assert.Equal(t, "1", q.Get("time_increment"))
		assert.Equal(t, `{"since":"2026-10-19","until":"2026-10-19"}`, q.Get("time_range"))
		assert.Equal(t, "date_start,impressions,clicks,actions,spend", q.Get("fields"))
		assert.Equal(t, "short-token", q.Get("access_token"))

		if q.Get("after") == "" {
			fmt.Fprint(w, `{
				"data": [
					{"date_start": "2026-10-19", "hourly_stats_aggregated_by_advertiser_time_zone": "00:00:00 - 00:59:59",
					 "impressions": "120", "clicks": "4", "spend": "3.50",
					 "actions": [{"action_type": "link_click", "value": "4"}, {"action_type": "offsite_conversion.fb_pixel_purchase", "value": "1"}]}
				],
				"paging": {"cursors": {"before": "b0", "after": "c1"}, "next": "https://graph.facebook.com/next"}
			}`)
			return
		}

		assert.Equal(t, "c1", q.Get("after"))
		fmt.Fprint(w, `{
			"data": [
				{"date_start": "2026-10-19", "hourly_stats_aggregated_by_advertiser_time_zone": "13:00:00 - 13:59:59",
				 "impressions": "80", "spend": "1.25"}
			],
			"paging": {"cursors": {"before": "c1", "after": "c2"}}
		}`)
	})

	integrator, _ := newIntegrator(t, mux)
	date := monday()

	rows, err := collect(t, integrator, domain.ReportQuery{Fields: domain.ReportFields, StartDate: date, EndDate: date})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, domain.ReportRow{
		HourOfDay: 0, DayOfWeek: time.Monday,
		Impressions: "120", Clicks: "4", Conversions: "1", Cost: "3.50",
	}, rows[0])
	assert.Equal(t, domain.ReportRow{
		HourOfDay: 13, DayOfWeek: time.Monday,
		Impressions: "80", Clicks: "0", Conversions: "0", Cost: "1.25",
	}, rows[1])
	assert.Equal(t, int32(2), requests.Load())
}

func TestHourlyReport_FiltersWeekday(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v22.0/act_111/insights", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [
			{"date_start": "2026-10-12", "hourly_stats_aggregated_by_advertiser_time_zone": "09:00:00 - 09:59:59", "impressions": "10", "clicks": "1", "spend": "1"},
			{"date_start": "2026-10-13", "hourly_stats_aggregated_by_advertiser_time_zone": "09:00:00 - 09:59:59", "impressions": "99", "clicks": "9", "spend": "9"},
			{"date_start": "2026-10-05", "hourly_stats_aggregated_by_advertiser_time_zone": "10:00:00 - 10:59:59", "impressions": "20", "clicks": "2", "spend": "2"}
		]}`)
	})

	integrator, _ := newIntegrator(t, mux)
	rc := domain.NewRunContext(monday().Add(17*time.Hour), 3*time.Hour, 2)

	rows, err := collect(t, integrator, rc.HistoricalQuery())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "10", rows[0].Impressions)
	assert.Equal(t, "20", rows[1].Impressions)
	for _, row := range rows {
		assert.Equal(t, time.Monday, row.DayOfWeek)
	}
}

func TestHourlyReport_StopsFetchingWhenConsumerStops(t *testing.T) {
	var requests atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v22.0/act_111/insights", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, `{
			"data": [{"date_start": "2026-10-19", "hourly_stats_aggregated_by_advertiser_time_zone": "01:00:00 - 01:59:59", "impressions": "1"}],
			"paging": {"cursors": {"after": "more"}, "next": "https://graph.facebook.com/next"}
		}`)
	})

	integrator, _ := newIntegrator(t, mux)
	date := monday()

	for _, err := range integrator.HourlyReport(context.Background(), &domain.AdAccount{ExternalID: "111"}, domain.ReportQuery{Fields: domain.ReportFields, StartDate: date, EndDate: date}) {
		require.NoError(t, err)
		break
	}

	assert.Equal(t, int32(1), requests.Load())
}

func TestHourlyReport_RefreshesExpiredTokenAndRetries(t *testing.T) {
	var insightCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v22.0/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "short-token", r.URL.Query().Get("fb_exchange_token"))
		fmt.Fprint(w, `{"access_token": "long-token", "token_type": "bearer", "expires_in": 5184000}`)
	})
	mux.HandleFunc("/v22.0/act_111/insights", func(w http.ResponseWriter, r *http.Request) {
		insightCalls.Add(1)
		if r.URL.Query().Get("access_token") != "long-token" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error": {"message": "Error validating access token: Session has expired", "type": "OAuthException", "code": 190, "error_subcode": 463}}`)
			return
		}
		fmt.Fprint(w, `{"data": [{"date_start": "2026-10-19", "hourly_stats_aggregated_by_advertiser_time_zone": "02:00:00 - 02:59:59", "impressions": "7", "clicks": "1", "spend": "0.70"}]}`)
	})

	integrator, cfg := newIntegrator(t, mux)
	date := monday()

	rows, err := collect(t, integrator, domain.ReportQuery{Fields: domain.ReportFields, StartDate: date, EndDate: date})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].HourOfDay)
	assert.Equal(t, int32(2), insightCalls.Load())
	assert.Equal(t, "long-token", cfg.Meta.AccessToken)
	assert.False(t, cfg.Meta.TokenExpiresAt.IsZero())
}

func TestHourlyReport_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v22.0/act_111/insights", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"message": "(#100) Invalid parameter", "type": "OAuthException", "code": 100}}`)
	})

	integrator, _ := newIntegrator(t, mux)
	date := monday()

	rows, err := collect(t, integrator, domain.ReportQuery{Fields: domain.ReportFields, StartDate: date, EndDate: date})
	require.Error(t, err)
	assert.Empty(t, rows)

	var apiErr *metadomain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 100, apiErr.Details.Code)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestHourlyReport_InvalidHourIsAnError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v22.0/act_111/insights", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"date_start": "2026-10-19", "hourly_stats_aggregated_by_advertiser_time_zone": "xx", "impressions": "7"}]}`)
	})

	integrator, _ := newIntegrator(t, mux)
	date := monday()

	_, err := collect(t, integrator, domain.ReportQuery{Fields: domain.ReportFields, StartDate: date, EndDate: date})
	assert.ErrorContains(t, err, "hora inválida")
}

func TestGetAdAccounts_ConfiguredBusinesses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v22.0/bm1/owned_ad_accounts", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("after") == "" {
			fmt.Fprint(w, `{
				"data": [{"id": "act_111", "account_id": "111", "name": "Loja Centro", "currency": "BRL", "timezone_name": "America/Sao_Paulo", "account_status": 1}],
				"paging": {"cursors": {"after": "p2"}, "next": "https://graph.facebook.com/next"}
			}`)
			return
		}
		fmt.Fprint(w, `{"data": [{"id": "act_222", "name": "Loja Norte", "currency": "BRL", "account_status": 2}]}`)
	})
	mux.HandleFunc("/v22.0/me/businesses", func(w http.ResponseWriter, r *http.Request) {
		t.Error("businesses should not be listed when configured")
	})

	integrator, _ := newIntegrator(t, mux, "bm1")

	accounts, err := integrator.GetAdAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "111", accounts[0].ExternalID)
	assert.Equal(t, "Loja Centro", accounts[0].Name)
	assert.Equal(t, "bm1", accounts[0].BusinessManagerID)
	assert.Equal(t, domain.AdAccountStatusActive, accounts[0].Status)

	assert.Equal(t, "222", accounts[1].ExternalID)
	assert.Equal(t, domain.AdAccountStatusInactive, accounts[1].Status)
}

func TestGetAdAccounts_DiscoversBusinesses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v22.0/me/businesses", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"id": "bm9", "name": "Rede Óticas"}]}`)
	})
	mux.HandleFunc("/v22.0/bm9/owned_ad_accounts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"id": "act_333", "account_id": "333", "name": "Loja Sul", "currency": "USD", "account_status": 1}]}`)
	})

	integrator, _ := newIntegrator(t, mux)

	accounts, err := integrator.GetAdAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "333", accounts[0].ExternalID)
	assert.Equal(t, "Rede Óticas", accounts[0].BusinessManagerName)
	assert.Equal(t, "USD", accounts[0].Currency)
}

func TestHourlyReport_LimiterHonoursContext(t *testing.T) {
	integrator, cfg := newIntegrator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("nenhuma chamada deveria sair com o contexto cancelado")
	}))
	cfg.Meta.RequestsPerSecond = 1

	client := metaclient.NewClient(cfg, metaclient.NewTokenManager(cfg))
	integrator = meta.New(cfg, client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	account := &domain.AdAccount{ExternalID: "111"}
	query := domain.ReportQuery{Fields: domain.ReportFields, StartDate: monday(), EndDate: monday()}
	for _, err := range integrator.HourlyReport(ctx, account, query) {
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		return
	}
	t.Fatal("a sequência deveria devolver o erro do limitador")
}
