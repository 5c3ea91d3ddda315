package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/traffic-anomaly-alerts/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/config"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/metrics"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultTimeout = 60 * time.Second
	pageLimit      = "200"
)

type Client interface {
	GetBusinesses(ctx context.Context) ([]metadomain.BusinessManager, error)
	GetAdAccountsByBusinessID(ctx context.Context, businessID string) ([]metadomain.AdAccount, error)
	GetHourlyInsights(ctx context.Context, accountID string, params url.Values, after string) (*metadomain.ResponseHourlyInsights, error)
	RefreshToken(ctx context.Context) error
	EnsureValidToken(ctx context.Context) error
}

type MetaClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager
	HTTPClient   *http.Client
	Limiter      *rate.Limiter
}

// NewClient cria o cliente da Graph API; META_REQUESTS_PER_SECOND <= 0 desliga o limite
func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	limit := rate.Inf
	if cfg.Meta.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.Meta.RequestsPerSecond)
	}

	return &MetaClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		HTTPClient:   &http.Client{Timeout: defaultTimeout},
		Limiter:      rate.NewLimiter(limit, 1),
	}
}

// RefreshToken obtém um novo token de longa duração
func (c *MetaClient) RefreshToken(ctx context.Context) error {
	return c.TokenManager.RefreshToken(ctx)
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se necessário
func (c *MetaClient) EnsureValidToken(ctx context.Context) error {
	return c.TokenManager.EnsureValidToken(ctx)
}

// GetBusinesses lista as contas gerenciadoras acessíveis pelo token
func (c *MetaClient) GetBusinesses(ctx context.Context) ([]metadomain.BusinessManager, error) {
	params := url.Values{}
	params.Set("fields", "id,name")
	params.Set("limit", pageLimit)

	businesses := make([]metadomain.BusinessManager, 0)
	after := ""
	for {
		if after != "" {
			params.Set("after", after)
		}

		var page metadomain.ResponseBusinesses
		if err := c.get(ctx, "businesses", "/me/businesses", params, &page); err != nil {
			return nil, err
		}
		businesses = append(businesses, page.Data...)

		if !page.Paging.HasNext() {
			return businesses, nil
		}
		after = page.Paging.Cursors.After
	}
}

// GetAdAccountsByBusinessID lista todas as contas de anúncio da conta gerenciadora, página a página
func (c *MetaClient) GetAdAccountsByBusinessID(ctx context.Context, businessID string) ([]metadomain.AdAccount, error) {
	params := url.Values{}
	params.Set("fields", "id,account_id,name,currency,timezone_name,account_status")
	params.Set("limit", pageLimit)

	accounts := make([]metadomain.AdAccount, 0)
	after := ""
	for {
		if after != "" {
			params.Set("after", after)
		}

		var page metadomain.ResponseAdAccounts
		if err := c.get(ctx, "owned_ad_accounts", fmt.Sprintf("/%s/owned_ad_accounts", businessID), params, &page); err != nil {
			return nil, err
		}
		accounts = append(accounts, page.Data...)

		if !page.Paging.HasNext() {
			return accounts, nil
		}
		after = page.Paging.Cursors.After
	}
}

// GetHourlyInsights busca uma página do relatório horário da conta. after vazio pede a primeira página.
func (c *MetaClient) GetHourlyInsights(ctx context.Context, accountID string, params url.Values, after string) (*metadomain.ResponseHourlyInsights, error) {
	pageParams := url.Values{}
	for key, values := range params {
		pageParams[key] = append([]string(nil), values...)
	}
	if after != "" {
		pageParams.Set("after", after)
	}

	var page metadomain.ResponseHourlyInsights
	if err := c.get(ctx, "insights", fmt.Sprintf("/act_%s/insights", accountID), pageParams, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// get faz a chamada à Graph API. Quando o token expira ele é renovado e a chamada repetida uma vez.
func (c *MetaClient) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	for attempt := 0; ; attempt++ {
		params.Set("access_token", c.TokenManager.AccessToken())
		requestURL := c.Cfg.Meta.URL + path + "?" + params.Encode()

		body, status, err := c.do(ctx, endpoint, requestURL)
		if err != nil {
			return err
		}

		if status == http.StatusOK {
			if err := json.Unmarshal(body, out); err != nil {
				return errors.Wrapf(err, "erro ao decodificar resposta de %s", endpoint)
			}
			return nil
		}

		err = c.TokenManager.HandleErrorBody(ctx, status, body)
		if errors.Is(err, ErrTokenRefreshed) && attempt == 0 {
			logrus.WithField("endpoint", endpoint).Info("Token renovado, repetindo chamada")
			continue
		}
		return err
	}
}

func (c *MetaClient) do(ctx context.Context, endpoint, requestURL string) ([]byte, int, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, 0, errors.Wrapf(err, "aguardando limite de chamadas para %s", endpoint)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, "erro ao criar requisição")
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	metrics.MetaRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MetaRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, 0, errors.Wrapf(err, "erro ao chamar %s", endpoint)
	}
	defer resp.Body.Close()

	metrics.MetaRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errors.Wrap(err, "erro ao ler resposta")
	}

	return body, resp.StatusCode, nil
}
