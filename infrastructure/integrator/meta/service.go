package meta

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-anomaly-alerts/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/config"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
)

const hourlyBreakdown = "hourly_stats_aggregated_by_advertiser_time_zone"

// Campos do relatório pedidos à Graph API para cada campo do domínio
var reportFieldMapping = map[string]string{
	"impressions": "impressions",
	"clicks":      "clicks",
	"conversions": "actions",
	"spend":       "spend",
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// GetAdAccounts lista as contas de anúncio das contas gerenciadoras configuradas.
// Sem META_BUSINESS_IDS usa todas as contas gerenciadoras acessíveis pelo token.
func (s *MetaIntegrator) GetAdAccounts(ctx context.Context) ([]*domain.AdAccount, error) {
	if err := s.Client.EnsureValidToken(ctx); err != nil {
		logrus.WithError(err).Warn("Não foi possível validar o token antes da sincronização")
	}

	businesses, err := s.getBusinessManagers(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.AdAccount, 0)
	for _, bm := range businesses {
		metaAccounts, err := s.Client.GetAdAccountsByBusinessID(ctx, bm.ExternalID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"business_id": bm.ExternalID,
				"error":       err.Error(),
			}).Error("sync: failed to get ad accounts from API")
			return nil, errors.Wrapf(err, "erro ao listar contas da conta gerenciadora %s", bm.ExternalID)
		}

		for _, acc := range metaAccounts {
			accounts = append(accounts, FactoryAdAccount(acc, bm))
		}

		logrus.WithFields(logrus.Fields{
			"business_id": bm.ExternalID,
			"accounts":    len(metaAccounts),
		}).Debug("sync: ad accounts retrieved")
	}

	return accounts, nil
}

func (s *MetaIntegrator) getBusinessManagers(ctx context.Context) ([]domain.BusinessManager, error) {
	if len(s.cfg.Meta.BusinessIDs) > 0 {
		businesses := make([]domain.BusinessManager, 0, len(s.cfg.Meta.BusinessIDs))
		for _, id := range s.cfg.Meta.BusinessIDs {
			businesses = append(businesses, domain.BusinessManager{ExternalID: id})
		}
		return businesses, nil
	}

	metaBusinesses, err := s.Client.GetBusinesses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar contas gerenciadoras")
	}

	businesses := make([]domain.BusinessManager, 0, len(metaBusinesses))
	for _, bm := range metaBusinesses {
		businesses = append(businesses, domain.BusinessManager{ExternalID: bm.ID, Name: bm.Name})
	}
	return businesses, nil
}

// HourlyReport busca o relatório horário da conta página a página, conforme a sequência é consumida.
// Linhas de outro dia da semana são descartadas quando a consulta filtra por dia.
func (s *MetaIntegrator) HourlyReport(ctx context.Context, account *domain.AdAccount, query domain.ReportQuery) iter.Seq2[domain.ReportRow, error] {
	return func(yield func(domain.ReportRow, error) bool) {
		params, err := insightParams(query)
		if err != nil {
			yield(domain.ReportRow{}, err)
			return
		}

		after := ""
		for page := 1; ; page++ {
			logrus.WithFields(logrus.Fields{
				"account_id": account.ExternalID,
				"period":     describeQuery(query),
				"page":       page,
			}).Debug("Buscando página do relatório horário")

			resp, err := s.Client.GetHourlyInsights(ctx, account.ExternalID, params, after)
			if err != nil {
				yield(domain.ReportRow{}, errors.Wrapf(err, "erro ao buscar página %d do relatório", page))
				return
			}

			for _, insight := range resp.Data {
				row, err := FactoryReportRow(insight, s.cfg.Meta.ConversionActionType)
				if err != nil {
					yield(domain.ReportRow{}, err)
					return
				}
				if !query.Matches(row) {
					continue
				}
				if !yield(row, nil) {
					return
				}
			}

			if !resp.Paging.HasNext() {
				return
			}
			after = resp.Paging.Cursors.After
		}
	}
}

func insightParams(query domain.ReportQuery) (url.Values, error) {
	fields := []string{"date_start"}
	for _, field := range query.Fields {
		mapped, ok := reportFieldMapping[field]
		if !ok {
			return nil, errors.Errorf("campo de relatório desconhecido: %s", field)
		}
		fields = append(fields, mapped)
	}

	timeRange, err := json.Marshal(map[string]string{
		"since": query.StartDate.Format(time.DateOnly),
		"until": query.EndDate.Format(time.DateOnly),
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao montar o período do relatório")
	}

	params := url.Values{}
	params.Set("level", "account")
	params.Set("fields", strings.Join(fields, ","))
	params.Set("breakdowns", hourlyBreakdown)
	params.Set("time_increment", "1")
	params.Set("time_range", string(timeRange))
	params.Set("limit", "500")

	return params, nil
}

func describeQuery(query domain.ReportQuery) string {
	return fmt.Sprintf("%s..%s", query.StartDate.Format(time.DateOnly), query.EndDate.Format(time.DateOnly))
}
