package meta

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	metadomain "github.com/vfg2006/traffic-anomaly-alerts/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FactoryAdAccount converte a conta do Meta para o domínio. O external_id fica sem o prefixo "act_".
func FactoryAdAccount(acc metadomain.AdAccount, bm domain.BusinessManager) *domain.AdAccount {
	externalID := acc.AccountID
	if externalID == "" {
		externalID = strings.TrimPrefix(acc.ID, "act_")
	}

	status := domain.AdAccountStatusActive
	if !acc.IsActive() {
		status = domain.AdAccountStatusInactive
	}

	return &domain.AdAccount{
		BusinessManagerID:   bm.ExternalID,
		BusinessManagerName: bm.Name,
		Currency:            acc.Currency,
		ExternalID:          externalID,
		Labels:              []string{},
		Name:                acc.Name,
		Status:              status,
		TimeZone:            acc.TimeZoneName,
	}
}

// FactoryReportRow converte uma linha de insights horários. Métricas ausentes viram "0".
func FactoryReportRow(insight metadomain.HourlyInsight, conversionActionType string) (domain.ReportRow, error) {
	hour, err := insight.Hour()
	if err != nil {
		return domain.ReportRow{}, errors.Wrapf(err, "hora inválida no relatório: %q", insight.HourlyStats)
	}

	weekday, err := insight.Weekday()
	if err != nil {
		return domain.ReportRow{}, errors.Wrapf(err, "data inválida no relatório: %q", insight.DateStart)
	}

	return domain.ReportRow{
		HourOfDay:   hour,
		DayOfWeek:   weekday,
		Impressions: metadomain.NumericOrZero(insight.Impressions),
		Clicks:      metadomain.NumericOrZero(insight.Clicks),
		Conversions: insight.ActionValue(conversionActionType),
		Cost:        metadomain.NumericOrZero(insight.Spend),
	}, nil
}
