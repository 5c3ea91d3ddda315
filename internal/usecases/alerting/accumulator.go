package alerting

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/pkg/utils"
)

// Accumulate soma as linhas do relatório anteriores à hora de corte e divide pelo peso.
// Contagens são truncadas para inteiro linha a linha; o custo mantém as casas decimais.
// weightDivisor é 1 para o dia de hoje e o número de semanas para a média histórica.
func Accumulate(rows iter.Seq2[domain.ReportRow, error], cutoffHour int, weightDivisor int) (domain.MetricTotals, error) {
	if weightDivisor < 1 {
		return domain.MetricTotals{}, NewAlertError(ErrConfiguration, CodeConfiguration,
			fmt.Sprintf("weight divisor must be at least 1, got %d", weightDivisor))
	}

	var impressions, clicks, conversions, cost decimal.Decimal

	for row, err := range rows {
		if err != nil {
			return domain.MetricTotals{}, fmt.Errorf("%w: %w", ErrFetch, err)
		}

		if row.HourOfDay >= cutoffHour {
			continue
		}

		rowImpressions, err := parseCount("impressions", row.Impressions)
		if err != nil {
			return domain.MetricTotals{}, err
		}
		rowClicks, err := parseCount("clicks", row.Clicks)
		if err != nil {
			return domain.MetricTotals{}, err
		}
		rowConversions, err := parseCount("conversions", row.Conversions)
		if err != nil {
			return domain.MetricTotals{}, err
		}
		rowCost, err := parseAmount("cost", row.Cost)
		if err != nil {
			return domain.MetricTotals{}, err
		}

		impressions = impressions.Add(rowImpressions)
		clicks = clicks.Add(rowClicks)
		conversions = conversions.Add(rowConversions)
		cost = cost.Add(rowCost)
	}

	// A divisão é feita uma única vez, sobre a soma
	weight := decimal.NewFromInt(int64(weightDivisor))
	if weightDivisor == 1 {
		return domain.MetricTotals{
			Impressions: impressions,
			Clicks:      clicks,
			Conversions: conversions,
			Cost:        cost,
		}, nil
	}

	return domain.MetricTotals{
		Impressions: impressions.Div(weight),
		Clicks:      clicks.Div(weight),
		Conversions: conversions.Div(weight),
		Cost:        cost.Div(weight),
	}, nil
}

func parseCount(field, value string) (decimal.Decimal, error) {
	parsed, err := parseAmount(field, value)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return parsed.Truncate(0), nil
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	parsed, err := utils.ParseDecimal(value)
	if err != nil {
		return decimal.Decimal{}, &ParseError{Field: field, Value: value, Err: err}
	}
	return parsed, nil
}
