package alerting

import (
	"fmt"

	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
)

// Evaluate compara os totais de hoje com o baseline de cada métrica que tem limite configurado.
// Impressões, cliques e conversões alertam quando hoje fica abaixo de baseline*limite;
// custo alerta quando hoje fica acima. O baseline é arredondado na precisão da métrica
// antes da multiplicação; o valor de hoje não é arredondado.
func Evaluate(today, baseline domain.MetricTotals, thresholds domain.ThresholdSet, cutoffHour int, currency string) []domain.AlertDecision {
	decisions := make([]domain.AlertDecision, 0, len(domain.Metrics))

	for _, metric := range domain.Metrics {
		ratio := thresholds.Get(metric)
		if ratio == nil {
			continue
		}

		todayValue := today.Get(metric)
		expected := baseline.Get(metric).Round(metric.Precision()).Mul(*ratio)

		decision := domain.AlertDecision{
			Metric:   metric,
			Today:    todayValue,
			Expected: expected,
		}

		if metric.AlertsOnIncrease() {
			decision.Triggered = todayValue.GreaterThan(expected)
			decision.Message = fmt.Sprintf("%s too high: %s %s by %d:00, expecting at most %s",
				metric, todayValue.StringFixed(2), currency, cutoffHour, expected.StringFixed(metric.Precision()))
		} else {
			decision.Triggered = todayValue.LessThan(expected)
			decision.Message = fmt.Sprintf("%s too low: %s %s by %d:00, expecting at least %s",
				metric, todayValue.StringFixed(0), metric, cutoffHour, expected.StringFixed(metric.Precision()))
		}

		decisions = append(decisions, decision)
	}

	return decisions
}
