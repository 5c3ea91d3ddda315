package domain

import "github.com/shopspring/decimal"

// Metric identifica uma das métricas monitoradas pelo alerta
type Metric int

const (
	MetricImpressions Metric = iota
	MetricClicks
	MetricConversions
	MetricCost
)

// Metrics lista as métricas na ordem usada nas decisões, no dashboard e no email
var Metrics = []Metric{MetricImpressions, MetricClicks, MetricConversions, MetricCost}

var metricNames = map[Metric]string{
	MetricImpressions: "Impressions",
	MetricClicks:      "Clicks",
	MetricConversions: "Conversions",
	MetricCost:        "Cost",
}

var metricKeys = map[Metric]string{
	MetricImpressions: "impressions",
	MetricClicks:      "clicks",
	MetricConversions: "conversions",
	MetricCost:        "cost",
}

// Cor de marcação de cada métrica no dashboard
var metricMarkColors = map[Metric]string{
	MetricImpressions: "#f4cccc",
	MetricClicks:      "#fce5cd",
	MetricConversions: "#fff2cc",
	MetricCost:        "#d9ead3",
}

func (m Metric) String() string {
	return metricNames[m]
}

// Key é o identificador da métrica usado na persistência
func (m Metric) Key() string {
	return metricKeys[m]
}

// Precision é o número de casas decimais usado para arredondar o baseline
func (m Metric) Precision() int32 {
	switch m {
	case MetricImpressions:
		return 0
	case MetricCost:
		return 2
	default:
		return 1
	}
}

// AlertsOnIncrease indica se a métrica alerta quando o valor sobe (custo) em vez de quando cai
func (m Metric) AlertsOnIncrease() bool {
	return m == MetricCost
}

func (m Metric) MarkColor() string {
	return metricMarkColors[m]
}

// ParseMetric converte a chave persistida de volta para a métrica
func ParseMetric(key string) (Metric, bool) {
	for m, k := range metricKeys {
		if k == key {
			return m, true
		}
	}
	return 0, false
}

// MetricTotals contém os totais acumulados de um período (hoje ou média histórica)
type MetricTotals struct {
	Impressions decimal.Decimal
	Clicks      decimal.Decimal
	Conversions decimal.Decimal
	Cost        decimal.Decimal
}

func (t MetricTotals) Get(m Metric) decimal.Decimal {
	switch m {
	case MetricImpressions:
		return t.Impressions
	case MetricClicks:
		return t.Clicks
	case MetricConversions:
		return t.Conversions
	default:
		return t.Cost
	}
}

// ThresholdSet guarda a razão configurada por métrica. nil desabilita o alerta da métrica.
type ThresholdSet struct {
	Impressions *decimal.Decimal
	Clicks      *decimal.Decimal
	Conversions *decimal.Decimal
	Cost        *decimal.Decimal
}

func (s ThresholdSet) Get(m Metric) *decimal.Decimal {
	switch m {
	case MetricImpressions:
		return s.Impressions
	case MetricClicks:
		return s.Clicks
	case MetricConversions:
		return s.Conversions
	default:
		return s.Cost
	}
}

func (s *ThresholdSet) Set(m Metric, ratio *decimal.Decimal) {
	switch m {
	case MetricImpressions:
		s.Impressions = ratio
	case MetricClicks:
		s.Clicks = ratio
	case MetricConversions:
		s.Conversions = ratio
	default:
		s.Cost = ratio
	}
}
