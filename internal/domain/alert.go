package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Nomes dos valores escalares (named ranges) do dashboard de acompanhamento
const (
	RangeDate           = "date"
	RangeCutoff         = "cutoff"
	RangeAveragingWeeks = "averaging_weeks"
	RangeEmail          = "email"
)

const (
	// NoAlert desabilita o alerta de uma métrica
	NoAlert = "No alert"

	// PlaceholderEmail é o email de exemplo que precisa ser trocado antes de rodar
	PlaceholderEmail = "foo@example.com"
)

// ThresholdRange é o nome do valor que guarda o limite da métrica
func (m Metric) ThresholdRange() string {
	return "threshold_" + m.Key()
}

// StatusRange é o nome do valor que guarda o status de alerta da métrica
func (m Metric) StatusRange() string {
	return "alert_status_" + m.Key()
}

// AlertDecision é o resultado da comparação de uma métrica
type AlertDecision struct {
	Metric    Metric
	Triggered bool
	Message   string
	Today     decimal.Decimal
	Expected  decimal.Decimal
}

// AlertMark indica se a métrica de uma linha já alertou hoje
type AlertMark struct {
	TodayColor    string     `json:"today_color"`
	BaselineColor string     `json:"baseline_color"`
	MarkedAt      *time.Time `json:"marked_at,omitempty"`
}

// IsUnmarkedColor reconhece as cores que valem como "sem marcação"
func IsUnmarkedColor(color string) bool {
	switch strings.ToLower(strings.TrimSpace(color)) {
	case "", "white", "#ffffff":
		return true
	}
	return false
}

// IsUnmarked só é verdadeiro quando as duas células do par estão sem marcação
func (m *AlertMark) IsUnmarked() bool {
	if m == nil {
		return true
	}
	return IsUnmarkedColor(m.TodayColor) && IsUnmarkedColor(m.BaselineColor)
}

// AlertSettings são as configurações lidas do dashboard a cada execução
type AlertSettings struct {
	Thresholds     ThresholdSet
	AveragingWeeks int
	Email          string
}

// DashboardRow é a linha de dados de uma conta no dashboard
type DashboardRow struct {
	Row         int          `json:"row"`
	AccountID   string       `json:"account_id"`
	AccountName string       `json:"account_name"`
	Today       MetricTotals `json:"-"`
	Baseline    MetricTotals `json:"-"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TodayCell formata o valor de hoje da métrica: contagens inteiras e custo com duas casas
func (r DashboardRow) TodayCell(m Metric) string {
	if m == MetricCost {
		return r.Today.Get(m).StringFixed(2)
	}
	return r.Today.Get(m).StringFixed(0)
}

// BaselineCell formata o baseline da métrica na precisão usada na comparação
func (r DashboardRow) BaselineCell(m Metric) string {
	return r.Baseline.Get(m).StringFixed(m.Precision())
}

// Cells devolve a linha de largura fixa: conta, 4 valores de hoje e 4 de baseline
func (r DashboardRow) Cells() []string {
	cells := make([]string, 0, 1+2*len(Metrics))
	cells = append(cells, r.AccountID)
	for _, m := range Metrics {
		cells = append(cells, r.TodayCell(m))
	}
	for _, m := range Metrics {
		cells = append(cells, r.BaselineCell(m))
	}
	return cells
}

// DashboardView é a leitura completa do dashboard exposta pela API
type DashboardView struct {
	Values map[string]string  `json:"values"`
	Rows   []DashboardRowView `json:"rows"`
}

// DashboardRowView é uma linha do dashboard com as células formatadas e as métricas já alertadas
type DashboardRowView struct {
	Row         int               `json:"row"`
	AccountID   string            `json:"account_id"`
	AccountName string            `json:"account_name"`
	Today       map[string]string `json:"today"`
	Baseline    map[string]string `json:"baseline"`
	Alerted     []string          `json:"alerted"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
