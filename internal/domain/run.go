package domain

import (
	"fmt"
	"time"
)

// ReportingDelay é o atraso padrão dos dados de relatório da plataforma
const ReportingDelay = 3 * time.Hour

// RunContext é calculado uma vez no início da execução e não muda depois
type RunContext struct {
	Now             time.Time
	CutoffHour      int
	AveragingWeeks  int
	Weekday         time.Weekday
	IsFirstRunOfDay bool
}

// NewRunContext calcula o contexto da execução a partir do relógio descontando o atraso do relatório
func NewRunContext(now time.Time, delay time.Duration, averagingWeeks int) RunContext {
	reference := now.Add(-delay)
	cutoff := reference.Hour()

	return RunContext{
		Now:             reference,
		CutoffHour:      cutoff,
		AveragingWeeks:  averagingWeeks,
		Weekday:         reference.Weekday(),
		IsFirstRunOfDay: cutoff == 1,
	}
}

// Date é a data de referência dos dados de hoje
func (rc RunContext) Date() time.Time {
	y, m, d := rc.Now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, rc.Now.Location())
}

// TodayQuery consulta apenas o dia de referência
func (rc RunContext) TodayQuery() ReportQuery {
	date := rc.Date()
	return ReportQuery{
		Fields:    ReportFields,
		StartDate: date,
		EndDate:   date,
	}
}

// HistoricalQuery consulta as últimas AveragingWeeks ocorrências do mesmo dia da semana
func (rc RunContext) HistoricalQuery() ReportQuery {
	date := rc.Date()
	weekday := rc.Weekday
	return ReportQuery{
		Fields:    ReportFields,
		StartDate: date.AddDate(0, 0, -7*rc.AveragingWeeks),
		EndDate:   date.AddDate(0, 0, -7),
		Weekday:   &weekday,
	}
}

// CutoffDisplay é o texto exibido no dashboard com a hora de corte
func (rc RunContext) CutoffDisplay() string {
	return fmt.Sprintf("Data until %d:00", rc.CutoffHour)
}

// RunSummary resume o resultado de uma execução
type RunSummary struct {
	CorrelationID string    `json:"correlation_id"`
	StartedAt     time.Time `json:"started_at"`
	CompletedAt   time.Time `json:"completed_at"`
	CutoffHour    int       `json:"cutoff_hour"`
	Accounts      int       `json:"accounts"`
	Failed        int       `json:"failed"`
	Alerts        int       `json:"alerts"`
	Notified      bool      `json:"notified"`
}
