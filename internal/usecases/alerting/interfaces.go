package alerting

import (
	"context"
	"iter"

	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
)

// AccountSource lista as contas filhas da conta gerenciadora, na ordem de processamento
type AccountSource interface {
	// ListAccounts devolve as contas ativas; label vazio não filtra
	ListAccounts(ctx context.Context, label string) ([]*domain.AdAccount, error)
}

// ReportSource obtém o relatório horário de uma conta.
// A sequência devolvida é lida uma única vez, do início ao fim, e não pode ser reiniciada.
type ReportSource interface {
	HourlyReport(ctx context.Context, account *domain.AdAccount, query domain.ReportQuery) iter.Seq2[domain.ReportRow, error]
}

// TrackingStore é o dashboard de acompanhamento: valores nomeados, linhas por conta e marcações de alerta
type TrackingStore interface {
	// GetValue devolve "" quando o valor não existe
	GetValue(ctx context.Context, name string) (string, error)
	SetValue(ctx context.Context, name string, value string) error
	SaveDashboardRow(ctx context.Context, row *domain.DashboardRow) error
	// GetAlertMark devolve nil quando a linha nunca foi marcada
	GetAlertMark(ctx context.Context, row int, metric domain.Metric) (*domain.AlertMark, error)
	SaveAlertMark(ctx context.Context, row int, metric domain.Metric, mark *domain.AlertMark) error
	ClearAlertMarks(ctx context.Context, maxRows int) error
}

// Notifier envia a notificação consolidada
type Notifier interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// Runner executa uma rodada completa de alertas
type Runner interface {
	Run(ctx context.Context) (*domain.RunSummary, error)
}
