package alerting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/metrics"
)

// MaxAccounts é o limite de contas processadas por execução
const MaxAccounts = 50

// Orchestrator processa as contas uma a uma: relatórios, totais, dashboard e alertas
type Orchestrator struct {
	reports     ReportSource
	store       TrackingStore
	tracker     *StateTracker
	maxAccounts int
	now         func() time.Time
}

func NewOrchestrator(reports ReportSource, store TrackingStore, tracker *StateTracker, maxAccounts int) *Orchestrator {
	if maxAccounts < 1 {
		maxAccounts = MaxAccounts
	}

	return &Orchestrator{
		reports:     reports,
		store:       store,
		tracker:     tracker,
		maxAccounts: maxAccounts,
		now:         time.Now,
	}
}

// ProcessResult resume o processamento de um lote de contas
type ProcessResult struct {
	Blocks    []string
	Processed int
	Failed    int
}

// ProcessAccounts processa as contas na ordem recebida até o limite de contas.
// Erros de uma conta são registrados e não interrompem as demais; blocos vazios são descartados.
func (o *Orchestrator) ProcessAccounts(ctx context.Context, rc domain.RunContext, accounts []*domain.AdAccount, settings *domain.AlertSettings) ProcessResult {
	result := ProcessResult{Blocks: make([]string, 0)}

	if len(accounts) > o.maxAccounts {
		logrus.WithFields(logrus.Fields{
			"accounts":     len(accounts),
			"max_accounts": o.maxAccounts,
		}).Warn("Número de contas acima do limite, contas excedentes serão ignoradas")
		accounts = accounts[:o.maxAccounts]
	}

	for i, account := range accounts {
		row := i + 1

		block, err := o.ProcessAccount(ctx, rc, account, row, settings)
		result.Processed++
		if err != nil {
			result.Failed++
			metrics.AccountsProcessedTotal.WithLabelValues(failureStatus(err)).Inc()
			logrus.WithFields(logrus.Fields{
				"account_id": account.ExternalID,
				"account":    account.DisplayName(),
				"row":        row,
				"error":      err,
			}).Error("Erro ao processar conta, seguindo para a próxima")
			continue
		}

		metrics.AccountsProcessedTotal.WithLabelValues("ok").Inc()
		if block != "" {
			result.Blocks = append(result.Blocks, block)
		}
	}

	return result
}

// ProcessAccount calcula os totais de hoje e o baseline da conta, grava a linha do dashboard
// e devolve o bloco de alertas novos. Um bloco só com o cabeçalho é devolvido como "".
func (o *Orchestrator) ProcessAccount(ctx context.Context, rc domain.RunContext, account *domain.AdAccount, row int, settings *domain.AlertSettings) (string, error) {
	today, err := Accumulate(o.reports.HourlyReport(ctx, account, rc.TodayQuery()), rc.CutoffHour, 1)
	if err != nil {
		return "", NewAlertErrorWithID(err, codeFor(err), account.ExternalID, "falha ao acumular dados de hoje")
	}

	baseline, err := Accumulate(o.reports.HourlyReport(ctx, account, rc.HistoricalQuery()), rc.CutoffHour, rc.AveragingWeeks)
	if err != nil {
		return "", NewAlertErrorWithID(err, codeFor(err), account.ExternalID, "falha ao acumular dados históricos")
	}

	dashboardRow := &domain.DashboardRow{
		Row:         row,
		AccountID:   account.ExternalID,
		AccountName: account.DisplayName(),
		Today:       today,
		Baseline:    baseline,
		UpdatedAt:   o.now(),
	}
	if err := o.store.SaveDashboardRow(ctx, dashboardRow); err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": account.ExternalID,
			"row":        row,
			"error":      err,
		}).Error("Erro ao gravar linha do dashboard")
	}

	var block strings.Builder
	fmt.Fprintf(&block, "Account: %s (%s)", account.DisplayName(), account.ExternalID)
	header := block.Len()

	for _, decision := range Evaluate(today, baseline, settings.Thresholds, rc.CutoffHour, account.Currency) {
		if !decision.Triggered {
			continue
		}

		shouldAlert, err := o.tracker.ShouldAlert(ctx, row, decision.Metric)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": account.ExternalID,
				"metric":     decision.Metric.String(),
				"error":      err,
			}).Error("Erro ao consultar marcação de alerta")
			continue
		}
		if !shouldAlert {
			logrus.WithFields(logrus.Fields{
				"account_id": account.ExternalID,
				"metric":     decision.Metric.String(),
			}).Debug("Métrica já alertada hoje")
			continue
		}

		if err := o.tracker.MarkAlerted(ctx, row, decision.Metric, o.now()); err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": account.ExternalID,
				"metric":     decision.Metric.String(),
				"error":      err,
			}).Error("Erro ao marcar alerta, mensagem suprimida")
			continue
		}

		metrics.AlertsTriggeredTotal.WithLabelValues(decision.Metric.Key()).Inc()
		block.WriteString("\n")
		block.WriteString(decision.Message)
	}

	if block.Len() == header {
		return "", nil
	}

	return block.String(), nil
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, ErrParse):
		return CodeParse
	case errors.Is(err, ErrConfiguration):
		return CodeConfiguration
	default:
		return CodeFetch
	}
}

func failureStatus(err error) string {
	if errors.Is(err, ErrParse) {
		return "parse_error"
	}
	return "fetch_error"
}
