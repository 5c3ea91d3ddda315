package alerting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/metrics"
	"github.com/vfg2006/traffic-anomaly-alerts/pkg/log"
)

// RunConfig agrupa os parâmetros fixos de uma execução
type RunConfig struct {
	Location       *time.Location
	ReportingDelay time.Duration
	LabelFilter    string
	MaxAccounts    int
}

// Service coordena uma execução completa: contexto, configurações, reset diário, contas e notificação
type Service struct {
	accounts     AccountSource
	store        TrackingStore
	notifier     Notifier
	tracker      *StateTracker
	orchestrator *Orchestrator
	config       RunConfig
	clock        func() time.Time
}

func NewService(
	accounts AccountSource,
	reports ReportSource,
	store TrackingStore,
	notifier Notifier,
	config RunConfig,
) *Service {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.MaxAccounts < 1 {
		config.MaxAccounts = MaxAccounts
	}

	tracker := NewStateTracker(store)

	s := &Service{
		accounts:     accounts,
		store:        store,
		notifier:     notifier,
		tracker:      tracker,
		orchestrator: NewOrchestrator(reports, store, tracker, config.MaxAccounts),
		config:       config,
		clock:        time.Now,
	}
	s.orchestrator.now = s.now

	return s
}

// WithClock troca o relógio usado para calcular o contexto da execução
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// now é o relógio no fuso da conta gerenciadora
func (s *Service) now() time.Time {
	return s.clock().In(s.config.Location)
}

// Run executa uma rodada de alertas. Erros de configuração interrompem a execução
// antes de qualquer escrita no dashboard; erros de uma conta ou do envio não.
func (s *Service) Run(ctx context.Context) (*domain.RunSummary, error) {
	ctx, correlationID := log.WithCorrelationID(ctx)
	logger := log.ForContext(ctx)

	startedAt := s.now()
	summary := &domain.RunSummary{
		CorrelationID: correlationID,
		StartedAt:     startedAt,
	}

	began := time.Now()
	defer func() {
		metrics.RunDuration.Observe(time.Since(began).Seconds())
	}()

	settings, err := LoadSettings(ctx, s.store)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	if err := ValidateSettings(settings); err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	rc := domain.NewRunContext(startedAt, s.config.ReportingDelay, settings.AveragingWeeks)
	summary.CutoffHour = rc.CutoffHour

	logger.WithFields(log.Fields{
		"date":            rc.Date().Format(time.DateOnly),
		"cutoff_hour":     rc.CutoffHour,
		"averaging_weeks": rc.AveragingWeeks,
		"first_run":       rc.IsFirstRunOfDay,
	}).Info("Iniciando execução de alertas")

	if err := s.store.SetValue(ctx, domain.RangeDate, rc.Date().Format(time.DateOnly)); err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return nil, NewAlertError(err, CodeTracking, "falha ao gravar data da execução")
	}
	if err := s.store.SetValue(ctx, domain.RangeCutoff, rc.CutoffDisplay()); err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return nil, NewAlertError(err, CodeTracking, "falha ao gravar hora de corte")
	}

	if rc.IsFirstRunOfDay {
		if err := s.tracker.Reset(ctx, s.config.MaxAccounts+1); err != nil {
			metrics.RunsTotal.WithLabelValues("failed").Inc()
			return nil, err
		}
	}

	accounts, err := s.accounts.ListAccounts(ctx, s.config.LabelFilter)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return nil, NewAlertError(err, CodeFetch, "falha ao listar contas")
	}

	result := s.orchestrator.ProcessAccounts(ctx, rc, accounts, settings)
	summary.Accounts = result.Processed
	summary.Failed = result.Failed
	summary.Alerts = len(result.Blocks)

	summary.Notified = s.notify(ctx, settings.Email, result.Blocks)

	summary.CompletedAt = s.now()
	metrics.RunsTotal.WithLabelValues("success").Inc()
	metrics.LastRunTimestamp.Set(float64(summary.CompletedAt.Unix()))

	logger.WithFields(log.Fields{
		"accounts": summary.Accounts,
		"failed":   summary.Failed,
		"alerts":   summary.Alerts,
		"notified": summary.Notified,
	}).Info("Execução de alertas concluída")

	return summary, nil
}

// notify envia uma única notificação com todos os blocos. Falhas são apenas registradas.
func (s *Service) notify(ctx context.Context, email string, blocks []string) bool {
	logger := log.ForContext(ctx)

	if len(blocks) == 0 {
		logger.Info("Nenhum alerta novo, notificação não enviada")
		return false
	}
	if strings.TrimSpace(email) == "" {
		metrics.NotificationsTotal.WithLabelValues("skipped").Inc()
		logger.Warn("Email de notificação em branco, notificação não enviada")
		return false
	}

	subject := fmt.Sprintf("Traffic alerts: %d account(s) with anomalies", len(blocks))
	body := strings.Join(blocks, "\n\n")

	if err := s.notifier.Send(ctx, email, subject, body); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		notificationErr := NewAlertError(fmt.Errorf("%w: %w", ErrNotification, err), CodeNotification, email)
		logger.WithError(notificationErr).Error("Erro ao enviar notificação de alertas")
		return false
	}

	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	return true
}
