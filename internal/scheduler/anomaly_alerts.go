package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/config"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting"
)

// AnomalyAlertConfig representa a configuração do agendador de alertas
type AnomalyAlertConfig struct {
	CronSchedule string
	Enabled      bool
	Location     *time.Location
}

// AnomalyAlertService agenda e executa as rodadas de alerta de anomalias
type AnomalyAlertService struct {
	scheduler          *gocron.Scheduler
	config             AnomalyAlertConfig
	runner             alerting.Runner
	runMutex           sync.Mutex
	running            bool
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastSummary        *domain.RunSummary
	lastError          string
}

// NewAnomalyAlertService cria o agendador no fuso da conta gerenciadora
func NewAnomalyAlertService(runner alerting.Runner, appConfig *config.Config) (*AnomalyAlertService, error) {
	location, err := appConfig.Alert.Location()
	if err != nil {
		return nil, fmt.Errorf("fuso inválido para o agendador: %w", err)
	}

	alertConfig := AnomalyAlertConfig{
		CronSchedule: appConfig.Alert.CronSchedule,
		Enabled:      appConfig.Alert.Enabled,
		Location:     location,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": alertConfig.CronSchedule,
		"enabled":       alertConfig.Enabled,
		"timezone":      location.String(),
	}).Info("Configuração do agendador de alertas carregada")

	return &AnomalyAlertService{
		scheduler: gocron.NewScheduler(location),
		config:    alertConfig,
		runner:    runner,
	}, nil
}

// Start inicia o agendador; ele para quando o contexto é cancelado
func (s *AnomalyAlertService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Alertas agendados desabilitados por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de alertas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runAlerts(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar alertas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de alertas")
		s.scheduler.Stop()
	}()

	return nil
}

// runAlerts executa uma rodada; rodadas sobrepostas no mesmo processo são ignoradas
func (s *AnomalyAlertService) runAlerts(ctx context.Context) {
	if !s.acquire() {
		logrus.Info("Rodada de alertas já em andamento, ignorando")
		return
	}
	s.execute(ctx)
}

// execute roda a rodada já com o flag de execução adquirido e o libera ao final
func (s *AnomalyAlertService) execute(ctx context.Context) {
	defer s.release()

	s.runMutex.Lock()
	s.lastRunStartedAt = time.Now()
	s.runMutex.Unlock()

	summary, err := s.runner.Run(ctx)

	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	s.lastRunCompletedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Rodada de alertas falhou")
		return
	}

	s.lastError = ""
	s.lastSummary = summary
}

func (s *AnomalyAlertService) acquire() bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *AnomalyAlertService) release() {
	s.runMutex.Lock()
	s.running = false
	s.runMutex.Unlock()
}

// TriggerManualRun inicia uma rodada fora do agendamento. Devolve false se já houver uma em andamento.
func (s *AnomalyAlertService) TriggerManualRun(ctx context.Context) bool {
	if !s.acquire() {
		logrus.Info("Rodada de alertas já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando rodada manual de alertas")
	go s.execute(context.WithoutCancel(ctx))
	return true
}

// IsRunning indica se existe uma rodada em andamento
func (s *AnomalyAlertService) IsRunning() bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()
	return s.running
}

// GetStatus retorna o status atual do agendador
func (s *AnomalyAlertService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	status := map[string]any{
		"alerts_enabled":        s.config.Enabled,
		"alerts_cron":           s.config.CronSchedule,
		"timezone":              s.config.Location.String(),
		"running":               s.running,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_summary":          s.lastSummary,
	}
	if s.lastError != "" {
		status["last_error"] = s.lastError
	}

	return status
}
