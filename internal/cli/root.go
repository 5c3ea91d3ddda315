package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-anomaly-alerts/infrastructure/database"
	"github.com/vfg2006/traffic-anomaly-alerts/infrastructure/integrator/meta"
	"github.com/vfg2006/traffic-anomaly-alerts/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-anomaly-alerts/infrastructure/migration"
	"github.com/vfg2006/traffic-anomaly-alerts/infrastructure/repository"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/config"
	"github.com/vfg2006/traffic-anomaly-alerts/pkg/log"
)

var rootCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Alertas de anomalia de tráfego para as contas de anúncio do Meta",
	Long: `Compara, a cada hora, as métricas acumuladas do dia de cada conta de anúncio
com a média das últimas semanas no mesmo dia da semana e envia um email
consolidado quando alguma métrica cruza o limite configurado.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute roda a linha de comando; SIGINT e SIGTERM cancelam o contexto dos comandos
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		logrus.WithError(err).Error("Comando falhou")
		os.Exit(1)
	}
}

// app reúne as dependências compartilhadas pelos comandos
type app struct {
	cfg          *config.Config
	conn         *database.Connection
	accounts     repository.AccountRepository
	tracking     repository.TrackingRepository
	tokenManager *metaclient.TokenManager
	meta         *meta.MetaIntegrator
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, errors.Wrap(err, "carregando configuração")
	}

	log.Configure(cfg.App.LogLevel)

	return cfg, nil
}

// bootstrap valida a configuração, conecta ao store e aplica as migrações pendentes
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conn, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logrus.WithField("driver", conn.Driver()).Info("Conexão com o store estabelecida")

	applied, err := migration.Run(ctx, conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if applied > 0 {
		logrus.WithField("applied", applied).Info("Migrações aplicadas")
	}

	tokenManager := metaclient.NewTokenManager(cfg)

	return &app{
		cfg:          cfg,
		conn:         conn,
		accounts:     repository.NewAccountRepository(conn),
		tracking:     repository.NewTrackingRepository(conn),
		tokenManager: tokenManager,
		meta:         meta.New(cfg, metaclient.NewClient(cfg, tokenManager)),
	}, nil
}

func (a *app) Close() {
	if err := a.conn.Close(); err != nil {
		logrus.WithError(err).Warn("Erro ao fechar a conexão com o store")
	}
}
