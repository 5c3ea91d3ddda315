package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/api"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/scheduler"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/account"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/authenticating"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe o agendador de alertas e a API administrativa",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	a.tokenManager.InitToken(ctx)

	alertService, err := newAlertService(a, false)
	if err != nil {
		return err
	}

	alertScheduler, err := scheduler.NewAnomalyAlertService(alertService, a.cfg)
	if err != nil {
		return err
	}

	if err := alertScheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de alertas")
		return err
	}
	logrus.Info("Agendador de alertas iniciado com sucesso")

	server, err := api.New(
		a.cfg,
		account.NewService(a.accounts, a.meta),
		authenticating.NewService(a.cfg.Auth),
		alertScheduler,
		a.tracking,
		a.conn,
	)
	if err != nil {
		return err
	}

	return server.Run(ctx)
}
