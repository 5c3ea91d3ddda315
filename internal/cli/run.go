package cli

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-anomaly-alerts/infrastructure/notifier"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting"
	"github.com/vfg2006/traffic-anomaly-alerts/pkg/utils"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Executa uma rodada de alertas e sai",
	RunE:  runAlertsOnce,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("dry-run", false, "Registra o email no log em vez de enviá-lo")
	runCmd.Flags().String("at", "", "Executa como se fosse este horário, no fuso da conta gerenciadora (ex.: 2025-03-10 14:05)")
}

func runAlertsOnce(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	at, _ := cmd.Flags().GetString("at")

	service, err := newAlertService(a, dryRun)
	if err != nil {
		return err
	}

	if at != "" {
		location, _ := a.cfg.Alert.Location()
		fixed, err := utils.ParseDateTime(at, location)
		if err != nil {
			return errors.Wrapf(err, "horário inválido em --at: %q", at)
		}
		service.WithClock(func() time.Time { return *fixed })
	}

	a.tokenManager.InitToken(ctx)

	summary, err := service.Run(ctx)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"correlation_id": summary.CorrelationID,
		"accounts":       summary.Accounts,
		"failed":         summary.Failed,
		"alerts":         summary.Alerts,
		"notified":       summary.Notified,
	}).Info("Rodada de alertas concluída")

	return nil
}

// newAlertService monta o coordenador com o Meta, o store e o notificador
func newAlertService(a *app, dryRun bool) (*alerting.Service, error) {
	location, err := a.cfg.Alert.Location()
	if err != nil {
		return nil, err
	}

	var sender alerting.Notifier = notifier.NewEmailNotifier(a.cfg.SMTP)
	if dryRun {
		sender = notifier.LogNotifier{}
	}

	return alerting.NewService(
		a.accounts,
		a.meta,
		a.tracking,
		sender,
		alerting.RunConfig{
			Location:       location,
			ReportingDelay: a.cfg.Alert.ReportingDelay(),
			LabelFilter:    a.cfg.Alert.LabelFilter,
			MaxAccounts:    a.cfg.Alert.MaxAccounts,
		},
	), nil
}
