package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-anomaly-alerts/pkg/apiErrors"
)

// CronJobTypeAlerts é a rodada de alertas de anomalia
const CronJobTypeAlerts = "alerts"

// AlertScheduler é o agendador da rodada de alertas
type AlertScheduler interface {
	TriggerManualRun(ctx context.Context) bool
	GetStatus() map[string]any
}

// RunCronJob executa manualmente a rodada de alertas
func RunCronJob(alerts AlertScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		if cronType != CronJobTypeAlerts {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: alerts", nil)
			return
		}

		if !alerts.TriggerManualRun(r.Context()) {
			apiErrors.WriteError(w, apiErrors.ErrConflict, "Rodada de alertas já em andamento", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status do agendador de alertas
func GetCronStatus(alerts AlertScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			CronJobTypeAlerts: alerts.GetStatus(),
		})
	}
}
