package handler

import (
	"net/http"

	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting"
	"github.com/vfg2006/traffic-anomaly-alerts/pkg/apiErrors"
	"github.com/vfg2006/traffic-anomaly-alerts/pkg/log"
)

// GetDashboard devolve o dashboard de acompanhamento: valores, linhas por conta e métricas já alertadas
func GetDashboard(reader alerting.DashboardReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		view, err := alerting.BuildDashboard(r.Context(), reader)
		if err != nil {
			logger.WithError(err).Error("Erro ao montar o dashboard")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao ler o dashboard", nil)
			return
		}

		logger.WithField("rows", len(view.Rows)).Debug("Dashboard montado")
		writeJSON(w, http.StatusOK, view)
	}
}
