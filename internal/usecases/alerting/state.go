package alerting

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
)

// Formato do status gravado quando uma métrica alerta
const alertedAtLayout = "2006-01-02 15:04"

// StateTracker garante no máximo um alerta por linha e métrica por dia.
// A leitura e a escrita da marcação não são atômicas: execuções sobrepostas podem duplicar um alerta.
type StateTracker struct {
	store TrackingStore
}

func NewStateTracker(store TrackingStore) *StateTracker {
	return &StateTracker{store: store}
}

// ShouldAlert só é verdadeiro se as duas células da métrica na linha estiverem sem marcação
func (t *StateTracker) ShouldAlert(ctx context.Context, row int, metric domain.Metric) (bool, error) {
	mark, err := t.store.GetAlertMark(ctx, row, metric)
	if err != nil {
		return false, NewAlertError(err, CodeTracking, fmt.Sprintf("falha ao ler marcação da linha %d (%s)", row, metric))
	}

	return mark.IsUnmarked(), nil
}

// MarkAlerted marca o par de células com a cor da métrica e grava o horário no status da métrica
func (t *StateTracker) MarkAlerted(ctx context.Context, row int, metric domain.Metric, at time.Time) error {
	color := metric.MarkColor()
	mark := &domain.AlertMark{
		TodayColor:    color,
		BaselineColor: color,
		MarkedAt:      &at,
	}

	if err := t.store.SaveAlertMark(ctx, row, metric, mark); err != nil {
		return NewAlertError(err, CodeTracking, fmt.Sprintf("falha ao marcar linha %d (%s)", row, metric))
	}

	status := "Alerted at " + at.Format(alertedAtLayout)
	if err := t.store.SetValue(ctx, metric.StatusRange(), status); err != nil {
		return NewAlertError(err, CodeTracking, fmt.Sprintf("falha ao gravar status de %s", metric))
	}

	return nil
}

// Reset limpa as marcações de todas as linhas abaixo de maxRows e os status de todas as métricas
func (t *StateTracker) Reset(ctx context.Context, maxRows int) error {
	if err := t.store.ClearAlertMarks(ctx, maxRows); err != nil {
		return NewAlertError(err, CodeTracking, "falha ao limpar marcações de alerta")
	}

	for _, metric := range domain.Metrics {
		if err := t.store.SetValue(ctx, metric.StatusRange(), ""); err != nil {
			return NewAlertError(err, CodeTracking, fmt.Sprintf("falha ao limpar status de %s", metric))
		}
	}

	logrus.WithField("max_rows", maxRows).Info("Marcações de alerta do dia reiniciadas")

	return nil
}
