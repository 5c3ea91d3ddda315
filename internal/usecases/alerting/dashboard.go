package alerting

import (
	"context"
	"fmt"

	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
)

// DashboardReader lê o dashboard de acompanhamento inteiro
type DashboardReader interface {
	ListValues(ctx context.Context) (map[string]string, error)
	ListDashboardRows(ctx context.Context) ([]*domain.DashboardRow, error)
	ListAlertMarks(ctx context.Context) (map[int]map[domain.Metric]*domain.AlertMark, error)
}

// BuildDashboard monta a visão do dashboard com as células formatadas como na gravação
func BuildDashboard(ctx context.Context, reader DashboardReader) (*domain.DashboardView, error) {
	values, err := reader.ListValues(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler os valores do dashboard: %w", err)
	}

	rows, err := reader.ListDashboardRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler as linhas do dashboard: %w", err)
	}

	marks, err := reader.ListAlertMarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler as marcações de alerta: %w", err)
	}

	view := &domain.DashboardView{
		Values: values,
		Rows:   make([]domain.DashboardRowView, 0, len(rows)),
	}

	for _, row := range rows {
		rowView := domain.DashboardRowView{
			Row:         row.Row,
			AccountID:   row.AccountID,
			AccountName: row.AccountName,
			Today:       make(map[string]string, len(domain.Metrics)),
			Baseline:    make(map[string]string, len(domain.Metrics)),
			Alerted:     make([]string, 0),
			UpdatedAt:   row.UpdatedAt,
		}

		for _, m := range domain.Metrics {
			rowView.Today[m.Key()] = row.TodayCell(m)
			rowView.Baseline[m.Key()] = row.BaselineCell(m)
			if !marks[row.Row][m].IsUnmarked() {
				rowView.Alerted = append(rowView.Alerted, m.Key())
			}
		}

		view.Rows = append(view.Rows, rowView)
	}

	return view, nil
}
