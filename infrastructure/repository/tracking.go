package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-anomaly-alerts/infrastructure/database"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
)

const (
	valuesTable    = "alert_values"
	dashboardTable = "alert_dashboard"
	marksTable     = "alert_marks"
)

//go:generate mockgen -source=tracking.go -destination=mocks/mock_tracking.go -package=mocks

// TrackingRepository é o dashboard de acompanhamento persistido no banco
type TrackingRepository interface {
	GetValue(ctx context.Context, name string) (string, error)
	SetValue(ctx context.Context, name string, value string) error
	ListValues(ctx context.Context) (map[string]string, error)
	SaveDashboardRow(ctx context.Context, row *domain.DashboardRow) error
	ListDashboardRows(ctx context.Context) ([]*domain.DashboardRow, error)
	GetAlertMark(ctx context.Context, row int, metric domain.Metric) (*domain.AlertMark, error)
	SaveAlertMark(ctx context.Context, row int, metric domain.Metric, mark *domain.AlertMark) error
	ListAlertMarks(ctx context.Context) (map[int]map[domain.Metric]*domain.AlertMark, error)
	ClearAlertMarks(ctx context.Context, maxRows int) error
}

type trackingRepository struct {
	conn database.Conn
}

func NewTrackingRepository(conn database.Conn) TrackingRepository {
	return &trackingRepository{conn: conn}
}

func (r *trackingRepository) GetValue(ctx context.Context, name string) (string, error) {
	query, args, err := r.conn.Builder().
		Select("value").
		From(valuesTable).
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return "", errors.Wrap(err, "failed to build query")
	}

	var value string
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", wrapDBError(err, "failed to get value "+name)
	}

	return value, nil
}

func (r *trackingRepository) SetValue(ctx context.Context, name string, value string) error {
	query, args, err := r.conn.Builder().
		Insert(valuesTable).
		Columns("name", "value", "updated_at").
		Values(name, value, time.Now().UTC().Format(time.RFC3339)).
		Suffix("ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "failed to set value "+name)
	}

	return nil
}

func (r *trackingRepository) ListValues(ctx context.Context) (map[string]string, error) {
	query, args, err := r.conn.Builder().
		Select("name", "value").
		From(valuesTable).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "failed to list values")
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, errors.Wrap(err, "erro ao deserializar valor")
		}
		values[name] = value
	}

	return values, errors.Wrap(rows.Err(), "erro ao iterar sobre os resultados")
}

func (r *trackingRepository) SaveDashboardRow(ctx context.Context, row *domain.DashboardRow) error {
	query, args, err := r.conn.Builder().
		Insert(dashboardTable).
		Columns(
			"row_index", "account_id", "account_name",
			"today_impressions", "today_clicks", "today_conversions", "today_cost",
			"baseline_impressions", "baseline_clicks", "baseline_conversions", "baseline_cost",
			"updated_at",
		).
		Values(
			row.Row, row.AccountID, row.AccountName,
			row.Today.Impressions.String(), row.Today.Clicks.String(), row.Today.Conversions.String(), row.Today.Cost.String(),
			row.Baseline.Impressions.String(), row.Baseline.Clicks.String(), row.Baseline.Conversions.String(), row.Baseline.Cost.String(),
			row.UpdatedAt.UTC().Format(time.RFC3339),
		).
		Suffix(`ON CONFLICT (row_index) DO UPDATE SET
			account_id = EXCLUDED.account_id,
			account_name = EXCLUDED.account_name,
			today_impressions = EXCLUDED.today_impressions,
			today_clicks = EXCLUDED.today_clicks,
			today_conversions = EXCLUDED.today_conversions,
			today_cost = EXCLUDED.today_cost,
			baseline_impressions = EXCLUDED.baseline_impressions,
			baseline_clicks = EXCLUDED.baseline_clicks,
			baseline_conversions = EXCLUDED.baseline_conversions,
			baseline_cost = EXCLUDED.baseline_cost,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "failed to save dashboard row")
	}

	return nil
}

func (r *trackingRepository) ListDashboardRows(ctx context.Context) ([]*domain.DashboardRow, error) {
	query, args, err := r.conn.Builder().
		Select(
			"row_index", "account_id", "account_name",
			"today_impressions", "today_clicks", "today_conversions", "today_cost",
			"baseline_impressions", "baseline_clicks", "baseline_conversions", "baseline_cost",
			"updated_at",
		).
		From(dashboardTable).
		OrderBy("row_index").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "failed to list dashboard rows")
	}
	defer rows.Close()

	dashboard := make([]*domain.DashboardRow, 0)
	for rows.Next() {
		row := &domain.DashboardRow{}
		var today, baseline [4]string
		var updatedAt string

		if err := rows.Scan(
			&row.Row, &row.AccountID, &row.AccountName,
			&today[0], &today[1], &today[2], &today[3],
			&baseline[0], &baseline[1], &baseline[2], &baseline[3],
			&updatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao deserializar linha do dashboard")
		}

		if row.Today, err = totalsFromStrings(today); err != nil {
			return nil, errors.Wrapf(err, "valor inválido na linha %d do dashboard", row.Row)
		}
		if row.Baseline, err = totalsFromStrings(baseline); err != nil {
			return nil, errors.Wrapf(err, "valor inválido na linha %d do dashboard", row.Row)
		}
		row.UpdatedAt = parseStoredTime(updatedAt)

		dashboard = append(dashboard, row)
	}

	return dashboard, errors.Wrap(rows.Err(), "erro ao iterar sobre os resultados")
}

func (r *trackingRepository) GetAlertMark(ctx context.Context, row int, metric domain.Metric) (*domain.AlertMark, error) {
	query, args, err := r.conn.Builder().
		Select("today_color", "baseline_color", "marked_at").
		From(marksTable).
		Where(squirrel.Eq{"row_index": row, "metric": metric.Key()}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	mark, err := deserializeMark(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err, "failed to get alert mark")
	}

	return mark, nil
}

func (r *trackingRepository) SaveAlertMark(ctx context.Context, row int, metric domain.Metric, mark *domain.AlertMark) error {
	var markedAt *string
	if mark.MarkedAt != nil {
		formatted := mark.MarkedAt.UTC().Format(time.RFC3339)
		markedAt = &formatted
	}

	query, args, err := r.conn.Builder().
		Insert(marksTable).
		Columns("row_index", "metric", "today_color", "baseline_color", "marked_at").
		Values(row, metric.Key(), mark.TodayColor, mark.BaselineColor, markedAt).
		Suffix(`ON CONFLICT (row_index, metric) DO UPDATE SET
			today_color = EXCLUDED.today_color,
			baseline_color = EXCLUDED.baseline_color,
			marked_at = EXCLUDED.marked_at`).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "failed to save alert mark")
	}

	return nil
}

func (r *trackingRepository) ListAlertMarks(ctx context.Context) (map[int]map[domain.Metric]*domain.AlertMark, error) {
	query, args, err := r.conn.Builder().
		Select("row_index", "metric", "today_color", "baseline_color", "marked_at").
		From(marksTable).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "failed to list alert marks")
	}
	defer rows.Close()

	marks := make(map[int]map[domain.Metric]*domain.AlertMark)
	for rows.Next() {
		var row int
		var key string
		var markedAt sql.NullString
		mark := &domain.AlertMark{}

		if err := rows.Scan(&row, &key, &mark.TodayColor, &mark.BaselineColor, &markedAt); err != nil {
			return nil, errors.Wrap(err, "erro ao deserializar marcação")
		}

		metric, ok := domain.ParseMetric(key)
		if !ok {
			continue
		}
		if markedAt.Valid {
			at := parseStoredTime(markedAt.String)
			mark.MarkedAt = &at
		}

		if marks[row] == nil {
			marks[row] = make(map[domain.Metric]*domain.AlertMark)
		}
		marks[row][metric] = mark
	}

	return marks, errors.Wrap(rows.Err(), "erro ao iterar sobre os resultados")
}

// ClearAlertMarks remove as marcações das linhas abaixo de maxRows
func (r *trackingRepository) ClearAlertMarks(ctx context.Context, maxRows int) error {
	query, args, err := r.conn.Builder().
		Delete(marksTable).
		Where(squirrel.Lt{"row_index": maxRows}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "failed to clear alert marks")
	}

	return nil
}

func deserializeMark(row scanner) (*domain.AlertMark, error) {
	mark := &domain.AlertMark{}
	var markedAt sql.NullString

	if err := row.Scan(&mark.TodayColor, &mark.BaselineColor, &markedAt); err != nil {
		return nil, err
	}

	if markedAt.Valid {
		at := parseStoredTime(markedAt.String)
		mark.MarkedAt = &at
	}

	return mark, nil
}

func totalsFromStrings(values [4]string) (domain.MetricTotals, error) {
	var parsed [4]decimal.Decimal
	for i, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return domain.MetricTotals{}, err
		}
		parsed[i] = d
	}

	return domain.MetricTotals{
		Impressions: parsed[0],
		Clicks:      parsed[1],
		Conversions: parsed[2],
		Cost:        parsed[3],
	}, nil
}
