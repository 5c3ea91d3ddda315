package migration

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-anomaly-alerts/infrastructure/database"
)

// Cada migração é uma lista de comandos aplicados na mesma transação.
// O SQL é comum a postgres e sqlite: datas ficam em TEXT no formato RFC3339.
var migrations = [][]string{
	// Migração 1: contas, valores nomeados, dashboard e marcações
	{
		`CREATE TABLE IF NOT EXISTS accounts (
			id            TEXT PRIMARY KEY,
			external_id   TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL,
			nickname      TEXT,
			currency      TEXT NOT NULL DEFAULT '',
			timezone      TEXT NOT NULL DEFAULT '',
			business_id   TEXT NOT NULL DEFAULT '',
			business_name TEXT NOT NULL DEFAULT '',
			labels        TEXT NOT NULL DEFAULT '',
			status        TEXT NOT NULL DEFAULT 'ACTIVE',
			updated_at    TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_status ON accounts(status)`,
		`CREATE TABLE IF NOT EXISTS alert_values (
			name       TEXT PRIMARY KEY,
			value      TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS alert_dashboard (
			row_index            INTEGER PRIMARY KEY,
			account_id           TEXT NOT NULL,
			account_name         TEXT NOT NULL DEFAULT '',
			today_impressions    TEXT NOT NULL DEFAULT '0',
			today_clicks         TEXT NOT NULL DEFAULT '0',
			today_conversions    TEXT NOT NULL DEFAULT '0',
			today_cost           TEXT NOT NULL DEFAULT '0',
			baseline_impressions TEXT NOT NULL DEFAULT '0',
			baseline_clicks      TEXT NOT NULL DEFAULT '0',
			baseline_conversions TEXT NOT NULL DEFAULT '0',
			baseline_cost        TEXT NOT NULL DEFAULT '0',
			updated_at           TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS alert_marks (
			row_index      INTEGER NOT NULL,
			metric         TEXT NOT NULL,
			today_color    TEXT NOT NULL DEFAULT '',
			baseline_color TEXT NOT NULL DEFAULT '',
			marked_at      TEXT,
			PRIMARY KEY (row_index, metric)
		)`,
		`INSERT INTO alert_values (name, value) VALUES
			('threshold_impressions', 'No alert'),
			('threshold_clicks', 'No alert'),
			('threshold_conversions', 'No alert'),
			('threshold_cost', 'No alert'),
			('averaging_weeks', '4'),
			('email', 'foo@example.com')
		ON CONFLICT (name) DO NOTHING`,
	},
}

// Run aplica as migrações pendentes e devolve quantas foram aplicadas
func Run(ctx context.Context, conn database.Conn) (int, error) {
	_, err := conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`)
	if err != nil {
		return 0, errors.Wrap(err, "create migration table")
	}

	var currentVersion int
	row := conn.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return 0, errors.Wrap(err, "check migration version")
	}

	applied := 0
	for i := currentVersion; i < len(migrations); i++ {
		version := i + 1
		err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			for _, statement := range migrations[i] {
				if _, err := tx.ExecContext(ctx, statement); err != nil {
					return errors.Wrapf(err, "run migration %d", version)
				}
			}

			query, args, err := conn.Builder().
				Insert("schema_migrations").
				Columns("version", "applied_at").
				Values(version, time.Now().UTC().Format(time.RFC3339)).
				ToSql()
			if err != nil {
				return errors.Wrapf(err, "build migration %d record", version)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return errors.Wrapf(err, "record migration %d", version)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}

		applied++
		logrus.WithField("version", version).Info("Migração aplicada")
	}

	if applied == 0 {
		logrus.WithField("version", currentVersion).Debug("Banco de dados já está atualizado")
	}

	return applied, nil
}
