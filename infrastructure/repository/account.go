package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-anomaly-alerts/infrastructure/database"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
)

const (
	accountsTable = "accounts a"

	// Rótulos são gravados entre vírgulas (",premium,sul,") para permitir o filtro com LIKE
	labelSeparator = ","
)

var accountColumns = []string{
	"a.id", "a.external_id", "a.name", "a.nickname", "a.currency", "a.timezone",
	"a.business_id", "a.business_name", "a.labels", "a.status", "a.updated_at",
}

var ErrAccountNotFound = errors.New("account not found")

//go:generate mockgen -source=account.go -destination=mocks/mock_account.go -package=mocks

type AccountRepository interface {
	GetAccountByExternalID(ctx context.Context, externalID string) (*domain.AdAccount, error)
	ListAccounts(ctx context.Context, label string) ([]*domain.AdAccount, error)
	ListAllAccounts(ctx context.Context) ([]*domain.AdAccount, error)
	ListAccountsMap(ctx context.Context) (map[string]string, error)
	SaveOrUpdate(ctx context.Context, accounts []*domain.AdAccount) error
	UpdateAccount(ctx context.Context, request *domain.UpdateAdAccountRequest) error
}

type accountRepository struct {
	conn database.Conn
}

func NewAccountRepository(conn database.Conn) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) GetAccountByExternalID(ctx context.Context, externalID string) (*domain.AdAccount, error) {
	accountSQL, args, err := a.conn.Builder().
		Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"a.external_id": externalID}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	acc, err := deserializeAccount(a.conn.QueryRowContext(ctx, accountSQL, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err, "failed to get account")
	}

	return acc, nil
}

// ListAccounts devolve as contas ativas na ordem de processamento; label vazio não filtra
func (a *accountRepository) ListAccounts(ctx context.Context, label string) ([]*domain.AdAccount, error) {
	queryBuilder := a.conn.Builder().
		Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"a.status": domain.AdAccountStatusActive}).
		OrderBy("a.name ASC", "a.external_id ASC")

	if label = normalizeLabel(label); label != "" {
		pattern := "%" + labelSeparator + escapeLike(label) + labelSeparator + "%"
		queryBuilder = queryBuilder.Where(squirrel.Expr(`LOWER(a.labels) LIKE ? ESCAPE '\'`, pattern))
	}

	return a.queryAccounts(ctx, queryBuilder)
}

func (a *accountRepository) ListAllAccounts(ctx context.Context) ([]*domain.AdAccount, error) {
	return a.queryAccounts(ctx, a.conn.Builder().
		Select(accountColumns...).
		From(accountsTable).
		OrderBy("a.name ASC", "a.external_id ASC"))
}

func (a *accountRepository) queryAccounts(ctx context.Context, queryBuilder squirrel.SelectBuilder) ([]*domain.AdAccount, error) {
	accountsSQL, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := a.conn.QueryContext(ctx, accountsSQL, args...)
	if err != nil {
		return nil, wrapDBError(err, "failed to list accounts")
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		acc, err := deserializeAccount(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao deserializar a conta")
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar sobre os resultados")
	}

	return accounts, nil
}

// ListAccountsMap devolve external_id -> id de todas as contas gravadas
func (a *accountRepository) ListAccountsMap(ctx context.Context) (map[string]string, error) {
	accountsSQL, args, err := a.conn.Builder().
		Select("a.id", "a.external_id").
		From(accountsTable).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := a.conn.QueryContext(ctx, accountsSQL, args...)
	if err != nil {
		return nil, wrapDBError(err, "erro ao executar a query")
	}
	defer rows.Close()

	accountsMap := make(map[string]string)
	for rows.Next() {
		var id, externalID string
		if err := rows.Scan(&id, &externalID); err != nil {
			return nil, errors.Wrap(err, "erro ao deserializar a conta")
		}
		accountsMap[externalID] = id
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar sobre os resultados")
	}

	return accountsMap, nil
}

// SaveOrUpdate grava as contas sincronizadas. Apelido, rótulos e status definidos localmente são preservados.
func (a *accountRepository) SaveOrUpdate(ctx context.Context, accounts []*domain.AdAccount) error {
	if len(accounts) == 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	query := a.conn.Builder().
		Insert("accounts").
		Columns("id", "external_id", "name", "nickname", "currency", "timezone",
			"business_id", "business_name", "labels", "status", "updated_at")

	for _, account := range accounts {
		status := account.Status
		if status == "" {
			status = domain.AdAccountStatusActive
		}

		query = query.Values(
			account.ID,
			account.ExternalID,
			account.Name,
			account.Nickname,
			account.Currency,
			account.TimeZone,
			account.BusinessManagerID,
			account.BusinessManagerName,
			encodeLabels(account.Labels),
			status,
			now,
		)
	}

	// Em caso de conflito atualiza apenas os dados vindos do Meta
	query = query.Suffix(`
		ON CONFLICT (external_id) DO UPDATE SET
			name = EXCLUDED.name,
			currency = EXCLUDED.currency,
			timezone = EXCLUDED.timezone,
			business_id = EXCLUDED.business_id,
			business_name = EXCLUDED.business_name,
			updated_at = EXCLUDED.updated_at,
			nickname = COALESCE(accounts.nickname, EXCLUDED.nickname)
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if _, err := a.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return wrapDBError(err, "failed to save accounts")
	}

	logrus.WithField("accounts", len(accounts)).Debug("Contas gravadas")

	return nil
}

func (a *accountRepository) UpdateAccount(ctx context.Context, request *domain.UpdateAdAccountRequest) error {
	if request.ExternalID == "" {
		return errors.New("external ID is required")
	}

	queryBuilder := a.conn.Builder().
		Update("accounts").
		Set("updated_at", time.Now().UTC().Format(time.RFC3339)).
		Where(squirrel.Eq{"external_id": request.ExternalID})

	if request.Nickname != nil {
		queryBuilder = queryBuilder.Set("nickname", *request.Nickname)
	}

	if request.Labels != nil {
		queryBuilder = queryBuilder.Set("labels", encodeLabels(*request.Labels))
	}

	if request.Status != nil {
		queryBuilder = queryBuilder.Set("status", *request.Status)
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	result, err := a.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return wrapDBError(err, "failed to update account")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "error getting rows affected")
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func deserializeAccount(row scanner) (*domain.AdAccount, error) {
	acc := &domain.AdAccount{}
	var nickname sql.NullString
	var labels, updatedAt string

	if err := row.Scan(
		&acc.ID,
		&acc.ExternalID,
		&acc.Name,
		&nickname,
		&acc.Currency,
		&acc.TimeZone,
		&acc.BusinessManagerID,
		&acc.BusinessManagerName,
		&labels,
		&acc.Status,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if nickname.Valid {
		acc.Nickname = &nickname.String
	}
	acc.Labels = decodeLabels(labels)
	acc.UpdatedAt = parseStoredTime(updatedAt)

	return acc, nil
}

func normalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	return strings.ReplaceAll(label, labelSeparator, "")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike faz o rótulo casar literalmente dentro de um LIKE
func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

func encodeLabels(labels []string) string {
	cleaned := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(strings.ReplaceAll(l, labelSeparator, ""))
		key := strings.ToLower(l)
		if l == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, l)
	}

	if len(cleaned) == 0 {
		return ""
	}
	return labelSeparator + strings.Join(cleaned, labelSeparator) + labelSeparator
}

func decodeLabels(value string) []string {
	labels := make([]string, 0)
	for _, l := range strings.Split(value, labelSeparator) {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}
