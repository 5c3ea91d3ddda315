package account

import (
	"errors"
	"fmt"

	"github.com/vfg2006/traffic-anomaly-alerts/pkg/apiErrors"
)

var (
	ErrAccountIDRequired = errors.New("account ID is required")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidStatus     = errors.New("invalid account status")

	ErrMetaIntegration = errors.New("error fetching accounts from Meta")

	ErrDatabaseOperation = errors.New("database operation error")
	ErrUpdateAccount     = errors.New("error updating account")
	ErrFetchAccounts     = errors.New("error fetching accounts from database")

	ErrGenerateID = errors.New("error generating account ID")
)

// Código da API para cada erro de conta
var errorCodes = map[error]string{
	ErrAccountIDRequired: apiErrors.ErrMissingRequiredData,
	ErrAccountNotFound:   apiErrors.ErrNotFound,
	ErrInvalidStatus:     apiErrors.ErrInvalidFormat,
	ErrMetaIntegration:   apiErrors.ErrExternalService,
	ErrDatabaseOperation: apiErrors.ErrDatabaseOperation,
	ErrUpdateAccount:     apiErrors.ErrDatabaseOperation,
	ErrFetchAccounts:     apiErrors.ErrDatabaseOperation,
	ErrGenerateID:        apiErrors.ErrInternalServer,
}

// AccountError carrega o código da API e a conta envolvida junto do erro de conta
type AccountError struct {
	Err       error
	Code      string
	AccountID string // ID externo, quando a falha é de uma conta específica
	Details   string
}

func (e *AccountError) Error() string {
	if e.Details == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError cria o erro com o código da API do erro de conta; erros fora da tabela viram SRV_001
func NewAccountError(err error, details string) *AccountError {
	return NewAccountErrorWithID(err, "", details)
}

func NewAccountErrorWithID(err error, accountID string, details string) *AccountError {
	code, ok := errorCodes[err]
	if !ok {
		code = apiErrors.ErrInternalServer
	}

	return &AccountError{
		Err:       err,
		Code:      code,
		AccountID: accountID,
		Details:   details,
	}
}
