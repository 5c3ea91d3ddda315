package alerting

import (
	"errors"
	"fmt"
)

var (
	// Interrompe a execução antes de qualquer alteração no dashboard
	ErrConfiguration = errors.New("invalid alert configuration")

	// Interrompem apenas a conta em processamento
	ErrParse = errors.New("malformed numeric field in report row")
	ErrFetch = errors.New("error fetching report")

	// Apenas registrado em log
	ErrNotification = errors.New("error sending notification")
)

// Códigos de erro usados nos logs e na API
const (
	CodeConfiguration = "CFG_001"
	CodeParse         = "RPT_001"
	CodeFetch         = "RPT_002"
	CodeTracking      = "TRK_001"
	CodeNotification  = "NTF_001"
)

// AlertError é um erro com contexto adicional para a execução de alertas
type AlertError struct {
	Err       error  // Erro base
	Code      string // Código de erro
	AccountID string // Conta envolvida (quando aplicável)
	Details   string // Detalhes adicionais
}

func (e *AlertError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AlertError) Unwrap() error {
	return e.Err
}

func NewAlertError(err error, code string, details string) *AlertError {
	return &AlertError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewAlertErrorWithID(err error, code string, accountID string, details string) *AlertError {
	return &AlertError{
		Err:       err,
		Code:      code,
		AccountID: accountID,
		Details:   details,
	}
}

// ParseError aponta o campo da linha do relatório que não é numérico
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: field %q has non-numeric value %q", ErrParse.Error(), e.Field, e.Value)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
