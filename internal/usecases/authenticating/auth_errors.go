package authenticating

import "errors"

var (
	ErrInvalidToken     = errors.New("token inválido")
	ErrMissingSecret    = errors.New("AUTH_SECRET não configurado")
	ErrInvalidRole      = errors.New("papel inválido")
	ErrMissingSubject   = errors.New("identificação do token é obrigatória")
	ErrUnexpectedMethod = errors.New("método de assinatura inesperado")
)
