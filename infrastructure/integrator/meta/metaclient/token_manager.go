package metaclient

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/traffic-anomaly-alerts/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/config"
)

// ErrTokenRefreshed indica que o token expirou, foi renovado e a chamada pode ser repetida
var ErrTokenRefreshed = errors.New("token expirado e renovado, por favor tente novamente")

// ErrReauthorizationRequired indica que o token não pode mais ser renovado automaticamente
var ErrReauthorizationRequired = errors.New("token expirou permanentemente e requer reautorização manual")

// TokenManager gerencia o token de acesso da API do Meta
type TokenManager struct {
	cfg        *config.Config
	httpClient *http.Client
	mu         sync.Mutex
	now        func() time.Time
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// AccessToken devolve o token em uso
func (tm *TokenManager) AccessToken() string {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.cfg.Meta.AccessToken
}

// InitToken troca o token configurado por um de longa duração quando o app está configurado
func (tm *TokenManager) InitToken(ctx context.Context) {
	if !tm.canExchange() {
		logrus.Info("App do Meta não configurado, usando o token de acesso como está")
		return
	}

	if tm.cfg.Meta.LongLivedToken != "" {
		return
	}

	logrus.Info("Token de longa duração não encontrado. Iniciando processo de obtenção...")
	if err := tm.RefreshToken(ctx); err != nil {
		logrus.Errorf("Falha ao inicializar token de longa duração: %v", err)
		logrus.Warn("A API Meta pode ter funcionalidade limitada até que o token seja configurado corretamente")
	}
}

// RefreshToken obtém um novo token de longa duração a partir do token atual
func (tm *TokenManager) RefreshToken(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if !tm.canExchange() {
		return errors.Wrap(ErrReauthorizationRequired, "app do Meta não configurado para renovar o token")
	}

	logrus.Info("Iniciando renovação do token...")
	tokenResponse, err := GetLongLivedToken(
		ctx,
		tm.httpClient,
		tm.cfg.Meta.AccessToken,
		tm.cfg.Meta.AppID,
		tm.cfg.Meta.AppSecret,
		tm.cfg.Meta.URL,
	)
	if err != nil {
		if containsTokenExpirationMessage(err.Error()) {
			logrus.Error("O token de acesso expirou e não pode ser renovado automaticamente. É necessário reautorizar")
			return errors.Wrap(ErrReauthorizationRequired, err.Error())
		}
		return errors.Wrap(err, "erro ao obter novo token de longa duração")
	}

	tm.cfg.Meta.LongLivedToken = tokenResponse.AccessToken
	tm.cfg.Meta.TokenExpiresAt = CalculateTokenExpiration(tm.now(), tokenResponse.ExpiresIn)
	tm.cfg.Meta.AccessToken = tokenResponse.AccessToken

	logrus.Infof("Token de longa duração atualizado com sucesso. Renovar até: %s",
		tm.cfg.Meta.TokenExpiresAt.Format(time.RFC3339))

	return nil
}

// EnsureValidToken renova o token quando falta menos de um dia para a expiração conhecida
func (tm *TokenManager) EnsureValidToken(ctx context.Context) error {
	tm.mu.Lock()
	expiresAt := tm.cfg.Meta.TokenExpiresAt
	tm.mu.Unlock()

	if expiresAt.IsZero() || !tm.canExchange() {
		return nil
	}

	if expiresAt.Sub(tm.now()) < 24*time.Hour {
		logrus.Info("Token expira em menos de 24 horas. Renovando proativamente...")
		return tm.RefreshToken(ctx)
	}

	return nil
}

// HandleErrorBody converte a resposta de erro da API. Token expirado é renovado e vira ErrTokenRefreshed.
func (tm *TokenManager) HandleErrorBody(ctx context.Context, status int, body []byte) error {
	var errorResp metadomain.ErrorResponse
	parseErr := json.Unmarshal(body, &errorResp)

	expired := (parseErr == nil && errorResp.IsTokenExpired()) || containsTokenExpirationMessage(string(body))
	if !expired {
		if parseErr == nil && errorResp.IsRateLimited() {
			logrus.WithFields(logrus.Fields{
				"code":    errorResp.Error.Code,
				"subcode": errorResp.Error.ErrorSubcode,
			}).Warn("Limite de chamadas da API Meta atingido")
		}
		if parseErr == nil && errorResp.Error.Message != "" {
			return &metadomain.APIError{StatusCode: status, Details: errorResp.Error}
		}
		return errors.Errorf("erro na resposta da API. Status: %d, Corpo: %s", status, body)
	}

	logrus.Warnf("Token expirado detectado pela API Meta. Código: %d, Subcódigo: %d",
		errorResp.Error.Code, errorResp.Error.ErrorSubcode)

	if err := tm.RefreshToken(ctx); err != nil {
		if errors.Is(err, ErrReauthorizationRequired) {
			return err
		}
		return errors.Wrap(err, "erro ao renovar token expirado")
	}

	return ErrTokenRefreshed
}

func (tm *TokenManager) canExchange() bool {
	meta := tm.cfg.Meta
	return meta.AppID != "" && meta.AppSecret != "" &&
		meta.AppID != config.PlaceholderAppID && meta.AppSecret != config.PlaceholderAppSecret
}

// containsTokenExpirationMessage verifica se a mensagem contém indicação de token expirado
func containsTokenExpirationMessage(message string) bool {
	return strings.Contains(message, "Error validating access token") ||
		strings.Contains(message, "Session has expired") ||
		strings.Contains(message, "The session has been invalidated")
}
