package account

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-anomaly-alerts/infrastructure/repository"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type AccountService interface {
	ListAdAccounts(ctx context.Context, label string) ([]*domain.AdAccountResponse, error)
	UpdateAccount(ctx context.Context, request *domain.UpdateAdAccountRequest) (*domain.AdAccountResponse, error)
	SyncAccounts(ctx context.Context) (*domain.SyncAccountsResponse, error)
}

// AccountProvider lista as contas filhas direto da plataforma de anúncios
type AccountProvider interface {
	GetAdAccounts(ctx context.Context) ([]*domain.AdAccount, error)
}

type Service struct {
	accountRepository repository.AccountRepository
	provider          AccountProvider
	generateID        func() (string, error)
}

func NewService(accountRepository repository.AccountRepository, provider AccountProvider) *Service {
	return &Service{
		accountRepository: accountRepository,
		provider:          provider,
		generateID:        utils.GenerateID,
	}
}

// ListAdAccounts lista as contas ativas; label vazio lista todas as contas gravadas
func (s *Service) ListAdAccounts(ctx context.Context, label string) ([]*domain.AdAccountResponse, error) {
	var (
		accounts []*domain.AdAccount
		err      error
	)
	if label == "" {
		accounts, err = s.accountRepository.ListAllAccounts(ctx)
	} else {
		accounts, err = s.accountRepository.ListAccounts(ctx, label)
	}
	if err != nil {
		logrus.WithError(err).Error("Error listing accounts on the repository")
		return nil, NewAccountError(ErrFetchAccounts, "Falha ao listar contas no banco de dados")
	}

	response := make([]*domain.AdAccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, toResponse(account))
	}

	return response, nil
}

// SyncAccounts grava as contas vindas do Meta. Contas novas recebem um ID; as existentes só têm os dados da plataforma atualizados.
func (s *Service) SyncAccounts(ctx context.Context) (*domain.SyncAccountsResponse, error) {
	response := &domain.SyncAccountsResponse{
		Quantity: 0,
		Message:  "Erro ao sincronizar contas",
		Error:    true,
	}

	accounts, err := s.provider.GetAdAccounts(ctx)
	if err != nil {
		logrus.WithError(err).Error("Error getting ad accounts from integrator meta")
		return response, NewAccountError(ErrMetaIntegration, "Falha ao obter contas da API do Meta")
	}

	existingAccounts, err := s.accountRepository.ListAccountsMap(ctx)
	if err != nil {
		logrus.WithError(err).Error("Error getting ad accounts from database")
		return response, NewAccountError(ErrFetchAccounts, "Falha ao consultar contas existentes no banco de dados")
	}

	created := 0
	seen := make(map[string]struct{}, len(accounts))
	toSave := make([]*domain.AdAccount, 0, len(accounts))
	for _, acc := range accounts {
		// A mesma conta pode aparecer em mais de uma conta gerenciadora
		if _, dup := seen[acc.ExternalID]; dup {
			continue
		}
		seen[acc.ExternalID] = struct{}{}

		if id, exists := existingAccounts[acc.ExternalID]; exists {
			acc.ID = id
		} else {
			accountID, err := s.generateID()
			if err != nil {
				return response, NewAccountError(ErrGenerateID, "Falha ao gerar identificador único para conta")
			}
			acc.ID = accountID
			created++
		}

		toSave = append(toSave, acc)
	}

	if err := s.accountRepository.SaveOrUpdate(ctx, toSave); err != nil {
		logrus.WithError(err).Error("Error saving accounts on the repository")
		return response, NewAccountError(ErrDatabaseOperation, "Falha ao salvar contas")
	}

	logrus.WithFields(logrus.Fields{
		"created": created,
		"updated": len(toSave) - created,
	}).Info("Accounts synced")

	response.Quantity = created
	response.Message = fmt.Sprintf("%d contas novas sincronizadas, %d atualizadas", created, len(toSave)-created)
	response.Error = false

	return response, nil
}

// UpdateAccount altera apelido, rótulos ou status de uma conta gravada
func (s *Service) UpdateAccount(ctx context.Context, request *domain.UpdateAdAccountRequest) (*domain.AdAccountResponse, error) {
	if request.ExternalID == "" {
		return nil, NewAccountError(ErrAccountIDRequired, "Informe o ID da conta")
	}

	if request.Status != nil && !request.Status.IsValid() {
		return nil, NewAccountErrorWithID(ErrInvalidStatus, request.ExternalID, fmt.Sprintf("status %q não é aceito", *request.Status))
	}

	account, err := s.accountRepository.GetAccountByExternalID(ctx, request.ExternalID)
	if err != nil {
		logrus.WithError(err).Error("Error getting account by id on the repository")
		return nil, NewAccountError(ErrDatabaseOperation, "Erro ao buscar conta no banco de dados")
	}

	if account == nil {
		return nil, NewAccountErrorWithID(ErrAccountNotFound, request.ExternalID, "Conta não encontrada")
	}

	if err := s.accountRepository.UpdateAccount(ctx, request); err != nil {
		logrus.WithError(err).Error("Error updating account on the repository")
		return nil, NewAccountErrorWithID(ErrUpdateAccount, request.ExternalID, "Falha ao atualizar conta no banco de dados")
	}

	if request.Nickname != nil {
		account.Nickname = request.Nickname
	}
	if request.Labels != nil {
		account.Labels = *request.Labels
	}
	if request.Status != nil {
		account.Status = *request.Status
	}

	return toResponse(account), nil
}

func toResponse(account *domain.AdAccount) *domain.AdAccountResponse {
	return &domain.AdAccountResponse{
		ID:         account.ID,
		ExternalID: account.ExternalID,
		Name:       account.Name,
		Nickname:   account.Nickname,
		Currency:   account.Currency,
		Labels:     account.Labels,
		Status:     account.Status,
	}
}
