package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/account"
	"github.com/vfg2006/traffic-anomaly-alerts/pkg/apiErrors"
)

// writeAccountError usa o código do AccountError; erros sem contexto viram 500
func writeAccountError(w http.ResponseWriter, err error, fallback string) {
	var accountErr *account.AccountError
	if errors.As(err, &accountErr) {
		var details any
		if accountErr.AccountID != "" {
			details = map[string]any{
				"account_id": accountErr.AccountID,
				"error_type": accountErr.Err.Error(),
			}
		}
		apiErrors.WriteError(w, accountErr.Code, accountErr.Error(), details)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
}

func AdAccountList(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		label := r.URL.Query().Get("label")

		adAccounts, err := service.ListAdAccounts(r.Context(), label)
		if err != nil {
			logrus.WithError(err).Error("Error listing accounts")
			writeAccountError(w, err, "Erro ao listar contas")
			return
		}

		writeJSON(w, http.StatusOK, adAccounts)
	})
}

func SyncAccounts(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SyncAccounts")

		resp, err := service.SyncAccounts(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Error syncing accounts")
			writeAccountError(w, err, "Erro ao sincronizar contas")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

func UpdateAdAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateAdAccount")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		var updateRequest domain.UpdateAdAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&updateRequest); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		// Garante que o ID da URL seja usado
		updateRequest.ExternalID = id

		resp, err := service.UpdateAccount(r.Context(), &updateRequest)
		if err != nil {
			logrus.WithError(err).Error("Error updating account")
			writeAccountError(w, err, "Erro interno ao atualizar conta")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}
