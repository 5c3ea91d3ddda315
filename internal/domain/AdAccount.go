package domain

import (
	"strings"
	"time"
)

type BusinessManager struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ExternalID string `json:"external_id"`
}

type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusInactive AdAccountStatus = "INACTIVE"
)

func (s AdAccountStatus) IsValid() bool {
	return s == AdAccountStatusActive || s == AdAccountStatusInactive
}

// AdAccount é uma conta filha da conta gerenciadora (Business Manager)
type AdAccount struct {
	BusinessManagerID   string          `json:"business_id"`
	BusinessManagerName string          `json:"business_name"`
	Currency            string          `json:"currency"`
	ExternalID          string          `json:"external_id"`
	ID                  string          `json:"id"`
	Labels              []string        `json:"labels"`
	Name                string          `json:"name"`
	Nickname            *string         `json:"nickname"`
	Status              AdAccountStatus `json:"status"`
	TimeZone            string          `json:"timezone"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// DisplayName prefere o apelido da conta quando existir
func (a *AdAccount) DisplayName() string {
	if a.Nickname != nil && *a.Nickname != "" {
		return *a.Nickname
	}
	return a.Name
}

// HasLabel compara o rótulo sem diferenciar maiúsculas
func (a *AdAccount) HasLabel(label string) bool {
	for _, l := range a.Labels {
		if strings.EqualFold(strings.TrimSpace(l), strings.TrimSpace(label)) {
			return true
		}
	}
	return false
}

type SyncAccountsResponse struct {
	Quantity int    `json:"quantity"`
	Message  string `json:"message"`
	Error    bool   `json:"error"`
}

// UpdateAdAccountRequest altera apenas os campos informados
type UpdateAdAccountRequest struct {
	ExternalID string           `json:"-"`
	Nickname   *string          `json:"nickname"`
	Labels     *[]string        `json:"labels"`
	Status     *AdAccountStatus `json:"status"`
}

type AdAccountResponse struct {
	ID         string          `json:"id"`
	ExternalID string          `json:"external_id"`
	Name       string          `json:"name"`
	Nickname   *string         `json:"nickname"`
	Currency   string          `json:"currency"`
	Labels     []string        `json:"labels"`
	Status     AdAccountStatus `json:"status"`
}
