package metadomain

// BusinessManager é a conta gerenciadora dona das contas de anúncio
type BusinessManager struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AdAccount é uma conta de anúncio como devolvida por owned_ad_accounts
type AdAccount struct {
	ID            string `json:"id"`
	AccountID     string `json:"account_id"`
	Name          string `json:"name"`
	Currency      string `json:"currency"`
	TimeZoneName  string `json:"timezone_name"`
	AccountStatus int    `json:"account_status"`
}

// IsActive segue o account_status da Graph API: 1 é ativa
func (a AdAccount) IsActive() bool {
	return a.AccountStatus == 0 || a.AccountStatus == 1
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next"`
}

// HasNext indica se existe outra página a buscar
func (p Paging) HasNext() bool {
	return p.Next != "" && p.Cursors.After != ""
}

type ResponseBusinesses struct {
	Data   []BusinessManager `json:"data"`
	Paging Paging            `json:"paging"`
}

type ResponseAdAccounts struct {
	Data   []AdAccount `json:"data"`
	Paging Paging      `json:"paging"`
}
