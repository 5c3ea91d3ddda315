package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal converte valores numéricos em texto removendo o separador de milhar
func ParseDecimal(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	return decimal.NewFromString(cleaned)
}
