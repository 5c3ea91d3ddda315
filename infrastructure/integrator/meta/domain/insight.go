package metadomain

import (
	"strconv"
	"strings"
	"time"
)

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// HourlyInsight é uma linha do relatório de insights quebrado por hora do fuso do anunciante
type HourlyInsight struct {
	AccountID   string   `json:"account_id"`
	Actions     []Action `json:"actions"`
	Clicks      string   `json:"clicks"`
	DateStart   string   `json:"date_start"`
	DateStop    string   `json:"date_stop"`
	HourlyStats string   `json:"hourly_stats_aggregated_by_advertiser_time_zone"`
	Impressions string   `json:"impressions"`
	Spend       string   `json:"spend"`
}

type ResponseHourlyInsights struct {
	Data   []HourlyInsight `json:"data"`
	Paging Paging          `json:"paging"`
}

// Hour extrai a hora do intervalo "14:00:00 - 14:59:59"
func (h HourlyInsight) Hour() (int, error) {
	start, _, _ := strings.Cut(h.HourlyStats, " - ")
	hourText, _, _ := strings.Cut(strings.TrimSpace(start), ":")
	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 {
		return 0, strconv.ErrRange
	}
	return hour, nil
}

// Weekday é o dia da semana da data da linha
func (h HourlyInsight) Weekday() (time.Weekday, error) {
	date, err := time.Parse(time.DateOnly, h.DateStart)
	if err != nil {
		return 0, err
	}
	return date.Weekday(), nil
}

// ActionValue devolve o valor da ação informada; "0" quando a ação não aparece na linha
func (h HourlyInsight) ActionValue(actionType string) string {
	for _, action := range h.Actions {
		if action.ActionType == actionType {
			return orZero(action.Value)
		}
	}
	return "0"
}

func orZero(value string) string {
	if strings.TrimSpace(value) == "" {
		return "0"
	}
	return value
}

// NumericOrZero troca campos numéricos ausentes por "0"; a API omite métricas sem eventos
func NumericOrZero(value string) string {
	return orZero(value)
}
