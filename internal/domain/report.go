package domain

import "time"

// ReportFields são os campos pedidos ao relatório horário
var ReportFields = []string{"impressions", "clicks", "conversions", "spend"}

// ReportRow é uma linha do relatório horário de uma conta.
// Os valores numéricos chegam como texto e são convertidos na acumulação.
type ReportRow struct {
	HourOfDay   int
	DayOfWeek   time.Weekday
	Clicks      string
	Impressions string
	Conversions string
	Cost        string
}

// ReportQuery descreve o período pedido ao relatório
type ReportQuery struct {
	Fields    []string
	StartDate time.Time
	EndDate   time.Time
	Weekday   *time.Weekday
}

// Matches indica se a linha passa pelo filtro de dia da semana da consulta
func (q ReportQuery) Matches(row ReportRow) bool {
	return q.Weekday == nil || *q.Weekday == row.DayOfWeek
}
