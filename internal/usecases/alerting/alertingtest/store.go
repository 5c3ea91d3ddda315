// Package alertingtest reúne dublês em memória dos colaboradores da execução de alertas
// e o teste de contrato que toda implementação de alerting.TrackingStore deve passar.
package alertingtest

import (
	"context"
	"iter"
	"sort"
	"sync"

	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting"
)

var (
	_ alerting.TrackingStore   = (*MemoryStore)(nil)
	_ alerting.DashboardReader = (*MemoryStore)(nil)
)

type markKey struct {
	row    int
	metric domain.Metric
}

// MemoryStore é um TrackingStore em memória
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	rows   map[int]domain.DashboardRow
	marks  map[markKey]domain.AlertMark
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
		rows:   make(map[int]domain.DashboardRow),
		marks:  make(map[markKey]domain.AlertMark),
	}
}

// NewMemoryStoreWithValues cria o store já com os valores nomeados informados
func NewMemoryStoreWithValues(values map[string]string) *MemoryStore {
	s := NewMemoryStore()
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *MemoryStore) GetValue(_ context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[name], nil
}

func (s *MemoryStore) SetValue(_ context.Context, name string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
	return nil
}

func (s *MemoryStore) SaveDashboardRow(_ context.Context, row *domain.DashboardRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[row.Row] = *row
	return nil
}

func (s *MemoryStore) GetAlertMark(_ context.Context, row int, metric domain.Metric) (*domain.AlertMark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mark, ok := s.marks[markKey{row, metric}]
	if !ok {
		return nil, nil
	}
	return &mark, nil
}

func (s *MemoryStore) SaveAlertMark(_ context.Context, row int, metric domain.Metric, mark *domain.AlertMark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marks[markKey{row, metric}] = *mark
	return nil
}

func (s *MemoryStore) ClearAlertMarks(_ context.Context, maxRows int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.marks {
		if key.row < maxRows {
			delete(s.marks, key)
		}
	}
	return nil
}

func (s *MemoryStore) ListValues(_ context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := make(map[string]string, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	return values, nil
}

func (s *MemoryStore) ListDashboardRows(_ context.Context) ([]*domain.DashboardRow, error) {
	rows := make([]*domain.DashboardRow, 0)
	for _, r := range s.Rows() {
		row := r
		rows = append(rows, &row)
	}
	return rows, nil
}

func (s *MemoryStore) ListAlertMarks(_ context.Context) (map[int]map[domain.Metric]*domain.AlertMark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	marks := make(map[int]map[domain.Metric]*domain.AlertMark)
	for key, mark := range s.marks {
		if marks[key.row] == nil {
			marks[key.row] = make(map[domain.Metric]*domain.AlertMark)
		}
		m := mark
		marks[key.row][key.metric] = &m
	}
	return marks, nil
}

// Rows devolve as linhas do dashboard ordenadas pelo número da linha
func (s *MemoryStore) Rows() []domain.DashboardRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]domain.DashboardRow, 0, len(s.rows))
	for _, r := range s.rows {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Row < rows[j].Row })
	return rows
}

// Value é o atalho de GetValue para asserções
func (s *MemoryStore) Value(name string) string {
	v, _ := s.GetValue(context.Background(), name)
	return v
}

// Rows transforma linhas em uma sequência de relatório
func Rows(rows ...domain.ReportRow) iter.Seq2[domain.ReportRow, error] {
	return func(yield func(domain.ReportRow, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
	}
}

// FailingRows devolve as linhas e depois o erro informado
func FailingRows(err error, rows ...domain.ReportRow) iter.Seq2[domain.ReportRow, error] {
	return func(yield func(domain.ReportRow, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
		yield(domain.ReportRow{}, err)
	}
}

// Row cria uma linha de relatório com os valores já em texto
func Row(hour int, impressions, clicks, conversions, cost string) domain.ReportRow {
	return domain.ReportRow{
		HourOfDay:   hour,
		Impressions: impressions,
		Clicks:      clicks,
		Conversions: conversions,
		Cost:        cost,
	}
}

// StaticReports é um ReportSource que devolve linhas fixas por conta, separando hoje do histórico
type StaticReports struct {
	Today      map[string][]domain.ReportRow
	Historical map[string][]domain.ReportRow
	Errors     map[string]error
}

func (r *StaticReports) HourlyReport(_ context.Context, account *domain.AdAccount, query domain.ReportQuery) iter.Seq2[domain.ReportRow, error] {
	if err, ok := r.Errors[account.ExternalID]; ok {
		return FailingRows(err)
	}
	if query.Weekday != nil {
		return Rows(r.Historical[account.ExternalID]...)
	}
	return Rows(r.Today[account.ExternalID]...)
}

// StaticAccounts é um AccountSource com uma lista fixa
type StaticAccounts []*domain.AdAccount

func (a StaticAccounts) ListAccounts(_ context.Context, label string) ([]*domain.AdAccount, error) {
	if label == "" {
		return a, nil
	}
	filtered := make([]*domain.AdAccount, 0, len(a))
	for _, acc := range a {
		if acc.HasLabel(label) {
			filtered = append(filtered, acc)
		}
	}
	return filtered, nil
}

// Sent é uma notificação capturada pelo RecordingNotifier
type Sent struct {
	To      string
	Subject string
	Body    string
}

// RecordingNotifier guarda as notificações em vez de enviá-las
type RecordingNotifier struct {
	mu   sync.Mutex
	Err  error
	sent []Sent
}

func (n *RecordingNotifier) Send(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.sent = append(n.sent, Sent{To: to, Subject: subject, Body: body})
	return nil
}

func (n *RecordingNotifier) Sent() []Sent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Sent(nil), n.sent...)
}
