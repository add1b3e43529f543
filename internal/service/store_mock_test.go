package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lenregele/tipsplit/internal/models"
	"github.com/lenregele/tipsplit/internal/storage"
)

// memStore is an in-memory storage.Store for service tests.
type memStore struct {
	mu           sync.Mutex
	employees    map[string]models.Employee
	calculations []models.TipCalculation

	failCreateCalculation bool
}

var _ storage.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{employees: make(map[string]models.Employee)}
}

func (m *memStore) CreateEmployee(_ context.Context, e *models.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Position == "" {
		e.Position = models.DefaultPosition
	}
	m.employees[e.ID] = *e
	return nil
}

func (m *memStore) GetEmployee(_ context.Context, id string) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", id, models.ErrNotFound)
	}
	return &e, nil
}

func (m *memStore) ListEmployees(_ context.Context) ([]models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]models.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (m *memStore) DeleteEmployee(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.employees, id)
	return nil
}

func (m *memStore) CreateCalculation(_ context.Context, calc *models.TipCalculation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreateCalculation {
		return fmt.Errorf("disk on fire")
	}
	if calc.ID == "" {
		calc.ID = uuid.New().String()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now().UTC()
	}
	if calc.Date.IsZero() {
		calc.Date = calc.CreatedAt
	}
	m.calculations = append(m.calculations, *calc)
	return nil
}

func (m *memStore) GetCalculation(_ context.Context, id string) (*models.TipCalculation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calculations {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("calculation %s: %w", id, models.ErrNotFound)
}

func (m *memStore) ListCalculations(_ context.Context, limit int) ([]models.TipCalculation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	calcs := make([]models.TipCalculation, len(m.calculations))
	copy(calcs, m.calculations)
	sort.SliceStable(calcs, func(i, j int) bool { return calcs[i].CreatedAt.After(calcs[j].CreatedAt) })
	if len(calcs) > limit {
		calcs = calcs[:limit]
	}
	return calcs, nil
}

func (m *memStore) Ping(context.Context) error { return nil }
func (m *memStore) Close() error               { return nil }
