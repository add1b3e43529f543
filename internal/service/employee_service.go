// Package service contains the business logic for the employee directory
// and the tip allocation engine. Services receive their storage backend
// explicitly and hold no other state.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lenregele/tipsplit/internal/models"
	"github.com/lenregele/tipsplit/internal/storage"
)

// EmployeeService maintains the staff directory.
type EmployeeService struct {
	store storage.Store
}

// NewEmployeeService creates an EmployeeService with the given storage backend.
func NewEmployeeService(store storage.Store) *EmployeeService {
	return &EmployeeService{store: store}
}

// Add creates a new employee. The name must be non-empty after trimming;
// a blank position defaults to models.DefaultPosition.
func (s *EmployeeService) Add(ctx context.Context, name, position string) (*models.Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("name", "must not be empty")
	}

	position = strings.TrimSpace(position)
	if position == "" {
		position = models.DefaultPosition
	}

	e := &models.Employee{Name: name, Position: position}
	if err := s.store.CreateEmployee(ctx, e); err != nil {
		return nil, fmt.Errorf("add employee: %w", err)
	}

	slog.Info("employee added", "employee_id", e.ID, "position", e.Position)
	return e, nil
}

// Get returns the employee with the given ID, or models.ErrNotFound.
func (s *EmployeeService) Get(ctx context.Context, id string) (*models.Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

// List returns all employees ordered by creation time.
func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	return s.store.ListEmployees(ctx)
}

// Delete removes an employee. Deleting an unknown ID succeeds; past
// calculations are never touched.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteEmployee(ctx, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	slog.Info("employee deleted", "employee_id", id)
	return nil
}
