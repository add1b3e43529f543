// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/lenregele/tipsplit/internal/models"
)

// Store defines the interface for directory and calculation storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateEmployee persists a new employee. The ID and CreatedAt fields
	// will be populated by the store if unset.
	CreateEmployee(ctx context.Context, e *models.Employee) error

	// GetEmployee retrieves an employee by ID.
	// Returns models.ErrNotFound if no such employee exists.
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)

	// ListEmployees returns all employees ordered by creation time.
	ListEmployees(ctx context.Context) ([]models.Employee, error)

	// DeleteEmployee removes an employee. Deleting an absent ID is not
	// an error, and existing calculations are never touched.
	DeleteEmployee(ctx context.Context, id string) error

	// CreateCalculation persists a calculation with its work sessions
	// in a single transaction. The ID, Date and CreatedAt fields will be
	// populated by the store if unset.
	CreateCalculation(ctx context.Context, calc *models.TipCalculation) error

	// GetCalculation retrieves a calculation by ID.
	// Returns models.ErrNotFound if no such calculation exists.
	GetCalculation(ctx context.Context, id string) (*models.TipCalculation, error)

	// ListCalculations returns at most limit calculations, newest first.
	ListCalculations(ctx context.Context, limit int) ([]models.TipCalculation, error)

	// Ping verifies the underlying storage is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
