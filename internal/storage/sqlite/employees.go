package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lenregele/tipsplit/internal/models"
)

// CreateEmployee persists a new employee to the database.
func (s *SQLiteStore) CreateEmployee(ctx context.Context, e *models.Employee) error {
	// Generate ID and timestamp if not set
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Position == "" {
		e.Position = models.DefaultPosition
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO employees (id, name, position, created_at) VALUES (?, ?, ?, ?)",
		e.ID, e.Name, e.Position, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

// GetEmployee retrieves an employee by ID.
func (s *SQLiteStore) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	e := &models.Employee{}
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, position, created_at FROM employees WHERE id = ?",
		id,
	).Scan(&e.ID, &e.Name, &e.Position, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("employee %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	e.CreatedAt = time.Unix(0, createdAt).UTC()
	return e, nil
}

// ListEmployees returns all employees ordered by creation time.
func (s *SQLiteStore) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, position, created_at FROM employees ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Name, &e.Position, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.CreatedAt = time.Unix(0, createdAt).UTC()
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// DeleteEmployee removes an employee by ID. Absent IDs are not an error.
// Past calculations keep their denormalized copy of the name.
func (s *SQLiteStore) DeleteEmployee(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}
