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

// CreateCalculation persists a calculation and its work sessions in a
// single transaction. Either the whole record lands or nothing does.
func (s *SQLiteStore) CreateCalculation(ctx context.Context, calc *models.TipCalculation) error {
	// Generate ID and timestamps if not set
	if calc.ID == "" {
		calc.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = now
	}
	if calc.Date.IsZero() {
		calc.Date = calc.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO tip_calculations (id, date, total_tips, currency, total_hours, tip_per_hour, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		calc.ID, calc.Date.UnixNano(), calc.TotalTips, calc.Currency, calc.TotalHours, calc.TipPerHour, calc.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert calculation: %w", err)
	}

	for _, ws := range calc.WorkSessions {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO work_sessions (calculation_id, employee_id, employee_name, hours_worked, tip_amount) VALUES (?, ?, ?, ?, ?)",
			calc.ID, ws.EmployeeID, ws.EmployeeName, ws.HoursWorked, ws.TipAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert work session: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetCalculation retrieves a calculation by ID, including work sessions.
func (s *SQLiteStore) GetCalculation(ctx context.Context, id string) (*models.TipCalculation, error) {
	calc := &models.TipCalculation{}
	var date, createdAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, date, total_tips, currency, total_hours, tip_per_hour, created_at FROM tip_calculations WHERE id = ?",
		id,
	).Scan(&calc.ID, &date, &calc.TotalTips, &calc.Currency, &calc.TotalHours, &calc.TipPerHour, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("calculation %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}
	calc.Date = time.Unix(0, date).UTC()
	calc.CreatedAt = time.Unix(0, createdAt).UTC()

	if err := s.loadWorkSessions(ctx, calc); err != nil {
		return nil, err
	}
	return calc, nil
}

// ListCalculations returns at most limit calculations, newest first.
func (s *SQLiteStore) ListCalculations(ctx context.Context, limit int) ([]models.TipCalculation, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, total_tips, currency, total_hours, tip_per_hour, created_at FROM tip_calculations ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	var calcs []models.TipCalculation
	for rows.Next() {
		var calc models.TipCalculation
		var date, createdAt int64
		if err := rows.Scan(&calc.ID, &date, &calc.TotalTips, &calc.Currency, &calc.TotalHours, &calc.TipPerHour, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		calc.Date = time.Unix(0, date).UTC()
		calc.CreatedAt = time.Unix(0, createdAt).UTC()
		calcs = append(calcs, calc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calculations: %w", err)
	}

	for i := range calcs {
		if err := s.loadWorkSessions(ctx, &calcs[i]); err != nil {
			return nil, err
		}
	}
	return calcs, nil
}

// loadWorkSessions fills in WorkSessions and IndividualTips for calc.
func (s *SQLiteStore) loadWorkSessions(ctx context.Context, calc *models.TipCalculation) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT employee_id, employee_name, hours_worked, tip_amount FROM work_sessions WHERE calculation_id = ? ORDER BY employee_name, employee_id",
		calc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get work sessions: %w", err)
	}
	defer rows.Close()

	calc.IndividualTips = make(map[string]float64)
	for rows.Next() {
		var ws models.WorkSession
		if err := rows.Scan(&ws.EmployeeID, &ws.EmployeeName, &ws.HoursWorked, &ws.TipAmount); err != nil {
			return fmt.Errorf("failed to scan work session: %w", err)
		}
		calc.WorkSessions = append(calc.WorkSessions, ws)
		calc.IndividualTips[ws.EmployeeID] = ws.TipAmount
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate work sessions: %w", err)
	}
	return nil
}
