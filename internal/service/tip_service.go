package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/lenregele/tipsplit/internal/calculator"
	"github.com/lenregele/tipsplit/internal/models"
	"github.com/lenregele/tipsplit/internal/storage"
)

// SessionInput is the caller-supplied portion of a work session.
type SessionInput struct {
	EmployeeID   string
	EmployeeName string
	HoursWorked  float64
}

// TipServiceOptions tune history and statistics behavior.
type TipServiceOptions struct {
	// DefaultCurrency applies when a calculation request omits the code.
	DefaultCurrency string
	// DefaultHistoryLimit applies when ListHistory is called with limit 0.
	DefaultHistoryLimit int
	// MaxHistoryLimit caps the limit a caller may request.
	MaxHistoryLimit int
	// StatisticsWindow is how many recent calculations feed Statistics.
	StatisticsWindow int
}

// TipService computes tip allocations and keeps their history.
type TipService struct {
	store storage.Store
	opts  TipServiceOptions
}

// NewTipService creates a TipService with the given storage backend.
// Zero option fields fall back to sensible defaults.
func NewTipService(store storage.Store, opts TipServiceOptions) *TipService {
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = "RON"
	}
	if opts.DefaultHistoryLimit <= 0 {
		opts.DefaultHistoryLimit = 10
	}
	if opts.MaxHistoryLimit <= 0 {
		opts.MaxHistoryLimit = 100
	}
	if opts.StatisticsWindow <= 0 {
		opts.StatisticsWindow = 10
	}
	return &TipService{store: store, opts: opts}
}

// ComputeAndRecord validates the inputs, splits totalTips proportionally
// by hours worked, and persists the result as a new calculation.
//
// Sessions with non-positive hours are excluded up front. Employee IDs
// that no longer resolve against the directory are dropped silently: a
// worker removed mid-entry must not abort the whole calculation. Names
// are denormalized from the directory at this point, so the persisted
// record never depends on a live employee row.
func (s *TipService) ComputeAndRecord(ctx context.Context, totalTips float64, currency string, sessions []SessionInput) (*models.TipCalculation, error) {
	if math.IsNaN(totalTips) || math.IsInf(totalTips, 0) || totalTips <= 0 {
		return nil, models.NewValidationError("total_tips", "must be a positive number")
	}
	if currency == "" {
		currency = s.opts.DefaultCurrency
	}

	var positive []SessionInput
	for _, in := range sessions {
		if in.HoursWorked > 0 {
			positive = append(positive, in)
		}
	}
	if len(positive) == 0 {
		return nil, models.NewValidationError("work_sessions", "no valid hours")
	}

	// A split shift may arrive as several sessions for the same employee;
	// merge them by summing hours so each employee maps to exactly one
	// share (and one IndividualTips key).
	var resolved []calculator.Session
	indexByID := make(map[string]int)
	for _, in := range positive {
		if i, ok := indexByID[in.EmployeeID]; ok {
			resolved[i].HoursWorked += in.HoursWorked
			continue
		}
		e, err := s.store.GetEmployee(ctx, in.EmployeeID)
		if errors.Is(err, models.ErrNotFound) {
			slog.Warn("dropping unresolved employee from calculation", "employee_id", in.EmployeeID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve employee %s: %w", in.EmployeeID, err)
		}
		indexByID[e.ID] = len(resolved)
		resolved = append(resolved, calculator.Session{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			HoursWorked:  in.HoursWorked,
		})
	}
	if len(resolved) == 0 {
		return nil, models.NewValidationError("work_sessions", "no valid hours")
	}

	alloc, err := calculator.AllocateTips(totalTips, resolved)
	if err != nil {
		// Inputs were validated above; anything the calculator still
		// rejects is an invariant violation.
		return nil, fmt.Errorf("allocate tips: %w", err)
	}

	calc := &models.TipCalculation{
		TotalTips:      totalTips,
		Currency:       currency,
		TotalHours:     alloc.TotalHours,
		TipPerHour:     alloc.TipPerHour,
		WorkSessions:   make([]models.WorkSession, len(alloc.Shares)),
		IndividualTips: make(map[string]float64, len(alloc.Shares)),
	}
	for i, share := range alloc.Shares {
		calc.WorkSessions[i] = models.WorkSession{
			EmployeeID:   share.EmployeeID,
			EmployeeName: share.EmployeeName,
			HoursWorked:  share.HoursWorked,
			TipAmount:    share.Amount,
		}
		calc.IndividualTips[share.EmployeeID] = share.Amount
	}

	if err := s.store.CreateCalculation(ctx, calc); err != nil {
		return nil, fmt.Errorf("record calculation: %w", err)
	}

	slog.Info("calculation recorded",
		"calculation_id", calc.ID,
		"total_tips", calc.TotalTips,
		"currency", calc.Currency,
		"total_hours", calc.TotalHours,
		"sessions", len(calc.WorkSessions),
	)
	return calc, nil
}

// Get returns the calculation with the given ID, or models.ErrNotFound.
func (s *TipService) Get(ctx context.Context, id string) (*models.TipCalculation, error) {
	return s.store.GetCalculation(ctx, id)
}

// ListHistory returns the most recent calculations, newest first.
// A zero limit applies the configured default; negative limits are rejected.
func (s *TipService) ListHistory(ctx context.Context, limit int) ([]models.TipCalculation, error) {
	switch {
	case limit == 0:
		limit = s.opts.DefaultHistoryLimit
	case limit < 0:
		return nil, models.NewValidationError("limit", "must be a positive integer")
	case limit > s.opts.MaxHistoryLimit:
		limit = s.opts.MaxHistoryLimit
	}
	return s.store.ListCalculations(ctx, limit)
}

// Statistics aggregates the most recent calculations: counts, totals and
// the employee with the most hours in the window.
func (s *TipService) Statistics(ctx context.Context) (*models.Statistics, error) {
	calcs, err := s.store.ListCalculations(ctx, s.opts.StatisticsWindow)
	if err != nil {
		return nil, fmt.Errorf("load recent calculations: %w", err)
	}
	if len(calcs) == 0 {
		return &models.Statistics{}, nil
	}

	stats := &models.Statistics{TotalCalculations: len(calcs)}
	hoursByEmployee := make(map[string]float64)
	nameByEmployee := make(map[string]string)
	for _, calc := range calcs {
		stats.TotalTipsDistributed += calc.TotalTips
		for _, ws := range calc.WorkSessions {
			hoursByEmployee[ws.EmployeeID] += ws.HoursWorked
			nameByEmployee[ws.EmployeeID] = ws.EmployeeName
		}
	}
	stats.TotalTipsDistributed = roundCents(stats.TotalTipsDistributed)
	stats.AverageTipsPerCalculation = roundCents(stats.TotalTipsDistributed / float64(len(calcs)))

	// Ties break on the smaller employee ID so repeated calls agree.
	var topID string
	for id, hours := range hoursByEmployee {
		switch {
		case topID == "", hours > hoursByEmployee[topID]:
			topID = id
		case hours == hoursByEmployee[topID] && id < topID:
			topID = id
		}
	}
	if topID != "" {
		stats.MostActiveEmployee = &models.MostActiveEmployee{
			Name:       nameByEmployee[topID],
			TotalHours: hoursByEmployee[topID],
		}
	}
	return stats, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
