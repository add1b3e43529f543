package calculator

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Session is one employee's hours for a single allocation.
type Session struct {
	EmployeeID   string
	EmployeeName string
	HoursWorked  float64
}

// Share is the computed amount for one employee.
type Share struct {
	EmployeeID   string
	EmployeeName string
	HoursWorked  float64
	Amount       float64
}

// Allocation is the result of distributing a tip pool across sessions.
type Allocation struct {
	TotalHours float64
	// TipPerHour is the hourly rate rounded to 2 decimals. Shares are
	// derived from the unrounded rate, so Sum(shares) can differ from
	// TipPerHour*TotalHours by rounding noise.
	TipPerHour float64
	Shares     []Share
}

// AllocateTips distributes totalTips proportionally by hours worked.
// Sessions with non-positive hours must be filtered out by the caller;
// a zero total-hours input here is an invariant violation, not a user error.
//
// Rounding policy: decimal arithmetic, round half away from zero to
// 2 places, applied to the rate and to each share. Each share is computed
// from the unrounded rate; the sum of shares may land within one cent of
// totalTips and the discrepancy is accepted, not corrected.
func AllocateTips(totalTips float64, sessions []Session) (*Allocation, error) {
	if math.IsNaN(totalTips) || math.IsInf(totalTips, 0) {
		return nil, fmt.Errorf("total tips must be a finite number")
	}
	if totalTips <= 0 {
		return nil, fmt.Errorf("total tips must be greater than zero")
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("must have at least one session")
	}

	totalHours := decimal.Zero
	for _, s := range sessions {
		if s.HoursWorked <= 0 {
			return nil, fmt.Errorf("session for %s has non-positive hours", s.EmployeeID)
		}
		totalHours = totalHours.Add(decimal.NewFromFloat(s.HoursWorked))
	}
	if totalHours.IsZero() {
		// Unreachable given the per-session check above; fail fast anyway
		// rather than divide by zero.
		return nil, fmt.Errorf("total hours is zero")
	}

	total := decimal.NewFromFloat(totalTips)
	rate := total.Div(totalHours)

	shares := make([]Share, len(sessions))
	for i, s := range sessions {
		amount := decimal.NewFromFloat(s.HoursWorked).Mul(rate).Round(2)
		shares[i] = Share{
			EmployeeID:   s.EmployeeID,
			EmployeeName: s.EmployeeName,
			HoursWorked:  s.HoursWorked,
			Amount:       amount.InexactFloat64(),
		}
	}

	return &Allocation{
		TotalHours: totalHours.InexactFloat64(),
		TipPerHour: rate.Round(2).InexactFloat64(),
		Shares:     shares,
	}, nil
}
