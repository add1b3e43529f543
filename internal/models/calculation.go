package models

import "time"

// WorkSession is one employee's recorded hours inside a single calculation.
// Sessions exist only as input to, and embedded inside, one TipCalculation;
// only sessions with positive hours make it into a persisted record.
type WorkSession struct {
	// EmployeeID references the directory employee (UUID format).
	EmployeeID string `json:"employee_id"`

	// EmployeeName is a denormalized copy of the employee's name taken
	// at calculation time. History stays readable after a delete.
	EmployeeName string `json:"employee_name"`

	// HoursWorked is the number of hours for this session. Must be > 0
	// to be included in a calculation.
	HoursWorked float64 `json:"hours_worked"`

	// TipAmount is this employee's computed share, rounded to 2 decimals.
	TipAmount float64 `json:"tip_amount"`
}

// TipCalculation is the persisted result of one allocation run.
// It is written once inside a single transaction and never mutated
// or deleted afterwards.
type TipCalculation struct {
	// ID is the unique identifier for the calculation (UUID format).
	ID string `json:"id"`

	// Date is the calculation date, set at creation time (UTC).
	Date time.Time `json:"date"`

	// TotalTips is the tip pool being distributed. Always > 0.
	TotalTips float64 `json:"total_tips"`

	// Currency is the ISO-ish currency code for the amounts.
	Currency string `json:"currency"`

	// WorkSessions holds the sessions that survived validation
	// (positive hours, resolvable employee).
	WorkSessions []WorkSession `json:"work_sessions"`

	// TotalHours is the sum of hours over WorkSessions.
	TotalHours float64 `json:"total_hours"`

	// TipPerHour is the uniform hourly rate, rounded to 2 decimals.
	TipPerHour float64 `json:"tip_per_hour"`

	// IndividualTips maps employee ID to that employee's share.
	// Its keys are exactly the employee IDs present in WorkSessions.
	IndividualTips map[string]float64 `json:"individual_tips"`

	// CreatedAt is when the record was persisted (UTC).
	CreatedAt time.Time `json:"created_at"`
}

// MostActiveEmployee identifies the employee with the most hours across
// the statistics window.
type MostActiveEmployee struct {
	Name       string  `json:"name"`
	TotalHours float64 `json:"total_hours"`
}

// Statistics aggregates the most recent calculations.
type Statistics struct {
	TotalCalculations         int                 `json:"total_calculations"`
	TotalTipsDistributed      float64             `json:"total_tips_distributed"`
	AverageTipsPerCalculation float64             `json:"average_tips_per_calculation"`
	MostActiveEmployee        *MostActiveEmployee `json:"most_active_employee"`
}
