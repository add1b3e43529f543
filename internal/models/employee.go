package models

import "time"

// DefaultPosition is used when an employee is added without a position.
const DefaultPosition = "Staff"

// Employee represents a staff member in the directory.
// Employees are immutable after creation; the only follow-up operation
// is deletion, which never affects past calculations.
type Employee struct {
	// ID is the unique identifier for the employee (UUID format).
	ID string `json:"id"`

	// Name is the display name of the employee.
	Name string `json:"name"`

	// Position is a free-text title (e.g., "Waiter", "Cook").
	// Defaults to DefaultPosition when not provided.
	Position string `json:"position"`

	// CreatedAt is when the employee was added to the directory (UTC).
	CreatedAt time.Time `json:"created_at"`
}
