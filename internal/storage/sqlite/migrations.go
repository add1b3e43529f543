package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// work_sessions.employee_id is deliberately NOT a foreign key: deleting
// an employee must never cascade into or invalidate past calculations.
// Timestamp columns hold Unix nanoseconds, so newest-first ordering
// stays strict even for writes landing within the same second.
const schema = `
CREATE TABLE IF NOT EXISTS employees (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    position TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tip_calculations (
    id TEXT PRIMARY KEY,
    date INTEGER NOT NULL,
    total_tips REAL NOT NULL,
    currency TEXT NOT NULL,
    total_hours REAL NOT NULL,
    tip_per_hour REAL NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS work_sessions (
    calculation_id TEXT NOT NULL,
    employee_id TEXT NOT NULL,
    employee_name TEXT NOT NULL,
    hours_worked REAL NOT NULL,
    tip_amount REAL NOT NULL,
    PRIMARY KEY (calculation_id, employee_id),
    FOREIGN KEY (calculation_id) REFERENCES tip_calculations(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_employees_created_at ON employees(created_at);
CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON tip_calculations(created_at);
CREATE INDEX IF NOT EXISTS idx_work_sessions_calculation_id ON work_sessions(calculation_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
