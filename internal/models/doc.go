// Package models defines the core domain models for the tip splitter.
//
// # Models
//
//   - Employee: a staff member kept in the directory
//   - WorkSession: one employee's hours inside a single calculation
//   - TipCalculation: the persisted result of one allocation run
//   - Statistics: aggregates over recent calculations
//
// Employees are referenced by UUID strings. Work sessions carry a
// denormalized copy of the employee name taken at calculation time, so
// history stays readable after an employee is deleted.
//
// # Design Principles
//
// 1. **Immutability**: a TipCalculation is written once and never updated
// 2. **No cascades**: deleting an employee never touches past calculations
// 3. **Avoid circular references**: models hold ID strings, not pointers
package models
