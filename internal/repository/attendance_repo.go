package repository

import (
	"database/sql"
	"fmt"

	"kinderpost/internal/authz"
	"kinderpost/internal/database"
	"kinderpost/internal/models"
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *database.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceColumns = "id, child_id, date, check_in_time, check_out_time, created_at"

func scanAttendance(row interface{ Scan(...interface{}) error }) (*models.Attendance, error) {
	a := &models.Attendance{}
	err := row.Scan(&a.ID, &a.ChildID, &a.Date, &a.CheckInTime, &a.CheckOutTime, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAttendance checks a child in. The unique (child_id, date) constraint
// rejects a second check-in on the same date.
func (r *AttendanceRepository) CreateAttendance(childID int64, date, checkInTime string) (*models.Attendance, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO attendance (child_id, date, check_in_time) VALUES (?, ?, ?)",
		childID, date, checkInTime,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create attendance: %w", err)
	}
	return r.GetAttendanceByID(id)
}

// GetAttendanceByID retrieves an attendance record by ID
func (r *AttendanceRepository) GetAttendanceByID(id int64) (*models.Attendance, error) {
	a, err := scanAttendance(r.db.QueryRow("SELECT "+attendanceColumns+" FROM attendance WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// GetAttendanceByChildAndDate retrieves the attendance record of a child on a date
func (r *AttendanceRepository) GetAttendanceByChildAndDate(childID int64, date string) (*models.Attendance, error) {
	a, err := scanAttendance(r.db.QueryRow(
		"SELECT "+attendanceColumns+" FROM attendance WHERE child_id = ? AND date = ?", childID, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// ExistsForDate reports whether a child is checked in on a date
func (r *AttendanceRepository) ExistsForDate(childID int64, date string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM attendance WHERE child_id = ? AND date = ?", childID, date).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance: %w", err)
	}
	return count > 0, nil
}

// UpdateCheckOut stamps the check-out time on an attendance record
func (r *AttendanceRepository) UpdateCheckOut(id int64, checkOutTime string) error {
	_, err := r.db.Exec("UPDATE attendance SET check_out_time = ? WHERE id = ?", checkOutTime, id)
	if err != nil {
		return fmt.Errorf("failed to update check-out: %w", err)
	}
	return nil
}

// ListAttendance retrieves attendance records visible to a scope, newest first
func (r *AttendanceRepository) ListAttendance(scope authz.Scope, filter RecordFilter) ([]models.Attendance, error) {
	scopeClause, scopeArgs := childScopeClause(scope, "c")
	filterClause, filterArgs := filter.clause("a")
	query := `
		SELECT a.id, a.child_id, a.date, a.check_in_time, a.check_out_time, a.created_at
		FROM attendance a
		JOIN children c ON c.id = a.child_id
		WHERE ` + scopeClause + ` AND ` + filterClause + `
		ORDER BY a.date DESC, a.id DESC
	`
	rows, err := r.db.Query(query, append(scopeArgs, filterArgs...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []models.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, *a)
	}
	return records, nil
}
