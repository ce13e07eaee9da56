// Package attendstore keeps a history of attendance summaries in sqlite.
// At most one snapshot per student per day is retained; pushing again on
// the same day replaces the earlier row.
package attendstore

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

type Snapshot struct {
	Student              string
	Time                 time.Time
	OverallPercentage    float64
	CalculatedPercentage float64
	GrossAttendance      *float64
	TotalPresent         int
	TotalClasses         int
	// Subjects holds the per-subject breakdown as JSON, so callers can
	// store whatever shape they summarize into.
	Subjects json.RawMessage
}

func (s Store) Push(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	startOfToday := time.Date(snap.Time.Year(), snap.Time.Month(), snap.Time.Day(), 0, 0, 0, 0, snap.Time.Location()).Unix()
	startOfTomorrow := time.Date(snap.Time.Year(), snap.Time.Month(), snap.Time.Day()+1, 0, 0, 0, 0, snap.Time.Location()).Unix()

	_, err = tx.ExecContext(
		ctx,
		`DELETE FROM attendance_snapshot WHERE student = ? AND time >= ? AND time < ?`,
		snap.Student, startOfToday, startOfTomorrow,
	)
	if err != nil {
		return err
	}

	subjects := snap.Subjects
	if subjects == nil {
		subjects = json.RawMessage("[]")
	}
	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO attendance_snapshot
			(student, time, overall_percentage, calculated_percentage, gross_attendance, total_present, total_classes, subjects)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.Student,
		snap.Time.Unix(),
		snap.OverallPercentage,
		snap.CalculatedPercentage,
		snap.GrossAttendance,
		snap.TotalPresent,
		snap.TotalClasses,
		string(subjects),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s Store) Pull(ctx context.Context, student string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT student, time, overall_percentage, calculated_percentage, gross_attendance, total_present, total_classes, subjects
		FROM attendance_snapshot
		WHERE student = ?
		ORDER BY time ASC`,
		student,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var unix int64
		var gross sql.NullFloat64
		var subjects string
		err := rows.Scan(
			&snap.Student,
			&unix,
			&snap.OverallPercentage,
			&snap.CalculatedPercentage,
			&gross,
			&snap.TotalPresent,
			&snap.TotalClasses,
			&subjects,
		)
		if err != nil {
			return nil, err
		}
		snap.Time = time.Unix(unix, 0)
		if gross.Valid {
			snap.GrossAttendance = &gross.Float64
		}
		snap.Subjects = json.RawMessage(subjects)
		out = append(out, snap)
	}
	return out, rows.Err()
}
