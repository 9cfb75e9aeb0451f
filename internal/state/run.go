package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome is the result of one environment check.
type Outcome string

const (
	// OutcomeReady means the environment matched, possibly after overrides.
	OutcomeReady Outcome = "ready"
	// OutcomeFatal means the check stopped on operator-facing misconfiguration.
	OutcomeFatal Outcome = "fatal"
	// OutcomeError means the check failed on a configuration error.
	OutcomeError Outcome = "error"
)

// Run is one recorded environment check.
type Run struct {
	ID              string    `json:"id" yaml:"id"`
	BasePath        string    `json:"base_path" yaml:"base_path"`
	AppVersion      string    `json:"app_version" yaml:"app_version"`
	BazelRequired   string    `json:"bazel_required" yaml:"bazel_required"`
	BazelActual     string    `json:"bazel_actual" yaml:"bazel_actual"`
	BazelOverridden bool      `json:"bazel_overridden" yaml:"bazel_overridden"`
	XcodeRequired   string    `json:"xcode_required" yaml:"xcode_required"`
	XcodeActual     string    `json:"xcode_actual" yaml:"xcode_actual"`
	XcodeOverridden bool      `json:"xcode_overridden" yaml:"xcode_overridden"`
	Outcome         Outcome   `json:"outcome" yaml:"outcome"`
	Message         string    `json:"message,omitempty" yaml:"message,omitempty"`
	CheckedAt       time.Time `json:"checked_at" yaml:"checked_at"`
}

const runColumns = `id, base_path, app_version, bazel_required, bazel_actual, bazel_overridden,
	xcode_required, xcode_actual, xcode_overridden, outcome, message, checked_at`

// RecordRun inserts a run. An empty ID is replaced with a new UUID and a
// zero CheckedAt with the current time.
func (db *DB) RecordRun(r *Run) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CheckedAt.IsZero() {
		r.CheckedAt = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.BasePath, r.AppVersion, r.BazelRequired, r.BazelActual, r.BazelOverridden,
		r.XcodeRequired, r.XcodeActual, r.XcodeOverridden, string(r.Outcome), r.Message, formatTime(r.CheckedAt))
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID. Returns nil if it does not exist.
func (db *DB) GetRun(id string) (*Run, error) {
	row := db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// ListRuns returns the most recent runs, newest first.
// A limit of zero or less returns every run.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY checked_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LastRun returns the newest run for basePath, or nil if there is none.
func (db *DB) LastRun(basePath string) (*Run, error) {
	row := db.QueryRow(`
		SELECT `+runColumns+` FROM runs
		WHERE base_path = ?
		ORDER BY checked_at DESC, rowid DESC
		LIMIT 1
	`, basePath)

	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last run: %w", err)
	}
	return r, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(s rowScanner) (*Run, error) {
	var r Run
	var appVersion, bazelRequired, bazelActual, xcodeRequired, xcodeActual, message sql.NullString
	var checkedAt string
	err := s.Scan(&r.ID, &r.BasePath, &appVersion, &bazelRequired, &bazelActual, &r.BazelOverridden,
		&xcodeRequired, &xcodeActual, &r.XcodeOverridden, &r.Outcome, &message, &checkedAt)
	if err != nil {
		return nil, err
	}

	r.AppVersion = appVersion.String
	r.BazelRequired = bazelRequired.String
	r.BazelActual = bazelActual.String
	r.XcodeRequired = xcodeRequired.String
	r.XcodeActual = xcodeActual.String
	r.Message = message.String
	r.CheckedAt, _ = parseTime(checkedAt)
	return &r, nil
}
