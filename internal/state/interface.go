package state

import (
	"io"
	"time"
)

// RunStore handles persistence of validation runs.
type RunStore interface {
	RecordRun(r *Run) error
	GetRun(id string) (*Run, error)
	ListRuns(limit int) ([]Run, error)
	LastRun(basePath string) (*Run, error)
	PurgeOldRuns(olderThan time.Duration) (int64, error)
}

// Migrator handles database schema migrations.
type Migrator interface {
	// Migrate applies all pending schema migrations.
	Migrate() error
}

// HistoryStore is what the command line needs from the history database.
type HistoryStore interface {
	io.Closer
	Migrator
	RunStore

	// Path returns the location of the backing database file.
	Path() string
}

// Compile-time verification that DB implements all interfaces.
var (
	_ HistoryStore = (*DB)(nil)
	_ Migrator     = (*DB)(nil)
	_ RunStore     = (*DB)(nil)
)
