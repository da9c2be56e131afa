// Package store is the resource store gateway: row-level reads and writes
// against the shared database, one call per row. It exposes no multi-row
// transaction to callers; cross-row consistency is the job of the services
// that use it. All state lives here, never in process memory.
package store

import (
	"time"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

// New wraps an already-open gorm handle. The handle is injected at process
// start and shared by every service; Store itself keeps no other state.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Ping verifies connectivity and reports the round-trip latency.
func (s *Store) Ping() (time.Duration, error) {
	sqlDB, err := s.db.DB()
	if err != nil {
		return 0, translate(err)
	}
	start := time.Now()
	if err := sqlDB.Ping(); err != nil {
		return 0, translate(err)
	}
	return time.Since(start), nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return translate(err)
	}
	return sqlDB.Close()
}
