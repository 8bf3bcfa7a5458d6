// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the writer lock.
var ErrLocked = errors.New("another ingest or curate run holds the writer lock")

// WriterLock is an exclusive advisory lock next to the database file.
type WriterLock struct {
	path string
	fl   *flock.Flock
}

// LockWriter takes the writer lock for the database at dbPath without
// blocking. Ingest and curate runs hold it for their whole duration.
func LockWriter(dbPath string) (*WriterLock, error) {
	lockPath := dbPath + ".lock"
	if dir := filepath.Dir(lockPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating lock directory: %w", err)
		}
	}

	fl := flock.New(lockPath)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", lockPath, ErrLocked)
	}
	return &WriterLock{path: lockPath, fl: fl}, nil
}

// Path returns the lock file path.
func (l *WriterLock) Path() string { return l.path }

// Unlock releases the lock.
func (l *WriterLock) Unlock() error {
	return l.fl.Unlock()
}
