// Package applock guards the Molmine data directory against concurrent
// application instances. The store is a single-file embedded database with no
// support for multiple writers from separate processes, so mutating commands
// take this lock first and fail fast when another instance holds it.
package applock

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld reports that another Molmine instance holds the lock.
var ErrHeld = errors.New("another molmine instance is already running")

// Lock is a file lock on the data directory.
type Lock struct {
	path string
	fl   *flock.Flock
}

// New builds a lock rooted in the given data directory.
func New(dataDir string) *Lock {
	path := filepath.Join(dataDir, "molmine.lock")
	return &Lock{path: path, fl: flock.New(path)}
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking.
func (l *Lock) Acquire() error {
	ok, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	if !ok {
		return fmt.Errorf("%w (lock: %s)", ErrHeld, l.path)
	}
	return nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}
