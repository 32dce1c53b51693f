// Package lockfile serializes snail commands that rewrite a workspace
// directory. It takes an advisory flock on a hidden file inside the
// directory; a second command against the same directory fails fast instead
// of interleaving shard rewrites.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Name is the lock file created inside a locked directory.
const Name = ".snail.lock"

// ErrLocked reports that another process holds the lock.
var ErrLocked = errors.New("another snail command is using this directory")

// Lock is a held workspace lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock for dir, creating dir when needed.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := filepath.Join(dir, Name)
	l := flock.New(path)
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, path)
	}
	return &Lock{path: path, lock: l}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string { return l.path }

// Release drops the lock. It is safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
