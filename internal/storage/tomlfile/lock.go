package tomlfile

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	lockTimeout = 5 * time.Second
	lockRetry   = 50 * time.Millisecond
)

// lock is a directory-based lock shared between rmgrid processes.
// os.Mkdir fails when the directory exists, so only one holder succeeds.
type lock struct {
	dir     string
	timeout time.Duration
}

func newLock(dir string) *lock {
	return &lock{dir: dir, timeout: lockTimeout}
}

func (l *lock) acquire() error {
	start := time.Now()
	for {
		err := os.Mkdir(l.dir, 0o700)
		if err == nil {
			return nil
		}
		if !errors.Is(err, os.ErrExist) {
			return err
		}
		if time.Since(start) > l.timeout {
			return fmt.Errorf("lock %s held for more than %s", l.dir, l.timeout)
		}
		time.Sleep(lockRetry)
	}
}

func (l *lock) release() error {
	return os.Remove(l.dir)
}

// withLock runs fn while holding the lock at dir.
func withLock(dir string, fn func() error) error {
	l := newLock(dir)
	if err := l.acquire(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer l.release()
	return fn()
}
