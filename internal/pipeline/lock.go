package pipeline

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

var errOutputLocked = errors.New("output is being written by another process")

// outputLock is an advisory lock on <output>.lock held for the whole run.
// The file is unlinked while the lock is still held, so a locker must check
// that the path still names the inode it locked.
type outputLock struct {
	lock *flock.Flock
}

func lockOutput(output string) (*outputLock, error) {
	lock := flock.New(output + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", lock.Path(), err)
	}
	if !ok {
		return nil, errOutputLocked
	}
	if err := lockedPathCurrent(lock); err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	return &outputLock{lock: lock}, nil
}

// lockedPathCurrent fails when the locked file was unlinked or replaced
// between open and lock by a run that was finishing.
func lockedPathCurrent(lock *flock.Flock) error {
	held, err := lock.Stat()
	if err != nil {
		return fmt.Errorf("stat lock %s: %w", lock.Path(), err)
	}
	onDisk, err := os.Stat(lock.Path())
	if errors.Is(err, os.ErrNotExist) {
		return errOutputLocked
	}
	if err != nil {
		return fmt.Errorf("stat lock %s: %w", lock.Path(), err)
	}
	if !os.SameFile(held, onDisk) {
		return errOutputLocked
	}
	return nil
}

func (l *outputLock) release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	removeErr := os.Remove(l.lock.Path())
	if errors.Is(removeErr, os.ErrNotExist) {
		removeErr = nil
	}
	return errors.Join(removeErr, l.lock.Unlock())
}
