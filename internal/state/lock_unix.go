//go:build !windows

package state

import (
	"errors"
	"os"
	"syscall"
)

// tryLock attempts a non-blocking exclusive flock on the file.
func tryLock(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

// releaseLock drops the flock. Closing the descriptor would release it
// too, but the executor unlocks explicitly on every exit path.
func releaseLock(f *os.File) {
	_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}

// isLockBusy reports whether the lock attempt failed because another
// process holds the lock.
func isLockBusy(err error) bool {
	return errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EAGAIN)
}
