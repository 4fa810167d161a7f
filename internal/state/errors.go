package state

import "errors"

var (
	// ErrLockTimeout means exclusive access to the state file could not
	// be obtained within the configured retry budget.
	ErrLockTimeout = errors.New("state: could not acquire file lock")

	// ErrCorrupt means neither the state file nor its backup could be
	// parsed; no safe document exists to transact against.
	ErrCorrupt = errors.New("state: state file and backup are both unreadable")
)
