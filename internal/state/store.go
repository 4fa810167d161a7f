// Package state implements the shared coordination store for the
// multi-agent team: one JSON document guarded by an exclusive file lock,
// mutated only through atomic load-transform-persist transactions.
//
// Every public operation on Store runs as one transaction. Concurrency is
// inter-process; the flock on the state file is the only arbiter, so all
// operations are safe to call from independent OS processes.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/noahlilabs/team-claude/internal/models"
)

// Options tunes the transaction executor. The zero value is usable;
// unset fields fall back to the defaults below.
type Options struct {
	// LockWait is the ceiling on one round of polling for the flock.
	LockWait time.Duration
	// PollInterval is the sleep between lock attempts within a round.
	PollInterval time.Duration
	// MaxRetries is the number of backoff rounds after LockWait expires.
	MaxRetries int
	// RetryDelay is the base backoff delay, doubled per round.
	RetryDelay time.Duration
	// BackoffCap bounds the backoff delay.
	BackoffCap time.Duration
	// ForceUnlock reproduces the legacy behavior of proceeding without
	// the lock once LockWait expires. Off by default: the executor fails
	// closed with ErrLockTimeout instead of opening a race window.
	ForceUnlock bool
	// MaxAgents caps agent registrations.
	MaxAgents int
	// Roster is the static agent list used as broadcast fallback before
	// any agent has registered.
	Roster []string
	// Logger receives operational warnings (backup failures, recovery,
	// forced unlocks). Defaults to slog.Default().
	Logger *slog.Logger
}

const (
	defaultLockWait     = 30 * time.Second
	defaultPollInterval = 500 * time.Millisecond
	defaultMaxRetries   = 3
	defaultRetryDelay   = 500 * time.Millisecond
	defaultBackoffCap   = 60 * time.Second
	defaultMaxAgents    = 10
)

// Store is the lock-guarded document store. Construct it explicitly with
// New and pass it by reference; there is no process-wide singleton.
type Store struct {
	path string
	opts Options
	log  *slog.Logger
}

// New creates a store backed by the given state file, initializing an
// empty document when the file does not exist yet.
func New(path string, opts Options) (*Store, error) {
	if opts.LockWait <= 0 {
		opts.LockWait = defaultLockWait
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	if opts.BackoffCap <= 0 {
		opts.BackoffCap = defaultBackoffCap
	}
	if opts.MaxAgents <= 0 {
		opts.MaxAgents = defaultMaxAgents
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Store{path: path, opts: opts, log: opts.Logger}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		data, err := json.MarshalIndent(models.NewDocument(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal empty document: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to initialize state file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat state file: %w", err)
	}

	return s, nil
}

// Path returns the state file path backing the store.
func (s *Store) Path() string {
	return s.path
}

// BackupPath returns the sibling backup file path.
func (s *Store) BackupPath() string {
	return s.path + ".bak"
}

// run executes one transaction: backup, lock, load, snapshot, transform,
// persist or roll back, unlock. The transform may freely mutate the
// document; if it returns an error the persisted file is left observably
// unchanged and the error propagates to the caller.
func (s *Store) run(transform func(doc *models.Document) error) error {
	s.backup()

	restored := false
	for {
		err := s.transact(transform)
		if err == nil {
			return nil
		}

		// An unreachable primary gets one shot at restoration from the
		// backup before the failure surfaces.
		var ioErr *openError
		if errors.As(err, &ioErr) && !restored {
			if s.restoreFromBackup() {
				restored = true
				continue
			}
		}
		return err
	}
}

// openError wraps failures to open the primary state file, so run can
// distinguish them from lock and transform failures.
type openError struct{ err error }

func (e *openError) Error() string { return e.err.Error() }
func (e *openError) Unwrap() error { return e.err }

func (s *Store) transact(transform func(doc *models.Document) error) error {
	f, err := os.OpenFile(s.path, os.O_RDWR, 0644)
	if err != nil {
		return &openError{fmt.Errorf("failed to open state file: %w", err)}
	}
	defer f.Close()

	locked, err := s.acquireLock(f)
	if err != nil {
		return err
	}
	if locked {
		defer releaseLock(f)
	}

	doc, err := s.load(f)
	if err != nil {
		return err
	}

	snapshot := doc.Clone()

	if err := transform(doc); err != nil {
		// Nothing was written yet, so the file already equals the
		// snapshot; restore anyway in case the forced-unlock path let a
		// concurrent writer slip a partial state underneath us.
		if werr := s.write(f, snapshot); werr != nil {
			s.log.Error("rollback write failed", "path", s.path, "error", werr)
		}
		return err
	}

	if err := s.write(f, doc); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

// acquireLock polls for a non-blocking exclusive flock. Each round polls
// for up to LockWait; expired rounds back off exponentially up to
// MaxRetries before the typed timeout error surfaces. With ForceUnlock
// set, an expired first round proceeds without the lock (legacy
// availability-over-isolation trade-off) and returns locked=false.
func (s *Store) acquireLock(f *os.File) (locked bool, err error) {
	for attempt := 0; attempt < s.opts.MaxRetries; attempt++ {
		deadline := time.Now().Add(s.opts.LockWait)
		for {
			err := tryLock(f)
			if err == nil {
				return true, nil
			}
			if !isLockBusy(err) {
				return false, fmt.Errorf("failed to lock state file: %w", err)
			}
			if time.Now().After(deadline) {
				break
			}
			time.Sleep(s.opts.PollInterval)
		}

		if s.opts.ForceUnlock {
			s.log.Warn("lock wait timeout, proceeding without lock", "path", s.path)
			return false, nil
		}

		delay := s.opts.RetryDelay << uint(attempt)
		if delay > s.opts.BackoffCap {
			delay = s.opts.BackoffCap
		}
		s.log.Warn("lock acquisition failed, retrying",
			"attempt", attempt+1, "max", s.opts.MaxRetries, "delay", delay)
		time.Sleep(delay)
	}
	return false, fmt.Errorf("%w after %d attempts", ErrLockTimeout, s.opts.MaxRetries)
}

// load parses the document from the locked file, falling back to the
// backup when the primary is corrupt. Both unreadable is fatal.
func (s *Store) load(f *os.File) (*models.Document, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek state file: %w", err)
	}

	var doc models.Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		s.log.Error("state file corrupted, attempting recovery from backup", "path", s.path, "error", err)
		data, berr := os.ReadFile(s.BackupPath())
		if berr != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		doc = models.Document{}
		if berr := json.Unmarshal(data, &doc); berr != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, berr)
		}
	}

	if err := doc.Migrate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// write truncates the file and rewrites the full document, flushing
// durably before the lock is released.
func (s *Store) write(f *os.File, doc *models.Document) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := f.Truncate(0); err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return f.Sync()
}

// backup copies the primary file to its .bak sibling. Best effort: a
// failed backup is logged and the transaction proceeds. An unparsable
// primary is never copied, so a crash-corrupted file cannot clobber the
// last good backup the corruption recovery depends on.
func (s *Store) backup() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Warn("could not create backup", "path", s.path, "error", err)
		return
	}
	if !json.Valid(data) {
		s.log.Warn("skipping backup of corrupt state file", "path", s.path)
		return
	}
	if err := os.WriteFile(s.BackupPath(), data, 0644); err != nil {
		s.log.Warn("could not create backup", "path", s.BackupPath(), "error", err)
	}
}

// restoreFromBackup validates the backup and copies it over the primary.
// Returns true when the primary was restored and the transaction should
// be retried.
func (s *Store) restoreFromBackup() bool {
	data, err := os.ReadFile(s.BackupPath())
	if err != nil {
		return false
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Error("backup file also corrupted", "path", s.BackupPath(), "error", err)
		return false
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.log.Error("failed to restore state file from backup", "path", s.path, "error", err)
		return false
	}
	s.log.Warn("state file restored from backup", "path", s.path)
	return true
}

// StateData returns a detached copy of the whole document, for status
// reporting and debugging.
func (s *Store) StateData() (*models.Document, error) {
	var snap *models.Document
	err := s.run(func(doc *models.Document) error {
		snap = doc.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
