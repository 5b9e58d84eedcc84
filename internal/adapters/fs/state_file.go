package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

// StateFile is a JSON document on disk guarded by an in-process mutex and an
// advisory file lock, so concurrent daoctl processes see serialized updates.
type StateFile struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewStateFile creates a state file handle; nothing is touched on disk until first use
func NewStateFile(path string) *StateFile {
	return &StateFile{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the location of the JSON document
func (f *StateFile) Path() string {
	return f.path
}

// Read decodes the current document into v under a shared lock.
// A missing file leaves v untouched.
func (f *StateFile) Read(ctx context.Context, v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ensureDir(); err != nil {
		return err
	}
	locked, err := f.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", f.path, err)
	}
	if !locked {
		return fmt.Errorf("failed to lock %s", f.path)
	}
	defer f.lock.Unlock()

	return f.load(v)
}

// Update loads the document into v, runs fn and writes v back only when fn succeeds.
// The whole sequence holds the exclusive lock.
func (f *StateFile) Update(ctx context.Context, v any, fn func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ensureDir(); err != nil {
		return err
	}
	locked, err := f.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", f.path, err)
	}
	if !locked {
		return fmt.Errorf("failed to lock %s", f.path)
	}
	defer f.lock.Unlock()

	if err := f.load(v); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return f.save(v)
}

func (f *StateFile) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	return nil
}

func (f *StateFile) load(v any) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", f.path, err)
	}
	return nil
}

// save writes a temp file and renames it into place
func (f *StateFile) save(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}
