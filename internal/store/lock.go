package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

// FileLocker serializes cache work per key across processes with lock files.
type FileLocker struct {
	dir string
}

// NewFileLocker returns a locker that keeps its lock files in dir.
func NewFileLocker(dir string) *FileLocker {
	return &FileLocker{dir: dir}
}

// Lock blocks until the lock for key is held or ctx is done.
func (l *FileLocker) Lock(ctx context.Context, key string) (func() error, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock dir: %w", err)
	}
	lock := flock.New(l.path(key))
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock for %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("acquire cache lock for %s: lock not obtained", key)
	}
	return lock.Unlock, nil
}

func (l *FileLocker) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(l.dir, hex.EncodeToString(sum[:8])+".lock")
}
