package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryInterval is the polling interval while another process holds the
// mirror lock.
const lockRetryInterval = 50 * time.Millisecond

// acquireLock takes an exclusive lock on lockPath, polling until it succeeds
// or ctx is done.
func acquireLock(ctx context.Context, lockPath string) (*flock.Flock, error) {
	fl := flock.New(lockPath)
	locked, err := fl.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !locked {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", lockPath, ctx.Err())
		}
		return nil, fmt.Errorf("acquire lock %s: lock not acquired", lockPath)
	}
	return fl, nil
}

// releaseLock unlocks and closes fl. The lock file stays on disk: removing it
// could invalidate a lock another process has just taken on the same inode.
func releaseLock(logger *slog.Logger, fl *flock.Flock) {
	if fl == nil {
		return
	}
	if err := fl.Close(); err != nil {
		logger.Debug("failed to release mirror lock", "path", fl.Path(), "err", err)
	}
}
