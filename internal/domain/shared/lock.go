package shared

import (
	"context"
	"errors"
)

// ErrLockTimeout is returned when a lock could not be acquired before the context expired
var ErrLockTimeout = errors.New("lock acquisition timed out")

// Locker serializes mutations of a single aggregate.
// Lock blocks until the key is held or ctx is done; the returned func releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
