// Package lock provides the per-key mutual exclusion used to serialize
// admission decisions for one item. KeyedMutex covers a single process;
// Lease extends the guarantee across processes through Redis.
package lock

import (
	"context"
	"errors"
)

// ErrTimeout is returned when the wait budget ran out before the key was free.
var ErrTimeout = errors.New("lock: timed out waiting for key")

// Locker grants exclusive use of a key until release is called. release is
// safe to call more than once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Layered acquires each locker in order and releases in reverse. A failure
// part-way releases what was already held.
func Layered(lockers ...Locker) Locker {
	return layered(lockers)
}

type layered []Locker

func (l layered) Acquire(ctx context.Context, key string) (func(), error) {
	held := make([]func(), 0, len(l))
	releaseAll := func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i]()
		}
	}
	for _, lk := range l {
		release, err := lk.Acquire(ctx, key)
		if err != nil {
			releaseAll()
			return nil, err
		}
		held = append(held, release)
	}
	return releaseAll, nil
}

// Nop never blocks. Tests use it to exercise the store-level backstop.
type Nop struct{}

func (Nop) Acquire(context.Context, string) (func(), error) { return func() {}, nil }

func waitErr(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return ctx.Err()
}
