package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrUnavailable wraps Redis failures while taking a lease.
var ErrUnavailable = errors.New("lock: lease backend unavailable")

// releaseScript deletes the key only if it still carries our token, so an
// expired lease that someone else re-took is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LeaseOptions configures Lease. Zero values take the defaults shown.
type LeaseOptions struct {
	Prefix string        // "lock:"
	TTL    time.Duration // 10s; upper bound on how long a crashed holder blocks the key
	Poll   time.Duration // 25ms between SET NX attempts
}

// Lease is a Redis-backed lock: SET key token NX PX ttl, released by a
// token-checked delete. It waits by polling until ctx is done.
type Lease struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	poll   time.Duration
}

func NewLease(rdb *redis.Client, opts LeaseOptions) *Lease {
	if opts.Prefix == "" {
		opts.Prefix = "lock:"
	}
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Second
	}
	if opts.Poll <= 0 {
		opts.Poll = 25 * time.Millisecond
	}
	return &Lease{rdb: rdb, prefix: opts.Prefix, ttl: opts.TTL, poll: opts.Poll}
}

func (l *Lease) Acquire(ctx context.Context, key string) (func(), error) {
	k := l.prefix + key
	token := uuid.NewString()

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, waitErr(ctx)
		case <-timer.C:
		}

		ok, err := l.rdb.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, waitErr(ctx)
			}
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if ok {
			return l.releaser(k, token), nil
		}
		timer.Reset(l.poll)
	}
}

func (l *Lease) releaser(k, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's ctx may already be cancelled; release regardless.
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = releaseScript.Run(ctx, l.rdb, []string{k}, token).Err()
		})
	}
}
