package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockTimeout is returned when a lock could not be acquired before the
// wait budget or the context ran out.
var ErrLockTimeout = errors.New("redis lock: timed out waiting for lock")

// releaseScript deletes the key only if it still holds our token, so a holder
// whose lease expired never frees a lock someone else now owns.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out short-lived mutual-exclusion leases keyed by string,
// shared across every instance pointed at the same Redis.
type Locker struct {
	client  redis.UniversalClient
	prefix  string
	lease   time.Duration
	wait    time.Duration
	backoff time.Duration
}

type LockerOption func(*Locker)

// WithLease sets how long a lock survives if the holder never releases it.
func WithLease(d time.Duration) LockerOption {
	return func(l *Locker) { l.lease = d }
}

// WithWait bounds how long Lock polls before giving up.
func WithWait(d time.Duration) LockerOption {
	return func(l *Locker) { l.wait = d }
}

func NewLocker(client redis.UniversalClient, prefix string, opts ...LockerOption) *Locker {
	l := &Locker{
		client:  client,
		prefix:  prefix,
		lease:   45 * time.Second,
		wait:    30 * time.Second,
		backoff: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lock blocks until the lease for key is acquired. The returned func releases
// it and is safe to call once.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.lease).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", fullKey, err)
		}
		if ok {
			return func() {
				// Release with a fresh context so a cancelled request still frees the lease.
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.client, []string{fullKey}, token).Err()
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrLockTimeout, ctx.Err())
		case <-time.After(l.backoff):
		}
	}
}
