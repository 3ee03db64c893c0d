package cache

import (
	"context"
	"time"

	"staffclock/config"
	pkgerrors "staffclock/pkg/errors"
	"staffclock/storage/redis"
)

// A SetNX key serializes check-in/check-out writes per date key, so two
// concurrent requests cannot both append a row for the same date.
const lockPrefix = "timeclock:lock"

const lockPollInterval = 100 * time.Millisecond

func TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	fullkey := redis.Key(lockPrefix, key)

	result, err := redis.Client().SetNX(ctx, fullkey, 1, ttl).Result()
	if err != nil {
		return false, err
	}

	return result, err
}

func Unlock(ctx context.Context, key string) error {
	fullkey := redis.Key(lockPrefix, key)

	return redis.Client().Del(ctx, fullkey).Err()
}

// DayLock acquires the per-date write lock with a bounded wait.
type DayLock struct {
	wait time.Duration
	ttl  time.Duration
}

func NewDayLock() *DayLock {
	return &DayLock{
		wait: time.Duration(config.Cfg.LockWaitSeconds) * time.Second,
		ttl:  time.Duration(config.Cfg.LockTTLSeconds) * time.Second,
	}
}

// AcquireDay polls SetNX until the lock is held or the wait budget runs out,
// returning LOCK_TIMEOUT in the latter case. The release function is safe to
// defer; the TTL reclaims the lock if the holder dies before releasing.
func (l *DayLock) AcquireDay(ctx context.Context, dayKey string) (func(), error) {
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := TryLock(ctx, dayKey, l.ttl)
		if err != nil {
			return nil, err
		}
		if ok {
			release := func() {
				_ = Unlock(context.WithoutCancel(ctx), dayKey)
			}
			return release, nil
		}

		if time.Now().After(deadline) {
			return nil, pkgerrors.LockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockPollInterval):
		}
	}
}
