package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"staffclock/internal/model/dto"
	"staffclock/internal/timecalc"
	"staffclock/storage/redis"
)

// Today's record is read on every status refresh; keep the rendered view in
// redis until local midnight so reads skip the table scan.
const todayStatusPrefix = "timeclock:today"

type TodayStatusCache struct{}

func NewTodayStatusCache() TodayStatusCache {
	return TodayStatusCache{}
}

// Get returns the cached view for the date key, or (nil, nil) on a miss.
func (TodayStatusCache) Get(ctx context.Context, dayKey string) (*dto.DayRecordView, error) {
	key := redis.Key(todayStatusPrefix, dayKey)

	raw, err := redis.Client().Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get today status: %w", err)
	}

	var view dto.DayRecordView
	if err := json.Unmarshal(raw, &view); err != nil {
		// Treat a corrupt entry as a miss; the next write replaces it.
		return nil, nil
	}
	return &view, nil
}

// Set caches the view with a TTL expiring at the next local midnight, so a
// stale "today" can never leak into the following day.
func (TodayStatusCache) Set(ctx context.Context, dayKey string, view *dto.DayRecordView, now time.Time) error {
	key := redis.Key(todayStatusPrefix, dayKey)

	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal today status: %w", err)
	}

	return redis.Client().Set(ctx, key, raw, timecalc.UntilMidnight(now)).Err()
}

// Invalidate drops the cached view after a mutating transition.
func (TodayStatusCache) Invalidate(ctx context.Context, dayKey string) error {
	key := redis.Key(todayStatusPrefix, dayKey)
	return redis.Client().Del(ctx, key).Err()
}
