package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"staffclock/internal/model"
	"staffclock/internal/timecalc"
	"staffclock/storage/database"
)

// DayStore is the record store contract: upsert-shaped mutators keyed by a
// normalized date plus two range queries. The GORM/Postgres implementation
// below is one backend; anything tabular can sit behind this.
type DayStore interface {
	// FindDay returns the row for the date key, or (nil, nil) when absent.
	FindDay(ctx context.Context, key timecalc.DayKey) (*model.DayRecord, error)
	Create(ctx context.Context, rec *model.DayRecord) error
	// SetCheckIn fills the check-in time on an existing row.
	SetCheckIn(ctx context.Context, key timecalc.DayKey, checkIn string) error
	// Complete sets the checkout time and (when computable) the duration.
	Complete(ctx context.Context, key timecalc.DayKey, checkOut string, duration *float64) error
	// QueryMonth returns the rows for a (year, month) pair in ascending day
	// order. Month is 1-based.
	QueryMonth(ctx context.Context, year int, month time.Month) ([]model.DayRecord, error)
	// QueryRecent returns the most recent limit rows, newest first.
	QueryRecent(ctx context.Context, limit int) ([]model.DayRecord, error)
}

type gormDayStore struct{}

// NewDayStore returns the GORM-backed store over the shared connection.
func NewDayStore() DayStore {
	return gormDayStore{}
}

func (gormDayStore) FindDay(ctx context.Context, key timecalc.DayKey) (*model.DayRecord, error) {
	db := database.DB().WithContext(ctx)

	var rec model.DayRecord
	err := db.Where("day = ?", key.Time(time.UTC)).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query day record: %w", err)
	}
	return &rec, nil
}

func (gormDayStore) Create(ctx context.Context, rec *model.DayRecord) error {
	db := database.DB().WithContext(ctx)

	if err := db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create day record: %w", err)
	}
	return nil
}

func (gormDayStore) SetCheckIn(ctx context.Context, key timecalc.DayKey, checkIn string) error {
	db := database.DB().WithContext(ctx)

	err := db.Model(&model.DayRecord{}).
		Where("day = ?", key.Time(time.UTC)).
		Update("check_in", checkIn).Error
	if err != nil {
		return fmt.Errorf("failed to set check-in: %w", err)
	}
	return nil
}

func (gormDayStore) Complete(ctx context.Context, key timecalc.DayKey, checkOut string, duration *float64) error {
	db := database.DB().WithContext(ctx)

	updates := map[string]interface{}{
		"check_out": checkOut,
		"duration":  duration,
	}
	err := db.Model(&model.DayRecord{}).
		Where("day = ?", key.Time(time.UTC)).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to complete day record: %w", err)
	}
	return nil
}

func (gormDayStore) QueryMonth(ctx context.Context, year int, month time.Month) ([]model.DayRecord, error) {
	db := database.DB().WithContext(ctx)

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var recs []model.DayRecord
	err := db.Where("day >= ? AND day < ?", from, to).
		Order("day ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query month: %w", err)
	}
	return recs, nil
}

func (gormDayStore) QueryRecent(ctx context.Context, limit int) ([]model.DayRecord, error) {
	db := database.DB().WithContext(ctx)

	var recs []model.DayRecord
	err := db.Order("day DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query recent days: %w", err)
	}
	return recs, nil
}
