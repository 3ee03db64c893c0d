package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"staffclock/config"
	"staffclock/internal/cache"
	"staffclock/internal/model"
	"staffclock/internal/model/dto"
	"staffclock/internal/repository"
	"staffclock/internal/timecalc"
	pkgerrors "staffclock/pkg/errors"
	"staffclock/pkg/logger"
	"staffclock/pkg/snowflake"
)

// Locker serializes mutating writes per date key with a bounded wait.
type Locker interface {
	AcquireDay(ctx context.Context, dayKey string) (func(), error)
}

// StatusCache holds the rendered view of today's record.
type StatusCache interface {
	Get(ctx context.Context, dayKey string) (*dto.DayRecordView, error)
	Set(ctx context.Context, dayKey string, view *dto.DayRecordView, now time.Time) error
	Invalidate(ctx context.Context, dayKey string) error
}

// TimeClockService owns the per-day state machine:
// Empty -> CheckedIn -> Complete. Check-in is idempotent; checkout only moves
// CheckedIn to Complete and nothing reopens a Complete record.
type TimeClockService struct {
	store        repository.DayStore
	locks        Locker
	status       StatusCache
	historyLimit int
	newID        func() (int64, error)
}

var (
	timeClockService *TimeClockService
	timeClockOnce    sync.Once
)

func TimeClock() *TimeClockService {
	timeClockOnce.Do(func() {
		timeClockService = NewTimeClockService(
			repository.NewDayStore(),
			cache.NewDayLock(),
			cache.NewTodayStatusCache(),
			config.Cfg.HistoryDefaultLimit,
		)
	})

	return timeClockService
}

// NewTimeClockService wires an instance with explicit collaborators.
func NewTimeClockService(store repository.DayStore, locks Locker, status StatusCache, historyLimit int) *TimeClockService {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &TimeClockService{
		store:        store,
		locks:        locks,
		status:       status,
		historyLimit: historyLimit,
		newID:        snowflake.NextID,
	}
}

// CheckIn creates the day's record on first check-in. A repeated check-in is a
// no-op reported as a soft success and never overwrites the stored time; a row
// whose check-in was blanked by a manual edit gets the supplied time instead.
func (s *TimeClockService) CheckIn(ctx context.Context, req dto.TimeClockRequest) (*dto.CheckInResult, error) {
	key, err := timecalc.ParseDayKey(req.DateStr)
	if err != nil {
		return nil, pkgerrors.ParseError.WithMessage(err.Error())
	}
	clock, err := timecalc.ParseClock(req.TimeStr)
	if err != nil {
		return nil, pkgerrors.ParseError.WithMessage(err.Error())
	}
	checkIn := clock.String()

	release, err := s.locks.AcquireDay(ctx, key.String())
	if err != nil {
		return nil, err
	}
	defer release()

	rec, err := s.store.FindDay(ctx, key)
	if err != nil {
		return nil, err
	}

	switch {
	case rec == nil:
		publicID, err := s.newID()
		if err != nil {
			return nil, err
		}
		rec = &model.DayRecord{
			PublicID:   publicID,
			Day:        key.Time(time.UTC),
			CheckIn:    &checkIn,
			DeviceInfo: req.DeviceInfo,
		}
		if err := s.store.Create(ctx, rec); err != nil {
			return nil, err
		}

	case rec.HasCheckIn():
		logger.Logger.Info("Check-in ignored, already checked in",
			zap.String("day", key.String()),
			zap.String("check_in", *rec.CheckIn),
		)
		return &dto.CheckInResult{
			DateStr:          key.String(),
			CheckIn:          *rec.CheckIn,
			AlreadyCheckedIn: true,
		}, nil

	default:
		// Row exists with a blank check-in (manually edited table).
		if err := s.store.SetCheckIn(ctx, key, checkIn); err != nil {
			return nil, err
		}
	}

	s.invalidateStatus(ctx, key)
	logger.Logger.Info("Checked in",
		zap.String("day", key.String()),
		zap.String("check_in", checkIn),
	)

	return &dto.CheckInResult{DateStr: key.String(), CheckIn: checkIn}, nil
}

// CheckOut completes the day's record and computes the worked duration. It
// fails without mutation when no check-in exists or the record is already
// complete.
func (s *TimeClockService) CheckOut(ctx context.Context, req dto.TimeClockRequest) (*dto.CheckOutResult, error) {
	key, err := timecalc.ParseDayKey(req.DateStr)
	if err != nil {
		return nil, pkgerrors.ParseError.WithMessage(err.Error())
	}
	clock, err := timecalc.ParseClock(req.TimeStr)
	if err != nil {
		return nil, pkgerrors.ParseError.WithMessage(err.Error())
	}
	checkOut := clock.String()

	release, err := s.locks.AcquireDay(ctx, key.String())
	if err != nil {
		return nil, err
	}
	defer release()

	rec, err := s.store.FindDay(ctx, key)
	if err != nil {
		return nil, err
	}
	if rec == nil || !rec.HasCheckIn() {
		return nil, pkgerrors.NotCheckedIn
	}
	if rec.Completed() {
		return nil, pkgerrors.AlreadyCheckedOut
	}

	var duration *float64
	hours, err := timecalc.DurationHours(*rec.CheckIn, checkOut)
	if err != nil {
		// Stored check-in is unparseable; persist the checkout anyway and
		// leave duration empty. It stays recomputable from the two fields.
		logger.Logger.Warn("Stored check-in unparseable, persisting checkout without duration",
			zap.String("day", key.String()),
			zap.String("check_in", *rec.CheckIn),
			zap.Error(err),
		)
	} else {
		duration = &hours
	}

	if err := s.store.Complete(ctx, key, checkOut, duration); err != nil {
		return nil, err
	}

	s.invalidateStatus(ctx, key)
	logger.Logger.Info("Checked out",
		zap.String("day", key.String()),
		zap.String("check_out", checkOut),
		zap.Float64p("duration", duration),
	)

	return &dto.CheckOutResult{DateStr: key.String(), CheckOut: checkOut, Duration: duration}, nil
}

// History returns rows for an explicit (month, year) pair in ascending day
// order, or, without a filter, the most recent rows newest-first. Month is
// 1-based.
func (s *TimeClockService) History(ctx context.Context, q dto.HistoryQuery) ([]dto.DayRecordView, error) {
	if q.Month != 0 || q.Year != 0 {
		if q.Month < 1 || q.Month > 12 || q.Year == 0 {
			return nil, pkgerrors.InvalidRequest.WithMessage("history filter needs month (1-12) and year")
		}
		recs, err := s.store.QueryMonth(ctx, q.Year, time.Month(q.Month))
		if err != nil {
			return nil, err
		}
		return renderViews(recs), nil
	}

	limit := q.Limit
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	recs, err := s.store.QueryRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return renderViews(recs), nil
}

// Today returns the rendered record for the current date, serving from the
// status cache when warm. History and today reads do not take the day lock; a
// mid-update row is acceptable.
func (s *TimeClockService) Today(ctx context.Context, now time.Time) (*dto.DayRecordView, error) {
	key := timecalc.DayKeyOf(now)

	if view, err := s.status.Get(ctx, key.String()); err == nil && view != nil {
		return view, nil
	} else if err != nil {
		logger.Logger.Warn("Today-status cache read failed", zap.Error(err))
	}

	rec, err := s.store.FindDay(ctx, key)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, pkgerrors.RecordNotFound
	}

	view := renderView(rec)
	if err := s.status.Set(ctx, key.String(), &view, now); err != nil {
		logger.Logger.Warn("Today-status cache write failed", zap.Error(err))
	}

	return &view, nil
}

func (s *TimeClockService) invalidateStatus(ctx context.Context, key timecalc.DayKey) {
	if err := s.status.Invalidate(ctx, key.String()); err != nil {
		logger.Logger.Warn("Today-status cache invalidation failed",
			zap.String("day", key.String()),
			zap.Error(err),
		)
	}
}

func renderView(rec *model.DayRecord) dto.DayRecordView {
	view := dto.DayRecordView{
		DateStr: timecalc.DayKeyOf(rec.Day).String(),
	}
	if rec.CheckIn != nil {
		view.CheckIn = *rec.CheckIn
	}
	if rec.CheckOut != nil {
		view.CheckOut = *rec.CheckOut
	}
	if rec.Duration != nil {
		view.Duration = strconv.FormatFloat(*rec.Duration, 'f', 2, 64)
	}
	return view
}

func renderViews(recs []model.DayRecord) []dto.DayRecordView {
	views := make([]dto.DayRecordView, 0, len(recs))
	for i := range recs {
		views = append(views, renderView(&recs[i]))
	}
	return views
}
