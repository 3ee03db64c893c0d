package service

import (
	"context"
	"os"
	"sort"
	"testing"
	"time"

	"staffclock/internal/model"
	"staffclock/internal/model/dto"
	"staffclock/internal/timecalc"
	pkgerrors "staffclock/pkg/errors"
	"staffclock/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// fakeDayStore is an in-memory DayStore keyed by the normalized date.
type fakeDayStore struct {
	rows map[timecalc.DayKey]*model.DayRecord
}

func newFakeDayStore() *fakeDayStore {
	return &fakeDayStore{rows: make(map[timecalc.DayKey]*model.DayRecord)}
}

func (f *fakeDayStore) FindDay(_ context.Context, key timecalc.DayKey) (*model.DayRecord, error) {
	rec, ok := f.rows[key]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeDayStore) Create(_ context.Context, rec *model.DayRecord) error {
	cp := *rec
	f.rows[timecalc.DayKeyOf(rec.Day)] = &cp
	return nil
}

func (f *fakeDayStore) SetCheckIn(_ context.Context, key timecalc.DayKey, checkIn string) error {
	f.rows[key].CheckIn = &checkIn
	return nil
}

func (f *fakeDayStore) Complete(_ context.Context, key timecalc.DayKey, checkOut string, duration *float64) error {
	f.rows[key].CheckOut = &checkOut
	f.rows[key].Duration = duration
	return nil
}

func (f *fakeDayStore) QueryMonth(_ context.Context, year int, month time.Month) ([]model.DayRecord, error) {
	var recs []model.DayRecord
	for key, rec := range f.rows {
		if key.Year == year && key.Month == month {
			recs = append(recs, *rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Day.Before(recs[j].Day) })
	return recs, nil
}

func (f *fakeDayStore) QueryRecent(_ context.Context, limit int) ([]model.DayRecord, error) {
	var recs []model.DayRecord
	for _, rec := range f.rows {
		recs = append(recs, *rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Day.After(recs[j].Day) })
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// fakeLocker hands out the lock immediately and counts acquisitions.
type fakeLocker struct {
	acquired int
	fail     error
}

func (l *fakeLocker) AcquireDay(context.Context, string) (func(), error) {
	if l.fail != nil {
		return nil, l.fail
	}
	l.acquired++
	return func() {}, nil
}

// fakeStatusCache records invalidations and always misses.
type fakeStatusCache struct {
	invalidated []string
	stored      map[string]dto.DayRecordView
}

func newFakeStatusCache() *fakeStatusCache {
	return &fakeStatusCache{stored: make(map[string]dto.DayRecordView)}
}

func (c *fakeStatusCache) Get(_ context.Context, dayKey string) (*dto.DayRecordView, error) {
	if view, ok := c.stored[dayKey]; ok {
		return &view, nil
	}
	return nil, nil
}

func (c *fakeStatusCache) Set(_ context.Context, dayKey string, view *dto.DayRecordView, _ time.Time) error {
	c.stored[dayKey] = *view
	return nil
}

func (c *fakeStatusCache) Invalidate(_ context.Context, dayKey string) error {
	c.invalidated = append(c.invalidated, dayKey)
	return nil
}

func newTestService(store *fakeDayStore, locks *fakeLocker) *TimeClockService {
	s := NewTimeClockService(store, locks, newFakeStatusCache(), 50)
	var next int64
	s.newID = func() (int64, error) {
		next++
		return next, nil
	}
	return s
}

func dayKey(t *testing.T, s string) timecalc.DayKey {
	t.Helper()
	key, err := timecalc.ParseDayKey(s)
	if err != nil {
		t.Fatalf("ParseDayKey(%q): %v", s, err)
	}
	return key
}

func TestCheckInCreatesRecord(t *testing.T) {
	store := newFakeDayStore()
	svc := newTestService(store, &fakeLocker{})

	res, err := svc.CheckIn(context.Background(), dto.TimeClockRequest{
		DateStr: "1/16/2026", TimeStr: "8:00:00 AM", DeviceInfo: "test-device",
	})
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if res.AlreadyCheckedIn {
		t.Error("first check-in reported as already checked in")
	}
	if res.CheckIn != "8:00:00 AM" {
		t.Errorf("CheckIn time = %q, want %q", res.CheckIn, "8:00:00 AM")
	}

	rec := store.rows[dayKey(t, "1/16/2026")]
	if rec == nil {
		t.Fatal("no record created")
	}
	if rec.DeviceInfo != "test-device" {
		t.Errorf("DeviceInfo = %q, want %q", rec.DeviceInfo, "test-device")
	}
	if rec.PublicID == 0 {
		t.Error("PublicID not assigned")
	}
	if rec.CheckOut != nil || rec.Duration != nil {
		t.Error("new record must not carry checkout fields")
	}
}

func TestCheckInIdempotent(t *testing.T) {
	store := newFakeDayStore()
	svc := newTestService(store, &fakeLocker{})
	ctx := context.Background()

	req := dto.TimeClockRequest{DateStr: "1/16/2026", TimeStr: "8:00:00 AM"}
	if _, err := svc.CheckIn(ctx, req); err != nil {
		t.Fatalf("first CheckIn: %v", err)
	}

	req.TimeStr = "9:30:00 AM"
	res, err := svc.CheckIn(ctx, req)
	if err != nil {
		t.Fatalf("second CheckIn: %v", err)
	}
	if !res.AlreadyCheckedIn {
		t.Error("second check-in not reported as soft success")
	}
	if res.CheckIn != "8:00:00 AM" {
		t.Errorf("second check-in returned %q, want original %q", res.CheckIn, "8:00:00 AM")
	}

	if len(store.rows) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(store.rows))
	}
	if got := *store.rows[dayKey(t, "1/16/2026")].CheckIn; got != "8:00:00 AM" {
		t.Errorf("stored check-in overwritten to %q", got)
	}
}

func TestCheckInFillsBlankRow(t *testing.T) {
	store := newFakeDayStore()
	key := dayKey(t, "1/16/2026")
	store.rows[key] = &model.DayRecord{Day: key.Time(time.UTC)} // manually edited row

	svc := newTestService(store, &fakeLocker{})
	res, err := svc.CheckIn(context.Background(), dto.TimeClockRequest{
		DateStr: "1/16/2026", TimeStr: "8:15:00 AM",
	})
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if res.AlreadyCheckedIn {
		t.Error("blank-row check-in reported as already checked in")
	}
	if got := *store.rows[key].CheckIn; got != "8:15:00 AM" {
		t.Errorf("stored check-in = %q, want %q", got, "8:15:00 AM")
	}
}

func TestCheckOutWithoutCheckInFails(t *testing.T) {
	store := newFakeDayStore()
	svc := newTestService(store, &fakeLocker{})

	_, err := svc.CheckOut(context.Background(), dto.TimeClockRequest{
		DateStr: "1/16/2026", TimeStr: "4:30:00 PM",
	})
	if err != pkgerrors.NotCheckedIn {
		t.Fatalf("err = %v, want NotCheckedIn", err)
	}
	if len(store.rows) != 0 {
		t.Error("failed checkout must not mutate the store")
	}
}

func TestCheckInThenCheckOutScenario(t *testing.T) {
	store := newFakeDayStore()
	svc := newTestService(store, &fakeLocker{})
	ctx := context.Background()

	if _, err := svc.CheckIn(ctx, dto.TimeClockRequest{DateStr: "1/16/2026", TimeStr: "8:00:00 AM"}); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	res, err := svc.CheckOut(ctx, dto.TimeClockRequest{DateStr: "1/16/2026", TimeStr: "4:30:00 PM"})
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if res.Duration == nil || *res.Duration != 8.5 {
		t.Fatalf("Duration = %v, want 8.50", res.Duration)
	}

	rec := store.rows[dayKey(t, "1/16/2026")]
	if rec.Duration == nil || *rec.Duration != 8.5 {
		t.Errorf("stored duration = %v, want 8.50", rec.Duration)
	}
	if *rec.CheckOut != "4:30:00 PM" {
		t.Errorf("stored checkout = %q", *rec.CheckOut)
	}
}

func TestDoubleCheckOutFails(t *testing.T) {
	store := newFakeDayStore()
	svc := newTestService(store, &fakeLocker{})
	ctx := context.Background()

	svcReq := dto.TimeClockRequest{DateStr: "1/16/2026", TimeStr: "8:00:00 AM"}
	if _, err := svc.CheckIn(ctx, svcReq); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if _, err := svc.CheckOut(ctx, dto.TimeClockRequest{DateStr: "1/16/2026", TimeStr: "4:30:00 PM"}); err != nil {
		t.Fatalf("first CheckOut: %v", err)
	}

	_, err := svc.CheckOut(ctx, dto.TimeClockRequest{DateStr: "1/16/2026", TimeStr: "6:00:00 PM"})
	if err != pkgerrors.AlreadyCheckedOut {
		t.Fatalf("err = %v, want AlreadyCheckedOut", err)
	}

	rec := store.rows[dayKey(t, "1/16/2026")]
	if *rec.CheckOut != "4:30:00 PM" || *rec.Duration != 8.5 {
		t.Error("second checkout altered the stored record")
	}
}

func TestCheckOutAcrossMidnight(t *testing.T) {
	store := newFakeDayStore()
	svc := newTestService(store, &fakeLocker{})
	ctx := context.Background()

	if _, err := svc.CheckIn(ctx, dto.TimeClockRequest{DateStr: "1/16/2026", TimeStr: "11:00:00 PM"}); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	res, err := svc.CheckOut(ctx, dto.TimeClockRequest{DateStr: "1/16/2026", TimeStr: "1:00:00 AM"})
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if res.Duration == nil || *res.Duration != 2 {
		t.Fatalf("Duration = %v, want 2.00", res.Duration)
	}
}

func TestCheckOutWithUnparseableStoredCheckIn(t *testing.T) {
	store := newFakeDayStore()
	key := dayKey(t, "1/16/2026")
	bad := "garbage"
	store.rows[key] = &model.DayRecord{Day: key.Time(time.UTC), CheckIn: &bad}

	svc := newTestService(store, &fakeLocker{})
	res, err := svc.CheckOut(context.Background(), dto.TimeClockRequest{
		DateStr: "1/16/2026", TimeStr: "4:30:00 PM",
	})
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if res.Duration != nil {
		t.Errorf("Duration = %v, want nil for unparseable check-in", *res.Duration)
	}
	rec := store.rows[key]
	if rec.CheckOut == nil || *rec.CheckOut != "4:30:00 PM" {
		t.Error("checkout time not persisted")
	}
	if rec.Duration != nil {
		t.Error("duration must stay empty when not computable")
	}
}

func TestCheckInRejectsMalformedInput(t *testing.T) {
	store := newFakeDayStore()
	locks := &fakeLocker{}
	svc := newTestService(store, locks)
	ctx := context.Background()

	cases := []dto.TimeClockRequest{
		{DateStr: "garbage", TimeStr: "8:00:00 AM"},
		{DateStr: "1/16/2026", TimeStr: "garbage"},
		{DateStr: "1/16/2026", TimeStr: "25:00:00 PM"},
	}
	for _, req := range cases {
		_, err := svc.CheckIn(ctx, req)
		def, ok := err.(pkgerrors.Definition)
		if !ok || def.Code != pkgerrors.ParseError.Code {
			t.Errorf("CheckIn(%+v): err = %v, want PARSE_ERROR", req, err)
		}
	}
	if len(store.rows) != 0 {
		t.Error("malformed input mutated the store")
	}
	if locks.acquired != 0 {
		t.Error("lock taken before input validation")
	}
}

func TestLockTimeoutSurfaces(t *testing.T) {
	store := newFakeDayStore()
	svc := newTestService(store, &fakeLocker{fail: pkgerrors.LockTimeout})

	_, err := svc.CheckIn(context.Background(), dto.TimeClockRequest{
		DateStr: "1/16/2026", TimeStr: "8:00:00 AM",
	})
	if err != pkgerrors.LockTimeout {
		t.Fatalf("err = %v, want LockTimeout", err)
	}
	if len(store.rows) != 0 {
		t.Error("lock timeout mutated the store")
	}
}

func TestHistoryMonthFilterAscending(t *testing.T) {
	store := newFakeDayStore()
	svc := newTestService(store, &fakeLocker{})
	ctx := context.Background()

	for _, d := range []string{"1/20/2026", "1/5/2026", "2/1/2026", "12/31/2025", "1/16/2026"} {
		if _, err := svc.CheckIn(ctx, dto.TimeClockRequest{DateStr: d, TimeStr: "8:00:00 AM"}); err != nil {
			t.Fatalf("CheckIn(%s): %v", d, err)
		}
	}

	views, err := svc.History(ctx, dto.HistoryQuery{Month: 1, Year: 2026})
	if err != nil {
		t.Fatalf("History: %v", err)
	}

	want := []string{"1/5/2026", "1/16/2026", "1/20/2026"}
	if len(views) != len(want) {
		t.Fatalf("got %d rows, want %d", len(views), len(want))
	}
	for i, v := range views {
		if v.DateStr != want[i] {
			t.Errorf("row %d = %q, want %q", i, v.DateStr, want[i])
		}
	}
}

func TestHistoryRecentNewestFirst(t *testing.T) {
	store := newFakeDayStore()
	svc := newTestService(store, &fakeLocker{})
	ctx := context.Background()

	for _, d := range []string{"1/5/2026", "1/20/2026", "1/16/2026"} {
		if _, err := svc.CheckIn(ctx, dto.TimeClockRequest{DateStr: d, TimeStr: "8:00:00 AM"}); err != nil {
			t.Fatalf("CheckIn(%s): %v", d, err)
		}
	}

	views, err := svc.History(ctx, dto.HistoryQuery{Limit: 2})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	want := []string{"1/20/2026", "1/16/2026"}
	if len(views) != len(want) {
		t.Fatalf("got %d rows, want %d", len(views), len(want))
	}
	for i, v := range views {
		if v.DateStr != want[i] {
			t.Errorf("row %d = %q, want %q", i, v.DateStr, want[i])
		}
	}
}

func TestHistoryRejectsBadMonth(t *testing.T) {
	svc := newTestService(newFakeDayStore(), &fakeLocker{})

	for _, q := range []dto.HistoryQuery{{Month: 0, Year: 2026}, {Month: 13, Year: 2026}, {Month: 1}} {
		_, err := svc.History(context.Background(), q)
		def, ok := err.(pkgerrors.Definition)
		if !ok || def.Code != pkgerrors.InvalidRequest.Code {
			t.Errorf("History(%+v): err = %v, want INVALID_REQUEST", q, err)
		}
	}
}

func TestHistoryRendersDurationString(t *testing.T) {
	store := newFakeDayStore()
	svc := newTestService(store, &fakeLocker{})
	ctx := context.Background()

	if _, err := svc.CheckIn(ctx, dto.TimeClockRequest{DateStr: "1/16/2026", TimeStr: "8:00:00 AM"}); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if _, err := svc.CheckOut(ctx, dto.TimeClockRequest{DateStr: "1/16/2026", TimeStr: "4:30:00 PM"}); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}

	views, err := svc.History(ctx, dto.HistoryQuery{Month: 1, Year: 2026})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d rows, want 1", len(views))
	}
	if views[0].Duration != "8.50" {
		t.Errorf("Duration string = %q, want %q", views[0].Duration, "8.50")
	}
}

func TestTodayMissAndHit(t *testing.T) {
	store := newFakeDayStore()
	svc := newTestService(store, &fakeLocker{})
	ctx := context.Background()
	now := time.Date(2026, 1, 16, 9, 0, 0, 0, time.UTC)

	if _, err := svc.Today(ctx, now); err != pkgerrors.RecordNotFound {
		t.Fatalf("err = %v, want RecordNotFound", err)
	}

	if _, err := svc.CheckIn(ctx, dto.TimeClockRequest{DateStr: "1/16/2026", TimeStr: "8:00:00 AM"}); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	view, err := svc.Today(ctx, now)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if view.DateStr != "1/16/2026" || view.CheckIn != "8:00:00 AM" {
		t.Errorf("Today view = %+v", view)
	}
}
