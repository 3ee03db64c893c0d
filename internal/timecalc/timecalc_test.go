package timecalc_test

import (
	"errors"
	"testing"
	"time"

	"staffclock/internal/timecalc"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    timecalc.Clock
		wantErr bool
	}{
		{"8:00:00 AM", timecalc.Clock{8, 0, 0}, false},
		{"1:07 PM", timecalc.Clock{13, 7, 0}, false},
		{"12:00:00 AM", timecalc.Clock{0, 0, 0}, false},
		{"12:00:00 PM", timecalc.Clock{12, 0, 0}, false},
		{"11:59:59 pm", timecalc.Clock{23, 59, 59}, false},
		{"4:30:00PM", timecalc.Clock{16, 30, 0}, false},
		{"9:15 a.m.", timecalc.Clock{9, 15, 0}, false},
		{"garbage", timecalc.Clock{}, true},
		{"13:00:00 PM", timecalc.Clock{}, true},
		{"0:30:00 AM", timecalc.Clock{}, true},
		{"8:61:00 AM", timecalc.Clock{}, true},
		{"8:00:00", timecalc.Clock{}, true},
		{"", timecalc.Clock{}, true},
	}
	for _, tt := range tests {
		got, err := timecalc.ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %+v", tt.in, got)
			} else if !errors.Is(err, timecalc.ErrBadClock) {
				t.Errorf("ParseClock(%q): error %v does not wrap ErrBadClock", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestClockString(t *testing.T) {
	tests := []struct {
		in   timecalc.Clock
		want string
	}{
		{timecalc.Clock{0, 5, 0}, "12:05:00 AM"},
		{timecalc.Clock{8, 0, 0}, "8:00:00 AM"},
		{timecalc.Clock{12, 0, 0}, "12:00:00 PM"},
		{timecalc.Clock{16, 30, 0}, "4:30:00 PM"},
		{timecalc.Clock{23, 59, 59}, "11:59:59 PM"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Clock%+v.String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDurationHours(t *testing.T) {
	tests := []struct {
		checkIn  string
		checkOut string
		want     float64
	}{
		{"8:00:00 AM", "4:30:00 PM", 8.5},
		{"9:00:00 AM", "9:00:00 AM", 0},
		{"8:00:00 AM", "8:00:01 AM", 0},    // sub-minute rounds to 0.00
		{"11:00:00 PM", "1:00:00 AM", 2},   // midnight crossing
		{"11:30 PM", "12:15 AM", 0.75},     // crossing without seconds
		{"1:07 PM", "1:27 PM", 0.33},       // 20 min
		{"12:00:00 AM", "12:00:00 PM", 12}, // noon edge
	}
	for _, tt := range tests {
		got, err := timecalc.DurationHours(tt.checkIn, tt.checkOut)
		if err != nil {
			t.Errorf("DurationHours(%q, %q): unexpected error %v", tt.checkIn, tt.checkOut, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DurationHours(%q, %q) = %v, want %v", tt.checkIn, tt.checkOut, got, tt.want)
		}
	}
}

func TestDurationHoursRejectsGarbage(t *testing.T) {
	if _, err := timecalc.DurationHours("garbage", "4:30:00 PM"); !errors.Is(err, timecalc.ErrBadClock) {
		t.Errorf("expected ErrBadClock for garbage check-in, got %v", err)
	}
	if _, err := timecalc.DurationHours("8:00:00 AM", "garbage"); !errors.Is(err, timecalc.ErrBadClock) {
		t.Errorf("expected ErrBadClock for garbage check-out, got %v", err)
	}
}

func TestParseDayKey(t *testing.T) {
	tests := []struct {
		in      string
		want    timecalc.DayKey
		wantErr bool
	}{
		{"1/16/2026", timecalc.DayKey{2026, time.January, 16}, false},
		{"12/31/2025", timecalc.DayKey{2025, time.December, 31}, false},
		{"02/05/2026", timecalc.DayKey{2026, time.February, 5}, false},
		{"2/30/2026", timecalc.DayKey{}, true},
		{"13/1/2026", timecalc.DayKey{}, true},
		{"2026-01-16", timecalc.DayKey{}, true},
		{"", timecalc.DayKey{}, true},
	}
	for _, tt := range tests {
		got, err := timecalc.ParseDayKey(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDayKey(%q): expected error, got %+v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDayKey(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDayKey(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	key := timecalc.DayKey{Year: 2026, Month: time.January, Day: 16}
	if got := key.String(); got != "1/16/2026" {
		t.Errorf("DayKey.String() = %q, want %q", got, "1/16/2026")
	}
	parsed, err := timecalc.ParseDayKey(key.String())
	if err != nil {
		t.Fatalf("round trip parse failed: %v", err)
	}
	if parsed != key {
		t.Errorf("round trip = %+v, want %+v", parsed, key)
	}
}

func TestDayKeyOf(t *testing.T) {
	ts := time.Date(2026, 1, 16, 23, 59, 0, 0, time.UTC)
	want := timecalc.DayKey{Year: 2026, Month: time.January, Day: 16}
	if got := timecalc.DayKeyOf(ts); got != want {
		t.Errorf("DayKeyOf = %+v, want %+v", got, want)
	}
}

func TestUntilMidnight(t *testing.T) {
	now := time.Date(2026, 1, 16, 23, 0, 0, 0, time.UTC)
	if got := timecalc.UntilMidnight(now); got != time.Hour {
		t.Errorf("UntilMidnight = %v, want %v", got, time.Hour)
	}
}
