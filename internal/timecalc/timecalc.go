package timecalc

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// ErrBadClock marks a time-of-day string the strict 12-hour pattern rejects.
// Callers must propagate it instead of coercing the result to zero.
var ErrBadClock = errors.New("malformed clock string")

// ErrBadDayKey marks a date key that is not "M/D/YYYY".
var ErrBadDayKey = errors.New("malformed date key")

// clockPattern accepts "h:mm AM", "h:mm:ss PM" and case/period variants
// ("8:00:00 am", "1:07PM"). Hours 1-12, marker required.
var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AaPp])\.?[Mm]\.?$`)

var dayKeyPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// Clock is a time of day on the 24-hour scale.
type Clock struct {
	Hour   int // 0-23
	Minute int
	Second int
}

// ParseClock parses a 12-hour display string. PM adds 12 to hours 1-11,
// 12 AM maps to hour 0, 12 PM stays 12.
func ParseClock(s string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second := 0
	if m[3] != "" {
		second, _ = strconv.Atoi(m[3])
	}

	if hour < 1 || hour > 12 || minute > 59 || second > 59 {
		return Clock{}, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	pm := m[4] == "P" || m[4] == "p"
	switch {
	case pm && hour < 12:
		hour += 12
	case !pm && hour == 12:
		hour = 0
	}

	return Clock{Hour: hour, Minute: minute, Second: second}, nil
}

// SecondsOfDay returns the seconds elapsed since midnight.
func (c Clock) SecondsOfDay() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// String renders the clock back in 12-hour display form, "3:04:05 PM".
func (c Clock) String() string {
	marker := "AM"
	hour := c.Hour
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		marker = "PM"
	case hour > 12:
		hour -= 12
		marker = "PM"
	}
	return fmt.Sprintf("%d:%02d:%02d %s", hour, c.Minute, c.Second, marker)
}

// DurationHours computes elapsed hours between two display strings, rounded to
// two decimals. A checkout clock-time earlier than the check-in clock-time is
// taken as a midnight crossing and wrapped by 24h. Only time of day is known,
// so shifts over 24h and exact 0/24h shifts are indistinguishable.
func DurationHours(checkIn, checkOut string) (float64, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return 0, err
	}

	diff := out.SecondsOfDay() - in.SecondsOfDay()
	if diff < 0 {
		diff += 24 * 3600
	}

	return Round2(float64(diff) / 3600), nil
}

// Round2 rounds to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// DayKey is a normalized calendar date. Records are keyed by this triple, not
// by the locale-formatted string it was parsed from.
type DayKey struct {
	Year  int
	Month time.Month // 1-based, January = 1
	Day   int
}

// ParseDayKey parses the wire form "M/D/YYYY" and rejects impossible dates.
func ParseDayKey(s string) (DayKey, error) {
	m := dayKeyPattern.FindStringSubmatch(s)
	if m == nil {
		return DayKey{}, fmt.Errorf("%w: %q", ErrBadDayKey, s)
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return DayKey{}, fmt.Errorf("%w: %q", ErrBadDayKey, s)
	}
	// Reject e.g. 2/30 by round-tripping through time.Date.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) {
		return DayKey{}, fmt.Errorf("%w: %q", ErrBadDayKey, s)
	}

	return DayKey{Year: year, Month: time.Month(month), Day: day}, nil
}

// DayKeyOf returns the key for the calendar date of t.
func DayKeyOf(t time.Time) DayKey {
	return DayKey{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// String renders the wire form "M/D/YYYY".
func (k DayKey) String() string {
	return fmt.Sprintf("%d/%d/%d", int(k.Month), k.Day, k.Year)
}

// Time anchors the key at midnight in the given location.
func (k DayKey) Time(loc *time.Location) time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, loc)
}

// UntilMidnight returns the time remaining until the next local midnight,
// used as the TTL for day-scoped cache entries.
func UntilMidnight(now time.Time) time.Duration {
	next := now.AddDate(0, 0, 1)
	midnight := time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, now.Location())
	return midnight.Sub(now)
}
