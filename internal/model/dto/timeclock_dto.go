package dto

// TimeClockRequest is the single action envelope accepted by POST /v1/timeclock.
type TimeClockRequest struct {
	Action     string `json:"action"` // checkin, checkout, getHistory
	DateStr    string `json:"dateStr"`
	TimeStr    string `json:"timeStr"`
	DeviceInfo string `json:"deviceInfo,omitempty"`
	Month      int    `json:"month,omitempty"` // 1-based, January = 1
	Year       int    `json:"year,omitempty"`
}

// HistoryQuery filters the history listing. Month is 1-based; when Month or
// Year is zero the most recent Limit rows are returned newest-first instead.
type HistoryQuery struct {
	Month int `json:"month,omitempty" query:"month"`
	Year  int `json:"year,omitempty" query:"year"`
	Limit int `json:"limit,omitempty" query:"limit"`
}

// DayRecordView is one history row as rendered on the wire. Duration is a
// numeric-looking string ("8.50"); callers parse it with standard
// floating-point parsing and tolerate the empty fallback.
type DayRecordView struct {
	DateStr  string `json:"dateStr"`
	CheckIn  string `json:"checkIn,omitempty"`
	CheckOut string `json:"checkOut,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// CheckInResult reports a check-in transition. AlreadyCheckedIn marks the
// soft-success no-op when the date already holds a check-in time.
type CheckInResult struct {
	DateStr          string `json:"dateStr"`
	CheckIn          string `json:"checkIn"`
	AlreadyCheckedIn bool   `json:"alreadyCheckedIn,omitempty"`
}

// CheckOutResult reports a completed checkout. Duration is nil when the stored
// check-in string could not be parsed and only the checkout time was persisted.
type CheckOutResult struct {
	DateStr  string   `json:"dateStr"`
	CheckOut string   `json:"checkOut"`
	Duration *float64 `json:"duration,omitempty"`
}
