package model

import "time"

// DayRecord is the one-row-per-date aggregate of a day's check-in, check-out
// and worked duration. A row is created on the first check-in of a date and
// completed in place on checkout; rows are never deleted.
//
// Invariants: at most one row per date; CheckOut is only set when CheckIn is
// set; Duration is only set when both are set. A row with CheckOut set and
// Duration empty can survive a partial write — Duration stays recomputable
// from the two time strings.
type DayRecord struct {
	BaseModel
	PublicID   int64     `gorm:"not null;uniqueIndex:idx_day_records_public_id" json:"public_id"`
	Day        time.Time `gorm:"type:date;not null;uniqueIndex:idx_day_records_day" json:"day"`
	CheckIn    *string   `gorm:"type:varchar(16)" json:"check_in,omitempty"`
	CheckOut   *string   `gorm:"type:varchar(16)" json:"check_out,omitempty"`
	Duration   *float64  `gorm:"type:numeric(6,2)" json:"duration,omitempty"`
	DeviceInfo string    `gorm:"type:text" json:"device_info,omitempty"` // write-once at row creation
}

// TableName sets the table name.
func (DayRecord) TableName() string {
	return "day_records"
}

// Completed reports whether the record reached the terminal state.
func (r *DayRecord) Completed() bool {
	return r.CheckOut != nil && *r.CheckOut != ""
}

// HasCheckIn reports whether a check-in time is present. Rows with an empty
// check-in can exist after manual edits of the table.
func (r *DayRecord) HasCheckIn() bool {
	return r.CheckIn != nil && *r.CheckIn != ""
}
