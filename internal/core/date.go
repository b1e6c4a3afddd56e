package core

import (
	"errors"
	"time"
)

// Date is a calendar day without a time component.
type Date struct {
	time.Time
}

// Accepted input layouts. Clients submit ISO dates; the display layout is
// accepted too so a record fetched from the API can be resubmitted as-is.
var dateLayouts = []string{"2006-01-02", "02/01/2006", time.RFC3339}

var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses a client-supplied date string. An empty string returns a
// zero Date with no error so required-field checks stay with Validate.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return Date{}, ErrInvalidDate
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ISO returns the storage form, YYYY-MM-DD. Lexicographic order of ISO
// strings matches chronological order, which the running-balance lookup and
// the year filter rely on.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// Display returns the API output form, DD/MM/YYYY.
func (d Date) Display() string {
	return d.Format("02/01/2006")
}
