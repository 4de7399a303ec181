package domain

import (
	"fmt"
	"time"
)

// dateLayout is the only accepted wire and storage format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar date in fixed-width, zero-padded "YYYY-MM-DD" form.
// There is no time-of-day component. Because the representation is fixed-width,
// lexicographic comparison of the underlying strings matches chronological
// order, so Date values compare correctly with the built-in <, <=, etc.
//
// Construct Dates through ParseDate or DateOf; never by casting arbitrary
// strings, which would break the ordering guarantee.
type Date string

// ParseDate validates s into a Date.
// The fixed-width layout rejects unpadded input like "2026-3-2" along with
// anything that is not a real calendar date; both return ErrValidation.
// Re-formatting the parsed value pins the fixed-width invariant to the
// layout rather than to the caller's string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", ErrValidation, s)
	}
	return Date(t.Format(dateLayout)), nil
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// Time returns the date at midnight UTC.
// A Date built through ParseDate or DateOf always parses back cleanly.
func (d Date) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		panic("domain: malformed Date " + string(d))
	}
	return t
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return DateOf(d.Time().AddDate(0, 0, 1))
}

func (d Date) String() string { return string(d) }
