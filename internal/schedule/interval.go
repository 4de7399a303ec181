// Package schedule implements the pure date-range logic of the room
// assignment engine: nightly occupancy, peak occupancy per room, and
// same-person stay conflicts. Functions here never touch the database — they
// operate on slices the caller has already fetched — and never suspend.
//
// Two distinct overlap rules live side by side and must not be unified:
//
//   - NightOccupied uses the half-open hotel convention [start, end): the end
//     date is the checkout morning and is never an occupied night. It drives
//     room capacity.
//   - StaysConflict uses closed intervals [start, end]: two stays of the same
//     person conflict even when one's checkout day equals the other's
//     check-in day, because a guest cannot be registered into two rooms on
//     the same calendar day. It drives double-booking detection.
//
// Collapsing the two would silently change behavior on trip turnover days.
package schedule

import "github.com/pquist/bunkplan/backend/internal/domain"

// NightOccupied reports whether the stay [start, end) covers the given night.
// start == end is a zero-night stay and occupies nothing.
func NightOccupied(start, end, night domain.Date) bool {
	return start <= night && night < end
}

// StaysConflict reports whether two stays of the same person overlap under the
// closed-interval rule: true even when they only share a checkout/check-in day.
func StaysConflict(aStart, aEnd, bStart, bEnd domain.Date) bool {
	return aStart <= bEnd && bStart <= aEnd
}
