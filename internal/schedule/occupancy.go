package schedule

import (
	"sort"

	"github.com/pquist/bunkplan/backend/internal/domain"
)

// PeakOccupancy returns the maximum number of simultaneous stays across every
// night of [rangeStart, rangeEnd). An empty range (rangeStart >= rangeEnd) or
// an empty assignment list yields 0.
//
// The night scan is O(nights × assignments). Nights are bounded by trip length
// and assignments-per-room stay small, so this is the readable default;
// PeakOccupancySweep is the O(n log n) alternative for large inputs.
func PeakOccupancy(assignments []domain.RoomAssignment, rangeStart, rangeEnd domain.Date) int {
	if rangeStart >= rangeEnd || len(assignments) == 0 {
		return 0
	}
	peak := 0
	for night := rangeStart; night < rangeEnd; night = night.Next() {
		count := 0
		for _, a := range assignments {
			if NightOccupied(a.StartDate, a.EndDate, night) {
				count++
			}
		}
		if count > peak {
			peak = count
		}
	}
	return peak
}

// PeakOccupancySweep computes the same result as PeakOccupancy with a single
// sorted pass over check-in/check-out events instead of a per-night scan.
// Each stay clipped to the query range becomes a +1 event at its first
// occupied night and a -1 event at its checkout morning; the running total's
// maximum is the peak.
func PeakOccupancySweep(assignments []domain.RoomAssignment, rangeStart, rangeEnd domain.Date) int {
	if rangeStart >= rangeEnd || len(assignments) == 0 {
		return 0
	}

	type event struct {
		at    domain.Date
		delta int
	}
	events := make([]event, 0, 2*len(assignments))
	for _, a := range assignments {
		lo, hi := a.StartDate, a.EndDate
		if lo < rangeStart {
			lo = rangeStart
		}
		if hi > rangeEnd {
			hi = rangeEnd
		}
		if lo >= hi {
			continue // zero-night stay, or entirely outside the range
		}
		events = append(events, event{lo, +1}, event{hi, -1})
	}

	// Checkouts sort before check-ins on the same day: the departing guest's
	// night ended the previous evening, so the two must not be counted together.
	sort.Slice(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return events[i].delta < events[j].delta
	})

	peak, current := 0, 0
	for _, e := range events {
		current += e.delta
		if current > peak {
			peak = current
		}
	}
	return peak
}

// OccupantsOn returns the assignments whose stay covers the given night,
// preserving input order. Used for the "who is in this room today" view.
func OccupantsOn(assignments []domain.RoomAssignment, night domain.Date) []domain.RoomAssignment {
	occupants := make([]domain.RoomAssignment, 0)
	for _, a := range assignments {
		if NightOccupied(a.StartDate, a.EndDate, night) {
			occupants = append(occupants, a)
		}
	}
	return occupants
}

// AvailableSpots returns max(0, capacity-peak).
func AvailableSpots(capacity, peak int) int {
	if spots := capacity - peak; spots > 0 {
		return spots
	}
	return 0
}
