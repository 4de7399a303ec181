package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoomAssignment is one guest's stay in one room, following the hotel
// check-in/check-out convention: StartDate is the first occupied night,
// EndDate is the checkout morning and is never itself an occupied night.
//
// Invariant: StartDate <= EndDate. Equal values denote a zero-night,
// same-day assignment that occupies nothing.
type RoomAssignment struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	RoomID    uuid.UUID `json:"room_id"`
	PersonID  uuid.UUID `json:"person_id"`
	StartDate Date      `json:"start_date"`
	EndDate   Date      `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Nights returns the number of occupied nights of the stay.
func (a RoomAssignment) Nights() int {
	n := 0
	for d := a.StartDate; d < a.EndDate; d = d.Next() {
		n++
	}
	return n
}
