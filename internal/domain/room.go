package domain

import (
	"time"

	"github.com/google/uuid"
)

// Room is a bookable space within a trip. Capacity bounds how many guests may
// occupy the room on any single night; Position is the display/sort order
// within the trip.
type Room struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoomOccupancy is the result of a peak-occupancy query over a date range.
type RoomOccupancy struct {
	RoomID   uuid.UUID `json:"room_id"`
	Capacity int       `json:"capacity"`
	// Peak is the maximum number of simultaneous stays on any night of the
	// queried range.
	Peak int `json:"peak"`
	// Available is max(0, Capacity-Peak).
	Available int `json:"available"`
	// Full reports whether the room has no spot left on its busiest night.
	Full bool `json:"full"`
}
