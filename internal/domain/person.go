package domain

import (
	"time"

	"github.com/google/uuid"
)

// Person is a guest on a trip. Beyond identity and trip scope, its fields play
// no part in the scheduling logic.
type Person struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
