// Package domain contains the core data types for the Bunkplan API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (schedule, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate and ownership scope: rooms, persons, and
// room assignments all belong to exactly one trip.
type Trip struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
