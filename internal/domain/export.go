package domain

// ExportRow is a single row in a trip's full-data export.
// It is a flat, denormalized view: one row per room assignment, with room and
// person names resolved. Rooms with no assignments yield one row with zero
// values for all stay fields.
type ExportRow struct {
	TripID   string `json:"trip_id"`
	TripName string `json:"trip_name"`

	RoomID       string `json:"room_id"`
	RoomName     string `json:"room_name"`
	RoomCapacity int    `json:"room_capacity"`

	// Stay fields — zero values when the room has no assignments.
	PersonName string `json:"person_name,omitempty"`
	StartDate  string `json:"start_date,omitempty"` // "2006-01-02" formatted date
	EndDate    string `json:"end_date,omitempty"`   // checkout morning, exclusive
	Nights     int    `json:"nights"`
}
