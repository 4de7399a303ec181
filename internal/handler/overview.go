package handler

import (
	"net/http"

	"github.com/pquist/bunkplan/backend/internal/domain"
)

// overviewResponse is the read-optimized board view of one trip: every room
// with its stays in display order, every person with theirs. It is served
// from the in-memory index rather than per-room queries.
type overviewResponse struct {
	Trip    domain.Trip      `json:"trip"`
	Rooms   []roomOverview   `json:"rooms"`
	Persons []personOverview `json:"persons"`
}

type roomOverview struct {
	Room        domain.Room             `json:"room"`
	Assignments []domain.RoomAssignment `json:"assignments"`
}

type personOverview struct {
	Person      domain.Person           `json:"person"`
	Assignments []domain.RoomAssignment `json:"assignments"`
}

// GetTripOverview handles GET /trips/{tripID}/overview.
// Requesting a different trip than the index currently tracks re-scopes the
// index; the stale view is discarded before the response is built.
func (s *Server) GetTripOverview(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}
	if s.overview == nil {
		s.writeError(w, http.StatusInternalServerError, "internal_error", "overview index not configured")
		return
	}

	ctx := r.Context()
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if current, active := s.overview.Trip(); !active || current != tripID {
		if err := s.overview.SetTrip(ctx, tripID); err != nil {
			s.respondError(w, r, err)
			return
		}
	}

	rooms, err := s.rooms.ListByTrip(ctx, tripID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	persons, err := s.persons.ListByTrip(ctx, tripID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := overviewResponse{
		Trip:    trip,
		Rooms:   make([]roomOverview, 0, len(rooms)),
		Persons: make([]personOverview, 0, len(persons)),
	}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, roomOverview{
			Room:        room,
			Assignments: s.overview.ByRoom(room.ID),
		})
	}
	for _, person := range persons {
		resp.Persons = append(resp.Persons, personOverview{
			Person:      person,
			Assignments: s.overview.ByPerson(person.ID),
		})
	}

	s.writeJSON(w, http.StatusOK, resp)
}
