package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pquist/bunkplan/backend/internal/domain"
)

// roomRequest is the JSON body for creating or updating a room.
type roomRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// reorderRequest is the JSON body for PUT /trips/{tripID}/rooms/order.
// Order must be a permutation of the trip's room ids.
type reorderRequest struct {
	Order []uuid.UUID `json:"order"`
}

// CreateRoom handles POST /trips/{tripID}/rooms.
// The new room is appended to the end of the trip's display order.
func (s *Server) CreateRoom(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	var req roomRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	created, err := s.rooms.Create(r.Context(), domain.Room{
		TripID:   tripID,
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, created)
}

// ListRooms handles GET /trips/{tripID}/rooms. Rooms are ordered by position.
func (s *Server) ListRooms(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	rooms, err := s.rooms.ListByTrip(r.Context(), tripID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, rooms)
}

// GetRoom handles GET /trips/{tripID}/rooms/{roomID}.
func (s *Server) GetRoom(w http.ResponseWriter, r *http.Request) {
	tripID, roomID, err := tripScopedIDs(r, "roomID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	room, err := s.rooms.GetByID(r.Context(), tripID, roomID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, room)
}

// UpdateRoom handles PUT /trips/{tripID}/rooms/{roomID}.
func (s *Server) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	tripID, roomID, err := tripScopedIDs(r, "roomID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	var req roomRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	updated, err := s.rooms.Update(r.Context(), domain.Room{
		ID:       roomID,
		TripID:   tripID,
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

// DeleteRoom handles DELETE /trips/{tripID}/rooms/{roomID}.
// The room's assignments are removed with it.
func (s *Server) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	tripID, roomID, err := tripScopedIDs(r, "roomID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if err := s.rooms.Delete(r.Context(), tripID, roomID); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderRooms handles PUT /trips/{tripID}/rooms/order.
// The body must list every room of the trip exactly once; a partial or
// duplicated list is rejected without changing any position.
func (s *Server) ReorderRooms(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if err := s.rooms.Reorder(r.Context(), tripID, req.Order); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetRoomOccupancy handles GET /trips/{tripID}/rooms/{roomID}/occupancy.
// Query parameters: start, end (required, "2006-01-02"). Returns the peak
// number of simultaneous stays across the nights of [start, end) along with
// capacity headroom.
func (s *Server) GetRoomOccupancy(w http.ResponseWriter, r *http.Request) {
	tripID, roomID, err := tripScopedIDs(r, "roomID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	start, err := queryDate(r, "start")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}
	end, err := queryDate(r, "end")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	occ, err := s.assignments.RoomOccupancy(r.Context(), tripID, roomID, start, end)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, occ)
}

// GetRoomOccupants handles GET /trips/{tripID}/rooms/{roomID}/occupants.
// Query parameter: date (required). Returns the stays occupying the room on
// that night; a guest checking out that morning is not among them.
func (s *Server) GetRoomOccupants(w http.ResponseWriter, r *http.Request) {
	tripID, roomID, err := tripScopedIDs(r, "roomID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	night, err := queryDate(r, "date")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	occupants, err := s.assignments.OccupantsOn(r.Context(), tripID, roomID, night)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, occupants)
}
