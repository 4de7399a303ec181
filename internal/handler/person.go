package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pquist/bunkplan/backend/internal/domain"
)

// personRequest is the JSON body for creating or updating a person.
type personRequest struct {
	Name string `json:"name"`
}

// conflictResponse is the body of the conflict probe. It is advisory only:
// the API reports double-booking, it never blocks it.
type conflictResponse struct {
	Conflict bool `json:"conflict"`
}

// CreatePerson handles POST /trips/{tripID}/persons.
func (s *Server) CreatePerson(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	created, err := s.persons.Create(r.Context(), domain.Person{TripID: tripID, Name: req.Name})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, created)
}

// ListPersons handles GET /trips/{tripID}/persons. Persons are ordered by name.
func (s *Server) ListPersons(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	persons, err := s.persons.ListByTrip(r.Context(), tripID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, persons)
}

// GetPerson handles GET /trips/{tripID}/persons/{personID}.
func (s *Server) GetPerson(w http.ResponseWriter, r *http.Request) {
	tripID, personID, err := tripScopedIDs(r, "personID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	person, err := s.persons.GetByID(r.Context(), tripID, personID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, person)
}

// UpdatePerson handles PUT /trips/{tripID}/persons/{personID}.
func (s *Server) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	tripID, personID, err := tripScopedIDs(r, "personID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	updated, err := s.persons.Update(r.Context(), domain.Person{
		ID:     personID,
		TripID: tripID,
		Name:   req.Name,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

// DeletePerson handles DELETE /trips/{tripID}/persons/{personID}.
// The person's assignments are removed with them.
func (s *Server) DeletePerson(w http.ResponseWriter, r *http.Request) {
	tripID, personID, err := tripScopedIDs(r, "personID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if err := s.persons.Delete(r.Context(), tripID, personID); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPersonConflict handles GET /trips/{tripID}/persons/{personID}/conflict.
// Query parameters: start, end (required, "2006-01-02"), exclude (optional
// assignment UUID to ignore, for probing an edit of an existing stay).
// Two stays conflict when their closed date ranges touch — sharing a
// checkout/check-in day counts, because the guest cannot be promised to two
// rooms on the same calendar day.
func (s *Server) GetPersonConflict(w http.ResponseWriter, r *http.Request) {
	tripID, personID, err := tripScopedIDs(r, "personID")
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

	excludeID := uuid.Nil
	if raw := r.URL.Query().Get("exclude"); raw != "" {
		excludeID, err = uuid.Parse(raw)
		if err != nil {
			s.badRequest(w, "invalid exclude: must be a UUID")
			return
		}
	}

	conflict, err := s.assignments.HasConflict(r.Context(), tripID, personID, start, end, excludeID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, conflictResponse{Conflict: conflict})
}

// tripScopedIDs parses {tripID} plus one more named UUID path parameter.
func tripScopedIDs(r *http.Request, name string) (tripID, id uuid.UUID, err error) {
	tripID, err = pathID(r, "tripID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err = pathID(r, name)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return tripID, id, nil
}
