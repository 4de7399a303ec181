package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pquist/bunkplan/backend/internal/domain"
	"github.com/pquist/bunkplan/backend/internal/repo"
)

// createAssignmentRequest is the JSON body for POST /trips/{tripID}/assignments.
type createAssignmentRequest struct {
	RoomID    uuid.UUID `json:"room_id"`
	PersonID  uuid.UUID `json:"person_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
}

// updateAssignmentRequest is the JSON body for PUT /trips/{tripID}/assignments/{id}.
// All fields are optional; omitted fields keep their current values.
type updateAssignmentRequest struct {
	RoomID    *uuid.UUID `json:"room_id"`
	StartDate *string    `json:"start_date"`
	EndDate   *string    `json:"end_date"`
}

// assignmentResponse is the write-path response: the stored stay plus an
// advisory conflict flag. Conflict reports whether the guest now holds
// overlapping stays; it never blocks the write.
type assignmentResponse struct {
	domain.RoomAssignment
	Conflict bool `json:"conflict"`
}

// CreateAssignment handles POST /trips/{tripID}/assignments.
// A stay that double-books the guest is still created; the response's
// conflict flag tells the client to warn the user.
func (s *Server) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	var req createAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, err.Error())
		return
	}
	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		s.badRequest(w, "invalid start_date: "+unwrapMessage(err))
		return
	}
	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		s.badRequest(w, "invalid end_date: "+unwrapMessage(err))
		return
	}

	created, err := s.assignments.Create(r.Context(), domain.RoomAssignment{
		TripID:    tripID,
		RoomID:    req.RoomID,
		PersonID:  req.PersonID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, s.withConflict(r, created))
}

// ListAssignments handles GET /trips/{tripID}/assignments.
// Optional ?roomId= or ?personId= narrows the list; they are mutually
// exclusive and roomId wins if both are sent.
func (s *Server) ListAssignments(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	var stays []domain.RoomAssignment
	switch q := r.URL.Query(); {
	case q.Get("roomId") != "":
		roomID, parseErr := uuid.Parse(q.Get("roomId"))
		if parseErr != nil {
			s.badRequest(w, "invalid roomId: must be a UUID")
			return
		}
		stays, err = s.assignments.ListByRoom(r.Context(), tripID, roomID)
	case q.Get("personId") != "":
		personID, parseErr := uuid.Parse(q.Get("personId"))
		if parseErr != nil {
			s.badRequest(w, "invalid personId: must be a UUID")
			return
		}
		stays, err = s.assignments.ListByPerson(r.Context(), tripID, personID)
	default:
		stays, err = s.assignments.ListByTrip(r.Context(), tripID)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, stays)
}

// GetAssignment handles GET /trips/{tripID}/assignments/{assignmentID}.
func (s *Server) GetAssignment(w http.ResponseWriter, r *http.Request) {
	tripID, id, err := tripScopedIDs(r, "assignmentID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	stay, err := s.assignments.GetByID(r.Context(), tripID, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, stay)
}

// UpdateAssignment handles PUT /trips/{tripID}/assignments/{assignmentID}.
// Accepts a partial body; whatever is omitted stays as it was. Like create,
// the response carries the advisory conflict flag for the stay's new dates.
func (s *Server) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	tripID, id, err := tripScopedIDs(r, "assignmentID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	var req updateAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	patch := repo.AssignmentPatch{RoomID: req.RoomID}
	if req.StartDate != nil {
		start, parseErr := domain.ParseDate(*req.StartDate)
		if parseErr != nil {
			s.badRequest(w, "invalid start_date: "+unwrapMessage(parseErr))
			return
		}
		patch.StartDate = &start
	}
	if req.EndDate != nil {
		end, parseErr := domain.ParseDate(*req.EndDate)
		if parseErr != nil {
			s.badRequest(w, "invalid end_date: "+unwrapMessage(parseErr))
			return
		}
		patch.EndDate = &end
	}

	updated, err := s.assignments.Update(r.Context(), tripID, id, patch)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.withConflict(r, updated))
}

// DeleteAssignment handles DELETE /trips/{tripID}/assignments/{assignmentID}.
// Deleting an assignment that is already gone is a success, not a 404.
func (s *Server) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	tripID, id, err := tripScopedIDs(r, "assignmentID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if err := s.assignments.Delete(r.Context(), tripID, id); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// withConflict wraps a written stay with the advisory double-booking flag.
// The probe excludes the stay itself so it never conflicts with its own
// dates. A probe failure is logged and reported as no conflict rather than
// failing a write that has already committed.
func (s *Server) withConflict(r *http.Request, stay domain.RoomAssignment) assignmentResponse {
	conflict, err := s.assignments.HasConflict(
		r.Context(), stay.TripID, stay.PersonID, stay.StartDate, stay.EndDate, stay.ID)
	if err != nil {
		s.logger.Error("conflict probe failed", "assignment_id", stay.ID, "error", err)
		conflict = false
	}
	return assignmentResponse{RoomAssignment: stay, Conflict: conflict}
}
