// Package service contains the business logic for the Bunkplan API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pquist/bunkplan/backend/internal/domain"
	"github.com/pquist/bunkplan/backend/internal/repo"
	"github.com/pquist/bunkplan/backend/internal/schedule"
)

// AssignmentService implements business logic for RoomAssignment operations
// and the scheduling queries built on top of them.
//
// Conflict and capacity policy is deliberately soft: Create and Update never
// block on a double-booking or an over-full room. HasConflict and
// RoomOccupancy exist so callers can check first and decide whether to warn
// or refuse.
type AssignmentService struct {
	assignments repo.AssignmentRepo
	rooms       repo.RoomRepo
	notifier    *Notifier
}

// NewAssignmentService constructs an AssignmentService backed by the provided
// repos. notifier may be nil when no read caches need invalidation (tests).
func NewAssignmentService(assignments repo.AssignmentRepo, rooms repo.RoomRepo, notifier *Notifier) *AssignmentService {
	return &AssignmentService{assignments: assignments, rooms: rooms, notifier: notifier}
}

// Create validates the date range and persists a new assignment.
// Returns domain.ErrValidation if start is after end; nothing is written then.
func (s *AssignmentService) Create(ctx context.Context, a domain.RoomAssignment) (domain.RoomAssignment, error) {
	if err := validateStayRange(a.StartDate, a.EndDate); err != nil {
		return domain.RoomAssignment{}, err
	}
	created, err := s.assignments.Create(ctx, a)
	if err != nil {
		return domain.RoomAssignment{}, fmt.Errorf("service.AssignmentService.Create: %w", err)
	}
	s.publish()
	return created, nil
}

// GetByID returns a single assignment, scoped to the given trip.
func (s *AssignmentService) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.RoomAssignment, error) {
	a, err := s.assignments.GetByID(ctx, tripID, id)
	if err != nil {
		return domain.RoomAssignment{}, fmt.Errorf("service.AssignmentService.GetByID: %w", err)
	}
	return a, nil
}

// Update applies the patch through the repo's atomic ownership-checked
// transaction and publishes a change on success.
func (s *AssignmentService) Update(ctx context.Context, tripID, id uuid.UUID, patch repo.AssignmentPatch) (domain.RoomAssignment, error) {
	if patch.StartDate != nil && patch.EndDate != nil {
		// Both ends supplied: reject an inverted range before touching the DB.
		// A one-sided patch is validated against the stored row by the repo.
		if err := validateStayRange(*patch.StartDate, *patch.EndDate); err != nil {
			return domain.RoomAssignment{}, err
		}
	}
	updated, err := s.assignments.Update(ctx, tripID, id, patch)
	if err != nil {
		return domain.RoomAssignment{}, fmt.Errorf("service.AssignmentService.Update: %w", err)
	}
	s.publish()
	return updated, nil
}

// Delete removes an assignment. Deleting an absent id is success.
func (s *AssignmentService) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	if err := s.assignments.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.AssignmentService.Delete: %w", err)
	}
	s.publish()
	return nil
}

// ListByTrip returns every assignment of the trip ordered by start date.
// Always returns a non-nil slice so callers can safely range over it.
func (s *AssignmentService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.RoomAssignment, error) {
	out, err := s.assignments.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.AssignmentService.ListByTrip: %w", err)
	}
	return nonNil(out), nil
}

// ListByRoom returns the trip's assignments for one room ordered by start date.
func (s *AssignmentService) ListByRoom(ctx context.Context, tripID, roomID uuid.UUID) ([]domain.RoomAssignment, error) {
	out, err := s.assignments.ListByRoom(ctx, tripID, roomID)
	if err != nil {
		return nil, fmt.Errorf("service.AssignmentService.ListByRoom: %w", err)
	}
	return nonNil(out), nil
}

// ListByPerson returns the trip's assignments for one person ordered by start date.
func (s *AssignmentService) ListByPerson(ctx context.Context, tripID, personID uuid.UUID) ([]domain.RoomAssignment, error) {
	out, err := s.assignments.ListByPerson(ctx, tripID, personID)
	if err != nil {
		return nil, fmt.Errorf("service.AssignmentService.ListByPerson: %w", err)
	}
	return nonNil(out), nil
}

// HasConflict reports whether the proposed stay would overlap another stay of
// the same person under the inclusive-boundary rule. excludeID skips the
// assignment being edited; pass uuid.Nil for a new stay. The result is
// advisory — this method never blocks a mutation by itself.
func (s *AssignmentService) HasConflict(ctx context.Context, tripID, personID uuid.UUID, start, end domain.Date, excludeID uuid.UUID) (bool, error) {
	if err := validateStayRange(start, end); err != nil {
		return false, err
	}
	existing, err := s.assignments.ListByPerson(ctx, tripID, personID)
	if err != nil {
		return false, fmt.Errorf("service.AssignmentService.HasConflict: %w", err)
	}
	return schedule.HasConflict(existing, start, end, excludeID), nil
}

// RoomOccupancy computes the room's peak simultaneous occupancy over
// [start, end) and derives capacity headroom from it.
func (s *AssignmentService) RoomOccupancy(ctx context.Context, tripID, roomID uuid.UUID, start, end domain.Date) (domain.RoomOccupancy, error) {
	room, err := s.rooms.GetByID(ctx, tripID, roomID)
	if err != nil {
		return domain.RoomOccupancy{}, fmt.Errorf("service.AssignmentService.RoomOccupancy: %w", err)
	}
	stays, err := s.assignments.ListByRoom(ctx, tripID, roomID)
	if err != nil {
		return domain.RoomOccupancy{}, fmt.Errorf("service.AssignmentService.RoomOccupancy: %w", err)
	}

	peak := schedule.PeakOccupancy(stays, start, end)
	return domain.RoomOccupancy{
		RoomID:    room.ID,
		Capacity:  room.Capacity,
		Peak:      peak,
		Available: schedule.AvailableSpots(room.Capacity, peak),
		Full:      peak >= room.Capacity,
	}, nil
}

// OccupantsOn returns the room's assignments that cover the given night.
func (s *AssignmentService) OccupantsOn(ctx context.Context, tripID, roomID uuid.UUID, night domain.Date) ([]domain.RoomAssignment, error) {
	stays, err := s.assignments.ListByRoom(ctx, tripID, roomID)
	if err != nil {
		return nil, fmt.Errorf("service.AssignmentService.OccupantsOn: %w", err)
	}
	return schedule.OccupantsOn(stays, night), nil
}

func (s *AssignmentService) publish() {
	if s.notifier != nil {
		s.notifier.Publish()
	}
}

// validateStayRange enforces the start <= end invariant shared by Create,
// Update, and HasConflict.
func validateStayRange(start, end domain.Date) error {
	if start > end {
		return fmt.Errorf("%w: start date %s is after end date %s", domain.ErrValidation, start, end)
	}
	return nil
}

// nonNil replaces a nil slice with an empty one.
func nonNil(in []domain.RoomAssignment) []domain.RoomAssignment {
	if in == nil {
		return []domain.RoomAssignment{}
	}
	return in
}
