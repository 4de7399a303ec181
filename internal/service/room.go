package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pquist/bunkplan/backend/internal/domain"
	"github.com/pquist/bunkplan/backend/internal/repo"
)

// RoomService implements business logic for Room operations.
type RoomService struct {
	rooms    repo.RoomRepo
	trips    repo.TripRepo
	notifier *Notifier
}

// NewRoomService constructs a RoomService backed by the provided repos.
func NewRoomService(rooms repo.RoomRepo, trips repo.TripRepo, notifier *Notifier) *RoomService {
	return &RoomService{rooms: rooms, trips: trips, notifier: notifier}
}

// Create validates the room, verifies the parent trip exists, then persists.
func (s *RoomService) Create(ctx context.Context, room domain.Room) (domain.Room, error) {
	if _, err := s.trips.GetByID(ctx, room.TripID); err != nil {
		return domain.Room{}, fmt.Errorf("service.RoomService.Create: %w", err)
	}
	if err := validateRoom(room); err != nil {
		return domain.Room{}, err
	}
	created, err := s.rooms.Create(ctx, room)
	if err != nil {
		return domain.Room{}, fmt.Errorf("service.RoomService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single room, scoped to the given trip.
func (s *RoomService) GetByID(ctx context.Context, tripID, roomID uuid.UUID) (domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, tripID, roomID)
	if err != nil {
		return domain.Room{}, fmt.Errorf("service.RoomService.GetByID: %w", err)
	}
	return room, nil
}

// ListByTrip returns all rooms for a trip in display order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *RoomService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Room, error) {
	rooms, err := s.rooms.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.RoomService.ListByTrip: %w", err)
	}
	if rooms == nil {
		return []domain.Room{}, nil
	}
	return rooms, nil
}

// Update validates and persists changes to an existing room.
func (s *RoomService) Update(ctx context.Context, room domain.Room) (domain.Room, error) {
	if err := validateRoom(room); err != nil {
		return domain.Room{}, err
	}
	updated, err := s.rooms.Update(ctx, room)
	if err != nil {
		return domain.Room{}, fmt.Errorf("service.RoomService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a room and cascades its assignments; the assignment set
// changed, so subscribers are notified.
func (s *RoomService) Delete(ctx context.Context, tripID, roomID uuid.UUID) error {
	if err := s.rooms.Delete(ctx, tripID, roomID); err != nil {
		return fmt.Errorf("service.RoomService.Delete: %w", err)
	}
	if s.notifier != nil {
		s.notifier.Publish()
	}
	return nil
}

// Reorder rewrites the trip's room display order. Duplicates are rejected
// here before the repo re-validates the full permutation under lock.
func (s *RoomService) Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return fmt.Errorf("%w: duplicate room id %s in order", domain.ErrValidation, id)
		}
		seen[id] = true
	}
	if err := s.rooms.Reorder(ctx, tripID, orderedIDs); err != nil {
		return fmt.Errorf("service.RoomService.Reorder: %w", err)
	}
	return nil
}

// validateRoom enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Capacity must be a positive number of sleeping spots.
func validateRoom(room domain.Room) error {
	if strings.TrimSpace(room.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if room.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", domain.ErrValidation)
	}
	return nil
}
