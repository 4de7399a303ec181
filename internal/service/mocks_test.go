package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pquist/bunkplan/backend/internal/domain"
	"github.com/pquist/bunkplan/backend/internal/repo"
)

// Hand-written test doubles: each method is a function field — set only the
// ones your test needs. No mock generation library required for simple cases.

type mockAssignmentRepo struct {
	create       func(ctx context.Context, a domain.RoomAssignment) (domain.RoomAssignment, error)
	getByID      func(ctx context.Context, tripID, id uuid.UUID) (domain.RoomAssignment, error)
	listByTrip   func(ctx context.Context, tripID uuid.UUID) ([]domain.RoomAssignment, error)
	listByRoom   func(ctx context.Context, tripID, roomID uuid.UUID) ([]domain.RoomAssignment, error)
	listByPerson func(ctx context.Context, tripID, personID uuid.UUID) ([]domain.RoomAssignment, error)
	update       func(ctx context.Context, tripID, id uuid.UUID, patch repo.AssignmentPatch) (domain.RoomAssignment, error)
	delete       func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *mockAssignmentRepo) Create(ctx context.Context, a domain.RoomAssignment) (domain.RoomAssignment, error) {
	return m.create(ctx, a)
}
func (m *mockAssignmentRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.RoomAssignment, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockAssignmentRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.RoomAssignment, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockAssignmentRepo) ListByRoom(ctx context.Context, tripID, roomID uuid.UUID) ([]domain.RoomAssignment, error) {
	return m.listByRoom(ctx, tripID, roomID)
}
func (m *mockAssignmentRepo) ListByPerson(ctx context.Context, tripID, personID uuid.UUID) ([]domain.RoomAssignment, error) {
	return m.listByPerson(ctx, tripID, personID)
}
func (m *mockAssignmentRepo) Update(ctx context.Context, tripID, id uuid.UUID, patch repo.AssignmentPatch) (domain.RoomAssignment, error) {
	return m.update(ctx, tripID, id, patch)
}
func (m *mockAssignmentRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}

var _ repo.AssignmentRepo = (*mockAssignmentRepo)(nil)

type mockRoomRepo struct {
	create     func(ctx context.Context, room domain.Room) (domain.Room, error)
	getByID    func(ctx context.Context, tripID, roomID uuid.UUID) (domain.Room, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Room, error)
	update     func(ctx context.Context, room domain.Room) (domain.Room, error)
	delete     func(ctx context.Context, tripID, roomID uuid.UUID) error
	reorder    func(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error
}

func (m *mockRoomRepo) Create(ctx context.Context, room domain.Room) (domain.Room, error) {
	return m.create(ctx, room)
}
func (m *mockRoomRepo) GetByID(ctx context.Context, tripID, roomID uuid.UUID) (domain.Room, error) {
	return m.getByID(ctx, tripID, roomID)
}
func (m *mockRoomRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Room, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockRoomRepo) Update(ctx context.Context, room domain.Room) (domain.Room, error) {
	return m.update(ctx, room)
}
func (m *mockRoomRepo) Delete(ctx context.Context, tripID, roomID uuid.UUID) error {
	return m.delete(ctx, tripID, roomID)
}
func (m *mockRoomRepo) Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error {
	return m.reorder(ctx, tripID, orderedIDs)
}

var _ repo.RoomRepo = (*mockRoomRepo)(nil)

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// existingTripRepo returns a TripRepo whose GetByID always succeeds — for
// services that only check parent existence.
func existingTripRepo() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: id, Name: "Trip"}, nil
		},
	}
}

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func stayFixture(tripID uuid.UUID, start, end string) domain.RoomAssignment {
	return domain.RoomAssignment{
		ID:        uuid.New(),
		TripID:    tripID,
		RoomID:    uuid.New(),
		PersonID:  uuid.New(),
		StartDate: domain.Date(start),
		EndDate:   domain.Date(end),
	}
}
