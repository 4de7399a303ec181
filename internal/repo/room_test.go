package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pquist/bunkplan/backend/internal/domain"
)

func TestRoomRepo_Create_AppendsToDisplayOrder(t *testing.T) {
	f := newFixture(t, newTestTx(t))
	ctx := context.Background()

	second, err := f.rooms.Create(ctx, domain.Room{TripID: f.trip.ID, Name: "Attic", Capacity: 2})
	require.NoError(t, err)

	assert.Greater(t, second.Position, f.room.Position, "new rooms go to the end of the order")
}

func TestRoomRepo_Update_WrongTrip(t *testing.T) {
	f := newFixture(t, newTestTx(t))
	ctx := context.Background()

	other := f.otherTrip(t)
	room := f.room
	room.TripID = other.ID
	room.Name = "Hijacked"

	_, err := f.rooms.Update(ctx, room)

	assert.ErrorIs(t, err, domain.ErrOwnership)

	got, err := f.rooms.GetByID(ctx, f.trip.ID, f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bunk Room", got.Name)
}

func TestRoomRepo_Delete_CascadesOwnAssignmentsOnly(t *testing.T) {
	f := newFixture(t, newTestTx(t))
	ctx := context.Background()

	sibling, err := f.rooms.Create(ctx, domain.Room{TripID: f.trip.ID, Name: "Attic", Capacity: 2})
	require.NoError(t, err)

	doomed := f.createStay(t, "2026-03-02", "2026-03-05")
	survivor, err := f.assignments.Create(ctx, domain.RoomAssignment{
		TripID:    f.trip.ID,
		RoomID:    sibling.ID,
		PersonID:  f.person.ID,
		StartDate: mustDate(t, "2026-03-06"),
		EndDate:   mustDate(t, "2026-03-08"),
	})
	require.NoError(t, err)

	require.NoError(t, f.rooms.Delete(ctx, f.trip.ID, f.room.ID))

	_, err = f.assignments.GetByID(ctx, f.trip.ID, doomed.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "deleted room's assignment is gone")

	_, err = f.assignments.GetByID(ctx, f.trip.ID, survivor.ID)
	assert.NoError(t, err, "sibling room's assignment survives")

	_, err = f.persons.GetByID(ctx, f.trip.ID, f.person.ID)
	assert.NoError(t, err, "persons are untouched by a room cascade")
}

func TestRoomRepo_Reorder(t *testing.T) {
	f := newFixture(t, newTestTx(t))
	ctx := context.Background()

	second, err := f.rooms.Create(ctx, domain.Room{TripID: f.trip.ID, Name: "Attic", Capacity: 2})
	require.NoError(t, err)

	require.NoError(t, f.rooms.Reorder(ctx, f.trip.ID, []uuid.UUID{second.ID, f.room.ID}))

	rooms, err := f.rooms.ListByTrip(ctx, f.trip.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, second.ID, rooms[0].ID)
	assert.Equal(t, f.room.ID, rooms[1].ID)
}

func TestRoomRepo_Reorder_Rejections(t *testing.T) {
	f := newFixture(t, newTestTx(t))
	ctx := context.Background()

	second, err := f.rooms.Create(ctx, domain.Room{TripID: f.trip.ID, Name: "Attic", Capacity: 2})
	require.NoError(t, err)

	tests := []struct {
		name string
		ids  []uuid.UUID
	}{
		{"duplicate id", []uuid.UUID{f.room.ID, f.room.ID}},
		{"omitted room", []uuid.UUID{f.room.ID}},
		{"unknown id", []uuid.UUID{f.room.ID, second.ID, uuid.New()}},
		{"empty list for a trip with rooms", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.rooms.Reorder(ctx, f.trip.ID, tt.ids)
			assert.ErrorIs(t, err, domain.ErrValidation)

			// Stored positions are untouched on rejection.
			rooms, err := f.rooms.ListByTrip(ctx, f.trip.ID)
			require.NoError(t, err)
			require.Len(t, rooms, 2)
			assert.Equal(t, f.room.ID, rooms[0].ID)
			assert.Equal(t, second.ID, rooms[1].ID)
		})
	}
}

func TestTripRepo_Delete_CascadesEverything(t *testing.T) {
	f := newFixture(t, newTestTx(t))
	ctx := context.Background()

	stay := f.createStay(t, "2026-03-02", "2026-03-05")

	require.NoError(t, f.trips.Delete(ctx, f.trip.ID))

	_, err := f.trips.GetByID(ctx, f.trip.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.rooms.GetByID(ctx, f.trip.ID, f.room.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.persons.GetByID(ctx, f.trip.ID, f.person.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.assignments.GetByID(ctx, f.trip.ID, stay.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPersonRepo_Delete_CascadesOwnAssignments(t *testing.T) {
	f := newFixture(t, newTestTx(t))
	ctx := context.Background()

	stay := f.createStay(t, "2026-03-02", "2026-03-05")

	require.NoError(t, f.persons.Delete(ctx, f.trip.ID, f.person.ID))

	_, err := f.assignments.GetByID(ctx, f.trip.ID, stay.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.rooms.GetByID(ctx, f.trip.ID, f.room.ID)
	assert.NoError(t, err, "rooms are untouched by a person cascade")
}
