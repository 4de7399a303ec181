package repo_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pquist/bunkplan/backend/internal/domain"
	"github.com/pquist/bunkplan/backend/internal/repo"
)

// fixture bundles the repos under test plus a pre-created trip, room, and
// person so assignment tests can get straight to the point.
type fixture struct {
	trips       repo.TripRepo
	rooms       repo.RoomRepo
	persons     repo.PersonRepo
	assignments repo.AssignmentRepo

	trip   domain.Trip
	room   domain.Room
	person domain.Person
}

func newFixture(t *testing.T, tx pgx.Tx) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		trips:       repo.NewTripRepo(tx),
		rooms:       repo.NewRoomRepo(tx),
		persons:     repo.NewPersonRepo(tx),
		assignments: repo.NewAssignmentRepo(tx),
	}

	var err error
	f.trip, err = f.trips.Create(ctx, domain.Trip{Name: "Lake House Weekend"})
	require.NoError(t, err, "create trip fixture")

	f.room, err = f.rooms.Create(ctx, domain.Room{TripID: f.trip.ID, Name: "Bunk Room", Capacity: 4})
	require.NoError(t, err, "create room fixture")

	f.person, err = f.persons.Create(ctx, domain.Person{TripID: f.trip.ID, Name: "Alex"})
	require.NoError(t, err, "create person fixture")

	return f
}

// otherTrip creates a second trip for ownership-mismatch tests.
func (f *fixture) otherTrip(t *testing.T) domain.Trip {
	t.Helper()
	trip, err := f.trips.Create(context.Background(), domain.Trip{Name: "Other Trip"})
	require.NoError(t, err, "create second trip")
	return trip
}

// createStay inserts an assignment for the fixture's room and person.
func (f *fixture) createStay(t *testing.T, start, end string) domain.RoomAssignment {
	t.Helper()
	a, err := f.assignments.Create(context.Background(), domain.RoomAssignment{
		TripID:    f.trip.ID,
		RoomID:    f.room.ID,
		PersonID:  f.person.ID,
		StartDate: mustDate(t, start),
		EndDate:   mustDate(t, end),
	})
	require.NoError(t, err, "create assignment fixture")
	return a
}

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}
