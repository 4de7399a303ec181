package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pquist/bunkplan/backend/internal/domain"
	"github.com/pquist/bunkplan/backend/internal/handler"
	"github.com/pquist/bunkplan/backend/internal/index"
	"github.com/pquist/bunkplan/backend/internal/repo"
)

// Test doubles for the handler-side servicer interfaces.
// Set only the method fields your test needs; an unset field panics, which
// fails the test loudly if a handler calls something unexpected.

type mockTripServicer struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockPersonServicer struct {
	create     func(ctx context.Context, person domain.Person) (domain.Person, error)
	getByID    func(ctx context.Context, tripID, personID uuid.UUID) (domain.Person, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Person, error)
	update     func(ctx context.Context, person domain.Person) (domain.Person, error)
	delete     func(ctx context.Context, tripID, personID uuid.UUID) error
}

func (m *mockPersonServicer) Create(ctx context.Context, p domain.Person) (domain.Person, error) {
	return m.create(ctx, p)
}
func (m *mockPersonServicer) GetByID(ctx context.Context, tripID, personID uuid.UUID) (domain.Person, error) {
	return m.getByID(ctx, tripID, personID)
}
func (m *mockPersonServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Person, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockPersonServicer) Update(ctx context.Context, p domain.Person) (domain.Person, error) {
	return m.update(ctx, p)
}
func (m *mockPersonServicer) Delete(ctx context.Context, tripID, personID uuid.UUID) error {
	return m.delete(ctx, tripID, personID)
}

var _ handler.PersonServicer = (*mockPersonServicer)(nil)

type mockRoomServicer struct {
	create     func(ctx context.Context, room domain.Room) (domain.Room, error)
	getByID    func(ctx context.Context, tripID, roomID uuid.UUID) (domain.Room, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Room, error)
	update     func(ctx context.Context, room domain.Room) (domain.Room, error)
	delete     func(ctx context.Context, tripID, roomID uuid.UUID) error
	reorder    func(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error
}

func (m *mockRoomServicer) Create(ctx context.Context, r domain.Room) (domain.Room, error) {
	return m.create(ctx, r)
}
func (m *mockRoomServicer) GetByID(ctx context.Context, tripID, roomID uuid.UUID) (domain.Room, error) {
	return m.getByID(ctx, tripID, roomID)
}
func (m *mockRoomServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Room, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockRoomServicer) Update(ctx context.Context, r domain.Room) (domain.Room, error) {
	return m.update(ctx, r)
}
func (m *mockRoomServicer) Delete(ctx context.Context, tripID, roomID uuid.UUID) error {
	return m.delete(ctx, tripID, roomID)
}
func (m *mockRoomServicer) Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error {
	return m.reorder(ctx, tripID, orderedIDs)
}

var _ handler.RoomServicer = (*mockRoomServicer)(nil)

type mockAssignmentServicer struct {
	create        func(ctx context.Context, a domain.RoomAssignment) (domain.RoomAssignment, error)
	getByID       func(ctx context.Context, tripID, id uuid.UUID) (domain.RoomAssignment, error)
	update        func(ctx context.Context, tripID, id uuid.UUID, patch repo.AssignmentPatch) (domain.RoomAssignment, error)
	delete        func(ctx context.Context, tripID, id uuid.UUID) error
	listByTrip    func(ctx context.Context, tripID uuid.UUID) ([]domain.RoomAssignment, error)
	listByRoom    func(ctx context.Context, tripID, roomID uuid.UUID) ([]domain.RoomAssignment, error)
	listByPerson  func(ctx context.Context, tripID, personID uuid.UUID) ([]domain.RoomAssignment, error)
	hasConflict   func(ctx context.Context, tripID, personID uuid.UUID, start, end domain.Date, excludeID uuid.UUID) (bool, error)
	roomOccupancy func(ctx context.Context, tripID, roomID uuid.UUID, start, end domain.Date) (domain.RoomOccupancy, error)
	occupantsOn   func(ctx context.Context, tripID, roomID uuid.UUID, night domain.Date) ([]domain.RoomAssignment, error)
}

func (m *mockAssignmentServicer) Create(ctx context.Context, a domain.RoomAssignment) (domain.RoomAssignment, error) {
	return m.create(ctx, a)
}
func (m *mockAssignmentServicer) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.RoomAssignment, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockAssignmentServicer) Update(ctx context.Context, tripID, id uuid.UUID, patch repo.AssignmentPatch) (domain.RoomAssignment, error) {
	return m.update(ctx, tripID, id, patch)
}
func (m *mockAssignmentServicer) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}
func (m *mockAssignmentServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.RoomAssignment, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockAssignmentServicer) ListByRoom(ctx context.Context, tripID, roomID uuid.UUID) ([]domain.RoomAssignment, error) {
	return m.listByRoom(ctx, tripID, roomID)
}
func (m *mockAssignmentServicer) ListByPerson(ctx context.Context, tripID, personID uuid.UUID) ([]domain.RoomAssignment, error) {
	return m.listByPerson(ctx, tripID, personID)
}
func (m *mockAssignmentServicer) HasConflict(ctx context.Context, tripID, personID uuid.UUID, start, end domain.Date, excludeID uuid.UUID) (bool, error) {
	return m.hasConflict(ctx, tripID, personID, start, end, excludeID)
}
func (m *mockAssignmentServicer) RoomOccupancy(ctx context.Context, tripID, roomID uuid.UUID, start, end domain.Date) (domain.RoomOccupancy, error) {
	return m.roomOccupancy(ctx, tripID, roomID, start, end)
}
func (m *mockAssignmentServicer) OccupantsOn(ctx context.Context, tripID, roomID uuid.UUID, night domain.Date) ([]domain.RoomAssignment, error) {
	return m.occupantsOn(ctx, tripID, roomID, night)
}

var _ handler.AssignmentServicer = (*mockAssignmentServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, tripID)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// serverMocks bundles the optional dependencies for a test Server.
// Leave what the test does not exercise as zero values.
type serverMocks struct {
	trips       *mockTripServicer
	persons     *mockPersonServicer
	rooms       *mockRoomServicer
	assignments *mockAssignmentServicer
	export      *mockExportServicer
	overview    *index.Index
}

// newHTTPHandler wires a Server with the given mocks into the chi router.
// This mirrors exactly how main.go wires it in production, minus the logger
// output.
func newHTTPHandler(m serverMocks) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := handler.NewServer(m.trips, m.persons, m.rooms, m.assignments, m.export, m.overview, logger)
	return srv.Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}
