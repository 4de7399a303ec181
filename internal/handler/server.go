// Package handler implements the HTTP handlers for the Bunkplan API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, room.go, ...) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pquist/bunkplan/backend/internal/domain"
	"github.com/pquist/bunkplan/backend/internal/index"
	"github.com/pquist/bunkplan/backend/internal/repo"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PersonServicer defines the business operations the person handlers depend on.
type PersonServicer interface {
	Create(ctx context.Context, person domain.Person) (domain.Person, error)
	GetByID(ctx context.Context, tripID, personID uuid.UUID) (domain.Person, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Person, error)
	Update(ctx context.Context, person domain.Person) (domain.Person, error)
	Delete(ctx context.Context, tripID, personID uuid.UUID) error
}

// RoomServicer defines the business operations the room handlers depend on.
type RoomServicer interface {
	Create(ctx context.Context, room domain.Room) (domain.Room, error)
	GetByID(ctx context.Context, tripID, roomID uuid.UUID) (domain.Room, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Room, error)
	Update(ctx context.Context, room domain.Room) (domain.Room, error)
	Delete(ctx context.Context, tripID, roomID uuid.UUID) error
	Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error
}

// AssignmentServicer defines the business operations the assignment,
// conflict, and occupancy handlers depend on.
type AssignmentServicer interface {
	Create(ctx context.Context, a domain.RoomAssignment) (domain.RoomAssignment, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.RoomAssignment, error)
	Update(ctx context.Context, tripID, id uuid.UUID, patch repo.AssignmentPatch) (domain.RoomAssignment, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.RoomAssignment, error)
	ListByRoom(ctx context.Context, tripID, roomID uuid.UUID) ([]domain.RoomAssignment, error)
	ListByPerson(ctx context.Context, tripID, personID uuid.UUID) ([]domain.RoomAssignment, error)
	HasConflict(ctx context.Context, tripID, personID uuid.UUID, start, end domain.Date, excludeID uuid.UUID) (bool, error)
	RoomOccupancy(ctx context.Context, tripID, roomID uuid.UUID, start, end domain.Date) (domain.RoomOccupancy, error)
	OccupantsOn(ctx context.Context, tripID, roomID uuid.UUID, night domain.Date) ([]domain.RoomAssignment, error)
}

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips       TripServicer
	persons     PersonServicer
	rooms       RoomServicer
	assignments AssignmentServicer
	export      ExportServicer
	overview    *index.Index
	logger      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// overview may be nil; the overview endpoint then responds 500.
func NewServer(
	trips TripServicer,
	persons PersonServicer,
	rooms RoomServicer,
	assignments AssignmentServicer,
	export ExportServicer,
	overview *index.Index,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		trips:       trips,
		persons:     persons,
		rooms:       rooms,
		assignments: assignments,
		export:      export,
		overview:    overview,
		logger:      logger,
	}
}

// Routes returns the chi router with every API endpoint mounted.
// All trip-scoped routes carry {tripID}; handlers pass it down so the service
// and repo layers can enforce ownership.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Get("/overview", s.GetTripOverview)
			r.Get("/export", s.GetTripExport)

			r.Route("/persons", func(r chi.Router) {
				r.Post("/", s.CreatePerson)
				r.Get("/", s.ListPersons)
				r.Get("/{personID}", s.GetPerson)
				r.Put("/{personID}", s.UpdatePerson)
				r.Delete("/{personID}", s.DeletePerson)
				r.Get("/{personID}/conflict", s.GetPersonConflict)
			})

			r.Route("/rooms", func(r chi.Router) {
				r.Post("/", s.CreateRoom)
				r.Get("/", s.ListRooms)
				r.Put("/order", s.ReorderRooms)
				r.Get("/{roomID}", s.GetRoom)
				r.Put("/{roomID}", s.UpdateRoom)
				r.Delete("/{roomID}", s.DeleteRoom)
				r.Get("/{roomID}/occupancy", s.GetRoomOccupancy)
				r.Get("/{roomID}/occupants", s.GetRoomOccupants)
			})

			r.Route("/assignments", func(r chi.Router) {
				r.Post("/", s.CreateAssignment)
				r.Get("/", s.ListAssignments)
				r.Get("/{assignmentID}", s.GetAssignment)
				r.Put("/{assignmentID}", s.UpdateAssignment)
				r.Delete("/{assignmentID}", s.DeleteAssignment)
			})
		})
	})

	return r
}
