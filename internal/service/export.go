package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pquist/bunkplan/backend/internal/domain"
	"github.com/pquist/bunkplan/backend/internal/repo"
)

// ExportService assembles a flat export of one trip's rooms and stays.
type ExportService struct {
	trips       repo.TripRepo
	rooms       repo.RoomRepo
	persons     repo.PersonRepo
	assignments repo.AssignmentRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, rooms repo.RoomRepo, persons repo.PersonRepo, assignments repo.AssignmentRepo) *ExportService {
	return &ExportService{trips: trips, rooms: rooms, persons: persons, assignments: assignments}
}

// Export returns one ExportRow per assignment of the trip, in room display
// order and then stay order. Rooms with no assignments contribute one row
// with empty stay fields, so the export always shows the full room list.
func (s *ExportService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	rooms, err := s.rooms.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	persons, err := s.persons.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	assignments, err := s.assignments.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	personName := make(map[uuid.UUID]string, len(persons))
	for _, p := range persons {
		personName[p.ID] = p.Name
	}
	byRoom := make(map[uuid.UUID][]domain.RoomAssignment)
	for _, a := range assignments {
		byRoom[a.RoomID] = append(byRoom[a.RoomID], a)
	}

	rows := make([]domain.ExportRow, 0, len(assignments))
	for _, room := range rooms {
		base := domain.ExportRow{
			TripID:       trip.ID.String(),
			TripName:     trip.Name,
			RoomID:       room.ID.String(),
			RoomName:     room.Name,
			RoomCapacity: room.Capacity,
		}
		stays := byRoom[room.ID]
		if len(stays) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, a := range stays {
			row := base
			row.PersonName = personName[a.PersonID]
			row.StartDate = a.StartDate.String()
			row.EndDate = a.EndDate.String()
			row.Nights = a.Nights()
			rows = append(rows, row)
		}
	}
	return rows, nil
}
