package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pquist/bunkplan/backend/internal/domain"
	"github.com/pquist/bunkplan/backend/internal/repo"
)

// PersonService implements business logic for Person operations.
type PersonService struct {
	persons  repo.PersonRepo
	trips    repo.TripRepo
	notifier *Notifier
}

// NewPersonService constructs a PersonService backed by the provided repos.
func NewPersonService(persons repo.PersonRepo, trips repo.TripRepo, notifier *Notifier) *PersonService {
	return &PersonService{persons: persons, trips: trips, notifier: notifier}
}

// Create validates the person, verifies the parent trip exists, then persists.
func (s *PersonService) Create(ctx context.Context, person domain.Person) (domain.Person, error) {
	if _, err := s.trips.GetByID(ctx, person.TripID); err != nil {
		return domain.Person{}, fmt.Errorf("service.PersonService.Create: %w", err)
	}
	if err := validatePerson(person); err != nil {
		return domain.Person{}, err
	}
	created, err := s.persons.Create(ctx, person)
	if err != nil {
		return domain.Person{}, fmt.Errorf("service.PersonService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single person, scoped to the given trip.
func (s *PersonService) GetByID(ctx context.Context, tripID, personID uuid.UUID) (domain.Person, error) {
	person, err := s.persons.GetByID(ctx, tripID, personID)
	if err != nil {
		return domain.Person{}, fmt.Errorf("service.PersonService.GetByID: %w", err)
	}
	return person, nil
}

// ListByTrip returns all persons for a trip ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PersonService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Person, error) {
	persons, err := s.persons.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PersonService.ListByTrip: %w", err)
	}
	if persons == nil {
		return []domain.Person{}, nil
	}
	return persons, nil
}

// Update validates and persists changes to an existing person.
func (s *PersonService) Update(ctx context.Context, person domain.Person) (domain.Person, error) {
	if err := validatePerson(person); err != nil {
		return domain.Person{}, err
	}
	updated, err := s.persons.Update(ctx, person)
	if err != nil {
		return domain.Person{}, fmt.Errorf("service.PersonService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a person and cascades their assignments; the assignment set
// changed, so subscribers are notified.
func (s *PersonService) Delete(ctx context.Context, tripID, personID uuid.UUID) error {
	if err := s.persons.Delete(ctx, tripID, personID); err != nil {
		return fmt.Errorf("service.PersonService.Delete: %w", err)
	}
	if s.notifier != nil {
		s.notifier.Publish()
	}
	return nil
}

func validatePerson(person domain.Person) error {
	if strings.TrimSpace(person.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return nil
}
