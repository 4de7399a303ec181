package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pquist/bunkplan/backend/internal/domain"
)

// PersonRepo defines the persistence operations for Persons.
// All write and single-read operations are scoped by tripID to enforce ownership.
type PersonRepo interface {
	// Create inserts a new person and returns the persisted record.
	Create(ctx context.Context, person domain.Person) (domain.Person, error)

	// GetByID retrieves a person by ID, scoped to the given tripID.
	// Returns domain.ErrNotFound if absent, domain.ErrOwnership if the person
	// exists under a different trip.
	GetByID(ctx context.Context, tripID, personID uuid.UUID) (domain.Person, error)

	// ListByTrip returns all persons for a trip ordered by name ascending.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Person, error)

	// Update overwrites the person's name inside one transaction that first
	// verifies trip ownership.
	Update(ctx context.Context, person domain.Person) (domain.Person, error)

	// Delete removes a person and, in the same transaction, every room
	// assignment that references them. Returns domain.ErrNotFound if the
	// person does not exist, domain.ErrOwnership on a trip mismatch.
	Delete(ctx context.Context, tripID, personID uuid.UUID) error
}

// pgPersonRepo is the Postgres implementation of PersonRepo.
type pgPersonRepo struct {
	db db
}

// NewPersonRepo constructs a PersonRepo backed by the provided db connection.
func NewPersonRepo(db db) PersonRepo {
	return &pgPersonRepo{db: db}
}

func (r *pgPersonRepo) Create(ctx context.Context, person domain.Person) (domain.Person, error) {
	const q = `
		INSERT INTO persons (trip_id, name)
		VALUES (@trip_id, @name)
		RETURNING id, trip_id, name, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": person.TripID, "name": person.Name})
	result, err := scanPerson(row)
	if err != nil {
		return domain.Person{}, fmt.Errorf("repo.PersonRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPersonRepo) GetByID(ctx context.Context, tripID, personID uuid.UUID) (domain.Person, error) {
	const q = `
		SELECT id, trip_id, name, created_at, updated_at
		FROM persons
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": personID})
	p, err := scanPerson(row)
	if err != nil {
		return domain.Person{}, fmt.Errorf("repo.PersonRepo.GetByID: %w", err)
	}
	if err := verifyOwnership("person", p.TripID, tripID); err != nil {
		return domain.Person{}, fmt.Errorf("repo.PersonRepo.GetByID: %w", err)
	}
	return p, nil
}

func (r *pgPersonRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Person, error) {
	const q = `
		SELECT id, trip_id, name, created_at, updated_at
		FROM persons
		WHERE trip_id = @trip_id
		ORDER BY name, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.PersonRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var persons []domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PersonRepo.ListByTrip: scan: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PersonRepo.ListByTrip: rows: %w", err)
	}

	return persons, nil
}

func (r *pgPersonRepo) Update(ctx context.Context, person domain.Person) (domain.Person, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Person{}, fmt.Errorf("repo.PersonRepo.Update: begin: %w", err)
	}
	defer rollback(ctx, tx)

	current, err := lockPerson(ctx, tx, person.ID)
	if err != nil {
		return domain.Person{}, fmt.Errorf("repo.PersonRepo.Update: %w", err)
	}
	if err := verifyOwnership("person", current.TripID, person.TripID); err != nil {
		return domain.Person{}, fmt.Errorf("repo.PersonRepo.Update: %w", err)
	}

	const q = `
		UPDATE persons
		SET name       = @name,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, trip_id, name, created_at, updated_at`

	row := tx.QueryRow(ctx, q, pgx.NamedArgs{"id": person.ID, "name": person.Name})
	result, err := scanPerson(row)
	if err != nil {
		return domain.Person{}, fmt.Errorf("repo.PersonRepo.Update: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Person{}, fmt.Errorf("repo.PersonRepo.Update: commit: %w", err)
	}
	return result, nil
}

func (r *pgPersonRepo) Delete(ctx context.Context, tripID, personID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.PersonRepo.Delete: begin: %w", err)
	}
	defer rollback(ctx, tx)

	current, err := lockPerson(ctx, tx, personID)
	if err != nil {
		return fmt.Errorf("repo.PersonRepo.Delete: %w", err)
	}
	if err := verifyOwnership("person", current.TripID, tripID); err != nil {
		return fmt.Errorf("repo.PersonRepo.Delete: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM room_assignments WHERE person_id = @id`,
		pgx.NamedArgs{"id": personID}); err != nil {
		return fmt.Errorf("repo.PersonRepo.Delete: cascade: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM persons WHERE id = @id`,
		pgx.NamedArgs{"id": personID}); err != nil {
		return fmt.Errorf("repo.PersonRepo.Delete: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.PersonRepo.Delete: commit: %w", err)
	}
	return nil
}

// lockPerson loads a person row FOR UPDATE so the ownership check and the
// mutation it guards see the same committed state.
func lockPerson(ctx context.Context, tx pgx.Tx, id uuid.UUID) (domain.Person, error) {
	const q = `
		SELECT id, trip_id, name, created_at, updated_at
		FROM persons
		WHERE id = @id
		FOR UPDATE`

	return scanPerson(tx.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
}

// scanPerson maps a single database row into a domain.Person.
func scanPerson(s scanner) (domain.Person, error) {
	var (
		p      domain.Person
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Person{}, domain.ErrNotFound
		}
		return domain.Person{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	return p, nil
}
