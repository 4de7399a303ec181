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

// AssignmentPatch carries the fields of a room assignment that an update may
// change. Nil pointers leave the stored value untouched; the merged result is
// re-validated against the start <= end invariant before anything is written.
type AssignmentPatch struct {
	RoomID    *uuid.UUID
	StartDate *domain.Date
	EndDate   *domain.Date
}

// AssignmentRepo defines the persistence operations for RoomAssignments.
//
// Create deliberately does not consult the conflict predicate: storage
// integrity (valid range, generated id) is the repo's job, double-booking
// policy is the caller's. All list operations return assignments ordered by
// start date ascending.
type AssignmentRepo interface {
	// Create inserts a new assignment and returns the persisted record with
	// its DB-generated id. Referencing a room or person that does not exist
	// returns domain.ErrValidation.
	Create(ctx context.Context, a domain.RoomAssignment) (domain.RoomAssignment, error)

	// GetByID retrieves an assignment by ID, scoped to the given tripID.
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.RoomAssignment, error)

	// ListByTrip returns every assignment of the trip.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.RoomAssignment, error)

	// ListByRoom returns the trip's assignments for one room.
	ListByRoom(ctx context.Context, tripID, roomID uuid.UUID) ([]domain.RoomAssignment, error)

	// ListByPerson returns the trip's assignments for one person.
	ListByPerson(ctx context.Context, tripID, personID uuid.UUID) ([]domain.RoomAssignment, error)

	// Update applies patch to the assignment inside one transaction: load the
	// row FOR UPDATE, verify trip ownership, merge, re-validate the date
	// range, write. Nothing outside the transaction can interleave between
	// the check and the write. Returns domain.ErrNotFound, domain.ErrOwnership,
	// or domain.ErrValidation; any failure leaves the row untouched.
	Update(ctx context.Context, tripID, id uuid.UUID, patch AssignmentPatch) (domain.RoomAssignment, error)

	// Delete removes an assignment after the same ownership check as Update.
	// Deleting an id that no longer exists is a no-op, not an error.
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

// pgAssignmentRepo is the Postgres implementation of AssignmentRepo.
type pgAssignmentRepo struct {
	db db
}

// NewAssignmentRepo constructs an AssignmentRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewAssignmentRepo(db db) AssignmentRepo {
	return &pgAssignmentRepo{db: db}
}

const assignmentColumns = `id, trip_id, room_id, person_id, start_date, end_date, created_at, updated_at`

func (r *pgAssignmentRepo) Create(ctx context.Context, a domain.RoomAssignment) (domain.RoomAssignment, error) {
	const q = `
		INSERT INTO room_assignments (trip_id, room_id, person_id, start_date, end_date)
		VALUES (@trip_id, @room_id, @person_id, @start_date, @end_date)
		RETURNING ` + assignmentColumns

	args := pgx.NamedArgs{
		"trip_id":    a.TripID,
		"room_id":    a.RoomID,
		"person_id":  a.PersonID,
		"start_date": a.StartDate.Time(),
		"end_date":   a.EndDate.Time(),
	}

	result, err := scanAssignment(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.RoomAssignment{}, fmt.Errorf("repo.AssignmentRepo.Create: %w", mapFKViolation(err))
	}
	return result, nil
}

func (r *pgAssignmentRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.RoomAssignment, error) {
	const q = `
		SELECT ` + assignmentColumns + `
		FROM room_assignments
		WHERE id = @id`

	a, err := scanAssignment(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.RoomAssignment{}, fmt.Errorf("repo.AssignmentRepo.GetByID: %w", err)
	}
	if err := verifyOwnership("assignment", a.TripID, tripID); err != nil {
		return domain.RoomAssignment{}, fmt.Errorf("repo.AssignmentRepo.GetByID: %w", err)
	}
	return a, nil
}

func (r *pgAssignmentRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.RoomAssignment, error) {
	const q = `
		SELECT ` + assignmentColumns + `
		FROM room_assignments
		WHERE trip_id = @trip_id
		ORDER BY start_date, id`

	return r.list(ctx, "ListByTrip", q, pgx.NamedArgs{"trip_id": tripID})
}

func (r *pgAssignmentRepo) ListByRoom(ctx context.Context, tripID, roomID uuid.UUID) ([]domain.RoomAssignment, error) {
	const q = `
		SELECT ` + assignmentColumns + `
		FROM room_assignments
		WHERE trip_id = @trip_id AND room_id = @room_id
		ORDER BY start_date, id`

	return r.list(ctx, "ListByRoom", q, pgx.NamedArgs{"trip_id": tripID, "room_id": roomID})
}

func (r *pgAssignmentRepo) ListByPerson(ctx context.Context, tripID, personID uuid.UUID) ([]domain.RoomAssignment, error) {
	const q = `
		SELECT ` + assignmentColumns + `
		FROM room_assignments
		WHERE trip_id = @trip_id AND person_id = @person_id
		ORDER BY start_date, id`

	return r.list(ctx, "ListByPerson", q, pgx.NamedArgs{"trip_id": tripID, "person_id": personID})
}

func (r *pgAssignmentRepo) list(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.RoomAssignment, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.AssignmentRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var out []domain.RoomAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.AssignmentRepo.%s: scan: %w", op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AssignmentRepo.%s: rows: %w", op, err)
	}

	return out, nil
}

func (r *pgAssignmentRepo) Update(ctx context.Context, tripID, id uuid.UUID, patch AssignmentPatch) (domain.RoomAssignment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.RoomAssignment{}, fmt.Errorf("repo.AssignmentRepo.Update: begin: %w", err)
	}
	defer rollback(ctx, tx)

	current, err := lockAssignment(ctx, tx, id)
	if err != nil {
		return domain.RoomAssignment{}, fmt.Errorf("repo.AssignmentRepo.Update: %w", err)
	}
	if err := verifyOwnership("assignment", current.TripID, tripID); err != nil {
		return domain.RoomAssignment{}, fmt.Errorf("repo.AssignmentRepo.Update: %w", err)
	}

	merged := current
	if patch.RoomID != nil {
		merged.RoomID = *patch.RoomID
	}
	if patch.StartDate != nil {
		merged.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		merged.EndDate = *patch.EndDate
	}
	if merged.StartDate > merged.EndDate {
		return domain.RoomAssignment{}, fmt.Errorf(
			"repo.AssignmentRepo.Update: %w: start date %s is after end date %s",
			domain.ErrValidation, merged.StartDate, merged.EndDate)
	}

	const q = `
		UPDATE room_assignments
		SET room_id    = @room_id,
		    start_date = @start_date,
		    end_date   = @end_date,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + assignmentColumns

	args := pgx.NamedArgs{
		"id":         merged.ID,
		"room_id":    merged.RoomID,
		"start_date": merged.StartDate.Time(),
		"end_date":   merged.EndDate.Time(),
	}

	result, err := scanAssignment(tx.QueryRow(ctx, q, args))
	if err != nil {
		return domain.RoomAssignment{}, fmt.Errorf("repo.AssignmentRepo.Update: %w", mapFKViolation(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.RoomAssignment{}, fmt.Errorf("repo.AssignmentRepo.Update: commit: %w", err)
	}
	return result, nil
}

func (r *pgAssignmentRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.AssignmentRepo.Delete: begin: %w", err)
	}
	defer rollback(ctx, tx)

	current, err := lockAssignment(ctx, tx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Idempotent: the record is already gone.
			return nil
		}
		return fmt.Errorf("repo.AssignmentRepo.Delete: %w", err)
	}
	if err := verifyOwnership("assignment", current.TripID, tripID); err != nil {
		return fmt.Errorf("repo.AssignmentRepo.Delete: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM room_assignments WHERE id = @id`,
		pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("repo.AssignmentRepo.Delete: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.AssignmentRepo.Delete: commit: %w", err)
	}
	return nil
}

// lockAssignment loads an assignment row FOR UPDATE so the ownership check
// and the mutation it guards see the same committed state.
func lockAssignment(ctx context.Context, tx pgx.Tx, id uuid.UUID) (domain.RoomAssignment, error) {
	const q = `
		SELECT ` + assignmentColumns + `
		FROM room_assignments
		WHERE id = @id
		FOR UPDATE`

	return scanAssignment(tx.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
}

// scanAssignment maps a single database row into a domain.RoomAssignment.
// The date columns come back as pgtype.Date and are re-encoded into the
// fixed-width string form the scheduling predicates compare.
func scanAssignment(s scanner) (domain.RoomAssignment, error) {
	var (
		a         domain.RoomAssignment
		id        pgtype.UUID
		tripID    pgtype.UUID
		roomID    pgtype.UUID
		personID  pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	err := s.Scan(&id, &tripID, &roomID, &personID, &startDate, &endDate,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RoomAssignment{}, domain.ErrNotFound
		}
		return domain.RoomAssignment{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.TripID = uuid.UUID(tripID.Bytes)
	a.RoomID = uuid.UUID(roomID.Bytes)
	a.PersonID = uuid.UUID(personID.Bytes)
	a.StartDate = domain.DateOf(startDate.Time)
	a.EndDate = domain.DateOf(endDate.Time)
	return a, nil
}
