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

// RoomRepo defines the persistence operations for Rooms.
// All write and single-read operations are scoped by tripID to enforce ownership.
type RoomRepo interface {
	// Create inserts a new room at the end of the trip's display order and
	// returns the persisted record.
	Create(ctx context.Context, room domain.Room) (domain.Room, error)

	// GetByID retrieves a room by ID, scoped to the given tripID.
	// Returns domain.ErrNotFound if absent, domain.ErrOwnership if the room
	// exists under a different trip.
	GetByID(ctx context.Context, tripID, roomID uuid.UUID) (domain.Room, error)

	// ListByTrip returns all rooms for a trip ordered by position ascending.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Room, error)

	// Update overwrites the room's name and capacity inside one transaction
	// that first verifies trip ownership.
	Update(ctx context.Context, room domain.Room) (domain.Room, error)

	// Delete removes a room and, in the same transaction, every room
	// assignment that references it. Assignments of sibling rooms are
	// untouched. Returns domain.ErrNotFound if the room does not exist,
	// domain.ErrOwnership on a trip mismatch.
	Delete(ctx context.Context, tripID, roomID uuid.UUID) error

	// Reorder rewrites the display positions of a trip's rooms to match
	// orderedIDs. The list must be a permutation of the trip's current room
	// ids: duplicates, omissions, and foreign ids are rejected with
	// domain.ErrValidation and no position is changed.
	Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error
}

// pgRoomRepo is the Postgres implementation of RoomRepo.
type pgRoomRepo struct {
	db db
}

// NewRoomRepo constructs a RoomRepo backed by the provided db connection.
func NewRoomRepo(db db) RoomRepo {
	return &pgRoomRepo{db: db}
}

func (r *pgRoomRepo) Create(ctx context.Context, room domain.Room) (domain.Room, error) {
	const q = `
		INSERT INTO rooms (trip_id, name, capacity, position)
		VALUES (
			@trip_id, @name, @capacity,
			(SELECT COALESCE(MAX(position), -1) + 1 FROM rooms WHERE trip_id = @trip_id)
		)
		RETURNING id, trip_id, name, capacity, position, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id":  room.TripID,
		"name":     room.Name,
		"capacity": room.Capacity,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRoom(row)
	if err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgRoomRepo) GetByID(ctx context.Context, tripID, roomID uuid.UUID) (domain.Room, error) {
	const q = `
		SELECT id, trip_id, name, capacity, position, created_at, updated_at
		FROM rooms
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": roomID})
	room, err := scanRoom(row)
	if err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.GetByID: %w", err)
	}
	if err := verifyOwnership("room", room.TripID, tripID); err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.GetByID: %w", err)
	}
	return room, nil
}

func (r *pgRoomRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Room, error) {
	const q = `
		SELECT id, trip_id, name, capacity, position, created_at, updated_at
		FROM rooms
		WHERE trip_id = @trip_id
		ORDER BY position, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.RoomRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RoomRepo.ListByTrip: scan: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RoomRepo.ListByTrip: rows: %w", err)
	}

	return rooms, nil
}

func (r *pgRoomRepo) Update(ctx context.Context, room domain.Room) (domain.Room, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.Update: begin: %w", err)
	}
	defer rollback(ctx, tx)

	current, err := lockRoom(ctx, tx, room.ID)
	if err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.Update: %w", err)
	}
	if err := verifyOwnership("room", current.TripID, room.TripID); err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.Update: %w", err)
	}

	const q = `
		UPDATE rooms
		SET name       = @name,
		    capacity   = @capacity,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, trip_id, name, capacity, position, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":       room.ID,
		"name":     room.Name,
		"capacity": room.Capacity,
	}

	result, err := scanRoom(tx.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.Update: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.Update: commit: %w", err)
	}
	return result, nil
}

func (r *pgRoomRepo) Delete(ctx context.Context, tripID, roomID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.RoomRepo.Delete: begin: %w", err)
	}
	defer rollback(ctx, tx)

	current, err := lockRoom(ctx, tx, roomID)
	if err != nil {
		return fmt.Errorf("repo.RoomRepo.Delete: %w", err)
	}
	if err := verifyOwnership("room", current.TripID, tripID); err != nil {
		return fmt.Errorf("repo.RoomRepo.Delete: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM room_assignments WHERE room_id = @id`,
		pgx.NamedArgs{"id": roomID}); err != nil {
		return fmt.Errorf("repo.RoomRepo.Delete: cascade: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM rooms WHERE id = @id`,
		pgx.NamedArgs{"id": roomID}); err != nil {
		return fmt.Errorf("repo.RoomRepo.Delete: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.RoomRepo.Delete: commit: %w", err)
	}
	return nil
}

// Reorder validates against the trip's room set while holding row locks, so a
// concurrent room creation or deletion cannot slip between the check and the
// position rewrite.
func (r *pgRoomRepo) Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.RoomRepo.Reorder: begin: %w", err)
	}
	defer rollback(ctx, tx)

	rows, err := tx.Query(ctx, `SELECT id FROM rooms WHERE trip_id = @trip_id FOR UPDATE`,
		pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.RoomRepo.Reorder: lock: %w", err)
	}
	existing := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("repo.RoomRepo.Reorder: scan: %w", err)
		}
		existing[uuid.UUID(id.Bytes)] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("repo.RoomRepo.Reorder: rows: %w", err)
	}

	if err := validateRoomOrder(existing, orderedIDs); err != nil {
		return fmt.Errorf("repo.RoomRepo.Reorder: %w", err)
	}

	for pos, id := range orderedIDs {
		_, err := tx.Exec(ctx,
			`UPDATE rooms SET position = @position, updated_at = now() WHERE id = @id`,
			pgx.NamedArgs{"position": pos, "id": id})
		if err != nil {
			return fmt.Errorf("repo.RoomRepo.Reorder: write: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.RoomRepo.Reorder: commit: %w", err)
	}
	return nil
}

// validateRoomOrder checks that orderedIDs is exactly a permutation of the
// trip's current room ids.
func validateRoomOrder(existing map[uuid.UUID]bool, orderedIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return fmt.Errorf("%w: duplicate room id %s in order", domain.ErrValidation, id)
		}
		seen[id] = true
		if !existing[id] {
			return fmt.Errorf("%w: room %s does not belong to this trip", domain.ErrValidation, id)
		}
	}
	if len(orderedIDs) != len(existing) {
		return fmt.Errorf("%w: order lists %d of %d rooms", domain.ErrValidation, len(orderedIDs), len(existing))
	}
	return nil
}

// lockRoom loads a room row FOR UPDATE so the ownership check and the
// mutation it guards see the same committed state.
func lockRoom(ctx context.Context, tx pgx.Tx, id uuid.UUID) (domain.Room, error) {
	const q = `
		SELECT id, trip_id, name, capacity, position, created_at, updated_at
		FROM rooms
		WHERE id = @id
		FOR UPDATE`

	return scanRoom(tx.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
}

// scanRoom maps a single database row into a domain.Room.
func scanRoom(s scanner) (domain.Room, error) {
	var (
		room   domain.Room
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &room.Name, &room.Capacity, &room.Position,
		&room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Room{}, domain.ErrNotFound
		}
		return domain.Room{}, err
	}

	room.ID = uuid.UUID(id.Bytes)
	room.TripID = uuid.UUID(tripID.Bytes)
	return room, nil
}
