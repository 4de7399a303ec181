// Package repo contains all database access logic for the Bunkplan API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL, transactions, and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pquist/bunkplan/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
//
// Begin is included because every ownership-checked mutation runs its
// read-to-decide and its write as one transaction; when the db is already a
// pgx.Tx, Begin nests via a savepoint, so the pattern works in tests too.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scanX
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// verifyOwnership returns ErrOwnership when an entity's trip differs from the
// trip the caller asserts. Every mutating operation funnels through this one
// helper so the check cannot drift between entity types.
func verifyOwnership(entity string, got, asserted uuid.UUID) error {
	if got != asserted {
		return fmt.Errorf("%w: %s belongs to a different trip", domain.ErrOwnership, entity)
	}
	return nil
}

// rollback discards tx, ignoring the error pgx returns when the transaction
// already committed. Deferred by every transactional repo method.
func rollback(ctx context.Context, tx pgx.Tx) {
	_ = tx.Rollback(ctx)
}

// pgForeignKeyViolation is Postgres error class 23, code 503.
const pgForeignKeyViolation = "23503"

// mapFKViolation converts a Postgres foreign-key violation into ErrValidation:
// the caller referenced a room or person that does not exist, which is bad
// input, not a storage fault. Any other error passes through unchanged.
func mapFKViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return fmt.Errorf("%w: referenced %s does not exist", domain.ErrValidation, fkEntity(pgErr.ConstraintName))
	}
	return err
}

// fkEntity names the referenced entity from a room_assignments FK constraint.
func fkEntity(constraint string) string {
	switch {
	case strings.Contains(constraint, "room_id"):
		return "room"
	case strings.Contains(constraint, "person_id"):
		return "person"
	case strings.Contains(constraint, "trip_id"):
		return "trip"
	}
	return "record"
}
