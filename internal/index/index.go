// Package index maintains a derived, read-optimized view of one trip's room
// assignments: Room→stays and Person→stays lookup maps. It is never a source
// of truth — every rebuild re-reads the authoritative set and replaces the
// maps wholesale rather than patching them, so the view can never drift.
package index

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pquist/bunkplan/backend/internal/domain"
)

// Source supplies the authoritative assignment set the index is derived from.
// Satisfied by repo.AssignmentRepo.
type Source interface {
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.RoomAssignment, error)
}

// Index holds the latest rebuilt lookup maps for a single active trip.
// Lookups are O(1) against the last completed rebuild; a rebuild replaces
// both maps atomically under the lock.
//
// Scope changes discard everything: SetTrip clears the maps and bumps a
// generation counter. A rebuild fetch that was in flight when the scope
// changed discards its result on arrival instead of installing a stale
// cross-trip view.
type Index struct {
	src Source

	mu       sync.RWMutex
	tripID   uuid.UUID
	active   bool
	gen      uint64
	byRoom   map[uuid.UUID][]domain.RoomAssignment
	byPerson map[uuid.UUID][]domain.RoomAssignment
}

// New returns an Index with no active trip. Call SetTrip before reading.
func New(src Source) *Index {
	return &Index{src: src}
}

// Trip returns the active trip scope, if any.
func (ix *Index) Trip() (uuid.UUID, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.tripID, ix.active
}

// SetTrip switches the active trip scope and rebuilds synchronously.
// The old view is discarded before the fetch starts, so readers never see the
// previous trip's data under the new scope.
func (ix *Index) SetTrip(ctx context.Context, tripID uuid.UUID) error {
	ix.mu.Lock()
	ix.gen++
	gen := ix.gen
	ix.tripID = tripID
	ix.active = true
	ix.byRoom = nil
	ix.byPerson = nil
	ix.mu.Unlock()

	return ix.rebuild(ctx, tripID, gen)
}

// Refresh rebuilds the view for the current trip scope. It is a no-op when no
// trip is active.
func (ix *Index) Refresh(ctx context.Context) error {
	ix.mu.RLock()
	tripID, active, gen := ix.tripID, ix.active, ix.gen
	ix.mu.RUnlock()

	if !active {
		return nil
	}
	return ix.rebuild(ctx, tripID, gen)
}

// Run rebuilds on every change notification until ctx is cancelled.
// Wire notify to a service.Notifier subscription. Rebuild errors are
// swallowed here — the next notification retries — because a transient read
// failure must not kill the watcher.
func (ix *Index) Run(ctx context.Context, notify <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-notify:
			_ = ix.Refresh(ctx)
		}
	}
}

// ByRoom returns the room's assignments ordered by start date.
// The slice is a copy; callers may mutate it freely.
func (ix *Index) ByRoom(roomID uuid.UUID) []domain.RoomAssignment {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return copyStays(ix.byRoom[roomID])
}

// ByPerson returns the person's assignments ordered by start date.
// The slice is a copy; callers may mutate it freely.
func (ix *Index) ByPerson(personID uuid.UUID) []domain.RoomAssignment {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return copyStays(ix.byPerson[personID])
}

// rebuild fetches the trip's assignments and installs fresh maps, unless the
// scope generation moved while the fetch was in flight.
func (ix *Index) rebuild(ctx context.Context, tripID uuid.UUID, gen uint64) error {
	assignments, err := ix.src.ListByTrip(ctx, tripID)
	if err != nil {
		return fmt.Errorf("index.Index.rebuild: %w", err)
	}

	// ListByTrip returns stays in start-date order; grouping preserves it.
	byRoom := make(map[uuid.UUID][]domain.RoomAssignment)
	byPerson := make(map[uuid.UUID][]domain.RoomAssignment)
	for _, a := range assignments {
		byRoom[a.RoomID] = append(byRoom[a.RoomID], a)
		byPerson[a.PersonID] = append(byPerson[a.PersonID], a)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.gen != gen {
		// Scope changed mid-fetch; this result belongs to the old scope.
		return nil
	}
	ix.byRoom = byRoom
	ix.byPerson = byPerson
	return nil
}

func copyStays(in []domain.RoomAssignment) []domain.RoomAssignment {
	out := make([]domain.RoomAssignment, len(in))
	copy(out, in)
	return out
}
