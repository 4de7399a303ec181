package schedule

import (
	"github.com/google/uuid"

	"github.com/pquist/bunkplan/backend/internal/domain"
)

// HasConflict reports whether the proposed stay [start, end] conflicts with
// any of the person's existing assignments under the closed-interval rule.
//
// excludeID skips one assignment, used when re-checking an edit against
// itself; pass uuid.Nil to check against all. An excludeID that matches
// nothing has no effect. A person with zero assignments never conflicts.
//
// The result is advisory: callers decide whether to block, warn, or ignore.
func HasConflict(existing []domain.RoomAssignment, start, end domain.Date, excludeID uuid.UUID) bool {
	for _, a := range existing {
		if a.ID == excludeID {
			continue
		}
		if StaysConflict(a.StartDate, a.EndDate, start, end) {
			return true
		}
	}
	return false
}
