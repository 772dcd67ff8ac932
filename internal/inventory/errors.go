// Package inventory implements seat-inventory management for scheduled
// events: the per-slot seat map, the keyed guard that serializes seat
// mutations, and the reservation/cancellation workflow that keeps the
// seat map and the booking ledger consistent.  Error values defined
// here form the stable taxonomy that handlers translate into HTTP
// responses; storage detail never leaks past this package.
package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aventra/activity-booking/internal/model"
)

// ErrNotFound is returned when a referenced event, schedule slot or
// booking does not exist, or when a booking is not owned by the
// requester.  Handlers translate it into a 404 response.
var ErrNotFound = errors.New("not found")

// ErrInvalidState is returned when a status transition is attempted on
// a booking in a terminal state (already cancelled or refunded).
var ErrInvalidState = errors.New("invalid booking state")

// ErrAlreadyExists is returned when provisioning would overwrite
// existing state, such as generating a layout for a slot that already
// has one.
var ErrAlreadyExists = errors.New("already exists")

// ErrDuplicateCode is returned by the ledger when a freshly generated
// booking code collides with an existing one.  The workflow retries
// with a new code; the collision itself is astronomically rare.
var ErrDuplicateCode = errors.New("duplicate booking code")

// ValidationError marks a malformed request (empty seat set, unknown
// seat type).  It is raised before any lock is acquired.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// SeatConflictError reports that one or more requested seats are not
// available.  Unavailable lists exactly the contended seats so the
// caller can retry with an adjusted selection; no partial booking is
// ever created.
type SeatConflictError struct {
	Unavailable []model.SeatID
}

func (e *SeatConflictError) Error() string {
	labels := make([]string, 0, len(e.Unavailable))
	for _, id := range e.Unavailable {
		labels = append(labels, id.Label())
	}
	return "seats unavailable: " + strings.Join(labels, ",")
}

// PolicyError reports that a cancellation was attempted outside the
// allowed window or on a booking whose status does not permit it.  It
// is surfaced verbatim and never retried.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string { return "policy: " + e.Reason }

// PersistenceError wraps a transient storage failure during commit or
// rollback.  Callers see a generic message; the underlying cause is
// preserved for logging via Unwrap.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("persistence: %s failed", e.Op) }
func (e *PersistenceError) Unwrap() error { return e.Err }
