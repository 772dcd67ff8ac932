package inventory

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/aventra/activity-booking/internal/model"
	"github.com/aventra/activity-booking/internal/utils"
)

// Catalog supplies read-only event and schedule data at booking time.
// Implementations return ErrNotFound when the event or slot does not
// exist.
type Catalog interface {
	Slot(ctx context.Context, eventID uint64, slotIndex int) (*model.ScheduleSlot, error)
}

// SeatStore is the durable home of per-slot seat occupancy.  LoadSeatMap
// returns the current state of every seat in the slot's layout;
// SetBooked persists a booked-flag change for the given seats.  Both
// are called only while the slot's guard is held, except for read-only
// availability views.
type SeatStore interface {
	LoadSeatMap(ctx context.Context, key SlotKey) (*SeatMap, error)
	SetBooked(ctx context.Context, key SlotKey, seats []model.SeatID, booked bool) error
}

// Ledger is the durable, queryable store of bookings.  Create fails
// with ErrDuplicateCode on a booking-code collision; lookups are
// scoped to the requester so one requester can never retrieve
// another's booking.  MarkCancelled rejects terminal states with
// ErrInvalidState.
type Ledger interface {
	Create(ctx context.Context, b *model.Booking) error
	ByCode(ctx context.Context, code string, requesterID uint64) (*model.Booking, error)
	ListByRequester(ctx context.Context, requesterID uint64) ([]model.Booking, error)
	MarkCancelled(ctx context.Context, code string) error
}

// ReconcileSink receives seats whose compensating release could not be
// completed and must be fixed up manually.  Implementations must not
// block the request path; publishing to a queue or logging both
// qualify.
type ReconcileSink interface {
	FlagSeats(ctx context.Context, key SlotKey, seats []model.SeatID, cause error)
}

// WorkflowConfig tunes the policy knobs of the booking workflow.
type WorkflowConfig struct {
	// CancelWindow is the minimum time before slot start at which a
	// booking may still be cancelled.  Zero means the 24h default.
	CancelWindow time.Duration
	// ReleaseRetries bounds the compensating-release attempts made
	// when a commit has to be rolled back.  Zero means 3.
	ReleaseRetries int
	// CodeRetries bounds retries on booking-code collisions.  Zero
	// means 3.
	CodeRetries int
}

const (
	defaultCancelWindow   = 24 * time.Hour
	defaultReleaseRetries = 3
	defaultCodeRetries    = 3
)

// Workflow orchestrates availability check, price calculation and
// commit/rollback across the seat map and the booking ledger.  All
// seat-state mutations for a slot happen while that slot's guard is
// held, so concurrent bookings of overlapping seats resolve to exactly
// one winner per seat.
type Workflow struct {
	catalog   Catalog
	seats     SeatStore
	ledger    Ledger
	guard     *Guard
	reconcile ReconcileSink
	cfg       WorkflowConfig

	// Now is the clock used for policy checks; tests may replace it.
	Now func() time.Time
}

// NewWorkflow wires a workflow from its collaborators.  catalog, seats
// and ledger must be non-nil; reconcile may be nil, in which case
// unreconcilable seats are only logged.
func NewWorkflow(catalog Catalog, seats SeatStore, ledger Ledger, guard *Guard, reconcile ReconcileSink, cfg WorkflowConfig) *Workflow {
	if catalog == nil || seats == nil || ledger == nil || guard == nil {
		panic("nil dependency passed to NewWorkflow")
	}
	if cfg.CancelWindow <= 0 {
		cfg.CancelWindow = defaultCancelWindow
	}
	if cfg.ReleaseRetries <= 0 {
		cfg.ReleaseRetries = defaultReleaseRetries
	}
	if cfg.CodeRetries <= 0 {
		cfg.CodeRetries = defaultCodeRetries
	}
	return &Workflow{
		catalog:   catalog,
		seats:     seats,
		ledger:    ledger,
		guard:     guard,
		reconcile: reconcile,
		cfg:       cfg,
		Now:       time.Now,
	}
}

// BookSeats reserves the requested seats of one schedule slot for the
// requester and records the booking.  The sequence is: validate the
// request, load the slot, acquire the slot guard, reserve the seats in
// the seat map (all-or-nothing), write the ledger entry, persist the
// seat mutation, release the guard.
//
// On a seat conflict the specific unavailable seats are returned and
// nothing is mutated.  If the ledger write or the seat persistence
// fails after the reservation succeeded, the seat mutation is rolled
// back before the guard is released so no seat stays booked without a
// ledger entry; if the rollback itself keeps failing the seats are
// flagged for manual reconciliation rather than left silently
// inconsistent.
func (w *Workflow) BookSeats(ctx context.Context, eventID uint64, slotIndex int, seatIDs []model.SeatID, requesterID uint64, contact model.ContactInfo) (*model.Booking, error) {
	seatIDs = DedupeSeatIDs(seatIDs)
	if len(seatIDs) == 0 {
		return nil, &ValidationError{Reason: "no seats requested"}
	}
	for _, id := range seatIDs {
		if strings.TrimSpace(id.Row) == "" || id.Number == 0 {
			return nil, &ValidationError{Reason: "seat identity requires a row label and a positive number"}
		}
	}

	slot, err := w.catalog.Slot(ctx, eventID, slotIndex)
	if err != nil {
		return nil, err
	}

	key := SlotKey{EventID: eventID, SlotIndex: slotIndex}
	release, err := w.guard.Acquire(ctx, key)
	if err != nil {
		return nil, err
	}
	defer release()

	sm, err := w.seats.LoadSeatMap(ctx, key)
	if err != nil {
		return nil, &PersistenceError{Op: "load seat map", Err: err}
	}

	tickets, err := sm.Reserve(seatIDs, slot.Prices)
	if err != nil {
		return nil, err
	}

	var total uint32
	for _, t := range tickets {
		total += t.PriceCents
	}

	now := w.Now().UTC()
	booking := &model.Booking{
		RequesterID:      requesterID,
		EventID:          eventID,
		SlotIndex:        slotIndex,
		SlotStartsAt:     slot.StartsAt,
		Tickets:          tickets,
		TotalAmountCents: total,
		Status:           model.BookingConfirmed,
		Contact:          contact,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := w.createWithFreshCode(ctx, booking); err != nil {
		// Nothing durable changed yet; the in-memory reservation is
		// discarded with the map.  Release explicitly anyway so a
		// shared SeatStore implementation observes free seats.
		w.rollbackSeats(ctx, key, seatIDs)
		return nil, &PersistenceError{Op: "write booking ledger", Err: err}
	}

	if err := w.seats.SetBooked(ctx, key, seatIDs, true); err != nil {
		w.rollbackSeats(ctx, key, seatIDs)
		if verr := w.ledger.MarkCancelled(ctx, booking.Code); verr != nil {
			log.Printf("workflow: void booking %s after failed seat persist: %v", booking.Code, verr)
			w.flagReconcile(ctx, key, seatIDs, verr)
		}
		return nil, &PersistenceError{Op: "persist seat map", Err: err}
	}

	return booking, nil
}

// CancelBooking releases the booking's seats and marks the ledger
// entry cancelled, subject to the time-based policy: cancellation is
// rejected once the slot starts in less than the cancel window, or
// when the booking is already in a terminal state.  Seat release and
// the status change form a single atomic unit: if the seat-map
// persistence fails the ledger is left untouched, and if the status
// change fails the seat release is compensated.
func (w *Workflow) CancelBooking(ctx context.Context, code string, requesterID uint64) (*model.Booking, error) {
	booking, err := w.ledger.ByCode(ctx, code, requesterID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.Cancellable() {
		return nil, &PolicyError{Reason: "booking is " + strings.ToLower(string(booking.Status))}
	}
	now := w.Now().UTC()
	if booking.SlotStartsAt.Sub(now) < w.cfg.CancelWindow {
		return nil, &PolicyError{Reason: "cancellation window closed"}
	}

	key := SlotKey{EventID: booking.EventID, SlotIndex: booking.SlotIndex}
	seatIDs := booking.SeatIDs()

	release, err := w.guard.Acquire(ctx, key)
	if err != nil {
		return nil, err
	}
	defer release()

	sm, err := w.seats.LoadSeatMap(ctx, key)
	if err != nil {
		return nil, &PersistenceError{Op: "load seat map", Err: err}
	}
	sm.Release(seatIDs)

	if err := w.seats.SetBooked(ctx, key, seatIDs, false); err != nil {
		// Ledger untouched: both or neither.
		return nil, &PersistenceError{Op: "persist seat release", Err: err}
	}

	if err := w.ledger.MarkCancelled(ctx, code); err != nil {
		if errors.Is(err, ErrInvalidState) {
			// A concurrent cancellation won the race: the entry is
			// already terminal and the seats are legitimately free,
			// so the released state is consistent as-is.
			return nil, &PolicyError{Reason: "booking is no longer cancellable"}
		}
		w.rebookSeats(ctx, key, seatIDs)
		return nil, &PersistenceError{Op: "mark booking cancelled", Err: err}
	}

	booking.Status = model.BookingCancelled
	booking.UpdatedAt = now
	return booking, nil
}

// SlotSeats returns a read-only snapshot of the slot's seat states for
// availability views.  No guard is taken: readers see the last fully
// committed state.
func (w *Workflow) SlotSeats(ctx context.Context, eventID uint64, slotIndex int) ([]model.Seat, error) {
	if _, err := w.catalog.Slot(ctx, eventID, slotIndex); err != nil {
		return nil, err
	}
	sm, err := w.seats.LoadSeatMap(ctx, SlotKey{EventID: eventID, SlotIndex: slotIndex})
	if err != nil {
		return nil, &PersistenceError{Op: "load seat map", Err: err}
	}
	return sm.Seats(), nil
}

// createWithFreshCode writes the booking, regenerating the code on the
// rare collision.
func (w *Workflow) createWithFreshCode(ctx context.Context, booking *model.Booking) error {
	var err error
	for attempt := 0; attempt < w.cfg.CodeRetries; attempt++ {
		booking.Code, err = utils.NewBookingCode()
		if err != nil {
			return err
		}
		err = w.ledger.Create(ctx, booking)
		if err == nil || !errors.Is(err, ErrDuplicateCode) {
			return err
		}
	}
	return err
}

// rollbackSeats performs the compensating release after a failed
// commit, retrying a bounded number of times before flagging the seats
// for manual reconciliation.
func (w *Workflow) rollbackSeats(ctx context.Context, key SlotKey, seatIDs []model.SeatID) {
	var err error
	for attempt := 0; attempt < w.cfg.ReleaseRetries; attempt++ {
		if err = w.seats.SetBooked(ctx, key, seatIDs, false); err == nil {
			return
		}
	}
	log.Printf("workflow: compensating release failed for event=%d slot=%d after %d attempts: %v",
		key.EventID, key.SlotIndex, w.cfg.ReleaseRetries, err)
	w.flagReconcile(ctx, key, seatIDs, err)
}

// rebookSeats re-marks seats booked when a cancellation has to be
// unwound after the release was already persisted.
func (w *Workflow) rebookSeats(ctx context.Context, key SlotKey, seatIDs []model.SeatID) {
	var err error
	for attempt := 0; attempt < w.cfg.ReleaseRetries; attempt++ {
		if err = w.seats.SetBooked(ctx, key, seatIDs, true); err == nil {
			return
		}
	}
	log.Printf("workflow: cancellation unwind failed for event=%d slot=%d after %d attempts: %v",
		key.EventID, key.SlotIndex, w.cfg.ReleaseRetries, err)
	w.flagReconcile(ctx, key, seatIDs, err)
}

func (w *Workflow) flagReconcile(ctx context.Context, key SlotKey, seatIDs []model.SeatID, cause error) {
	if w.reconcile == nil {
		labels := make([]string, 0, len(seatIDs))
		for _, id := range seatIDs {
			labels = append(labels, id.Label())
		}
		log.Printf("workflow: seats need manual reconciliation event=%d slot=%d seats=%s cause=%v",
			key.EventID, key.SlotIndex, strings.Join(labels, ","), cause)
		return
	}
	w.reconcile.FlagSeats(ctx, key, seatIDs, cause)
}
