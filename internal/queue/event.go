// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// Queue names used by the booking service.  All queues are declared
// durable and messages are published persistent.
const (
	BookingConfirmedQueue = "booking.confirmed"
	BookingCancelledQueue = "booking.cancelled"
	SeatReconcileQueue    = "seat.reconcile"
)

// BookingConfirmedEvent is published when a booking commits.  It carries
// enough information for downstream consumers to log, notify, or feed
// analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingCode      string   `json:"booking_code"`
	RequesterID      uint64   `json:"requester_id"`
	EventID          uint64   `json:"event_id"`
	SlotIndex        int      `json:"slot_index"`
	SlotStartsAt     string   `json:"slot_starts_at"`
	SeatLabels       []string `json:"seats"`
	TotalAmountCents uint32   `json:"total_amount_cents"`
	ConfirmedAt      string   `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a booking is cancelled and
// its seats return to the pool.
type BookingCancelledEvent struct {
	BookingCode string   `json:"booking_code"`
	RequesterID uint64   `json:"requester_id"`
	EventID     uint64   `json:"event_id"`
	SlotIndex   int      `json:"slot_index"`
	SeatLabels  []string `json:"seats"`
	CancelledAt string   `json:"cancelled_at"`
}

// SeatReconcileEvent flags seats whose compensating release could not
// be completed after bounded retries.  Operators consume this queue to
// fix the affected seats by hand instead of leaving them silently
// inconsistent.
type SeatReconcileEvent struct {
	EventID    uint64   `json:"event_id"`
	SlotIndex  int      `json:"slot_index"`
	SeatLabels []string `json:"seats"`
	Cause      string   `json:"cause"`
	FlaggedAt  string   `json:"flagged_at"`
}
