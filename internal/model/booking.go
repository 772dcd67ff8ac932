package model

import "time"

// BookingStatus enumerates the lifecycle states of a booking.  A
// booking is created CONFIRMED (payment is a synchronous pass-through)
// or PENDING, moves to CANCELLED when the requester cancels, and
// REFUNDED is terminal.  Bookings are never physically deleted;
// cancellation is a status change so history is preserved.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingPending   BookingStatus = "PENDING"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingRefunded  BookingStatus = "REFUNDED"
)

// Cancellable reports whether a booking in status s may still be
// cancelled.  CANCELLED and REFUNDED are terminal.
func (s BookingStatus) Cancellable() bool {
	return s == BookingConfirmed || s == BookingPending
}

// Ticket is the per-seat price snapshot owned by a booking.  The price
// is fixed at reservation time and is independent of later price
// table changes.
type Ticket struct {
	Row        string   `json:"row"`         // booking_tickets.row_label
	SeatNumber uint32   `json:"seat_number"` // booking_tickets.seat_number
	SeatType   SeatType `json:"seat_type"`   // booking_tickets.seat_type
	PriceCents uint32   `json:"price_cents"` // booking_tickets.price_cents
}

// SeatID returns the identity of the seat this ticket was sold for.
func (t Ticket) SeatID() SeatID {
	return SeatID{Row: t.Row, Number: t.SeatNumber}
}

// ContactInfo carries the contact details supplied with a booking.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Booking records a requester's purchase of one or more seats for a
// single schedule slot.  SlotStartsAt is a snapshot of the slot's
// start time taken at booking time; the cancellation window policy is
// evaluated against it.  Seats are referenced by identity through the
// owned Ticket snapshots; the booking does not own the seats
// themselves.
//
// Fields:
//
//	ID               – primary key identifier.
//	Code             – unique human-readable booking code, e.g. "BKG-7F2A9C01DD".
//	RequesterID      – authenticated requester who made the booking.
//	EventID          – event being booked.
//	SlotIndex        – schedule slot within the event.
//	SlotStartsAt     – slot start time snapshot in UTC.
//	Tickets          – per-seat price snapshots.
//	TotalAmountCents – sum of ticket prices in cents.
//	Status           – lifecycle state.
//	Contact          – contact details supplied by the requester.
//	CreatedAt        – creation timestamp.
//	UpdatedAt        – last update timestamp.
type Booking struct {
	ID               uint64        `json:"-"`
	Code             string        `json:"booking_code"`
	RequesterID      uint64        `json:"-"`
	EventID          uint64        `json:"event_id"`
	SlotIndex        int           `json:"slot_index"`
	SlotStartsAt     time.Time     `json:"slot_starts_at"`
	Tickets          []Ticket      `json:"tickets"`
	TotalAmountCents uint32        `json:"total_amount_cents"`
	Status           BookingStatus `json:"status"`
	Contact          ContactInfo   `json:"contact"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"-"`
}

// SeatIDs returns the identities of all seats referenced by the
// booking's tickets, in ticket order.
func (b *Booking) SeatIDs() []SeatID {
	ids := make([]SeatID, 0, len(b.Tickets))
	for _, t := range b.Tickets {
		ids = append(ids, t.SeatID())
	}
	return ids
}
