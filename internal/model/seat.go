package model

import "strconv"

// SeatType classifies a seat for pricing purposes.  The type of a seat
// is assigned when a slot layout is generated and drives the price
// table lookup at reservation time.
type SeatType string

const (
	SeatTypeRegular SeatType = "REGULAR" // standard seating
	SeatTypePremium SeatType = "PREMIUM" // front rows, premium price
	SeatTypeVIP     SeatType = "VIP"     // rear rows, highest tier
)

// ValidSeatType reports whether t is one of the known seat types.
func ValidSeatType(t SeatType) bool {
	switch t {
	case SeatTypeRegular, SeatTypePremium, SeatTypeVIP:
		return true
	}
	return false
}

// SeatID identifies a seat within one schedule slot's layout.  The
// pair (row label, seat number) is unique per layout and is the only
// way bookings reference seats.
type SeatID struct {
	Row    string `json:"row"`    // row label, e.g. "A"
	Number uint32 `json:"number"` // 1-based position within the row
}

// Label renders the seat identity in the compact form shown to users,
// e.g. "A12".
func (id SeatID) Label() string {
	return id.Row + strconv.FormatUint(uint64(id.Number), 10)
}

// Seat describes one addressable seat in a slot's layout together
// with its occupancy state.  IsBooked is the single source of truth
// for sale status and is mutated only under the slot guard.  IsBlocked
// marks seats withheld from sale outside the booking flow (holds,
// maintenance); the booking workflow never sets it.
type Seat struct {
	Row       string   `json:"row"`        // slot_seats.row_label
	Number    uint32   `json:"number"`     // slot_seats.seat_number
	Type      SeatType `json:"type"`       // slot_seats.seat_type
	IsBooked  bool     `json:"is_booked"`  // slot_seats.is_booked
	IsBlocked bool     `json:"is_blocked"` // slot_seats.is_blocked
}

// ID returns the seat's identity within its layout.
func (s Seat) ID() SeatID {
	return SeatID{Row: s.Row, Number: s.Number}
}
