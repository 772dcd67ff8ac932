package model

import "time"

// Event represents one bookable activity in the catalog.  The catalog
// itself is maintained elsewhere; at booking time events and their
// schedule slots are read-only reference data.
//
// Fields:
//
//	ID          – primary key identifier.
//	Title       – event title.
//	Description – free-form description shown in listings.
//	Location    – venue address or name.
//	Rows        – number of seat rows in the venue layout.
//	SeatsPerRow – seats per row in the venue layout.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type Event struct {
	ID          uint64    // events.id
	Title       string    // events.title
	Description string    // events.description
	Location    string    // events.location
	Rows        int       // events.layout_rows
	SeatsPerRow int       // events.layout_seats_per_row
	CreatedAt   time.Time // events.created_at
	UpdatedAt   time.Time // events.updated_at
}

// PriceTable maps seat types to their price in cents for one schedule
// slot.  A table must always carry a REGULAR entry; other types fall
// back to the REGULAR price when absent.
type PriceTable map[SeatType]uint32

// ForType resolves the price for a seat type, falling back to the
// REGULAR entry when no type-specific price is configured.
func (p PriceTable) ForType(t SeatType) (uint32, bool) {
	if cents, ok := p[t]; ok {
		return cents, true
	}
	cents, ok := p[SeatTypeRegular]
	return cents, ok
}

// ScheduleSlot is one dated occurrence of an event.  An event owns an
// ordered sequence of slots; the position in that sequence (Index) is
// the slot's identity together with the event ID.  Each slot carries
// its own price table and its own seat occupancy state.
//
// Fields:
//
//	EventID     – owning event.
//	Index       – 0-based position in the event's slot sequence.
//	StartsAt    – slot start in UTC.
//	DurationMin – duration in minutes.
//	Prices      – per-seat-type price table in cents.
type ScheduleSlot struct {
	EventID     uint64     // schedule_slots.event_id
	Index       int        // schedule_slots.slot_index
	StartsAt    time.Time  // schedule_slots.starts_at
	DurationMin int        // schedule_slots.duration_min
	Prices      PriceTable // schedule_slots.price_*_cents
}
