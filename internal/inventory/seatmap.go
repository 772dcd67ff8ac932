package inventory

import (
	"sort"

	"github.com/aventra/activity-booking/internal/model"
)

// SlotKey identifies one schedule slot of an event.  It is the unit of
// mutual exclusion for seat-state mutations: the guard serializes all
// mutating operations per key and never across keys.
type SlotKey struct {
	EventID   uint64
	SlotIndex int
}

// SeatMap is the occupancy state of all seats for one schedule slot,
// held as an addressable table keyed by seat identity.  A SeatMap is
// not safe for concurrent use on its own; callers mutate it only while
// holding the slot's guard.
type SeatMap struct {
	key   SlotKey
	seats map[model.SeatID]*model.Seat
}

// NewSeatMap builds a seat map for the given slot from a snapshot of
// seat states.  The input slice is copied; later mutations of the map
// do not touch the caller's data.
func NewSeatMap(key SlotKey, seats []model.Seat) *SeatMap {
	m := &SeatMap{key: key, seats: make(map[model.SeatID]*model.Seat, len(seats))}
	for _, s := range seats {
		seat := s
		m.seats[seat.ID()] = &seat
	}
	return m
}

// Key returns the slot this map belongs to.
func (m *SeatMap) Key() SlotKey { return m.key }

// Len returns the number of seats in the layout.
func (m *SeatMap) Len() int { return len(m.seats) }

// IsAvailable reports whether the seat exists and is neither booked
// nor blocked.
func (m *SeatMap) IsAvailable(id model.SeatID) bool {
	s, ok := m.seats[id]
	return ok && !s.IsBooked && !s.IsBlocked
}

// Reserve atomically marks all requested seats as booked and returns a
// price-snapshot ticket per seat.  The operation is all-or-nothing: if
// any seat is missing, booked or blocked, no seat is mutated and a
// SeatConflictError lists exactly the unavailable seats.  Prices come
// from the slot's price table by seat type, falling back to the
// REGULAR entry when no type-specific price exists.
//
// An empty seat set is a validation error, as is a price table with no
// resolvable price for a requested seat's type.
func (m *SeatMap) Reserve(ids []model.SeatID, prices model.PriceTable) ([]model.Ticket, error) {
	if len(ids) == 0 {
		return nil, &ValidationError{Reason: "no seats requested"}
	}
	var unavailable []model.SeatID
	for _, id := range ids {
		if !m.IsAvailable(id) {
			unavailable = append(unavailable, id)
		}
	}
	if len(unavailable) > 0 {
		return nil, &SeatConflictError{Unavailable: unavailable}
	}
	tickets := make([]model.Ticket, 0, len(ids))
	for _, id := range ids {
		s := m.seats[id]
		cents, ok := prices.ForType(s.Type)
		if !ok {
			return nil, &ValidationError{Reason: "no price configured for seat type " + string(s.Type)}
		}
		tickets = append(tickets, model.Ticket{
			Row:        s.Row,
			SeatNumber: s.Number,
			SeatType:   s.Type,
			PriceCents: cents,
		})
	}
	// All checks passed; flip state in a second pass so a pricing
	// failure above leaves the map untouched.
	for _, id := range ids {
		m.seats[id].IsBooked = true
	}
	return tickets, nil
}

// Release marks the given seats as not booked.  Releasing a seat that
// is already free, or one that does not exist, is a no-op rather than
// an error, so compensating releases can be retried safely.
func (m *SeatMap) Release(ids []model.SeatID) {
	for _, id := range ids {
		if s, ok := m.seats[id]; ok {
			s.IsBooked = false
		}
	}
}

// BookedSeats returns the identities of all currently booked seats,
// ordered by row then number for deterministic output.
func (m *SeatMap) BookedSeats() []model.SeatID {
	var ids []model.SeatID
	for id, s := range m.seats {
		if s.IsBooked {
			ids = append(ids, id)
		}
	}
	sortSeatIDs(ids)
	return ids
}

// Seats returns a snapshot of all seat states ordered by row then
// number.
func (m *SeatMap) Seats() []model.Seat {
	out := make([]model.Seat, 0, len(m.seats))
	for _, s := range m.seats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Number < out[j].Number
	})
	return out
}

func sortSeatIDs(ids []model.SeatID) {
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Row != ids[j].Row {
			return ids[i].Row < ids[j].Row
		}
		return ids[i].Number < ids[j].Number
	})
}

// DedupeSeatIDs removes duplicate identities while preserving the
// first-seen order.  Booking requests may name the same seat twice;
// deduplicating up front keeps conflict reporting exact.
func DedupeSeatIDs(ids []model.SeatID) []model.SeatID {
	out := make([]model.SeatID, 0, len(ids))
	seen := make(map[model.SeatID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
