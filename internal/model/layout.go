package model

import "fmt"

// Layout is the full seat grid of one schedule slot.  It is generated
// once from the venue dimensions when the event is created and is
// exclusively owned by its event.  Occupancy state lives on the
// individual seats.
type Layout struct {
	EventID     uint64 `json:"event_id"`
	SlotIndex   int    `json:"slot_index"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seats_per_row"`
	Seats       []Seat `json:"seats"`
}

// Validate checks the structural invariants of a layout: every seat
// identity is unique and the seat count equals rows × seatsPerRow.
func (l *Layout) Validate() error {
	want := l.Rows * l.SeatsPerRow
	if len(l.Seats) != want {
		return fmt.Errorf("layout has %d seats, expected %d (%d rows × %d)",
			len(l.Seats), want, l.Rows, l.SeatsPerRow)
	}
	seen := make(map[SeatID]struct{}, len(l.Seats))
	for _, s := range l.Seats {
		id := s.ID()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate seat identity %s", id.Label())
		}
		seen[id] = struct{}{}
	}
	return nil
}
