package inventory

import (
	"fmt"

	"github.com/aventra/activity-booking/internal/model"
)

// RowBands maps row ordinals to seat types when a layout is generated.
// The assignment is deployment policy, not structure: the defaults put
// premium seating in the first three rows, regular in rows four to
// seven, and VIP everywhere behind, but operators can reshape the
// bands through configuration.
type RowBands struct {
	PremiumThrough int // last 1-based row ordinal that is PREMIUM
	RegularThrough int // last 1-based row ordinal that is REGULAR
}

// DefaultRowBands is the policy applied when none is configured.
var DefaultRowBands = RowBands{PremiumThrough: 3, RegularThrough: 7}

// TypeForRow resolves the seat type for a 1-based row ordinal.
func (b RowBands) TypeForRow(ordinal int) model.SeatType {
	switch {
	case ordinal <= b.PremiumThrough:
		return model.SeatTypePremium
	case ordinal <= b.RegularThrough:
		return model.SeatTypeRegular
	default:
		return model.SeatTypeVIP
	}
}

// RowLabel converts a 1-based row ordinal to its letter label:
// 1 -> "A", 26 -> "Z", 27 -> "AA".
func RowLabel(ordinal int) string {
	label := ""
	for ordinal > 0 {
		ordinal--
		label = string(rune('A'+ordinal%26)) + label
		ordinal /= 26
	}
	return label
}

// GenerateLayout builds the full seat grid for one schedule slot from
// the venue dimensions.  Every seat starts free and unblocked.  The
// generated layout satisfies the structural invariants checked by
// model.Layout.Validate.
func GenerateLayout(key SlotKey, rows, seatsPerRow int, bands RowBands) (*model.Layout, error) {
	if rows <= 0 || seatsPerRow <= 0 {
		return nil, fmt.Errorf("invalid layout dimensions %dx%d", rows, seatsPerRow)
	}
	seats := make([]model.Seat, 0, rows*seatsPerRow)
	for r := 1; r <= rows; r++ {
		label := RowLabel(r)
		seatType := bands.TypeForRow(r)
		for n := 1; n <= seatsPerRow; n++ {
			seats = append(seats, model.Seat{
				Row:    label,
				Number: uint32(n),
				Type:   seatType,
			})
		}
	}
	layout := &model.Layout{
		EventID:     key.EventID,
		SlotIndex:   key.SlotIndex,
		Rows:        rows,
		SeatsPerRow: seatsPerRow,
		Seats:       seats,
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return layout, nil
}
