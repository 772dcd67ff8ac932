package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aventra/activity-booking/internal/model"
)

func TestRowLabel(t *testing.T) {
	cases := map[int]string{
		1:  "A",
		2:  "B",
		26: "Z",
		27: "AA",
		28: "AB",
		52: "AZ",
		53: "BA",
	}
	for ordinal, want := range cases {
		assert.Equal(t, want, RowLabel(ordinal), "ordinal %d", ordinal)
	}
}

func TestRowBandsTypeForRow(t *testing.T) {
	bands := DefaultRowBands

	assert.Equal(t, model.SeatTypePremium, bands.TypeForRow(1))
	assert.Equal(t, model.SeatTypePremium, bands.TypeForRow(3))
	assert.Equal(t, model.SeatTypeRegular, bands.TypeForRow(4))
	assert.Equal(t, model.SeatTypeRegular, bands.TypeForRow(7))
	assert.Equal(t, model.SeatTypeVIP, bands.TypeForRow(8))
}

func TestGenerateLayout(t *testing.T) {
	layout, err := GenerateLayout(SlotKey{EventID: 9, SlotIndex: 0}, 8, 10, DefaultRowBands)
	require.NoError(t, err)

	require.Len(t, layout.Seats, 80)
	require.NoError(t, layout.Validate())

	// Spot-check band assignment at the edges.
	byID := make(map[model.SeatID]model.Seat, len(layout.Seats))
	for _, s := range layout.Seats {
		byID[s.ID()] = s
	}
	assert.Equal(t, model.SeatTypePremium, byID[model.SeatID{Row: "A", Number: 1}].Type)
	assert.Equal(t, model.SeatTypeRegular, byID[model.SeatID{Row: "D", Number: 10}].Type)
	assert.Equal(t, model.SeatTypeVIP, byID[model.SeatID{Row: "H", Number: 5}].Type)

	for _, s := range layout.Seats {
		assert.False(t, s.IsBooked, "generated seats start free")
		assert.False(t, s.IsBlocked, "generated seats start unblocked")
	}
}

func TestGenerateLayoutRejectsBadDimensions(t *testing.T) {
	_, err := GenerateLayout(SlotKey{EventID: 9}, 0, 10, DefaultRowBands)
	assert.Error(t, err)
	_, err = GenerateLayout(SlotKey{EventID: 9}, 5, -1, DefaultRowBands)
	assert.Error(t, err)
}

func TestGenerateLayoutCustomBands(t *testing.T) {
	// All rows premium when both thresholds cover the whole venue.
	layout, err := GenerateLayout(SlotKey{EventID: 1}, 2, 2, RowBands{PremiumThrough: 2, RegularThrough: 2})
	require.NoError(t, err)
	for _, s := range layout.Seats {
		assert.Equal(t, model.SeatTypePremium, s.Type)
	}
}
