package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aventra/activity-booking/internal/inventory"
	"github.com/aventra/activity-booking/internal/model"
)

// EventRepo reads event catalog data.  The catalog is maintained by a
// separate system; at booking time events and their schedule slots are
// read-only reference data, so this repository exposes no mutations
// beyond layout provisioning support.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// GetByID returns one event including its venue layout dimensions.
func (r *EventRepo) GetByID(ctx context.Context, eventID uint64) (*model.Event, error) {
	const q = `SELECT id, title, description, location, layout_rows, layout_seats_per_row,
                      created_at, updated_at
               FROM events WHERE id = ?`
	var ev model.Event
	err := r.db.QueryRowContext(ctx, q, eventID).Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.Location,
		&ev.Rows, &ev.SeatsPerRow, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, inventory.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// Slot returns one schedule slot of an event with its price table.
// NULL premium/vip prices are simply absent from the table so price
// lookups fall back to the REGULAR entry.  A missing event or slot
// index yields inventory.ErrNotFound.
func (r *EventRepo) Slot(ctx context.Context, eventID uint64, slotIndex int) (*model.ScheduleSlot, error) {
	const q = `SELECT starts_at, duration_min,
                      price_regular_cents, price_premium_cents, price_vip_cents
               FROM schedule_slots
               WHERE event_id = ? AND slot_index = ?`
	var slot model.ScheduleSlot
	var regular uint32
	var premium, vip sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, eventID, slotIndex).Scan(
		&slot.StartsAt, &slot.DurationMin, &regular, &premium, &vip,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, inventory.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	slot.EventID = eventID
	slot.Index = slotIndex
	slot.StartsAt = slot.StartsAt.UTC()
	slot.Prices = model.PriceTable{model.SeatTypeRegular: regular}
	if premium.Valid {
		slot.Prices[model.SeatTypePremium] = uint32(premium.Int64)
	}
	if vip.Valid {
		slot.Prices[model.SeatTypeVIP] = uint32(vip.Int64)
	}
	return &slot, nil
}
