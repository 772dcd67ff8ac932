package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/aventra/activity-booking/internal/inventory"
	"github.com/aventra/activity-booking/internal/model"
)

// SeatStateRepo is the durable home of per-slot seat occupancy, backed
// by the slot_seats table.  One row exists for every seat of a slot's
// layout.  The is_booked flag is only ever written through
// SetBooked while the slot's guard is held.
type SeatStateRepo struct {
	db *sql.DB
}

// NewSeatStateRepo returns a SeatStateRepo bound to the given database.
func NewSeatStateRepo(db *sql.DB) *SeatStateRepo { return &SeatStateRepo{db: db} }

// LoadSeatMap reads the full seat state of a slot into an addressable
// seat map.  A slot with no layout rows yields inventory.ErrNotFound.
func (r *SeatStateRepo) LoadSeatMap(ctx context.Context, key inventory.SlotKey) (*inventory.SeatMap, error) {
	const q = `SELECT row_label, seat_number, seat_type, is_booked, is_blocked
               FROM slot_seats
               WHERE event_id = ? AND slot_index = ?
               ORDER BY row_label, seat_number`
	rows, err := r.db.QueryContext(ctx, q, key.EventID, key.SlotIndex)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []model.Seat
	for rows.Next() {
		var s model.Seat
		var seatType string
		if err := rows.Scan(&s.Row, &s.Number, &seatType, &s.IsBooked, &s.IsBlocked); err != nil {
			return nil, err
		}
		s.Type = model.SeatType(seatType)
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(seats) == 0 {
		return nil, inventory.ErrNotFound
	}
	return inventory.NewSeatMap(key, seats), nil
}

// SetBooked persists the booked flag for the given seats of one slot
// in a single statement.  Seats already in the target state are
// untouched, which keeps compensating releases idempotent.  An empty
// seat set is a no-op.
func (r *SeatStateRepo) SetBooked(ctx context.Context, key inventory.SlotKey, seats []model.SeatID, booked bool) error {
	if len(seats) == 0 {
		return nil
	}
	tuples := make([]string, 0, len(seats))
	args := make([]interface{}, 0, len(seats)*2+3)
	args = append(args, booked, key.EventID, key.SlotIndex)
	for _, id := range seats {
		tuples = append(tuples, "(?, ?)")
		args = append(args, id.Row, id.Number)
	}
	query := `UPDATE slot_seats SET is_booked = ?
              WHERE event_id = ? AND slot_index = ?
                AND (row_label, seat_number) IN (` + strings.Join(tuples, ",") + `)`
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// CreateLayoutBulk inserts all seats of a freshly generated layout in
// one statement.  Every seat starts free.  It is called once per slot
// when the layout is provisioned; re-provisioning an existing layout
// fails on the table's unique key.
func (r *SeatStateRepo) CreateLayoutBulk(ctx context.Context, layout *model.Layout) error {
	if len(layout.Seats) == 0 {
		return nil
	}
	query := `INSERT INTO slot_seats (event_id, slot_index, row_label, seat_number, seat_type, is_booked, is_blocked) VALUES `
	args := make([]interface{}, 0, len(layout.Seats)*7)
	for i, s := range layout.Seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?)"
		args = append(args, layout.EventID, layout.SlotIndex, s.Row, s.Number, string(s.Type), s.IsBooked, s.IsBlocked)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return inventory.ErrAlreadyExists
		}
	}
	return err
}
