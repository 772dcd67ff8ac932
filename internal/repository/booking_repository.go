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

// BookingRepo is the durable booking ledger backed by the bookings and
// booking_tickets tables.  Bookings are never deleted; cancellation is
// a status transition so history is preserved.  All lookups are scoped
// to the requester.  Timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const mysqlErrDuplicateEntry = 1062

// Create inserts a booking and its ticket snapshots in one
// transaction.  The generated ID is populated on the passed booking.
// A unique-key collision on the booking code is reported as
// inventory.ErrDuplicateCode so the caller can retry with a fresh
// code.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO bookings
        (code, requester_id, event_id, slot_index, slot_starts_at, total_amount_cents,
         status, contact_name, contact_email, contact_phone)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		b.Code, b.RequesterID, b.EventID, b.SlotIndex, b.SlotStartsAt.UTC(),
		b.TotalAmountCents, string(b.Status),
		b.Contact.Name, b.Contact.Email, b.Contact.Phone,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return inventory.ErrDuplicateCode
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	if len(b.Tickets) > 0 {
		query := `INSERT INTO booking_tickets (booking_id, row_label, seat_number, seat_type, price_cents) VALUES `
		args := make([]interface{}, 0, len(b.Tickets)*5)
		for i, t := range b.Tickets {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?)"
			args = append(args, b.ID, t.Row, t.SeatNumber, string(t.SeatType), t.PriceCents)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ByCode returns the booking with the given code when it belongs to
// the requester.  Ownership is enforced in the query itself, so a
// foreign booking and a missing booking are indistinguishable: both
// yield inventory.ErrNotFound.
func (r *BookingRepo) ByCode(ctx context.Context, code string, requesterID uint64) (*model.Booking, error) {
	const q = `SELECT id, code, requester_id, event_id, slot_index, slot_starts_at,
                      total_amount_cents, status, contact_name, contact_email, contact_phone,
                      created_at, updated_at
               FROM bookings
               WHERE code = ? AND requester_id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, code, requesterID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadTickets(ctx, []*model.Booking{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// ListByRequester returns all bookings of a requester ordered by
// creation time descending (newest first).  Tickets for every booking
// are loaded in a single batched query.
func (r *BookingRepo) ListByRequester(ctx context.Context, requesterID uint64) ([]model.Booking, error) {
	const q = `SELECT id, code, requester_id, event_id, slot_index, slot_starts_at,
                      total_amount_cents, status, contact_name, contact_email, contact_phone,
                      created_at, updated_at
               FROM bookings
               WHERE requester_id = ?
               ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]model.Booking, 0)
	refs := make([]*model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
		refs = append(refs, &bookings[len(bookings)-1])
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadTickets(ctx, refs); err != nil {
		return nil, err
	}
	return bookings, nil
}

// MarkCancelled transitions a booking from CONFIRMED or PENDING to
// CANCELLED.  Terminal states are rejected with
// inventory.ErrInvalidState; an unknown code yields
// inventory.ErrNotFound.
func (r *BookingRepo) MarkCancelled(ctx context.Context, code string) error {
	const q = `UPDATE bookings
               SET status = 'CANCELLED', updated_at = UTC_TIMESTAMP()
               WHERE code = ? AND status IN ('CONFIRMED', 'PENDING')`
	result, err := r.db.ExecContext(ctx, q, code)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	// Distinguish a missing booking from a terminal one.
	var status string
	err = r.db.QueryRowContext(ctx, `SELECT status FROM bookings WHERE code = ?`, code).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return inventory.ErrNotFound
	}
	if err != nil {
		return err
	}
	return inventory.ErrInvalidState
}

// rowScanner lets scanBooking work with both QueryRow and Query rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var b model.Booking
	var status string
	var phone sql.NullString
	if err := row.Scan(
		&b.ID, &b.Code, &b.RequesterID, &b.EventID, &b.SlotIndex, &b.SlotStartsAt,
		&b.TotalAmountCents, &status, &b.Contact.Name, &b.Contact.Email, &phone,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	if phone.Valid {
		b.Contact.Phone = phone.String
	}
	b.SlotStartsAt = b.SlotStartsAt.UTC()
	b.Tickets = []model.Ticket{}
	return &b, nil
}

// loadTickets populates the Tickets slice of every passed booking with
// one batched query, ordered by row then seat number.
func (r *BookingRepo) loadTickets(ctx context.Context, bookings []*model.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	ids := make([]interface{}, 0, len(bookings))
	placeholders := make([]string, 0, len(bookings))
	index := make(map[uint64]*model.Booking, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
		placeholders = append(placeholders, "?")
		index[b.ID] = b
	}
	query := `SELECT booking_id, row_label, seat_number, seat_type, price_cents
              FROM booking_tickets
              WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
              ORDER BY booking_id, row_label, seat_number`
	rows, err := r.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var bid uint64
		var t model.Ticket
		var seatType string
		if err := rows.Scan(&bid, &t.Row, &t.SeatNumber, &seatType, &t.PriceCents); err != nil {
			return err
		}
		t.SeatType = model.SeatType(seatType)
		if b, ok := index[bid]; ok {
			b.Tickets = append(b.Tickets, t)
		}
	}
	return rows.Err()
}
