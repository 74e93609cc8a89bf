package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mekbib/stayfinder/internal/model"
)

// ErrBookingNotFound is returned when a booking cannot be found or is not
// visible to the requesting guest.  Absent and not-owned are deliberately
// indistinguishable so the API never leaks whether a booking exists.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo provides CRUD operations for bookings.  A booking is always
// created on behalf of an authenticated guest; every read is scoped to the
// guest who owns it.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

const bookingColumns = "id, guest_id, listing_id, check_in, check_out, total_price, status, created_at, updated_at"

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	return row.Scan(&b.ID, &b.GuestID, &b.ListingID, &b.CheckIn, &b.CheckOut,
		&b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

// Create inserts a new booking and populates the generated ID and timestamp
// fields on the provided record.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const qInsert = "INSERT INTO bookings (guest_id, listing_id, check_in, check_out, total_price, status) VALUES (?, ?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, b.GuestID, b.ListingID, b.CheckIn, b.CheckOut, b.TotalPrice, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	const qSelect = "SELECT " + bookingColumns + " FROM bookings WHERE id = ?"
	return scanBooking(r.db.QueryRowContext(ctx, qSelect, b.ID), b)
}

// GetByIDAndGuest fetches a booking only if it belongs to the given guest.
func (r *BookingRepo) GetByIDAndGuest(ctx context.Context, id, guestID uint64) (*model.Booking, error) {
	const q = "SELECT " + bookingColumns + " FROM bookings WHERE id = ? AND guest_id = ?"
	var b model.Booking
	if err := scanBooking(r.db.QueryRowContext(ctx, q, id, guestID), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListByGuest returns all bookings made by a guest, newest first.
func (r *BookingRepo) ListByGuest(ctx context.Context, guestID uint64) ([]model.Booking, error) {
	const q = "SELECT " + bookingColumns + " FROM bookings WHERE guest_id = ? ORDER BY id DESC"
	rows, err := r.db.QueryContext(ctx, q, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// UpdateStatus rewrites the status column for one booking.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status model.BookingStatus) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=?", status, id)
	return err
}
