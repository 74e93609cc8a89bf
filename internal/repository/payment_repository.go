package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mekbib/stayfinder/internal/model"
)

// ErrPaymentNotFound is returned when a payment cannot be found or does not
// belong to one of the requesting guest's bookings.
var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepo provides persistence for payment attempts.  Payment rows are
// append-then-update only: a row is inserted per attempt and only its
// payment_status column is ever mutated afterwards.  Rows are never deleted.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

const paymentColumns = "p.id, p.booking_id, p.transaction_id, p.amount, p.payment_status, p.created_at, p.updated_at"

func scanPayment(row interface{ Scan(...any) error }, p *model.Payment) error {
	return row.Scan(&p.ID, &p.BookingID, &p.TransactionID, &p.Amount,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)
}

// Create inserts a new payment attempt and populates the generated ID and
// timestamp fields.  Status should normally be PENDING; the state machine
// moves it forward later through UpdateStatus.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	const qInsert = "INSERT INTO payments (booking_id, transaction_id, amount, payment_status) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, p.BookingID, p.TransactionID, p.Amount, p.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	const qSelect = "SELECT " + paymentColumns + " FROM payments p WHERE p.id = ?"
	return scanPayment(r.db.QueryRowContext(ctx, qSelect, p.ID), p)
}

// GetByIDForGuest fetches a payment scoped to the requesting guest's
// bookings.  The JOIN enforces ownership: a payment on another guest's
// booking scans as no rows, which callers surface as not-found.
func (r *PaymentRepo) GetByIDForGuest(ctx context.Context, id, guestID uint64) (*model.Payment, error) {
	const q = "SELECT " + paymentColumns + ` FROM payments p
        JOIN bookings b ON b.id = p.booking_id
        WHERE p.id = ? AND b.guest_id = ?`
	var p model.Payment
	if err := scanPayment(r.db.QueryRowContext(ctx, q, id, guestID), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByGuest returns all payments attached to the guest's bookings,
// newest first.
func (r *PaymentRepo) ListByGuest(ctx context.Context, guestID uint64) ([]model.Payment, error) {
	const q = "SELECT " + paymentColumns + ` FROM payments p
        JOIN bookings b ON b.id = p.booking_id
        WHERE b.guest_id = ? ORDER BY p.id DESC`
	rows, err := r.db.QueryContext(ctx, q, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// UpdateStatus rewrites the payment_status column for one payment.  Writing
// the same status again is a legal no-op (a pending verify re-writes
// PENDING), so zero affected rows is not treated as an error here.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, id uint64, status model.PaymentStatus) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE payments SET payment_status=? WHERE id=?", status, id)
	return err
}
