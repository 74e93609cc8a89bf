package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// PaymentStatus is the closed set of states a payment can be in.  A payment
// starts PENDING when the row is created and moves to COMPLETED or FAILED
// through an explicit verification result.  Both COMPLETED and FAILED are
// terminal.
type PaymentStatus string

const (
    PaymentPending   PaymentStatus = "PENDING"
    PaymentCompleted PaymentStatus = "COMPLETED"
    PaymentFailed    PaymentStatus = "FAILED"
)

// Terminal reports whether the status permits no further transitions.
func (s PaymentStatus) Terminal() bool {
    return s == PaymentCompleted || s == PaymentFailed
}

// Valid reports whether s is one of the three known statuses.  Rows written
// by this application always hold a valid status; the check guards against
// manual database edits.
func (s PaymentStatus) Valid() bool {
    switch s {
    case PaymentPending, PaymentCompleted, PaymentFailed:
        return true
    }
    return false
}

// Payment is one payment attempt for a booking.  A row is created for every
// attempt — including attempts where the gateway could not be reached — so a
// booking is never left without a payment record.  Rows are never deleted;
// re-initiating payment creates a new row with a new transaction reference
// rather than updating an existing one.
//
// Fields:
//  ID            – primary key identifier.
//  BookingID     – booking this attempt pays for.
//  TransactionID – locally generated tx_ref, unique per attempt, used to
//                  correlate with the gateway's transaction record.
//  Amount        – amount charged; derived from the booking's total price.
//  Status        – PENDING, COMPLETED or FAILED.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Payment struct {
    ID            uint64          // payments.id
    BookingID     uint64          // payments.booking_id
    TransactionID string          // payments.transaction_id (tx_ref)
    Amount        decimal.Decimal // payments.amount
    Status        PaymentStatus   // payments.payment_status
    CreatedAt     time.Time       // payments.created_at
    UpdatedAt     time.Time       // payments.updated_at
}
