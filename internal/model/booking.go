package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle of a booking.  A booking starts PENDING,
// becomes CONFIRMED when one of its payments completes, and CANCELED when
// the guest cancels it before paying.
type BookingStatus string

const (
    BookingPending   BookingStatus = "PENDING"
    BookingConfirmed BookingStatus = "CONFIRMED"
    BookingCanceled  BookingStatus = "CANCELED"
)

// Booking records a guest's reservation of a listing for a date range.
// The total price is computed once at creation time from the listing's
// nightly rate and the number of nights, and never recomputed afterwards.
// A booking owns zero or more payment attempts; each attempt is a separate
// Payment row correlated through its transaction reference.
//
// Fields:
//  ID         – primary key identifier.
//  GuestID    – user who made the booking (role GUEST).
//  ListingID  – listing being booked.
//  CheckIn    – first night of the stay (date only).
//  CheckOut   – checkout date; strictly after CheckIn.
//  TotalPrice – nightly rate × number of nights, fixed at creation.
//  Status     – PENDING, CONFIRMED or CANCELED.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Booking struct {
    ID         uint64          // bookings.id
    GuestID    uint64          // bookings.guest_id
    ListingID  uint64          // bookings.listing_id
    CheckIn    time.Time       // bookings.check_in
    CheckOut   time.Time       // bookings.check_out
    TotalPrice decimal.Decimal // bookings.total_price
    Status     BookingStatus   // bookings.status
    CreatedAt  time.Time       // bookings.created_at
    UpdatedAt  time.Time       // bookings.updated_at
}

// Nights returns the length of the stay in nights.
func (b Booking) Nights() int {
    return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
