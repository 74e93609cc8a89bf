// Package queue defines the message payloads exchanged over the message
// broker and the background consumer that turns them into outbound email.
package queue

import "time"

// notificationQueueName is the durable queue carrying notification events.
const notificationQueueName = "booking.notifications"

// Notification kinds.  Each kind maps to its own email subject and body in
// the consumer.
const (
    KindPaymentConfirmed = "payment_confirmed"
    KindBookingConfirmed = "booking_confirmed"
)

// NotificationEvent is published when a booking is created or a payment is
// confirmed.  It carries enough information for the email worker to deliver
// the message without querying the primary database.
type NotificationEvent struct {
    Kind           string    `json:"kind"`
    RecipientEmail string    `json:"recipient_email"`
    BookingID      uint64    `json:"booking_id"`
    EnqueuedAt     time.Time `json:"enqueued_at"`
}
