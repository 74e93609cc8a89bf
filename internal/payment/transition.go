// Package payment holds the transition rule for a payment's lifecycle.
// The rule is a pure function so handlers can apply it and persist the
// result in one place, and tests can cover every combination without a
// database or a gateway.
package payment

import (
    "github.com/mekbib/stayfinder/internal/gateway"
    "github.com/mekbib/stayfinder/internal/model"
)

// Next decides the status a payment moves to after a verification outcome
// and whether a payment-confirmed notification should be dispatched.
//
// Rules:
//   - COMPLETED and FAILED are terminal: once reached, later outcomes never
//     move the status backwards and never trigger another notification.
//     Re-verifying an already-completed payment is therefore idempotent and
//     duplicate notifications are suppressed.
//   - From PENDING, success moves to COMPLETED and requests a notification,
//     failed moves to FAILED, and pending-or-unknown re-writes PENDING.
//
// Gateway errors never reach this function; the caller keeps the stored
// status untouched when verification itself fails.
func Next(current model.PaymentStatus, outcome gateway.VerifyOutcome) (model.PaymentStatus, bool) {
    if current.Terminal() {
        return current, false
    }
    switch outcome {
    case gateway.VerifySuccess:
        return model.PaymentCompleted, true
    case gateway.VerifyFailed:
        return model.PaymentFailed, false
    default:
        return model.PaymentPending, false
    }
}
