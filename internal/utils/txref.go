package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewTxRef derives a transaction reference for one payment attempt.  The
// booking ID keeps the reference traceable to its booking; the random
// suffix makes every attempt unique, so re-initiating payment for the same
// booking always produces a fresh reference at the gateway.
func NewTxRef(bookingID uint64) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", bookingID, suffix)
}
