package handler

import (
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"
    "go.uber.org/zap"

    "github.com/mekbib/stayfinder/internal/gateway"
    "github.com/mekbib/stayfinder/internal/model"
    "github.com/mekbib/stayfinder/internal/payment"
    "github.com/mekbib/stayfinder/internal/queue"
    "github.com/mekbib/stayfinder/internal/repository"
    "github.com/mekbib/stayfinder/internal/utils"
)

// paymentPart is the JSON shape for a payment in API responses.
type paymentPart struct {
    ID            uint64              `json:"id"`
    BookingID     uint64              `json:"booking_id"`
    TransactionID string              `json:"transaction_id"`
    Amount        decimal.Decimal     `json:"amount"`
    Status        model.PaymentStatus `json:"status"`
    CreatedAt     time.Time           `json:"created_at"`
}

func toPaymentPart(p *model.Payment) paymentPart {
    return paymentPart{
        ID:            p.ID,
        BookingID:     p.BookingID,
        TransactionID: p.TransactionID,
        Amount:        p.Amount,
        Status:        p.Status,
        CreatedAt:     p.CreatedAt,
    }
}

// gatewayErrorResponse turns a gateway failure into a 502 body.  Rejections
// carry the gateway's own words back to the caller; transport failures get a
// generic message so we never leak dial errors.
func gatewayErrorResponse(c echo.Context, err error) error {
    var rej *gateway.RejectedError
    if errors.As(err, &rej) {
        return c.JSON(http.StatusBadGateway, echo.Map{
            "error":   "payment gateway rejected the request",
            "details": rej.Details,
        })
    }
    return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment gateway unreachable"})
}

// CreatePayment handles POST /v1/payments: an explicit payment attempt for
// an existing booking.  Unlike the implicit attempt made during booking
// creation this path is strict — if the gateway cannot hand back a checkout
// URL no payment row is written and the caller gets a 502.
func (h *GuestHandler) CreatePayment(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        BookingID uint64 `json:"booking"`
        Amount    string `json:"amount"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.BookingID == 0 || body.Amount == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking and amount are required"})
    }
    amount, err := decimal.NewFromString(body.Amount)
    if err != nil || !amount.IsPositive() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be a positive decimal"})
    }

    ctx := c.Request().Context()
    booking, err := h.Bookings.GetByIDAndGuest(ctx, body.BookingID, guestID)
    if err != nil {
        if err == repository.ErrBookingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
    }
    guest, err := h.Users.GetByID(ctx, guestID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }

    txRef := utils.NewTxRef(booking.ID)
    checkoutURL, err := h.Gateway.Initialize(ctx, gateway.InitializeRequest{
        Amount:    amount.StringFixed(2),
        Currency:  h.Currency,
        Email:     guest.Email,
        FirstName: guest.FirstName,
        LastName:  guest.LastName,
        TxRef:     txRef,
    })
    if err != nil {
        h.Log.Warn("payment initialization failed",
            zap.Uint64("booking_id", booking.ID), zap.Error(err))
        return gatewayErrorResponse(c, err)
    }

    pay := &model.Payment{
        BookingID:     booking.ID,
        TransactionID: txRef,
        Amount:        amount,
        Status:        model.PaymentPending,
    }
    if err := h.Payments.Create(ctx, pay); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record payment"})
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "payment":      toPaymentPart(pay),
        "checkout_url": checkoutURL,
    })
}

// VerifyPayment handles GET /v1/payments/:id/verify.  It asks the gateway
// what became of the payment's transaction and applies the resulting status
// transition.  Terminal statuses never move again, and the confirmation
// email is dispatched exactly once — on the pending-to-completed edge.
func (h *GuestHandler) VerifyPayment(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
    }

    ctx := c.Request().Context()
    pay, err := h.Payments.GetByIDForGuest(ctx, id, guestID)
    if err != nil {
        if err == repository.ErrPaymentNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch payment"})
    }

    outcome, err := h.Gateway.Verify(ctx, pay.TransactionID)
    if err != nil {
        // Verification trouble must never flip the stored status.
        h.Log.Warn("payment verification failed",
            zap.Uint64("payment_id", pay.ID), zap.Error(err))
        return gatewayErrorResponse(c, err)
    }

    next, notifyGuest := payment.Next(pay.Status, outcome)
    if err := h.Payments.UpdateStatus(ctx, pay.ID, next); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update payment"})
    }
    pay.Status = next

    if notifyGuest {
        // The completing edge also confirms the booking.  Failures here are
        // logged but do not fail the verification response; the payment
        // itself is already settled.
        if err := h.Bookings.UpdateStatus(ctx, pay.BookingID, model.BookingConfirmed); err != nil {
            h.Log.Warn("confirming booking after payment failed",
                zap.Uint64("booking_id", pay.BookingID), zap.Error(err))
        }
        guest, err := h.Users.GetByID(ctx, guestID)
        if err != nil {
            h.Log.Warn("skipping payment confirmation email, user lookup failed",
                zap.Uint64("payment_id", pay.ID), zap.Error(err))
        } else {
            h.Notifier.Dispatch(queue.KindPaymentConfirmed, guest.Email, pay.BookingID)
        }
    }

    return c.JSON(http.StatusOK, echo.Map{"payment": toPaymentPart(pay)})
}

// ListPayments handles GET /v1/payments and returns the guest's payments
// across all of their bookings.
func (h *GuestHandler) ListPayments(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.Payments.ListByGuest(c.Request().Context(), guestID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load payments"})
    }
    parts := make([]paymentPart, 0, len(items))
    for i := range items {
        parts = append(parts, toPaymentPart(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": parts})
}
