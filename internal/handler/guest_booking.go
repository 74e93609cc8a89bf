package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"
    "go.uber.org/zap"

    "github.com/mekbib/stayfinder/internal/gateway"
    "github.com/mekbib/stayfinder/internal/model"
    "github.com/mekbib/stayfinder/internal/notify"
    "github.com/mekbib/stayfinder/internal/queue"
    "github.com/mekbib/stayfinder/internal/repository"
    "github.com/mekbib/stayfinder/internal/utils"
)

// dateLayout is the wire format for check-in/check-out dates.
const dateLayout = "2006-01-02"

// GuestHandler groups everything guests need to book stays, pay for them
// and review listings.  All methods assume JWT authentication and role
// validation have already happened in middleware.  Ownership checks are
// pushed into the repository queries: a guest can only ever see bookings,
// payments and reviews attached to their own account.
type GuestHandler struct {
    Listings *repository.ListingRepo
    Bookings *repository.BookingRepo
    Payments *repository.PaymentRepo
    Reviews  *repository.ReviewRepo
    Users    *repository.UserRepo
    Gateway  *gateway.Client   // outbound payment gateway client
    Notifier notify.Dispatcher // fire-and-forget notification dispatch
    Currency string            // currency code sent to the gateway
    Log      *zap.Logger
}

// NewGuestHandler constructs a GuestHandler with its dependencies.  All
// dependencies must be non-nil.
func NewGuestHandler(
    listings *repository.ListingRepo,
    bookings *repository.BookingRepo,
    payments *repository.PaymentRepo,
    reviews *repository.ReviewRepo,
    users *repository.UserRepo,
    gw *gateway.Client,
    notifier notify.Dispatcher,
    currency string,
    log *zap.Logger,
) *GuestHandler {
    if listings == nil || bookings == nil || payments == nil || reviews == nil || users == nil || gw == nil || notifier == nil {
        panic("nil dependency passed to NewGuestHandler")
    }
    return &GuestHandler{
        Listings: listings,
        Bookings: bookings,
        Payments: payments,
        Reviews:  reviews,
        Users:    users,
        Gateway:  gw,
        Notifier: notifier,
        Currency: currency,
        Log:      log,
    }
}

// bookingPart is the JSON shape for a booking in API responses.
type bookingPart struct {
    ID         uint64              `json:"id"`
    ListingID  uint64              `json:"listing_id"`
    CheckIn    string              `json:"check_in"`
    CheckOut   string              `json:"check_out"`
    TotalPrice decimal.Decimal     `json:"total_price"`
    Status     model.BookingStatus `json:"status"`
    CreatedAt  time.Time           `json:"created_at"`
}

func toBookingPart(b *model.Booking) bookingPart {
    return bookingPart{
        ID:         b.ID,
        ListingID:  b.ListingID,
        CheckIn:    b.CheckIn.Format(dateLayout),
        CheckOut:   b.CheckOut.Format(dateLayout),
        TotalPrice: b.TotalPrice,
        Status:     b.Status,
        CreatedAt:  b.CreatedAt,
    }
}

// createBookingResp pairs the persisted booking with the ephemeral checkout
// URL.  The URL is never stored; when the gateway could not be reached it is
// simply absent and the client retries payment explicitly later.
type createBookingResp struct {
    Booking     bookingPart `json:"booking"`
    CheckoutURL string      `json:"checkout_url,omitempty"`
}

// CreateBooking handles POST /v1/bookings.  It persists the booking, then
// makes a best-effort attempt to initialize a payment at the gateway and
// unconditionally records a PENDING payment attempt — the booking is never
// left payment-less, and gateway faults never fail booking creation.
func (h *GuestHandler) CreateBooking(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        ListingID uint64 `json:"listing_id"`
        CheckIn   string `json:"check_in"`
        CheckOut  string `json:"check_out"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.ListingID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "listing_id is required"})
    }
    checkIn, err := time.Parse(dateLayout, body.CheckIn)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in date"})
    }
    checkOut, err := time.Parse(dateLayout, body.CheckOut)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out date"})
    }
    if !checkOut.After(checkIn) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
    }
    today := time.Now().UTC().Truncate(24 * time.Hour)
    if checkIn.Before(today) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must not be in the past"})
    }

    ctx := c.Request().Context()
    listing, err := h.Listings.GetByID(ctx, body.ListingID)
    if err != nil {
        if err == repository.ErrListingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    guest, err := h.Users.GetByID(ctx, guestID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }

    nights := int64(checkOut.Sub(checkIn).Hours() / 24)
    total := listing.PricePerNight.Mul(decimal.NewFromInt(nights))

    booking := &model.Booking{
        GuestID:    guestID,
        ListingID:  listing.ID,
        CheckIn:    checkIn,
        CheckOut:   checkOut,
        TotalPrice: total,
        Status:     model.BookingPending, // confirmed once a payment completes
    }
    if err := h.Bookings.Create(ctx, booking); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
    }

    // Best-effort payment initialization.  Whatever the gateway does —
    // timeout, rejection, garbage response — the booking stands and the
    // client just gets no checkout URL.
    txRef := utils.NewTxRef(booking.ID)
    checkoutURL, err := h.Gateway.Initialize(ctx, gateway.InitializeRequest{
        Amount:    total.StringFixed(2),
        Currency:  h.Currency,
        Email:     guest.Email,
        FirstName: guest.FirstName,
        LastName:  guest.LastName,
        TxRef:     txRef,
    })
    if err != nil {
        h.Log.Warn("payment initialization during booking creation failed",
            zap.Uint64("booking_id", booking.ID), zap.Error(err))
        checkoutURL = ""
    }

    // The payment row is written regardless of the gateway outcome so the
    // booking always has a pending attempt to verify or retry against.
    pay := &model.Payment{
        BookingID:     booking.ID,
        TransactionID: txRef,
        Amount:        total,
        Status:        model.PaymentPending,
    }
    if err := h.Payments.Create(ctx, pay); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record payment"})
    }

    h.Notifier.Dispatch(queue.KindBookingConfirmed, guest.Email, booking.ID)

    return c.JSON(http.StatusCreated, createBookingResp{
        Booking:     toBookingPart(booking),
        CheckoutURL: checkoutURL,
    })
}

// ListBookings handles GET /v1/bookings and returns the guest's bookings.
func (h *GuestHandler) ListBookings(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.Bookings.ListByGuest(c.Request().Context(), guestID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    parts := make([]bookingPart, 0, len(items))
    for i := range items {
        parts = append(parts, toBookingPart(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": parts})
}

// GetBooking handles GET /v1/bookings/:id.  A booking that does not exist
// and a booking owned by someone else both answer 404.
func (h *GuestHandler) GetBooking(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    booking, err := h.Bookings.GetByIDAndGuest(c.Request().Context(), id, guestID)
    if err != nil {
        if err == repository.ErrBookingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": toBookingPart(booking)})
}

// CancelBooking handles DELETE /v1/bookings/:id.  Only a booking that is
// still PENDING can be canceled; a paid-for booking answers 409.  The row
// stays in place with status CANCELED so payment history keeps its anchor.
func (h *GuestHandler) CancelBooking(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }

    ctx := c.Request().Context()
    booking, err := h.Bookings.GetByIDAndGuest(ctx, id, guestID)
    if err != nil {
        if err == repository.ErrBookingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
    }
    if booking.Status != model.BookingPending {
        return c.JSON(http.StatusConflict, echo.Map{"error": "only pending bookings can be canceled"})
    }
    if err := h.Bookings.UpdateStatus(ctx, booking.ID, model.BookingCanceled); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
    }
    return c.NoContent(http.StatusNoContent)
}
