package router

import (
    "github.com/labstack/echo/v4"

    "github.com/mekbib/stayfinder/internal/handler"
    "github.com/mekbib/stayfinder/internal/middleware"
    "github.com/mekbib/stayfinder/internal/model"
)

// RegisterGuest registers guest-scoped endpoints under /v1.  All routes
// require a valid JWT and the GUEST role.  Guests book stays, pay for them
// through the hosted checkout flow, ask for verification of a payment and
// leave reviews on listings.
func RegisterGuest(e *echo.Echo, h *handler.GuestHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleGuest),
    )

    // Booking creation also makes a best-effort payment initialization and
    // always records a pending payment attempt for the new booking.
    g.POST("/bookings", h.CreateBooking)
    g.GET("/bookings", h.ListBookings)
    g.GET("/bookings/:id", h.GetBooking)
    g.DELETE("/bookings/:id", h.CancelBooking)

    // Explicit payment attempts and verification against the gateway.
    g.POST("/payments", h.CreatePayment)
    g.GET("/payments", h.ListPayments)
    g.GET("/payments/:id/verify", h.VerifyPayment)

    g.POST("/reviews", h.CreateReview)
    g.GET("/reviews", h.ListMyReviews)
    g.DELETE("/reviews/:id", h.DeleteReview)
}
