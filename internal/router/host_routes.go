package router

import (
    "github.com/labstack/echo/v4"

    "github.com/mekbib/stayfinder/internal/handler"
    "github.com/mekbib/stayfinder/internal/middleware"
    "github.com/mekbib/stayfinder/internal/model"
)

// RegisterHost registers host-scoped endpoints under /v1/host.  All routes
// require a valid JWT and the HOST role.  Hosts manage their own listings;
// ownership is enforced inside the repository queries so one host can never
// touch another host's inventory.
func RegisterHost(e *echo.Echo, h *handler.HostHandler, jwtSecret string) {
    g := e.Group(
        "/v1/host/listings",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleHost),
    )
    g.POST("", h.CreateListing)
    g.GET("", h.ListMyListings)
    g.GET("/:id", h.GetMyListing)
    g.PUT("/:id", h.UpdateListing)
    g.DELETE("/:id", h.DeleteListing)
}
