package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // Echo web framework used for routing

    "github.com/mekbib/stayfinder/internal/handler"    // handlers implementing business logic
    "github.com/mekbib/stayfinder/internal/middleware" // JWT authentication and role enforcement
    "github.com/mekbib/stayfinder/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitoring probes use /healthz to verify that the
    // service is up.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    // Session-less operations: register, login, token refresh, logout.
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Refresh rotates the refresh token and issues a new access token;
    // refresh-access issues a new access token without rotating.
    g.POST("/refresh", a.Refresh)
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout takes a JSON body with `refresh_token` and invalidates it; it
    // deliberately does not require a valid access token so an expired
    // session can still be terminated.
    g.POST("/logout", a.Logout)

    // Endpoints below require a valid access token with either role.
    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole(model.RoleHost, model.RoleGuest))
    auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints.  These return
// sanitized listing data for anyone shopping for a stay; no JWT or role
// middleware applies.  The cache middleware fronts both endpoints because
// listing browse is the read-heavy path of the API.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
    g := e.Group("/v1/listings", cache)
    g.GET("", p.GetPublicListings)
    g.GET("/:id", p.GetPublicListing)
}
