package handler

import (
    "net/http" // http provides status code constants
    "strings"  // strings offers trimming utilities

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/mekbib/stayfinder/internal/model"
    "github.com/mekbib/stayfinder/internal/repository"
)

// HostHandler groups the repositories hosts need to manage their listings.
// All methods assume that JWT authentication and role validation has already
// been performed by middleware.  Hosts only ever see their own listings;
// ownership is enforced in the repository queries.
type HostHandler struct {
	Listings *repository.ListingRepo
}

// NewHostHandler constructs a HostHandler and panics if the dependency is nil.
func NewHostHandler(listings *repository.ListingRepo) *HostHandler {
	if listings == nil {
		panic("nil repository passed to NewHostHandler")
	}
	return &HostHandler{Listings: listings}
}

// listingBody is the JSON payload accepted on create and update.  The price
// arrives as a string so decimal parsing controls precision, matching how
// the gateway and the database treat money.
type listingBody struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	PricePerNight string `json:"price_per_night"`
}

// validate trims the payload and parses the nightly price.  It returns a
// human-readable message when the payload is unusable.
func (b *listingBody) validate() (decimal.Decimal, string) {
	b.Title = strings.TrimSpace(b.Title)
	b.Location = strings.TrimSpace(b.Location)
	if b.Title == "" {
		return decimal.Zero, "title is required"
	}
	if b.Location == "" {
		return decimal.Zero, "location is required"
	}
	price, err := decimal.NewFromString(strings.TrimSpace(b.PricePerNight))
	if err != nil {
		return decimal.Zero, "invalid price_per_night"
	}
	if !price.IsPositive() {
		return decimal.Zero, "price_per_night must be greater than zero"
	}
	return price, ""
}

// CreateListing handles POST /v1/host/listings.  The listing is created for
// the authenticated host; no other owner can be specified.
func (h *HostHandler) CreateListing(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body listingBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	price, msg := body.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	listing := &model.Listing{
		HostID:        hostID,
		Title:         body.Title,
		Description:   body.Description,
		Location:      body.Location,
		PricePerNight: price,
	}
	if err := h.Listings.Create(c.Request().Context(), listing); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create listing"})
	}
	return c.JSON(http.StatusCreated, toListingPart(listing))
}

// ListMyListings handles GET /v1/host/listings and returns only the
// authenticated host's listings.
func (h *HostHandler) ListMyListings(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Listings.ListByHost(c.Request().Context(), hostID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	parts := make([]listingPart, 0, len(items))
	for i := range items {
		parts = append(parts, toListingPart(&items[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": parts})
}

// GetMyListing handles GET /v1/host/listings/:id scoped to the host.
func (h *HostHandler) GetMyListing(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	listing, err := h.Listings.GetByIDAndHost(c.Request().Context(), id, hostID)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toListingPart(listing))
}

// UpdateListing handles PUT /v1/host/listings/:id.  Only the owning host
// can update a listing; anyone else sees not-found.
func (h *HostHandler) UpdateListing(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body listingBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	price, msg := body.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	listing := &model.Listing{
		ID:            id,
		HostID:        hostID,
		Title:         body.Title,
		Description:   body.Description,
		Location:      body.Location,
		PricePerNight: price,
	}
	if err := h.Listings.Update(c.Request().Context(), listing); err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Listings.GetByIDAndHost(c.Request().Context(), id, hostID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toListingPart(updated))
}

// DeleteListing handles DELETE /v1/host/listings/:id.  Listings that
// already have bookings cannot be removed; the foreign key restricts the
// delete and the handler reports a conflict.
func (h *HostHandler) DeleteListing(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Listings.DeleteByIDAndHost(c.Request().Context(), id, hostID); err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		if strings.Contains(err.Error(), "1451") { // rows in bookings still reference the listing
			return c.JSON(http.StatusConflict, echo.Map{"error": "listing has bookings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
