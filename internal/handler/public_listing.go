package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/mekbib/stayfinder/internal/model"
	"github.com/mekbib/stayfinder/internal/repository"
)

// PublicHandler exposes unauthenticated browse endpoints.  Responses carry
// sanitized listing data only; host identifiers and timestamps beyond
// created_at are not interesting to guests browsing the catalogue.  These
// routes sit behind the redis response cache.
type PublicHandler struct {
	Listings *repository.ListingRepo
}

// NewPublicHandler constructs a PublicHandler.
func NewPublicHandler(listings *repository.ListingRepo) *PublicHandler {
	if listings == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Listings: listings}
}

// listingPart is the JSON shape for a listing in API responses.  Decimal
// values marshal as strings, matching how the database stores them.
type listingPart struct {
	ID            uint64          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toListingPart(l *model.Listing) listingPart {
	return listingPart{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		Location:      l.Location,
		PricePerNight: l.PricePerNight,
		CreatedAt:     l.CreatedAt,
	}
}

// GetPublicListings handles GET /v1/listings and returns the full
// catalogue, newest first.
func (h *PublicHandler) GetPublicListings(c echo.Context) error {
	items, err := h.Listings.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	parts := make([]listingPart, 0, len(items))
	for i := range items {
		parts = append(parts, toListingPart(&items[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": parts})
}

// GetPublicListing handles GET /v1/listings/:id.
func (h *PublicHandler) GetPublicListing(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	listing, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toListingPart(listing))
}
