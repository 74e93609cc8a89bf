package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mekbib/stayfinder/internal/model"
    "github.com/mekbib/stayfinder/internal/repository"
)

type reviewPart struct {
    ID        uint64    `json:"id"`
    ListingID uint64    `json:"listing_id"`
    Rating    uint8     `json:"rating"`
    Comment   string    `json:"comment"`
    CreatedAt time.Time `json:"created_at"`
}

func toReviewPart(r *model.Review) reviewPart {
    return reviewPart{
        ID:        r.ID,
        ListingID: r.ListingID,
        Rating:    r.Rating,
        Comment:   r.Comment,
        CreatedAt: r.CreatedAt,
    }
}

// CreateReview handles POST /v1/reviews.  Rating must be 1..5 and the
// listing must exist.
func (h *GuestHandler) CreateReview(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        ListingID uint64 `json:"listing_id"`
        Rating    int    `json:"rating"`
        Comment   string `json:"comment"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.ListingID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "listing_id is required"})
    }
    if body.Rating < 1 || body.Rating > 5 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
    }

    ctx := c.Request().Context()
    if _, err := h.Listings.GetByID(ctx, body.ListingID); err != nil {
        if err == repository.ErrListingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    review := &model.Review{
        ListingID:  body.ListingID,
        ReviewerID: guestID,
        Rating:     uint8(body.Rating),
        Comment:    strings.TrimSpace(body.Comment),
    }
    if err := h.Reviews.Create(ctx, review); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"item": toReviewPart(review)})
}

// ListMyReviews handles GET /v1/reviews.
func (h *GuestHandler) ListMyReviews(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.Reviews.ListByReviewer(c.Request().Context(), guestID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
    }
    parts := make([]reviewPart, 0, len(items))
    for i := range items {
        parts = append(parts, toReviewPart(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": parts})
}

// DeleteReview handles DELETE /v1/reviews/:id.  Deleting someone else's
// review answers 404, same as deleting one that never existed.
func (h *GuestHandler) DeleteReview(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
    }
    if err := h.Reviews.DeleteByIDAndReviewer(c.Request().Context(), id, guestID); err != nil {
        if err == repository.ErrReviewNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete review"})
    }
    return c.NoContent(http.StatusNoContent)
}
