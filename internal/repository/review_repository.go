package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mekbib/stayfinder/internal/model"
)

// ErrReviewNotFound is returned when a review is absent or not owned by the
// requesting reviewer.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepo persists guest reviews of listings.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

const reviewColumns = "id, listing_id, reviewer_id, rating, comment, created_at"

func scanReview(row interface{ Scan(...any) error }, rv *model.Review) error {
	return row.Scan(&rv.ID, &rv.ListingID, &rv.ReviewerID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
}

// Create inserts a review and populates its generated ID and timestamp.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	const qInsert = "INSERT INTO reviews (listing_id, reviewer_id, rating, comment) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, rv.ListingID, rv.ReviewerID, rv.Rating, rv.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)

	const qSelect = "SELECT " + reviewColumns + " FROM reviews WHERE id = ?"
	return scanReview(r.db.QueryRowContext(ctx, qSelect, rv.ID), rv)
}

// ListByReviewer returns all reviews written by one guest, newest first.
// Guests only ever see their own reviews.
func (r *ReviewRepo) ListByReviewer(ctx context.Context, reviewerID uint64) ([]model.Review, error) {
	const q = "SELECT " + reviewColumns + " FROM reviews WHERE reviewer_id = ? ORDER BY id DESC"
	rows, err := r.db.QueryContext(ctx, q, reviewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, err
		}
		items = append(items, rv)
	}
	return items, rows.Err()
}

// GetByIDAndReviewer fetches a single review scoped to its author.
func (r *ReviewRepo) GetByIDAndReviewer(ctx context.Context, id, reviewerID uint64) (*model.Review, error) {
	const q = "SELECT " + reviewColumns + " FROM reviews WHERE id = ? AND reviewer_id = ?"
	var rv model.Review
	if err := scanReview(r.db.QueryRowContext(ctx, q, id, reviewerID), &rv); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// DeleteByIDAndReviewer removes a review owned by the given reviewer.
func (r *ReviewRepo) DeleteByIDAndReviewer(ctx context.Context, id, reviewerID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id=? AND reviewer_id=?", id, reviewerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReviewNotFound
	}
	return nil
}
