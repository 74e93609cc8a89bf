package model

import "time"

// Review is a guest's rating of a listing.  Reviews are scoped to their
// reviewer: guests only ever see and manage the reviews they wrote.
//
// Fields:
//  ID         – primary key identifier.
//  ListingID  – listing being reviewed.
//  ReviewerID – guest who wrote the review.
//  Rating     – star rating between 1 and 5 inclusive.
//  Comment    – free-form review text (optional).
//  CreatedAt  – creation timestamp.
type Review struct {
    ID         uint64    // reviews.id
    ListingID  uint64    // reviews.listing_id
    ReviewerID uint64    // reviews.reviewer_id
    Rating     uint8     // reviews.rating (1..5)
    Comment    string    // reviews.comment
    CreatedAt  time.Time // reviews.created_at
}
