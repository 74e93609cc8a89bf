// Package repository contains data access logic separated from HTTP handlers.
// Ownership rules live in the SQL itself: host-scoped and guest-scoped
// queries filter on the owner column so a row that exists but belongs to
// someone else is indistinguishable from a row that does not exist.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mekbib/stayfinder/internal/model"
)

// ErrListingNotFound is returned when a listing cannot be found in the DB
// (or is not visible to the requesting user).
var ErrListingNotFound = errors.New("listing not found")

// ListingRepo encapsulates all database queries related to listings.
type ListingRepo struct {
	db *sql.DB
}

// NewListingRepo constructs a ListingRepo with the provided DB handle.  This
// allows dependency injection of the database in tests and at startup.
func NewListingRepo(db *sql.DB) *ListingRepo {
	return &ListingRepo{db: db}
}

const listingColumns = "id, host_id, title, description, location, price_per_night, created_at, updated_at"

func scanListing(row interface{ Scan(...any) error }, l *model.Listing) error {
	return row.Scan(&l.ID, &l.HostID, &l.Title, &l.Description, &l.Location,
		&l.PricePerNight, &l.CreatedAt, &l.UpdatedAt)
}

// Create inserts a new listing.  On success the listing's ID, CreatedAt and
// UpdatedAt fields are populated from the database so callers receive a
// fully populated record.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	const qInsert = "INSERT INTO listings (host_id, title, description, location, price_per_night) VALUES (?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, l.HostID, l.Title, l.Description, l.Location, l.PricePerNight)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)

	const qSelect = "SELECT " + listingColumns + " FROM listings WHERE id = ?"
	return scanListing(r.db.QueryRowContext(ctx, qSelect, l.ID), l)
}

// GetByID fetches a listing by its ID regardless of owner.  Guests booking a
// stay and public browse both use this lookup.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (*model.Listing, error) {
	const q = "SELECT " + listingColumns + " FROM listings WHERE id = ?"
	var l model.Listing
	if err := scanListing(r.db.QueryRowContext(ctx, q, id), &l); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

// GetByIDAndHost fetches a listing only if it belongs to the given host.
// Returns ErrListingNotFound when absent or owned by someone else.
func (r *ListingRepo) GetByIDAndHost(ctx context.Context, id, hostID uint64) (*model.Listing, error) {
	const q = "SELECT " + listingColumns + " FROM listings WHERE id = ? AND host_id = ?"
	var l model.Listing
	if err := scanListing(r.db.QueryRowContext(ctx, q, id, hostID), &l); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ListByHost returns all listings owned by a host, newest first.
func (r *ListingRepo) ListByHost(ctx context.Context, hostID uint64) ([]model.Listing, error) {
	const q = "SELECT " + listingColumns + " FROM listings WHERE host_id = ? ORDER BY id DESC"
	rows, err := r.db.QueryContext(ctx, q, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Listing, 0)
	for rows.Next() {
		var l model.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// ListAll returns every listing for public browsing, newest first.
func (r *ListingRepo) ListAll(ctx context.Context) ([]model.Listing, error) {
	const q = "SELECT " + listingColumns + " FROM listings ORDER BY id DESC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Listing, 0)
	for rows.Next() {
		var l model.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// Update rewrites the mutable fields of a listing owned by the given host.
// Returns ErrListingNotFound when no row matched.
func (r *ListingRepo) Update(ctx context.Context, l *model.Listing) error {
	const q = "UPDATE listings SET title=?, description=?, location=?, price_per_night=? WHERE id=? AND host_id=?"
	res, err := r.db.ExecContext(ctx, q, l.Title, l.Description, l.Location, l.PricePerNight, l.ID, l.HostID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrListingNotFound
	}
	return nil
}

// DeleteByIDAndHost removes a listing owned by the given host.  Returns
// ErrListingNotFound when no row matched.
func (r *ListingRepo) DeleteByIDAndHost(ctx context.Context, id, hostID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM listings WHERE id=? AND host_id=?", id, hostID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrListingNotFound
	}
	return nil
}
