package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Listing is a property published by a host that guests can book.
// Prices are stored as DECIMAL(10,2) in the database and handled with
// decimal.Decimal to avoid float rounding on money.
//
// Fields:
//  ID            – primary key identifier.
//  HostID        – user who owns the listing (role HOST).
//  Title         – short display name of the property.
//  Description   – free-form description text.
//  Location      – human-readable location string.
//  PricePerNight – nightly rate; must be greater than zero.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Listing struct {
    ID            uint64          // listings.id
    HostID        uint64          // listings.host_id
    Title         string          // listings.title
    Description   string          // listings.description
    Location      string          // listings.location
    PricePerNight decimal.Decimal // listings.price_per_night
    CreatedAt     time.Time       // listings.created_at
    UpdatedAt     time.Time       // listings.updated_at
}
