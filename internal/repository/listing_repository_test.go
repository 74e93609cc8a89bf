package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/shopspring/decimal"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/mekbib/stayfinder/internal/model"
)

func newListingRepo(t *testing.T) (*ListingRepo, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewListingRepo(db), mock
}

func listingRow(id, hostID uint64, price string) *sqlmock.Rows {
    now := time.Now()
    return sqlmock.NewRows([]string{"id", "host_id", "title", "description", "location", "price_per_night", "created_at", "updated_at"}).
        AddRow(id, hostID, "Garden Studio", "Quiet studio with a garden", "Addis Ababa", price, now, now)
}

func TestListingCreatePopulatesGeneratedFields(t *testing.T) {
    repo, mock := newListingRepo(t)

    mock.ExpectExec("INSERT INTO listings").
        WithArgs(int64(2), "Garden Studio", "Quiet studio with a garden", "Addis Ababa", sqlmock.AnyArg()).
        WillReturnResult(sqlmock.NewResult(11, 1))
    mock.ExpectQuery("SELECT (.+) FROM listings WHERE id = \\?").
        WithArgs(int64(11)).
        WillReturnRows(listingRow(11, 2, "950.00"))

    l := &model.Listing{
        HostID:        2,
        Title:         "Garden Studio",
        Description:   "Quiet studio with a garden",
        Location:      "Addis Ababa",
        PricePerNight: decimal.RequireFromString("950.00"),
    }
    require.NoError(t, repo.Create(context.Background(), l))
    assert.Equal(t, uint64(11), l.ID)
    assert.False(t, l.CreatedAt.IsZero())
    assert.NoError(t, mock.ExpectationsWereMet())
}

// A listing owned by another host scans as no rows, which surfaces as the
// same not-found error an absent listing produces.
func TestListingGetByIDAndHostScopesOwnership(t *testing.T) {
    repo, mock := newListingRepo(t)

    mock.ExpectQuery("SELECT (.+) FROM listings WHERE id = \\? AND host_id = \\?").
        WithArgs(int64(11), int64(99)).
        WillReturnRows(sqlmock.NewRows([]string{"id", "host_id", "title", "description", "location", "price_per_night", "created_at", "updated_at"}))

    _, err := repo.GetByIDAndHost(context.Background(), 11, 99)
    assert.ErrorIs(t, err, ErrListingNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingUpdateReportsNotFoundOnZeroRows(t *testing.T) {
    repo, mock := newListingRepo(t)

    mock.ExpectExec("UPDATE listings SET").
        WillReturnResult(sqlmock.NewResult(0, 0))

    l := &model.Listing{
        ID:            11,
        HostID:        99,
        Title:         "Garden Studio",
        Location:      "Addis Ababa",
        PricePerNight: decimal.RequireFromString("950.00"),
    }
    err := repo.Update(context.Background(), l)
    assert.ErrorIs(t, err, ErrListingNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingDeleteByIDAndHost(t *testing.T) {
    repo, mock := newListingRepo(t)

    mock.ExpectExec("DELETE FROM listings WHERE id=\\? AND host_id=\\?").
        WithArgs(int64(11), int64(2)).
        WillReturnResult(sqlmock.NewResult(0, 1))

    require.NoError(t, repo.DeleteByIDAndHost(context.Background(), 11, 2))
    assert.NoError(t, mock.ExpectationsWereMet())
}
