package handler

import (
    "database/sql"
    "encoding/json"
    "fmt"
    "net/http"
    "net/http/httptest"
    "strings"
    "sync"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    "github.com/mekbib/stayfinder/internal/config"
    "github.com/mekbib/stayfinder/internal/gateway"
    "github.com/mekbib/stayfinder/internal/model"
    "github.com/mekbib/stayfinder/internal/queue"
    "github.com/mekbib/stayfinder/internal/repository"
)

// fakeDispatcher records notification dispatches so tests can assert on
// exactly-once delivery without a broker.
type fakeDispatcher struct {
    mu    sync.Mutex
    calls []dispatchCall
}

type dispatchCall struct {
    kind      string
    email     string
    bookingID uint64
}

func (d *fakeDispatcher) Dispatch(kind, recipientEmail string, bookingID uint64) {
    d.mu.Lock()
    defer d.mu.Unlock()
    d.calls = append(d.calls, dispatchCall{kind: kind, email: recipientEmail, bookingID: bookingID})
}

func (d *fakeDispatcher) snapshot() []dispatchCall {
    d.mu.Lock()
    defer d.mu.Unlock()
    out := make([]dispatchCall, len(d.calls))
    copy(out, d.calls)
    return out
}

func testGatewayClient(baseURL string) *gateway.Client {
    return gateway.NewClient(config.GatewayConfig{
        BaseURL:   baseURL,
        SecretKey: "test-secret",
        Timeout:   2 * time.Second,
        Currency:  "ETB",
    }, zap.NewNop())
}

// deadGatewayClient points at a server that has already been shut down, so
// every call fails at the transport layer.
func deadGatewayClient(t *testing.T) *gateway.Client {
    t.Helper()
    srv := httptest.NewServer(http.NotFoundHandler())
    url := srv.URL
    srv.Close()
    return testGatewayClient(url)
}

func newGuestEnv(t *testing.T, gw *gateway.Client) (*GuestHandler, sqlmock.Sqlmock, *fakeDispatcher) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })

    disp := &fakeDispatcher{}
    h := NewGuestHandler(
        repository.NewListingRepo(db),
        repository.NewBookingRepo(db),
        repository.NewPaymentRepo(db),
        repository.NewReviewRepo(db),
        repository.NewUserRepo(db),
        gw,
        disp,
        "ETB",
        zap.NewNop(),
    )
    return h, mock, disp
}

// request runs one handler invocation as an authenticated guest.
func request(t *testing.T, fn echo.HandlerFunc, method, target, body string, userID uint64, params map[string]string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    var rdr *strings.Reader
    if body == "" {
        rdr = strings.NewReader("")
    } else {
        rdr = strings.NewReader(body)
    }
    req := httptest.NewRequest(method, target, rdr)
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", userID)
    for k, v := range params {
        c.SetParamNames(k)
        c.SetParamValues(v)
    }
    require.NoError(t, fn(c))
    return rec
}

func listingRows(id, hostID uint64, price string) *sqlmock.Rows {
    now := time.Now()
    return sqlmock.NewRows([]string{"id", "host_id", "title", "description", "location", "price_per_night", "created_at", "updated_at"}).
        AddRow(id, hostID, "Lakeside Cottage", "Two bedrooms by the lake", "Bahir Dar", price, now, now)
}

func userRows(id uint64, email string) *sqlmock.Rows {
    now := time.Now()
    return sqlmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "role", "is_active", "created_at", "updated_at"}).
        AddRow(id, email, "$2a$10$hash", "Abebe", "Kebede", model.RoleGuest, true, now, now)
}

func bookingRows(id, guestID, listingID uint64, total string, status model.BookingStatus) *sqlmock.Rows {
    now := time.Now()
    in := now.AddDate(0, 0, 7)
    out := now.AddDate(0, 0, 10)
    return sqlmock.NewRows([]string{"id", "guest_id", "listing_id", "check_in", "check_out", "total_price", "status", "created_at", "updated_at"}).
        AddRow(id, guestID, listingID, in, out, total, string(status), now, now)
}

func paymentRows(id, bookingID uint64, txRef, amount string, status model.PaymentStatus) *sqlmock.Rows {
    now := time.Now()
    return sqlmock.NewRows([]string{"id", "booking_id", "transaction_id", "amount", "payment_status", "created_at", "updated_at"}).
        AddRow(id, bookingID, txRef, amount, string(status), now, now)
}

// chapaInitOK is a stub gateway that accepts every initialization.
func chapaInitOK(t *testing.T) *httptest.Server {
    t.Helper()
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/transaction/initialize" {
            http.NotFound(w, r)
            return
        }
        fmt.Fprint(w, `{"message":"Hosted Link","status":"success","data":{"checkout_url":"https://checkout.chapa.co/pay/abc123"}}`)
    }))
    t.Cleanup(srv.Close)
    return srv
}

func chapaVerify(t *testing.T, txStatus string) *httptest.Server {
    t.Helper()
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.HasPrefix(r.URL.Path, "/transaction/verify/") {
            http.NotFound(w, r)
            return
        }
        fmt.Fprintf(w, `{"message":"verified","status":"success","data":{"status":%q}}`, txStatus)
    }))
    t.Cleanup(srv.Close)
    return srv
}

func futureDates() (string, string) {
    in := time.Now().AddDate(0, 0, 7)
    out := in.AddDate(0, 0, 3)
    return in.Format(dateLayout), out.Format(dateLayout)
}

func TestCreateBookingWithReachableGateway(t *testing.T) {
    srv := chapaInitOK(t)
    h, mock, disp := newGuestEnv(t, testGatewayClient(srv.URL))

    mock.ExpectQuery("SELECT (.+) FROM listings WHERE id = \\?").
        WithArgs(int64(5)).
        WillReturnRows(listingRows(5, 2, "1500.00"))
    mock.ExpectQuery("SELECT (.+) FROM users WHERE id=\\?").
        WithArgs(int64(9)).
        WillReturnRows(userRows(9, "guest@example.com"))
    mock.ExpectExec("INSERT INTO bookings").
        WillReturnResult(sqlmock.NewResult(42, 1))
    mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\?").
        WithArgs(int64(42)).
        WillReturnRows(bookingRows(42, 9, 5, "4500.00", model.BookingPending))
    mock.ExpectExec("INSERT INTO payments").
        WithArgs(int64(42), sqlmock.AnyArg(), sqlmock.AnyArg(), string(model.PaymentPending)).
        WillReturnResult(sqlmock.NewResult(7, 1))
    mock.ExpectQuery("SELECT (.+) FROM payments p WHERE p.id = \\?").
        WithArgs(int64(7)).
        WillReturnRows(paymentRows(7, 42, "42-deadbeef", "4500.00", model.PaymentPending))

    in, out := futureDates()
    body := fmt.Sprintf(`{"listing_id":5,"check_in":%q,"check_out":%q}`, in, out)
    rec := request(t, h.CreateBooking, http.MethodPost, "/v1/bookings", body, 9, nil)

    require.Equal(t, http.StatusCreated, rec.Code)
    var resp struct {
        Booking struct {
            ID         uint64          `json:"id"`
            TotalPrice decimal.Decimal `json:"total_price"`
        } `json:"booking"`
        CheckoutURL string `json:"checkout_url"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Equal(t, uint64(42), resp.Booking.ID)
    assert.True(t, resp.Booking.TotalPrice.Equal(decimal.NewFromInt(4500)),
        "3 nights at 1500.00 should total 4500, got %s", resp.Booking.TotalPrice)
    assert.Equal(t, "https://checkout.chapa.co/pay/abc123", resp.CheckoutURL)

    calls := disp.snapshot()
    require.Len(t, calls, 1)
    assert.Equal(t, queue.KindBookingConfirmed, calls[0].kind)
    assert.Equal(t, "guest@example.com", calls[0].email)
    assert.Equal(t, uint64(42), calls[0].bookingID)
    assert.NoError(t, mock.ExpectationsWereMet())
}

// A dead gateway must not fail booking creation: the booking and its PENDING
// payment row are still written, the response just has no checkout URL.
func TestCreateBookingSurvivesGatewayOutage(t *testing.T) {
    h, mock, disp := newGuestEnv(t, deadGatewayClient(t))

    mock.ExpectQuery("SELECT (.+) FROM listings WHERE id = \\?").
        WillReturnRows(listingRows(5, 2, "1500.00"))
    mock.ExpectQuery("SELECT (.+) FROM users WHERE id=\\?").
        WillReturnRows(userRows(9, "guest@example.com"))
    mock.ExpectExec("INSERT INTO bookings").
        WillReturnResult(sqlmock.NewResult(42, 1))
    mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\?").
        WillReturnRows(bookingRows(42, 9, 5, "4500.00", model.BookingPending))
    mock.ExpectExec("INSERT INTO payments").
        WithArgs(int64(42), sqlmock.AnyArg(), sqlmock.AnyArg(), string(model.PaymentPending)).
        WillReturnResult(sqlmock.NewResult(7, 1))
    mock.ExpectQuery("SELECT (.+) FROM payments p WHERE p.id = \\?").
        WillReturnRows(paymentRows(7, 42, "42-deadbeef", "4500.00", model.PaymentPending))

    in, out := futureDates()
    body := fmt.Sprintf(`{"listing_id":5,"check_in":%q,"check_out":%q}`, in, out)
    rec := request(t, h.CreateBooking, http.MethodPost, "/v1/bookings", body, 9, nil)

    require.Equal(t, http.StatusCreated, rec.Code)
    assert.NotContains(t, rec.Body.String(), "checkout_url")
    assert.Len(t, disp.snapshot(), 1, "booking confirmation still goes out")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
    h, mock, _ := newGuestEnv(t, deadGatewayClient(t))
    in, out := futureDates()

    cases := []struct {
        name string
        body string
    }{
        {"missing listing", fmt.Sprintf(`{"check_in":%q,"check_out":%q}`, in, out)},
        {"garbage check_in", fmt.Sprintf(`{"listing_id":5,"check_in":"07/12/2026","check_out":%q}`, out)},
        {"check_out before check_in", fmt.Sprintf(`{"listing_id":5,"check_in":%q,"check_out":%q}`, out, in)},
        {"zero-night stay", fmt.Sprintf(`{"listing_id":5,"check_in":%q,"check_out":%q}`, in, in)},
        {"check_in in the past", `{"listing_id":5,"check_in":"2020-01-01","check_out":"2020-01-05"}`},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            rec := request(t, h.CreateBooking, http.MethodPost, "/v1/bookings", tc.body, 9, nil)
            assert.Equal(t, http.StatusBadRequest, rec.Code)
        })
    }
    // Validation failures must never touch the database.
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentValidation(t *testing.T) {
    h, mock, _ := newGuestEnv(t, deadGatewayClient(t))

    cases := []struct {
        name string
        body string
    }{
        {"missing booking", `{"amount":"100.00"}`},
        {"missing amount", `{"booking":42}`},
        {"non-numeric amount", `{"booking":42,"amount":"lots"}`},
        {"zero amount", `{"booking":42,"amount":"0"}`},
        {"negative amount", `{"booking":42,"amount":"-5.00"}`},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            rec := request(t, h.CreatePayment, http.MethodPost, "/v1/payments", tc.body, 9, nil)
            assert.Equal(t, http.StatusBadRequest, rec.Code)
        })
    }
    assert.NoError(t, mock.ExpectationsWereMet())
}

// Explicit payment creation is strict: a gateway rejection surfaces as 502
// and no payment row is written.
func TestCreatePaymentGatewayRejected(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusBadRequest)
        fmt.Fprint(w, `{"message":"Invalid currency","status":"failed","data":null}`)
    }))
    t.Cleanup(srv.Close)
    h, mock, disp := newGuestEnv(t, testGatewayClient(srv.URL))

    mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\? AND guest_id = \\?").
        WithArgs(int64(42), int64(9)).
        WillReturnRows(bookingRows(42, 9, 5, "4500.00", model.BookingPending))
    mock.ExpectQuery("SELECT (.+) FROM users WHERE id=\\?").
        WillReturnRows(userRows(9, "guest@example.com"))

    rec := request(t, h.CreatePayment, http.MethodPost, "/v1/payments", `{"booking":42,"amount":"4500.00"}`, 9, nil)

    require.Equal(t, http.StatusBadGateway, rec.Code)
    assert.Contains(t, rec.Body.String(), "Invalid currency")
    assert.Empty(t, disp.snapshot())
    assert.NoError(t, mock.ExpectationsWereMet(), "no payment row on rejection")
}

func TestCreatePaymentGatewayUnreachable(t *testing.T) {
    h, mock, _ := newGuestEnv(t, deadGatewayClient(t))

    mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\? AND guest_id = \\?").
        WillReturnRows(bookingRows(42, 9, 5, "4500.00", model.BookingPending))
    mock.ExpectQuery("SELECT (.+) FROM users WHERE id=\\?").
        WillReturnRows(userRows(9, "guest@example.com"))

    rec := request(t, h.CreatePayment, http.MethodPost, "/v1/payments", `{"booking":42,"amount":"4500.00"}`, 9, nil)

    require.Equal(t, http.StatusBadGateway, rec.Code)
    assert.Contains(t, rec.Body.String(), "unreachable")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentSuccess(t *testing.T) {
    srv := chapaInitOK(t)
    h, mock, _ := newGuestEnv(t, testGatewayClient(srv.URL))

    mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\? AND guest_id = \\?").
        WillReturnRows(bookingRows(42, 9, 5, "4500.00", model.BookingPending))
    mock.ExpectQuery("SELECT (.+) FROM users WHERE id=\\?").
        WillReturnRows(userRows(9, "guest@example.com"))
    mock.ExpectExec("INSERT INTO payments").
        WithArgs(int64(42), sqlmock.AnyArg(), sqlmock.AnyArg(), string(model.PaymentPending)).
        WillReturnResult(sqlmock.NewResult(7, 1))
    mock.ExpectQuery("SELECT (.+) FROM payments p WHERE p.id = \\?").
        WillReturnRows(paymentRows(7, 42, "42-deadbeef", "4500.00", model.PaymentPending))

    rec := request(t, h.CreatePayment, http.MethodPost, "/v1/payments", `{"booking":42,"amount":"4500.00"}`, 9, nil)

    require.Equal(t, http.StatusCreated, rec.Code)
    assert.Contains(t, rec.Body.String(), "https://checkout.chapa.co/pay/abc123")
    assert.Contains(t, rec.Body.String(), `"status":"PENDING"`)
    assert.NoError(t, mock.ExpectationsWereMet())
}

// Payments on other guests' bookings look exactly like payments that do not
// exist.
func TestCreatePaymentBookingNotOwned(t *testing.T) {
    h, mock, _ := newGuestEnv(t, deadGatewayClient(t))

    mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\? AND guest_id = \\?").
        WillReturnError(sql.ErrNoRows)

    rec := request(t, h.CreatePayment, http.MethodPost, "/v1/payments", `{"booking":42,"amount":"4500.00"}`, 9, nil)
    assert.Equal(t, http.StatusNotFound, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPaymentSuccessCompletesAndNotifiesOnce(t *testing.T) {
    srv := chapaVerify(t, "success")
    h, mock, disp := newGuestEnv(t, testGatewayClient(srv.URL))

    mock.ExpectQuery("JOIN bookings b ON b.id = p.booking_id").
        WithArgs(int64(7), int64(9)).
        WillReturnRows(paymentRows(7, 42, "42-deadbeef", "4500.00", model.PaymentPending))
    mock.ExpectExec("UPDATE payments SET payment_status=\\? WHERE id=\\?").
        WithArgs(string(model.PaymentCompleted), int64(7)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec("UPDATE bookings SET status=\\? WHERE id=\\?").
        WithArgs(string(model.BookingConfirmed), int64(42)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectQuery("SELECT (.+) FROM users WHERE id=\\?").
        WillReturnRows(userRows(9, "guest@example.com"))

    rec := request(t, h.VerifyPayment, http.MethodGet, "/v1/payments/7/verify", "", 9, map[string]string{"id": "7"})

    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"status":"COMPLETED"`)

    calls := disp.snapshot()
    require.Len(t, calls, 1)
    assert.Equal(t, queue.KindPaymentConfirmed, calls[0].kind)
    assert.Equal(t, uint64(42), calls[0].bookingID)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPaymentFailedNoNotification(t *testing.T) {
    srv := chapaVerify(t, "failed")
    h, mock, disp := newGuestEnv(t, testGatewayClient(srv.URL))

    mock.ExpectQuery("JOIN bookings b ON b.id = p.booking_id").
        WillReturnRows(paymentRows(7, 42, "42-deadbeef", "4500.00", model.PaymentPending))
    mock.ExpectExec("UPDATE payments SET payment_status=\\? WHERE id=\\?").
        WithArgs(string(model.PaymentFailed), int64(7)).
        WillReturnResult(sqlmock.NewResult(0, 1))

    rec := request(t, h.VerifyPayment, http.MethodGet, "/v1/payments/7/verify", "", 9, map[string]string{"id": "7"})

    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"status":"FAILED"`)
    assert.Empty(t, disp.snapshot())
    assert.NoError(t, mock.ExpectationsWereMet())
}

// A verification call that cannot reach the gateway says nothing about the
// payment, so the stored status must not move.
func TestVerifyPaymentGatewayUnreachableKeepsStatus(t *testing.T) {
    h, mock, disp := newGuestEnv(t, deadGatewayClient(t))

    mock.ExpectQuery("JOIN bookings b ON b.id = p.booking_id").
        WillReturnRows(paymentRows(7, 42, "42-deadbeef", "4500.00", model.PaymentPending))

    rec := request(t, h.VerifyPayment, http.MethodGet, "/v1/payments/7/verify", "", 9, map[string]string{"id": "7"})

    require.Equal(t, http.StatusBadGateway, rec.Code)
    assert.Empty(t, disp.snapshot())
    assert.NoError(t, mock.ExpectationsWereMet(), "no status update on gateway fault")
}

func TestVerifyPaymentNotOwned(t *testing.T) {
    h, mock, _ := newGuestEnv(t, deadGatewayClient(t))

    mock.ExpectQuery("JOIN bookings b ON b.id = p.booking_id").
        WillReturnError(sql.ErrNoRows)

    rec := request(t, h.VerifyPayment, http.MethodGet, "/v1/payments/7/verify", "", 9, map[string]string{"id": "7"})
    assert.Equal(t, http.StatusNotFound, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

// Re-verifying an already completed payment is idempotent: the status stays
// COMPLETED and the confirmation email is not sent again.
func TestVerifyPaymentAlreadyCompletedIsIdempotent(t *testing.T) {
    srv := chapaVerify(t, "success")
    h, mock, disp := newGuestEnv(t, testGatewayClient(srv.URL))

    mock.ExpectQuery("JOIN bookings b ON b.id = p.booking_id").
        WillReturnRows(paymentRows(7, 42, "42-deadbeef", "4500.00", model.PaymentCompleted))
    mock.ExpectExec("UPDATE payments SET payment_status=\\? WHERE id=\\?").
        WithArgs(string(model.PaymentCompleted), int64(7)).
        WillReturnResult(sqlmock.NewResult(0, 0))

    rec := request(t, h.VerifyPayment, http.MethodGet, "/v1/payments/7/verify", "", 9, map[string]string{"id": "7"})

    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"status":"COMPLETED"`)
    assert.Empty(t, disp.snapshot(), "no duplicate confirmation email")
    assert.NoError(t, mock.ExpectationsWereMet())
}

// A gateway that reports failed for a completed payment must not drag the
// status backwards.
func TestVerifyPaymentCompletedNeverRegresses(t *testing.T) {
    srv := chapaVerify(t, "failed")
    h, mock, disp := newGuestEnv(t, testGatewayClient(srv.URL))

    mock.ExpectQuery("JOIN bookings b ON b.id = p.booking_id").
        WillReturnRows(paymentRows(7, 42, "42-deadbeef", "4500.00", model.PaymentCompleted))
    mock.ExpectExec("UPDATE payments SET payment_status=\\? WHERE id=\\?").
        WithArgs(string(model.PaymentCompleted), int64(7)).
        WillReturnResult(sqlmock.NewResult(0, 0))

    rec := request(t, h.VerifyPayment, http.MethodGet, "/v1/payments/7/verify", "", 9, map[string]string{"id": "7"})

    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"status":"COMPLETED"`)
    assert.Empty(t, disp.snapshot())
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingPending(t *testing.T) {
    h, mock, _ := newGuestEnv(t, deadGatewayClient(t))

    mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\? AND guest_id = \\?").
        WithArgs(int64(42), int64(9)).
        WillReturnRows(bookingRows(42, 9, 5, "4500.00", model.BookingPending))
    mock.ExpectExec("UPDATE bookings SET status=\\? WHERE id=\\?").
        WithArgs(string(model.BookingCanceled), int64(42)).
        WillReturnResult(sqlmock.NewResult(0, 1))

    rec := request(t, h.CancelBooking, http.MethodDelete, "/v1/bookings/42", "", 9, map[string]string{"id": "42"})
    assert.Equal(t, http.StatusNoContent, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

// A booking that has already been paid for cannot be canceled.
func TestCancelBookingConfirmedConflicts(t *testing.T) {
    h, mock, _ := newGuestEnv(t, deadGatewayClient(t))

    mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\? AND guest_id = \\?").
        WillReturnRows(bookingRows(42, 9, 5, "4500.00", model.BookingConfirmed))

    rec := request(t, h.CancelBooking, http.MethodDelete, "/v1/bookings/42", "", 9, map[string]string{"id": "42"})
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPayments(t *testing.T) {
    h, mock, _ := newGuestEnv(t, deadGatewayClient(t))

    rows := paymentRows(8, 42, "42-aaaa1111", "4500.00", model.PaymentCompleted)
    now := time.Now()
    rows.AddRow(7, 42, "42-bbbb2222", "4500.00", string(model.PaymentFailed), now, now)
    mock.ExpectQuery("JOIN bookings b ON b.id = p.booking_id").
        WithArgs(int64(9)).
        WillReturnRows(rows)

    rec := request(t, h.ListPayments, http.MethodGet, "/v1/payments", "", 9, nil)

    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), "42-aaaa1111")
    assert.Contains(t, rec.Body.String(), `"status":"FAILED"`)
    assert.NoError(t, mock.ExpectationsWereMet())
}
