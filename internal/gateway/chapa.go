// Package gateway encapsulates outbound calls to the Chapa payment gateway.
// Transport failures and malformed responses are normalized into typed
// outcomes (ErrUnreachable, *RejectedError) so that callers can decide
// persistence behavior instead of catching generic errors.  The client never
// panics on a bad response body.
package gateway

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "strings"

    "github.com/go-resty/resty/v2"
    "go.uber.org/zap"

    "github.com/mekbib/stayfinder/internal/config"
)

// ErrUnreachable is returned when the gateway cannot be reached at all:
// connection refused, DNS failure or the per-request timeout expiring.
// It says nothing about the fate of the underlying payment.
var ErrUnreachable = errors.New("payment gateway unreachable")

// RejectedError is returned when the gateway was reachable but did not
// accept the request: a non-2xx HTTP status, or a 200 response whose body
// lacks the expected success marker.  Details carries the raw response for
// diagnostics in 502 responses and logs.
type RejectedError struct {
    HTTPStatus string // HTTP status line of the gateway response
    Details    string // raw response body, truncated
}

func (e *RejectedError) Error() string {
    return fmt.Sprintf("payment gateway rejected request (%s): %s", e.HTTPStatus, e.Details)
}

// VerifyOutcome is the normalized result of a verification call.  Anything
// the gateway reports that is neither success nor failed is treated as
// pending-or-unknown.
type VerifyOutcome int

const (
    VerifyPending VerifyOutcome = iota // transaction still pending or in an unknown state
    VerifySuccess                      // gateway confirmed the payment
    VerifyFailed                       // gateway reported the payment as failed
)

// InitializeRequest carries the fields Chapa requires to create a
// transaction.  Amount is formatted as a string because the gateway API
// expects it that way.
type InitializeRequest struct {
    Amount    string `json:"amount"`
    Currency  string `json:"currency"`
    Email     string `json:"email"`
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
    TxRef     string `json:"tx_ref"`
}

// initializeResponse mirrors the gateway's initialize response body.
type initializeResponse struct {
    Message string `json:"message"`
    Status  string `json:"status"`
    Data    struct {
        CheckoutURL string `json:"checkout_url"`
    } `json:"data"`
}

// verifyResponse mirrors the gateway's verify response body.  Only the
// nested transaction status matters to callers.
type verifyResponse struct {
    Message string `json:"message"`
    Status  string `json:"status"`
    Data    struct {
        Status string `json:"status"` // "success", "failed", "pending", ...
    } `json:"data"`
}

// Client issues HTTP calls against the gateway.  Construct it with NewClient;
// the secret key and timeout come from the injected configuration, never
// from process-wide state.
type Client struct {
    rc  *resty.Client
    log *zap.Logger
}

// NewClient builds a gateway client from configuration.  Every request uses
// the configured base URL, bearer token and timeout.
func NewClient(cfg config.GatewayConfig, log *zap.Logger) *Client {
    rc := resty.New().
        SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
        SetAuthToken(cfg.SecretKey).
        SetTimeout(cfg.Timeout)
    return &Client{rc: rc, log: log}
}

// Initialize creates a transaction at the gateway and returns the hosted
// checkout URL the payer should be redirected to.  The error is either
// ErrUnreachable (wrapped) or a *RejectedError; no other failure modes
// escape this method.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (string, error) {
    resp, err := c.rc.R().
        SetContext(ctx).
        SetHeader("Content-Type", "application/json").
        SetBody(req).
        Post("/transaction/initialize")
    if err != nil {
        c.log.Warn("gateway initialize failed", zap.String("tx_ref", req.TxRef), zap.Error(err))
        return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
    }
    if resp.IsError() {
        c.log.Warn("gateway initialize rejected",
            zap.String("tx_ref", req.TxRef), zap.String("status", resp.Status()))
        return "", &RejectedError{HTTPStatus: resp.Status(), Details: truncate(resp.String())}
    }
    // The body is decoded by hand so a garbled 200 counts as a rejection,
    // not as the gateway being unreachable.
    var ok initializeResponse
    if jsonErr := json.Unmarshal(resp.Body(), &ok); jsonErr != nil ||
        ok.Status != "success" || ok.Data.CheckoutURL == "" {
        return "", &RejectedError{HTTPStatus: resp.Status(), Details: truncate(resp.String())}
    }
    return ok.Data.CheckoutURL, nil
}

// Verify asks the gateway for the current state of a transaction.  The
// returned outcome only describes the payment itself; a gateway-side fault
// is reported through the error instead, because a failed verification call
// is not evidence that the payment failed.
func (c *Client) Verify(ctx context.Context, txRef string) (VerifyOutcome, error) {
    resp, err := c.rc.R().
        SetContext(ctx).
        Get("/transaction/verify/" + txRef)
    if err != nil {
        c.log.Warn("gateway verify failed", zap.String("tx_ref", txRef), zap.Error(err))
        return VerifyPending, fmt.Errorf("%w: %v", ErrUnreachable, err)
    }
    var ok verifyResponse
    if jsonErr := json.Unmarshal(resp.Body(), &ok); resp.IsError() || jsonErr != nil || ok.Status != "success" {
        c.log.Warn("gateway verify rejected",
            zap.String("tx_ref", txRef), zap.String("status", resp.Status()))
        return VerifyPending, &RejectedError{HTTPStatus: resp.Status(), Details: truncate(resp.String())}
    }
    switch strings.ToLower(ok.Data.Status) {
    case "success":
        return VerifySuccess, nil
    case "failed":
        return VerifyFailed, nil
    default:
        return VerifyPending, nil
    }
}

// truncate caps diagnostic payloads so a huge gateway response cannot bloat
// error messages or log lines.
func truncate(s string) string {
    const max = 512
    if len(s) > max {
        return s[:max]
    }
    return s
}
