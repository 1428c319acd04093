package handler

import (
    "errors"
    "log/slog"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lelang-masjid/internal/lelang"
)

// errorCodes pairs each engine sentinel with its HTTP status and a stable
// machine-readable code for clients.
var errorCodes = []struct {
    err    error
    status int
    code   string
}{
    {lelang.ErrAuctionNotFound, http.StatusNotFound, "auction_not_found"},
    {lelang.ErrInvalidBidder, http.StatusBadRequest, "invalid_bidder"},
    {lelang.ErrInvalidContact, http.StatusBadRequest, "invalid_contact"},
    {lelang.ErrReasonRequired, http.StatusBadRequest, "reason_required"},
    {lelang.ErrInvalidItem, http.StatusBadRequest, "invalid_item"},
    {lelang.ErrBidTooHigh, http.StatusBadRequest, "bid_too_high"},
    {lelang.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
    {lelang.ErrAuctionNotActive, http.StatusConflict, "auction_not_active"},
    {lelang.ErrAuctionExpired, http.StatusConflict, "auction_expired"},
    {lelang.ErrBidTooLow, http.StatusConflict, "bid_too_low"},
}

// respondError writes the JSON error body for err.  Unknown errors are
// logged and reported as a bare 500.
func respondError(c echo.Context, err error) error {
    for _, ec := range errorCodes {
        if !errors.Is(err, ec.err) {
            continue
        }
        body := echo.Map{"code": ec.code, "error": err.Error()}
        if minBid, ok := lelang.MinimumBidOf(err); ok {
            body["minimum_bid"] = minBid
        }
        return c.JSON(ec.status, body)
    }
    slog.Error("handler: request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"code": "internal", "error": "internal server error"})
}

// auctionID parses the :id path parameter.
func auctionID(c echo.Context) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    return id, err == nil && id > 0
}

func badID(c echo.Context) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"code": "invalid_id", "error": "invalid auction id"})
}

func badBody(c echo.Context) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"code": "invalid_body", "error": "invalid request body"})
}
