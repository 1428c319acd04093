package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lelang-masjid/internal/lelang"
    "github.com/iliyamo/lelang-masjid/internal/model"
)

// LelangHandler serves the auction API for both the public and the
// organizer (panitia) routes.
type LelangHandler struct {
    Svc *lelang.Service
}

// NewLelangHandler panics when svc is nil.
func NewLelangHandler(svc *lelang.Service) *LelangHandler {
    if svc == nil {
        panic("nil service passed to NewLelangHandler")
    }
    return &LelangHandler{Svc: svc}
}

// PublicBid is a bid as shown to the public: the contact is masked.
type PublicBid struct {
    Sequence   int       `json:"sequence"`
    BidderName string    `json:"bidder_name"`
    Contact    string    `json:"contact,omitempty"`
    Amount     int64     `json:"amount"`
    AcceptedAt time.Time `json:"accepted_at"`
}

func publicBid(b model.Bid) PublicBid {
    return PublicBid{
        Sequence:   b.Sequence,
        BidderName: b.BidderName,
        Contact:    lelang.MaskContact(b.Contact),
        Amount:     b.Amount,
        AcceptedAt: b.AcceptedAt,
    }
}

// ListActive handles GET /v1/lelang.  Clients poll it for the running
// auctions with their remaining time.
func (h *LelangHandler) ListActive(c echo.Context) error {
    views, err := h.Svc.ListActive(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": views})
}

// GetDetail handles GET /v1/lelang/:id.
func (h *LelangHandler) GetDetail(c echo.Context) error {
    id, ok := auctionID(c)
    if !ok {
        return badID(c)
    }
    view, err := h.Svc.GetDetail(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, view)
}

// GetBidHistory handles GET /v1/lelang/:id/bids.
func (h *LelangHandler) GetBidHistory(c echo.Context) error {
    id, ok := auctionID(c)
    if !ok {
        return badID(c)
    }
    bids, err := h.Svc.GetBidHistory(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    out := make([]PublicBid, 0, len(bids))
    for _, b := range bids {
        out = append(out, publicBid(b))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

type submitBidRequest struct {
    BidderName string `json:"bidder_name"`
    Contact    string `json:"contact"`
    Amount     int64  `json:"amount"`
}

// SubmitBid handles POST /v1/lelang/:id/bids.  On success it answers 201
// with the recorded bid and the auction as it stands after the bid.
func (h *LelangHandler) SubmitBid(c echo.Context) error {
    id, ok := auctionID(c)
    if !ok {
        return badID(c)
    }
    var body submitBidRequest
    if err := c.Bind(&body); err != nil {
        return badBody(c)
    }
    ctx := c.Request().Context()
    bid, err := h.Svc.SubmitBid(ctx, id, lelang.BidInput{
        BidderName: body.BidderName,
        Contact:    body.Contact,
        Amount:     body.Amount,
    })
    if err != nil {
        return respondError(c, err)
    }
    view, err := h.Svc.GetDetail(ctx, id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"bid": publicBid(*bid), "auction": view})
}
