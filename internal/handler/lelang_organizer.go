package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lelang-masjid/internal/lelang"
    "github.com/iliyamo/lelang-masjid/internal/middleware"
    "github.com/iliyamo/lelang-masjid/internal/model"
)

type createItemRequest struct {
    Name          string          `json:"name"`
    Description   string          `json:"description"`
    Condition     model.Condition `json:"condition"`
    ImageRef      string          `json:"image_ref"`
    StartingPrice int64           `json:"starting_price"`
    DurationHours int             `json:"duration_hours"`
}

// CreateItem handles POST /v1/organizer/lelang and stores a DRAFT item
// owned by the signed-in organizer.
func (h *LelangHandler) CreateItem(c echo.Context) error {
    var body createItemRequest
    if err := c.Bind(&body); err != nil {
        return badBody(c)
    }
    item, err := h.Svc.Create(c.Request().Context(), lelang.CreateInput{
        Name:          body.Name,
        Description:   body.Description,
        Condition:     body.Condition,
        ImageRef:      body.ImageRef,
        StartingPrice: body.StartingPrice,
        DurationHours: body.DurationHours,
        CreatedBy:     middleware.Subject(c),
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, item)
}

// ListItems handles GET /v1/organizer/lelang.  The optional state query
// parameter filters by lifecycle state.
func (h *LelangHandler) ListItems(c echo.Context) error {
    views, err := h.Svc.List(c.Request().Context(), model.State(c.QueryParam("state")))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": views})
}

// Start handles POST /v1/organizer/lelang/:id/start.
func (h *LelangHandler) Start(c echo.Context) error {
    id, ok := auctionID(c)
    if !ok {
        return badID(c)
    }
    item, err := h.Svc.Start(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, item)
}

// Finish handles POST /v1/organizer/lelang/:id/finish.  Finishing an
// already completed auction returns it unchanged.
func (h *LelangHandler) Finish(c echo.Context) error {
    id, ok := auctionID(c)
    if !ok {
        return badID(c)
    }
    item, err := h.Svc.Finish(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, item)
}

type cancelRequest struct {
    Reason string `json:"reason"`
}

// Cancel handles POST /v1/organizer/lelang/:id/cancel with {"reason": ...}.
func (h *LelangHandler) Cancel(c echo.Context) error {
    id, ok := auctionID(c)
    if !ok {
        return badID(c)
    }
    var body cancelRequest
    if err := c.Bind(&body); err != nil {
        return badBody(c)
    }
    item, err := h.Svc.Cancel(c.Request().Context(), id, body.Reason)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, item)
}
