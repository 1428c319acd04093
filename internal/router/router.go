package router // package router wires handlers and middleware onto the echo instance

import (
    "context"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lelang-masjid/internal/handler"
)

// RegisterRoutes registers the unauthenticated operational routes.  ping
// checks the store and may be nil.
func RegisterRoutes(e *echo.Echo, ping func(ctx context.Context) error) {
    e.GET("/healthz", handler.Health(ping))
}

// RegisterPublic registers the bidder-facing routes under /v1/lelang.
// cache wraps the polled read endpoints and limit wraps bid submission;
// either may be a pass-through.  Bid history is never cached so a bidder
// always sees their own bid right after placing it.
func RegisterPublic(e *echo.Echo, h *handler.LelangHandler, cache, limit echo.MiddlewareFunc) {
    g := e.Group("/v1/lelang")
    g.GET("", h.ListActive, cache)
    g.GET("/:id", h.GetDetail, cache)
    g.GET("/:id/bids", h.GetBidHistory)
    g.POST("/:id/bids", h.SubmitBid, limit)
}
