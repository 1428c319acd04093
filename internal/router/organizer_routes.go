package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lelang-masjid/internal/handler"
    "github.com/iliyamo/lelang-masjid/internal/middleware"
    "github.com/iliyamo/lelang-masjid/internal/utils"
)

// RegisterOrganizer registers the panitia routes under /v1/organizer.
// All of them require a valid JWT carrying the ORGANIZER role.
func RegisterOrganizer(e *echo.Echo, h *handler.LelangHandler, jwtSecret string) {
    g := e.Group(
        "/v1/organizer",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(utils.RoleOrganizer),
    )
    g.POST("/lelang", h.CreateItem)
    g.GET("/lelang", h.ListItems)
    g.POST("/lelang/:id/start", h.Start)
    g.POST("/lelang/:id/finish", h.Finish)
    g.POST("/lelang/:id/cancel", h.Cancel)
}
