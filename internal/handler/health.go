package handler // package handler holds the echo handlers of the lelang API

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
)

// Health returns the /healthz handler.  ping, when non-nil, checks the
// backing store; a failing ping answers 503 so load balancers stop
// routing bids to an instance that cannot record them.
func Health(ping func(ctx context.Context) error) echo.HandlerFunc {
    return func(c echo.Context) error {
        if ping != nil {
            ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
            defer cancel()
            if err := ping(ctx); err != nil {
                return c.String(http.StatusServiceUnavailable, "store unavailable")
            }
        }
        return c.String(http.StatusOK, "ok")
    }
}
