package middleware // package middleware holds the echo middleware shared by the route groups

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lelang-masjid/internal/utils"
)

// Context keys set by JWTAuth.
const (
    ctxUserID = "user_id"
    ctxRole   = "role"
)

// JWTAuth validates the Bearer token of the request with secret and stores
// its subject and role in the echo context.  Requests without a valid
// token are answered with 401 and never reach the handler.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get(echo.HeaderAuthorization)
            raw, ok := strings.CutPrefix(auth, "Bearer ")
            if !ok || strings.TrimSpace(raw) == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            claims, err := utils.ParseAccessToken(secret, strings.TrimSpace(raw))
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            if claims.Subject == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }
            c.Set(ctxUserID, claims.Subject)
            c.Set(ctxRole, claims.Role)
            return next(c)
        }
    }
}
