package middleware

import "github.com/labstack/echo/v4"

// Subject returns the authenticated subject stored by JWTAuth, or "" for
// anonymous requests.
func Subject(c echo.Context) string {
    s, _ := c.Get(ctxUserID).(string)
    return s
}

// callerKey identifies the caller for rate limiting: the subject when
// signed in, "anon" otherwise.
func callerKey(c echo.Context) string {
    if s := Subject(c); s != "" {
        return s
    }
    return "anon"
}
