package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clienttrack/internal/session"
)

const (
	contextUserIDKey = "session_user_id"
	contextTokenKey  = "session_token"
)

// RequireSession resolves the session cookie to a user id and stashes it in
// the request context. Requests without a live session are redirected to
// the login page. Every repository-touching route sits behind this guard.
func RequireSession(store *session.Store, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			userID, err := store.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			c.Set(contextUserIDKey, userID)
			c.Set(contextTokenKey, cookie.Value)
			return next(c)
		}
	}
}

// UserID returns the authenticated user id set by RequireSession.
func UserID(c echo.Context) uint {
	id, _ := c.Get(contextUserIDKey).(uint)
	return id
}

// Token returns the session token set by RequireSession.
func Token(c echo.Context) string {
	token, _ := c.Get(contextTokenKey).(string)
	return token
}

// NoCache forbids caching of every response so stale account data never
// survives a logout.
func NoCache() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
			h.Set("Expires", "0")
			h.Set("Pragma", "no-cache")
			return next(c)
		}
	}
}
