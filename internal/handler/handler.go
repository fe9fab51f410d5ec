package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"clienttrack/internal/middleware"
	"clienttrack/internal/session"
)

// flasher gives handlers one-shot notifications tied to the session token.
type flasher struct {
	flashes *session.FlashStore
}

func (f *flasher) flash(c echo.Context, level, message string) {
	token := middleware.Token(c)
	if token == "" {
		return
	}
	_ = f.flashes.Push(c.Request().Context(), token, level, message)
}

// pop drains pending flashes for the current render.
func (f *flasher) pop(c echo.Context) []session.Flash {
	token := middleware.Token(c)
	if token == "" {
		return nil
	}
	return f.flashes.Pop(c.Request().Context(), token)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
