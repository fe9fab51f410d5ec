package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clienttrack/internal/service"
	"clienttrack/internal/session"
)

// AuthHandler handles login, logout and registration pages.
type AuthHandler struct {
	authService service.AuthService
	cookieName  string
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{authService: authService, cookieName: cookieName}
}

// LoginRequest represents a login form submission.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RegisterRequest represents a registration form submission.
type RegisterRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required,min=6"`
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{"Title": "Log In"})
}

// Login authenticates the user and opens a session. The form is redisplayed
// with one generic message for any failure so the page never reveals
// whether the username or the password was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", echo.Map{
			"Title": "Log In",
			"Error": "Invalid username or password",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusUnauthorized, "login.html", echo.Map{
			"Title": "Log In",
			"Error": "Invalid username or password",
		})
	}

	_, token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return c.Render(http.StatusUnauthorized, "login.html", echo.Map{
			"Title": "Log In",
			"Error": "Invalid username or password",
		})
	}

	h.setSessionCookie(c, token, int(session.TTL.Seconds()))
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout closes the session unconditionally and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		_ = h.authService.Logout(c.Request().Context(), cookie.Value)
	}
	h.setSessionCookie(c, "", -1)
	return c.Redirect(http.StatusSeeOther, "/")
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", echo.Map{"Title": "Register"})
}

// Register creates a user and opens a session. A taken username redisplays
// the form with its own message; anything else stays generic.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "register.html", echo.Map{
			"Title": "Register",
			"Error": "Username and password are required",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusBadRequest, "register.html", echo.Map{
			"Title": "Register",
			"Error": "Username and a password of at least 6 characters are required",
		})
	}

	_, token, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		message := "Registration failed"
		if err == service.ErrDuplicateUsername {
			message = "Username already taken"
		}
		return c.Render(http.StatusConflict, "register.html", echo.Map{
			"Title": "Register",
			"Error": message,
		})
	}

	h.setSessionCookie(c, token, int(session.TTL.Seconds()))
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
