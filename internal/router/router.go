package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"clienttrack/internal/config"
	"clienttrack/internal/handler"
	"clienttrack/internal/metrics"
	"clienttrack/internal/middleware"
	"clienttrack/internal/session"
)

// Register wires routes and middleware. Every repository-touching route
// sits in the session-guarded group; there are no exceptions.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *session.Store,
	authHandler *handler.AuthHandler,
	dashboardHandler *handler.DashboardHandler,
	clientHandler *handler.ClientHandler,
	projectHandler *handler.ProjectHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(metrics.Middleware())
	e.Use(middleware.NoCache())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())

	// Public routes
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)

	// Secured routes (require a live session)
	secured := e.Group("", middleware.RequireSession(sessions, cfg.CookieName))

	secured.GET("/", dashboardHandler.Dashboard)

	secured.GET("/addclient", clientHandler.AddForm)
	secured.POST("/addclient", clientHandler.Add)
	secured.GET("/client/:id", clientHandler.Detail)
	secured.GET("/edit_client/:id", clientHandler.EditForm)
	secured.POST("/edit_client/:id", clientHandler.Edit)
	secured.POST("/delete_client/:id", clientHandler.Delete)

	secured.GET("/addproject", projectHandler.AddForm)
	secured.POST("/addproject", projectHandler.Add)
	secured.GET("/edit_project/:id", projectHandler.EditForm)
	secured.POST("/edit_project/:id", projectHandler.Edit)
	secured.POST("/delete_project/:id", projectHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
