package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clienttrack/internal/middleware"
	"clienttrack/internal/repository"
	"clienttrack/internal/service"
	"clienttrack/internal/session"
)

// DashboardHandler renders the revenue total and project/client listings.
type DashboardHandler struct {
	flasher
	dashboardService service.DashboardService
	clientService    service.ClientService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService service.DashboardService, clientService service.ClientService, flashes *session.FlashStore) *DashboardHandler {
	return &DashboardHandler{
		flasher:          flasher{flashes: flashes},
		dashboardService: dashboardService,
		clientService:    clientService,
	}
}

// Dashboard renders the home page. The sort query parameter picks the
// project ordering; unknown values fall back to deadline.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	userID := middleware.UserID(c)
	ctx := c.Request().Context()

	sortKey := c.QueryParam("sort")
	switch sortKey {
	case repository.SortImportance, repository.SortClient, repository.SortValue:
	default:
		sortKey = repository.SortDeadline
	}

	revenue, err := h.dashboardService.TotalRevenue(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load dashboard")
	}
	projects, err := h.dashboardService.Projects(ctx, userID, sortKey)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load dashboard")
	}
	clients, err := h.clientService.List(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load dashboard")
	}

	return c.Render(http.StatusOK, "dashboard.html", echo.Map{
		"Title":        "Dashboard",
		"LoggedIn":     true,
		"Flashes":      h.pop(c),
		"TotalRevenue": revenue,
		"Projects":     projects,
		"Clients":      clients,
		"CurrentSort":  sortKey,
	})
}
