package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "clienttrack/internal/errors"
	"clienttrack/internal/middleware"
	"clienttrack/internal/service"
	"clienttrack/internal/session"
)

// ClientHandler handles client forms and pages.
type ClientHandler struct {
	flasher
	clientService  service.ClientService
	projectService service.ProjectService
}

// NewClientHandler creates a new client handler.
func NewClientHandler(clientService service.ClientService, projectService service.ProjectService, flashes *session.FlashStore) *ClientHandler {
	return &ClientHandler{
		flasher:        flasher{flashes: flashes},
		clientService:  clientService,
		projectService: projectService,
	}
}

// ClientForm represents the add/edit client form fields.
type ClientForm struct {
	Name    string `form:"name"`
	Company string `form:"company"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
	Status  string `form:"status"`
}

func (f ClientForm) input() service.ClientInput {
	return service.ClientInput{
		Name:    f.Name,
		Company: f.Company,
		Email:   f.Email,
		Phone:   f.Phone,
		Status:  f.Status,
	}
}

// AddForm renders the add-client page.
func (h *ClientHandler) AddForm(c echo.Context) error {
	return c.Render(http.StatusOK, "add_client.html", echo.Map{
		"Title":    "Add Client",
		"LoggedIn": true,
		"Flashes":  h.pop(c),
	})
}

// Add creates a client owned by the session user.
func (h *ClientHandler) Add(c echo.Context) error {
	var form ClientForm
	if err := c.Bind(&form); err != nil {
		h.flash(c, session.FlashDanger, "Invalid form submission")
		return c.Redirect(http.StatusSeeOther, "/addclient")
	}

	if _, err := h.clientService.Create(c.Request().Context(), middleware.UserID(c), form.input()); err != nil {
		if err == apperrors.ErrNameRequired {
			h.flash(c, session.FlashDanger, "Client Name is required")
			return c.Redirect(http.StatusSeeOther, "/addclient")
		}
		h.flash(c, session.FlashDanger, apperrors.UserMessage(err))
		return c.Redirect(http.StatusSeeOther, "/")
	}

	h.flash(c, session.FlashSuccess, "Client added!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// Detail renders one client with its projects. An unknown or foreign id
// goes back to the dashboard with nothing disclosed.
func (h *ClientHandler) Detail(c echo.Context) error {
	clientID, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	userID := middleware.UserID(c)
	ctx := c.Request().Context()

	client, err := h.clientService.Get(ctx, userID, clientID)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	projects, err := h.projectService.ListForClient(ctx, userID, clientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load client")
	}

	return c.Render(http.StatusOK, "client_detail.html", echo.Map{
		"Title":    client.Name,
		"LoggedIn": true,
		"Flashes":  h.pop(c),
		"Client":   client,
		"Projects": projects,
	})
}

// EditForm renders the edit-client page.
func (h *ClientHandler) EditForm(c echo.Context) error {
	clientID, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	client, err := h.clientService.Get(c.Request().Context(), middleware.UserID(c), clientID)
	if err != nil {
		h.flash(c, session.FlashDanger, "Client not found")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	return c.Render(http.StatusOK, "edit_client.html", echo.Map{
		"Title":    "Edit Client",
		"LoggedIn": true,
		"Flashes":  h.pop(c),
		"Client":   client,
	})
}

// Edit updates a client, ownership-checked.
func (h *ClientHandler) Edit(c echo.Context) error {
	clientID, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	var form ClientForm
	if err := c.Bind(&form); err != nil {
		h.flash(c, session.FlashDanger, "Invalid form submission")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit_client/%d", clientID))
	}

	if _, err := h.clientService.Update(c.Request().Context(), middleware.UserID(c), clientID, form.input()); err != nil {
		if err == apperrors.ErrNameRequired {
			h.flash(c, session.FlashDanger, "Client Name cannot be empty")
			return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit_client/%d", clientID))
		}
		h.flash(c, session.FlashDanger, apperrors.UserMessage(err))
		return c.Redirect(http.StatusSeeOther, "/")
	}

	h.flash(c, session.FlashSuccess, "Client updated successfully!")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/client/%d", clientID))
}

// Delete removes a client and all of its projects. Foreign ids are no-ops.
func (h *ClientHandler) Delete(c echo.Context) error {
	clientID, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	if err := h.clientService.Delete(c.Request().Context(), middleware.UserID(c), clientID); err != nil {
		h.flash(c, session.FlashDanger, apperrors.UserMessage(err))
		return c.Redirect(http.StatusSeeOther, "/")
	}

	h.flash(c, session.FlashSuccess, "Client deleted")
	return c.Redirect(http.StatusSeeOther, "/")
}
