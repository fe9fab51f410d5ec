package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "clienttrack/internal/errors"
	"clienttrack/internal/middleware"
	"clienttrack/internal/service"
	"clienttrack/internal/session"
)

const deadlineLayout = "2006-01-02"

// ProjectHandler handles project forms and actions.
type ProjectHandler struct {
	flasher
	clientService  service.ClientService
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(clientService service.ClientService, projectService service.ProjectService, flashes *session.FlashStore) *ProjectHandler {
	return &ProjectHandler{
		flasher:        flasher{flashes: flashes},
		clientService:  clientService,
		projectService: projectService,
	}
}

// ProjectForm represents the add/edit project form fields. Value and
// Deadline arrive as raw strings; empty means 0 and no deadline.
type ProjectForm struct {
	ClientID    string `form:"client_id"`
	Name        string `form:"project_name"`
	Description string `form:"description"`
	Value       string `form:"value"`
	Status      string `form:"status"`
	Importance  string `form:"importance"`
	Deadline    string `form:"deadline"`
}

func (f ProjectForm) clientID() uint {
	id, err := strconv.ParseUint(f.ClientID, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func (f ProjectForm) input() (service.ProjectInput, error) {
	value := decimal.Zero
	if f.Value != "" {
		parsed, err := decimal.NewFromString(f.Value)
		if err != nil {
			return service.ProjectInput{}, fmt.Errorf("parse value: %w", err)
		}
		value = parsed
	}

	var deadline *time.Time
	if f.Deadline != "" {
		parsed, err := time.Parse(deadlineLayout, f.Deadline)
		if err != nil {
			return service.ProjectInput{}, fmt.Errorf("parse deadline: %w", err)
		}
		deadline = &parsed
	}

	return service.ProjectInput{
		Name:        f.Name,
		Description: f.Description,
		Value:       value,
		Status:      f.Status,
		Importance:  f.Importance,
		Deadline:    deadline,
	}, nil
}

// AddForm renders the add-project page with the user's clients to pick from.
func (h *ProjectHandler) AddForm(c echo.Context) error {
	clients, err := h.clientService.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load clients")
	}
	return c.Render(http.StatusOK, "add_project.html", echo.Map{
		"Title":    "Add Project",
		"LoggedIn": true,
		"Flashes":  h.pop(c),
		"Clients":  clients,
	})
}

// Add creates a project under one of the session user's clients.
func (h *ProjectHandler) Add(c echo.Context) error {
	var form ProjectForm
	if err := c.Bind(&form); err != nil {
		h.flash(c, session.FlashDanger, "Invalid form submission")
		return c.Redirect(http.StatusSeeOther, "/addproject")
	}

	in, err := form.input()
	if err != nil {
		h.flash(c, session.FlashDanger, "Invalid value or deadline")
		return c.Redirect(http.StatusSeeOther, "/addproject")
	}

	_, err = h.projectService.Create(c.Request().Context(), middleware.UserID(c), form.clientID(), in)
	if err != nil {
		switch err {
		case apperrors.ErrNameRequired, apperrors.ErrClientRequired:
			h.flash(c, session.FlashDanger, "Client and Project Name are required")
			return c.Redirect(http.StatusSeeOther, "/addproject")
		case apperrors.ErrClientNotFound:
			h.flash(c, session.FlashDanger, "Invalid Client")
			return c.Redirect(http.StatusSeeOther, "/")
		default:
			h.flash(c, session.FlashDanger, apperrors.UserMessage(err))
			return c.Redirect(http.StatusSeeOther, "/")
		}
	}

	h.flash(c, session.FlashSuccess, "Project added!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditForm renders the edit-project page, ownership-checked via the client.
func (h *ProjectHandler) EditForm(c echo.Context) error {
	projectID, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	project, err := h.projectService.Get(c.Request().Context(), middleware.UserID(c), projectID)
	if err != nil {
		h.flash(c, session.FlashDanger, "Project not found")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	return c.Render(http.StatusOK, "edit_project.html", echo.Map{
		"Title":    "Edit Project",
		"LoggedIn": true,
		"Flashes":  h.pop(c),
		"Project":  project,
	})
}

// Edit updates a project, ownership-checked via the client.
func (h *ProjectHandler) Edit(c echo.Context) error {
	projectID, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	var form ProjectForm
	if err := c.Bind(&form); err != nil {
		h.flash(c, session.FlashDanger, "Invalid form submission")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit_project/%d", projectID))
	}

	in, err := form.input()
	if err != nil {
		h.flash(c, session.FlashDanger, "Invalid value or deadline")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit_project/%d", projectID))
	}

	project, err := h.projectService.Update(c.Request().Context(), middleware.UserID(c), projectID, in)
	if err != nil {
		if err == apperrors.ErrNameRequired {
			h.flash(c, session.FlashDanger, "Project Name required")
			return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit_project/%d", projectID))
		}
		h.flash(c, session.FlashDanger, apperrors.UserMessage(err))
		return c.Redirect(http.StatusSeeOther, "/")
	}

	h.flash(c, session.FlashSuccess, "Project updated!")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/client/%d", project.ClientID))
}

// Delete removes a project. Foreign ids are no-ops.
func (h *ProjectHandler) Delete(c echo.Context) error {
	projectID, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	if err := h.projectService.Delete(c.Request().Context(), middleware.UserID(c), projectID); err != nil {
		h.flash(c, session.FlashDanger, apperrors.UserMessage(err))
		return c.Redirect(http.StatusSeeOther, "/")
	}

	h.flash(c, session.FlashSuccess, "Project deleted")
	return c.Redirect(http.StatusSeeOther, "/")
}
