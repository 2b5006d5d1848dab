package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dwproject/portfolio-api/internal/domain"
	"github.com/dwproject/portfolio-api/internal/service"
)

// ProjectHandler handles the owner-scoped project endpoints.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

const dateLayout = "2006-01-02"

type projectRequest struct {
	ProjectName  string   `json:"project_name" validate:"required,min=1,max=255"`
	StartDate    *string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      *string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Description  *string  `json:"description" validate:"omitempty,max=1000"`
	Technologies []string `json:"technologies"`
	Image        *string  `json:"image" validate:"omitempty,datauri"`
}

func (r projectRequest) toInput() (service.ProjectInput, error) {
	in := service.ProjectInput{
		ProjectName:  r.ProjectName,
		Description:  r.Description,
		Technologies: r.Technologies,
		Image:        r.Image,
	}

	parse := func(field string, value *string) (*time.Time, error) {
		if value == nil || *value == "" {
			return nil, nil
		}
		t, err := time.Parse(dateLayout, *value)
		if err != nil {
			return nil, &domain.ValidationError{Field: field, Message: "must be a valid date (YYYY-MM-DD)"}
		}
		return &t, nil
	}

	var err error
	if in.StartDate, err = parse("start_date", r.StartDate); err != nil {
		return service.ProjectInput{}, err
	}
	if in.EndDate, err = parse("end_date", r.EndDate); err != nil {
		return service.ProjectInput{}, err
	}
	return in, nil
}

func caller(c echo.Context) (domain.Identity, error) {
	identity, ok := CallerIdentity(c)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return identity, nil
}

func projectID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	return id, nil
}

func bindProject(c echo.Context) (service.ProjectInput, error) {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return service.ProjectInput{}, fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return service.ProjectInput{}, err
	}
	return req.toInput()
}

// List returns the caller's active projects.
func (h *ProjectHandler) List(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}

	projects, err := h.projects.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Projects retrieved successfully", projects)
}

// ListDeleted returns the caller's soft-deleted projects.
func (h *ProjectHandler) ListDeleted(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}

	projects, err := h.projects.ListDeleted(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Deleted projects retrieved successfully", projects)
}

// Get returns a single active project of the caller.
func (h *ProjectHandler) Get(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}

	project, err := h.projects.Get(c.Request().Context(), identity, id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Project retrieved successfully", project)
}

// Create inserts a new project owned by the caller.
func (h *ProjectHandler) Create(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	in, err := bindProject(c)
	if err != nil {
		return err
	}

	project, err := h.projects.Create(c.Request().Context(), identity, in)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, "Project created successfully", project)
}

// Update replaces the fields of an active project.
func (h *ProjectHandler) Update(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}
	in, err := bindProject(c)
	if err != nil {
		return err
	}

	project, err := h.projects.Update(c.Request().Context(), identity, id, in)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Project updated successfully", project)
}

// SoftDelete marks a project as deleted.
func (h *ProjectHandler) SoftDelete(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}

	project, err := h.projects.SoftDelete(c.Request().Context(), identity, id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Project soft-deleted successfully", project)
}

// Restore clears the deletion mark of a soft-deleted project.
func (h *ProjectHandler) Restore(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}

	project, err := h.projects.Restore(c.Request().Context(), identity, id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Project restored successfully", project)
}

// HardDelete permanently removes a project.
func (h *ProjectHandler) HardDelete(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}

	project, err := h.projects.HardDelete(c.Request().Context(), identity, id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Project permanently deleted", project)
}
