package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dwproject/portfolio-api/internal/service"
)

// NewRouter builds the echo instance with middleware, error handling and all
// routes wired. Shared between main and the handler tests.
func NewRouter(authSvc *service.AuthService, projectSvc *service.ProjectService, allowedOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewAppValidator()
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentType},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/", Index)

	authHandler := NewAuthHandler(authSvc)
	projectHandler := NewProjectHandler(projectSvc)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	projects := api.Group("/projects", JWTAuth(authSvc))
	projects.GET("", projectHandler.List)
	projects.GET("/deleted", projectHandler.ListDeleted)
	projects.GET("/:id", projectHandler.Get)
	projects.POST("", projectHandler.Create)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.SoftDelete)
	projects.POST("/:id/restore", projectHandler.Restore)
	projects.DELETE("/:id/permanent", projectHandler.HardDelete)

	return e
}

// Index describes the API surface at the root path.
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Portfolio Backend API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"POST /api/auth/register":            "Register a new user",
			"POST /api/auth/login":               "Login and receive a token",
			"GET /api/projects":                  "Get own projects",
			"GET /api/projects/:id":              "Get project by ID",
			"POST /api/projects":                 "Create new project",
			"PUT /api/projects/:id":              "Update project",
			"DELETE /api/projects/:id":           "Soft delete project",
			"POST /api/projects/:id/restore":     "Restore deleted project",
			"DELETE /api/projects/:id/permanent": "Permanently delete project",
			"GET /api/projects/deleted":          "Get deleted projects",
		},
	})
}
