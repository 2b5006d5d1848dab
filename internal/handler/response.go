package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dwproject/portfolio-api/internal/domain"
)

// Envelope is the standard API response wrapper.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a field-level validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON writes a success response in the standard envelope.
func JSON(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// HTTPErrorHandler is the global error handler. Every handler-level failure
// passes through here and is converted to the standard envelope; nothing
// crosses the HTTP boundary uncaught.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, envelope := mapError(err)
	if jsonErr := c.JSON(status, envelope); jsonErr != nil {
		slog.Error("failed to send error response", "error", jsonErr)
	}
}

func mapError(err error) (int, Envelope) {
	// echo's own HTTP errors (unknown route, method not allowed)
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, _ := echoErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, Envelope{Message: msg}
	}

	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]FieldError, len(validationErrs))
		for i, ve := range validationErrs {
			fields[i] = FieldError{Field: ve.Field, Message: ve.Message}
		}
		return http.StatusBadRequest, Envelope{Message: "Validation errors", Errors: fields}
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, Envelope{
			Message: "Validation errors",
			Errors:  []FieldError{{Field: validationErr.Field, Message: validationErr.Message}},
		}
	}

	switch {
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, Envelope{Message: "User already exists"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, Envelope{Message: "Invalid credentials"}
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, Envelope{Message: "Invalid request"}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, Envelope{Message: "Authentication required"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, Envelope{Message: "You are not authorized to access this resource"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, Envelope{Message: "Resource not found"}
	default:
		slog.Error("unhandled error", "error", err)
		return http.StatusInternalServerError, Envelope{Message: "Something went wrong"}
	}
}
