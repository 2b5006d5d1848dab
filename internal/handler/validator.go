package handler

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dwproject/portfolio-api/internal/domain"
)

// AppValidator wraps go-playground/validator for echo.
type AppValidator struct {
	validator *validator.Validate
}

// NewAppValidator creates a new AppValidator.
func NewAppValidator() *AppValidator {
	return &AppValidator{validator: validator.New()}
}

// Validate validates a struct using go-playground/validator tags and returns
// every field failure as a structured list.
func (v *AppValidator) Validate(i any) error {
	if err := v.validator.Struct(i); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok || len(validationErrors) == 0 {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}

		out := make(domain.ValidationErrors, len(validationErrors))
		for i, fe := range validationErrors {
			out[i] = domain.ValidationError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed on '%s' validation", fe.Tag()),
			}
		}
		return out
	}
	return nil
}
