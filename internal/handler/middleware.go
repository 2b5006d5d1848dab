package handler

import (
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dwproject/portfolio-api/internal/domain"
	"github.com/dwproject/portfolio-api/internal/service"
)

const contextKeyIdentity = "identity"

// RequestLogger logs each HTTP request with structured fields.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			slog.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return err
		}
	}
}

// JWTAuth validates the Bearer token and injects the caller identity into
// the echo context. It performs no I/O: a missing or invalid token is
// rejected before any database access.
func JWTAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return domain.ErrUnauthenticated
			}

			identity, err := auth.ValidateToken(parts[1])
			if err != nil {
				return domain.ErrUnauthenticated
			}

			c.Set(contextKeyIdentity, identity)
			return next(c)
		}
	}
}

// CallerIdentity extracts the authenticated identity from the echo context.
func CallerIdentity(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(contextKeyIdentity).(domain.Identity)
	return identity, ok
}
