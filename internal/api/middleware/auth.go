package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
)

// Authenticator resolves a bearer token into a session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Session, error)
}

// Auth validates the bearer token and attaches the resolved session to the
// request context. The raw token is kept under the "token" key.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrUnauthorized
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return domain.ErrUnauthorized
			}
			token := strings.TrimSpace(parts[1])

			req := c.Request()
			session, err := auth.Authenticate(req.Context(), token)
			if err != nil {
				return err
			}

			c.Set("token", token)
			c.SetRequest(req.WithContext(domain.WithSession(req.Context(), session)))
			return next(c)
		}
	}
}
