package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
)

// currentSession returns the session resolved by the Auth middleware.
// Requests that skipped authentication are anonymous reporters.
func currentSession(c echo.Context) domain.Session {
	return domain.SessionFrom(c.Request().Context())
}

// currentAccount fails fast with ErrUnauthorized when no account is attached.
func currentAccount(c echo.Context) (*domain.Account, error) {
	account := domain.SessionAccount(currentSession(c))
	if account == nil {
		return nil, domain.ErrUnauthorized
	}
	return account, nil
}

// bearerToken is the raw token the Auth middleware authenticated.
func bearerToken(c echo.Context) string {
	token, _ := c.Get("token").(string)
	return token
}
