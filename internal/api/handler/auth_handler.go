package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Surajbalal/Animal-Guard/internal/api/metrics"
	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a pending NGO account.
//
// @Summary      Register an NGO
// @Description  The account starts pending and must be approved by a super admin before it can work cases.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "NGO registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/ngo/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		ContactPhone:       req.ContactPhone,
		Description:        req.Description,
		RescueCategories:   req.RescueCategories,
		RescueDistance:     req.RescueDistance,
		ServiceHours:       req.ServiceHours,
		RegistrationNumber: req.RegistrationNumber,
		Address: domain.Address{
			Street:     req.Address.Street,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		},
		Location: req.Location.toDomain(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		Success: true,
		Message: "registration submitted, pending approval",
		Token:   account.Token,
		Ngo:     account,
	})
}

// Login returns a handler authenticating accounts of the given role.
//
// @Summary      Login
// @Description  Issues a new token and revokes the previous one. Mounted per role under /api/ngo, /api/ngo-admin and /api/super-admin.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/ngo/login [post]
func (h *AuthHandler) Login(role domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req loginRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}

		token, account, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
			Email:    req.Email,
			Password: req.Password,
			Role:     role,
		})
		if err != nil {
			metrics.LoginsTotal.WithLabelValues(string(role), "failure").Inc()
			return err
		}
		metrics.LoginsTotal.WithLabelValues(string(role), "success").Inc()

		return c.JSON(http.StatusOK, loginResponse{Message: "login successful", Token: token, User: account})
	}
}

// Profile returns the authenticated account.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Account
// @Failure      401  {object}  errorResponse
// @Router       /api/ngo/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	account, err := h.authService.Profile(c.Request().Context(), bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Logout ends the current session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/ngo/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	account, err := currentAccount(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), account.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}
