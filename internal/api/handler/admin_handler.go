package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Surajbalal/Animal-Guard/internal/api/metrics"
	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

// AdminHandler serves the super-admin console.
type AdminHandler struct {
	admin     ports.AdminService
	directory ports.DirectoryService
	reports   ports.ReportService
}

func NewAdminHandler(admin ports.AdminService, directory ports.DirectoryService, reports ports.ReportService) *AdminHandler {
	return &AdminHandler{admin: admin, directory: directory, reports: reports}
}

// Stats handles GET /api/admin/stats.
//
// @Summary      Platform counters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.PlatformStats
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Ngos handles GET /api/admin/ngos.
//
// @Summary      NGOs and approval queue
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.NgoOverview
// @Router       /api/admin/ngos [get]
func (h *AdminHandler) Ngos(c echo.Context) error {
	overview, err := h.admin.Ngos(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

// Reports handles GET /api/admin/reports.
//
// @Summary      All reports
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Report
// @Router       /api/admin/reports [get]
func (h *AdminHandler) Reports(c echo.Context) error {
	reports, err := h.admin.Reports(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// NgoAdmins handles GET /api/admin/ngo-admins.
//
// @Summary      NGO admin accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Account
// @Router       /api/admin/ngo-admins [get]
func (h *AdminHandler) NgoAdmins(c echo.Context) error {
	admins, err := h.admin.NgoAdmins(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admins)
}

// DecideNgo handles PUT /api/admin/ngos/:id/:action.
//
// @Summary      Approve or reject an NGO
// @Description  Repeating the same decision is a no-op; reversing it fails with 422.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "NGO account ID"
// @Param        action  path      string  true  "approve or reject"
// @Success      200     {object}  ngoDecisionResponse
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /api/admin/ngos/{id}/{action} [put]
func (h *AdminHandler) DecideNgo(c echo.Context) error {
	ctx := c.Request().Context()
	id, action := c.Param("id"), c.Param("action")

	var (
		ngo *domain.Account
		err error
	)
	switch action {
	case "approve":
		ngo, err = h.directory.Approve(ctx, id)
	case "reject":
		ngo, err = h.directory.Reject(ctx, id)
	default:
		return domain.Invalid("action must be approve or reject, got %q", action)
	}
	if err != nil {
		return err
	}
	metrics.NgoDecisionsTotal.WithLabelValues(action).Inc()

	return c.JSON(http.StatusOK, ngoDecisionResponse{Message: "ngo " + string(ngo.Status), Ngo: ngo})
}

// SuspendReport handles PUT /api/admin/reports/:id/suspend.
//
// @Summary      Suspend a report
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true   "Report ID"
// @Param        body  body      suspendRequest  false  "Optional reason"
// @Success      200   {object}  reportResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/reports/{id}/suspend [put]
func (h *AdminHandler) SuspendReport(c echo.Context) error {
	admin, err := currentAccount(c)
	if err != nil {
		return err
	}

	var req suspendRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
	}

	report, err := h.reports.Suspend(c.Request().Context(), c.Param("id"), admin.ID, req.Reason)
	if err != nil {
		recordConflict(err)
		return err
	}
	metrics.ReportTransitionsTotal.WithLabelValues(string(report.Status)).Inc()
	return c.JSON(http.StatusOK, reportResponse{Message: "report suspended", Report: report})
}

// CreateNgoAdmin handles POST /api/admin/ngo-admins.
//
// @Summary      Create an NGO admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNgoAdminRequest  true  "NGO admin details"
// @Success      201   {object}  ngoAdminResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/ngo-admins [post]
func (h *AdminHandler) CreateNgoAdmin(c echo.Context) error {
	var req createNgoAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	perms := make([]domain.Permission, 0, len(req.Permissions))
	for _, p := range req.Permissions {
		perms = append(perms, domain.Permission(p))
	}

	admin, err := h.admin.CreateNgoAdmin(c.Request().Context(), ports.CreateNgoAdminInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		NgoID:       req.NgoID,
		Permissions: perms,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ngoAdminResponse{Message: "ngo admin created", NgoAdmin: admin})
}

// DeleteNgoAdmin handles DELETE /api/admin/ngo-admins/:id.
//
// @Summary      Delete an NGO admin
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "NGO admin account ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/ngo-admins/{id} [delete]
func (h *AdminHandler) DeleteNgoAdmin(c echo.Context) error {
	if err := h.admin.DeleteNgoAdmin(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "ngo admin deleted"})
}
