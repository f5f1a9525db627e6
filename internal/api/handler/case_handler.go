package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Surajbalal/Animal-Guard/internal/api/metrics"
	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

// CaseHandler serves the NGO dashboard. NGO admins reach it on behalf of
// their linked NGO.
type CaseHandler struct {
	service ports.ReportService
}

func NewCaseHandler(service ports.ReportService) *CaseHandler {
	return &CaseHandler{service: service}
}

// recordConflict counts case actions refused because of the report state.
func recordConflict(err error) {
	switch {
	case errors.Is(err, domain.ErrAlreadyAssigned):
		metrics.ReportConflictsTotal.WithLabelValues("already_assigned").Inc()
	case errors.Is(err, domain.ErrInvalidTransition):
		metrics.ReportConflictsTotal.WithLabelValues("invalid_transition").Inc()
	}
}

// Cases handles GET /api/ngo/cases.
//
// @Summary      List cases
// @Description  Open pending reports plus the reports assigned to the caller's NGO, newest first.
// @Tags         ngo
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Report
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/ngo/cases [get]
func (h *CaseHandler) Cases(c echo.Context) error {
	ngoID, err := domain.ViewingNgo(currentSession(c))
	if err != nil {
		return err
	}
	cases, err := h.service.Cases(c.Request().Context(), ngoID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cases)
}

// Stats handles GET /api/ngo/stats.
//
// @Summary      NGO dashboard counters
// @Tags         ngo
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.NgoStats
// @Failure      403  {object}  errorResponse
// @Router       /api/ngo/stats [get]
func (h *CaseHandler) Stats(c echo.Context) error {
	ngoID, err := domain.ViewingNgo(currentSession(c))
	if err != nil {
		return err
	}
	stats, err := h.service.NgoStats(c.Request().Context(), ngoID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Accept handles PUT /api/ngo/cases/:id/accept.
//
// @Summary      Accept a case
// @Description  First accept wins; later ones get 409.
// @Tags         ngo
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  reportResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/ngo/cases/{id}/accept [put]
func (h *CaseHandler) Accept(c echo.Context) error {
	ngoID, err := domain.ActingNgo(currentSession(c))
	if err != nil {
		return err
	}
	report, err := h.service.Accept(c.Request().Context(), c.Param("id"), ngoID)
	if err != nil {
		recordConflict(err)
		return err
	}
	metrics.ReportTransitionsTotal.WithLabelValues(string(report.Status)).Inc()
	return c.JSON(http.StatusOK, reportResponse{Message: "case accepted", Report: report})
}

// Reject handles PUT /api/ngo/cases/:id/reject.
//
// @Summary      Decline a case
// @Description  Advisory: the report stays pending for other NGOs.
// @Tags         ngo
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  reportResponse
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/ngo/cases/{id}/reject [put]
func (h *CaseHandler) Reject(c echo.Context) error {
	ngoID, err := domain.ActingNgo(currentSession(c))
	if err != nil {
		return err
	}
	report, err := h.service.Reject(c.Request().Context(), c.Param("id"), ngoID)
	if err != nil {
		recordConflict(err)
		return err
	}
	return c.JSON(http.StatusOK, reportResponse{Message: "case declined", Report: report})
}

// UpdateStatus handles PUT /api/ngo/cases/:id/status.
//
// @Summary      Advance a case
// @Tags         ngo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Report ID"
// @Param        body  body      updateStatusRequest  true  "Next status (in-progress or resolved)"
// @Success      200   {object}  reportResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/ngo/cases/{id}/status [put]
func (h *CaseHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ngoID, err := domain.ActingNgo(currentSession(c))
	if err != nil {
		return err
	}
	report, err := h.service.Advance(c.Request().Context(), ports.AdvanceInput{
		Code:  c.Param("id"),
		NgoID: ngoID,
		Next:  domain.ReportStatus(req.Status),
		Note:  req.Notes,
	})
	if err != nil {
		recordConflict(err)
		return err
	}
	metrics.ReportTransitionsTotal.WithLabelValues(string(report.Status)).Inc()
	return c.JSON(http.StatusOK, reportResponse{Message: "case status updated", Report: report})
}
