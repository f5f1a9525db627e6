package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

// DirectoryHandler serves the public NGO directory.
type DirectoryHandler struct {
	service ports.DirectoryService
}

func NewDirectoryHandler(service ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// Approved handles GET /api/ngos/approved.
//
// @Summary      List approved NGOs
// @Tags         ngos
// @Produce      json
// @Param        city      query     string  false  "City substring (case-insensitive)"
// @Param        category  query     string  false  "Rescue category"
// @Param        search    query     string  false  "Name or description substring"
// @Success      200       {array}   domain.Account
// @Router       /api/ngos/approved [get]
func (h *DirectoryHandler) Approved(c echo.Context) error {
	ngos, err := h.service.ListApproved(c.Request().Context(), ports.NgoFilter{
		City:     c.QueryParam("city"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ngos)
}

// Matches handles GET /api/reports/:id/matches.
//
// @Summary      NGOs able to take a report
// @Description  Approved NGOs in range that cover the animal type, nearest first.
// @Tags         reports
// @Produce      json
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  matchesResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/reports/{id}/matches [get]
func (h *DirectoryHandler) Matches(c echo.Context) error {
	code := c.Param("id")
	matches, err := h.service.Match(c.Request().Context(), code)
	if err != nil {
		return err
	}
	if matches == nil {
		matches = []ports.NgoMatch{}
	}
	return c.JSON(http.StatusOK, matchesResponse{ReportID: code, Matches: matches})
}
