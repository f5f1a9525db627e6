package handler

import (
	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

type reporterRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type submitReportRequest struct {
	AnimalType   string           `json:"animalType"   validate:"required"`
	IncidentType string           `json:"incidentType" validate:"required"`
	Severity     string           `json:"severity"     validate:"required,oneof=low medium high critical"`
	Description  string           `json:"description"  validate:"required,min=20"`
	Location     *locationRequest `json:"location"`
	// Longitude and Latitude are accepted at the top level as well.
	Longitude *float64         `json:"longitude"`
	Latitude  *float64         `json:"latitude"`
	Address   string           `json:"address"`
	Reporter  *reporterRequest `json:"reporter"`
}

type submitReportResponse struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	ReportID string              `json:"reportId"`
	Status   domain.ReportStatus `json:"status"`
}

type matchesResponse struct {
	ReportID string           `json:"reportId"`
	Matches  []ports.NgoMatch `json:"matches"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

type suspendRequest struct {
	Reason string `json:"reason"`
}

type reportResponse struct {
	Message string         `json:"message"`
	Report  *domain.Report `json:"report"`
}
