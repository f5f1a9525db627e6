package handler

import (
	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

// --- Request → Service input ---

func toSubmitInput(req submitReportRequest, idempotencyKey string) ports.SubmitReportInput {
	loc := req.Location.toDomain()
	if loc == nil && req.Longitude != nil && req.Latitude != nil {
		loc = &domain.Location{Longitude: *req.Longitude, Latitude: *req.Latitude}
	}

	return ports.SubmitReportInput{
		AnimalType:     req.AnimalType,
		IncidentType:   req.IncidentType,
		Severity:       req.Severity,
		Description:    req.Description,
		Location:       loc,
		Address:        req.Address,
		Reporter:       toReporter(req.Reporter),
		IdempotencyKey: idempotencyKey,
	}
}

// toReporter drops an all-empty contact so the report stays anonymous.
func toReporter(r *reporterRequest) *domain.ReporterContact {
	if r == nil || (r.Name == "" && r.Phone == "" && r.Email == "") {
		return nil
	}
	return &domain.ReporterContact{Name: r.Name, Phone: r.Phone, Email: r.Email}
}
