package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

const (
	minPasswordLength    = 6
	minNgoDescription    = 50
	defaultSuspendReason = "Suspended by administrator"
)

var fieldValidator = validator.New()

func validateCredentials(email, password string) error {
	if fieldValidator.Var(email, "required,email") != nil {
		return domain.Invalid("email must be a valid email address")
	}
	if len(password) < minPasswordLength {
		return domain.Invalid("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

func validateRegistration(in ports.RegisterInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalid("name is required")
	}
	if err := validateCredentials(domain.NormalizeEmail(in.Email), in.Password); err != nil {
		return err
	}
	if strings.TrimSpace(in.ContactPhone) == "" {
		return domain.Invalid("contactPhone is required")
	}
	if len(strings.TrimSpace(in.Description)) < minNgoDescription {
		return domain.Invalid("description must be at least %d characters long", minNgoDescription)
	}
	if len(in.RescueCategories) == 0 {
		return domain.Invalid("at least one rescue category is required")
	}
	for _, c := range in.RescueCategories {
		if !domain.IsRescueCategory(c) {
			return domain.Invalid("unknown rescue category %q", c)
		}
	}
	if !domain.IsRescueDistance(in.RescueDistance) {
		return domain.Invalid("rescueDistance must be one of 5, 10, 15, 20, 30, 50")
	}
	a := in.Address
	for field, v := range map[string]string{
		"address.street":     a.Street,
		"address.city":       a.City,
		"address.state":      a.State,
		"address.postalCode": a.PostalCode,
		"address.country":    a.Country,
	} {
		if strings.TrimSpace(v) == "" {
			return domain.Invalid("%s is required", field)
		}
	}
	if in.Location != nil {
		if err := in.Location.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateSubmission(in ports.SubmitReportInput) error {
	if !domain.IsAnimalType(in.AnimalType) {
		return domain.Invalid("animalType must be one of: %s", strings.Join(domain.AnimalTypes, ", "))
	}
	if !domain.IsIncidentType(in.IncidentType) {
		return domain.Invalid("incidentType must be one of: %s", strings.Join(domain.IncidentTypes, ", "))
	}
	if !domain.Severity(in.Severity).Valid() {
		return domain.Invalid("severity must be one of: low, medium, high, critical")
	}
	if len(strings.TrimSpace(in.Description)) < domain.MinReportDescription {
		return domain.Invalid("description must be at least %d characters", domain.MinReportDescription)
	}
	if in.Location == nil {
		return domain.Invalid("location is required")
	}
	if err := in.Location.Validate(); err != nil {
		return err
	}
	if in.Reporter != nil && in.Reporter.Email != "" && fieldValidator.Var(in.Reporter.Email, "email") != nil {
		return domain.Invalid("reporter email must be a valid email address")
	}
	if len(in.Media) > domain.MaxMediaFiles {
		return domain.Invalid("at most %d media files are allowed", domain.MaxMediaFiles)
	}
	for _, m := range in.Media {
		if m.Size <= 0 || m.Body == nil {
			return domain.Invalid("media file %q is empty", m.Filename)
		}
		if m.Size > domain.MaxMediaBytes {
			return domain.Invalid("media file %q exceeds 10MB", m.Filename)
		}
	}
	return nil
}
