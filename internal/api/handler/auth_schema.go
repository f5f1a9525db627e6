package handler

import "github.com/Surajbalal/Animal-Guard/internal/core/domain"

// messageResponse is the plain acknowledgement body.
type messageResponse struct {
	Message string `json:"message"`
}

type addressRequest struct {
	Street     string `json:"street"     validate:"required"`
	City       string `json:"city"       validate:"required"`
	State      string `json:"state"      validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country"    validate:"required"`
}

type registerRequest struct {
	Name               string           `json:"name"               validate:"required"`
	Email              string           `json:"email"              validate:"required,email"`
	Password           string           `json:"password"           validate:"required,min=6"`
	ContactPhone       string           `json:"contactPhone"       validate:"required"`
	Description        string           `json:"description"        validate:"required,min=50"`
	RescueCategories   []string         `json:"rescueCategories"   validate:"required,min=1"`
	RescueDistance     int              `json:"rescueDistance"     validate:"required"`
	ServiceHours       string           `json:"serviceHours"`
	RegistrationNumber string           `json:"registrationNumber"`
	Address            addressRequest   `json:"address"`
	Location           *locationRequest `json:"location"`
}

type registerResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Ngo     *domain.Account `json:"ngo"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *domain.Account `json:"user"`
}

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
