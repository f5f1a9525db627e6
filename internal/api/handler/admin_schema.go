package handler

import "github.com/Surajbalal/Animal-Guard/internal/core/domain"

type createNgoAdminRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Email       string   `json:"email"       validate:"required,email"`
	Password    string   `json:"password"    validate:"required,min=6"`
	NgoID       string   `json:"ngoId"       validate:"required"`
	Permissions []string `json:"permissions"`
}

type ngoDecisionResponse struct {
	Message string          `json:"message"`
	Ngo     *domain.Account `json:"ngo"`
}

type ngoAdminResponse struct {
	Message  string          `json:"message"`
	NgoAdmin *domain.Account `json:"ngoAdmin"`
}
