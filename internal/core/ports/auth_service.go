package ports

import (
	"context"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
)

// RegisterInput is an NGO self-registration.
type RegisterInput struct {
	Name               string
	Email              string
	Password           string
	ContactPhone       string
	Description        string
	RescueCategories   []string
	RescueDistance     int
	ServiceHours       string
	RegistrationNumber string
	Address            domain.Address
	Location           *domain.Location
}

// LoginInput carries credentials plus the role of the login endpoint used.
type LoginInput struct {
	Email    string
	Password string
	Role     domain.Role
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, in LoginInput) (string, *domain.Account, error)
	Logout(ctx context.Context, accountID string) error
	Profile(ctx context.Context, token string) (*domain.Account, error)
	Authenticate(ctx context.Context, token string) (domain.Session, error)
}
