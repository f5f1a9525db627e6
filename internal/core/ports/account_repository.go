package ports

import (
	"context"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
)

// AccountFilter narrows account listings. Zero values mean "any".
type AccountFilter struct {
	Role   domain.Role
	Status domain.AccountStatus
}

// AccountRepository defines persistence for NGO and admin accounts.
type AccountRepository interface {
	// Create fails with domain.ErrAccountExists when the email is taken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// FindByToken resolves the account currently holding token.
	FindByToken(ctx context.Context, token string) (*domain.Account, error)
	// SetToken replaces the stored token. An empty token ends the session.
	SetToken(ctx context.Context, id, token string) error
	// UpdateStatus moves an account from one status to another atomically;
	// it fails with domain.ErrInvalidTransition when the account is no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to domain.AccountStatus) (*domain.Account, error)
	List(ctx context.Context, filter AccountFilter) ([]*domain.Account, error)
	Count(ctx context.Context, filter AccountFilter) (int64, error)
	Delete(ctx context.Context, id string) error
}
