package ports

import (
	"context"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
)

// NgoFilter is evaluated against the full approved set.
type NgoFilter struct {
	City     string // case-insensitive substring of address.city
	Category string // NGO lists it or lists "All Animals"
	Search   string // case-insensitive substring of name or description
}

// NgoMatch is an approved NGO able to take a report, with its distance to it.
type NgoMatch struct {
	Ngo        *domain.Account `json:"ngo"`
	DistanceKm float64         `json:"distanceKm"`
}

type DirectoryService interface {
	ListApproved(ctx context.Context, filter NgoFilter) ([]*domain.Account, error)
	Approve(ctx context.Context, ngoID string) (*domain.Account, error)
	Reject(ctx context.Context, ngoID string) (*domain.Account, error)
	Match(ctx context.Context, reportCode string) ([]NgoMatch, error)
}
