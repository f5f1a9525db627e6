package ports

import (
	"context"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
)

// PlatformStats feeds the super-admin dashboard.
type PlatformStats struct {
	TotalReports     int64                         `json:"totalReports"`
	ActiveNgos       int64                         `json:"activeNgos"`
	PendingApprovals int64                         `json:"pendingApprovals"`
	ResolvedCases    int64                         `json:"resolvedCases"`
	SuspendedReports int64                         `json:"suspendedReports"`
	NgoAdmins        int64                         `json:"ngoAdmins"`
	ReportsByStatus  map[domain.ReportStatus]int64 `json:"reportsByStatus"`
}

// NgoOverview splits NGOs for the approval queue.
type NgoOverview struct {
	Ngos    []*domain.Account `json:"ngos"`
	Pending []*domain.Account `json:"pending"`
}

type CreateNgoAdminInput struct {
	Name        string
	Email       string
	Password    string
	NgoID       string
	Permissions []domain.Permission
}

type AdminService interface {
	Stats(ctx context.Context) (*PlatformStats, error)
	Reports(ctx context.Context) ([]*domain.Report, error)
	Ngos(ctx context.Context) (*NgoOverview, error)
	NgoAdmins(ctx context.Context) ([]*domain.Account, error)
	CreateNgoAdmin(ctx context.Context, in CreateNgoAdminInput) (*domain.Account, error)
	DeleteNgoAdmin(ctx context.Context, id string) error
}
