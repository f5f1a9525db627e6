package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

// AdminService backs the super-admin dashboard.
type AdminService struct {
	accounts ports.AccountRepository
	reports  ports.ReportRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAdminService(accounts ports.AccountRepository, reports ports.ReportRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{accounts: accounts, reports: reports, logger: logger, now: time.Now}
}

func (s *AdminService) Stats(ctx context.Context) (*ports.PlatformStats, error) {
	byStatus, err := s.reports.CountByStatus(ctx, ports.ReportFilter{})
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	active, err := s.accounts.Count(ctx, ports.AccountFilter{Role: domain.RoleNGO, Status: domain.AccountApproved})
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	pending, err := s.accounts.Count(ctx, ports.AccountFilter{Role: domain.RoleNGO, Status: domain.AccountPending})
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	admins, err := s.accounts.Count(ctx, ports.AccountFilter{Role: domain.RoleNgoAdmin})
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	stats := &ports.PlatformStats{
		ActiveNgos:       active,
		PendingApprovals: pending,
		ResolvedCases:    byStatus[domain.StatusResolved],
		SuspendedReports: byStatus[domain.StatusSuspended],
		NgoAdmins:        admins,
		ReportsByStatus:  byStatus,
	}
	for _, n := range byStatus {
		stats.TotalReports += n
	}
	return stats, nil
}

func (s *AdminService) Reports(ctx context.Context) ([]*domain.Report, error) {
	reports, err := s.reports.List(ctx, ports.ReportFilter{})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (s *AdminService) Ngos(ctx context.Context) (*ports.NgoOverview, error) {
	ngos, err := s.accounts.List(ctx, ports.AccountFilter{Role: domain.RoleNGO})
	if err != nil {
		return nil, fmt.Errorf("list ngos: %w", err)
	}
	overview := &ports.NgoOverview{Ngos: ngos, Pending: make([]*domain.Account, 0)}
	for _, ngo := range ngos {
		if ngo.Status == domain.AccountPending {
			overview.Pending = append(overview.Pending, ngo)
		}
	}
	return overview, nil
}

func (s *AdminService) NgoAdmins(ctx context.Context) ([]*domain.Account, error) {
	admins, err := s.accounts.List(ctx, ports.AccountFilter{Role: domain.RoleNgoAdmin})
	if err != nil {
		return nil, fmt.Errorf("list ngo admins: %w", err)
	}
	return admins, nil
}

// CreateNgoAdmin adds an admin account linked to an existing NGO.
func (s *AdminService) CreateNgoAdmin(ctx context.Context, in ports.CreateNgoAdminInput) (*domain.Account, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	if name == "" {
		return nil, domain.Invalid("name is required")
	}
	if err := validateCredentials(email, in.Password); err != nil {
		return nil, err
	}
	for _, p := range in.Permissions {
		if !domain.IsPermission(p) {
			return nil, domain.Invalid("unknown permission %q", p)
		}
	}

	ngo, err := s.accounts.FindByID(ctx, in.NgoID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.Invalid("ngoId does not reference an NGO")
		}
		return nil, fmt.Errorf("create ngo admin: %w", err)
	}
	if ngo.Role != domain.RoleNGO {
		return nil, domain.Invalid("ngoId does not reference an NGO")
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.accounts.Create(ctx, &domain.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleNgoAdmin,
		Status:       domain.AccountApproved,
		NgoID:        ngo.ID,
		Permissions:  in.Permissions,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", created.ID).Str("ngo_id", ngo.ID).Msg("ngo admin created")
	return created, nil
}

// DeleteNgoAdmin is the only path that physically removes an account.
func (s *AdminService) DeleteNgoAdmin(ctx context.Context, id string) error {
	admin, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete ngo admin: %w", err)
	}
	if admin.Role != domain.RoleNgoAdmin {
		return fmt.Errorf("delete ngo admin: %w", domain.ErrAccountNotFound)
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete ngo admin: %w", err)
	}

	s.logger.Info().Str("account_id", id).Msg("ngo admin deleted")
	return nil
}
