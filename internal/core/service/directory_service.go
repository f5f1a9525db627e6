package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

// DirectoryService lists approved NGOs and runs the approval workflow.
type DirectoryService struct {
	accounts ports.AccountRepository
	reports  ports.ReportRepository
	logger   zerolog.Logger
}

func NewDirectoryService(accounts ports.AccountRepository, reports ports.ReportRepository, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{accounts: accounts, reports: reports, logger: logger}
}

// ListApproved scans the approved set and applies the filter in memory.
func (s *DirectoryService) ListApproved(ctx context.Context, f ports.NgoFilter) ([]*domain.Account, error) {
	ngos, err := s.approved(ctx)
	if err != nil {
		return nil, err
	}

	city := strings.ToLower(strings.TrimSpace(f.City))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	category := strings.TrimSpace(f.Category)

	out := make([]*domain.Account, 0, len(ngos))
	for _, ngo := range ngos {
		if city != "" && (ngo.Address == nil || !strings.Contains(strings.ToLower(ngo.Address.City), city)) {
			continue
		}
		if category != "" && !ngo.CoversCategory(category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(ngo.Name), search) &&
			!strings.Contains(strings.ToLower(ngo.Description), search) {
			continue
		}
		out = append(out, ngo)
	}
	return out, nil
}

func (s *DirectoryService) Approve(ctx context.Context, ngoID string) (*domain.Account, error) {
	return s.decide(ctx, ngoID, domain.AccountApproved)
}

func (s *DirectoryService) Reject(ctx context.Context, ngoID string) (*domain.Account, error) {
	return s.decide(ctx, ngoID, domain.AccountRejected)
}

// decide applies an approval decision. The same decision twice is a no-op;
// flipping a decided NGO fails with ErrInvalidTransition.
func (s *DirectoryService) decide(ctx context.Context, ngoID string, next domain.AccountStatus) (*domain.Account, error) {
	ngo, err := s.findNgo(ctx, ngoID)
	if err != nil {
		return nil, err
	}

	changed, err := ngo.Status.Decide(next)
	if err != nil {
		return nil, fmt.Errorf("decide ngo: %w (from %s to %s)", err, ngo.Status, next)
	}
	if !changed {
		s.logger.Debug().Str("ngo_id", ngoID).Str("status", string(next)).Msg("ngo decision already applied")
		return ngo, nil
	}

	updated, err := s.accounts.UpdateStatus(ctx, ngoID, domain.AccountPending, next)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidTransition) {
			return nil, fmt.Errorf("decide ngo: %w", err)
		}
		// Another admin decided first; re-evaluate against what they wrote.
		current, ferr := s.findNgo(ctx, ngoID)
		if ferr != nil {
			return nil, ferr
		}
		if _, derr := current.Status.Decide(next); derr != nil {
			return nil, fmt.Errorf("decide ngo: %w (from %s to %s)", derr, current.Status, next)
		}
		return current, nil
	}

	s.logger.Info().Str("ngo_id", ngoID).Str("status", string(next)).Msg("ngo decided")
	return updated, nil
}

// Match returns approved NGOs that can take the report: within their rescue
// distance and covering its animal type, nearest first.
func (s *DirectoryService) Match(ctx context.Context, code string) ([]ports.NgoMatch, error) {
	report, err := s.reports.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("match ngos: %w", err)
	}

	ngos, err := s.approved(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]ports.NgoMatch, 0)
	for _, ngo := range ngos {
		if ngo.Location == nil || !ngo.CoversAnimal(report.AnimalType) {
			continue
		}
		d := ngo.Location.DistanceKm(report.Location)
		if d > float64(ngo.RescueDistance) {
			continue
		}
		matches = append(matches, ports.NgoMatch{Ngo: ngo, DistanceKm: d})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})
	return matches, nil
}

func (s *DirectoryService) approved(ctx context.Context) ([]*domain.Account, error) {
	ngos, err := s.accounts.List(ctx, ports.AccountFilter{Role: domain.RoleNGO, Status: domain.AccountApproved})
	if err != nil {
		return nil, fmt.Errorf("list approved ngos: %w", err)
	}
	return ngos, nil
}

func (s *DirectoryService) findNgo(ctx context.Context, id string) (*domain.Account, error) {
	ngo, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find ngo: %w", err)
	}
	if ngo.Role != domain.RoleNGO {
		return nil, fmt.Errorf("find ngo: %w", domain.ErrAccountNotFound)
	}
	return ngo, nil
}
