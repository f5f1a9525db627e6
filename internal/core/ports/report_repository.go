package ports

import (
	"context"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
)

// ReportFilter narrows report listings. An empty filter lists everything.
type ReportFilter struct {
	Statuses    []domain.ReportStatus
	AssignedNgo string
	// IncludeOpen widens an AssignedNgo filter with every pending, unassigned report.
	IncludeOpen bool
}

// StatusUpdate is a conditional status change. It applies only while the
// report is in one of From, and appends Entry to the history in the same write.
type StatusUpdate struct {
	Code string
	From []domain.ReportStatus
	To   domain.ReportStatus
	// AssignTo binds the report to an NGO; requires the report to be unassigned.
	AssignTo string
	// RequireAssignee restricts the update to reports assigned to this NGO.
	RequireAssignee string
	Entry           domain.StatusHistoryEntry
}

// ReportRepository defines persistence operations for reports.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	FindByCode(ctx context.Context, code string) (*domain.Report, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]*domain.Report, error)
	// UpdateStatus returns the updated report, domain.ErrReportNotFound for an
	// unknown code, or domain.ErrInvalidTransition when a precondition failed.
	UpdateStatus(ctx context.Context, u StatusUpdate) (*domain.Report, error)
	// AddRejection records an NGO declining a report that is still pending.
	AddRejection(ctx context.Context, code, ngoID string) (*domain.Report, error)
	CountByStatus(ctx context.Context, filter ReportFilter) (map[domain.ReportStatus]int64, error)
}

// ReportEventRepository persists the report audit trail.
type ReportEventRepository interface {
	Insert(ctx context.Context, event *domain.ReportEvent) error
}
