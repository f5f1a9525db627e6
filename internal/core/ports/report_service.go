package ports

import (
	"context"
	"io"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
)

// MediaUpload is a file attached to a report submission.
type MediaUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// SubmitReportInput carries everything needed to file a report.
type SubmitReportInput struct {
	AnimalType     string
	IncidentType   string
	Severity       string
	Description    string
	Location       *domain.Location
	Address        string
	Reporter       *domain.ReporterContact
	Media          []MediaUpload
	IdempotencyKey string
}

// SubmitResult is returned after filing a report.
type SubmitResult struct {
	Code   string
	Status domain.ReportStatus
	// AlreadyExisted is true when the Idempotency-Key matched an earlier submission.
	AlreadyExisted bool
}

// AdvanceInput moves an accepted case forward.
type AdvanceInput struct {
	Code  string
	NgoID string
	Next  domain.ReportStatus
	Note  string
}

// NgoStats feeds the NGO dashboard.
type NgoStats struct {
	PendingCases  int64 `json:"pendingCases"`
	ActiveCases   int64 `json:"activeCases"`
	ResolvedCases int64 `json:"resolvedCases"`
	TotalCases    int64 `json:"totalCases"`
}

type ReportService interface {
	Submit(ctx context.Context, in SubmitReportInput) (*SubmitResult, error)
	Track(ctx context.Context, code string) (*domain.Report, error)
	Accept(ctx context.Context, code, ngoID string) (*domain.Report, error)
	Reject(ctx context.Context, code, ngoID string) (*domain.Report, error)
	Advance(ctx context.Context, in AdvanceInput) (*domain.Report, error)
	Suspend(ctx context.Context, code, adminID, note string) (*domain.Report, error)
	Cases(ctx context.Context, ngoID string) ([]*domain.Report, error)
	NgoStats(ctx context.Context, ngoID string) (*NgoStats, error)
}
