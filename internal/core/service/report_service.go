package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

// ReportDeduper abstracts the submission idempotency store (Redis).
type ReportDeduper interface {
	Lookup(ctx context.Context, key string) (code string, found bool, err error)
	Remember(ctx context.Context, key, code string) error
}

// AuditPublisher receives lifecycle events for the report audit trail.
type AuditPublisher interface {
	Publish(event domain.ReportEvent)
}

// maxCodeAttempts bounds retries after a report code collision.
const maxCodeAttempts = 3

var suspendable = []domain.ReportStatus{
	domain.StatusPending,
	domain.StatusAccepted,
	domain.StatusInProgress,
	domain.StatusResolved,
}

type ReportService struct {
	repo     ports.ReportRepository
	accounts ports.AccountRepository
	media    ports.MediaStore
	dedup    ReportDeduper
	audit    AuditPublisher
	logger   zerolog.Logger
	now      func() time.Time
}

func NewReportService(
	repo ports.ReportRepository,
	accounts ports.AccountRepository,
	media ports.MediaStore,
	dedup ReportDeduper,
	audit AuditPublisher,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		repo:     repo,
		accounts: accounts,
		media:    media,
		dedup:    dedup,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit files a new report. If an idempotency key is provided and already
// seen, the previously created report is returned without side effects.
func (s *ReportService) Submit(ctx context.Context, in ports.SubmitReportInput) (*ports.SubmitResult, error) {
	if err := validateSubmission(in); err != nil {
		return nil, err
	}
	if len(in.Media) > 0 && s.media == nil {
		return nil, domain.Invalid("media uploads are not available")
	}

	if in.IdempotencyKey != "" {
		if existing := s.replay(ctx, in.IdempotencyKey); existing != nil {
			return existing, nil
		}
	}

	now := s.now().UTC()
	code := generateReportCode()

	media, err := s.storeMedia(ctx, code, in.Media)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		Code:         code,
		AnimalType:   in.AnimalType,
		IncidentType: in.IncidentType,
		Severity:     domain.Severity(in.Severity),
		Description:  strings.TrimSpace(in.Description),
		Location:     *in.Location,
		Address:      strings.TrimSpace(in.Address),
		Media:        media,
		Reporter:     in.Reporter,
		Status:       domain.StatusPending,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Timestamp: now, Note: "Report submitted"},
		},
		IdempotencyKey: in.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.create(ctx, report); err != nil {
		s.discardMedia(media)
		if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
			// A concurrent submission with the same key won the insert.
			if existing := s.replay(ctx, in.IdempotencyKey); existing != nil {
				return existing, nil
			}
		}
		s.logger.Error().Err(err).Str("report_code", report.Code).Msg("failed to create report")
		return nil, fmt.Errorf("submit report: %w", err)
	}
	code = report.Code

	if in.IdempotencyKey != "" && s.dedup != nil {
		if err := s.dedup.Remember(ctx, in.IdempotencyKey, code); err != nil {
			s.logger.Warn().Err(err).Str("report_code", code).Msg("failed to set dedup key")
		}
	}

	s.publish(domain.ReportEvent{ReportCode: code, Type: domain.EventSubmitted, Status: domain.StatusPending, Timestamp: now})
	s.logger.Info().
		Str("report_code", code).
		Str("severity", in.Severity).
		Int("media", len(media)).
		Msg("report submitted")

	return &ports.SubmitResult{Code: code, Status: domain.StatusPending}, nil
}

// create inserts the report, drawing a fresh code when the generated one is
// already taken. Media keys keep the first code as their prefix.
func (s *ReportService) create(ctx context.Context, report *domain.Report) error {
	var err error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		if attempt > 0 {
			report.Code = generateReportCode()
		}
		if err = s.repo.Create(ctx, report); !errors.Is(err, domain.ErrDuplicateReportCode) {
			return err
		}
		s.logger.Warn().Str("report_code", report.Code).Msg("report code collision, retrying")
	}
	return err
}

// replay returns the result of an earlier submission with the same key, or nil.
func (s *ReportService) replay(ctx context.Context, key string) *ports.SubmitResult {
	if s.dedup != nil {
		code, found, err := s.dedup.Lookup(ctx, key)
		if err != nil {
			s.logger.Warn().Err(err).Msg("dedup lookup failed, falling back to store")
		} else if found {
			if r, err := s.repo.FindByCode(ctx, code); err == nil {
				return &ports.SubmitResult{Code: r.Code, Status: r.Status, AlreadyExisted: true}
			}
		}
	}

	r, err := s.repo.FindByIdempotencyKey(ctx, key)
	if err != nil || r == nil {
		return nil
	}
	s.logger.Info().Str("report_code", r.Code).Msg("idempotent replay")
	return &ports.SubmitResult{Code: r.Code, Status: r.Status, AlreadyExisted: true}
}

func (s *ReportService) storeMedia(ctx context.Context, code string, uploads []ports.MediaUpload) ([]domain.MediaRef, error) {
	refs := make([]domain.MediaRef, 0, len(uploads))
	for _, m := range uploads {
		key := fmt.Sprintf("reports/%s/%s%s", code, uuid.NewString(), strings.ToLower(path.Ext(m.Filename)))
		if err := s.media.Put(ctx, key, m.Body, m.Size, m.ContentType); err != nil {
			s.discardMedia(refs)
			return nil, fmt.Errorf("submit report: store media: %w", err)
		}
		refs = append(refs, domain.MediaRef{
			Key:         key,
			Filename:    path.Base(m.Filename),
			ContentType: m.ContentType,
			Size:        m.Size,
		})
	}
	return refs, nil
}

func (s *ReportService) discardMedia(refs []domain.MediaRef) {
	if len(refs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, ref := range refs {
		if err := s.media.Delete(ctx, ref.Key); err != nil {
			s.logger.Warn().Err(err).Str("key", ref.Key).Msg("failed to remove orphaned media")
		}
	}
}

func (s *ReportService) Track(ctx context.Context, code string) (*domain.Report, error) {
	r, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("track report: %w", err)
	}
	return r, nil
}

// Accept binds a pending report to an NGO. Concurrent accepts race on a
// conditional update: the first one wins, the rest get ErrAlreadyAssigned.
func (s *ReportService) Accept(ctx context.Context, code, ngoID string) (*domain.Report, error) {
	ngo, err := s.approvedNgo(ctx, ngoID)
	if err != nil {
		return nil, fmt.Errorf("accept report: %w", err)
	}

	r, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("accept report: %w", err)
	}
	if !r.Open() {
		return nil, fmt.Errorf("accept report: %w", acceptConflict(r))
	}

	now := s.now().UTC()
	updated, err := s.repo.UpdateStatus(ctx, ports.StatusUpdate{
		Code:     code,
		From:     []domain.ReportStatus{domain.StatusPending},
		To:       domain.StatusAccepted,
		AssignTo: ngoID,
		Entry:    domain.StatusHistoryEntry{Status: domain.StatusAccepted, Timestamp: now, Note: "Accepted by " + ngo.Name},
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			if current, ferr := s.repo.FindByCode(ctx, code); ferr == nil {
				err = acceptConflict(current)
			}
		}
		return nil, fmt.Errorf("accept report: %w", err)
	}

	s.publish(domain.ReportEvent{ReportCode: code, Type: domain.EventAccepted, Status: domain.StatusAccepted, Actor: ngoID, Timestamp: now})
	s.logger.Info().Str("report_code", code).Str("ngo_id", ngoID).Msg("report accepted")
	return updated, nil
}

func acceptConflict(r *domain.Report) error {
	if r.AssignedNgo != "" {
		return domain.ErrAlreadyAssigned
	}
	return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, r.Status, domain.StatusAccepted)
}

// Reject records that an NGO declined a case. It is advisory: the report stays
// pending and open to other NGOs.
func (s *ReportService) Reject(ctx context.Context, code, ngoID string) (*domain.Report, error) {
	if _, err := s.approvedNgo(ctx, ngoID); err != nil {
		return nil, fmt.Errorf("reject report: %w", err)
	}

	r, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("reject report: %w", err)
	}
	if !r.Open() {
		return nil, fmt.Errorf("reject report: %w (report is %s)", domain.ErrInvalidTransition, r.Status)
	}

	updated, err := s.repo.AddRejection(ctx, code, ngoID)
	if err != nil {
		return nil, fmt.Errorf("reject report: %w", err)
	}

	s.publish(domain.ReportEvent{ReportCode: code, Type: domain.EventRejected, Status: updated.Status, Actor: ngoID, Timestamp: s.now().UTC()})
	s.logger.Info().Str("report_code", code).Str("ngo_id", ngoID).Msg("report rejected by ngo")
	return updated, nil
}

// Advance moves an accepted case forward. Only the assigned NGO may do so.
func (s *ReportService) Advance(ctx context.Context, in ports.AdvanceInput) (*domain.Report, error) {
	if !in.Next.Valid() {
		return nil, domain.Invalid("unknown status %q", in.Next)
	}
	if in.Next != domain.StatusInProgress && in.Next != domain.StatusResolved {
		return nil, fmt.Errorf("advance report: %w (to %s)", domain.ErrInvalidTransition, in.Next)
	}

	r, err := s.repo.FindByCode(ctx, in.Code)
	if err != nil {
		return nil, fmt.Errorf("advance report: %w", err)
	}
	// An unassigned report is still pending, so nobody can advance it yet.
	if r.AssignedNgo == "" || !r.Status.CanTransitionTo(in.Next) {
		return nil, fmt.Errorf("advance report: %w (from %s to %s)", domain.ErrInvalidTransition, r.Status, in.Next)
	}
	if r.AssignedNgo != in.NgoID {
		return nil, fmt.Errorf("advance report: %w", domain.ErrForbidden)
	}

	now := s.now().UTC()
	updated, err := s.repo.UpdateStatus(ctx, ports.StatusUpdate{
		Code:            in.Code,
		From:            []domain.ReportStatus{r.Status},
		To:              in.Next,
		RequireAssignee: in.NgoID,
		Entry:           domain.StatusHistoryEntry{Status: in.Next, Timestamp: now, Note: strings.TrimSpace(in.Note)},
	})
	if err != nil {
		return nil, fmt.Errorf("advance report: %w", err)
	}

	s.publish(domain.ReportEvent{ReportCode: in.Code, Type: domain.EventStatusChanged, Status: in.Next, Actor: in.NgoID, Note: in.Note, Timestamp: now})
	s.logger.Info().
		Str("report_code", in.Code).
		Str("from", string(r.Status)).
		Str("to", string(in.Next)).
		Msg("report status updated")
	return updated, nil
}

// Suspend takes a report out of circulation. Allowed from any state except
// suspended itself.
func (s *ReportService) Suspend(ctx context.Context, code, adminID, note string) (*domain.Report, error) {
	r, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("suspend report: %w", err)
	}
	if !r.Status.CanSuspend() {
		return nil, fmt.Errorf("suspend report: %w (report is %s)", domain.ErrInvalidTransition, r.Status)
	}

	note = strings.TrimSpace(note)
	if note == "" {
		note = defaultSuspendReason
	}

	now := s.now().UTC()
	updated, err := s.repo.UpdateStatus(ctx, ports.StatusUpdate{
		Code:  code,
		From:  suspendable,
		To:    domain.StatusSuspended,
		Entry: domain.StatusHistoryEntry{Status: domain.StatusSuspended, Timestamp: now, Note: note},
	})
	if err != nil {
		return nil, fmt.Errorf("suspend report: %w", err)
	}

	s.publish(domain.ReportEvent{ReportCode: code, Type: domain.EventSuspended, Status: domain.StatusSuspended, Actor: adminID, Note: note, Timestamp: now})
	s.logger.Warn().Str("report_code", code).Str("admin_id", adminID).Msg("report suspended")
	return updated, nil
}

// Cases lists what an NGO dashboard shows: every open report plus the NGO's own.
func (s *ReportService) Cases(ctx context.Context, ngoID string) ([]*domain.Report, error) {
	reports, err := s.repo.List(ctx, ports.ReportFilter{AssignedNgo: ngoID, IncludeOpen: true})
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	return reports, nil
}

func (s *ReportService) NgoStats(ctx context.Context, ngoID string) (*ports.NgoStats, error) {
	open, err := s.repo.CountByStatus(ctx, ports.ReportFilter{Statuses: []domain.ReportStatus{domain.StatusPending}})
	if err != nil {
		return nil, fmt.Errorf("ngo stats: %w", err)
	}
	own, err := s.repo.CountByStatus(ctx, ports.ReportFilter{AssignedNgo: ngoID})
	if err != nil {
		return nil, fmt.Errorf("ngo stats: %w", err)
	}

	stats := &ports.NgoStats{
		PendingCases:  open[domain.StatusPending],
		ActiveCases:   own[domain.StatusAccepted] + own[domain.StatusInProgress],
		ResolvedCases: own[domain.StatusResolved],
	}
	for _, n := range own {
		stats.TotalCases += n
	}
	return stats, nil
}

// approvedNgo loads the NGO a case action is performed for.
func (s *ReportService) approvedNgo(ctx context.Context, ngoID string) (*domain.Account, error) {
	if ngoID == "" {
		return nil, domain.ErrForbidden
	}
	ngo, err := s.accounts.FindByID(ctx, ngoID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	if ngo.Role != domain.RoleNGO || ngo.Status != domain.AccountApproved {
		return nil, domain.ErrForbidden
	}
	return ngo, nil
}

func (s *ReportService) publish(event domain.ReportEvent) {
	if s.audit != nil {
		s.audit.Publish(event)
	}
}

// generateReportCode returns a unique report code in the format AG-XXXXXXXX.
func generateReportCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("AG-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("AG-%08X", b)
}
