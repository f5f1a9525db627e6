package service

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory account repository
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Account
	seq  int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byID: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return nil, domain.ErrAccountExists
		}
	}
	c := cloneAccount(a)
	if c.ID == "" {
		r.seq++
		c.ID = fmt.Sprintf("acc-%d", r.seq)
	}
	r.byID[c.ID] = c
	return cloneAccount(c), nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByToken(_ context.Context, token string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token == "" {
		return nil, domain.ErrAccountNotFound
	}
	for _, a := range r.byID {
		if a.Token == token {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) SetToken(_ context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Token = token
	return nil
}

func (r *stubAccountRepo) UpdateStatus(_ context.Context, id string, from, to domain.AccountStatus) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if a.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	a.Status = to
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) List(_ context.Context, f ports.AccountFilter) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Account, 0)
	for _, a := range r.byID {
		if f.Role != "" && a.Role != f.Role {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, cloneAccount(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubAccountRepo) Count(ctx context.Context, f ports.AccountFilter) (int64, error) {
	list, err := r.List(ctx, f)
	return int64(len(list)), err
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.byID, id)
	return nil
}

// put stores an account directly, bypassing validation.
func (r *stubAccountRepo) put(a *domain.Account) *domain.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = cloneAccount(a)
	return a
}

// ---------------------------------------------------------------------------
// In-memory report repository (conditional updates mirror the Mongo filters)
// ---------------------------------------------------------------------------

type stubReportRepo struct {
	mu        sync.Mutex
	byCode    map[string]*domain.Report
	createErr error
	// onCreate runs before each insert, e.g. to land a competing submission.
	onCreate func(r *domain.Report)
	creates  []string
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{byCode: make(map[string]*domain.Report)}
}

func cloneReport(r *domain.Report) *domain.Report {
	c := *r
	c.StatusHistory = append([]domain.StatusHistoryEntry(nil), r.StatusHistory...)
	c.RejectedBy = append([]string(nil), r.RejectedBy...)
	return &c
}

func matchesFilter(r *domain.Report, f ports.ReportFilter) bool {
	if f.AssignedNgo != "" {
		own := r.AssignedNgo == f.AssignedNgo
		open := f.IncludeOpen && r.Status == domain.StatusPending && r.AssignedNgo == ""
		if !own && !open {
			return false
		}
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, r.Status) {
		return false
	}
	return true
}

// Create enforces the same unique keys as the reports collection.
func (s *stubReportRepo) Create(_ context.Context, r *domain.Report) error {
	if s.createErr != nil {
		return s.createErr
	}
	if s.onCreate != nil {
		s.onCreate(r)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates = append(s.creates, r.Code)
	if _, ok := s.byCode[r.Code]; ok {
		return domain.ErrDuplicateReportCode
	}
	if r.IdempotencyKey != "" {
		for _, other := range s.byCode {
			if other.IdempotencyKey == r.IdempotencyKey {
				return domain.ErrDuplicateIdempotencyKey
			}
		}
	}
	s.byCode[r.Code] = cloneReport(r)
	return nil
}

func (s *stubReportRepo) insert(r *domain.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byCode[r.Code] = cloneReport(r)
}

func (s *stubReportRepo) FindByCode(_ context.Context, code string) (*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byCode[code]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return cloneReport(r), nil
}

func (s *stubReportRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.byCode {
		if r.IdempotencyKey == key {
			return cloneReport(r), nil
		}
	}
	return nil, domain.ErrReportNotFound
}

func (s *stubReportRepo) List(_ context.Context, f ports.ReportFilter) ([]*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Report, 0)
	for _, r := range s.byCode {
		if matchesFilter(r, f) {
			out = append(out, cloneReport(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubReportRepo) UpdateStatus(_ context.Context, u ports.StatusUpdate) (*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byCode[u.Code]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	if !slices.Contains(u.From, r.Status) {
		return nil, domain.ErrInvalidTransition
	}
	if u.AssignTo != "" && r.AssignedNgo != "" {
		return nil, domain.ErrInvalidTransition
	}
	if u.RequireAssignee != "" && r.AssignedNgo != u.RequireAssignee {
		return nil, domain.ErrInvalidTransition
	}
	r.Status = u.To
	if u.AssignTo != "" {
		r.AssignedNgo = u.AssignTo
	}
	r.StatusHistory = append(r.StatusHistory, u.Entry)
	return cloneReport(r), nil
}

func (s *stubReportRepo) AddRejection(_ context.Context, code, ngoID string) (*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byCode[code]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	if r.Status != domain.StatusPending || r.AssignedNgo != "" {
		return nil, domain.ErrInvalidTransition
	}
	if !slices.Contains(r.RejectedBy, ngoID) {
		r.RejectedBy = append(r.RejectedBy, ngoID)
	}
	return cloneReport(r), nil
}

func (s *stubReportRepo) CountByStatus(_ context.Context, f ports.ReportFilter) (map[domain.ReportStatus]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.ReportStatus]int64)
	for _, r := range s.byCode {
		if matchesFilter(r, f) {
			out[r.Status]++
		}
	}
	return out, nil
}

// put stores a report directly.
func (s *stubReportRepo) put(r *domain.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byCode[r.Code] = cloneReport(r)
}

// ---------------------------------------------------------------------------
// Media store, deduper and audit publisher
// ---------------------------------------------------------------------------

type stubMediaStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failOn  int // 1-based index of the Put call that fails; 0 disables
	puts    int
}

func newStubMediaStore() *stubMediaStore {
	return &stubMediaStore{objects: make(map[string][]byte)}
}

func (m *stubMediaStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.failOn != 0 && m.puts == m.failOn {
		return fmt.Errorf("bucket unavailable")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = b
	return nil
}

func (m *stubMediaStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

type stubDeduper struct {
	mu        sync.Mutex
	keys      map[string]string
	lookupErr error
}

func newStubDeduper() *stubDeduper {
	return &stubDeduper{keys: make(map[string]string)}
}

func (d *stubDeduper) Lookup(_ context.Context, key string) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lookupErr != nil {
		return "", false, d.lookupErr
	}
	code, ok := d.keys[key]
	return code, ok, nil
}

func (d *stubDeduper) Remember(_ context.Context, key, code string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys[key] = code
	return nil
}

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.ReportEvent
}

func (a *recordingAudit) Publish(e domain.ReportEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *recordingAudit) types() []domain.ReportEventType {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.ReportEventType, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Type)
	}
	return out
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func approvedNgo(id, name string) *domain.Account {
	return &domain.Account{
		ID:               id,
		Name:             name,
		Email:            strings.ToLower(id) + "@rescue.org",
		Role:             domain.RoleNGO,
		Status:           domain.AccountApproved,
		RescueCategories: []string{"Dogs", "Cats"},
		RescueDistance:   20,
		Address:          &domain.Address{City: "Mumbai"},
	}
}

func dogReportInput() ports.SubmitReportInput {
	return ports.SubmitReportInput{
		AnimalType:   "Dog",
		IncidentType: "Injured Animal",
		Severity:     "high",
		Description:  "Injured dog near the station, bleeding from its leg",
		Location:     &domain.Location{Longitude: 72.87, Latitude: 19.07},
	}
}
