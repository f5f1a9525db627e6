package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

// newTestContext builds an echo context carrying session, with the
// validator the router installs.
func newTestContext(method, target string, body io.Reader, contentType string, session domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if session != nil {
		req = req.WithContext(domain.WithSession(req.Context(), session))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Account, error)
	loginFn    func(ctx context.Context, in ports.LoginInput) (string, *domain.Account, error)
	logoutFn   func(ctx context.Context, accountID string) error
	profileFn  func(ctx context.Context, token string) (*domain.Account, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (string, *domain.Account, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Logout(ctx context.Context, accountID string) error {
	return s.logoutFn(ctx, accountID)
}

func (s *stubAuthService) Profile(ctx context.Context, token string) (*domain.Account, error) {
	return s.profileFn(ctx, token)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	account, err := s.profileFn(ctx, token)
	if err != nil {
		return nil, err
	}
	return domain.NewSession(account)
}

// stubReportService embeds the interface so tests only implement what they call.
type stubReportService struct {
	ports.ReportService
	submitFn  func(ctx context.Context, in ports.SubmitReportInput) (*ports.SubmitResult, error)
	trackFn   func(ctx context.Context, code string) (*domain.Report, error)
	acceptFn  func(ctx context.Context, code, ngoID string) (*domain.Report, error)
	rejectFn  func(ctx context.Context, code, ngoID string) (*domain.Report, error)
	advanceFn func(ctx context.Context, in ports.AdvanceInput) (*domain.Report, error)
	suspendFn func(ctx context.Context, code, adminID, note string) (*domain.Report, error)
	casesFn   func(ctx context.Context, ngoID string) ([]*domain.Report, error)
}

func (s *stubReportService) Submit(ctx context.Context, in ports.SubmitReportInput) (*ports.SubmitResult, error) {
	return s.submitFn(ctx, in)
}

func (s *stubReportService) Track(ctx context.Context, code string) (*domain.Report, error) {
	return s.trackFn(ctx, code)
}

func (s *stubReportService) Accept(ctx context.Context, code, ngoID string) (*domain.Report, error) {
	return s.acceptFn(ctx, code, ngoID)
}

func (s *stubReportService) Reject(ctx context.Context, code, ngoID string) (*domain.Report, error) {
	return s.rejectFn(ctx, code, ngoID)
}

func (s *stubReportService) Advance(ctx context.Context, in ports.AdvanceInput) (*domain.Report, error) {
	return s.advanceFn(ctx, in)
}

func (s *stubReportService) Suspend(ctx context.Context, code, adminID, note string) (*domain.Report, error) {
	return s.suspendFn(ctx, code, adminID, note)
}

func (s *stubReportService) Cases(ctx context.Context, ngoID string) ([]*domain.Report, error) {
	return s.casesFn(ctx, ngoID)
}

type stubDirectoryService struct {
	ports.DirectoryService
	listFn    func(ctx context.Context, f ports.NgoFilter) ([]*domain.Account, error)
	approveFn func(ctx context.Context, id string) (*domain.Account, error)
	rejectFn  func(ctx context.Context, id string) (*domain.Account, error)
	matchFn   func(ctx context.Context, code string) ([]ports.NgoMatch, error)
}

func (s *stubDirectoryService) ListApproved(ctx context.Context, f ports.NgoFilter) ([]*domain.Account, error) {
	return s.listFn(ctx, f)
}

func (s *stubDirectoryService) Approve(ctx context.Context, id string) (*domain.Account, error) {
	return s.approveFn(ctx, id)
}

func (s *stubDirectoryService) Reject(ctx context.Context, id string) (*domain.Account, error) {
	return s.rejectFn(ctx, id)
}

func (s *stubDirectoryService) Match(ctx context.Context, code string) ([]ports.NgoMatch, error) {
	return s.matchFn(ctx, code)
}

type stubAdminService struct {
	ports.AdminService
	createFn func(ctx context.Context, in ports.CreateNgoAdminInput) (*domain.Account, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubAdminService) CreateNgoAdmin(ctx context.Context, in ports.CreateNgoAdminInput) (*domain.Account, error) {
	return s.createFn(ctx, in)
}

func (s *stubAdminService) DeleteNgoAdmin(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func ngoSession(id string) domain.Session {
	return domain.NgoSession{Account: &domain.Account{ID: id, Role: domain.RoleNGO, Status: domain.AccountApproved}}
}

func superAdminSession() domain.Session {
	return domain.SuperAdminSession{Account: &domain.Account{ID: "admin-1", Role: domain.RoleSuperAdmin}}
}
