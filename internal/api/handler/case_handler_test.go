package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

func withCaseID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestCaseHandler_Accept_ActsForSession(t *testing.T) {
	tests := []struct {
		name    string
		session domain.Session
		wantNgo string
		wantErr error
	}{
		{name: "ngo acts for itself", session: ngoSession("ngo-1"), wantNgo: "ngo-1"},
		{
			name:    "ngo admin acts for linked ngo",
			session: domain.NgoAdminSession{Account: &domain.Account{
				ID: "admin-7", Role: domain.RoleNgoAdmin, NgoID: "ngo-1",
				Permissions: []domain.Permission{domain.PermManageCases},
			}},
			wantNgo: "ngo-1",
		},
		{
			name:    "ngo admin without manage_cases",
			session: domain.NgoAdminSession{Account: &domain.Account{
				ID: "admin-8", Role: domain.RoleNgoAdmin, NgoID: "ngo-1",
				Permissions: []domain.Permission{domain.PermViewReports},
			}},
			wantErr: domain.ErrForbidden,
		},
		{name: "super admin", session: superAdminSession(), wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubReportService{
				acceptFn: func(ctx context.Context, code, ngoID string) (*domain.Report, error) {
					if ngoID != tt.wantNgo || code != "AG-1" {
						t.Fatalf("accept(%q, %q)", code, ngoID)
					}
					return &domain.Report{Code: code, Status: domain.StatusAccepted, AssignedNgo: ngoID}, nil
				},
			}
			handler := NewCaseHandler(stub)

			c, rec := newTestContext(http.MethodPut, "/api/ngo/cases/AG-1/accept", nil, "", tt.session)
			err := handler.Accept(withCaseID(c, "AG-1"))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}

			var resp struct {
				Message string         `json:"message"`
				Report  map[string]any `json:"report"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Report["status"] != "accepted" || resp.Report["assignedNgo"] != tt.wantNgo {
				t.Fatalf("unexpected payload: %s", rec.Body.String())
			}
		})
	}
}

func TestCaseHandler_Accept_Conflict(t *testing.T) {
	stub := &stubReportService{
		acceptFn: func(ctx context.Context, code, ngoID string) (*domain.Report, error) {
			return nil, domain.ErrAlreadyAssigned
		},
	}
	handler := NewCaseHandler(stub)

	c, _ := newTestContext(http.MethodPut, "/api/ngo/cases/AG-1/accept", nil, "", ngoSession("ngo-2"))
	if err := handler.Accept(withCaseID(c, "AG-1")); !errors.Is(err, domain.ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
}

func TestCaseHandler_Reject(t *testing.T) {
	stub := &stubReportService{
		rejectFn: func(ctx context.Context, code, ngoID string) (*domain.Report, error) {
			return &domain.Report{Code: code, Status: domain.StatusPending, RejectedBy: []string{ngoID}}, nil
		},
	}
	handler := NewCaseHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/api/ngo/cases/AG-1/reject", nil, "", ngoSession("ngo-1"))
	if err := handler.Reject(withCaseID(c, "AG-1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCaseHandler_UpdateStatus(t *testing.T) {
	var got ports.AdvanceInput
	stub := &stubReportService{
		advanceFn: func(ctx context.Context, in ports.AdvanceInput) (*domain.Report, error) {
			got = in
			return &domain.Report{Code: in.Code, Status: in.Next, AssignedNgo: in.NgoID}, nil
		},
	}
	handler := NewCaseHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/api/ngo/cases/AG-1/status",
		jsonBody(`{"status":"resolved","notes":"Treated and released"}`), echo.MIMEApplicationJSON, ngoSession("ngo-1"))
	if err := handler.UpdateStatus(withCaseID(c, "AG-1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := ports.AdvanceInput{Code: "AG-1", NgoID: "ngo-1", Next: domain.StatusResolved, Note: "Treated and released"}
	if got != want {
		t.Fatalf("advance input = %+v, want %+v", got, want)
	}
}

func TestCaseHandler_UpdateStatus_MissingStatus(t *testing.T) {
	handler := NewCaseHandler(&stubReportService{})

	c, _ := newTestContext(http.MethodPut, "/api/ngo/cases/AG-1/status", jsonBody(`{"notes":"x"}`), echo.MIMEApplicationJSON, ngoSession("ngo-1"))
	if err := handler.UpdateStatus(withCaseID(c, "AG-1")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCaseHandler_Cases_ViewOnlyAdmin(t *testing.T) {
	stub := &stubReportService{
		casesFn: func(ctx context.Context, ngoID string) ([]*domain.Report, error) {
			if ngoID != "ngo-1" {
				t.Fatalf("cases for %q", ngoID)
			}
			return []*domain.Report{{Code: "AG-1", Status: domain.StatusPending}}, nil
		},
	}
	handler := NewCaseHandler(stub)

	viewer := domain.NgoAdminSession{Account: &domain.Account{
		ID: "admin-9", Role: domain.RoleNgoAdmin, NgoID: "ngo-1",
		Permissions: []domain.Permission{domain.PermViewReports},
	}}
	c, rec := newTestContext(http.MethodGet, "/api/ngo/cases", nil, "", viewer)
	if err := handler.Cases(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var cases []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &cases); err != nil {
		t.Fatalf("expected a bare array: %v", err)
	}
	if len(cases) != 1 || cases[0]["reportId"] != "AG-1" {
		t.Fatalf("unexpected cases: %s", rec.Body.String())
	}
}
