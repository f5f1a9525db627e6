package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

func TestAdminService_Stats(t *testing.T) {
	f := newReportFixture()
	admin := NewAdminService(f.accounts, f.reports, discardLogger)
	ctx := context.Background()

	pending := approvedNgo("ngo-p", "Pending")
	pending.Status = domain.AccountPending
	f.accounts.put(pending)
	f.accounts.put(&domain.Account{ID: "adm-1", Name: "Admin", Role: domain.RoleNgoAdmin, NgoID: "ngo-a", Status: domain.AccountApproved})

	a := f.submit(t)
	b := f.submit(t)
	f.submit(t)
	if _, err := f.svc.Suspend(ctx, a, "root", "spam"); err != nil {
		t.Fatalf("Suspend returned error: %v", err)
	}
	if _, err := f.svc.Accept(ctx, b, "ngo-a"); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}

	stats, err := admin.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.TotalReports != 3 || stats.SuspendedReports != 1 || stats.ResolvedCases != 0 {
		t.Fatalf("unexpected report stats: %+v", stats)
	}
	if stats.ActiveNgos != 2 || stats.PendingApprovals != 1 || stats.NgoAdmins != 1 {
		t.Fatalf("unexpected account stats: %+v", stats)
	}
	if stats.ReportsByStatus[domain.StatusPending] != 1 || stats.ReportsByStatus[domain.StatusAccepted] != 1 {
		t.Fatalf("unexpected breakdown: %v", stats.ReportsByStatus)
	}

	reports, err := admin.Reports(ctx)
	if err != nil || len(reports) != 3 {
		t.Fatalf("Reports = %d, %v", len(reports), err)
	}
}

func TestAdminService_Ngos(t *testing.T) {
	accounts := newStubAccountRepo()
	admin := NewAdminService(accounts, newStubReportRepo(), discardLogger)

	accounts.put(approvedNgo("n1", "Alpha"))
	p := approvedNgo("n2", "Beta")
	p.Status = domain.AccountPending
	accounts.put(p)
	accounts.put(&domain.Account{ID: "adm", Name: "Gamma", Role: domain.RoleNgoAdmin})

	overview, err := admin.Ngos(context.Background())
	if err != nil {
		t.Fatalf("Ngos returned error: %v", err)
	}
	if len(overview.Ngos) != 2 {
		t.Fatalf("expected 2 ngos, got %d", len(overview.Ngos))
	}
	if len(overview.Pending) != 1 || overview.Pending[0].ID != "n2" {
		t.Fatalf("unexpected pending list: %v", overview.Pending)
	}
}

func TestAdminService_CreateNgoAdmin(t *testing.T) {
	accounts := newStubAccountRepo()
	admin := NewAdminService(accounts, newStubReportRepo(), discardLogger)
	auth := NewAuthService(accounts, "secret", 0, discardLogger)
	ctx := context.Background()
	accounts.put(approvedNgo("ngo-a", "Alpha"))

	created, err := admin.CreateNgoAdmin(ctx, ports.CreateNgoAdminInput{
		Name:        "Case Manager",
		Email:       "Manager@Alpha.org",
		Password:    "manager1",
		NgoID:       "ngo-a",
		Permissions: []domain.Permission{domain.PermManageCases},
	})
	if err != nil {
		t.Fatalf("CreateNgoAdmin returned error: %v", err)
	}
	if created.Role != domain.RoleNgoAdmin || created.NgoID != "ngo-a" || created.Email != "manager@alpha.org" {
		t.Fatalf("unexpected ngo admin: %+v", created)
	}

	_, account, err := auth.Login(ctx, ports.LoginInput{Email: "manager@alpha.org", Password: "manager1", Role: domain.RoleNgoAdmin})
	if err != nil {
		t.Fatalf("ngo admin Login returned error: %v", err)
	}
	sess, _ := domain.NewSession(account)
	if ngo, err := domain.ActingNgo(sess); err != nil || ngo != "ngo-a" {
		t.Fatalf("ActingNgo = %q, %v", ngo, err)
	}

	list, err := admin.NgoAdmins(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("NgoAdmins = %d, %v", len(list), err)
	}
}

func TestAdminService_CreateNgoAdmin_Validation(t *testing.T) {
	accounts := newStubAccountRepo()
	admin := NewAdminService(accounts, newStubReportRepo(), discardLogger)
	accounts.put(approvedNgo("ngo-a", "Alpha"))
	accounts.put(&domain.Account{ID: "root", Role: domain.RoleSuperAdmin})

	valid := ports.CreateNgoAdminInput{Name: "M", Email: "m@alpha.org", Password: "secret1", NgoID: "ngo-a"}
	cases := map[string]func(in *ports.CreateNgoAdminInput){
		"missing name":       func(in *ports.CreateNgoAdminInput) { in.Name = "" },
		"bad email":          func(in *ports.CreateNgoAdminInput) { in.Email = "m" },
		"short password":     func(in *ports.CreateNgoAdminInput) { in.Password = "x" },
		"unknown permission": func(in *ports.CreateNgoAdminInput) { in.Permissions = []domain.Permission{"fly"} },
		"unknown ngo":        func(in *ports.CreateNgoAdminInput) { in.NgoID = "missing" },
		"ngo is not an ngo":  func(in *ports.CreateNgoAdminInput) { in.NgoID = "root" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			if _, err := admin.CreateNgoAdmin(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}

	if _, err := admin.CreateNgoAdmin(context.Background(), valid); err != nil {
		t.Fatalf("CreateNgoAdmin returned error: %v", err)
	}
	if _, err := admin.CreateNgoAdmin(context.Background(), valid); !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestAdminService_DeleteNgoAdmin(t *testing.T) {
	accounts := newStubAccountRepo()
	admin := NewAdminService(accounts, newStubReportRepo(), discardLogger)
	accounts.put(approvedNgo("ngo-a", "Alpha"))
	accounts.put(&domain.Account{ID: "adm", Role: domain.RoleNgoAdmin, NgoID: "ngo-a"})

	if err := admin.DeleteNgoAdmin(context.Background(), "ngo-a"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound deleting an NGO, got %v", err)
	}
	if err := admin.DeleteNgoAdmin(context.Background(), "adm"); err != nil {
		t.Fatalf("DeleteNgoAdmin returned error: %v", err)
	}
	if err := admin.DeleteNgoAdmin(context.Background(), "adm"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound on second delete, got %v", err)
	}
	if _, err := accounts.FindByID(context.Background(), "ngo-a"); err != nil {
		t.Fatalf("NGO must survive: %v", err)
	}
}
