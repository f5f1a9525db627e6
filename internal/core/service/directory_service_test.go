package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

func ngoAt(id, name, city string, loc domain.Location, distance int, categories ...string) *domain.Account {
	a := approvedNgo(id, name)
	a.Address = &domain.Address{City: city}
	a.Location = &loc
	a.RescueDistance = distance
	a.RescueCategories = categories
	return a
}

func TestDirectoryService_ListApproved_Filters(t *testing.T) {
	accounts := newStubAccountRepo()
	svc := NewDirectoryService(accounts, newStubReportRepo(), discardLogger)

	accounts.put(ngoAt("n1", "Paws Mumbai", "Mumbai", domain.Location{}, 10, "Dogs"))
	a := ngoAt("n2", "Wings Trust", "Navi Mumbai", domain.Location{}, 10, "Birds")
	a.Description = "Bird hospital and aviary"
	accounts.put(a)
	accounts.put(ngoAt("n3", "Every Creature", "Pune", domain.Location{}, 10, domain.CategoryAllAnimals))
	pending := ngoAt("n4", "Not Yet", "Mumbai", domain.Location{}, 10, "Dogs")
	pending.Status = domain.AccountPending
	accounts.put(pending)

	cases := []struct {
		name   string
		filter ports.NgoFilter
		want   []string
	}{
		{"all approved", ports.NgoFilter{}, []string{"n3", "n1", "n2"}},
		{"city substring", ports.NgoFilter{City: "mumbai"}, []string{"n1", "n2"}},
		{"category with all animals", ports.NgoFilter{Category: "Birds"}, []string{"n3", "n2"}},
		{"search description", ports.NgoFilter{Search: "AVIARY"}, []string{"n2"}},
		{"combined", ports.NgoFilter{City: "pune", Category: "Dogs"}, []string{"n3"}},
		{"no match", ports.NgoFilter{City: "Delhi"}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.ListApproved(context.Background(), tc.filter)
			if err != nil {
				t.Fatalf("ListApproved returned error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d ngos, want %d", len(got), len(tc.want))
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("position %d: got %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestDirectoryService_ApproveFlow(t *testing.T) {
	accounts := newStubAccountRepo()
	auth := NewAuthService(accounts, "secret", 0, discardLogger)
	svc := NewDirectoryService(accounts, newStubReportRepo(), discardLogger)
	ctx := context.Background()

	registered, err := auth.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if got, _ := svc.ListApproved(ctx, ports.NgoFilter{}); len(got) != 0 {
		t.Fatalf("pending NGO must not be listed")
	}

	approved, err := svc.Approve(ctx, registered.ID)
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if approved.Status != domain.AccountApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}

	again, err := svc.Approve(ctx, registered.ID)
	if err != nil {
		t.Fatalf("re-approving must be a no-op, got %v", err)
	}
	if again.Status != domain.AccountApproved {
		t.Fatalf("unexpected status after re-approve: %s", again.Status)
	}

	if _, err := svc.Reject(ctx, registered.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition flipping a decision, got %v", err)
	}

	listed, err := svc.ListApproved(ctx, ports.NgoFilter{City: "Mumbai"})
	if err != nil {
		t.Fatalf("ListApproved returned error: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != registered.ID {
		t.Fatalf("expected the approved NGO to be listed, got %v", listed)
	}
}

func TestDirectoryService_Reject(t *testing.T) {
	accounts := newStubAccountRepo()
	svc := NewDirectoryService(accounts, newStubReportRepo(), discardLogger)
	pending := approvedNgo("n1", "Pending")
	pending.Status = domain.AccountPending
	accounts.put(pending)

	rejected, err := svc.Reject(context.Background(), "n1")
	if err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if rejected.Status != domain.AccountRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}
	if _, err := svc.Reject(context.Background(), "n1"); err != nil {
		t.Fatalf("re-rejecting must be a no-op, got %v", err)
	}
	if _, err := svc.Approve(context.Background(), "n1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestDirectoryService_Decide_UnknownAccounts(t *testing.T) {
	accounts := newStubAccountRepo()
	svc := NewDirectoryService(accounts, newStubReportRepo(), discardLogger)
	accounts.put(&domain.Account{ID: "root", Role: domain.RoleSuperAdmin, Status: domain.AccountApproved})

	for _, id := range []string{"missing", "root"} {
		if _, err := svc.Approve(context.Background(), id); !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound for %q, got %v", id, err)
		}
	}
}

func TestDirectoryService_Match(t *testing.T) {
	accounts := newStubAccountRepo()
	reports := newStubReportRepo()
	svc := NewDirectoryService(accounts, reports, discardLogger)

	// report in Bandra, Mumbai
	site := domain.Location{Longitude: 72.8347, Latitude: 19.0596}
	reports.put(&domain.Report{Code: "AG-00000001", AnimalType: "Dog", Location: site, Status: domain.StatusPending})

	accounts.put(ngoAt("near", "Near", "Mumbai", domain.Location{Longitude: 72.84, Latitude: 19.06}, 5, "Dogs"))
	accounts.put(ngoAt("mid", "Mid", "Mumbai", domain.Location{Longitude: 72.93, Latitude: 19.11}, 20, domain.CategoryAllAnimals))
	accounts.put(ngoAt("far", "Far", "Pune", domain.Location{Longitude: 73.85, Latitude: 18.52}, 50, "Dogs"))
	accounts.put(ngoAt("cats", "Cats Only", "Mumbai", domain.Location{Longitude: 72.84, Latitude: 19.06}, 50, "Cats"))
	nowhere := approvedNgo("nowhere", "No Location")
	nowhere.Location = nil
	accounts.put(nowhere)

	matches, err := svc.Match(context.Background(), "AG-00000001")
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Ngo.ID != "near" || matches[1].Ngo.ID != "mid" {
		t.Fatalf("unexpected match order: %s, %s", matches[0].Ngo.ID, matches[1].Ngo.ID)
	}
	if matches[0].DistanceKm > matches[1].DistanceKm {
		t.Fatalf("matches must be sorted nearest first")
	}

	if _, err := svc.Match(context.Background(), "AG-FFFFFFFF"); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}
