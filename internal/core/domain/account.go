package domain

import (
	"slices"
	"strings"
	"time"
)

// Role identifies the kind of authenticated account.
type Role string

const (
	RoleNGO        Role = "ngo"
	RoleNgoAdmin   Role = "ngo_admin"
	RoleSuperAdmin Role = "super_admin"
)

// AccountStatus is the approval state of an NGO.
type AccountStatus string

const (
	AccountPending  AccountStatus = "pending"
	AccountApproved AccountStatus = "approved"
	AccountRejected AccountStatus = "rejected"
)

// Permission is a capability granted to an NGO admin.
type Permission string

const (
	PermManageCases      Permission = "manage_cases"
	PermViewReports      Permission = "view_reports"
	PermUpdateNgoProfile Permission = "update_ngo_profile"
	PermManageTeam       Permission = "manage_team"
)

const CategoryAllAnimals = "All Animals"

var (
	RescueCategories = []string{"Dogs", "Cats", "Farm Animals", "Wildlife", "Birds", "Reptiles", CategoryAllAnimals}
	RescueDistances  = []int{5, 10, 15, 20, 30, 50}
	Permissions      = []Permission{PermManageCases, PermViewReports, PermUpdateNgoProfile, PermManageTeam}
)

// animalCategory maps a report's animal type to the rescue category that covers it.
// Types without an entry are only covered by "All Animals".
var animalCategory = map[string]string{
	"Dog":     "Dogs",
	"Cat":     "Cats",
	"Bird":    "Birds",
	"Cow":     "Farm Animals",
	"Buffalo": "Farm Animals",
	"Horse":   "Farm Animals",
	"Goat":    "Farm Animals",
	"Sheep":   "Farm Animals",
}

// Address is a structured postal address.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Account models an NGO, NGO admin or super admin.
type Account struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Email              string        `json:"email"`
	PasswordHash       string        `json:"-"`
	ContactPhone       string        `json:"contactPhone,omitempty"`
	Description        string        `json:"description,omitempty"`
	Role               Role          `json:"role"`
	Status             AccountStatus `json:"status"`
	RescueCategories   []string      `json:"rescueCategories,omitempty"`
	RescueDistance     int           `json:"rescueDistance,omitempty"`
	ServiceHours       string        `json:"serviceHours,omitempty"`
	RegistrationNumber string        `json:"registrationNumber,omitempty"`
	Address            *Address      `json:"address,omitempty"`
	Location           *Location     `json:"location,omitempty"`
	NgoID              string        `json:"ngoId,omitempty"`
	Permissions        []Permission  `json:"permissions,omitempty"`
	Token              string        `json:"-"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasPermission reports whether the account was granted p.
func (a *Account) HasPermission(p Permission) bool {
	return slices.Contains(a.Permissions, p)
}

// CoversCategory reports whether the NGO rescues animals of the given category.
func (a *Account) CoversCategory(category string) bool {
	return slices.Contains(a.RescueCategories, category) ||
		slices.Contains(a.RescueCategories, CategoryAllAnimals)
}

// CoversAnimal reports whether the NGO rescues the given report animal type.
func (a *Account) CoversAnimal(animalType string) bool {
	if slices.Contains(a.RescueCategories, CategoryAllAnimals) {
		return true
	}
	category, ok := animalCategory[animalType]
	return ok && slices.Contains(a.RescueCategories, category)
}

// Decide reports the effect of applying an approval decision to an NGO in
// status s. Repeating the current decision is a no-op (changed=false); a
// decided NGO cannot be flipped to the opposite decision.
func (s AccountStatus) Decide(next AccountStatus) (changed bool, err error) {
	if next != AccountApproved && next != AccountRejected {
		return false, ErrInvalidTransition
	}
	switch s {
	case AccountPending:
		return true, nil
	case next:
		return false, nil
	default:
		return false, ErrInvalidTransition
	}
}

func IsRescueCategory(c string) bool { return slices.Contains(RescueCategories, c) }

func IsRescueDistance(d int) bool { return slices.Contains(RescueDistances, d) }

func IsPermission(p Permission) bool { return slices.Contains(Permissions, p) }
