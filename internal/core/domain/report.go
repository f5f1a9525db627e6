package domain

import (
	"slices"
	"time"
)

// ReportStatus represents the lifecycle state of an incident report.
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusAccepted   ReportStatus = "accepted"
	StatusInProgress ReportStatus = "in-progress"
	StatusResolved   ReportStatus = "resolved"
	StatusSuspended  ReportStatus = "suspended"
)

// validTransitions defines the NGO-driven state machine. Suspension is
// handled separately because it applies to every state.
var validTransitions = map[ReportStatus][]ReportStatus{
	StatusPending:    {StatusAccepted},
	StatusAccepted:   {StatusInProgress},
	StatusInProgress: {StatusResolved},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	if next == StatusSuspended {
		return s.CanSuspend()
	}
	return slices.Contains(validTransitions[s], next)
}

// CanSuspend reports whether an admin may suspend a report in this status.
func (s ReportStatus) CanSuspend() bool {
	return s.Valid() && s != StatusSuspended
}

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusResolved, StatusSuspended:
		return true
	}
	return false
}

// Severity classifies how urgent an incident is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

var (
	AnimalTypes   = []string{"Dog", "Cat", "Cow", "Buffalo", "Horse", "Bird", "Goat", "Sheep", "Other"}
	IncidentTypes = []string{"Physical Abuse", "Neglect", "Abandonment", "Injured Animal", "Illegal Confinement", "Medical Emergency", "Other"}
)

const (
	MinReportDescription = 20
	MaxMediaFiles        = 5
	MaxMediaBytes        = 10 << 20
)

// ReporterContact is optional; reports may be submitted anonymously.
type ReporterContact struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

// MediaRef points at an attachment held by the media store.
type MediaRef struct {
	Key         string `json:"key" bson:"key"`
	Filename    string `json:"filename" bson:"filename"`
	ContentType string `json:"contentType" bson:"content_type"`
	Size        int64  `json:"size" bson:"size"`
}

// StatusHistoryEntry records a single status transition on a report.
type StatusHistoryEntry struct {
	Status    ReportStatus `json:"status" bson:"status"`
	Timestamp time.Time    `json:"timestamp" bson:"timestamp"`
	Note      string       `json:"note,omitempty" bson:"note,omitempty"`
}

// Report is the incident aggregate root.
type Report struct {
	ID             string               `json:"-" bson:"_id,omitempty"`
	Code           string               `json:"reportId" bson:"code"`
	AnimalType     string               `json:"animalType" bson:"animal_type"`
	IncidentType   string               `json:"incidentType" bson:"incident_type"`
	Severity       Severity             `json:"severity" bson:"severity"`
	Description    string               `json:"description" bson:"description"`
	Location       Location             `json:"location" bson:"-"`
	Point          GeoPoint             `json:"-" bson:"location"`
	Address        string               `json:"address,omitempty" bson:"address,omitempty"`
	Media          []MediaRef           `json:"media,omitempty" bson:"media,omitempty"`
	Reporter       *ReporterContact     `json:"reporter,omitempty" bson:"reporter,omitempty"`
	Status         ReportStatus         `json:"status" bson:"status"`
	StatusHistory  []StatusHistoryEntry `json:"statusUpdates" bson:"status_history"`
	AssignedNgo    string               `json:"assignedNgo,omitempty" bson:"assigned_ngo,omitempty"`
	RejectedBy     []string             `json:"rejectedBy,omitempty" bson:"rejected_by,omitempty"`
	IdempotencyKey string               `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updatedAt" bson:"updated_at"`
}

// IsAnimalType and IsIncidentType check report classification enums.
func IsAnimalType(t string) bool   { return slices.Contains(AnimalTypes, t) }
func IsIncidentType(t string) bool { return slices.Contains(IncidentTypes, t) }

// Open reports whether the case is still waiting for an NGO.
func (r *Report) Open() bool {
	return r.Status == StatusPending && r.AssignedNgo == ""
}
