package domain

import "time"

// ReportEventType names what happened to a report.
type ReportEventType string

const (
	EventSubmitted     ReportEventType = "submitted"
	EventAccepted      ReportEventType = "accepted"
	EventRejected      ReportEventType = "rejected"
	EventStatusChanged ReportEventType = "status_changed"
	EventSuspended     ReportEventType = "suspended"
)

// ReportEvent is an entry of the report audit trail.
type ReportEvent struct {
	ReportCode string
	Type       ReportEventType
	Status     ReportStatus
	Actor      string // account id, empty for anonymous reporters
	Note       string
	Timestamp  time.Time
}
