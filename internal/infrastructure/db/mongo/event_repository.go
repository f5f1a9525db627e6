package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
)

const collectionReportEvents = "report_events"

// EventRepository persists the report audit trail.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionReportEvents)}
}

// Insert persists a lifecycle event to the report_events audit collection.
func (r *EventRepository) Insert(ctx context.Context, event *domain.ReportEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"report_code":  event.ReportCode,
		"type":         string(event.Type),
		"status":       string(event.Status),
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.Actor != "" {
		doc["actor"] = event.Actor
	}
	if event.Note != "" {
		doc["note"] = event.Note
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
