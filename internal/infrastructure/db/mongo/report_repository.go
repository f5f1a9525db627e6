package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

const collectionReports = "reports"

type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(collectionReports)}
}

// hydrate fills the API location from the stored GeoJSON point.
func hydrate(r *domain.Report) *domain.Report {
	if loc, ok := r.Point.Location(); ok {
		r.Location = loc
	}
	return r
}

// reportFilter translates a listing filter into a query document.
func reportFilter(f ports.ReportFilter) bson.M {
	filter := bson.M{}
	if len(f.Statuses) > 0 {
		filter["status"] = bson.M{"$in": f.Statuses}
	}
	if f.AssignedNgo != "" {
		if f.IncludeOpen {
			filter["$or"] = bson.A{
				bson.M{"assigned_ngo": f.AssignedNgo},
				bson.M{"status": domain.StatusPending, "assigned_ngo": unassigned()},
			}
		} else {
			filter["assigned_ngo"] = f.AssignedNgo
		}
	}
	return filter
}

// statusUpdateQuery builds the guarded filter and update for a transition.
func statusUpdateQuery(u ports.StatusUpdate) (bson.M, bson.M) {
	filter := bson.M{"code": u.Code, "status": bson.M{"$in": u.From}}
	set := bson.M{"status": u.To, "updated_at": u.Entry.Timestamp}

	if u.AssignTo != "" {
		filter["assigned_ngo"] = unassigned()
		set["assigned_ngo"] = u.AssignTo
	}
	if u.RequireAssignee != "" {
		filter["assigned_ngo"] = u.RequireAssignee
	}

	update := bson.M{
		"$set":  set,
		"$push": bson.M{"status_history": u.Entry},
	}
	return filter, update
}

// Create inserts a new report document.
func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	report.Point = report.Location.GeoPoint()
	if _, err := r.col.InsertOne(ctx, report); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateReportError(err)
		}
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// duplicateReportError tells the two unique indexes on reports apart by the
// index name in the server message.
func duplicateReportError(err error) error {
	if strings.Contains(err.Error(), "idempotency_key") {
		return domain.ErrDuplicateIdempotencyKey
	}
	return domain.ErrDuplicateReportCode
}

func (r *ReportRepository) findOne(ctx context.Context, filter bson.M) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var report domain.Report
	if err := r.col.FindOne(ctx, filter).Decode(&report); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return hydrate(&report), nil
}

func (r *ReportRepository) FindByCode(ctx context.Context, code string) (*domain.Report, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

// FindByIdempotencyKey retrieves an existing report that was created with the given key.
func (r *ReportRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Report, error) {
	return r.findOne(ctx, bson.M{"idempotency_key": key})
}

// List returns matching reports, newest first.
func (r *ReportRepository) List(ctx context.Context, f ports.ReportFilter) ([]*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, reportFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	var reports []*domain.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	for _, report := range reports {
		hydrate(report)
	}
	if reports == nil {
		reports = make([]*domain.Report, 0)
	}
	return reports, nil
}

// UpdateStatus sets the status and appends the history entry in one guarded
// write. When nothing matched it tells a missing report from a failed guard.
func (r *ReportRepository) UpdateStatus(ctx context.Context, u ports.StatusUpdate) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, update := statusUpdateQuery(u)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var report domain.Report
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&report)
	if err == nil {
		return hydrate(&report), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update report status: %w", err)
	}
	return nil, r.missOrConflict(ctx, u.Code)
}

// AddRejection records an NGO declining a report that is still open.
func (r *ReportRepository) AddRejection(ctx context.Context, code, ngoID string) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"code": code, "status": domain.StatusPending, "assigned_ngo": unassigned()}
	update := bson.M{
		"$addToSet": bson.M{"rejected_by": ngoID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var report domain.Report
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&report)
	if err == nil {
		return hydrate(&report), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("add rejection: %w", err)
	}
	return nil, r.missOrConflict(ctx, code)
}

func (r *ReportRepository) missOrConflict(ctx context.Context, code string) error {
	n, err := r.col.CountDocuments(ctx, bson.M{"code": code})
	if err != nil {
		return fmt.Errorf("count report: %w", err)
	}
	if n == 0 {
		return domain.ErrReportNotFound
	}
	return domain.ErrInvalidTransition
}

type statusCount struct {
	Status domain.ReportStatus `bson:"_id"`
	Count  int64               `bson:"count"`
}

// CountByStatus groups matching reports by status.
func (r *ReportRepository) CountByStatus(ctx context.Context, f ports.ReportFilter) (map[domain.ReportStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: reportFilter(f)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	var rows []statusCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	out := make(map[domain.ReportStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the reports collection.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "idempotency_key", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "assigned_ngo", Value: 1}}},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
