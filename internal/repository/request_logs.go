package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/badge-service/internal/domain/model"
)

// maxQueryLimit caps the number of request logs returned by one query.
const maxQueryLimit = 1000

// RequestLogRepository stores served requests in MongoDB.
type RequestLogRepository struct {
	collection *mongo.Collection
}

// NewRequestLogRepository creates a new request log repository.
func NewRequestLogRepository(db *MongoDB) *RequestLogRepository {
	return &RequestLogRepository{
		collection: db.RequestLogs,
	}
}

// Create inserts one request log.
func (r *RequestLogRepository) Create(ctx context.Context, entry *model.RequestLog) error {
	prepare(entry)
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts request logs in bulk. Insertion is unordered, so one
// bad document does not stop the rest.
func (r *RequestLogRepository) CreateMany(ctx context.Context, entries []*model.RequestLog) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		prepare(entry)
		docs[i] = entry
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns request logs matching q, newest first.
func (r *RequestLogRepository) Query(ctx context.Context, q model.RequestLogQuery) ([]*model.RequestLog, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	findOptions.SetLimit(int64(queryLimit(q.Limit)))
	if q.Skip > 0 {
		findOptions.SetSkip(int64(q.Skip))
	}

	cursor, err := r.collection.Find(ctx, buildFilter(q), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	entries := make([]*model.RequestLog, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of request logs matching q. Limit and Skip are ignored.
func (r *RequestLogRepository) Count(ctx context.Context, q model.RequestLogQuery) (int64, error) {
	return r.collection.CountDocuments(ctx, buildFilter(q))
}

func prepare(entry *model.RequestLog) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
}

func buildFilter(q model.RequestLogQuery) bson.M {
	filter := bson.M{}

	if q.RequestID != "" {
		filter["request_id"] = q.RequestID
	}
	if q.Package != "" {
		filter["package"] = q.Package
	}
	if q.Level != "" {
		filter["level"] = q.Level
	}
	if q.Cache != "" {
		filter["cache"] = q.Cache
	}
	if q.StartTime != nil || q.EndTime != nil {
		timeFilter := bson.M{}
		if q.StartTime != nil {
			timeFilter["$gte"] = *q.StartTime
		}
		if q.EndTime != nil {
			timeFilter["$lte"] = *q.EndTime
		}
		filter["timestamp"] = timeFilter
	}

	return filter
}

func queryLimit(limit int) int {
	if limit <= 0 || limit > maxQueryLimit {
		return maxQueryLimit
	}
	return limit
}
