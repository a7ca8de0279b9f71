package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

const activityCollection = "activity_events"

// ActivityRepository implements ports.ActivityRepository using a dedicated
// MongoDB collection. Preferred over the capped KV list when Mongo is the
// active backend.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type activityDoc struct {
	UserID    string    `bson:"user_id"`
	TaskID    string    `bson:"task_id"`
	Action    string    `bson:"action"`
	Title     string    `bson:"title"`
	Timestamp time.Time `bson:"timestamp"`
}

func (r *ActivityRepository) Insert(ctx context.Context, event domain.ActivityEvent) error {
	doc := activityDoc{
		UserID:    event.UserID,
		TaskID:    event.TaskID,
		Action:    string(event.Action),
		Title:     event.Title,
		Timestamp: event.Timestamp.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) Recent(ctx context.Context, userID string, limit int) ([]domain.ActivityEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	defer cursor.Close(ctx)

	var events []domain.ActivityEvent
	for cursor.Next(ctx) {
		var doc activityDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		events = append(events, domain.ActivityEvent{
			UserID:    doc.UserID,
			TaskID:    doc.TaskID,
			Action:    domain.ActivityAction(doc.Action),
			Title:     doc.Title,
			Timestamp: doc.Timestamp,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return events, nil
}
