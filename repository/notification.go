package repository

import (
	"context"
	"fmt"
	"time"

	"realtime-service/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository persists collaborator notifications so clients can
// poll what they missed while offline. Live delivery is the broadcaster's job.
type NotificationRepository interface {
	Insert(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListByReceiver(ctx context.Context, receiverID string, limit int64) ([]model.Notification, error)
	MarkSeen(ctx context.Context, receiverID string) error
}

type notificationRepo struct {
	notifications *mongo.Collection
}

func NewNotificationRepository(notifications *mongo.Collection) NotificationRepository {
	return &notificationRepo{notifications: notifications}
}

func (r *notificationRepo) Insert(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if n.Type == "" {
		n.Type = model.NotificationTypeGeneral
	}
	n.CreatedAt = time.Now().UTC()

	res, err := r.notifications.InsertOne(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return n, nil
}

func (r *notificationRepo) ListByReceiver(ctx context.Context, receiverID string, limit int64) ([]model.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.notifications.Find(ctx, bson.M{"receiver_id": receiverID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cur.Close(ctx)

	var out []model.Notification
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return out, nil
}

func (r *notificationRepo) MarkSeen(ctx context.Context, receiverID string) error {
	_, err := r.notifications.UpdateMany(ctx,
		bson.M{"receiver_id": receiverID, "seen": false},
		bson.M{"$set": bson.M{"seen": true}},
	)
	if err != nil {
		return fmt.Errorf("mark seen: %w", err)
	}
	return nil
}
