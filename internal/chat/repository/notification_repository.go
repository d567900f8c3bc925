package repository

import (
	"context"

	"workforce_chat_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository definition notification persistence
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	// FindByTarget lists notifications addressed to userID, newest first.
	FindByTarget(ctx context.Context, userID string) ([]domain.Notification, error)
	// MarkRead records that userID read the notification. Idempotent;
	// domain.ErrNotFound when the notification does not exist or does not
	// target userID.
	MarkRead(ctx context.Context, notificationID, userID string) error
}

type notificationRepository struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepository create a NotificationRepository over the
// notifications collection.
func NewMongoNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{
		coll: db.Collection("notifications"),
	}
}

func (r *notificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	_, err := r.coll.InsertOne(ctx, n)
	return err
}

func (r *notificationRepository) FindByTarget(ctx context.Context, userID string) ([]domain.Notification, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.coll.Find(ctx, bson.M{"target_users": userID}, opts)
	if err != nil {
		return nil, err
	}
	var notifications []domain.Notification
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, notificationID, userID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": notificationID, "target_users": userID},
		bson.M{"$addToSet": bson.M{"read_by": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
