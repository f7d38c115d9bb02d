package notification

import (
	"context"

	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository interface {
	Insert(ctx context.Context, n *Notification) error
	// List returns notifications most-recent-first.
	List(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}

type NotificationRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewNotificationRepository(mongodb *database.MongodbDB) NotificationRepository {
	return &NotificationRepositoryImpl{
		Collection: mongodb.DB.Collection("notifications"),
	}
}

func (r *NotificationRepositoryImpl) Insert(ctx context.Context, n *Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, n)
	return err
}

func (r *NotificationRepositoryImpl) List(ctx context.Context) ([]Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NotFoundf("notification %s", id)
	}

	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFoundf("notification %s", id)
	}
	return nil
}

func (r *NotificationRepositoryImpl) CountUnread(ctx context.Context) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"read": false})
}

func (r *NotificationRepositoryImpl) Clear(ctx context.Context) error {
	_, err := r.Collection.DeleteMany(ctx, bson.M{})
	return err
}
