package message

import (
	"context"
	"errors"

	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepository interface {
	Append(ctx context.Context, msg *Message) error
	// BetweenUsers returns the full exchange between two users in chat
	// order (ascending createdAt).
	BetweenUsers(ctx context.Context, a, b string) ([]Message, error)
	// InvolvingUser returns every message sent or received by the user in
	// ascending createdAt order.
	InvolvingUser(ctx context.Context, userID string) ([]Message, error)
	FindByID(ctx context.Context, id string) (*Message, error)
	MarkRead(ctx context.Context, id string) error
	CountUnread(ctx context.Context, receiverID, senderID string) (int64, error)
}

type MessageRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewMessageRepository(mongodb *database.MongodbDB) MessageRepository {
	return &MessageRepositoryImpl{
		Collection: mongodb.DB.Collection("messages"),
	}
}

func (r *MessageRepositoryImpl) Append(ctx context.Context, msg *Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, msg)
	return err
}

func (r *MessageRepositoryImpl) BetweenUsers(ctx context.Context, a, b string) ([]Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"sender_id": a, "receiver_id": b},
		{"sender_id": b, "receiver_id": a},
	}}
	return r.find(ctx, filter)
}

func (r *MessageRepositoryImpl) InvolvingUser(ctx context.Context, userID string) ([]Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"sender_id": userID},
		{"receiver_id": userID},
	}}
	return r.find(ctx, filter)
}

func (r *MessageRepositoryImpl) find(ctx context.Context, filter bson.M) ([]Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MessageRepositoryImpl) FindByID(ctx context.Context, id string) (*Message, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFoundf("message %s", id)
	}

	var msg Message
	if err := r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&msg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundf("message %s", id)
		}
		return nil, err
	}
	return &msg, nil
}

func (r *MessageRepositoryImpl) MarkRead(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NotFoundf("message %s", id)
	}

	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFoundf("message %s", id)
	}
	return nil
}

func (r *MessageRepositoryImpl) CountUnread(ctx context.Context, receiverID, senderID string) (int64, error) {
	filter := bson.M{"receiver_id": receiverID, "read": false}
	if senderID != "" {
		filter["sender_id"] = senderID
	}

	count, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, err
	}
	return count, nil
}
