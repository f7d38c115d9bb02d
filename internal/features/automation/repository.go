package automation

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

type RuleRepository interface {
	Create(ctx context.Context, rule *Rule) error
	FindByID(ctx context.Context, id string) (*Rule, error)
	List(ctx context.Context) ([]Rule, error)
	// ActiveForEvent returns the active rules subscribed to the event.
	ActiveForEvent(ctx context.Context, event string) ([]Rule, error)
	Update(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id string) error
}

type RuleRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewRuleRepository(mongodb *database.MongodbDB) RuleRepository {
	return &RuleRepositoryImpl{
		Collection: mongodb.DB.Collection("automation_rules"),
	}
}

func (r *RuleRepositoryImpl) Create(ctx context.Context, rule *Rule) error {
	if rule.ID.IsZero() {
		rule.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, rule)
	return err
}

func (r *RuleRepositoryImpl) FindByID(ctx context.Context, id string) (*Rule, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFoundf("rule %s", id)
	}

	var rule Rule
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&rule)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("rule %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *RuleRepositoryImpl) List(ctx context.Context) ([]Rule, error) {
	return r.find(ctx, bson.M{})
}

func (r *RuleRepositoryImpl) ActiveForEvent(ctx context.Context, event string) ([]Rule, error) {
	return r.find(ctx, bson.M{"event": event, "active": true})
}

func (r *RuleRepositoryImpl) find(ctx context.Context, filter bson.M) ([]Rule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []Rule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *RuleRepositoryImpl) Update(ctx context.Context, rule *Rule) error {
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": rule.ID}, rule)
	return err
}

func (r *RuleRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NotFoundf("rule %s", id)
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
