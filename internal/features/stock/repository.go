package stock

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

type StockRepository interface {
	Create(ctx context.Context, item *StockItem) error
	FindByID(ctx context.Context, id string) (*StockItem, error)
	List(ctx context.Context) ([]StockItem, error)
	// ListByStatus returns items whose derived status is one of the given.
	ListByStatus(ctx context.Context, statuses ...StockStatus) ([]StockItem, error)
	Update(ctx context.Context, item *StockItem) error
	Delete(ctx context.Context, id string) error
}

type StockRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewStockRepository(mongodb *database.MongodbDB) StockRepository {
	return &StockRepositoryImpl{
		Collection: mongodb.DB.Collection("stock_items"),
	}
}

func (r *StockRepositoryImpl) Create(ctx context.Context, item *StockItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, item)
	return err
}

func (r *StockRepositoryImpl) FindByID(ctx context.Context, id string) (*StockItem, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFoundf("stock item %s", id)
	}

	var item StockItem
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("stock item %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *StockRepositoryImpl) List(ctx context.Context) ([]StockItem, error) {
	return r.find(ctx, bson.M{})
}

func (r *StockRepositoryImpl) ListByStatus(ctx context.Context, statuses ...StockStatus) ([]StockItem, error) {
	return r.find(ctx, bson.M{"status": bson.M{"$in": statuses}})
}

func (r *StockRepositoryImpl) find(ctx context.Context, filter bson.M) ([]StockItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []StockItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *StockRepositoryImpl) Update(ctx context.Context, item *StockItem) error {
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	return err
}

func (r *StockRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NotFoundf("stock item %s", id)
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
