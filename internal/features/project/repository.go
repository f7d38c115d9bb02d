package project

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

type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Project, error)
	List(ctx context.Context, filter bson.M) ([]Project, error)
	Replace(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context, filter bson.M) (int64, error)
}

type projectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *database.MongodbDB) ProjectRepository {
	return &projectRepository{coll: db.DB.Collection("projects")}
}

func (r *projectRepository) Create(ctx context.Context, p *Project) error {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *projectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Project, error) {
	var p Project
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("project %s not found", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) List(ctx context.Context, filter bson.M) ([]Project, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	projects := make([]Project, 0)
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) Replace(ctx context.Context, p *Project) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFoundf("project %s not found", p.ID.Hex())
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFoundf("project %s not found", id.Hex())
	}
	return nil
}

func (r *projectRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.coll.CountDocuments(ctx, filter)
}
