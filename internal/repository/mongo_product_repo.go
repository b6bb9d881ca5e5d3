package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Learnspoint11/moryastationery/internal/models"
)

type mongoProductRepo struct {
	col *mongo.Collection
}

// NewMongoProductRepo builds a ProductRepository over the given collection.
func NewMongoProductRepo(db *mongo.Database, collection string) ProductRepository {
	return &mongoProductRepo{col: db.Collection(collection)}
}

func (r *mongoProductRepo) FindAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepo) Create(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, p)
	return err
}
