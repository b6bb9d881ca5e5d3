package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Learnspoint11/moryastationery/internal/models"
)

type mongoOrderRepo struct {
	col *mongo.Collection
}

// NewMongoOrderRepo builds an OrderRepository over the given collection.
func NewMongoOrderRepo(db *mongo.Database, collection string) OrderRepository {
	col := db.Collection(collection)
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return &mongoOrderRepo{col: col}
}

func (r *mongoOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, o)
	return err
}

// FindByUser returns the user's orders, most recent first.
func (r *mongoOrderRepo) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	cursor, err := r.col.Find(ctx, bson.M{"user_id": objID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *mongoOrderRepo) FindByID(ctx context.Context, id string) (*models.Order, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var o models.Order
	err = r.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
