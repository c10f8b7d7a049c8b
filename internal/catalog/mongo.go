package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("services")}
}

func (m *mongoRepository) ListServices(ctx context.Context) ([]domain.CatalogService, error) {
	opts := options.Find().SetSort(bson.D{{Key: "platform", Value: 1}, {Key: "title", Value: 1}})
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []domain.CatalogService
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (m *mongoRepository) GetService(ctx context.Context, id string) (*domain.CatalogService, error) {
	var service domain.CatalogService

	filter := bson.M{"_id": id}
	err := m.collection.FindOne(ctx, filter).Decode(&service)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}
