package mongodb

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/repositories/interfaces"
)

type routeRepository struct {
	collection *mongo.Collection
}

func NewRouteRepository(db *mongo.Database) interfaces.RouteRepository {
	return &routeRepository{
		collection: db.Collection("routes"),
	}
}

func (r *routeRepository) ListBySource(ctx context.Context, source models.CarSource) ([]*models.Route, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"source": source})
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	defer cursor.Close(ctx)

	var routes []*models.Route
	for cursor.Next(ctx) {
		var route models.Route
		if err := cursor.Decode(&route); err != nil {
			return nil, fmt.Errorf("failed to decode route: %w", err)
		}
		routes = append(routes, &route)
	}
	return routes, nil
}

func (r *routeRepository) GetByPlate(ctx context.Context, plateNumber string) (*models.Route, error) {
	var route models.Route
	err := r.collection.FindOne(ctx, bson.M{"plate_number": strings.ToUpper(plateNumber)}).Decode(&route)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("route not found for plate number %s", plateNumber)
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	return &route, nil
}
