package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/repositories/interfaces"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
)

// carRepository reads from the two upstream car collections. Every result
// carries its Source so callers can build the prefixed public ids.
type carRepository struct {
	serviceCars *mongo.Collection
	rentCars    *mongo.Collection
	cache       CacheService
}

func NewCarRepository(db *mongo.Database, cache CacheService) interfaces.CarRepository {
	return &carRepository{
		serviceCars: db.Collection("organization_cars"),
		rentCars:    db.Collection("rent_cars"),
		cache:       cache,
	}
}

func (r *carRepository) GetByPlate(ctx context.Context, plateNumber string) (*models.Car, error) {
	plateNumber = strings.ToUpper(plateNumber)

	cacheKey := utils.CacheCarPrefix + plateNumber
	if r.cache != nil {
		var car models.Car
		if err := r.cache.Get(ctx, cacheKey, &car); err == nil && car.Source != "" {
			return &car, nil
		}
	}

	car, err := r.findByPlate(ctx, r.serviceCars, plateNumber, models.CarSourceService)
	if err == mongo.ErrNoDocuments {
		car, err = r.findByPlate(ctx, r.rentCars, plateNumber, models.CarSourceRent)
	}
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("car not found with plate number %s", plateNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get car by plate number: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, car, 10*time.Minute)
	}
	return car, nil
}

func (r *carRepository) findByPlate(ctx context.Context, coll *mongo.Collection, plateNumber string, source models.CarSource) (*models.Car, error) {
	var car models.Car
	err := coll.FindOne(ctx, bson.M{"plate_number": plateNumber}).Decode(&car)
	if err != nil {
		return nil, err
	}
	car.Source = source
	return &car, nil
}

func (r *carRepository) ListServiceBuses(ctx context.Context) ([]*models.Car, error) {
	return r.listCars(ctx, r.serviceCars, models.CarSourceService)
}

func (r *carRepository) ListRentBusMinibus(ctx context.Context) ([]*models.Car, error) {
	return r.listCars(ctx, r.rentCars, models.CarSourceRent)
}

func (r *carRepository) listCars(ctx context.Context, coll *mongo.Collection, source models.CarSource) ([]*models.Car, error) {
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "plate_number", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s cars: %w", source, err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	for cursor.Next(ctx) {
		var car models.Car
		if err := cursor.Decode(&car); err != nil {
			return nil, fmt.Errorf("failed to decode %s car: %w", source, err)
		}
		car.Source = source
		cars = append(cars, &car)
	}
	return cars, nil
}

func (r *carRepository) UpdateStatusByPlate(ctx context.Context, plateNumber string, status models.CarStatus) error {
	plateNumber = strings.ToUpper(plateNumber)
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}

	result, err := r.serviceCars.UpdateOne(ctx, bson.M{"plate_number": plateNumber}, update)
	if err != nil {
		return fmt.Errorf("failed to update car status: %w", err)
	}
	if result.MatchedCount == 0 {
		result, err = r.rentCars.UpdateOne(ctx, bson.M{"plate_number": plateNumber}, update)
		if err != nil {
			return fmt.Errorf("failed to update rent car status: %w", err)
		}
		if result.MatchedCount == 0 {
			return fmt.Errorf("car not found with plate number %s", plateNumber)
		}
	}

	r.invalidatePlate(ctx, plateNumber)
	return nil
}

func (r *carRepository) UpdateInspectionStatus(ctx context.Context, source models.CarSource, plateNumber string, result models.InspectionStatus, serviceStatus models.ServiceStatus, inspectionID primitive.ObjectID) error {
	plateNumber = strings.ToUpper(plateNumber)

	coll := r.serviceCars
	if source == models.CarSourceRent {
		coll = r.rentCars
	}

	status := models.CarStatusAvailable
	if serviceStatus == models.ServiceStatusNotReady {
		status = models.CarStatusNotReady
	}

	update := bson.M{"$set": bson.M{
		"inspected":            true,
		"inspection_result":    result,
		"latest_inspection_id": inspectionID,
		"status":               status,
		"updated_at":           time.Now(),
	}}

	res, err := coll.UpdateOne(ctx, bson.M{"plate_number": plateNumber}, update)
	if err != nil {
		return fmt.Errorf("failed to update inspection status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("car not found with plate number %s", plateNumber)
	}

	r.invalidatePlate(ctx, plateNumber)
	return nil
}

func (r *carRepository) invalidatePlate(ctx context.Context, plateNumber string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheCarPrefix+plateNumber)
	}
}
