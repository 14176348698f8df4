package db

import (
	"context"
	"fmt"
	"time"

	"github.com/emredev/auto-service-crm/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoVehicleCollection implements VehicleCollection for MongoDB.
type MongoVehicleCollection struct {
	Collection *mongo.Collection
}

// InsertVehicle inserts a vehicle record into the collection.
func (c *MongoVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()
	if vehicle.MaintenanceStatus == "" {
		vehicle.MaintenanceStatus = models.MaintenanceOK
	}
	_, err := c.Collection.InsertOne(ctx, vehicle)
	return err
}

// FindVehicles queries vehicle records from the collection, newest first.
func (c *MongoVehicleCollection) FindVehicles(ctx context.Context, filter bson.M) ([]models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindVehicleByID finds a vehicle by its ID.
func (c *MongoVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID: %w", err)
	}

	var vehicle models.Vehicle
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vehicle not found")
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindVehiclesByCustomer returns the vehicles owned by a customer.
func (c *MongoVehicleCollection) FindVehiclesByCustomer(ctx context.Context, customerID string) ([]models.Vehicle, error) {
	return c.FindVehicles(ctx, bson.M{"customer_id": customerID})
}

// FindVehiclesWithMaintenanceDate returns every vehicle that has a
// next maintenance date set. Vehicles without one are not part of the
// daily maintenance scan.
func (c *MongoVehicleCollection) FindVehiclesWithMaintenanceDate(ctx context.Context) ([]models.Vehicle, error) {
	filter := bson.M{"next_maintenance_date": bson.M{"$exists": true, "$ne": nil}}
	return c.FindVehicles(ctx, filter)
}

// FindMaintenanceDue returns vehicles whose next maintenance date is on
// or before the given day.
func (c *MongoVehicleCollection) FindMaintenanceDue(ctx context.Context, today time.Time) ([]models.Vehicle, error) {
	filter := bson.M{"next_maintenance_date": bson.M{"$lte": today}}
	return c.FindVehicles(ctx, filter)
}

// UpdateVehicle updates a vehicle by its ID.
func (c *MongoVehicleCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}

	vehicle.UpdatedAt = time.Now()
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": vehicle})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle not found")
	}
	return nil
}

// UpdateMaintenanceStatus sets only the maintenance status field.
// Writing the same status again is a no-op in effect.
func (c *MongoVehicleCollection) UpdateMaintenanceStatus(ctx context.Context, id string, status models.MaintenanceStatus) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}

	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"maintenance_status": status, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle not found")
	}
	return nil
}

// DeleteVehicle deletes a vehicle by its ID.
func (c *MongoVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("vehicle not found")
	}
	return nil
}
