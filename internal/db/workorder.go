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

// MongoWorkOrderCollection implements WorkOrderCollection for MongoDB.
// Parts live embedded in the order document, so an update replaces the
// whole parts array.
type MongoWorkOrderCollection struct {
	Collection *mongo.Collection
}

// InsertWorkOrder inserts a work order with its parts.
func (c *MongoWorkOrderCollection) InsertWorkOrder(ctx context.Context, order models.WorkOrder) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	if order.Status == "" {
		order.Status = "pending"
	}
	_, err := c.Collection.InsertOne(ctx, order)
	return err
}

// FindWorkOrders queries work orders, newest first.
func (c *MongoWorkOrderCollection) FindWorkOrders(ctx context.Context, filter bson.M) ([]models.WorkOrder, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.WorkOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindWorkOrderByID finds a work order by its ID.
func (c *MongoWorkOrderCollection) FindWorkOrderByID(ctx context.Context, id string) (*models.WorkOrder, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid work order ID: %w", err)
	}

	var order models.WorkOrder
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("work order not found")
		}
		return nil, err
	}
	return &order, nil
}

// UpdateWorkOrder updates a work order by its ID.
func (c *MongoWorkOrderCollection) UpdateWorkOrder(ctx context.Context, id string, order models.WorkOrder) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid work order ID: %w", err)
	}

	order.UpdatedAt = time.Now()
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": order})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("work order not found")
	}
	return nil
}

// DeleteWorkOrder deletes a work order by its ID.
func (c *MongoWorkOrderCollection) DeleteWorkOrder(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid work order ID: %w", err)
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("work order not found")
	}
	return nil
}
