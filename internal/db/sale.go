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

// MongoSaleCollection implements SaleCollection for MongoDB.
type MongoSaleCollection struct {
	Collection *mongo.Collection
}

// InsertSale inserts a sale record into the collection.
func (c *MongoSaleCollection) InsertSale(ctx context.Context, sale models.Sale) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	sale.CreatedAt = time.Now()
	sale.UpdatedAt = time.Now()
	if sale.Status == "" {
		sale.Status = "pending"
	}
	_, err := c.Collection.InsertOne(ctx, sale)
	return err
}

// FindSales queries sale records from the collection, newest first.
func (c *MongoSaleCollection) FindSales(ctx context.Context, filter bson.M) ([]models.Sale, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sales []models.Sale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// FindSaleByID finds a sale by its ID.
func (c *MongoSaleCollection) FindSaleByID(ctx context.Context, id string) (*models.Sale, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid sale ID: %w", err)
	}

	var sale models.Sale
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&sale)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("sale not found")
		}
		return nil, err
	}
	return &sale, nil
}

// UpdateSale updates a sale by its ID.
func (c *MongoSaleCollection) UpdateSale(ctx context.Context, id string, sale models.Sale) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid sale ID: %w", err)
	}

	sale.UpdatedAt = time.Now()
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": sale})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("sale not found")
	}
	return nil
}

// DeleteSale deletes a sale by its ID.
func (c *MongoSaleCollection) DeleteSale(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid sale ID: %w", err)
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("sale not found")
	}
	return nil
}
