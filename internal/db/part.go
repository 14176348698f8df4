package db

import (
	"context"
	"fmt"
	"time"

	"github.com/emredev/auto-service-crm/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPartCollection implements PartCollection for MongoDB.
type MongoPartCollection struct {
	Collection *mongo.Collection
}

// InsertPart inserts a part record into the collection.
func (c *MongoPartCollection) InsertPart(ctx context.Context, part models.Part) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	part.CreatedAt = time.Now()
	part.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, part)
	return err
}

// FindParts returns every part record.
func (c *MongoPartCollection) FindParts(ctx context.Context) ([]models.Part, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var parts []models.Part
	if err := cursor.All(ctx, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// FindPartByID finds a part by its ID.
func (c *MongoPartCollection) FindPartByID(ctx context.Context, id string) (*models.Part, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid part ID: %w", err)
	}

	var part models.Part
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&part)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("part not found")
		}
		return nil, err
	}
	return &part, nil
}

// UpdatePart updates a part by its ID.
func (c *MongoPartCollection) UpdatePart(ctx context.Context, id string, part models.Part) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid part ID: %w", err)
	}

	part.UpdatedAt = time.Now()
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": part})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("part not found")
	}
	return nil
}

// DeletePart deletes a part by its ID.
func (c *MongoPartCollection) DeletePart(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid part ID: %w", err)
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("part not found")
	}
	return nil
}
