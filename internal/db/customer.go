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

// MongoCustomerCollection implements CustomerCollection for MongoDB.
type MongoCustomerCollection struct {
	Collection *mongo.Collection
}

// InsertCustomer inserts a customer record into the collection.
func (c *MongoCustomerCollection) InsertCustomer(ctx context.Context, customer models.Customer) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, customer)
	return err
}

// FindCustomers returns a page of customers matching the filter, newest
// first, along with the total match count.
func (c *MongoCustomerCollection) FindCustomers(ctx context.Context, filter bson.M, page, limit int64) ([]models.Customer, int64, error) {
	if c.Collection == nil {
		return nil, 0, fmt.Errorf("mongo collection is nil")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := c.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// FindCustomersWithVehicles joins each customer with their vehicles.
func (c *MongoCustomerCollection) FindCustomersWithVehicles(ctx context.Context, filter bson.M) ([]models.CustomerWithVehicles, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$addFields", Value: bson.M{"id_hex": bson.M{"$toString": "$_id"}}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "vehicles",
			"localField":   "id_hex",
			"foreignField": "customer_id",
			"as":           "vehicles",
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	}

	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.CustomerWithVehicles
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// FindCustomerByID finds a customer by its ID.
func (c *MongoCustomerCollection) FindCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID: %w", err)
	}

	var customer models.Customer
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&customer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("customer not found")
		}
		return nil, err
	}
	return &customer, nil
}

// SearchCustomers does a case-insensitive search across name, email and
// phone, constrained by the extra filter (ownership scoping).
func (c *MongoCustomerCollection) SearchCustomers(ctx context.Context, query string, filter bson.M) ([]models.Customer, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	regex := primitive.Regex{Pattern: query, Options: "i"}
	search := bson.M{"$or": []bson.M{
		{"first_name": regex},
		{"last_name": regex},
		{"email": regex},
		{"phone": regex},
	}}
	combined := bson.M{"$and": []bson.M{search, filter}}
	if len(filter) == 0 {
		combined = search
	}

	cursor, err := c.Collection.Find(ctx, combined)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// UpdateCustomer updates a customer by its ID.
func (c *MongoCustomerCollection) UpdateCustomer(ctx context.Context, id string, customer models.Customer) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid customer ID: %w", err)
	}

	customer.UpdatedAt = time.Now()
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": customer})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("customer not found")
	}
	return nil
}

// DeleteCustomer deletes a customer by its ID.
func (c *MongoCustomerCollection) DeleteCustomer(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid customer ID: %w", err)
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("customer not found")
	}
	return nil
}

// DeleteCustomers deletes several customers at once and returns how many
// were removed.
func (c *MongoCustomerCollection) DeleteCustomers(ctx context.Context, ids []string) (int64, error) {
	if c.Collection == nil {
		return 0, fmt.Errorf("mongo collection is nil")
	}

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return 0, fmt.Errorf("invalid customer ID %q: %w", id, err)
		}
		objectIDs = append(objectIDs, objectID)
	}

	result, err := c.Collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
