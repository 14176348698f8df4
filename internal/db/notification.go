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

// MongoNotificationCollection implements NotificationCollection for MongoDB.
type MongoNotificationCollection struct {
	Collection *mongo.Collection
}

// InsertNotification inserts an in-app notification record.
func (c *MongoNotificationCollection) InsertNotification(ctx context.Context, notification models.Notification) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	notification.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, notification)
	return err
}

func (c *MongoNotificationCollection) findByUser(ctx context.Context, filter bson.M) ([]models.Notification, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// FindNotificationsByUser returns a user's notifications, newest first.
func (c *MongoNotificationCollection) FindNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return c.findByUser(ctx, bson.M{"user_id": userID})
}

// FindUnreadByUser returns a user's unread notifications, newest first.
func (c *MongoNotificationCollection) FindUnreadByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return c.findByUser(ctx, bson.M{"user_id": userID, "is_read": false})
}

// MarkRead marks one notification as read. The user filter prevents
// marking someone else's notification.
func (c *MongoNotificationCollection) MarkRead(ctx context.Context, id, userID string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID: %w", err)
	}

	result, err := c.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

// MarkAllRead marks every unread notification of a user as read.
func (c *MongoNotificationCollection) MarkAllRead(ctx context.Context, userID string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	_, err := c.Collection.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}})
	return err
}

// DeleteNotification deletes one notification owned by the user.
func (c *MongoNotificationCollection) DeleteNotification(ctx context.Context, id, userID string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID: %w", err)
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}
