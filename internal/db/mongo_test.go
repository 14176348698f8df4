package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/emredev/auto-service-crm/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestConnectMongo_BadURI(t *testing.T) {
	os.Setenv("MONGO_URI", "mongodb://bad:uri")
	client, err := ConnectMongo()
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestNilCollectionGuards(t *testing.T) {
	ctx := context.Background()

	if err := (&MongoVehicleCollection{}).InsertVehicle(ctx, models.Vehicle{}); err == nil {
		t.Error("expected error when vehicle collection is nil")
	}
	if _, err := (&MongoVehicleCollection{}).FindVehiclesWithMaintenanceDate(ctx); err == nil {
		t.Error("expected error when vehicle collection is nil")
	}
	if err := (&MongoCustomerCollection{}).InsertCustomer(ctx, models.Customer{}); err == nil {
		t.Error("expected error when customer collection is nil")
	}
	if _, err := (&MongoPartCollection{}).FindParts(ctx); err == nil {
		t.Error("expected error when part collection is nil")
	}
	if err := (&MongoNotificationCollection{}).InsertNotification(ctx, models.Notification{}); err == nil {
		t.Error("expected error when notification collection is nil")
	}
	if _, err := (&MongoUserCollection{}).FindActiveUserIDsByRole(ctx, []models.Role{models.RoleAdmin}); err == nil {
		t.Error("expected error when user collection is nil")
	}
}

func TestUpdateMaintenanceStatus_NilCollection(t *testing.T) {
	coll := &MongoVehicleCollection{Collection: nil}
	if err := coll.UpdateMaintenanceStatus(context.Background(), "not-a-hex", models.MaintenanceOK); err == nil {
		t.Error("expected error for nil collection")
	}
}

// Integration test (requires running MongoDB)
func TestVehicleCollection_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" || uri == "uri" {
		t.Skip("MONGO_URI not set or invalid, skipping integration test")
		return
	}
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("failed to ping: %v, skipping integration test", err)
		return
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "garage_test"
	}
	coll := &MongoVehicleCollection{Collection: client.Database(dbName).Collection("vehicles")}
	next := time.Now().AddDate(0, 0, 30)
	vehicle := models.Vehicle{
		Brand:               "Fiat",
		Model:               "Egea",
		LicensePlate:        "06 TEST 99",
		NextMaintenanceDate: &next,
	}
	if err := coll.InsertVehicle(ctx, vehicle); err != nil {
		t.Errorf("expected insert to succeed, got error: %v", err)
	}
	vehicles, err := coll.FindVehiclesWithMaintenanceDate(ctx)
	if err != nil {
		t.Errorf("expected find to succeed, got error: %v", err)
	}
	if len(vehicles) == 0 {
		t.Error("expected at least one vehicle with a maintenance date")
	}
	_ = coll.Collection.Drop(ctx)
}
