package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceStatus is the persisted maintenance bucket for a vehicle.
// It is written only by the daily maintenance check.
type MaintenanceStatus string

const (
	MaintenanceOK       MaintenanceStatus = "ok"
	MaintenanceWarning  MaintenanceStatus = "warning"
	MaintenanceCritical MaintenanceStatus = "critical"
)

// IsValidMaintenanceStatus checks if a maintenance status is valid.
func IsValidMaintenanceStatus(status MaintenanceStatus) bool {
	switch status {
	case MaintenanceOK, MaintenanceWarning, MaintenanceCritical:
		return true
	default:
		return false
	}
}

// Vehicle represents a customer vehicle.
type Vehicle struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID              string             `bson:"customer_id" json:"customer_id"`
	Brand                   string             `bson:"brand" json:"brand"`
	Model                   string             `bson:"model" json:"model"`
	Year                    int                `bson:"year" json:"year"`
	LicensePlate            string             `bson:"license_plate" json:"license_plate"`
	VIN                     string             `bson:"vin" json:"vin"`
	Color                   string             `bson:"color" json:"color"`
	FuelType                string             `bson:"fuel_type" json:"fuel_type"` // "gasoline", "diesel", "lpg", "electric", "hybrid"
	Transmission            string             `bson:"transmission" json:"transmission"`
	Mileage                 int                `bson:"mileage" json:"mileage"` // in kilometers
	LastMaintenanceDate     *time.Time         `bson:"last_maintenance_date,omitempty" json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate     *time.Time         `bson:"next_maintenance_date,omitempty" json:"next_maintenance_date,omitempty"`
	MaintenanceIntervalDays int                `bson:"maintenance_interval_days" json:"maintenance_interval_days"`
	MaintenanceStatus       MaintenanceStatus  `bson:"maintenance_status" json:"maintenance_status"`
	Notes                   string             `bson:"notes" json:"notes"`
	CreatedBy               string             `bson:"created_by" json:"created_by"`
	CreatedAt               time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt               time.Time          `bson:"updated_at" json:"updated_at"`
}

// Info returns the short vehicle description used in notifications and SMS.
func (v *Vehicle) Info() string {
	return v.Brand + " " + v.Model + " (" + v.LicensePlate + ")"
}
