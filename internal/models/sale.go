package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale represents a vehicle sale record.
type Sale struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID    string             `bson:"customer_id" json:"customer_id"`
	VehicleID     string             `bson:"vehicle_id" json:"vehicle_id"`
	SaleDate      time.Time          `bson:"sale_date" json:"sale_date"`
	SalePrice     float64            `bson:"sale_price" json:"sale_price"`
	PurchasePrice float64            `bson:"purchase_price" json:"purchase_price"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"` // "cash", "credit_card", "transfer", "installment"
	Status        string             `bson:"status" json:"status"`                 // "pending", "completed", "cancelled"
	Notes         string             `bson:"notes" json:"notes"`
	SoldBy        string             `bson:"sold_by" json:"sold_by"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// Profit returns the margin on the sale.
func (s *Sale) Profit() float64 {
	return s.SalePrice - s.PurchasePrice
}
