package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer represents a shop customer.
type Customer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"first_name" json:"first_name"`
	LastName  string             `bson:"last_name" json:"last_name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Address   string             `bson:"address" json:"address"`
	City      string             `bson:"city" json:"city"`
	Notes     string             `bson:"notes" json:"notes"`
	CreatedBy string             `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// CustomerWithVehicles is the customer list shape used by the combined
// customers/vehicles page.
type CustomerWithVehicles struct {
	Customer `bson:",inline"`
	Vehicles []Vehicle `bson:"vehicles" json:"vehicles"`
}

// CustomerPage is a paginated customer listing.
type CustomerPage struct {
	Data []Customer `json:"data"`
	Meta PageMeta   `json:"meta"`
}

// PageMeta carries pagination metadata.
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}
