package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Part represents a consumable part with a limited lifetime. Unlike work
// order parts the expiration date is derived, not stored.
type Part struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Code         string             `bson:"code" json:"code"`
	Price        float64            `bson:"price" json:"price"`
	GivenDate    time.Time          `bson:"given_date" json:"given_date"`
	LifetimeDays int                `bson:"lifetime_days" json:"lifetime_days"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// ExpirationDate returns given date plus the lifetime.
func (p *Part) ExpirationDate() time.Time {
	return p.GivenDate.AddDate(0, 0, p.LifetimeDays)
}

// PartView is a part enriched with the computed lifetime fields returned
// by the API.
type PartView struct {
	Part           `bson:",inline"`
	ExpirationDate time.Time `json:"expiration_date"`
	DaysLeft       int       `json:"days_left"`
	Status         string    `json:"status"` // "active", "warning", "critical", "expired"
}
