package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkOrderPart is a part used during a service visit, embedded in its
// work order. ExpirationDate is stored explicitly as entered by the shop.
type WorkOrderPart struct {
	Name           string     `bson:"name" json:"name"`
	Code           string     `bson:"code" json:"code"`
	GivenDate      time.Time  `bson:"given_date" json:"given_date"`
	ExpirationDate *time.Time `bson:"expiration_date,omitempty" json:"expiration_date,omitempty"`
	Price          float64    `bson:"price" json:"price"`
	Profit         float64    `bson:"profit" json:"profit"`
}

// WorkOrder represents a service visit and the parts used in it.
type WorkOrder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID   string             `bson:"vehicle_id" json:"vehicle_id"`
	ServiceDate time.Time          `bson:"service_date" json:"service_date"`
	Status      string             `bson:"status" json:"status"` // "pending", "in_progress", "completed", "cancelled"
	Notes       string             `bson:"notes" json:"notes"`
	Parts       []WorkOrderPart    `bson:"parts" json:"parts"`
	CreatedBy   string             `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// TotalPrice sums the prices of all parts on the order.
func (w *WorkOrder) TotalPrice() float64 {
	var total float64
	for _, p := range w.Parts {
		total += p.Price
	}
	return total
}

// TotalProfit sums the profit of all parts on the order.
func (w *WorkOrder) TotalProfit() float64 {
	var total float64
	for _, p := range w.Parts {
		total += p.Profit
	}
	return total
}

// WorkOrderStats aggregates work orders for the dashboard.
type WorkOrderStats struct {
	TotalWorkOrders      int     `json:"total_work_orders"`
	PendingWorkOrders    int     `json:"pending_work_orders"`
	InProgressWorkOrders int     `json:"in_progress_work_orders"`
	CompletedWorkOrders  int     `json:"completed_work_orders"`
	TotalRevenue         float64 `json:"total_revenue"`
	TotalProfit          float64 `json:"total_profit"`
}
