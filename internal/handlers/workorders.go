package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emredev/auto-service-crm/internal/db"
	"github.com/emredev/auto-service-crm/internal/middleware"
	"github.com/emredev/auto-service-crm/internal/models"
	"github.com/emredev/auto-service-crm/internal/notify"
)

var validWorkOrderStatuses = map[string]bool{
	"pending": true, "in_progress": true, "completed": true, "cancelled": true,
}

// WorkOrderHandler handles service visits and their embedded parts.
type WorkOrderHandler struct {
	orders    db.WorkOrderCollection
	vehicles  db.VehicleCollection
	customers db.CustomerCollection
	mailer    *notify.Mailer
}

// NewWorkOrderHandler creates a new work order handler
func NewWorkOrderHandler(orders db.WorkOrderCollection, vehicles db.VehicleCollection, customers db.CustomerCollection, mailer *notify.Mailer) *WorkOrderHandler {
	return &WorkOrderHandler{orders: orders, vehicles: vehicles, customers: customers, mailer: mailer}
}

// List returns work orders visible to the caller.
func (h *WorkOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	orders, err := h.orders.FindWorkOrders(r.Context(), ownerFilter(claims, "created_by"))
	if err != nil {
		http.Error(w, "Failed to list work orders", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// Create opens a work order for a vehicle and notifies the shop inbox.
func (h *WorkOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var order models.WorkOrder
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if order.VehicleID == "" {
		http.Error(w, "Vehicle is required", http.StatusBadRequest)
		return
	}
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), order.VehicleID)
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusBadRequest)
		return
	}

	order.ID = primitive.NewObjectID()
	order.CreatedBy = claims.UserID
	if order.Status == "" {
		order.Status = "pending"
	}
	if order.ServiceDate.IsZero() {
		order.ServiceDate = time.Now()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	if err := h.orders.InsertWorkOrder(r.Context(), order); err != nil {
		http.Error(w, "Failed to create work order", http.StatusInternalServerError)
		return
	}

	if h.mailer.Enabled() {
		customerName := "Unknown"
		if customer, err := h.customers.FindCustomerByID(r.Context(), vehicle.CustomerID); err == nil {
			customerName = customer.FirstName + " " + customer.LastName
		}
		if err := h.mailer.SendWorkOrderNotice(customerName, vehicle.Info(), &order); err != nil {
			log.WithError(err).Error("Failed to send work order notice")
		}
	}

	writeJSON(w, http.StatusCreated, order)
}

// Get returns a single work order by id.
func (h *WorkOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	order, err := h.orders.FindWorkOrderByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Work order not found", http.StatusNotFound)
		return
	}
	if !canAccess(claims, order.CreatedBy) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Update replaces a work order, including its parts list.
func (h *WorkOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	existing, err := h.orders.FindWorkOrderByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Work order not found", http.StatusNotFound)
		return
	}
	if !canAccess(claims, existing.CreatedBy) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var order models.WorkOrder
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if order.Status != "" && !validWorkOrderStatuses[order.Status] {
		http.Error(w, "Invalid work order status", http.StatusBadRequest)
		return
	}

	order.ID = existing.ID
	order.VehicleID = existing.VehicleID
	order.CreatedBy = existing.CreatedBy
	order.CreatedAt = existing.CreatedAt
	order.UpdatedAt = time.Now()

	if err := h.orders.UpdateWorkOrder(r.Context(), id, order); err != nil {
		http.Error(w, "Failed to update work order", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Delete removes a work order.
func (h *WorkOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.DeleteWorkOrder(r.Context(), mux.Vars(r)["id"]); err != nil {
		http.Error(w, "Failed to delete work order", http.StatusInternalServerError)
		return
	}
	writeMessage(w, http.StatusOK, "Work order deleted successfully")
}

// Stats aggregates visible work orders for the dashboard.
func (h *WorkOrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	orders, err := h.orders.FindWorkOrders(r.Context(), ownerFilter(claims, "created_by"))
	if err != nil {
		http.Error(w, "Failed to list work orders", http.StatusInternalServerError)
		return
	}

	var stats models.WorkOrderStats
	for i := range orders {
		stats.TotalWorkOrders++
		switch orders[i].Status {
		case "pending":
			stats.PendingWorkOrders++
		case "in_progress":
			stats.InProgressWorkOrders++
		case "completed":
			stats.CompletedWorkOrders++
		}
		stats.TotalRevenue += orders[i].TotalPrice()
		stats.TotalProfit += orders[i].TotalProfit()
	}

	writeJSON(w, http.StatusOK, stats)
}
