package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emredev/auto-service-crm/internal/db"
	"github.com/emredev/auto-service-crm/internal/middleware"
	"github.com/emredev/auto-service-crm/internal/models"
)

// VehicleHandler handles vehicle CRUD and maintenance queries.
type VehicleHandler struct {
	vehicles  db.VehicleCollection
	customers db.CustomerCollection
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicles db.VehicleCollection, customers db.CustomerCollection) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, customers: customers}
}

// List returns all vehicles visible to the caller.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	vehicles, err := h.vehicles.FindVehicles(r.Context(), ownerFilter(claims, "created_by"))
	if err != nil {
		http.Error(w, "Failed to list vehicles", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, vehicles)
}

// ListByCustomer returns the vehicles of one customer.
func (h *VehicleHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.FindVehiclesByCustomer(r.Context(), mux.Vars(r)["customerId"])
	if err != nil {
		http.Error(w, "Failed to list vehicles", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// MaintenanceDue returns vehicles whose next maintenance date has passed.
func (h *VehicleHandler) MaintenanceDue(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.FindMaintenanceDue(r.Context(), time.Now())
	if err != nil {
		http.Error(w, "Failed to list vehicles", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// Create adds a new vehicle to an existing customer.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if vehicle.CustomerID == "" || vehicle.Brand == "" || vehicle.LicensePlate == "" {
		http.Error(w, "Customer, brand and license plate are required", http.StatusBadRequest)
		return
	}
	if _, err := h.customers.FindCustomerByID(r.Context(), vehicle.CustomerID); err != nil {
		http.Error(w, "Customer not found", http.StatusBadRequest)
		return
	}

	vehicle.ID = primitive.NewObjectID()
	vehicle.CreatedBy = claims.UserID
	vehicle.MaintenanceStatus = models.MaintenanceOK
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	if err := h.vehicles.InsertVehicle(r.Context(), vehicle); err != nil {
		http.Error(w, "Failed to create vehicle", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, vehicle)
}

// Get returns a single vehicle by id.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Update replaces a vehicle's editable fields. The maintenance status
// is owned by the daily check and kept as is.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	existing, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}

	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	vehicle.ID = existing.ID
	vehicle.CreatedBy = existing.CreatedBy
	vehicle.MaintenanceStatus = existing.MaintenanceStatus
	vehicle.CreatedAt = existing.CreatedAt
	vehicle.UpdatedAt = time.Now()

	if err := h.vehicles.UpdateVehicle(r.Context(), id, vehicle); err != nil {
		http.Error(w, "Failed to update vehicle", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, vehicle)
}

// UpdateMaintenanceStatus sets the maintenance status by hand, for
// corrections between scheduled runs.
func (h *VehicleHandler) UpdateMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MaintenanceStatus models.MaintenanceStatus `json:"maintenance_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if !models.IsValidMaintenanceStatus(req.MaintenanceStatus) {
		http.Error(w, "Invalid maintenance status", http.StatusBadRequest)
		return
	}

	if err := h.vehicles.UpdateMaintenanceStatus(r.Context(), mux.Vars(r)["id"], req.MaintenanceStatus); err != nil {
		http.Error(w, "Failed to update maintenance status", http.StatusInternalServerError)
		return
	}

	writeMessage(w, http.StatusOK, "Maintenance status updated")
}

// Delete removes a vehicle.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicles.DeleteVehicle(r.Context(), mux.Vars(r)["id"]); err != nil {
		http.Error(w, "Failed to delete vehicle", http.StatusInternalServerError)
		return
	}
	writeMessage(w, http.StatusOK, "Vehicle deleted successfully")
}
