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

// CustomerHandler handles customer CRUD and search.
type CustomerHandler struct {
	customers db.CustomerCollection
	vehicles  db.VehicleCollection
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customers db.CustomerCollection, vehicles db.VehicleCollection) *CustomerHandler {
	return &CustomerHandler{customers: customers, vehicles: vehicles}
}

// List returns a paginated customer listing. Non-privileged users only
// see customers they created. A "q" query parameter switches to search.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	filter := ownerFilter(claims, "created_by")

	if query := r.URL.Query().Get("q"); query != "" {
		customers, err := h.customers.SearchCustomers(r.Context(), query, filter)
		if err != nil {
			http.Error(w, "Failed to search customers", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, customers)
		return
	}

	page, limit := parsePagination(r)
	customers, total, err := h.customers.FindCustomers(r.Context(), filter, page, limit)
	if err != nil {
		http.Error(w, "Failed to list customers", http.StatusInternalServerError)
		return
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	writeJSON(w, http.StatusOK, models.CustomerPage{
		Data: customers,
		Meta: models.PageMeta{Total: total, Page: page, Limit: limit, TotalPages: totalPages},
	})
}

// ListWithVehicles returns customers joined with their vehicles.
func (h *CustomerHandler) ListWithVehicles(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	customers, err := h.customers.FindCustomersWithVehicles(r.Context(), ownerFilter(claims, "created_by"))
	if err != nil {
		http.Error(w, "Failed to list customers", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, customers)
}

// Create adds a new customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if customer.FirstName == "" || customer.LastName == "" {
		http.Error(w, "First name and last name are required", http.StatusBadRequest)
		return
	}

	customer.ID = primitive.NewObjectID()
	customer.CreatedBy = claims.UserID
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	if err := h.customers.InsertCustomer(r.Context(), customer); err != nil {
		http.Error(w, "Failed to create customer", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, customer)
}

// Get returns a single customer by id.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	customer, err := h.customers.FindCustomerByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}
	if !canAccess(claims, customer.CreatedBy) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// Update replaces a customer's editable fields.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	existing, err := h.customers.FindCustomerByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}
	if !canAccess(claims, existing.CreatedBy) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	customer.ID = existing.ID
	customer.CreatedBy = existing.CreatedBy
	customer.CreatedAt = existing.CreatedAt
	customer.UpdatedAt = time.Now()

	if err := h.customers.UpdateCustomer(r.Context(), id, customer); err != nil {
		http.Error(w, "Failed to update customer", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// Delete removes a customer.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.customers.DeleteCustomer(r.Context(), mux.Vars(r)["id"]); err != nil {
		http.Error(w, "Failed to delete customer", http.StatusInternalServerError)
		return
	}
	writeMessage(w, http.StatusOK, "Customer deleted successfully")
}

// BulkDelete removes several customers in one call.
func (h *CustomerHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		http.Error(w, "A non-empty ids list is required", http.StatusBadRequest)
		return
	}

	deleted, err := h.customers.DeleteCustomers(r.Context(), req.IDs)
	if err != nil {
		http.Error(w, "Failed to delete customers", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
