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

var validPaymentMethods = map[string]bool{
	"cash": true, "credit_card": true, "transfer": true, "installment": true,
}

var validSaleStatuses = map[string]bool{
	"pending": true, "completed": true, "cancelled": true,
}

// SaleHandler handles vehicle sale records.
type SaleHandler struct {
	sales     db.SaleCollection
	customers db.CustomerCollection
	vehicles  db.VehicleCollection
	sms       *notify.SmsService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(sales db.SaleCollection, customers db.CustomerCollection, vehicles db.VehicleCollection, sms *notify.SmsService) *SaleHandler {
	return &SaleHandler{sales: sales, customers: customers, vehicles: vehicles, sms: sms}
}

// List returns sales visible to the caller. Non-privileged users only
// see sales they made.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	sales, err := h.sales.FindSales(r.Context(), ownerFilter(claims, "sold_by"))
	if err != nil {
		http.Error(w, "Failed to list sales", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sales)
}

// Create records a new sale and sends the customer a confirmation SMS
// when a phone number is on file.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var sale models.Sale
	if err := json.NewDecoder(r.Body).Decode(&sale); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if sale.CustomerID == "" || sale.VehicleID == "" {
		http.Error(w, "Customer and vehicle are required", http.StatusBadRequest)
		return
	}
	if sale.PaymentMethod != "" && !validPaymentMethods[sale.PaymentMethod] {
		http.Error(w, "Invalid payment method", http.StatusBadRequest)
		return
	}

	customer, err := h.customers.FindCustomerByID(r.Context(), sale.CustomerID)
	if err != nil {
		http.Error(w, "Customer not found", http.StatusBadRequest)
		return
	}
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), sale.VehicleID)
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusBadRequest)
		return
	}

	sale.ID = primitive.NewObjectID()
	sale.SoldBy = claims.UserID
	if sale.Status == "" {
		sale.Status = "pending"
	}
	if sale.SaleDate.IsZero() {
		sale.SaleDate = time.Now()
	}
	sale.CreatedAt = time.Now()
	sale.UpdatedAt = time.Now()

	if err := h.sales.InsertSale(r.Context(), sale); err != nil {
		http.Error(w, "Failed to create sale", http.StatusInternalServerError)
		return
	}

	if customer.Phone != "" {
		if !h.sms.SendSaleConfirmation(customer.Phone, customer.FirstName+" "+customer.LastName, vehicle.Info()) {
			log.Errorf("Failed to send sale confirmation SMS to %s", customer.Phone)
		}
	}

	writeJSON(w, http.StatusCreated, sale)
}

// Get returns a single sale by id.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	sale, err := h.sales.FindSaleByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Sale not found", http.StatusNotFound)
		return
	}
	if !canAccess(claims, sale.SoldBy) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}

// Update replaces a sale's editable fields.
func (h *SaleHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	existing, err := h.sales.FindSaleByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Sale not found", http.StatusNotFound)
		return
	}
	if !canAccess(claims, existing.SoldBy) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var sale models.Sale
	if err := json.NewDecoder(r.Body).Decode(&sale); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if sale.Status != "" && !validSaleStatuses[sale.Status] {
		http.Error(w, "Invalid sale status", http.StatusBadRequest)
		return
	}

	sale.ID = existing.ID
	sale.SoldBy = existing.SoldBy
	sale.CreatedAt = existing.CreatedAt
	sale.UpdatedAt = time.Now()

	if err := h.sales.UpdateSale(r.Context(), id, sale); err != nil {
		http.Error(w, "Failed to update sale", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}

// Delete removes a sale.
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sales.DeleteSale(r.Context(), mux.Vars(r)["id"]); err != nil {
		http.Error(w, "Failed to delete sale", http.StatusInternalServerError)
		return
	}
	writeMessage(w, http.StatusOK, "Sale deleted successfully")
}
