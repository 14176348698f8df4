package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emredev/auto-service-crm/internal/db"
	"github.com/emredev/auto-service-crm/internal/maintenance"
	"github.com/emredev/auto-service-crm/internal/models"
)

// PartHandler handles the consumable parts inventory.
type PartHandler struct {
	parts db.PartCollection
}

// NewPartHandler creates a new part handler
func NewPartHandler(parts db.PartCollection) *PartHandler {
	return &PartHandler{parts: parts}
}

// List returns all parts with their computed expiration fields.
func (h *PartHandler) List(w http.ResponseWriter, r *http.Request) {
	parts, err := h.parts.FindParts(r.Context())
	if err != nil {
		http.Error(w, "Failed to list parts", http.StatusInternalServerError)
		return
	}

	today := time.Now()
	views := make([]models.PartView, 0, len(parts))
	for _, part := range parts {
		views = append(views, maintenance.BuildPartView(part, today))
	}

	writeJSON(w, http.StatusOK, views)
}

// Create adds a new part.
func (h *PartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var part models.Part
	if err := json.NewDecoder(r.Body).Decode(&part); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if part.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	if part.LifetimeDays <= 0 {
		http.Error(w, "Lifetime days must be positive", http.StatusBadRequest)
		return
	}
	if part.GivenDate.IsZero() {
		part.GivenDate = time.Now()
	}

	part.ID = primitive.NewObjectID()
	part.CreatedAt = time.Now()
	part.UpdatedAt = time.Now()

	if err := h.parts.InsertPart(r.Context(), part); err != nil {
		http.Error(w, "Failed to create part", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, maintenance.BuildPartView(part, time.Now()))
}

// Get returns a single part with its computed expiration fields.
func (h *PartHandler) Get(w http.ResponseWriter, r *http.Request) {
	part, err := h.parts.FindPartByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Part not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, maintenance.BuildPartView(*part, time.Now()))
}

// Update replaces a part's editable fields.
func (h *PartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	existing, err := h.parts.FindPartByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Part not found", http.StatusNotFound)
		return
	}

	var part models.Part
	if err := json.NewDecoder(r.Body).Decode(&part); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if part.LifetimeDays <= 0 {
		http.Error(w, "Lifetime days must be positive", http.StatusBadRequest)
		return
	}

	part.ID = existing.ID
	part.CreatedAt = existing.CreatedAt
	part.UpdatedAt = time.Now()

	if err := h.parts.UpdatePart(r.Context(), id, part); err != nil {
		http.Error(w, "Failed to update part", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, maintenance.BuildPartView(part, time.Now()))
}

// Delete removes a part.
func (h *PartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.parts.DeletePart(r.Context(), mux.Vars(r)["id"]); err != nil {
		http.Error(w, "Failed to delete part", http.StatusInternalServerError)
		return
	}
	writeMessage(w, http.StatusOK, "Part deleted successfully")
}
