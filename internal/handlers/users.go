package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/emredev/auto-service-crm/internal/db"
	"github.com/emredev/auto-service-crm/internal/middleware"
	"github.com/emredev/auto-service-crm/internal/models"
)

// UserHandler handles admin user management: listing accounts,
// approving registrations and changing roles.
type UserHandler struct {
	users db.UserCollection
}

// NewUserHandler creates a new user handler
func NewUserHandler(users db.UserCollection) *UserHandler {
	return &UserHandler{users: users}
}

// List returns all user accounts. Pending accounts can be selected with
// the "pending=true" query parameter.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if r.URL.Query().Get("pending") == "true" {
		filter["is_active"] = false
	}

	users, err := h.users.FindUsers(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// SetActive approves or deactivates an account.
func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if id == claims.UserID {
		http.Error(w, "Cannot change your own active state", http.StatusBadRequest)
		return
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.users.SetUserActive(r.Context(), id, req.IsActive); err != nil {
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}

	writeMessage(w, http.StatusOK, "User updated")
}

// SetRole changes an account's role.
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if id == claims.UserID {
		http.Error(w, "Cannot change your own role", http.StatusBadRequest)
		return
	}

	var req struct {
		Role models.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if !models.IsValidRole(req.Role) {
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}

	if err := h.users.SetUserRole(r.Context(), id, req.Role); err != nil {
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}

	writeMessage(w, http.StatusOK, "User updated")
}

// Delete removes a user account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if id == claims.UserID {
		http.Error(w, "Cannot delete your own account", http.StatusBadRequest)
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}

	writeMessage(w, http.StatusOK, "User deleted successfully")
}
