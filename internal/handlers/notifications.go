package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/emredev/auto-service-crm/internal/db"
	"github.com/emredev/auto-service-crm/internal/middleware"
)

// NotificationHandler serves the caller's in-app notifications.
type NotificationHandler struct {
	notifications db.NotificationCollection
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications db.NotificationCollection) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns all of the caller's notifications, newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	notifications, err := h.notifications.FindNotificationsByUser(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Failed to list notifications", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// Unread returns only the caller's unread notifications.
func (h *NotificationHandler) Unread(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	notifications, err := h.notifications.FindUnreadByUser(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Failed to list notifications", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// MarkRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), mux.Vars(r)["id"], claims.UserID); err != nil {
		http.Error(w, "Notification not found", http.StatusNotFound)
		return
	}

	writeMessage(w, http.StatusOK, "Notification marked as read")
}

// MarkAllRead marks every notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	if err := h.notifications.MarkAllRead(r.Context(), claims.UserID); err != nil {
		http.Error(w, "Failed to mark notifications", http.StatusInternalServerError)
		return
	}

	writeMessage(w, http.StatusOK, "All notifications marked as read")
}

// Delete removes one of the caller's notifications.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	if err := h.notifications.DeleteNotification(r.Context(), mux.Vars(r)["id"], claims.UserID); err != nil {
		http.Error(w, "Notification not found", http.StatusNotFound)
		return
	}

	writeMessage(w, http.StatusOK, "Notification deleted")
}
