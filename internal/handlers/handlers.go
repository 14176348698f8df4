package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/emredev/auto-service-crm/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// ownerFilter scopes list queries to the caller's own records. Admins
// and managers see everything.
func ownerFilter(claims *models.Claims, field string) bson.M {
	if claims.Role.IsPrivileged() {
		return bson.M{}
	}
	return bson.M{field: claims.UserID}
}

// canAccess reports whether the caller may read or modify a record
// created by ownerID.
func canAccess(claims *models.Claims, ownerID string) bool {
	return claims.Role.IsPrivileged() || claims.UserID == ownerID
}

func parsePagination(r *http.Request) (page, limit int64) {
	page, limit = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit
}
