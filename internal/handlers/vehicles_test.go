package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emredev/auto-service-crm/internal/db"
	"github.com/emredev/auto-service-crm/internal/models"
)

// MockVehicleCollection is a mock implementation of VehicleCollection
type MockVehicleCollection struct {
	mock.Mock
}

func (m *MockVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleCollection) FindVehicles(ctx context.Context, filter bson.M) ([]models.Vehicle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehiclesByCustomer(ctx context.Context, customerID string) ([]models.Vehicle, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehiclesWithMaintenanceDate(ctx context.Context) ([]models.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindMaintenanceDue(ctx context.Context, today time.Time) ([]models.Vehicle, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	args := m.Called(ctx, id, vehicle)
	return args.Error(0)
}

func (m *MockVehicleCollection) UpdateMaintenanceStatus(ctx context.Context, id string, status models.MaintenanceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestVehicleHandler_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		mockVehicles := new(MockVehicleCollection)
		mockCustomers := new(MockCustomerCollection)
		handler := NewVehicleHandler(db.VehicleCollection(mockVehicles), db.CustomerCollection(mockCustomers))

		customerID := primitive.NewObjectID().Hex()
		mockCustomers.On("FindCustomerByID", mock.Anything, customerID).
			Return(&models.Customer{FirstName: "Ali"}, nil)
		mockVehicles.On("InsertVehicle", mock.Anything, mock.AnythingOfType("models.Vehicle")).Return(nil)

		vehicle := models.Vehicle{
			CustomerID:   customerID,
			Brand:        "Renault",
			Model:        "Clio",
			LicensePlate: "34 ABC 123",
		}
		body, _ := json.Marshal(vehicle)

		claims := &models.Claims{UserID: "user1", Role: models.RoleUser}
		req := withClaims(httptest.NewRequest("POST", "/api/vehicles", bytes.NewBuffer(body)), claims)
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var created models.Vehicle
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.Equal(t, models.MaintenanceOK, created.MaintenanceStatus)
		assert.Equal(t, "user1", created.CreatedBy)

		mockVehicles.AssertExpectations(t)
		mockCustomers.AssertExpectations(t)
	})

	t.Run("unknown customer rejected", func(t *testing.T) {
		mockVehicles := new(MockVehicleCollection)
		mockCustomers := new(MockCustomerCollection)
		handler := NewVehicleHandler(db.VehicleCollection(mockVehicles), db.CustomerCollection(mockCustomers))

		mockCustomers.On("FindCustomerByID", mock.Anything, "missing").Return(nil, assert.AnError)

		vehicle := models.Vehicle{CustomerID: "missing", Brand: "Renault", LicensePlate: "34 ABC 123"}
		body, _ := json.Marshal(vehicle)

		claims := &models.Claims{UserID: "user1", Role: models.RoleUser}
		req := withClaims(httptest.NewRequest("POST", "/api/vehicles", bytes.NewBuffer(body)), claims)
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVehicleHandler_UpdateMaintenanceStatus(t *testing.T) {
	t.Run("valid status", func(t *testing.T) {
		mockVehicles := new(MockVehicleCollection)
		handler := NewVehicleHandler(db.VehicleCollection(mockVehicles), nil)

		id := primitive.NewObjectID().Hex()
		mockVehicles.On("UpdateMaintenanceStatus", mock.Anything, id, models.MaintenanceCritical).Return(nil)

		body, _ := json.Marshal(map[string]string{"maintenance_status": "critical"})
		req := httptest.NewRequest("PATCH", "/api/vehicles/"+id+"/maintenance-status", bytes.NewBuffer(body))
		req = mux.SetURLVars(req, map[string]string{"id": id})
		w := httptest.NewRecorder()

		handler.UpdateMaintenanceStatus(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockVehicles.AssertExpectations(t)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		handler := NewVehicleHandler(new(MockVehicleCollection), nil)

		body, _ := json.Marshal(map[string]string{"maintenance_status": "broken"})
		req := httptest.NewRequest("PATCH", "/api/vehicles/abc/maintenance-status", bytes.NewBuffer(body))
		req = mux.SetURLVars(req, map[string]string{"id": "abc"})
		w := httptest.NewRecorder()

		handler.UpdateMaintenanceStatus(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVehicleHandler_MaintenanceDue(t *testing.T) {
	mockVehicles := new(MockVehicleCollection)
	handler := NewVehicleHandler(db.VehicleCollection(mockVehicles), nil)

	due := []models.Vehicle{{Brand: "Renault", LicensePlate: "34 ABC 123"}}
	mockVehicles.On("FindMaintenanceDue", mock.Anything, mock.AnythingOfType("time.Time")).Return(due, nil)

	req := httptest.NewRequest("GET", "/api/vehicles/maintenance-due", nil)
	w := httptest.NewRecorder()

	handler.MaintenanceDue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []models.Vehicle
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	assert.Len(t, got, 1)

	mockVehicles.AssertExpectations(t)
}
