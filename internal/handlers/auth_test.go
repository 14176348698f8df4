package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emredev/auto-service-crm/internal/auth"
	"github.com/emredev/auto-service-crm/internal/db"
	"github.com/emredev/auto-service-crm/internal/middleware"
	"github.com/emredev/auto-service-crm/internal/models"
	"github.com/emredev/auto-service-crm/internal/notify"
)

// MockUserCollection is a mock implementation of UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUsers(ctx context.Context, filter bson.M) ([]models.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserCollection) FindActiveUserIDsByRole(ctx context.Context, roles []models.Role) ([]string, error) {
	args := m.Called(ctx, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserCollection) UpdateUser(ctx context.Context, id string, user models.User) error {
	args := m.Called(ctx, id, user)
	return args.Error(0)
}

func (m *MockUserCollection) SetUserActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockUserCollection) SetUserRole(ctx context.Context, id string, role models.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserCollection) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func withClaims(req *http.Request, claims *models.Claims) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	return req.WithContext(ctx)
}

func TestAuthHandler_Login(t *testing.T) {
	authService, err := auth.NewService()
	if err != nil {
		t.Fatalf("Failed to create auth service: %v", err)
	}

	t.Run("successful login", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, db.UserCollection(mockUserCollection), &notify.Mailer{})

		passwordHash, err := authService.HashPassword("password123")
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}
		user := &models.User{
			ID:           primitive.NewObjectID(),
			Email:        "test@example.com",
			PasswordHash: passwordHash,
			Role:         models.RoleAdmin,
			IsActive:     true,
		}

		mockUserCollection.On("FindUserByEmail", mock.Anything, "test@example.com").Return(user, nil)
		mockUserCollection.On("UpdateLastLogin", mock.Anything, user.ID.Hex()).Return(nil)

		loginReq := models.LoginRequest{
			Email:    "test@example.com",
			Password: "password123",
		}

		body, _ := json.Marshal(loginReq)
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response models.LoginResponse
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.NotEmpty(t, response.Token)
		assert.NotEmpty(t, response.RefreshToken)
		assert.Equal(t, user.Email, response.User.Email)

		mockUserCollection.AssertExpectations(t)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, db.UserCollection(mockUserCollection), &notify.Mailer{})

		mockUserCollection.On("FindUserByEmail", mock.Anything, "test@example.com").Return(nil, assert.AnError)

		loginReq := models.LoginRequest{
			Email:    "test@example.com",
			Password: "wrongpassword",
		}

		body, _ := json.Marshal(loginReq)
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUserCollection.AssertExpectations(t)
	})

	t.Run("pending account cannot log in", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, db.UserCollection(mockUserCollection), &notify.Mailer{})

		passwordHash, err := authService.HashPassword("password123")
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}
		user := &models.User{
			ID:           primitive.NewObjectID(),
			Email:        "pending@example.com",
			PasswordHash: passwordHash,
			Role:         models.RoleUser,
			IsActive:     false,
		}

		mockUserCollection.On("FindUserByEmail", mock.Anything, "pending@example.com").Return(user, nil)

		loginReq := models.LoginRequest{
			Email:    "pending@example.com",
			Password: "password123",
		}

		body, _ := json.Marshal(loginReq)
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUserCollection.AssertExpectations(t)
	})
}

func TestAuthHandler_Register(t *testing.T) {
	authService, err := auth.NewService()
	if err != nil {
		t.Fatalf("Failed to create auth service: %v", err)
	}

	t.Run("manager account is active immediately", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, db.UserCollection(mockUserCollection), &notify.Mailer{})

		registerReq := models.RegisterRequest{
			Email:     "manager@example.com",
			Password:  "password123",
			FirstName: "New",
			LastName:  "Manager",
			Role:      models.RoleManager,
		}

		mockUserCollection.On("FindUserByEmail", mock.Anything, "manager@example.com").Return(nil, assert.AnError)
		mockUserCollection.On("InsertUser", mock.Anything, mock.AnythingOfType("models.User")).Return(nil)

		body, _ := json.Marshal(registerReq)
		req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response models.RegisterResponse
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.NotEmpty(t, response.Token)
		assert.True(t, response.User.IsActive)

		mockUserCollection.AssertExpectations(t)
	})

	t.Run("plain user waits for approval", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, db.UserCollection(mockUserCollection), &notify.Mailer{})

		registerReq := models.RegisterRequest{
			Email:     "user@example.com",
			Password:  "password123",
			FirstName: "Plain",
			LastName:  "User",
		}

		mockUserCollection.On("FindUserByEmail", mock.Anything, "user@example.com").Return(nil, assert.AnError)
		mockUserCollection.On("InsertUser", mock.Anything, mock.AnythingOfType("models.User")).Return(nil)

		body, _ := json.Marshal(registerReq)
		req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response models.RegisterResponse
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.Empty(t, response.Token)
		assert.False(t, response.User.IsActive)
		assert.Contains(t, response.Message, "approval")

		mockUserCollection.AssertExpectations(t)
	})

	t.Run("email already exists", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, db.UserCollection(mockUserCollection), &notify.Mailer{})

		existingUser := &models.User{Email: "taken@example.com"}
		registerReq := models.RegisterRequest{
			Email:    "taken@example.com",
			Password: "password123",
		}

		mockUserCollection.On("FindUserByEmail", mock.Anything, "taken@example.com").Return(existingUser, nil)

		body, _ := json.Marshal(registerReq)
		req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockUserCollection.AssertExpectations(t)
	})

	t.Run("invalid role", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, db.UserCollection(mockUserCollection), &notify.Mailer{})

		registerReq := models.RegisterRequest{
			Email:    "newuser@example.com",
			Password: "password123",
			Role:     "superuser",
		}

		body, _ := json.Marshal(registerReq)
		req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_GetProfile(t *testing.T) {
	authService, err := auth.NewService()
	if err != nil {
		t.Fatalf("Failed to create auth service: %v", err)
	}

	t.Run("successful profile retrieval", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, db.UserCollection(mockUserCollection), &notify.Mailer{})

		userID := primitive.NewObjectID()
		user := &models.User{
			ID:        userID,
			Email:     "test@example.com",
			FirstName: "Test",
			LastName:  "User",
			Role:      models.RoleAdmin,
		}
		claims := &models.Claims{UserID: userID.Hex(), Email: user.Email, Role: models.RoleAdmin}

		mockUserCollection.On("FindUserByID", mock.Anything, userID.Hex()).Return(user, nil)

		req := withClaims(httptest.NewRequest("GET", "/api/auth/profile", nil), claims)
		w := httptest.NewRecorder()

		handler.GetProfile(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response models.User
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.Equal(t, user.Email, response.Email)

		mockUserCollection.AssertExpectations(t)
	})

	t.Run("user not found", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, db.UserCollection(mockUserCollection), &notify.Mailer{})

		userID := primitive.NewObjectID()
		claims := &models.Claims{UserID: userID.Hex(), Role: models.RoleAdmin}

		mockUserCollection.On("FindUserByID", mock.Anything, userID.Hex()).Return(nil, assert.AnError)

		req := withClaims(httptest.NewRequest("GET", "/api/auth/profile", nil), claims)
		w := httptest.NewRecorder()

		handler.GetProfile(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUserCollection.AssertExpectations(t)
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	authService, err := auth.NewService()
	if err != nil {
		t.Fatalf("Failed to create auth service: %v", err)
	}

	t.Run("successful password change", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, db.UserCollection(mockUserCollection), &notify.Mailer{})

		userID := primitive.NewObjectID()
		passwordHash, err := authService.HashPassword("oldpassword")
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}
		user := &models.User{ID: userID, Email: "test@example.com", PasswordHash: passwordHash}
		claims := &models.Claims{UserID: userID.Hex(), Role: models.RoleAdmin}

		mockUserCollection.On("FindUserByID", mock.Anything, userID.Hex()).Return(user, nil)
		mockUserCollection.On("UpdateUser", mock.Anything, userID.Hex(), mock.AnythingOfType("models.User")).Return(nil)

		passwordReq := map[string]string{
			"current_password": "oldpassword",
			"new_password":     "newpassword123",
		}
		body, _ := json.Marshal(passwordReq)
		req := withClaims(httptest.NewRequest("POST", "/api/auth/change-password", bytes.NewBuffer(body)), claims)
		w := httptest.NewRecorder()

		handler.ChangePassword(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUserCollection.AssertExpectations(t)
	})

	t.Run("incorrect current password", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, db.UserCollection(mockUserCollection), &notify.Mailer{})

		userID := primitive.NewObjectID()
		passwordHash, err := authService.HashPassword("oldpassword")
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}
		user := &models.User{ID: userID, PasswordHash: passwordHash}
		claims := &models.Claims{UserID: userID.Hex(), Role: models.RoleAdmin}

		mockUserCollection.On("FindUserByID", mock.Anything, userID.Hex()).Return(user, nil)

		passwordReq := map[string]string{
			"current_password": "wrongpassword",
			"new_password":     "newpassword123",
		}
		body, _ := json.Marshal(passwordReq)
		req := withClaims(httptest.NewRequest("POST", "/api/auth/change-password", bytes.NewBuffer(body)), claims)
		w := httptest.NewRecorder()

		handler.ChangePassword(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUserCollection.AssertExpectations(t)
	})
}
